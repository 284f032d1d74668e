package main

import (
	"fmt"
	"slices"

	"github.com/deppfellow/tourism/internal/lib/email"
	"github.com/spf13/cobra"
)

func newEmailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Work with the transactional email templates",
	}

	names := make([]string, 0, len(email.Templates))
	for _, t := range email.Templates {
		names = append(names, string(t))
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "preview <template>",
		Short:     "Render a template with sample data to stdout",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := email.Template(args[0])
			if !slices.Contains(email.Templates, name) {
				return fmt.Errorf("unknown template %q", name)
			}

			tmpl, err := email.ParseTemplates()
			if err != nil {
				return err
			}
			html, err := email.Render(tmpl, name, email.PreviewData[name])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	})
	return cmd
}
