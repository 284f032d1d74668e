package main

import (
	"github.com/deppfellow/tourism/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.shutdown()
			return database.Migrate(cmd.Context(), &a.logger, a.cfg)
		},
	}
}
