package main

import (
	"fmt"

	"github.com/deppfellow/tourism/internal/repository"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default settings without overwriting existing keys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.shutdown()

			srv, err := server.New(a.cfg, &a.logger, a.loggerService)
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}
			defer srv.Close()

			services, err := service.NewServices(srv, repository.NewRepositories(srv.DB.Pool))
			if err != nil {
				return fmt.Errorf("could not create services: %w", err)
			}

			inserted, err := services.Setting.Seed(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info().Int("inserted", inserted).Msg("default settings seeded")
			return nil
		},
	}
}
