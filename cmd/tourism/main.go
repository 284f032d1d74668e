// Package main is the tourism entry point. It serves the HTTP API, runs
// the background worker and scheduler, applies migrations and seeds
// default settings.
package main

import (
	"fmt"
	"os"

	"github.com/deppfellow/tourism/internal/config"
	"github.com/deppfellow/tourism/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tourism",
		Short:         "Tourism booking platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newWorkerCommand(),
		newMigrateCommand(),
		newSeedCommand(),
		newEmailCommand(),
	)
	return root
}

// app bundles what every command that touches the environment needs.
type app struct {
	cfg           *config.Config
	logger        zerolog.Logger
	loggerService *logger.LoggerService
}

func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	return &app{
		cfg:           cfg,
		logger:        logger.NewLoggerWithService(cfg.Observability, loggerService),
		loggerService: loggerService,
	}, nil
}

func (a *app) shutdown() {
	a.loggerService.Shutdown()
}
