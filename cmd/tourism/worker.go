package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/deppfellow/tourism/internal/lib/cron"
	"github.com/deppfellow/tourism/internal/lib/email"
	"github.com/deppfellow/tourism/internal/lib/job"
	"github.com/deppfellow/tourism/internal/repository"
	"github.com/deppfellow/tourism/internal/server"
	"github.com/deppfellow/tourism/internal/service"
	"github.com/spf13/cobra"
)

const (
	expireBookingsSpec     = "@every 15m"
	purgeNotificationsSpec = "@daily"
)

func newWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Process background tasks and run the periodic jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.shutdown()
			return work(cmd.Context(), a)
		},
	}
}

func work(parent context.Context, a *app) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(a.cfg, &a.logger, a.loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			a.logger.Error().Err(err).Msg("failed to release worker resources")
		}
	}()

	services, err := service.NewServices(srv, repository.NewRepositories(srv.DB.Pool))
	if err != nil {
		return fmt.Errorf("could not create services: %w", err)
	}

	mailer, err := email.NewClient(a.cfg, &a.logger)
	if err != nil {
		return fmt.Errorf("failed to create email client: %w", err)
	}

	handlers := job.NewTaskHandlers(mailer, services.Notification, services.Setting.SiteName, &a.logger)
	if err := srv.Job.Start(handlers); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}

	scheduler := cron.NewScheduler(&a.logger)
	if err := scheduler.Add(expireBookingsSpec, "expire_pending_bookings", services.Booking.ExpireStale); err != nil {
		return err
	}
	if err := scheduler.Add(purgeNotificationsSpec, "purge_read_notifications", services.Notification.PurgeRead); err != nil {
		return err
	}
	scheduler.Start()

	<-ctx.Done()
	a.logger.Info().Msg("worker shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	scheduler.Stop(stopCtx)
	return nil
}
