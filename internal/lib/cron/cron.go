// Package cron runs the periodic maintenance jobs of the worker process.
package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Func is a periodic job. It returns the number of rows it touched.
type Func func(ctx context.Context) (int64, error)

type Scheduler struct {
	cron    *cron.Cron
	logger  *zerolog.Logger
	timeout time.Duration
}

func NewScheduler(logger *zerolog.Logger) *Scheduler {
	l := logger.With().Str("component", "cron").Logger()
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger{&l}), cron.SkipIfStillRunning(cronLogger{&l})),
		),
		logger:  &l,
		timeout: 5 * time.Minute,
	}
}

// Add schedules fn under a standard five field spec or a descriptor such
// as "@every 15m".
func (s *Scheduler) Add(spec, name string, fn Func) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		n, err := fn(ctx)
		if err != nil {
			s.logger.Error().Err(err).Str("job", name).Msg("periodic job failed")
			return
		}
		s.logger.Info().
			Str("job", name).
			Int64("affected", n).
			Dur("duration", time.Since(start)).
			Msg("periodic job finished")
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("starting scheduler")
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("scheduler stop timed out")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
