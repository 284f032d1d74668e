// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated requests, services enforce the domain rules and call the
// repositories. Domain failures come back as *errs.HTTPError; repository
// errors are returned as is and translated by the global error handler.
package service

import (
	"context"

	"github.com/deppfellow/tourism/internal/lib/job"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// enqueue pushes a task built by build. Failures are logged, not returned:
// a missed email must not fail the request that triggered it.
func enqueue(ctx context.Context, q job.Enqueuer, logger *zerolog.Logger, build func() (*asynq.Task, error)) {
	if q == nil {
		return
	}
	task, err := build()
	if err != nil {
		logger.Error().Err(err).Msg("failed to build task")
		return
	}
	if _, err := q.EnqueueContext(ctx, task); err != nil {
		logger.Error().Err(err).Str("task", task.Type()).Msg("failed to enqueue task")
	}
}
