// Package job runs background work on asynq. The API process only
// enqueues tasks; the worker process serves them.
package job

import (
	"context"
	"sync/atomic"

	"github.com/deppfellow/tourism/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// Enqueuer is the producer side, satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// JobService holds the asynq client used to enqueue and the server that
// executes tasks.
type JobService struct {
	Client *asynq.Client

	server  *asynq.Server
	started atomic.Bool
	logger  *zerolog.Logger
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logger.Error().
					Err(err).
					Str("task", task.Type()).
					Int("retry", retried).
					Int("max_retry", maxRetry).
					Msg("task failed")
			}),
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers the task handlers and starts processing in the
// background.
func (j *JobService) Start(handlers *TaskHandlers) error {
	mux := asynq.NewServeMux()
	mux.Use(handlers.observe)
	handlers.Register(mux)

	j.logger.Info().Msg("starting background job server")
	if err := j.server.Start(mux); err != nil {
		return err
	}
	j.started.Store(true)
	return nil
}

// Stop waits for in-flight tasks when the server was started and closes
// the client.
func (j *JobService) Stop() {
	if j.started.Load() {
		j.logger.Info().Msg("stopping background job server")
		j.server.Shutdown()
	}
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("closing job client")
	}
}
