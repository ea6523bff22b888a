package reminder

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"leadbot_backend/platform/config"
	"leadbot_backend/platform/logger"
)

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	sweeper *Sweeper
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sweeper *Sweeper, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		sweeper: sweeper,
		log:     log,
	}

	mux.HandleFunc(TaskReminderSweep, w.handleSweep)

	return w, nil
}

func (w *Worker) handleSweep(ctx context.Context, task *asynq.Task) error {
	if _, err := ParseSweepPayload(task); err != nil {
		return err
	}
	return w.sweeper.Sweep(ctx)
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("reminder worker stopped", "error", err)
	}
}
