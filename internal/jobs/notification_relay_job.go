package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type notificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (commands.DispatchResult, error)
}

// NotificationRelayJob drains the notification outbox every second. A run
// is skipped while the previous one is still going, so one process never
// sends the same message twice in parallel.
type NotificationRelayJob struct {
	handler notificationDispatcher
	cmd     commands.DispatchNotificationsCommand
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationRelayJob creates the relay job. It fails when batchSize or
// maxAttempts are out of range.
func NewNotificationRelayJob(
	handler notificationDispatcher,
	batchSize int,
	maxAttempts int,
	logger *slog.Logger,
) (*NotificationRelayJob, error) {
	cmd, err := commands.NewDispatchNotificationsCommand(batchSize, maxAttempts)
	if err != nil {
		return nil, err
	}

	return &NotificationRelayJob{
		handler: handler,
		cmd:     cmd,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "notification_relay_job"),
	}, nil
}

// Start begins the relay job to run every second.
func (j *NotificationRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started (running every second)")
	return nil
}

// RunOnce dispatches one batch. Failures are logged, never returned.
func (j *NotificationRelayJob) RunOnce(ctx context.Context) {
	result, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification relay job failed", "error", err)
		return
	}

	if result.Sent+result.Retried+result.Failed > 0 {
		j.logger.InfoContext(ctx, "Notification batch dispatched",
			"sent", result.Sent,
			"retried", result.Retried,
			"failed", result.Failed,
		)
	}
}

// Stop stops the relay job and waits for a running batch to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}
