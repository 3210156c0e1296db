package jobs

import (
	"context"
	"log/slog"

	"cafeteria/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayer moves stored order events to the broker.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// RelayRecorder counts relayed messages and failed runs.
type RelayRecorder interface {
	OutboxRelayed(count int, failed bool)
}

// OutboxRelayJob manages the scheduled relay of outbox messages to RabbitMQ.
// Runs every second; a run still in progress makes the next tick a no-op.
type OutboxRelayJob struct {
	handler  OutboxRelayer
	cmd      commands.RelayOutboxCommand
	recorder RelayRecorder
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates a new job relaying up to batchSize messages per run.
// recorder may be nil.
func NewOutboxRelayJob(
	handler OutboxRelayer,
	batchSize int,
	recorder RelayRecorder,
	logger *slog.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewRelayOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}

	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		recorder: recorder,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}, nil
}

// Start begins the outbox relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Run performs a single relay pass.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	relayed, err := j.handler.Handle(ctx, j.cmd)
	if j.recorder != nil {
		j.recorder.OutboxRelayed(relayed, err != nil)
	}

	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "relayed", relayed, "error", err)
		return
	}
	if relayed > 0 {
		j.logger.DebugContext(ctx, "Outbox messages relayed", "relayed", relayed)
	}
}

// Stop stops the outbox relay job and waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
