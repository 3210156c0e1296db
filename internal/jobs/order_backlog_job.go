package jobs

import (
	"context"
	"log/slog"

	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// BacklogReader counts orders per status.
type BacklogReader interface {
	Handle(ctx context.Context, query queries.GetOrderBacklogQuery) (map[order.Status]int64, error)
}

// BacklogRecorder publishes the per-status order counts.
type BacklogRecorder interface {
	SetBacklog(counts map[string]int64)
}

// OrderBacklogJob refreshes the orders backlog gauge every 15 seconds.
type OrderBacklogJob struct {
	reader   BacklogReader
	recorder BacklogRecorder
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderBacklogJob creates a new job feeding recorder from reader.
func NewOrderBacklogJob(reader BacklogReader, recorder BacklogRecorder, logger *slog.Logger) *OrderBacklogJob {
	return &OrderBacklogJob{
		reader:   reader,
		recorder: recorder,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "order_backlog_job"),
	}
}

// Start begins the backlog job.
func (j *OrderBacklogJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order backlog job started (running every 15 seconds)")
	return nil
}

// Run reads the counts once and updates the gauge. On failure the gauge keeps
// its previous values.
func (j *OrderBacklogJob) Run(ctx context.Context) {
	backlog, err := j.reader.Handle(ctx, queries.NewGetOrderBacklogQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order backlog refresh failed", "error", err)
		return
	}

	counts := make(map[string]int64, len(backlog))
	for status, n := range backlog {
		counts[status.String()] = n
	}
	j.recorder.SetBacklog(counts)
}

// Stop stops the backlog job.
func (j *OrderBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order backlog job stopped")
}
