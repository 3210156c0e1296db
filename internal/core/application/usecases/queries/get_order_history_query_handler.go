package queries

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

// HistoryFailureRecorder counts history lookups that were swallowed.
type HistoryFailureRecorder interface {
	HistoryLookupFailed()
}

// GetOrderHistoryQueryHandler answers order history lookups. A failing lookup
// is logged and counted, and the caller gets an empty list instead of an error.
type GetOrderHistoryQueryHandler struct {
	db       *gorm.DB
	logger   *slog.Logger
	failures HistoryFailureRecorder
}

func NewGetOrderHistoryQueryHandler(
	db *gorm.DB,
	logger *slog.Logger,
	failures HistoryFailureRecorder,
) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{
		db:       db,
		logger:   logger.With("component", "order_history_query"),
		failures: failures,
	}
}

// Handle returns the customer's orders newest first, each with its lines.
// Only an unconstructed query is reported as an error.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.Email().Validate() != nil {
		return []OrderView{}, nil
	}

	orders, err := loadOrders(ctx, h.db, `
		WHERE o.email = ?
		ORDER BY o.created_at DESC, o.id, i.position
	`, query.Email().String())
	if err != nil {
		h.logger.ErrorContext(ctx, "order history lookup failed", "error", err)
		if h.failures != nil {
			h.failures.HistoryLookupFailed()
		}
		return []OrderView{}, nil
	}

	return orders, nil
}
