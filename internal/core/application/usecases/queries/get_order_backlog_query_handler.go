package queries

import (
	"context"

	"cafeteria/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetOrderBacklogQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderBacklogQueryHandler(db *gorm.DB) GetOrderBacklogQueryHandler {
	return GetOrderBacklogQueryHandler{db: db}
}

// Handle returns a count for every known status, zero included.
func (h GetOrderBacklogQueryHandler) Handle(ctx context.Context, query GetOrderBacklogQuery) (map[order.Status]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	backlog := map[order.Status]int64{
		order.Pending:   0,
		order.Ready:     0,
		order.Delivered: 0,
		order.Cancelled: 0,
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status int
			count  int64
		)
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		backlog[order.Status(status)] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return backlog, nil
}
