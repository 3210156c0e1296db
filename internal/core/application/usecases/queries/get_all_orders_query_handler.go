package queries

import (
	"context"

	"cafeteria/internal/core/application/auth"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle checks the actor holds the admin role before touching the store.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := auth.Require(query.Actor(), user.RoleAdmin); err != nil {
		return nil, err
	}

	orders, err := loadOrders(ctx, h.db, `
		ORDER BY o.created_at DESC, o.id, i.position
	`)
	if err != nil {
		return nil, errs.NewUnavailableError("order store", err)
	}

	return orders, nil
}
