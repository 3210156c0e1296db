package queries

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetMenuQueryHandler struct {
	db *gorm.DB
}

func NewGetMenuQueryHandler(db *gorm.DB) GetMenuQueryHandler {
	return GetMenuQueryHandler{db: db}
}

func (h GetMenuQueryHandler) Handle(ctx context.Context, query GetMenuQuery) ([]MenuItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			price
		FROM menu_items
		ORDER BY name_key
	`).Rows()
	if err != nil {
		return nil, errs.NewUnavailableError("menu store", err)
	}
	defer rows.Close()

	items := make([]MenuItemView, 0)
	for rows.Next() {
		var (
			id    uuid.UUID
			name  string
			price decimal.Decimal
		)
		if err = rows.Scan(&id, &name, &price); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		amount, priceErr := kernel.NewMoney(price)
		if priceErr != nil {
			return nil, priceErr
		}
		items = append(items, MenuItemView{ID: itemID, Name: name, Price: amount})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
