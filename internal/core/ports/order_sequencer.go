package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/order"
)

// OrderSequencer issues order tokens. Two calls never return the same token,
// even from concurrent transactions. A failing counter is reported as
// errs.UnavailableError, and no order may be created without a token.
type OrderSequencer interface {
	Next(ctx context.Context) (order.Token, error)
}
