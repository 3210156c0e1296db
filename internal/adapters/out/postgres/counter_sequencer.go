package postgres

import (
	"context"
	"errors"
	"unicode/utf8"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"gorm.io/gorm"
)

// ordersCounter is the order_counters row the migration creates.
const ordersCounter = "orders"

var _ ports.OrderSequencer = (*CounterSequencer)(nil)

// CounterSequencer draws tokens from a counter row. Run on the placement
// transaction, the row lock serializes concurrent placements only for the
// increment, and a rolled back placement gives its number back.
type CounterSequencer struct {
	db     *gorm.DB
	prefix string
}

func NewCounterSequencer(db *gorm.DB, prefix string) *CounterSequencer {
	return &CounterSequencer{db: db, prefix: prefix}
}

func (s *CounterSequencer) Next(ctx context.Context) (order.Token, error) {
	var values []int64
	err := s.db.WithContext(ctx).
		Raw(`UPDATE order_counters SET value = value + 1 WHERE name = ? RETURNING value`, ordersCounter).
		Scan(&values).Error
	if err != nil {
		return order.Token{}, errs.NewUnavailableError("order sequencer", err)
	}
	if len(values) == 0 {
		return order.Token{}, errs.NewUnavailableError("order sequencer", errors.New("order counter row is missing"))
	}

	return order.TokenFromSequence(s.prefix, values[0])
}

// maxTokenNumber selects the largest numeric suffix among tokens that carry the
// prefix. Suffixes that are not plain digits are skipped.
const maxTokenNumber = `SELECT COALESCE(MAX(CASE WHEN SUBSTRING(token FROM ?) ~ '^[0-9]{1,18}$' ` +
	`THEN CAST(SUBSTRING(token FROM ?) AS BIGINT) END), 0) FROM orders WHERE LEFT(token, ?) = ?`

// LastIssuedSequence returns the sequence number of the highest stored token
// with prefix, or 0 when there is none.
func LastIssuedSequence(ctx context.Context, db *gorm.DB, prefix string) (int64, error) {
	from := utf8.RuneCountInString(prefix) + 1

	var number int64
	err := db.WithContext(ctx).
		Raw(maxTokenNumber, from, from, from-1, prefix).
		Scan(&number).Error
	if err != nil {
		return 0, errs.NewUnavailableError("order store", err)
	}
	return order.SequenceFromNumber(number), nil
}

// Resync raises the counter to the highest stored token so Next never hands out
// a token that is already taken. A counter that is ahead is left alone.
func (s *CounterSequencer) Resync(ctx context.Context) (int64, error) {
	last, err := LastIssuedSequence(ctx, s.db, s.prefix)
	if err != nil {
		return 0, err
	}

	err = s.db.WithContext(ctx).
		Exec(`UPDATE order_counters SET value = GREATEST(value, ?) WHERE name = ?`, last, ordersCounter).Error
	if err != nil {
		return 0, errs.NewUnavailableError("order sequencer", err)
	}
	return last, nil
}
