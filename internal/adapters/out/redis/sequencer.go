// Package redis backs the order sequencer and the idempotency store with Redis.
package redis

import (
	"context"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// DefaultCounterKey holds the number of the last issued order.
const DefaultCounterKey = "cafeteria:orders:counter"

var _ ports.OrderSequencer = (*Sequencer)(nil)

// Sequencer issues tokens from an INCR counter. Unlike the counter row, a
// number drawn by a placement that later fails is not given back.
type Sequencer struct {
	client redis.UniversalClient
	key    string
	prefix string
}

func NewSequencer(client redis.UniversalClient, prefix string) *Sequencer {
	return &Sequencer{client: client, key: DefaultCounterKey, prefix: prefix}
}

// raiseCounter sets KEYS[1] to ARGV[1] only when the key is missing or lower.
var raiseCounter = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local floor = tonumber(ARGV[1])
if current < floor then
	redis.call('SET', KEYS[1], floor)
	return floor
end
return current
`)

// Seed raises the counter to last, the sequence number of the highest stored
// token. A counter that is already ahead is kept, so a restart never rewinds it.
func (s *Sequencer) Seed(ctx context.Context, last int64) error {
	if err := raiseCounter.Run(ctx, s.client, []string{s.key}, last).Err(); err != nil {
		return errs.NewUnavailableError("order sequencer", err)
	}
	return nil
}

func (s *Sequencer) Next(ctx context.Context) (order.Token, error) {
	n, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		return order.Token{}, errs.NewUnavailableError("order sequencer", err)
	}
	return order.TokenFromSequence(s.prefix, n)
}
