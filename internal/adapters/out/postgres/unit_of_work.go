// Package postgres provides the GORM implementation of the Unit of Work.
//
// A unit of work hands out repositories and the order sequencer bound to one
// transaction. Aggregates saved through its repositories are tracked, and on
// Commit their pending domain events are written to the outbox inside the same
// transaction, so an order change and its event are stored together or not at all.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	token, err := uow.OrderSequencer().Next(ctx)
//	// ... build the order
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to a single goroutine; create one per request.
package postgres

import (
	"context"

	"cafeteria/internal/adapters/out/postgres/menurepo"
	"cafeteria/internal/adapters/out/postgres/orderrepo"
	"cafeteria/internal/adapters/out/postgres/outboxrepo"
	"cafeteria/internal/adapters/out/postgres/userrepo"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// SequencerProvider builds the sequencer for a unit of work. It receives the
// transaction handle (or the plain handle outside a transaction).
type SequencerProvider func(db *gorm.DB) ports.OrderSequencer

// Option configures a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithSequencer replaces the counter-row sequencer, e.g. with the Redis one.
func WithSequencer(provider SequencerProvider) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.sequencer = provider
	}
}

// WithTokenPrefix sets the prefix of tokens drawn from the counter row.
func WithTokenPrefix(prefix string) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.tokenPrefix = prefix
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	tokenPrefix string
	sequencer   SequencerProvider
}

func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{
		db:          db,
		tokenPrefix: order.DefaultTokenPrefix,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.sequencer == nil {
		prefix := f.tokenPrefix
		f.sequencer = func(db *gorm.DB) ports.OrderSequencer {
			return NewCounterSequencer(db, prefix)
		}
	}
	return f
}

// Create produces a fresh UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		sequencer:         f.sequencer,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the outbox writes
// of the aggregates saved in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	sequencer         SequencerProvider
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes the outbox rows of every tracked event source, then commits.
// Events are cleared from the aggregates only once the commit succeeded.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	sources := uow.eventSources()
	events := make([]kernel.DomainEvent, 0)
	for _, source := range sources {
		events = append(events, source.DomainEvents()...)
	}

	if err := outboxrepo.Write(ctx, uow.tx, events); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, source := range sources {
		source.ClearDomainEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) MenuRepository() ports.MenuRepository {
	return menurepo.NewGormMenuRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

// OrderSequencer must be drawn after Begin for the counter to share the
// placement transaction.
func (uow *GormUnitOfWork) OrderSequencer() ports.OrderSequencer {
	return uow.sequencer(uow.conn())
}

// TrackAggregate registers an aggregate saved by one of the repositories.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// eventSources returns each tracked event source once, in tracking order.
func (uow *GormUnitOfWork) eventSources() []kernel.EventSource {
	seen := make(map[kernel.EventSource]struct{}, len(uow.trackedAggregates))
	sources := make([]kernel.EventSource, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(kernel.EventSource)
		if !ok {
			continue
		}
		if _, dup := seen[source]; dup {
			continue
		}
		seen[source] = struct{}{}
		sources = append(sources, source)
	}
	return sources
}
