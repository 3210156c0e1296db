package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "cafeteria/internal/adapters/in/http"
	"cafeteria/internal/adapters/out/credential"
	"cafeteria/internal/adapters/out/postgres"
	"cafeteria/internal/adapters/out/postgres/outboxrepo"
	"cafeteria/internal/adapters/out/rabbitmq"
	redisadapter "cafeteria/internal/adapters/out/redis"
	"cafeteria/internal/core/application/auth"
	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/jobs"
	"cafeteria/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	gormDB *gorm.DB
	logger *slog.Logger

	uowFactory *postgres.GormUnitOfWorkFactory
	codec      *credential.JWTCodec
	hasher     credential.BcryptHasher
	guard      *auth.Guard
	metrics    *metrics.Metrics

	redisClient *redis.Client
	idempotency ports.IdempotencyStore
	amqpConn    rabbitmq.Connection
	publisher   ports.EventPublisher
}

// NewCompositionRoot connects the optional Redis and RabbitMQ backends named in cfg
// and prepares every handler on top of gormDB. Close releases what it opened.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	codec, err := credential.NewJWTCodec([]byte(cfg.CredentialSecret), cfg.CredentialTTL)
	if err != nil {
		return nil, fmt.Errorf("credential codec: %w", err)
	}

	c := &CompositionRoot{
		cfg:     cfg,
		gormDB:  gormDB,
		logger:  logger,
		codec:   codec,
		hasher:  credential.NewBcryptHasher(0),
		guard:   auth.NewGuard(codec),
		metrics: metrics.New(true),
	}

	opts := []postgres.Option{postgres.WithTokenPrefix(cfg.OrderTokenPrefix)}

	if cfg.RedisAddr != "" {
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err = c.redisClient.Ping(ctx).Err(); err != nil {
			c.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.idempotency = redisadapter.NewIdempotencyStore(c.redisClient, cfg.IdempotencyTTL)
	}

	last, err := postgres.NewCounterSequencer(gormDB, cfg.OrderTokenPrefix).Resync(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("resync order counter: %w", err)
	}

	if cfg.SequencerBackend == SequencerRedis {
		sequencer, seqErr := c.seedRedisSequencer(ctx, last)
		if seqErr != nil {
			c.Close()
			return nil, seqErr
		}
		opts = append(opts, postgres.WithSequencer(func(*gorm.DB) ports.OrderSequencer {
			return sequencer
		}))
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, opts...)

	if cfg.AMQPURL != "" {
		c.amqpConn, err = rabbitmq.Dial(cfg.AMQPURL)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.publisher = rabbitmq.NewPublisher(c.amqpConn, cfg.AMQPExchange)
	}

	return c, nil
}

// seedRedisSequencer raises the Redis counter to last, the highest stored
// token, so tokens continue after every order already placed.
func (c *CompositionRoot) seedRedisSequencer(ctx context.Context, last int64) (*redisadapter.Sequencer, error) {
	if c.redisClient == nil {
		return nil, errors.New("redis sequencer requires REDIS_ADDR")
	}

	sequencer := redisadapter.NewSequencer(c.redisClient, c.cfg.OrderTokenPrefix)
	if err := sequencer.Seed(ctx, last); err != nil {
		return nil, err
	}
	return sequencer, nil
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterUserCommandHandler(f, c.hasher)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLoginCommandHandler(f, c.hasher, c.codec)
}

func (c *CompositionRoot) CreateAddMenuItemCommandHandler() commands.AddMenuItemCommandHandler {
	return commands.NewAddMenuItemCommandHandler(c.menuUoWFactory())
}

func (c *CompositionRoot) CreateUpdateMenuItemCommandHandler() commands.UpdateMenuItemCommandHandler {
	return commands.NewUpdateMenuItemCommandHandler(c.menuUoWFactory())
}

func (c *CompositionRoot) CreateDeleteMenuItemCommandHandler() commands.DeleteMenuItemCommandHandler {
	return commands.NewDeleteMenuItemCommandHandler(c.menuUoWFactory())
}

func (c *CompositionRoot) CreateSeedMenuCommandHandler() commands.SeedMenuCommandHandler {
	return commands.NewSeedMenuCommandHandler(c.menuUoWFactory())
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.idempotency)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderStatusCommandHandler(f)
}

// CreateRelayOutboxCommandHandler returns false when no broker is configured.
func (c *CompositionRoot) CreateRelayOutboxCommandHandler() (commands.RelayOutboxCommandHandler, bool) {
	if c.publisher == nil {
		return commands.RelayOutboxCommandHandler{}, false
	}
	return commands.NewRelayOutboxCommandHandler(outboxrepo.NewGormOutboxStore(c.gormDB), c.publisher), true
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderBacklogQueryHandler() queries.GetOrderBacklogQueryHandler {
	return queries.NewGetOrderBacklogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) Handlers() httpin.Handlers {
	return httpin.Handlers{
		RegisterUser:    c.CreateRegisterUserCommandHandler(),
		Login:           c.CreateLoginCommandHandler(),
		AddMenuItem:     c.CreateAddMenuItemCommandHandler(),
		UpdateMenuItem:  c.CreateUpdateMenuItemCommandHandler(),
		DeleteMenuItem:  c.CreateDeleteMenuItemCommandHandler(),
		PlaceOrder:      c.CreatePlaceOrderCommandHandler(),
		TransitionOrder: c.CreateTransitionOrderStatusCommandHandler(),
		GetMenu:         c.CreateGetMenuQueryHandler(),
		GetOrderHistory: c.CreateGetOrderHistoryQueryHandler(),
		GetAllOrders:    c.CreateGetAllOrdersQueryHandler(),
	}
}

func (c *CompositionRoot) NewRouter() (*echo.Echo, error) {
	return httpin.NewRouter(httpin.RouterConfig{
		Server:             httpin.NewServer(c.Handlers(), c.metrics),
		Guard:              c.guard,
		Metrics:            c.metrics,
		Logger:             c.logger,
		LoginRatePerSecond: c.cfg.LoginRatePerSecond,
		AllowedOrigins:     c.cfg.AllowedOrigins(),
	})
}

// SeedMenu inserts entries when the menu is empty and reports how many were added.
func (c *CompositionRoot) SeedMenu(ctx context.Context, entries []commands.SeedMenuEntry) (int, error) {
	cmd, err := commands.NewSeedMenuCommand(entries)
	if err != nil {
		return 0, err
	}
	return c.CreateSeedMenuCommandHandler().Handle(ctx, cmd)
}

// NewJobManager schedules the backlog gauge and, with a broker configured, the outbox relay.
func (c *CompositionRoot) NewJobManager() (*jobs.JobManager, error) {
	var relayJob *jobs.OutboxRelayJob
	if relay, ok := c.CreateRelayOutboxCommandHandler(); ok {
		job, err := jobs.NewOutboxRelayJob(relay, c.cfg.OutboxBatchSize, c.metrics, c.logger)
		if err != nil {
			return nil, err
		}
		relayJob = job
	} else {
		c.logger.Warn("AMQP_URL is empty, order events stay in the outbox")
	}

	backlogJob := jobs.NewOrderBacklogJob(c.CreateGetOrderBacklogQueryHandler(), c.metrics, c.logger)
	return jobs.NewJobManager(relayJob, backlogJob), nil
}

// Close releases the broker and Redis connections.
func (c *CompositionRoot) Close() {
	if c.amqpConn != nil {
		if err := c.amqpConn.Close(); err != nil {
			c.logger.Error("close rabbitmq connection", "error", err)
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			c.logger.Error("close redis client", "error", err)
		}
	}
}

func (c *CompositionRoot) menuUoWFactory() commands.MenuUoWFactory {
	return FuncMenuUoWFactory(func() commands.MenuUoW {
		return c.uowFactory.Create()
	})
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncMenuUoWFactory func() commands.MenuUoW

func (f FuncMenuUoWFactory) Create() commands.MenuUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
