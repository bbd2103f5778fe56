package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/dccbooking/config"
	"github.com/Domenick1991/dccbooking/internal/cache"
	"github.com/Domenick1991/dccbooking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NewStore opens the booking store selected by store.driver. The returned func releases it.
func NewStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.BookingStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Info("using in-memory booking store")
		return repository.NewMemoryBookingStore(), func() {}, nil

	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := repository.NewBookingStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("using postgres booking store", zap.String("host", cfg.Database.Host))
		return store, pool.Close, nil

	case config.StoreRedis:
		store := cache.NewRedisBookingStore(cfg.Redis, cfg.Session.TTL())
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("using redis booking store", zap.String("addr", cfg.Redis.Addr))
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
