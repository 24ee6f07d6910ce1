package app

import (
	"context"
	"fmt"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
	"github.com/avstrong/hotel/internal/config"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/migration"
	"github.com/avstrong/hotel/internal/storage/file"
	"github.com/avstrong/hotel/internal/storage/memory"
	"github.com/avstrong/hotel/internal/storage/postgres"
	"github.com/avstrong/hotel/internal/storage/redisx"
	"github.com/avstrong/hotel/internal/storage/slot"
)

type store interface {
	LoadBookings(ctx context.Context) ([]booking.Booking, error)
	SaveBookings(ctx context.Context, changed booking.Booking, all []booking.Booking) error
	LoadRooms(ctx context.Context) ([]catalog.Room, error)
	SaveRooms(ctx context.Context, rooms []catalog.Room) error
}

// openStore builds the configured backend. The returned func releases its
// connections.
func openStore(ctx context.Context, l *logger.Logger, conf config.StorageConfig) (store, func(), error) {
	switch conf.Driver {
	case config.DriverMemory:
		return slot.New(memory.New(memory.Config{L: l})), func() {}, nil
	case config.DriverFile:
		db, err := file.New(file.Config{Dir: conf.File.Dir})
		if err != nil {
			return nil, nil, fmt.Errorf("init file storage: %w", err)
		}

		return slot.New(db), func() {}, nil
	case config.DriverRedis:
		client := redisx.NewClient(redisx.Config{
			Address:   conf.Redis.Address,
			Password:  conf.Redis.Password,
			DB:        conf.Redis.DB,
			PoolSize:  conf.Redis.PoolSize,
			KeyPrefix: conf.Redis.KeyPrefix,
		})

		if err := redisx.Ping(ctx, client); err != nil {
			_ = client.Close()

			return nil, nil, fmt.Errorf("init redis storage: %w", err)
		}

		closer := func() {
			if err := client.Close(); err != nil {
				l.LogErrorf("Failed to close redis client: %v", err.Error())
			}
		}

		return slot.New(redisx.New(client, conf.Redis.KeyPrefix)), closer, nil
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{DSN: conf.Postgres.DSN, MaxConns: conf.Postgres.MaxConns})
		if err != nil {
			return nil, nil, fmt.Errorf("init postgres storage: %w", err)
		}

		st := postgres.New(l, pool)
		if err := migration.Up(ctx, l, st); err != nil {
			pool.Close()

			return nil, nil, fmt.Errorf("up postgres migration: %w", err)
		}

		return st, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("storage driver %q: %w", conf.Driver, config.ErrInvalidConfig)
	}
}
