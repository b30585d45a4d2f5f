package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gestionstock/product-api/internal/core/ports"
	"github.com/gestionstock/product-api/internal/infrastructure/db/gormdb"
	"github.com/gestionstock/product-api/internal/infrastructure/db/jsonfile"
	"github.com/gestionstock/product-api/internal/infrastructure/db/memory"
	mongostore "github.com/gestionstock/product-api/internal/infrastructure/db/mongo"
	redisstore "github.com/gestionstock/product-api/internal/infrastructure/db/redis"
	"github.com/gestionstock/product-api/internal/infrastructure/http/handlers"
	"github.com/gestionstock/product-api/internal/pkg/config"
)

// stores bundles the repositories selected by STORE_DRIVER together with
// their readiness checks and shutdown hooks.
type stores struct {
	products ports.ProductRepository
	users    ports.UserRepository
	books    ports.BookRepository
	checks   map[string]handlers.Check
	closers  []func(context.Context) error
}

func (s *stores) close(ctx context.Context, log zerolog.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("store shutdown")
		}
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return &stores{
			products: memory.NewProductRepository(),
			users:    memory.NewUserRepository(),
			books:    memory.NewBookRepository(),
		}, nil

	case config.DriverFile:
		products, err := jsonfile.Open(cfg.Store.ProductsFile)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Store.ProductsFile).Int("products", products.Len()).Msg("product file loaded")
		return &stores{
			products: products,
			users:    memory.NewUserRepository(),
			books:    memory.NewBookRepository(),
		}, nil

	case config.DriverMongo:
		return openMongo(ctx, cfg, log)

	case config.DriverPostgres, config.DriverMySQL, config.DriverSQLite:
		return openSQL(cfg, log)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	s := &stores{
		checks: map[string]handlers.Check{
			"mongodb": mongostore.HealthCheck(client),
			"redis":   redisstore.HealthCheck(rdb),
		},
		closers: []func(context.Context) error{
			client.Disconnect,
			func(context.Context) error { return rdb.Close() },
		},
	}

	seq := redisstore.NewSequence(rdb, redisstore.DefaultSequenceKey)
	products := mongostore.NewProductRepository(db, seq)
	if err := products.Init(ctx); err != nil {
		s.close(ctx, log)
		return nil, err
	}
	lastID, err := seq.Current(ctx)
	if err != nil {
		s.close(ctx, log)
		return nil, err
	}
	users := mongostore.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		s.close(ctx, log)
		return nil, err
	}

	s.products = products
	s.users = users
	s.books = mongostore.NewBookRepository(db)
	log.Info().Str("database", cfg.Mongo.Database).Str("redis", cfg.Redis.Addr).Int("last_product_id", lastID).Msg("mongo store connected")
	return s, nil
}

func openSQL(cfg *config.Config, log zerolog.Logger) (*stores, error) {
	gdb, err := gormdb.Open(gormdb.Opts{
		Driver:          cfg.Store.Driver,
		DSN:             cfg.SQL.DSN,
		MaxOpenConns:    cfg.SQL.MaxOpenConns,
		MaxIdleConns:    cfg.SQL.MaxIdleConns,
		ConnMaxLifetime: cfg.SQL.ConnMaxLifetime,
		LogLevel:        cfg.LogLevel,
	})
	if err != nil {
		return nil, err
	}
	if err := gormdb.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("driver", cfg.Store.Driver).Msg("sql store connected")
	return &stores{
		products: gormdb.NewProductRepository(gdb),
		users:    gormdb.NewUserRepository(gdb),
		books:    gormdb.NewBookRepository(gdb),
		checks:   map[string]handlers.Check{cfg.Store.Driver: gormdb.HealthCheck(gdb)},
		closers: []func(context.Context) error{
			func(context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		},
	}, nil
}
