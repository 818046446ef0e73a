package cmd

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/repositories"
	"github.com/chrisdamba/foodcart/internal/repositories/memory"
	"github.com/chrisdamba/foodcart/internal/repositories/postgres"
	"github.com/chrisdamba/foodcart/internal/repositories/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type stores struct {
	catalog repositories.CatalogRepository
	carts   repositories.CartRepository
	close   func()
}

// openStores connects the configured catalog and cart repositories. The
// sqlite driver only persists carts; its catalog lives in memory.
func openStores(ctx context.Context, cfg *models.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case models.StoreDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("connected to postgres store")
		return &stores{
			catalog: postgres.NewCatalogRepository(pool),
			carts:   postgres.NewCartRepository(pool),
			close:   pool.Close,
		}, nil
	case models.StoreDriverSQLite:
		carts, err := sqlite.NewCartRepository(cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("opened sqlite cart store", zap.String("dsn", cfg.Store.DSN))
		return &stores{
			catalog: memory.NewCatalogRepository(),
			carts:   carts,
			close: func() {
				if err := carts.Close(); err != nil {
					logger.Warn("closing sqlite store", zap.Error(err))
				}
			},
		}, nil
	default:
		return &stores{
			catalog: memory.NewCatalogRepository(),
			carts:   memory.NewCartRepository(),
			close:   func() {},
		}, nil
	}
}
