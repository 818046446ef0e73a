package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartRepository stores simplified carts as JSONB documents.
type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) Save(ctx context.Context, cart *models.StoredCart) error {
	updatedAt := cart.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	simple := cart.Cart
	if simple == nil {
		simple = models.SimplifiedCart{}
	}
	query := `
        INSERT INTO carts (id, cart, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET cart = EXCLUDED.cart, updated_at = EXCLUDED.updated_at
    `
	if _, err := r.pool.Exec(ctx, query, cart.ID, simple, updatedAt); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cart.ID, err)
	}
	return nil
}

func (r *CartRepository) Get(ctx context.Context, id string) (*models.StoredCart, error) {
	stored := &models.StoredCart{}
	err := r.pool.QueryRow(ctx, "SELECT id, cart, updated_at FROM carts WHERE id = $1", id).
		Scan(&stored.ID, &stored.Cart, &stored.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get cart %s: %w", id, repositories.ErrCartNotFound)
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM carts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete cart %s: %w", id, repositories.ErrCartNotFound)
	}
	return nil
}

func (r *CartRepository) IDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, "SELECT id FROM carts ORDER BY id")
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *CartRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM carts").Scan(&count)
	return count, err
}

func (r *CartRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE carts")
	return err
}
