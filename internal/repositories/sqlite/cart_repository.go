package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/repositories"
)

// CartRepository keeps carts in an embedded SQLite database, one row per
// cart line so lines stay queryable by item.
type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(dsn string) (*CartRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps in-memory databases shared and serializes writes
	db.SetMaxOpenConns(1)

	repo := &CartRepository{db: db}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return repo, nil
}

func (r *CartRepository) Close() error {
	return r.db.Close()
}

func (r *CartRepository) initSchema() error {
	schema := `
    PRAGMA foreign_keys = ON;

    CREATE TABLE IF NOT EXISTS carts (
        id TEXT PRIMARY KEY,
        updated_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS cart_lines (
        cart_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        item_id INTEGER NOT NULL,
        quantity INTEGER NOT NULL,
        option_groups TEXT NOT NULL,
        made_for TEXT NOT NULL DEFAULT '',
        notes TEXT NOT NULL DEFAULT '',
        cart_guest_id INTEGER NOT NULL DEFAULT 0,
        customer_id INTEGER NOT NULL DEFAULT 0,
        PRIMARY KEY (cart_id, position),
        FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_cart_lines_item_id ON cart_lines(item_id);
    `
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *CartRepository) Save(ctx context.Context, cart *models.StoredCart) error {
	updatedAt := cart.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	cartQuery := `
        INSERT INTO carts (id, updated_at) VALUES (?, ?)
        ON CONFLICT (id) DO UPDATE SET updated_at = excluded.updated_at
    `
	if _, err := tx.ExecContext(ctx, cartQuery, cart.ID, updatedAt.Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_lines WHERE cart_id = ?", cart.ID); err != nil {
		return fmt.Errorf("failed to clear cart lines: %w", err)
	}

	lineQuery := `
        INSERT INTO cart_lines (cart_id, position, item_id, quantity, option_groups, made_for, notes, cart_guest_id, customer_id)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	for position, line := range cart.Cart {
		groups := line.Groups
		if groups == nil {
			groups = []models.SimpleGroup{}
		}
		groupsJSON, err := json.Marshal(groups)
		if err != nil {
			return fmt.Errorf("failed to encode groups: %w", err)
		}
		_, err = tx.ExecContext(ctx, lineQuery,
			cart.ID, position, line.ID, line.Quantity, string(groupsJSON),
			line.MadeFor, line.Notes, line.CartGuestID, line.CustomerID)
		if err != nil {
			return fmt.Errorf("failed to insert cart line: %w", err)
		}
	}

	return tx.Commit()
}

func (r *CartRepository) Get(ctx context.Context, id string) (*models.StoredCart, error) {
	var updatedAtStr string
	err := r.db.QueryRowContext(ctx, "SELECT updated_at FROM carts WHERE id = ?", id).Scan(&updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get cart %s: %w", id, repositories.ErrCartNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	stored := &models.StoredCart{ID: id, Cart: models.SimplifiedCart{}}
	if stored.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	query := `
        SELECT item_id, quantity, option_groups, made_for, notes, cart_guest_id, customer_id
        FROM cart_lines
        WHERE cart_id = ?
        ORDER BY position
    `
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line       models.SimpleCartItem
			groupsJSON string
		)
		err := rows.Scan(&line.ID, &line.Quantity, &groupsJSON, &line.MadeFor, &line.Notes, &line.CartGuestID, &line.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		if err := json.Unmarshal([]byte(groupsJSON), &line.Groups); err != nil {
			return nil, fmt.Errorf("failed to decode groups: %w", err)
		}
		stored.Cart = append(stored.Cart, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart lines: %w", err)
	}
	return stored, nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_lines WHERE cart_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete cart lines: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM carts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete cart %s: %w", id, repositories.ErrCartNotFound)
	}
	return tx.Commit()
}

func (r *CartRepository) IDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM carts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query carts: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cart id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *CartRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM carts").Scan(&count)
	return count, err
}

func (r *CartRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM cart_lines; DELETE FROM carts;"); err != nil {
		return fmt.Errorf("failed to delete carts: %w", err)
	}
	return nil
}
