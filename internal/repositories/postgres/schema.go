package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
    CREATE TABLE IF NOT EXISTS catalog_items (
        seq BIGSERIAL,
        id INTEGER PRIMARY KEY,
        name TEXT NOT NULL,
        short_name TEXT NOT NULL DEFAULT '',
        category_name TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        large_image_url TEXT NOT NULL DEFAULT '',
        slug TEXT NOT NULL DEFAULT '',
        allergens TEXT NOT NULL DEFAULT '',
        tags TEXT NOT NULL DEFAULT '',
        ingredients TEXT NOT NULL DEFAULT '',
        nutritional_info JSONB,
        price NUMERIC(12, 4) NOT NULL,
        points INTEGER NOT NULL DEFAULT 0,
        increment INTEGER NOT NULL DEFAULT 0,
        min_quantity INTEGER NOT NULL DEFAULT 0,
        max_quantity INTEGER NOT NULL DEFAULT 0,
        menu_id INTEGER NOT NULL DEFAULT 0,
        section_id INTEGER NOT NULL DEFAULT 0,
        upsell_items INTEGER[] NOT NULL DEFAULT '{}',
        similar_items INTEGER[] NOT NULL DEFAULT '{}'
    );

    CREATE TABLE IF NOT EXISTS catalog_option_groups (
        item_id INTEGER NOT NULL REFERENCES catalog_items(id) ON DELETE CASCADE,
        id INTEGER NOT NULL,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        small_image_url TEXT NOT NULL DEFAULT '',
        included_options INTEGER NOT NULL DEFAULT 0,
        min_options INTEGER NOT NULL DEFAULT 0,
        max_options INTEGER NOT NULL DEFAULT 0,
        is_size BOOLEAN NOT NULL DEFAULT FALSE,
        PRIMARY KEY (item_id, id)
    );

    CREATE TABLE IF NOT EXISTS catalog_option_items (
        item_id INTEGER NOT NULL,
        group_id INTEGER NOT NULL,
        id INTEGER NOT NULL,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        short_name TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        small_image_url TEXT NOT NULL DEFAULT '',
        allergens TEXT NOT NULL DEFAULT '',
        tags TEXT NOT NULL DEFAULT '',
        ingredients TEXT NOT NULL DEFAULT '',
        nutritional_info JSONB,
        price NUMERIC(12, 4) NOT NULL,
        opt_is_default BOOLEAN NOT NULL DEFAULT FALSE,
        increment INTEGER NOT NULL DEFAULT 0,
        min_quantity INTEGER NOT NULL DEFAULT 0,
        max_quantity INTEGER NOT NULL DEFAULT 0,
        points INTEGER NOT NULL DEFAULT 0,
        is_snoozed BOOLEAN NOT NULL DEFAULT FALSE,
        PRIMARY KEY (item_id, group_id, id),
        FOREIGN KEY (item_id, group_id) REFERENCES catalog_option_groups(item_id, id) ON DELETE CASCADE
    );

    CREATE TABLE IF NOT EXISTS sold_out (
        id INTEGER PRIMARY KEY
    );

    CREATE TABLE IF NOT EXISTS carts (
        id TEXT PRIMARY KEY,
        cart JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );

    CREATE INDEX IF NOT EXISTS idx_catalog_items_seq ON catalog_items(seq);
    CREATE INDEX IF NOT EXISTS idx_carts_updated_at ON carts(updated_at);
`

// Migrate creates the catalog and cart tables when they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
