package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

var (
	itemColumns = []string{
		"id", "name", "short_name", "category_name", "description", "large_image_url",
		"slug", "allergens", "tags", "ingredients", "nutritional_info", "price", "points",
		"increment", "min_quantity", "max_quantity", "menu_id", "section_id",
		"upsell_items", "similar_items",
	}
	groupColumns = []string{
		"item_id", "id", "position", "name", "description", "small_image_url",
		"included_options", "min_options", "max_options", "is_size",
	}
	optionColumns = []string{
		"item_id", "group_id", "id", "position", "name", "short_name", "description",
		"small_image_url", "allergens", "tags", "ingredients", "nutritional_info", "price",
		"opt_is_default", "increment", "min_quantity", "max_quantity", "points", "is_snoozed",
	}
)

func itemRow(item models.CatalogItem) []interface{} {
	return []interface{}{
		item.ID,
		item.Name,
		item.ShortName,
		item.CategoryName,
		item.Description,
		item.LargeImageURL,
		item.Slug,
		item.Allergens,
		item.Tags,
		item.Ingredients,
		item.NutritionalInfo,
		item.Price,
		item.Points,
		item.Increment,
		item.MinQuantity,
		item.MaxQuantity,
		item.MenuID,
		item.SectionID,
		nonNil(item.UpsellItems),
		nonNil(item.SimilarItems),
	}
}

func groupRows(item models.CatalogItem) [][]interface{} {
	rows := make([][]interface{}, 0, len(item.OptionGroups))
	for position, g := range item.OptionGroups {
		rows = append(rows, []interface{}{
			item.ID,
			g.ID,
			position,
			g.Name,
			g.Description,
			g.SmallImageURL,
			g.IncludedOptions,
			g.MinOptions,
			g.MaxOptions,
			g.IsSize,
		})
	}
	return rows
}

func optionRows(item models.CatalogItem) [][]interface{} {
	var rows [][]interface{}
	for _, g := range item.OptionGroups {
		for position, o := range g.OptionItems {
			rows = append(rows, []interface{}{
				item.ID,
				g.ID,
				o.ID,
				position,
				o.Name,
				o.ShortName,
				o.Description,
				o.SmallImageURL,
				o.Allergens,
				o.Tags,
				o.Ingredients,
				o.NutritionalInfo,
				o.Price,
				o.IsDefault,
				o.Increment,
				o.MinQuantity,
				o.MaxQuantity,
				o.Points,
				o.IsSnoozed,
			})
		}
	}
	return rows
}

// BulkCreate copies items, groups and options in one transaction so positions
// stay consistent with the declared order.
func (r *CatalogRepository) BulkCreate(ctx context.Context, items []models.CatalogItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := copyItems(ctx, tx, items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func copyItems(ctx context.Context, tx pgx.Tx, items []models.CatalogItem) error {
	itemRows := make([][]interface{}, 0, len(items))
	var groups, options [][]interface{}
	for _, item := range items {
		itemRows = append(itemRows, itemRow(item))
		groups = append(groups, groupRows(item)...)
		options = append(options, optionRows(item)...)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"catalog_items"}, itemColumns, pgx.CopyFromRows(itemRows)); err != nil {
		return fmt.Errorf("failed to copy catalog items: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"catalog_option_groups"}, groupColumns, pgx.CopyFromRows(groups)); err != nil {
		return fmt.Errorf("failed to copy option groups: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"catalog_option_items"}, optionColumns, pgx.CopyFromRows(options)); err != nil {
		return fmt.Errorf("failed to copy option items: %w", err)
	}
	return nil
}

func (r *CatalogRepository) Create(ctx context.Context, item models.CatalogItem) error {
	return r.BulkCreate(ctx, []models.CatalogItem{item})
}

// Update rewrites an item with its groups and options. The item keeps its
// place in catalog order.
func (r *CatalogRepository) Update(ctx context.Context, item models.CatalogItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        UPDATE catalog_items SET
            name = $2, short_name = $3, category_name = $4, description = $5,
            large_image_url = $6, slug = $7, allergens = $8, tags = $9, ingredients = $10,
            nutritional_info = $11, price = $12, points = $13, increment = $14,
            min_quantity = $15, max_quantity = $16, menu_id = $17, section_id = $18,
            upsell_items = $19, similar_items = $20
        WHERE id = $1
    `
	tag, err := tx.Exec(ctx, query, itemRow(item)...)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update item %d: %w", item.ID, repositories.ErrItemNotFound)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM catalog_option_groups WHERE item_id = $1", item.ID); err != nil {
		return fmt.Errorf("failed to clear groups of item %d: %w", item.ID, err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"catalog_option_groups"}, groupColumns, pgx.CopyFromRows(groupRows(item))); err != nil {
		return fmt.Errorf("failed to copy option groups: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"catalog_option_items"}, optionColumns, pgx.CopyFromRows(optionRows(item))); err != nil {
		return fmt.Errorf("failed to copy option items: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *CatalogRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM catalog_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete item %d: %w", id, repositories.ErrItemNotFound)
	}
	return nil
}

const selectItems = `
    SELECT
        id, name, short_name, category_name, description, large_image_url,
        slug, allergens, tags, ingredients, nutritional_info, price, points,
        increment, min_quantity, max_quantity, menu_id, section_id,
        upsell_items, similar_items
    FROM catalog_items
`

func scanItem(row pgx.Row) (models.CatalogItem, error) {
	var item models.CatalogItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.ShortName,
		&item.CategoryName,
		&item.Description,
		&item.LargeImageURL,
		&item.Slug,
		&item.Allergens,
		&item.Tags,
		&item.Ingredients,
		&item.NutritionalInfo,
		&item.Price,
		&item.Points,
		&item.Increment,
		&item.MinQuantity,
		&item.MaxQuantity,
		&item.MenuID,
		&item.SectionID,
		&item.UpsellItems,
		&item.SimilarItems,
	)
	return item, err
}

func (r *CatalogRepository) GetAll(ctx context.Context) ([]models.CatalogItem, error) {
	rows, err := r.pool.Query(ctx, selectItems+" ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	groups, err := r.loadGroups(ctx, nil)
	if err != nil {
		return nil, err
	}
	for n := range items {
		items[n].OptionGroups = groups[items[n].ID]
	}
	return items, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id int) (models.CatalogItem, error) {
	item, err := scanItem(r.pool.QueryRow(ctx, selectItems+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.CatalogItem{}, fmt.Errorf("get item %d: %w", id, repositories.ErrItemNotFound)
	}
	if err != nil {
		return models.CatalogItem{}, err
	}

	groups, err := r.loadGroups(ctx, &id)
	if err != nil {
		return models.CatalogItem{}, err
	}
	item.OptionGroups = groups[id]
	return item, nil
}

// loadGroups returns option groups with their options keyed by item id, in
// declared order. A nil itemID loads every item.
func (r *CatalogRepository) loadGroups(ctx context.Context, itemID *int) (map[int][]models.CatalogOptionGroup, error) {
	groupQuery := `
        SELECT item_id, id, name, description, small_image_url,
               included_options, min_options, max_options, is_size
        FROM catalog_option_groups
        WHERE $1::integer IS NULL OR item_id = $1
        ORDER BY item_id, position
    `
	rows, err := r.pool.Query(ctx, groupQuery, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type groupKey struct{ item, group int }
	groups := make(map[int][]models.CatalogOptionGroup)
	index := make(map[groupKey]int)
	for rows.Next() {
		var (
			owner int
			g     models.CatalogOptionGroup
		)
		err := rows.Scan(
			&owner,
			&g.ID,
			&g.Name,
			&g.Description,
			&g.SmallImageURL,
			&g.IncludedOptions,
			&g.MinOptions,
			&g.MaxOptions,
			&g.IsSize,
		)
		if err != nil {
			return nil, err
		}
		index[groupKey{owner, g.ID}] = len(groups[owner])
		groups[owner] = append(groups[owner], g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optionQuery := `
        SELECT item_id, group_id, id, name, short_name, description, small_image_url,
               allergens, tags, ingredients, nutritional_info, price, opt_is_default,
               increment, min_quantity, max_quantity, points, is_snoozed
        FROM catalog_option_items
        WHERE $1::integer IS NULL OR item_id = $1
        ORDER BY item_id, group_id, position
    `
	options, err := r.pool.Query(ctx, optionQuery, itemID)
	if err != nil {
		return nil, err
	}
	defer options.Close()

	for options.Next() {
		var (
			owner, groupID int
			o              models.CatalogOptionItem
		)
		err := options.Scan(
			&owner,
			&groupID,
			&o.ID,
			&o.Name,
			&o.ShortName,
			&o.Description,
			&o.SmallImageURL,
			&o.Allergens,
			&o.Tags,
			&o.Ingredients,
			&o.NutritionalInfo,
			&o.Price,
			&o.IsDefault,
			&o.Increment,
			&o.MinQuantity,
			&o.MaxQuantity,
			&o.Points,
			&o.IsSnoozed,
		)
		if err != nil {
			return nil, err
		}
		n, ok := index[groupKey{owner, groupID}]
		if !ok {
			continue
		}
		groups[owner][n].OptionItems = append(groups[owner][n].OptionItems, o)
	}
	return groups, options.Err()
}

func (r *CatalogRepository) SoldOut(ctx context.Context) (models.SoldOutSet, error) {
	rows, err := r.pool.Query(ctx, "SELECT id FROM sold_out")
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, err
	}
	return models.NewSoldOutSet(ids...), nil
}

// SetSoldOut replaces the sold-out set.
func (r *CatalogRepository) SetSoldOut(ctx context.Context, ids []int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM sold_out"); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "INSERT INTO sold_out (id) SELECT DISTINCT unnest($1::integer[])", nonNil(ids)); err != nil {
		return fmt.Errorf("failed to insert sold out ids: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *CatalogRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM catalog_items").Scan(&count)
	return count, err
}

func (r *CatalogRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE catalog_items, catalog_option_groups, catalog_option_items, sold_out CASCADE")
	return err
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
