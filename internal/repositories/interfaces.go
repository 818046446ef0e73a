package repositories

import (
	"context"
	"errors"

	"github.com/chrisdamba/foodcart/internal/models"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("catalog item not found")
)

// CatalogRepository stores the live catalog snapshot. GetAll returns items in
// the order they were created; option groups and options keep their declared
// order, which pricing depends on.
type CatalogRepository interface {
	BulkCreate(ctx context.Context, items []models.CatalogItem) error
	Create(ctx context.Context, item models.CatalogItem) error
	GetAll(ctx context.Context) ([]models.CatalogItem, error)
	GetByID(ctx context.Context, id int) (models.CatalogItem, error)
	Update(ctx context.Context, item models.CatalogItem) error
	Delete(ctx context.Context, id int) error
	SoldOut(ctx context.Context) (models.SoldOutSet, error)
	SetSoldOut(ctx context.Context, ids []int) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// CartRepository stores simplified carts by cart id. Save replaces any cart
// with the same id.
type CartRepository interface {
	Save(ctx context.Context, cart *models.StoredCart) error
	Get(ctx context.Context, id string) (*models.StoredCart, error)
	Delete(ctx context.Context, id string) error
	IDs(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
