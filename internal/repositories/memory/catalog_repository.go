package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/repositories"
)

type CatalogRepository struct {
	mu      sync.RWMutex
	items   map[int]models.CatalogItem
	order   []int
	soldOut models.SoldOutSet
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		items:   make(map[int]models.CatalogItem),
		soldOut: models.NewSoldOutSet(),
	}
}

func (r *CatalogRepository) BulkCreate(ctx context.Context, items []models.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		if err := r.insert(item); err != nil {
			return err
		}
	}
	return nil
}

func (r *CatalogRepository) Create(ctx context.Context, item models.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(item)
}

func (r *CatalogRepository) insert(item models.CatalogItem) error {
	if _, ok := r.items[item.ID]; ok {
		return fmt.Errorf("catalog item %d already exists", item.ID)
	}
	r.items[item.ID] = item.Clone()
	r.order = append(r.order, item.ID)
	return nil
}

// Update swaps the stored copy of an existing item, keeping its position.
func (r *CatalogRepository) Update(ctx context.Context, item models.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("update item %d: %w", item.ID, repositories.ErrItemNotFound)
	}
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("delete item %d: %w", id, repositories.ErrItemNotFound)
	}
	delete(r.items, id)
	for n, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:n:n], r.order[n+1:]...)
			break
		}
	}
	return nil
}

func (r *CatalogRepository) GetAll(ctx context.Context) ([]models.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]models.CatalogItem, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id].Clone())
	}
	return items, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id int) (models.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return models.CatalogItem{}, fmt.Errorf("get item %d: %w", id, repositories.ErrItemNotFound)
	}
	return item.Clone(), nil
}

func (r *CatalogRepository) SoldOut(ctx context.Context) (models.SoldOutSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.NewSoldOutSet(r.soldOut.IDs()...), nil
}

func (r *CatalogRepository) SetSoldOut(ctx context.Context, ids []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.soldOut = models.NewSoldOutSet(ids...)
	return nil
}

func (r *CatalogRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}

func (r *CatalogRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[int]models.CatalogItem)
	r.order = nil
	r.soldOut = models.NewSoldOutSet()
	return nil
}
