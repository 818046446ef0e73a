package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/repositories"
)

// CartRepository keeps carts as JSON so callers never share slices with the
// store, the same as a database round trip.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]storedCart
}

type storedCart struct {
	payload   []byte
	updatedAt time.Time
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]storedCart)}
}

func (r *CartRepository) Save(ctx context.Context, cart *models.StoredCart) error {
	payload, err := json.Marshal(cart.Cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", cart.ID, err)
	}
	updatedAt := cart.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.ID] = storedCart{payload: payload, updatedAt: updatedAt}
	return nil
}

func (r *CartRepository) Get(ctx context.Context, id string) (*models.StoredCart, error) {
	r.mu.RLock()
	stored, ok := r.carts[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("get cart %s: %w", id, repositories.ErrCartNotFound)
	}

	var cart models.SimplifiedCart
	if err := json.Unmarshal(stored.payload, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
	}
	return &models.StoredCart{ID: id, Cart: cart, UpdatedAt: stored.updatedAt}, nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return fmt.Errorf("delete cart %s: %w", id, repositories.ErrCartNotFound)
	}
	delete(r.carts, id)
	return nil
}

func (r *CartRepository) IDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.carts))
	for id := range r.carts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *CartRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts), nil
}

func (r *CartRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts = make(map[string]storedCart)
	return nil
}
