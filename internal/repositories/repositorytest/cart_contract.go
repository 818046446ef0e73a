// Package repositorytest holds behaviour shared by every repository
// implementation.
package repositorytest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/repositories"
	"github.com/google/go-cmp/cmp"
)

func sampleCart(id string) *models.StoredCart {
	return &models.StoredCart{
		ID:        id,
		UpdatedAt: time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC),
		Cart: models.SimplifiedCart{
			{
				ID:       1,
				Quantity: 2,
				Groups: []models.SimpleGroup{
					{ID: 5, Options: []models.SimpleOption{{ID: 10, Quantity: 1}, {ID: 11, Quantity: 2}}},
					{ID: 6, Options: []models.SimpleOption{}},
				},
				MadeFor: "Ana",
				Notes:   "no onions",
			},
			{ID: 2, Quantity: 1, Groups: []models.SimpleGroup{}, CartGuestID: 21, CustomerID: 5},
		},
	}
}

// CartRepository exercises the CartRepository contract against a fresh, empty
// repository.
func CartRepository(t *testing.T, repo repositories.CartRepository) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		want := sampleCart("cart-a")
		if err := repo.Save(ctx, want); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := repo.Get(ctx, "cart-a")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("stored cart mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("save replaces", func(t *testing.T) {
		replacement := sampleCart("cart-a")
		replacement.Cart = replacement.Cart[1:]
		replacement.UpdatedAt = replacement.UpdatedAt.Add(time.Hour)
		if err := repo.Save(ctx, replacement); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := repo.Get(ctx, "cart-a")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if diff := cmp.Diff(replacement, got); diff != "" {
			t.Errorf("replaced cart mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		empty := &models.StoredCart{ID: "cart-empty", Cart: models.SimplifiedCart{}, UpdatedAt: time.Now().UTC().Truncate(time.Second)}
		if err := repo.Save(ctx, empty); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := repo.Get(ctx, "cart-empty")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(got.Cart) != 0 {
			t.Errorf("empty cart came back with %d lines", len(got.Cart))
		}
	})

	t.Run("ids and count", func(t *testing.T) {
		if err := repo.Save(ctx, sampleCart("cart-b")); err != nil {
			t.Fatalf("Save: %v", err)
		}
		ids, err := repo.IDs(ctx)
		if err != nil {
			t.Fatalf("IDs: %v", err)
		}
		if diff := cmp.Diff([]string{"cart-a", "cart-b", "cart-empty"}, ids); diff != "" {
			t.Errorf("ids (-want +got):\n%s", diff)
		}
		count, err := repo.Count(ctx)
		if err != nil || count != 3 {
			t.Errorf("Count = %d, %v, want 3", count, err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, repositories.ErrCartNotFound) {
			t.Errorf("Get missing = %v, want ErrCartNotFound", err)
		}
		if err := repo.Delete(ctx, "missing"); !errors.Is(err, repositories.ErrCartNotFound) {
			t.Errorf("Delete missing = %v, want ErrCartNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(ctx, "cart-b"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.Get(ctx, "cart-b"); !errors.Is(err, repositories.ErrCartNotFound) {
			t.Errorf("deleted cart still readable: %v", err)
		}
		if err := repo.DeleteAll(ctx); err != nil {
			t.Fatalf("DeleteAll: %v", err)
		}
		if count, _ := repo.Count(ctx); count != 0 {
			t.Errorf("Count after DeleteAll = %d", count)
		}
	})
}
