package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/repositories/repositorytest"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// testPool connects to FOODCART_TEST_POSTGRES_DSN and skips the test when it
// is not set.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("FOODCART_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FOODCART_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return pool
}

func TestCartRepository(t *testing.T) {
	repo := NewCartRepository(testPool(t))
	if err := repo.DeleteAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	repositorytest.CartRepository(t, repo)
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(testPool(t))
	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatal(err)
	}

	burger := models.CatalogItem{
		ID: 1, Name: "Burger", Price: decimal.RequireFromString("10.00"),
		Increment: 1, MinQuantity: 1, MaxQuantity: 10,
		OptionGroups: []models.CatalogOptionGroup{{
			ID: 5, Name: "Toppings", IncludedOptions: 1, MaxOptions: 2,
			OptionItems: []models.CatalogOptionItem{
				{ID: 11, Name: "Bacon", Price: decimal.RequireFromString("3.00"), MaxQuantity: 2},
				{ID: 10, Name: "Cheese", Price: decimal.RequireFromString("2.00"), IsDefault: true, MaxQuantity: 2},
			},
		}},
	}
	fries := models.CatalogItem{ID: 2, Name: "Fries", Price: decimal.RequireFromString("3.50"), Increment: 1, MaxQuantity: 6}
	if err := repo.BulkCreate(ctx, []models.CatalogItem{burger, fries}); err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}

	got, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	var options []int
	for _, option := range got.OptionGroups[0].OptionItems {
		options = append(options, option.ID)
	}
	// pricing depends on the declared option order surviving storage
	if diff := cmp.Diff([]int{11, 10}, options); diff != "" {
		t.Errorf("option order (-want +got):\n%s", diff)
	}

	if err := repo.SetSoldOut(ctx, []int{10, 2}); err != nil {
		t.Fatalf("SetSoldOut: %v", err)
	}
	soldOut, err := repo.SoldOut(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{2, 10}, soldOut.IDs()); diff != "" {
		t.Errorf("sold out (-want +got):\n%s", diff)
	}

	if err := repo.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if count, err := repo.Count(ctx); err != nil || count != 1 {
		t.Errorf("Count = %d, %v, want 1", count, err)
	}
}
