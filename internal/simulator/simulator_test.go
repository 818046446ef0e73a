package simulator

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/output"
	"github.com/chrisdamba/foodcart/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var start = time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)

func testConfig() *models.Config {
	return &models.Config{
		Simulation: models.SimulationConfig{
			Seed:        11,
			Sessions:    30,
			Items:       15,
			ActionsMin:  2,
			ActionsMax:  6,
			DriftRate:   0.3,
			SoldOutRate: 0.1,
			ThinkTime:   time.Minute,
		},
	}
}

func run(t *testing.T, cfg *models.Config) (Stats, *memory.CartRepository, *memory.CatalogRepository) {
	t.Helper()
	catalog := memory.NewCatalogRepository()
	carts := memory.NewCartRepository()
	sim := NewSimulator(cfg, catalog, carts, output.NewConsoleOutput(io.Discard), zap.NewNop(),
		WithStart(start), WithProgress(io.Discard))

	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !sim.CurrentTime.After(start) {
		t.Errorf("simulated clock did not advance")
	}
	return stats, carts, catalog
}

func TestRunAccountsForEverySession(t *testing.T) {
	stats, carts, _ := run(t, testConfig())

	if stats.Sessions != 30 {
		t.Errorf("sessions = %d, want 30", stats.Sessions)
	}
	finished := stats.Orders + stats.RejectedOrders + stats.Abandoned
	if finished != stats.Sessions {
		t.Errorf("orders %d + rejected %d + abandoned %d != sessions %d",
			stats.Orders, stats.RejectedOrders, stats.Abandoned, stats.Sessions)
	}
	if stats.LinesAdded == 0 || stats.Orders == 0 {
		t.Errorf("nothing happened: %+v", stats)
	}
	if stats.Orders > 0 && !stats.Revenue.GreaterThan(decimal.Zero) {
		t.Errorf("orders without revenue: %+v", stats)
	}
	if stats.CatalogChanges == 0 {
		t.Errorf("catalog never drifted")
	}

	// submitted carts are deleted; only rejected or abandoned carts may remain
	left, err := carts.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if left > stats.RejectedOrders+stats.Abandoned {
		t.Errorf("%d carts left behind, want at most %d", left, stats.RejectedOrders+stats.Abandoned)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	first, _, _ := run(t, testConfig())
	second, _, _ := run(t, testConfig())

	first.Revenue, second.Revenue = first.Revenue.Round(2), second.Revenue.Round(2)
	if first.Revenue.String() != second.Revenue.String() {
		t.Errorf("revenue %s != %s", first.Revenue, second.Revenue)
	}
	first.Revenue, second.Revenue = decimal.Zero, decimal.Zero
	if first != second {
		t.Errorf("same seed, different runs:\n%+v\n%+v", first, second)
	}
}

func TestHeavyDriftInvalidatesCarts(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.DriftRate = 1
	cfg.Simulation.SoldOutRate = 0.5

	stats, _, _ := run(t, cfg)
	if stats.DriftedCarts == 0 || stats.MissingLines+stats.InvalidLines == 0 {
		t.Errorf("no cart noticed the drift: %+v", stats)
	}
}

func TestDriftItemLeavesOriginalUntouched(t *testing.T) {
	sim := NewSimulator(testConfig(), memory.NewCatalogRepository(), memory.NewCartRepository(), nil, zap.NewNop())
	item := models.CatalogItem{
		ID:        1,
		Price:     decimal.RequireFromString("10"),
		Increment: 1,
		OptionGroups: []models.CatalogOptionGroup{{
			ID:          5,
			OptionItems: []models.CatalogOptionItem{{ID: 10}, {ID: 11}},
		}},
	}

	dropped := sim.driftItem(item, driftDropOption)
	if len(dropped.OptionGroups[0].OptionItems) != 1 || len(item.OptionGroups[0].OptionItems) != 2 {
		t.Errorf("drop option: got %d options, original %d", len(dropped.OptionGroups[0].OptionItems), len(item.OptionGroups[0].OptionItems))
	}

	tightened := sim.driftItem(item, driftTightenQuantity)
	if tightened.MaxQuantity != 1 || item.MaxQuantity != 0 {
		t.Errorf("tighten: max %d, original %d", tightened.MaxQuantity, item.MaxQuantity)
	}

	grown := sim.driftItem(item, driftRequiredGroup)
	if len(grown.OptionGroups) != 2 || grown.OptionGroups[1].MinOptions != 1 || len(item.OptionGroups) != 1 {
		t.Errorf("required group: %+v", grown.OptionGroups)
	}

	repriced := sim.driftItem(item, driftPrice)
	if repriced.Price.LessThan(decimal.RequireFromString("9")) || repriced.Price.GreaterThan(decimal.RequireFromString("12")) {
		t.Errorf("repriced to %s", repriced.Price)
	}
}
