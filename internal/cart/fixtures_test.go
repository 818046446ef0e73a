package cart

import (
	"testing"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// burger is a required toppings group with one included topping, cheese
// selected by default.
func burger() models.CatalogItem {
	return models.CatalogItem{
		ID:              1,
		Name:            "Burger",
		CategoryName:    "Mains",
		Price:           dec("10.00"),
		NutritionalInfo: &models.NutritionalInfo{Calories: "500"},
		Allergens:       "gluten, dairy",
		OptionGroups: []models.CatalogOptionGroup{
			{
				ID:              5,
				Name:            "Toppings",
				IncludedOptions: 1,
				MinOptions:      1,
				MaxOptions:      2,
				OptionItems: []models.CatalogOptionItem{
					{ID: 10, Name: "Cheese", Price: dec("2"), IsDefault: true, NutritionalInfo: &models.NutritionalInfo{Calories: "80"}},
					{ID: 11, Name: "Bacon", Price: dec("3"), NutritionalInfo: &models.NutritionalInfo{Calories: "120"}},
				},
			},
		},
	}
}

// fries must be ordered two at a time at minimum.
func fries() models.CatalogItem {
	return models.CatalogItem{
		ID:          2,
		Name:        "Fries",
		Price:       dec("3.50"),
		Increment:   1,
		MinQuantity: 2,
		MaxQuantity: 6,
	}
}

// shake has a size group and an optional extras group.
func shake() models.CatalogItem {
	return models.CatalogItem{
		ID:    3,
		Name:  "Shake",
		Price: dec("0"),
		OptionGroups: []models.CatalogOptionGroup{
			{
				ID:         20,
				Name:       "Size",
				IsSize:     true,
				MinOptions: 1,
				MaxOptions: 1,
				OptionItems: []models.CatalogOptionItem{
					{ID: 21, Name: "Regular", Price: dec("3"), IsDefault: true},
					{ID: 22, Name: "Large", Price: dec("4.5")},
				},
			},
			{
				ID:   30,
				Name: "Extras",
				OptionItems: []models.CatalogOptionItem{
					{ID: 31, Name: "Whipped Cream", Price: dec("0.75"), MaxQuantity: 2},
				},
			},
		},
	}
}

func testCatalog(items ...models.CatalogItem) *Catalog {
	if len(items) == 0 {
		items = []models.CatalogItem{burger(), fries(), shake()}
	}
	return NewCatalog(items)
}

// selectOption sets an option quantity on a line and reprices it.
func selectOption(item models.OrderItem, groupID, optionID, quantity int) models.OrderItem {
	updated := item.Clone()
	for g := range updated.Groups {
		if updated.Groups[g].ID != groupID {
			continue
		}
		for o := range updated.Groups[g].Options {
			if updated.Groups[g].Options[o].ID == optionID {
				updated.Groups[g].Options[o].Quantity = quantity
			}
		}
	}
	return CalcPrices(updated)
}

func findOption(t *testing.T, item models.OrderItem, optionID int) models.OrderOption {
	t.Helper()
	for _, g := range item.Groups {
		for _, o := range g.Options {
			if o.ID == optionID {
				return o
			}
		}
	}
	t.Fatalf("option %d not found on item %d", optionID, item.ID)
	return models.OrderOption{}
}

// checkCartInvariants asserts that indexes match positions and counts match
// the quantities in the cart.
func checkCartInvariants(t *testing.T, cart models.Cart, counts models.CartCounts) {
	t.Helper()
	want := map[int]int{}
	for n, line := range cart {
		pos, ok := line.Position()
		if !ok || pos != n {
			t.Errorf("line %d has index %v", n, line.Index)
		}
		want[line.ID] += line.Quantity
	}
	if diff := cmp.Diff(want, map[int]int(counts)); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}
