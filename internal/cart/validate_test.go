package cart

import (
	"testing"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestValidateCartIsIdempotent(t *testing.T) {
	catalog := testCatalog()
	cart := sampleCart()

	result := ValidateCart(cart, catalog, nil)
	if result.Errors != nil {
		t.Fatalf("valid cart reported errors: %v", result.Errors)
	}
	if diff := cmp.Diff(cart, result.Cart, decimalComparer); diff != "" {
		t.Errorf("valid cart changed (-want +got):\n%s", diff)
	}
	checkCartInvariants(t, result.Cart, result.Counts)

	again := ValidateCart(result.Cart, catalog, nil)
	if again.Errors != nil {
		t.Errorf("second validation reported errors: %v", again.Errors)
	}
	if diff := cmp.Diff(result.Cart, again.Cart, decimalComparer); diff != "" {
		t.Errorf("second validation changed the cart (-want +got):\n%s", diff)
	}
}

func TestValidateCartMissingOption(t *testing.T) {
	line := MakeOrderItem(burger(), ItemOptions{})
	line.Groups[0].Options = append(line.Groups[0].Options, models.OrderOption{ID: 99, Name: "Truffle", Price: dec("5"), Quantity: 1})
	cart, _ := AddItem(nil, line)

	result := ValidateCart(cart, testCatalog(), nil)

	if len(result.Cart) != 0 {
		t.Errorf("invalid line kept in cart")
	}
	if result.Errors == nil {
		t.Fatal("no errors reported")
	}
	if len(result.Errors.MissingItems) != 0 {
		t.Errorf("missing items = %d, want 0", len(result.Errors.MissingItems))
	}
	if len(result.Errors.InvalidItems) != 1 {
		t.Fatalf("invalid items = %d, want 1", len(result.Errors.InvalidItems))
	}
	invalid := result.Errors.InvalidItems[0]
	if len(invalid.MissingOptions) != 1 || invalid.MissingOptions[0].ID != 99 {
		t.Errorf("missing options = %+v, want option 99", invalid.MissingOptions)
	}
	if invalid.ID != 1 {
		t.Errorf("invalid item id = %d, want 1", invalid.ID)
	}
}

func TestValidateCartClassifiesDrift(t *testing.T) {
	burgerLine := MakeOrderItem(burger(), ItemOptions{})
	shakeLine := selectOption(MakeOrderItem(shake(), ItemOptions{}), 30, 31, 2)

	tests := []struct {
		name    string
		line    models.OrderItem
		live    []models.CatalogItem
		soldOut models.SoldOutSet
		status  string
		check   func(t *testing.T, invalid *models.InvalidItem)
	}{
		{
			name:   "item removed",
			line:   burgerLine,
			live:   []models.CatalogItem{fries()},
			status: models.LineStatusMissing,
		},
		{
			name:    "item sold out",
			line:    burgerLine,
			soldOut: models.NewSoldOutSet(1),
			status:  models.LineStatusMissing,
		},
		{
			name:    "selected option sold out",
			line:    burgerLine,
			soldOut: models.NewSoldOutSet(10),
			status:  models.LineStatusInvalid,
			check: func(t *testing.T, invalid *models.InvalidItem) {
				if len(invalid.MissingOptions) != 1 || invalid.MissingOptions[0].ID != 10 {
					t.Errorf("missing options = %+v", invalid.MissingOptions)
				}
			},
		},
		{
			name:    "unselected option sold out",
			line:    burgerLine,
			soldOut: models.NewSoldOutSet(11),
			status:  models.LineStatusValid,
		},
		{
			name: "new required group",
			line: burgerLine,
			live: func() []models.CatalogItem {
				item := burger()
				item.OptionGroups = append(item.OptionGroups, models.CatalogOptionGroup{
					ID: 6, Name: "Bun", MinOptions: 1, MaxOptions: 1,
					OptionItems: []models.CatalogOptionItem{{ID: 60, Name: "Brioche"}},
				})
				return []models.CatalogItem{item}
			}(),
			status: models.LineStatusInvalid,
			check: func(t *testing.T, invalid *models.InvalidItem) {
				if len(invalid.MissingGroups) != 1 || invalid.MissingGroups[0].ID != 6 {
					t.Errorf("missing groups = %+v", invalid.MissingGroups)
				}
			},
		},
		{
			name: "selected group removed",
			line: shakeLine,
			live: func() []models.CatalogItem {
				item := shake()
				item.OptionGroups = item.OptionGroups[:1]
				return []models.CatalogItem{item}
			}(),
			status: models.LineStatusInvalid,
			check: func(t *testing.T, invalid *models.InvalidItem) {
				if len(invalid.InvalidGroups) != 1 || invalid.InvalidGroups[0].ID != 30 {
					t.Errorf("invalid groups = %+v", invalid.InvalidGroups)
				}
			},
		},
		{
			name: "unselected group removed",
			line: MakeOrderItem(shake(), ItemOptions{}),
			live: func() []models.CatalogItem {
				item := shake()
				item.OptionGroups = item.OptionGroups[:1]
				return []models.CatalogItem{item}
			}(),
			status: models.LineStatusValid,
		},
		{
			name: "option above new max",
			line: shakeLine,
			live: func() []models.CatalogItem {
				item := shake()
				item.OptionGroups[1].OptionItems[0].MaxQuantity = 1
				return []models.CatalogItem{item}
			}(),
			status: models.LineStatusInvalid,
			check: func(t *testing.T, invalid *models.InvalidItem) {
				if len(invalid.InvalidOptions) != 1 || invalid.InvalidOptions[0].ID != 31 {
					t.Errorf("invalid options = %+v", invalid.InvalidOptions)
				}
			},
		},
		{
			name: "group total above new max",
			line: shakeLine,
			live: func() []models.CatalogItem {
				item := shake()
				item.OptionGroups[1].MaxOptions = 1
				return []models.CatalogItem{item}
			}(),
			status: models.LineStatusInvalid,
			check: func(t *testing.T, invalid *models.InvalidItem) {
				if len(invalid.InvalidGroups) != 1 || invalid.InvalidGroups[0].ID != 30 {
					t.Errorf("invalid groups = %+v", invalid.InvalidGroups)
				}
				if len(invalid.InvalidOptions) != 0 {
					t.Errorf("invalid options = %+v, want none", invalid.InvalidOptions)
				}
			},
		},
		{
			name: "item quantity below new minimum",
			line: burgerLine,
			live: func() []models.CatalogItem {
				item := burger()
				item.MinQuantity = 2
				return []models.CatalogItem{item}
			}(),
			status: models.LineStatusInvalid,
			check: func(t *testing.T, invalid *models.InvalidItem) {
				if !invalid.QuantityOutOfRange {
					t.Errorf("quantity violation not flagged")
				}
			},
		},
		{
			name: "group left with no options",
			line: burgerLine,
			live: func() []models.CatalogItem {
				item := burger()
				item.OptionGroups[0].OptionItems = nil
				return []models.CatalogItem{item}
			}(),
			status: models.LineStatusMissing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live := tt.live
			if live == nil {
				live = []models.CatalogItem{burger(), fries(), shake()}
			}
			result := ValidateLine(tt.line, NewCatalog(live), tt.soldOut)
			if result.Status != tt.status {
				t.Fatalf("status = %s, want %s", result.Status, tt.status)
			}
			if tt.status == models.LineStatusInvalid && result.Invalid == nil {
				t.Fatal("invalid line has no report")
			}
			if tt.check != nil {
				tt.check(t, result.Invalid)
			}
		})
	}
}

func TestValidateCartRefreshesSurvivors(t *testing.T) {
	cart := sampleCart()

	updated := burger()
	updated.Price = dec("12")
	updated.OptionGroups[0].OptionItems = append(updated.OptionGroups[0].OptionItems,
		models.CatalogOptionItem{ID: 12, Name: "Egg", Price: dec("1.5")})
	updatedShake := shake()
	updatedShake.OptionGroups = append(updatedShake.OptionGroups, models.CatalogOptionGroup{
		ID: 40, Name: "Straw", OptionItems: []models.CatalogOptionItem{{ID: 41, Name: "Paper"}},
	})

	result := ValidateCart(cart, NewCatalog([]models.CatalogItem{updated, fries(), updatedShake}), nil)
	if result.Errors != nil {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := DisplayPrice(result.Cart[0].TotalPrice); got != "15.00" {
		t.Errorf("repriced total = %s, want 15.00", got)
	}
	if q := findOption(t, result.Cart[0], 12).Quantity; q != 0 {
		t.Errorf("new option offered at quantity %d", q)
	}

	groups := result.Cart[2].Groups
	if len(groups) != 3 || groups[2].ID != 40 || groups[2].SelectedQuantity() != 0 {
		t.Errorf("new optional group not offered: %+v", groups)
	}
}

func TestValidateCartJudgesLinesIndependently(t *testing.T) {
	cart := sampleCart()
	result := ValidateCart(cart, NewCatalog([]models.CatalogItem{fries(), shake()}), models.NewSoldOutSet(3))

	if len(result.Cart) != 1 || result.Cart[0].ID != 2 {
		t.Fatalf("surviving lines = %v", summarize(result.Cart))
	}
	checkCartInvariants(t, result.Cart, result.Counts)

	if result.Errors == nil || len(result.Errors.MissingItems) != 2 {
		t.Fatalf("errors = %v, want 2 missing items", result.Errors)
	}
	if result.Errors.InvalidItems == nil {
		t.Errorf("invalid items is nil, want empty")
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	var empty *models.ValidationErrors
	if !empty.Empty() {
		t.Error("nil report not empty")
	}

	errs := &models.ValidationErrors{
		MissingItems: []models.OrderItem{{ID: 1, Name: "Burger"}},
		InvalidItems: []models.InvalidItem{},
	}
	if errs.Empty() {
		t.Error("report with missing items is empty")
	}
	if got, want := errs.Error(), "Burger (1) is no longer available"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
