package cart

import (
	"testing"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/google/go-cmp/cmp"
)

type lineSummary struct {
	ID        int
	Quantity  int
	Total     string
	Signature string
	Notes     string
}

func summarize(cart models.Cart) []lineSummary {
	summary := make([]lineSummary, 0, len(cart))
	for _, line := range cart {
		summary = append(summary, lineSummary{
			ID:        line.ID,
			Quantity:  line.Quantity,
			Total:     DisplayPrice(line.TotalPrice),
			Signature: CartItemSignature(line),
			Notes:     line.Notes,
		})
	}
	return summary
}

func sampleCart() models.Cart {
	noted := selectOption(MakeOrderItem(burger(), ItemOptions{}), 5, 11, 1)
	noted.Notes = "well done"
	cart, _ := AddItem(nil, noted)
	cart, _ = AddItem(cart, MakeOrderItem(fries(), ItemOptions{}))
	cart, _ = AddItem(cart, selectOption(MakeOrderItem(shake(), ItemOptions{}), 30, 31, 2))
	cart, _ = IncrementItem(cart, 1)
	return cart
}

func TestRehydrateRoundTrip(t *testing.T) {
	cart := sampleCart()

	rehydrated, counts := RehydrateCart(testCatalog(), MakeSimpleCart(cart))

	if diff := cmp.Diff(summarize(cart), summarize(rehydrated)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(cart, rehydrated, decimalComparer); diff != "" {
		t.Errorf("round trip changed lines (-want +got):\n%s", diff)
	}
	checkCartInvariants(t, rehydrated, counts)
}

func TestMakeSimpleCartKeepsSelectionsOnly(t *testing.T) {
	simple := MakeSimpleCart(sampleCart())

	want := models.SimplifiedCart{
		{ID: 1, Quantity: 1, Notes: "well done", Groups: []models.SimpleGroup{
			{ID: 5, Options: []models.SimpleOption{{ID: 10, Quantity: 1}, {ID: 11, Quantity: 1}}},
		}},
		{ID: 2, Quantity: 3, Groups: []models.SimpleGroup{}},
		{ID: 3, Quantity: 1, Groups: []models.SimpleGroup{
			{ID: 20, Options: []models.SimpleOption{{ID: 21, Quantity: 1}}},
			{ID: 30, Options: []models.SimpleOption{{ID: 31, Quantity: 2}}},
		}},
	}
	if diff := cmp.Diff(want, simple); diff != "" {
		t.Errorf("MakeSimpleCart (-want +got):\n%s", diff)
	}
}

func TestRehydrateRepricesFromCatalog(t *testing.T) {
	simple := MakeSimpleCart(sampleCart())

	pricier := burger()
	pricier.Price = dec("11.50")
	rehydrated, _ := RehydrateCart(testCatalog(pricier, fries(), shake()), simple)

	if got := DisplayPrice(rehydrated[0].TotalPrice); got != "14.50" {
		t.Errorf("total = %s, want 14.50", got)
	}
}

func TestRehydrateDropsUnknownItems(t *testing.T) {
	simple := models.SimplifiedCart{
		{ID: 404, Quantity: 1},
		{ID: 2, Quantity: 0},
		{ID: 1, Quantity: 1, Groups: []models.SimpleGroup{
			{ID: 5, Options: []models.SimpleOption{{ID: 99, Quantity: 1}, {ID: 11, Quantity: 1}}},
			{ID: 6, Options: []models.SimpleOption{{ID: 60, Quantity: 1}}},
		}},
	}

	cart, counts := RehydrateCart(testCatalog(), simple)

	if len(cart) != 2 {
		t.Fatalf("cart has %d lines, want 2", len(cart))
	}
	if cart[0].ID != 2 || cart[0].Quantity != 1 {
		t.Errorf("zero quantity line = id %d quantity %d, want id 2 quantity 1", cart[0].ID, cart[0].Quantity)
	}
	// selections the catalog no longer lists stay on the line for validation
	if got := ItemSignature(cart[1]); got != "1.11.60.99" {
		t.Errorf("signature %q, want stale selections kept", got)
	}
	if len(cart[1].Groups) != 2 || cart[1].Groups[1].ID != 6 {
		t.Errorf("removed group not kept: %+v", cart[1].Groups)
	}
	checkCartInvariants(t, cart, counts)
}

func TestLoadingSavedCartReportsCatalogDrift(t *testing.T) {
	saved := selectOption(MakeOrderItem(burger(), ItemOptions{}), 5, 11, 1)
	if got := DisplayPrice(saved.TotalPrice); got != "13.00" {
		t.Fatalf("saved total = %s, want 13.00", got)
	}
	shakeLine := selectOption(MakeOrderItem(shake(), ItemOptions{}), 30, 31, 2)
	cart, _ := AddItem(nil, saved)
	cart, _ = AddItem(cart, shakeLine)
	simple := MakeSimpleCart(cart)

	noBacon := burger()
	noBacon.OptionGroups[0].OptionItems = noBacon.OptionGroups[0].OptionItems[:1]
	noExtras := shake()
	noExtras.OptionGroups = noExtras.OptionGroups[:1]
	catalog := testCatalog(noBacon, fries(), noExtras)

	rehydrated, _ := RehydrateCart(catalog, simple)
	result := ValidateCart(rehydrated, catalog, nil)

	if len(result.Cart) != 0 {
		t.Errorf("drifted lines kept: %v", summarize(result.Cart))
	}
	if result.Errors == nil || len(result.Errors.InvalidItems) != 2 {
		t.Fatalf("errors = %v, want 2 invalid items", result.Errors)
	}
	burgerErr, shakeErr := result.Errors.InvalidItems[0], result.Errors.InvalidItems[1]
	if len(burgerErr.MissingOptions) != 1 || burgerErr.MissingOptions[0].ID != 11 {
		t.Errorf("missing options = %+v, want option 11", burgerErr.MissingOptions)
	}
	if len(shakeErr.InvalidGroups) != 1 || shakeErr.InvalidGroups[0].ID != 30 {
		t.Errorf("invalid groups = %+v, want group 30", shakeErr.InvalidGroups)
	}
}

func TestLoadingSavedCartRejectsNegativeQuantities(t *testing.T) {
	tests := []struct {
		name  string
		line  models.SimpleCartItem
		check func(t *testing.T, invalid models.InvalidItem)
	}{
		{
			name: "item quantity",
			line: models.SimpleCartItem{ID: 3, Quantity: -3, Groups: []models.SimpleGroup{
				{ID: 20, Options: []models.SimpleOption{{ID: 22, Quantity: 1}}},
			}},
			check: func(t *testing.T, invalid models.InvalidItem) {
				if !invalid.QuantityOutOfRange {
					t.Error("negative item quantity not flagged")
				}
			},
		},
		{
			name: "option quantity",
			line: models.SimpleCartItem{ID: 1, Quantity: 1, Groups: []models.SimpleGroup{
				{ID: 5, Options: []models.SimpleOption{{ID: 10, Quantity: -1}, {ID: 11, Quantity: 2}}},
			}},
			check: func(t *testing.T, invalid models.InvalidItem) {
				if len(invalid.InvalidOptions) != 1 || invalid.InvalidOptions[0].ID != 10 {
					t.Errorf("invalid options = %+v, want option 10", invalid.InvalidOptions)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := testCatalog()
			rehydrated, _ := RehydrateCart(catalog, models.SimplifiedCart{tt.line})
			result := ValidateCart(rehydrated, catalog, nil)

			if len(result.Cart) != 0 {
				t.Errorf("line kept: %v", summarize(result.Cart))
			}
			if result.Errors == nil || len(result.Errors.InvalidItems) != 1 {
				t.Fatalf("errors = %v, want 1 invalid item", result.Errors)
			}
			tt.check(t, result.Errors.InvalidItems[0])
		})
	}
}

func TestRehydrateEmptyCart(t *testing.T) {
	cart, counts := RehydrateCart(testCatalog(), nil)
	if len(cart) != 0 || len(counts) != 0 {
		t.Errorf("RehydrateCart(nil) = %v, %v", cart, counts)
	}
}
