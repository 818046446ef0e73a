package cart

import (
	"testing"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestMakeOrderItemAppliesDefaults(t *testing.T) {
	item := MakeOrderItem(burger(), ItemOptions{})

	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}
	cheese := findOption(t, item, 10)
	if cheese.Quantity != 1 {
		t.Errorf("default option quantity = %d, want 1", cheese.Quantity)
	}
	if !cheese.TotalPrice.IsZero() {
		t.Errorf("included option billed %s, want 0", cheese.TotalPrice)
	}
	if got := DisplayPrice(item.TotalPrice); got != "10.00" {
		t.Errorf("total = %s, want 10.00", got)
	}
	if item.Index != nil {
		t.Errorf("fresh item has index %d", *item.Index)
	}
	if diff := cmp.Diff([]string{"gluten", "dairy"}, item.Allergens); diff != "" {
		t.Errorf("allergens (-want +got):\n%s", diff)
	}
}

func TestMakeOrderItemEditModeSkipsDefaults(t *testing.T) {
	item := MakeOrderItem(burger(), ItemOptions{IsEdit: true})
	if q := findOption(t, item, 10).Quantity; q != 0 {
		t.Errorf("edit mode selected default option, quantity %d", q)
	}
	if got := DisplayPrice(item.TotalPrice); got != "10.00" {
		t.Errorf("total = %s, want 10.00", got)
	}
}

func TestMakeOrderItemSoldOutOption(t *testing.T) {
	item := MakeOrderItem(burger(), ItemOptions{SoldOut: models.NewSoldOutSet(10)})
	cheese := findOption(t, item, 10)
	if cheese.Quantity != 0 || cheese.Max != 0 || !cheese.IsSoldOut {
		t.Errorf("sold out default option = %+v", cheese)
	}
}

func TestMakeOrderItemPoints(t *testing.T) {
	catalogItem := burger()
	catalogItem.Points = 50

	if item := MakeOrderItem(catalogItem, ItemOptions{}); item.Points != nil || item.TotalPoints != nil {
		t.Errorf("points kept with points disabled: %v %v", item.Points, item.TotalPoints)
	}
	item := MakeOrderItem(catalogItem, ItemOptions{PointsEnabled: true})
	if item.TotalPoints == nil || *item.TotalPoints != 50 {
		t.Errorf("total points = %v, want 50", item.TotalPoints)
	}
}

func TestCalcPricesSecondOptionIsBilled(t *testing.T) {
	item := selectOption(MakeOrderItem(burger(), ItemOptions{}), 5, 11, 1)

	if q := item.Groups[0].Quantity; q != 2 {
		t.Errorf("group quantity = %d, want 2", q)
	}
	if p := findOption(t, item, 10).TotalPrice; !p.IsZero() {
		t.Errorf("cheese billed %s, want 0", p)
	}
	if p := DisplayPrice(findOption(t, item, 11).TotalPrice); p != "3.00" {
		t.Errorf("bacon billed %s, want 3.00", p)
	}
	if got := DisplayPrice(item.TotalPrice); got != "13.00" {
		t.Errorf("total = %s, want 13.00", got)
	}
}

func TestCalcPricesIncludedFollowsDeclaredOrder(t *testing.T) {
	option := func(id int, price string) models.OrderOption {
		return models.OrderOption{ID: id, Price: dec(price), Quantity: 1}
	}
	a, b, c := option(1, "1.00"), option(2, "2.00"), option(3, "4.00")

	tests := []struct {
		name    string
		options []models.OrderOption
		billed  int
		total   string
	}{
		{"A B C", []models.OrderOption{a, b, c}, 3, "4.00"},
		{"C A B", []models.OrderOption{c, a, b}, 2, "2.00"},
		{"B C A", []models.OrderOption{b, c, a}, 1, "1.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := CalcPrices(models.OrderItem{
				ID:       100,
				Quantity: 1,
				Groups:   []models.OrderGroup{{ID: 1, Included: 2, Options: tt.options}},
			})
			for _, o := range item.Groups[0].Options {
				if o.ID == tt.billed && o.TotalPrice.IsZero() {
					t.Errorf("option %d not billed", o.ID)
				}
				if o.ID != tt.billed && !o.TotalPrice.IsZero() {
					t.Errorf("option %d billed %s", o.ID, o.TotalPrice)
				}
			}
			if got := DisplayPrice(item.TotalPrice); got != tt.total {
				t.Errorf("total = %s, want %s", got, tt.total)
			}
		})
	}
}

func TestCalcPricesPartialInclusion(t *testing.T) {
	item := CalcPrices(models.OrderItem{
		ID:       100,
		Quantity: 2,
		Price:    dec("5"),
		Groups: []models.OrderGroup{{
			ID:       1,
			Included: 2,
			Options: []models.OrderOption{
				{ID: 1, Price: dec("1.25"), Quantity: 3},
				{ID: 2, Price: dec("0.50"), Quantity: 1},
			},
		}},
	})
	// one unit of the first option and all of the second are billable
	if got := DisplayPrice(item.TotalPrice); got != "13.50" {
		t.Errorf("total = %s, want 13.50", got)
	}
}

func TestCalcPricesLeavesInputUntouched(t *testing.T) {
	item := MakeOrderItem(burger(), ItemOptions{})
	before := item.Clone()
	item.Groups[0].Options[1].Quantity = 1

	_ = CalcPrices(item)
	if diff := cmp.Diff(before.Groups[0].Options[1].TotalPrice, item.Groups[0].Options[1].TotalPrice, decimalComparer); diff != "" {
		t.Errorf("input was repriced (-want +got):\n%s", diff)
	}
}

func TestCalories(t *testing.T) {
	tests := []struct {
		name string
		info *models.NutritionalInfo
		want *int
	}{
		{"unknown", nil, nil},
		{"zero", &models.NutritionalInfo{Calories: "0"}, models.IntPtr(0)},
		{"unit suffix", &models.NutritionalInfo{Calories: "250 kcal"}, models.IntPtr(250)},
		{"garbage", &models.NutritionalInfo{Calories: "n/a"}, nil},
		{"empty", &models.NutritionalInfo{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseCalories(tt.info)); diff != "" {
				t.Errorf("ParseCalories (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("totals", func(t *testing.T) {
		item := selectOption(MakeOrderItem(burger(), ItemOptions{}), 5, 11, 1)
		if item.TotalCals == nil || *item.TotalCals != 700 {
			t.Errorf("total cals = %v, want 700", item.TotalCals)
		}

		zero := fries()
		zero.NutritionalInfo = &models.NutritionalInfo{Calories: "0"}
		if cals := MakeOrderItem(zero, ItemOptions{}).TotalCals; cals == nil || *cals != 0 {
			t.Errorf("zero calorie item total = %v, want 0", cals)
		}
		if cals := MakeOrderItem(fries(), ItemOptions{}).TotalCals; cals != nil {
			t.Errorf("unknown calorie item total = %d, want nil", *cals)
		}
	})
}
