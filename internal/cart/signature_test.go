package cart

import (
	"testing"

	"github.com/chrisdamba/foodcart/internal/models"
)

func TestSignatures(t *testing.T) {
	base := MakeOrderItem(shake(), ItemOptions{})
	triple := selectOption(selectOption(base, 20, 22, 1), 30, 31, 3)
	triple = selectOption(triple, 20, 21, 0)

	tests := []struct {
		name    string
		item    models.OrderItem
		display string
		cart    string
	}{
		{"defaults", base, "3.21", "3.21.."},
		{"repeated option", triple, "3.22.31", "3.22.31.31.31.."},
		{"personalized", func() models.OrderItem {
			item := base.Clone()
			item.MadeFor = "Ana"
			item.Notes = "extra cold"
			return item
		}(), "3.21", "3.21.Ana.extra cold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemSignature(tt.item); got != tt.display {
				t.Errorf("ItemSignature = %q, want %q", got, tt.display)
			}
			if got := CartItemSignature(tt.item); got != tt.cart {
				t.Errorf("CartItemSignature = %q, want %q", got, tt.cart)
			}
		})
	}
}

func TestSignatureIgnoresGroupOrder(t *testing.T) {
	item := selectOption(MakeOrderItem(shake(), ItemOptions{}), 30, 31, 1)
	reversed := item.Clone()
	reversed.Groups[0], reversed.Groups[1] = reversed.Groups[1], reversed.Groups[0]

	if ItemSignature(item) != ItemSignature(reversed) {
		t.Errorf("display signature depends on group order")
	}
	if CartItemSignature(item) != CartItemSignature(reversed) {
		t.Errorf("cart signature depends on group order")
	}
}

func TestPastItemSignature(t *testing.T) {
	past := models.PastOrderItem{
		ID: 3,
		Groups: []models.PastOrderGroup{
			{ID: 30, Options: []models.PastOrderItem{{ID: 31}, {ID: 31}}},
			{ID: 20, Options: []models.PastOrderItem{{ID: 22}}},
		},
	}
	if got := PastItemSignature(past); got != "3.22.31" {
		t.Errorf("PastItemSignature = %q, want 3.22.31", got)
	}
}
