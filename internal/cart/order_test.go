package cart

import (
	"encoding/json"
	"testing"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestPrepareOrder(t *testing.T) {
	cart := sampleCart()
	tip := dec("2.50")

	order := PrepareOrder(models.OrderRequest{
		RevenueCenterID: 12,
		ServiceType:     models.ServiceTypeDelivery,
		Cart:            cart,
		Customer:        json.RawMessage(`{"customer_id":5}`),
		Details:         &models.OrderDetails{PersonCount: "4", Notes: "ring twice"},
		DeviceType:      "DESKTOP",
		Tip:             &tip,
	})

	if order.RevenueCenterID == nil || *order.RevenueCenterID != 12 {
		t.Errorf("revenue center = %v, want 12", order.RevenueCenterID)
	}
	if order.RequestedAt != models.RequestedAtASAP {
		t.Errorf("requested at = %q, want %q", order.RequestedAt, models.RequestedAtASAP)
	}
	if diff := cmp.Diff(MakeSimpleCart(cart), order.Cart); diff != "" {
		t.Errorf("cart (-want +got):\n%s", diff)
	}
	want := &models.OrderDetails{PersonCount: 4, Notes: "ring twice", DeviceType: "DESKTOP"}
	if diff := cmp.Diff(want, order.Details); diff != "" {
		t.Errorf("details (-want +got):\n%s", diff)
	}
	if order.Tip == nil || !order.Tip.Equal(tip) {
		t.Errorf("tip = %v, want 2.50", order.Tip)
	}
}

func TestPrepareOrderDefaults(t *testing.T) {
	zero := decimal.Zero
	order := PrepareOrder(models.OrderRequest{
		Details: &models.OrderDetails{PersonCount: "lots"},
		Tip:     &zero,
	})

	if order.ServiceType != models.ServiceTypePickup {
		t.Errorf("service type = %q", order.ServiceType)
	}
	if order.RevenueCenterID != nil || order.Tip != nil {
		t.Errorf("empty fields submitted: %v %v", order.RevenueCenterID, order.Tip)
	}
	if order.Details.PersonCount != nil {
		t.Errorf("unparseable person count submitted: %v", order.Details.PersonCount)
	}
	if order.Cart == nil {
		t.Errorf("cart is nil, want empty")
	}
}

func TestPersonCount(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int
		ok   bool
	}{
		{3, 3, true},
		{float64(2.9), 2, true},
		{" 6 ", 6, true},
		{"7.5", 7, true},
		{"0", 0, false},
		{"", 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := personCount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("personCount(%v) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
