package models

import (
	"fmt"
	"strings"
	"time"
)

// Cart is an ordered list of lines where Cart[i].Index == i.
type Cart []OrderItem

// CartCounts maps a catalog item id to the total quantity of that item across
// every line of a cart.
type CartCounts map[int]int

type SimpleOption struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

type SimpleGroup struct {
	ID      int            `json:"id"`
	Options []SimpleOption `json:"options"`
}

// SimpleCartItem is the persisted form of a cart line. It never carries prices.
type SimpleCartItem struct {
	ID          int           `json:"id"`
	Quantity    int           `json:"quantity"`
	Groups      []SimpleGroup `json:"groups"`
	MadeFor     string        `json:"made_for"`
	Notes       string        `json:"notes"`
	CartGuestID int           `json:"cart_guest_id,omitempty"`
	CustomerID  int           `json:"customer_id,omitempty"`
}

type SimplifiedCart []SimpleCartItem

// ItemIDs returns the distinct item ids referenced by the cart in first-seen order.
func (c SimplifiedCart) ItemIDs() []int {
	seen := make(map[int]bool, len(c))
	ids := make([]int, 0, len(c))
	for _, line := range c {
		if seen[line.ID] {
			continue
		}
		seen[line.ID] = true
		ids = append(ids, line.ID)
	}
	return ids
}

// StoredCart is a simplified cart as kept by a cart repository.
type StoredCart struct {
	ID        string         `json:"id"`
	Cart      SimplifiedCart `json:"cart"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// InvalidItem is a cart line that can no longer be ordered as configured,
// along with the parts of its configuration that drifted.
type InvalidItem struct {
	OrderItem
	MissingGroups  []OrderGroup  `json:"missingGroups"`
	InvalidGroups  []OrderGroup  `json:"invalidGroups"`
	MissingOptions []OrderOption `json:"missingOptions"`
	InvalidOptions []OrderOption `json:"invalidOptions"`
	// QuantityOutOfRange is set when only the line quantity violates the
	// current item bounds.
	QuantityOutOfRange bool `json:"quantityOutOfRange,omitempty"`
}

// ValidationErrors is the drift report produced by cart validation. A nil
// report means every line survived unchanged in structure.
type ValidationErrors struct {
	MissingItems []OrderItem   `json:"missingItems"`
	InvalidItems []InvalidItem `json:"invalidItems"`
}

func (e *ValidationErrors) Error() string {
	if e == nil {
		return "no validation errors"
	}
	var parts []string
	for _, item := range e.MissingItems {
		parts = append(parts, fmt.Sprintf("%s (%d) is no longer available", item.Name, item.ID))
	}
	for _, item := range e.InvalidItems {
		parts = append(parts, fmt.Sprintf("%s (%d) has changed: %d missing groups, %d invalid groups, %d missing options, %d invalid options",
			item.Name, item.ID, len(item.MissingGroups), len(item.InvalidGroups), len(item.MissingOptions), len(item.InvalidOptions)))
	}
	return strings.Join(parts, "; ")
}

// Empty reports whether the report carries no problems.
func (e *ValidationErrors) Empty() bool {
	return e == nil || (len(e.MissingItems) == 0 && len(e.InvalidItems) == 0)
}
