package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OrderDetails carries free-form order details. PersonCount arrives as
// whatever the form produced and is submitted as an integer.
type OrderDetails struct {
	CartID          string      `json:"cart_id,omitempty"`
	EatingUtensils  bool        `json:"eating_utensils,omitempty"`
	ServingUtensils bool        `json:"serving_utensils,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	PersonCount     interface{} `json:"person_count,omitempty"`
	TaxExemptID     string      `json:"tax_exempt_id,omitempty"`
	DeviceType      string      `json:"device_type,omitempty"`
}

// OrderRequest is everything the checkout flow hands over for submission.
// Sections other than the cart belong to collaborators and pass through as
// raw JSON.
type OrderRequest struct {
	RevenueCenterID int
	ServiceType     string
	RequestedAt     string
	Cart            Cart
	Customer        json.RawMessage
	Details         *OrderDetails
	DeviceType      string
	Surcharges      json.RawMessage
	Discounts       json.RawMessage
	PromoCodes      []string
	Points          json.RawMessage
	Tip             *decimal.Decimal
	Tenders         json.RawMessage
	Address         json.RawMessage
	OrderID         int
	CartID          string
}

// OrderPayload is the body submitted to the ordering API.
type OrderPayload struct {
	RevenueCenterID *int             `json:"revenue_center_id"`
	ServiceType     string           `json:"service_type"`
	RequestedAt     string           `json:"requested_at"`
	Cart            SimplifiedCart   `json:"cart"`
	Customer        json.RawMessage  `json:"customer,omitempty"`
	Details         *OrderDetails    `json:"details,omitempty"`
	Surcharges      json.RawMessage  `json:"surcharges,omitempty"`
	Discounts       json.RawMessage  `json:"discounts,omitempty"`
	PromoCodes      []string         `json:"promo_codes,omitempty"`
	Points          json.RawMessage  `json:"points,omitempty"`
	Tip             *decimal.Decimal `json:"tip,omitempty"`
	Tenders         json.RawMessage  `json:"tenders,omitempty"`
	Address         json.RawMessage  `json:"address,omitempty"`
	OrderID         int              `json:"order_id,omitempty"`
	CartID          string           `json:"cart_id,omitempty"`
}

// CartOwner is the customer who owns a group order.
type CartOwner struct {
	CustomerID int    `json:"customer_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

// CartGuest is a participant invited to a group order.
type CartGuest struct {
	CartGuestID int    `json:"cart_guest_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type ItemImage struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// PastOrderItem is a cart line as returned on a historical order or a saved
// favorite. Groups only list the options that were selected.
type PastOrderItem struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	ShortDescription string           `json:"short_description,omitempty"`
	Description      string           `json:"description,omitempty"`
	Images           []ItemImage      `json:"images,omitempty"`
	Allergens        []string         `json:"allergens,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	NutritionalInfo  *NutritionalInfo `json:"nutritional_info,omitempty"`
	Groups           []PastOrderGroup `json:"groups,omitempty"`
	Quantity         int              `json:"quantity,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	PriceTotal       *decimal.Decimal `json:"price_total,omitempty"`
	MadeFor          string           `json:"made_for,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	FavoriteID       int              `json:"favorite_id,omitempty"`
}

type PastOrderGroup struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Options []PastOrderItem `json:"options"`
}

type PastOrder struct {
	OrderID int             `json:"order_id"`
	Cart    []PastOrderItem `json:"cart"`
}

type Favorite struct {
	FavoriteID int            `json:"favorite_id"`
	Cart       *PastOrderItem `json:"cart"`
}

// DisplayItem is a past-order line shaped for display.
type DisplayItem struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	Description      string           `json:"description,omitempty"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	Allergens        []string         `json:"allergens"`
	Tags             []string         `json:"tags"`
	NutritionalInfo  *NutritionalInfo `json:"nutritionalInfo"`
	Cals             *int             `json:"cals"`
	Groups           []DisplayGroup   `json:"groups"`
	Quantity         int              `json:"quantity"`
	Price            *decimal.Decimal `json:"price"`
	TotalPrice       *decimal.Decimal `json:"totalPrice"`
	MadeFor          string           `json:"madeFor,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	FavoriteID       int              `json:"favoriteId,omitempty"`
	Signature        string           `json:"signature,omitempty"`
}

type DisplayGroup struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Options []DisplayItem `json:"options"`
}

// FavoriteEntry pairs a live catalog item with the saved configuration that
// made it a favorite or recent.
type FavoriteEntry struct {
	Item     CatalogItem   `json:"item"`
	Saved    PastOrderItem `json:"saved"`
	Favorite int           `json:"favorite_id,omitempty"`
}
