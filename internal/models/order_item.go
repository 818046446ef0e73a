package models

import "github.com/shopspring/decimal"

// OrderOption is a modifier with its selected quantity and computed totals.
// Cals is nil when the calorie count is unknown, which is not the same as zero.
type OrderOption struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	ShortName       string           `json:"shortName,omitempty"`
	Description     string           `json:"description,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	Allergens       []string         `json:"allergens"`
	Tags            []string         `json:"tags"`
	Ingredients     string           `json:"ingredients,omitempty"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	Cals            *int             `json:"cals"`
	Price           decimal.Decimal  `json:"price"`
	Quantity        int              `json:"quantity"`
	IsDefault       bool             `json:"isDefault"`
	Increment       int              `json:"increment"`
	Min             int              `json:"min"`
	Max             int              `json:"max"`
	IsSoldOut       bool             `json:"isSoldOut"`
	Points          int              `json:"points"`
	IsSnoozed       bool             `json:"isSnoozed,omitempty"`

	TotalPrice  decimal.Decimal `json:"totalPrice"`
	TotalPoints int             `json:"totalPoints"`
	TotalCals   int             `json:"totalCals"`
}

type OrderGroup struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Included    int           `json:"included"`
	Min         int           `json:"min"`
	Max         int           `json:"max"`
	IsSize      bool          `json:"isSize"`
	Quantity    int           `json:"quantity"`
	Options     []OrderOption `json:"options"`
}

// OrderItem is a priced cart line. Index is nil until the line is placed in a
// cart; once in a cart it always equals the line's position.
type OrderItem struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	ShortName       string           `json:"shortName,omitempty"`
	Category        string           `json:"category,omitempty"`
	Description     string           `json:"description,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	Slug            string           `json:"slug,omitempty"`
	Allergens       []string         `json:"allergens"`
	Tags            []string         `json:"tags"`
	Ingredients     string           `json:"ingredients,omitempty"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	Cals            *int             `json:"cals"`
	Groups          []OrderGroup     `json:"groups"`
	Quantity        int              `json:"quantity"`
	Price           decimal.Decimal  `json:"price"`
	Increment       int              `json:"increment"`
	Min             int              `json:"min"`
	Max             int              `json:"max"`
	MenuID          int              `json:"menu_id,omitempty"`
	SectionID       int              `json:"section_id,omitempty"`
	Points          *int             `json:"points"`
	UpsellItems     []int            `json:"upsellItems"`
	SimilarItems    []int            `json:"similarItems"`

	Index *int `json:"index,omitempty"`

	MadeFor     string `json:"madeFor,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CartGuestID int    `json:"cart_guest_id,omitempty"`
	CustomerID  int    `json:"customer_id,omitempty"`

	TotalPrice  decimal.Decimal `json:"totalPrice"`
	TotalPoints *int            `json:"totalPoints"`
	TotalCals   *int            `json:"totalCals"`
}

// Position reports the line's cart index, if it has one.
func (i OrderItem) Position() (int, bool) {
	if i.Index == nil {
		return 0, false
	}
	return *i.Index, true
}

// Clone returns a copy that shares no slices or pointers with i.
func (i OrderItem) Clone() OrderItem {
	clone := i
	clone.Allergens = cloneStrings(i.Allergens)
	clone.Tags = cloneStrings(i.Tags)
	clone.UpsellItems = cloneInts(i.UpsellItems)
	clone.SimilarItems = cloneInts(i.SimilarItems)
	clone.Cals = cloneIntPtr(i.Cals)
	clone.Points = cloneIntPtr(i.Points)
	clone.Index = cloneIntPtr(i.Index)
	clone.TotalPoints = cloneIntPtr(i.TotalPoints)
	clone.TotalCals = cloneIntPtr(i.TotalCals)
	if i.Groups != nil {
		clone.Groups = make([]OrderGroup, len(i.Groups))
		for n, g := range i.Groups {
			clone.Groups[n] = g.Clone()
		}
	}
	return clone
}

func (g OrderGroup) Clone() OrderGroup {
	clone := g
	if g.Options != nil {
		clone.Options = make([]OrderOption, len(g.Options))
		for n, o := range g.Options {
			o.Allergens = cloneStrings(o.Allergens)
			o.Tags = cloneStrings(o.Tags)
			o.Cals = cloneIntPtr(o.Cals)
			clone.Options[n] = o
		}
	}
	return clone
}

// SelectedQuantity sums the quantities of every option in the group.
func (g OrderGroup) SelectedQuantity() int {
	total := 0
	for _, o := range g.Options {
		total += o.Quantity
	}
	return total
}

func IntPtr(v int) *int {
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}
