package models

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// NutritionalInfo is passed through from the menu service untouched apart from
// calories, which the engine parses leniently.
type NutritionalInfo struct {
	Calories     NutrientValue `json:"calories"`
	TotalFat     NutrientValue `json:"total_fat,omitempty"`
	Carbohydrate NutrientValue `json:"total_carbs,omitempty"`
	Protein      NutrientValue `json:"protein,omitempty"`
	ServingSize  NutrientValue `json:"serving_size,omitempty"`
}

// NutrientValue is a nutrition figure as published, either "250 kcal" or 250.
// Values of any other JSON type decode as empty, which reads as unknown.
type NutrientValue string

func (v *NutrientValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		*v = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = NutrientValue(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NutrientValue(n.String())
	default:
		*v = ""
	}
	return nil
}

// CatalogOptionItem is a single modifier as published by the menu service.
type CatalogOptionItem struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	ShortName       string           `json:"short_name,omitempty"`
	Description     string           `json:"description,omitempty"`
	SmallImageURL   string           `json:"small_image_url,omitempty"`
	Allergens       string           `json:"allergens,omitempty"`
	Tags            string           `json:"tags,omitempty"`
	Ingredients     string           `json:"ingredients,omitempty"`
	NutritionalInfo *NutritionalInfo `json:"nutritional_info,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	IsDefault       bool             `json:"opt_is_default"`
	Increment       int              `json:"increment"`
	MinQuantity     int              `json:"min_quantity"`
	MaxQuantity     int              `json:"max_quantity"`
	Points          int              `json:"points,omitempty"`
	IsSnoozed       bool             `json:"isSnoozed,omitempty"`
}

// CatalogOptionGroup is an ordered list of modifiers. The order of OptionItems is
// significant: included quantity is consumed by the first listed options.
type CatalogOptionGroup struct {
	ID              int                 `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	SmallImageURL   string              `json:"small_image_url,omitempty"`
	IncludedOptions int                 `json:"included_options"`
	MinOptions      int                 `json:"min_options"`
	MaxOptions      int                 `json:"max_options"`
	IsSize          bool                `json:"is_size"`
	OptionItems     []CatalogOptionItem `json:"option_items"`
}

type CatalogItem struct {
	ID              int                  `json:"id"`
	Name            string               `json:"name"`
	ShortName       string               `json:"short_name,omitempty"`
	CategoryName    string               `json:"category_name,omitempty"`
	Description     string               `json:"description,omitempty"`
	LargeImageURL   string               `json:"large_image_url,omitempty"`
	Slug            string               `json:"slug,omitempty"`
	Allergens       string               `json:"allergens,omitempty"`
	Tags            string               `json:"tags,omitempty"`
	Ingredients     string               `json:"ingredients,omitempty"`
	NutritionalInfo *NutritionalInfo     `json:"nutritional_info,omitempty"`
	Price           decimal.Decimal      `json:"price"`
	Points          int                  `json:"points,omitempty"`
	Increment       int                  `json:"increment"`
	MinQuantity     int                  `json:"min_quantity"`
	MaxQuantity     int                  `json:"max_quantity"`
	MenuID          int                  `json:"menu_id,omitempty"`
	SectionID       int                  `json:"section_id,omitempty"`
	OptionGroups    []CatalogOptionGroup `json:"option_groups"`
	UpsellItems     []int                `json:"upsell_items,omitempty"`
	SimilarItems    []int                `json:"similar_items,omitempty"`
}

// Clone returns a copy that shares no slices with item. Nutritional info is
// shared; nothing mutates it.
func (item CatalogItem) Clone() CatalogItem {
	clone := item
	clone.UpsellItems = cloneInts(item.UpsellItems)
	clone.SimilarItems = cloneInts(item.SimilarItems)
	if item.OptionGroups != nil {
		clone.OptionGroups = make([]CatalogOptionGroup, len(item.OptionGroups))
		for n, g := range item.OptionGroups {
			if g.OptionItems != nil {
				g.OptionItems = append(make([]CatalogOptionItem, 0, len(g.OptionItems)), g.OptionItems...)
			}
			clone.OptionGroups[n] = g
		}
	}
	return clone
}

// Category is a node of the menu tree returned by the menu service. Items may
// live on the category itself or on one of its children.
type Category struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Items    []CatalogItem `json:"items"`
	Children []Category    `json:"children,omitempty"`
}

// Menu is a full catalog snapshot.
type Menu struct {
	Categories []Category `json:"categories"`
	SoldOut    []int      `json:"sold_out,omitempty"`
}

// Items flattens the category tree in declared order, parents before children.
func (m Menu) Items() []CatalogItem {
	var items []CatalogItem
	for _, category := range m.Categories {
		items = append(items, category.Items...)
		for _, child := range category.Children {
			items = append(items, child.Items...)
		}
	}
	return items
}

// SoldOutSet holds ids (items or options) that cannot currently be purchased.
type SoldOutSet map[int]struct{}

func NewSoldOutSet(ids ...int) SoldOutSet {
	set := make(SoldOutSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains is safe to call on a nil set.
func (s SoldOutSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

func (s SoldOutSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
