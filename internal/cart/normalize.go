package cart

import (
	"strconv"
	"strings"

	"github.com/chrisdamba/foodcart/internal/models"
)

// ItemOptions controls how a catalog item is turned into an order item.
type ItemOptions struct {
	// IsEdit skips default selections; the caller overlays its own quantities.
	IsEdit bool
	// SoldOut options are forced to zero quantity and cannot be selected.
	SoldOut models.SoldOutSet
	// PointsEnabled keeps the item's loyalty points.
	PointsEnabled bool
	// Simple, when set, supplies personalization and ownership for the line.
	Simple *models.SimpleCartItem
}

// MakeOrderItem normalizes a catalog item into a priced, unindexed order item.
func MakeOrderItem(item models.CatalogItem, opts ItemOptions) models.OrderItem {
	orderItem := models.OrderItem{
		ID:              item.ID,
		Name:            item.Name,
		ShortName:       item.ShortName,
		Category:        item.CategoryName,
		Description:     item.Description,
		ImageURL:        item.LargeImageURL,
		Slug:            item.Slug,
		Allergens:       SplitList(item.Allergens),
		Tags:            SplitList(item.Tags),
		Ingredients:     item.Ingredients,
		NutritionalInfo: item.NutritionalInfo,
		Cals:            ParseCalories(item.NutritionalInfo),
		Groups:          makeOrderGroups(item.OptionGroups, opts.IsEdit, opts.SoldOut),
		Quantity:        defaultQuantity(item),
		Price:           item.Price,
		Increment:       item.Increment,
		Min:             item.MinQuantity,
		Max:             item.MaxQuantity,
		MenuID:          item.MenuID,
		SectionID:       item.SectionID,
		UpsellItems:     nonNilInts(item.UpsellItems),
		SimilarItems:    nonNilInts(item.SimilarItems),
	}
	if opts.PointsEnabled && item.Points != 0 {
		orderItem.Points = models.IntPtr(item.Points)
	}
	if s := opts.Simple; s != nil {
		orderItem.CartGuestID = s.CartGuestID
		orderItem.CustomerID = s.CustomerID
		orderItem.MadeFor = s.MadeFor
		orderItem.Notes = s.Notes
	}
	return CalcPrices(orderItem)
}

func makeOrderGroups(optionGroups []models.CatalogOptionGroup, isEdit bool, soldOut models.SoldOutSet) []models.OrderGroup {
	groups := make([]models.OrderGroup, 0, len(optionGroups))
	for _, g := range optionGroups {
		options := make([]models.OrderOption, 0, len(g.OptionItems))
		for _, o := range g.OptionItems {
			options = append(options, makeOrderOption(o, isEdit, soldOut))
		}
		groups = append(groups, models.OrderGroup{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			ImageURL:    g.SmallImageURL,
			Included:    g.IncludedOptions,
			Min:         g.MinOptions,
			Max:         g.MaxOptions,
			IsSize:      g.IsSize,
			Options:     options,
		})
	}
	return groups
}

func makeOrderOption(o models.CatalogOptionItem, isEdit bool, soldOut models.SoldOutSet) models.OrderOption {
	isSoldOut := soldOut.Contains(o.ID)
	quantity := 0
	if !isSoldOut && o.IsDefault && !isEdit {
		quantity = max(o.MinQuantity, 1)
	}
	maxQuantity := o.MaxQuantity
	if isSoldOut {
		maxQuantity = 0
	}
	return models.OrderOption{
		ID:              o.ID,
		Name:            o.Name,
		ShortName:       o.ShortName,
		Description:     o.Description,
		ImageURL:        o.SmallImageURL,
		Allergens:       SplitList(o.Allergens),
		Tags:            SplitList(o.Tags),
		Ingredients:     o.Ingredients,
		NutritionalInfo: o.NutritionalInfo,
		Cals:            ParseCalories(o.NutritionalInfo),
		Price:           o.Price,
		Quantity:        quantity,
		IsDefault:       o.IsDefault,
		Increment:       o.Increment,
		Min:             o.MinQuantity,
		Max:             maxQuantity,
		IsSoldOut:       isSoldOut,
		Points:          o.Points,
		IsSnoozed:       o.IsSnoozed,
	}
}

// defaultQuantity is the item's minimum, else one increment, else one.
func defaultQuantity(item models.CatalogItem) int {
	switch {
	case item.MinQuantity > 0:
		return item.MinQuantity
	case item.Increment > 0:
		return item.Increment
	default:
		return 1
	}
}

// ParseCalories reads the leading integer of the calories field. Anything
// unparseable is unknown (nil) rather than zero.
func ParseCalories(info *models.NutritionalInfo) *int {
	if info == nil {
		return nil
	}
	s := strings.TrimSpace(string(info.Calories))
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

// SplitList turns a comma separated string into trimmed, non-empty values.
func SplitList(s string) []string {
	values := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func nonNilInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}
