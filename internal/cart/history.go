package cart

import (
	"github.com/chrisdamba/foodcart/internal/models"
)

var imagePreference = []string{"SMALL_IMAGE", "LARGE_IMAGE", "APP_IMAGE"}

// MakeItemImageURL picks the preferred image url, or empty when none is set.
func MakeItemImageURL(images []models.ItemImage) string {
	byType := make(map[string]string, len(images))
	for _, image := range images {
		if image.URL != "" {
			byType[image.Type] = image.URL
		}
	}
	for _, t := range imagePreference {
		if url, ok := byType[t]; ok {
			return url
		}
	}
	return ""
}

// MakeDisplayItem shapes a past order line for display.
func MakeDisplayItem(item models.PastOrderItem) models.DisplayItem {
	display := makeDisplay(item)
	display.MadeFor = item.MadeFor
	display.Notes = item.Notes
	display.FavoriteID = item.FavoriteID
	display.Signature = PastItemSignature(item)
	return display
}

func makeDisplay(item models.PastOrderItem) models.DisplayItem {
	groups := make([]models.DisplayGroup, 0, len(item.Groups))
	for _, g := range item.Groups {
		options := make([]models.DisplayItem, 0, len(g.Options))
		for _, o := range g.Options {
			options = append(options, makeDisplay(o))
		}
		groups = append(groups, models.DisplayGroup{ID: g.ID, Name: g.Name, Options: options})
	}
	quantity := item.Quantity
	if quantity == 0 {
		quantity = 1
	}
	allergens, tags := item.Allergens, item.Tags
	if allergens == nil {
		allergens = []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	return models.DisplayItem{
		ID:               item.ID,
		Name:             item.Name,
		ShortDescription: item.ShortDescription,
		Description:      item.Description,
		ImageURL:         MakeItemImageURL(item.Images),
		Allergens:        allergens,
		Tags:             tags,
		NutritionalInfo:  item.NutritionalInfo,
		Cals:             ParseCalories(item.NutritionalInfo),
		Groups:           groups,
		Quantity:         quantity,
		Price:            item.Price,
		TotalPrice:       item.PriceTotal,
	}
}

// MakeDisplayItems flattens the carts of past orders into display items.
func MakeDisplayItems(orders []models.PastOrder) []models.DisplayItem {
	var items []models.DisplayItem
	for _, order := range orders {
		for _, item := range order.Cart {
			items = append(items, MakeDisplayItem(item))
		}
	}
	return items
}

// MakeUniqueDisplayItems keeps the first occurrence of each configuration.
func MakeUniqueDisplayItems(orders []models.PastOrder) []models.DisplayItem {
	seen := make(map[string]bool)
	var unique []models.DisplayItem
	for _, item := range MakeDisplayItems(orders) {
		if seen[item.Signature] {
			continue
		}
		seen[item.Signature] = true
		unique = append(unique, item)
	}
	return unique
}

// MakeFavoritesLookup maps a configuration signature to its favorite id.
func MakeFavoritesLookup(favorites []models.Favorite) map[string]int {
	lookup := make(map[string]int, len(favorites))
	for _, favorite := range favorites {
		if favorite.Cart == nil {
			continue
		}
		lookup[PastItemSignature(*favorite.Cart)] = favorite.FavoriteID
	}
	return lookup
}

// savedStillOrderable reports whether every group and option of a saved
// configuration still exists on the live item and none of its options is sold
// out.
func savedStillOrderable(saved models.PastOrderItem, live models.CatalogItem, soldOut models.SoldOutSet) bool {
	groups := make(map[int]map[int]bool, len(live.OptionGroups))
	for _, g := range live.OptionGroups {
		options := make(map[int]bool, len(g.OptionItems))
		for _, o := range g.OptionItems {
			options[o.ID] = true
		}
		groups[g.ID] = options
	}
	for _, group := range saved.Groups {
		options, ok := groups[group.ID]
		if !ok {
			return false
		}
		for _, option := range group.Options {
			if !options[option.ID] || soldOut.Contains(option.ID) {
				return false
			}
		}
	}
	return true
}

// MakeFavorites pairs saved favorites with their live items, dropping any
// whose item or configuration is no longer available.
func MakeFavorites(favorites []models.Favorite, catalog *Catalog, soldOut models.SoldOutSet) []models.FavoriteEntry {
	var entries []models.FavoriteEntry
	for _, favorite := range favorites {
		if favorite.Cart == nil {
			continue
		}
		live, ok := catalog.Item(favorite.Cart.ID)
		if !ok || !savedStillOrderable(*favorite.Cart, live, soldOut) {
			continue
		}
		entries = append(entries, models.FavoriteEntry{Item: live, Saved: *favorite.Cart, Favorite: favorite.FavoriteID})
	}
	return entries
}

// MakeRecents is MakeFavorites for recently ordered items. Recents are
// re-offered at a quantity of one.
func MakeRecents(recents []models.PastOrderItem, catalog *Catalog, soldOut models.SoldOutSet) []models.FavoriteEntry {
	var entries []models.FavoriteEntry
	for _, recent := range recents {
		live, ok := catalog.Item(recent.ID)
		if !ok || !savedStillOrderable(recent, live, soldOut) {
			continue
		}
		saved := recent
		saved.Quantity = 1
		entries = append(entries, models.FavoriteEntry{Item: live, Saved: saved})
	}
	return entries
}
