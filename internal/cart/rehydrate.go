package cart

import "github.com/chrisdamba/foodcart/internal/models"

// RehydrateOrderItem rebuilds a priced line from a catalog item and a persisted
// line. Selections the catalog no longer lists are kept as bare options (and
// bare groups) carrying only their id and quantity, so validation can report
// them instead of the line silently changing configuration.
func RehydrateOrderItem(catalog *Catalog, menuItem models.CatalogItem, simple models.SimpleCartItem) models.OrderItem {
	orderItem := catalog.orderItem(menuItem, &simple)
	orderItem.Quantity = simple.Quantity
	if orderItem.Quantity == 0 {
		orderItem.Quantity = 1
	}

	liveGroups := make(map[int]int, len(orderItem.Groups))
	for g, group := range orderItem.Groups {
		liveGroups[group.ID] = g
	}

	for _, stored := range simple.Groups {
		g, ok := liveGroups[stored.ID]
		if !ok {
			if options := staleOptions(stored.Options, nil); len(options) > 0 {
				orderItem.Groups = append(orderItem.Groups, models.OrderGroup{ID: stored.ID, Options: options})
			}
			continue
		}

		group := &orderItem.Groups[g]
		known := make(map[int]bool, len(group.Options))
		for o := range group.Options {
			known[group.Options[o].ID] = true
		}
		quantities := make(map[int]int, len(stored.Options))
		for _, o := range stored.Options {
			quantities[o.ID] = o.Quantity
		}
		for o := range group.Options {
			group.Options[o].Quantity = quantities[group.Options[o].ID]
		}
		group.Options = append(group.Options, staleOptions(stored.Options, known)...)
	}
	return CalcPrices(orderItem)
}

// staleOptions returns bare options for stored selections that are not in
// known.
func staleOptions(stored []models.SimpleOption, known map[int]bool) []models.OrderOption {
	var options []models.OrderOption
	for _, o := range stored {
		if o.Quantity == 0 || known[o.ID] {
			continue
		}
		options = append(options, models.OrderOption{
			ID:        o.ID,
			Quantity:  o.Quantity,
			Allergens: []string{},
			Tags:      []string{},
		})
	}
	return options
}

// RehydrateCart joins a persisted cart against the catalog. Lines whose item
// is gone are dropped here without a report; reporting drift is ValidateCart's
// job.
func RehydrateCart(catalog *Catalog, simple models.SimplifiedCart) (models.Cart, models.CartCounts) {
	cart := make(models.Cart, 0, len(simple))
	for _, line := range simple {
		menuItem, ok := catalog.Item(line.ID)
		if !ok {
			continue
		}
		orderItem := RehydrateOrderItem(catalog, menuItem, line)
		orderItem.Index = models.IntPtr(len(cart))
		cart = append(cart, orderItem)
	}
	return cart, CalcCartCounts(cart)
}
