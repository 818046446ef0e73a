package cart

import "github.com/chrisdamba/foodcart/internal/models"

// MakeSimpleCart reduces a cart to its persisted form: ids and non-zero option
// quantities only. Every group is kept, even with no selection.
func MakeSimpleCart(cart models.Cart) models.SimplifiedCart {
	simple := make(models.SimplifiedCart, 0, len(cart))
	for _, line := range cart {
		groups := make([]models.SimpleGroup, 0, len(line.Groups))
		for _, group := range line.Groups {
			options := []models.SimpleOption{}
			for _, option := range group.Options {
				if option.Quantity == 0 {
					continue
				}
				options = append(options, models.SimpleOption{ID: option.ID, Quantity: option.Quantity})
			}
			groups = append(groups, models.SimpleGroup{ID: group.ID, Options: options})
		}
		simple = append(simple, models.SimpleCartItem{
			ID:          line.ID,
			Quantity:    line.Quantity,
			Groups:      groups,
			MadeFor:     line.MadeFor,
			Notes:       line.Notes,
			CartGuestID: line.CartGuestID,
			CustomerID:  line.CustomerID,
		})
	}
	return simple
}
