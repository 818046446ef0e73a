package cart

import "github.com/chrisdamba/foodcart/internal/models"

// CombineCarts merges a group order: the owner's lines are tagged with the
// owner, followed by guest lines from known guests named after their guest.
// Guest lines from unknown guests are dropped.
func CombineCarts(cart, guestCart models.Cart, owner models.CartOwner, guests []models.CartGuest) models.Cart {
	guestLookup := make(map[int]models.CartGuest, len(guests))
	for _, guest := range guests {
		guestLookup[guest.CartGuestID] = guest
	}

	combined := make(models.Cart, 0, len(cart)+len(guestCart))
	for _, line := range cart {
		tagged := line.Clone()
		tagged.CustomerID = owner.CustomerID
		tagged.MadeFor = owner.FirstName + " " + owner.LastName
		combined = append(combined, tagged)
	}
	for _, line := range guestCart {
		guest, ok := guestLookup[line.CartGuestID]
		if !ok {
			continue
		}
		tagged := line.Clone()
		tagged.MadeFor = guest.FirstName + " " + guest.LastName
		combined = append(combined, tagged)
	}
	reindex(combined)
	return combined
}
