package cart

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chrisdamba/foodcart/internal/models"
)

// ItemSignature identifies a menu configuration for display: the item id and
// the distinct selected option ids in ascending order. Quantities beyond
// presence are ignored.
func ItemSignature(item models.OrderItem) string {
	var ids []int
	for _, group := range item.Groups {
		for _, option := range group.Options {
			if option.Quantity > 0 {
				ids = append(ids, option.ID)
			}
		}
	}
	return joinSignature(item.ID, distinct(ids))
}

// PastItemSignature is ItemSignature for lines from past orders and favorites,
// whose groups only list selected options.
func PastItemSignature(item models.PastOrderItem) string {
	var ids []int
	for _, group := range item.Groups {
		for _, option := range group.Options {
			ids = append(ids, option.ID)
		}
	}
	return joinSignature(item.ID, distinct(ids))
}

// CartItemSignature decides whether two lines merge when added to a cart. An
// option selected n times contributes its id n times, and personalization is
// part of the identity.
func CartItemSignature(item models.OrderItem) string {
	var ids []int
	for _, group := range item.Groups {
		for _, option := range group.Options {
			for n := 0; n < option.Quantity; n++ {
				ids = append(ids, option.ID)
			}
		}
	}
	sort.Ints(ids)
	return joinSignature(item.ID, ids) + "." + item.MadeFor + "." + item.Notes
}

func distinct(ids []int) []int {
	sort.Ints(ids)
	out := ids[:0]
	for n, id := range ids {
		if n > 0 && id == ids[n-1] {
			continue
		}
		out = append(out, id)
	}
	return out
}

func joinSignature(itemID int, optionIDs []int) string {
	parts := make([]string, 0, len(optionIDs)+1)
	parts = append(parts, strconv.Itoa(itemID))
	for _, id := range optionIDs {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ".")
}
