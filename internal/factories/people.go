package factories

import (
	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/lucsky/cuid"
)

// CreateOwner returns a customer who owns a cart.
func (cf *CatalogFactory) CreateOwner() models.CartOwner {
	return models.CartOwner{
		CustomerID: cf.fake.IntBetween(1000, 999999),
		FirstName:  cf.fake.Person().FirstName(),
		LastName:   cf.fake.Person().LastName(),
	}
}

// CreateGuests returns up to count guests of a group order with distinct ids.
func (cf *CatalogFactory) CreateGuests(count int) []models.CartGuest {
	guests := make([]models.CartGuest, 0, count)
	for n := 0; n < count; n++ {
		guests = append(guests, models.CartGuest{
			CartGuestID: n + 1,
			FirstName:   cf.fake.Person().FirstName(),
			LastName:    cf.fake.Person().LastName(),
		})
	}
	return guests
}

// NewCartID returns a collision resistant cart id.
func NewCartID() string {
	return cuid.New()
}

func NewOrderID() string {
	return cuid.Slug()
}
