package cart

import "github.com/chrisdamba/foodcart/internal/models"

// Catalog is a read-only, id-indexed view over a live catalog snapshot.
type Catalog struct {
	items map[int]models.CatalogItem
	ids   []int

	// PointsEnabled keeps item points on lines built from this catalog.
	PointsEnabled bool
}

// NewCatalog indexes items by id. When an id appears twice the first one wins,
// matching a top-down search of the menu tree.
func NewCatalog(items []models.CatalogItem) *Catalog {
	c := &Catalog{items: make(map[int]models.CatalogItem, len(items))}
	for _, item := range items {
		if _, ok := c.items[item.ID]; ok {
			continue
		}
		c.items[item.ID] = item
		c.ids = append(c.ids, item.ID)
	}
	return c
}

func NewCatalogFromMenu(menu models.Menu) *Catalog {
	return NewCatalog(menu.Items())
}

func (c *Catalog) Item(id int) (models.CatalogItem, bool) {
	if c == nil {
		return models.CatalogItem{}, false
	}
	item, ok := c.items[id]
	return item, ok
}

// Items returns the catalog in its original order.
func (c *Catalog) Items() []models.CatalogItem {
	if c == nil {
		return nil
	}
	items := make([]models.CatalogItem, 0, len(c.ids))
	for _, id := range c.ids {
		items = append(items, c.items[id])
	}
	return items
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// orderItem builds the zero-selection line used for rehydration and validation.
func (c *Catalog) orderItem(item models.CatalogItem, simple *models.SimpleCartItem) models.OrderItem {
	return MakeOrderItem(item, ItemOptions{
		IsEdit:        true,
		PointsEnabled: c != nil && c.PointsEnabled,
		Simple:        simple,
	})
}
