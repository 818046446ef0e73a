package factories

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"
)

var dishes = map[string][]string{
	"Pizza":     {"Margherita", "Pepperoni", "Hawaiian", "Veggie Supreme"},
	"Burgers":   {"Classic Cheeseburger", "Veggie Burger", "BBQ Bacon Burger", "Mushroom Swiss Burger"},
	"Grill":     {"Grilled Chicken", "BBQ Ribs", "Grilled Salmon", "Mixed Grill Platter"},
	"Salad":     {"Caesar Salad", "Greek Salad", "Cobb Salad", "Quinoa Salad"},
	"Mexican":   {"Tacos", "Burrito", "Guacamole", "Quesadilla"},
	"Japanese":  {"Sushi Roll", "Ramen", "Tempura", "Miso Soup"},
	"Sides":     {"Fries", "Onion Rings", "Chicken Wings", "Garlic Bread"},
	"Milkshake": {"Chocolate Shake", "Vanilla Shake", "Strawberry Shake", "Oreo Shake"},
}

var (
	toppings  = []string{"Cheese", "Bacon", "Avocado", "Jalapenos", "Mushrooms", "Onion", "Egg", "Tomato", "Pickles", "Extra Sauce"}
	choices   = []string{"Ranch", "BBQ", "Buffalo", "Honey Mustard", "Teriyaki", "Garlic Aioli"}
	sizes     = []string{"Small", "Medium", "Large"}
	allergens = []string{"gluten", "dairy", "egg", "soy", "peanuts", "tree nuts", "fish", "shellfish", "sesame"}
	tags      = []string{"vegetarian", "vegan", "spicy", "gluten free", "new", "popular"}
)

// CatalogFactory builds deterministic synthetic catalogs. Items and options
// share one id sequence so a sold-out id is never ambiguous.
type CatalogFactory struct {
	fake      faker.Faker
	rng       *rand.Rand
	nextID    int
	slugCache sync.Map
}

func NewCatalogFactory(seed int64) *CatalogFactory {
	return &CatalogFactory{
		fake:   faker.NewWithSeed(rand.NewSource(seed)),
		rng:    rand.New(rand.NewSource(seed + 1)),
		nextID: 1,
	}
}

func (cf *CatalogFactory) id() int {
	id := cf.nextID
	cf.nextID++
	return id
}

// CreateMenu spreads itemCount items over a few categories. Shakes always live
// in a child category so the tree has some depth.
func (cf *CatalogFactory) CreateMenu(itemCount int) models.Menu {
	names := make([]string, 0, len(dishes))
	for name := range dishes {
		if name != "Milkshake" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	categoryCount := min(cf.fake.IntBetween(3, 5), len(names))
	categories := make([]models.Category, 0, categoryCount)
	for _, n := range cf.rng.Perm(len(names))[:categoryCount] {
		categories = append(categories, models.Category{ID: cf.id(), Name: names[n], Items: []models.CatalogItem{}})
	}
	drinks := models.Category{ID: cf.id(), Name: "Milkshake", Items: []models.CatalogItem{}}

	for n := 0; n < itemCount; n++ {
		if n%5 == 4 {
			drinks.Items = append(drinks.Items, cf.CreateDrink())
			continue
		}
		category := &categories[n%len(categories)]
		category.Items = append(category.Items, cf.CreateItem(category.Name))
	}
	categories[0].Children = append(categories[0].Children, drinks)

	return models.Menu{Categories: categories}
}

// CreateItem returns a food item with up to two option groups.
func (cf *CatalogFactory) CreateItem(category string) models.CatalogItem {
	item := cf.baseItem(category, cf.pick(dishes[category]))
	item.Price = cf.price(500, 2200)

	if category == "Sides" && cf.fake.IntBetween(0, 2) == 0 {
		// sold by the piece
		item.Increment = 6
		item.MinQuantity = 6
		item.MaxQuantity = 48
		item.Price = cf.price(100, 150)
	}

	if cf.fake.Bool() {
		item.OptionGroups = append(item.OptionGroups, cf.toppingGroup())
	}
	if cf.fake.IntBetween(0, 2) == 0 {
		item.OptionGroups = append(item.OptionGroups, cf.choiceGroup())
	}
	return item
}

// CreateDrink returns a zero priced item whose price comes from a size group.
func (cf *CatalogFactory) CreateDrink() models.CatalogItem {
	item := cf.baseItem("Milkshake", cf.pick(dishes["Milkshake"]))
	item.Price = decimal.Zero
	item.MaxQuantity = 10

	group := models.CatalogOptionGroup{ID: cf.id(), Name: "Size", MinOptions: 1, MaxOptions: 1, IsSize: true}
	base := cf.fake.IntBetween(300, 450)
	for n, size := range sizes {
		group.OptionItems = append(group.OptionItems, models.CatalogOptionItem{
			ID:          cf.id(),
			Name:        size,
			Price:       decimal.New(int64(base+n*100), -2),
			IsDefault:   n == 0,
			MaxQuantity: 1,
		})
	}
	item.OptionGroups = []models.CatalogOptionGroup{group}
	return item
}

func (cf *CatalogFactory) baseItem(category, name string) models.CatalogItem {
	item := models.CatalogItem{
		ID:           cf.id(),
		Name:         name,
		CategoryName: category,
		Description:  cf.fake.Lorem().Sentence(10),
		Slug:         cf.createUniqueSlug(name),
		Allergens:    cf.subset(allergens, 3),
		Tags:         cf.subset(tags, 2),
		Increment:    1,
		OptionGroups: []models.CatalogOptionGroup{},
	}
	// unknown calories are common in real menus
	if cf.fake.IntBetween(0, 4) > 0 {
		item.NutritionalInfo = &models.NutritionalInfo{Calories: models.NutrientValue(strconv.Itoa(cf.fake.IntBetween(150, 1200)))}
	}
	return item
}

// CreateRequiredGroup returns a new pick-one group, the kind of change that
// invalidates carts built before it existed.
func (cf *CatalogFactory) CreateRequiredGroup() models.CatalogOptionGroup {
	return cf.choiceGroup()
}

func (cf *CatalogFactory) toppingGroup() models.CatalogOptionGroup {
	count := cf.fake.IntBetween(2, 5)
	group := models.CatalogOptionGroup{
		ID:              cf.id(),
		Name:            "Toppings",
		IncludedOptions: cf.fake.IntBetween(0, 2),
		MaxOptions:      count + 1,
	}
	for _, n := range cf.rng.Perm(len(toppings))[:count] {
		option := models.CatalogOptionItem{
			ID:          cf.id(),
			Name:        toppings[n],
			Price:       cf.price(50, 300),
			MaxQuantity: cf.fake.IntBetween(1, 3),
		}
		if cf.fake.IntBetween(0, 3) > 0 {
			option.NutritionalInfo = &models.NutritionalInfo{Calories: models.NutrientValue(strconv.Itoa(cf.fake.IntBetween(10, 200)))}
		}
		group.OptionItems = append(group.OptionItems, option)
	}
	group.OptionItems[0].IsDefault = group.IncludedOptions > 0
	return group
}

func (cf *CatalogFactory) choiceGroup() models.CatalogOptionGroup {
	group := models.CatalogOptionGroup{
		ID:              cf.id(),
		Name:            "Sauce",
		IncludedOptions: 1,
		MinOptions:      1,
		MaxOptions:      1,
	}
	for n, i := range cf.rng.Perm(len(choices))[:3] {
		group.OptionItems = append(group.OptionItems, models.CatalogOptionItem{
			ID:          cf.id(),
			Name:        choices[i],
			Price:       decimal.New(50, -2),
			IsDefault:   n == 0,
			MaxQuantity: 1,
		})
	}
	return group
}

// price returns a random amount between minCents and maxCents.
func (cf *CatalogFactory) price(minCents, maxCents int) decimal.Decimal {
	return decimal.New(int64(cf.fake.IntBetween(minCents, maxCents)), -2)
}

func (cf *CatalogFactory) pick(from []string) string {
	return from[cf.fake.IntBetween(0, len(from)-1)]
}

// subset joins up to limit random entries of from with ", ".
func (cf *CatalogFactory) subset(from []string, limit int) string {
	count := cf.fake.IntBetween(0, limit)
	picked := make([]string, 0, count)
	for _, n := range cf.rng.Perm(len(from))[:count] {
		picked = append(picked, from[n])
	}
	return strings.Join(picked, ", ")
}

func (cf *CatalogFactory) createUniqueSlug(name string) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, base)

	slug := base
	counter := 1
	for {
		if _, exists := cf.slugCache.LoadOrStore(slug, true); !exists {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}
