package cart

import (
	"github.com/chrisdamba/foodcart/internal/models"
)

// LineResult classifies one cart line against the live catalog.
type LineResult struct {
	Status string // models.LineStatusValid, LineStatusMissing or LineStatusInvalid

	// Item is the repriced line when Status is valid, otherwise the line as it
	// was in the cart.
	Item models.OrderItem

	// Invalid is set when Status is invalid.
	Invalid *models.InvalidItem
}

// ValidationResult is the corrected cart and the drift report. Errors is nil
// when no line was missing or invalid.
type ValidationResult struct {
	Cart   models.Cart
	Counts models.CartCounts
	Errors *models.ValidationErrors
}

// ValidateCart reconciles a previously built cart against the live catalog
// and the sold-out set. Lines that can still be purchased are repriced from
// the catalog; everything else is dropped and reported. Each line is judged on
// its own.
func ValidateCart(cart models.Cart, catalog *Catalog, soldOut models.SoldOutSet) ValidationResult {
	var (
		newCart      = make(models.Cart, 0, len(cart))
		missingItems []models.OrderItem
		invalidItems []models.InvalidItem
	)
	for _, line := range cart {
		result := ValidateLine(line, catalog, soldOut)
		switch result.Status {
		case models.LineStatusMissing:
			missingItems = append(missingItems, result.Item)
		case models.LineStatusInvalid:
			invalidItems = append(invalidItems, *result.Invalid)
		default:
			result.Item.Index = models.IntPtr(len(newCart))
			newCart = append(newCart, result.Item)
		}
	}

	var errs *models.ValidationErrors
	if len(missingItems) > 0 || len(invalidItems) > 0 {
		errs = &models.ValidationErrors{
			MissingItems: nonNilItems(missingItems),
			InvalidItems: nonNilInvalid(invalidItems),
		}
	}
	return ValidationResult{Cart: newCart, Counts: CalcCartCounts(newCart), Errors: errs}
}

// liveGroup indexes a catalog group's options by id.
type liveGroup struct {
	group   models.OrderGroup
	options map[int]models.OrderOption
}

// ValidateLine diffs a single line against the live catalog item with the
// same id.
func ValidateLine(line models.OrderItem, catalog *Catalog, soldOut models.SoldOutSet) LineResult {
	menuItem, ok := catalog.Item(line.ID)
	if !ok || soldOut.Contains(line.ID) {
		return LineResult{Status: models.LineStatusMissing, Item: line}
	}
	live := catalog.orderItem(menuItem, nil)

	liveGroups := make(map[int]liveGroup, len(live.Groups))
	for _, g := range live.Groups {
		options := make(map[int]models.OrderOption, len(g.Options))
		for _, o := range g.Options {
			options[o.ID] = o
		}
		liveGroups[g.ID] = liveGroup{group: g, options: options}
	}

	lineGroupIDs := make(map[int]bool, len(line.Groups))
	for _, g := range line.Groups {
		lineGroupIDs[g.ID] = true
	}

	// a group the line depends on that has nothing to choose from cannot be
	// reconciled
	for _, g := range live.Groups {
		if len(g.Options) == 0 && (g.Min > 0 || lineGroupIDs[g.ID]) {
			return LineResult{Status: models.LineStatusMissing, Item: line}
		}
	}

	var (
		missingGroups  []models.OrderGroup
		invalidGroups  []models.OrderGroup
		missingOptions []models.OrderOption
		invalidOptions []models.OrderOption
		newEmptyGroups []models.OrderGroup
	)
	for _, g := range live.Groups {
		if lineGroupIDs[g.ID] {
			continue
		}
		if g.Min > 0 {
			missingGroups = append(missingGroups, g)
		} else {
			newEmptyGroups = append(newEmptyGroups, g.Clone())
		}
	}

	updatedGroups := make([]models.OrderGroup, 0, len(line.Groups)+len(newEmptyGroups))
	for _, group := range line.Groups {
		optionCount := group.SelectedQuantity()
		current, ok := liveGroups[group.ID]
		if !ok {
			if hasSelection(group) {
				invalidGroups = append(invalidGroups, group)
			}
			continue
		}

		selected := make(map[int]models.OrderOption, len(group.Options))
		for _, option := range group.Options {
			liveOption, exists := current.options[option.ID]
			if option.Quantity == 0 {
				continue
			}
			if option.Quantity < 0 {
				invalidOptions = append(invalidOptions, option)
				continue
			}
			if !exists || soldOut.Contains(option.ID) {
				missingOptions = append(missingOptions, option)
				continue
			}
			if (liveOption.Max != 0 && option.Quantity > liveOption.Max) ||
				(liveOption.Min != 0 && option.Quantity < liveOption.Min) {
				invalidOptions = append(invalidOptions, option)
				continue
			}
			selected[option.ID] = option
		}

		if (current.group.Max != 0 && optionCount > current.group.Max) ||
			(current.group.Min != 0 && optionCount < current.group.Min) {
			invalidGroups = append(invalidGroups, group)
		}

		updatedGroups = append(updatedGroups, refreshGroup(group, current.group, selected, soldOut))
	}

	if len(missingGroups) > 0 || len(invalidGroups) > 0 || len(missingOptions) > 0 || len(invalidOptions) > 0 {
		return LineResult{
			Status: models.LineStatusInvalid,
			Item:   line,
			Invalid: &models.InvalidItem{
				OrderItem:      line,
				MissingGroups:  nonNilGroups(missingGroups),
				InvalidGroups:  nonNilGroups(invalidGroups),
				MissingOptions: nonNilOptions(missingOptions),
				InvalidOptions: nonNilOptions(invalidOptions),
			},
		}
	}

	if line.Quantity <= 0 || (live.Max != 0 && line.Quantity > live.Max) || (live.Min != 0 && line.Quantity < live.Min) {
		return LineResult{
			Status: models.LineStatusInvalid,
			Item:   line,
			Invalid: &models.InvalidItem{
				OrderItem:          line,
				MissingGroups:      []models.OrderGroup{},
				InvalidGroups:      []models.OrderGroup{},
				MissingOptions:     []models.OrderOption{},
				InvalidOptions:     []models.OrderOption{},
				QuantityOutOfRange: true,
			},
		}
	}

	updated := line.Clone()
	updated.Groups = append(updatedGroups, newEmptyGroups...)
	updated.Price = live.Price
	updated.Min = live.Min
	updated.Max = live.Max
	updated.Increment = live.Increment
	return LineResult{Status: models.LineStatusValid, Item: CalcPrices(updated)}
}

// refreshGroup rebuilds a surviving group in the live declared order so the
// included allowance is allocated exactly as for a fresh selection. Selected
// options keep their cart record with the live price and bounds; options the
// cart never had are offered unselected; options the catalog dropped while
// unselected disappear.
func refreshGroup(group, live models.OrderGroup, selected map[int]models.OrderOption, soldOut models.SoldOutSet) models.OrderGroup {
	refreshed := group.Clone()
	refreshed.Included = live.Included
	refreshed.Min = live.Min
	refreshed.Max = live.Max

	cartOptions := make(map[int]models.OrderOption, len(group.Options))
	for _, o := range group.Options {
		cartOptions[o.ID] = o
	}

	options := make([]models.OrderOption, 0, len(live.Options))
	for _, liveOption := range live.Options {
		option, ok := selected[liveOption.ID]
		if !ok {
			if option, ok = cartOptions[liveOption.ID]; !ok || option.Quantity != 0 {
				option = liveOption
			}
		}
		option.Price = liveOption.Price
		option.Min = liveOption.Min
		option.Max = liveOption.Max
		option.IsSoldOut = false
		if soldOut.Contains(option.ID) && option.Quantity == 0 {
			option.IsSoldOut = true
			option.Max = 0
		}
		options = append(options, option)
	}
	refreshed.Options = options
	return refreshed
}

// hasSelection reports whether any option in the group carries a quantity.
func hasSelection(group models.OrderGroup) bool {
	for _, o := range group.Options {
		if o.Quantity != 0 {
			return true
		}
	}
	return false
}

func nonNilItems(s []models.OrderItem) []models.OrderItem {
	if s == nil {
		return []models.OrderItem{}
	}
	return s
}

func nonNilInvalid(s []models.InvalidItem) []models.InvalidItem {
	if s == nil {
		return []models.InvalidItem{}
	}
	return s
}

func nonNilGroups(s []models.OrderGroup) []models.OrderGroup {
	if s == nil {
		return []models.OrderGroup{}
	}
	return s
}

func nonNilOptions(s []models.OrderOption) []models.OrderOption {
	if s == nil {
		return []models.OrderOption{}
	}
	return s
}
