package cart

import (
	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/shopspring/decimal"
)

// CalcPrices recomputes option, group and item totals and returns the priced
// copy; the input is left untouched.
//
// Within each group the included allowance is consumed in declared option
// order, not by price: earlier options are free first. No rounding happens
// here, only when formatting.
func CalcPrices(item models.OrderItem) models.OrderItem {
	priced := item.Clone()

	optionsPrice := decimal.Zero
	optionsPoints := 0
	optionsCals := 0

	for g := range priced.Groups {
		group := &priced.Groups[g]
		groupQuantity := 0
		for o := range group.Options {
			option := &group.Options[o]
			includedRemaining := max(group.Included-groupQuantity, 0)
			billableQuantity := max(option.Quantity-includedRemaining, 0)

			option.TotalPrice = option.Price.Mul(decimal.NewFromInt(int64(billableQuantity)))
			option.TotalPoints = billableQuantity * option.Points
			option.TotalCals = 0
			if option.Cals != nil {
				option.TotalCals = option.Quantity * *option.Cals
			}
			groupQuantity += option.Quantity

			optionsPrice = optionsPrice.Add(option.TotalPrice)
			optionsPoints += option.TotalPoints
			optionsCals += option.TotalCals
		}
		group.Quantity = groupQuantity
	}

	quantity := decimal.NewFromInt(int64(priced.Quantity))
	priced.TotalPrice = quantity.Mul(priced.Price.Add(optionsPrice))

	priced.TotalPoints = nil
	if priced.Points != nil && *priced.Points != 0 {
		priced.TotalPoints = models.IntPtr(priced.Quantity * (*priced.Points + optionsPoints))
	}

	priced.TotalCals = nil
	if priced.Cals != nil {
		priced.TotalCals = models.IntPtr(priced.Quantity * (*priced.Cals + optionsCals))
	}
	return priced
}

// CartTotal sums the line totals of a cart.
func CartTotal(cart models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, line := range cart {
		total = total.Add(line.TotalPrice)
	}
	return total
}
