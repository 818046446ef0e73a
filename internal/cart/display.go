package cart

import (
	"strconv"
	"strings"

	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/shopspring/decimal"
)

// DisplayPrice rounds to cents for display only.
func DisplayPrice(price decimal.Decimal) string {
	return price.StringFixed(2)
}

// AddCommas formats d with the given decimals and thousands separators.
func AddCommas(d decimal.Decimal, decimals int32) string {
	s := d.StringFixed(decimals)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		whole, frac = s[:dot], s[dot:]
	}
	var b strings.Builder
	for n, r := range whole {
		if n > 0 && (len(whole)-n)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

// FormatDollars renders an amount as dollars, with negative amounts in
// parentheses.
func FormatDollars(amount decimal.Decimal, space string, decimals int32) string {
	if amount.IsNegative() {
		return "($" + AddCommas(amount.Abs(), decimals) + ")"
	}
	return "$" + AddCommas(amount, decimals) + space
}

func FormatQuantity(n int) string {
	return AddCommas(decimal.NewFromInt(int64(n)), 0)
}

// MakeDisplayPrice is the menu price label for an item. Items with a size group
// list every size price; everything else shows the total with default
// selections, or nothing when that is zero.
func MakeDisplayPrice(item models.CatalogItem) string {
	for _, group := range item.OptionGroups {
		if !group.IsSize {
			continue
		}
		prices := make([]string, 0, len(group.OptionItems))
		for _, option := range group.OptionItems {
			prices = append(prices, "$"+DisplayPrice(option.Price))
		}
		return strings.Join(prices, " / ")
	}
	orderItem := MakeOrderItem(item, ItemOptions{})
	if orderItem.TotalPrice.IsPositive() {
		return "$" + DisplayPrice(orderItem.TotalPrice)
	}
	return ""
}

// SelectedOptions lists every option with a non-zero quantity in group order.
func SelectedOptions(item models.OrderItem) []models.OrderOption {
	var options []models.OrderOption
	for _, group := range item.Groups {
		for _, option := range group.Options {
			if option.Quantity > 0 {
				options = append(options, option)
			}
		}
	}
	return options
}

func ModifierNames(item models.OrderItem) string {
	options := SelectedOptions(item)
	names := make([]string, 0, len(options))
	for _, option := range options {
		names = append(names, option.Name)
	}
	return strings.Join(names, ", ")
}

// CaloriesLabel renders a nullable calorie count; unknown renders empty.
func CaloriesLabel(cals *int) string {
	if cals == nil {
		return ""
	}
	return strconv.Itoa(*cals) + " Cal"
}
