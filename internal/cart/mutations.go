package cart

import "github.com/chrisdamba/foodcart/internal/models"

// The mutation functions never modify the cart they are given. Each returns a
// new cart whose indexes match positions, together with freshly computed
// counts. An out-of-range index leaves the cart unchanged.

// CalcCartCounts totals item quantities across the cart by item id.
func CalcCartCounts(cart models.Cart) models.CartCounts {
	counts := make(models.CartCounts, len(cart))
	for _, line := range cart {
		counts[line.ID] += line.Quantity
	}
	return counts
}

// AddItem places item in the cart. An item that already carries an index
// replaces the line at that index. Otherwise it merges into the line with the
// same cart signature, or is appended.
func AddItem(cart models.Cart, item models.OrderItem) (models.Cart, models.CartCounts) {
	next := copyCart(cart)

	if pos, ok := item.Position(); ok && inRange(next, pos) {
		next[pos] = place(item, pos)
		return next, CalcCartCounts(next)
	}

	signature := CartItemSignature(item)
	for n, line := range next {
		if CartItemSignature(line) != signature {
			continue
		}
		merged := item.Clone()
		merged.Quantity = item.Quantity + line.Quantity
		next[n] = place(merged, n)
		return next, CalcCartCounts(next)
	}

	next = append(next, place(item, len(next)))
	return next, CalcCartCounts(next)
}

// RemoveItem drops the line at index and closes the gap.
func RemoveItem(cart models.Cart, index int) (models.Cart, models.CartCounts) {
	if !inRange(cart, index) {
		next := copyCart(cart)
		return next, CalcCartCounts(next)
	}
	next := make(models.Cart, 0, len(cart)-1)
	next = append(next, cart[:index]...)
	next = append(next, cart[index+1:]...)
	reindex(next)
	return next, CalcCartCounts(next)
}

// IncrementItem adds one increment step to the line, clamped to its max when
// the max is non-zero. A line already at its max is left alone.
func IncrementItem(cart models.Cart, index int) (models.Cart, models.CartCounts) {
	next := copyCart(cart)
	if !inRange(next, index) {
		return next, CalcCartCounts(next)
	}
	line := next[index]
	if line.Max == 0 || line.Quantity < line.Max {
		quantity := line.Quantity + step(line)
		if line.Max != 0 {
			quantity = min(line.Max, quantity)
		}
		updated := line.Clone()
		updated.Quantity = quantity
		next[index] = place(updated, index)
	}
	return next, CalcCartCounts(next)
}

// DecrementItem removes one increment step. When the result is zero or below
// the line's minimum the whole line is removed.
func DecrementItem(cart models.Cart, index int) (models.Cart, models.CartCounts) {
	if !inRange(cart, index) {
		next := copyCart(cart)
		return next, CalcCartCounts(next)
	}
	line := cart[index]
	quantity := max(line.Quantity-step(line), 0)
	if quantity == 0 || quantity < line.Min {
		return RemoveItem(cart, index)
	}
	next := copyCart(cart)
	updated := line.Clone()
	updated.Quantity = quantity
	next[index] = place(updated, index)
	return next, CalcCartCounts(next)
}

// SetItemQuantity is the edit-in-place path for a quantity typed by the
// customer. Zero or anything below the minimum removes the line; the max is
// enforced when non-zero.
func SetItemQuantity(cart models.Cart, index, quantity int) (models.Cart, models.CartCounts) {
	if !inRange(cart, index) {
		next := copyCart(cart)
		return next, CalcCartCounts(next)
	}
	line := cart[index]
	if quantity <= 0 || quantity < line.Min {
		return RemoveItem(cart, index)
	}
	if line.Max != 0 {
		quantity = min(line.Max, quantity)
	}
	updated := line.Clone()
	updated.Quantity = quantity
	updated.Index = models.IntPtr(index)
	return AddItem(cart, updated)
}

// place reprices item and pins it at index.
func place(item models.OrderItem, index int) models.OrderItem {
	priced := CalcPrices(item)
	priced.Index = models.IntPtr(index)
	return priced
}

func step(line models.OrderItem) int {
	if line.Increment > 0 {
		return line.Increment
	}
	return 1
}

func reindex(cart models.Cart) {
	for n := range cart {
		cart[n].Index = models.IntPtr(n)
	}
}

func copyCart(cart models.Cart) models.Cart {
	next := make(models.Cart, len(cart))
	copy(next, cart)
	return next
}

func inRange(cart models.Cart, index int) bool {
	return index >= 0 && index < len(cart)
}
