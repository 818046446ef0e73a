package cart

import (
	"math"
	"strconv"
	"strings"

	"github.com/chrisdamba/foodcart/internal/models"
)

// PrepareOrder builds the submission payload. Only the cart is produced by the
// engine; every other section is passed through as supplied.
func PrepareOrder(req models.OrderRequest) models.OrderPayload {
	order := models.OrderPayload{
		ServiceType: req.ServiceType,
		RequestedAt: req.RequestedAt,
		Cart:        MakeSimpleCart(req.Cart),
		Customer:    req.Customer,
		Surcharges:  req.Surcharges,
		Discounts:   req.Discounts,
		PromoCodes:  req.PromoCodes,
		Points:      req.Points,
		Tenders:     req.Tenders,
		Address:     req.Address,
		OrderID:     req.OrderID,
		CartID:      req.CartID,
	}
	if order.ServiceType == "" {
		order.ServiceType = models.ServiceTypePickup
	}
	if order.RequestedAt == "" {
		order.RequestedAt = models.RequestedAtASAP
	}
	if req.RevenueCenterID != 0 {
		order.RevenueCenterID = models.IntPtr(req.RevenueCenterID)
	}
	if req.Tip != nil && !req.Tip.IsZero() {
		tip := *req.Tip
		order.Tip = &tip
	}
	if req.Details != nil {
		details := *req.Details
		if details.PersonCount != nil {
			if n, ok := personCount(details.PersonCount); ok {
				details.PersonCount = n
			} else {
				details.PersonCount = nil
			}
		}
		if req.DeviceType != "" {
			details.DeviceType = req.DeviceType
		}
		order.Details = &details
	}
	return order
}

// personCount coerces whatever the form produced into a positive integer.
func personCount(v interface{}) (int, bool) {
	var n int
	switch c := v.(type) {
	case int:
		n = c
	case int64:
		n = int(c)
	case float64:
		n = int(math.Trunc(c))
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(c), 64)
			if ferr != nil {
				return 0, false
			}
			parsed = int(math.Trunc(f))
		}
		n = parsed
	default:
		return 0, false
	}
	if n == 0 {
		return 0, false
	}
	return n, true
}
