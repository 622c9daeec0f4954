// Package pricing computes checkout totals from cart, catalog,
// membership state, and settings.
//
// Everything here is pure and deterministic given its inputs plus an
// explicit evaluation time: no store access, no business errors. Stale
// product references in the cart are skipped, never raised.
package pricing

import (
	"math"
	"time"

	"github.com/quayside/storefront/internal/schema"
)

// Display labels for discount lines. Evaluation order is display order.
const (
	FirstPurchaseLabel = "First purchase discount"
	BirthdayLabel      = "Birthday month discount"
)

// Subtotal sums product.price * qty over resolvable cart lines. Lines
// whose referenced product no longer exists are skipped: stale-reference
// tolerance, not an error.
func Subtotal(lines []schema.CartLine, products []schema.Product) int64 {
	index := make(map[string]int64, len(products))
	for _, p := range products {
		index[p.ID] = p.Price
	}

	var sum int64
	for _, line := range lines {
		price, ok := index[line.ProductID]
		if !ok {
			continue
		}
		sum += price * int64(line.Qty)
	}
	return sum
}

// Discounts evaluates the configured discount rules in fixed order and
// returns one labeled line per applied discount. Discounts stack: each
// is an independent percentage of the subtotal, not sequentially
// compounded.
//
// Order of evaluation (also display order):
//  1. First purchase: member logged in, zero prior orders, rate > 0.
//  2. Birthday month: member logged in, now's calendar month equals the
//     stored birth month, rate > 0.
//
// priorOrders is the member's completed order count before this
// checkout. A nil member yields no discounts.
func Discounts(member *schema.Member, priorOrders int, settings schema.Settings, subtotal int64, now time.Time) []schema.DiscountLine {
	var lines []schema.DiscountLine
	if member == nil {
		return lines
	}

	if priorOrders == 0 && settings.FirstPurchaseDiscountRate > 0 {
		lines = append(lines, schema.DiscountLine{
			Label:  FirstPurchaseLabel,
			Amount: rateAmount(subtotal, settings.FirstPurchaseDiscountRate),
		})
	}

	if member.BirthMonth == int(now.Month()) && settings.BirthdayDiscountRate > 0 {
		lines = append(lines, schema.DiscountLine{
			Label:  BirthdayLabel,
			Amount: rateAmount(subtotal, settings.BirthdayDiscountRate),
		})
	}

	return lines
}

// DiscountSum totals the amounts of the given discount lines.
func DiscountSum(lines []schema.DiscountLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Amount
	}
	return sum
}

// Shipping returns the fee for the given subtotal. A configured
// free-shipping threshold waives the fee when subtotal >= threshold
// (boundary inclusive); a threshold of 0 means no free-shipping rule.
func Shipping(settings schema.Settings, subtotal int64) int64 {
	if settings.FreeShippingOver > 0 && subtotal >= settings.FreeShippingOver {
		return 0
	}
	return settings.ShippingFee
}

// Total combines the parts, clamped at zero: discounts can never make a
// purchase negative or generate a refund.
func Total(subtotal, discountSum, shipping int64) int64 {
	total := subtotal - discountSum + shipping
	if total < 0 {
		return 0
	}
	return total
}

// rateAmount rounds subtotal*rate to the nearest currency unit.
func rateAmount(subtotal int64, rate float64) int64 {
	return int64(math.Round(float64(subtotal) * rate))
}
