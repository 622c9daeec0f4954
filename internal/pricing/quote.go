package pricing

import (
	"time"

	"github.com/quayside/storefront/internal/schema"
)

// Quote is the full checkout breakdown for the current cart.
type Quote struct {
	Subtotal    int64                 `json:"subtotal"`
	Discounts   []schema.DiscountLine `json:"discounts,omitempty"`
	DiscountSum int64                 `json:"discountSum"`
	Shipping    int64                 `json:"shipping"`
	Total       int64                 `json:"total"`
}

// QuoteDocument prices the document's cart against its catalog,
// settings, and session state at the given evaluation time. Read-only:
// the rendering layer calls this after every mutation to show totals.
func QuoteDocument(doc *schema.Document, now time.Time) Quote {
	subtotal := Subtotal(doc.Cart, doc.Products)

	member := doc.CurrentMember()
	var prior int
	if member != nil {
		prior = doc.OrderCountFor(member.Phone)
	}
	discounts := Discounts(member, prior, doc.Settings, subtotal, now)
	discountSum := DiscountSum(discounts)
	shipping := Shipping(doc.Settings, subtotal)

	return Quote{
		Subtotal:    subtotal,
		Discounts:   discounts,
		DiscountSum: discountSum,
		Shipping:    shipping,
		Total:       Total(subtotal, discountSum, shipping),
	}
}

// Totals converts a quote into the persisted totals record.
func (q Quote) Totals() schema.Totals {
	return schema.Totals{
		Subtotal: q.Subtotal,
		Discount: q.DiscountSum,
		Shipping: q.Shipping,
		Total:    q.Total,
	}
}
