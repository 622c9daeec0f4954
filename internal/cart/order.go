package cart

import (
	"context"
	"strings"

	"github.com/quayside/storefront/internal/engine"
	"github.com/quayside/storefront/internal/pricing"
	"github.com/quayside/storefront/internal/schema"
)

// ReceiverInfo is the delivery contact submitted at checkout.
type ReceiverInfo struct {
	Name    string
	Phone   string
	Address string
}

// PlaceOrder converts the cart into an immutable order in one atomic
// transition.
//
// Preconditions: a member must be logged in (NOT_AUTHENTICATED) and the
// cart must hold at least one resolvable line (EMPTY_CART - a cart whose
// every line went stale has nothing to order).
//
// On success the transition:
//   - snapshots every resolvable cart line into order line items,
//     dropping stale references the same way Subtotal does
//   - computes totals through the pricing engine
//   - persists the receiver's name and address onto the member record;
//     birth date is never mutable post-registration and the phone key
//     never changes
//   - prepends the order to the history (newest first) and clears the
//     cart
func (m *Manager) PlaceOrder(ctx context.Context, shippingMethod string, recv ReceiverInfo) (*schema.Order, *schema.Document, error) {
	var placed schema.Order

	doc, err := m.eng.Transact(ctx, func(doc *schema.Document) error {
		member := doc.CurrentMember()
		if member == nil {
			return engine.NewNotAuthenticated()
		}
		if len(doc.Cart) == 0 {
			return engine.NewEmptyCart()
		}

		lines := snapshotLines(doc)
		if len(lines) == 0 {
			return engine.NewEmptyCart()
		}

		now := m.eng.Now()
		quote := pricing.QuoteDocument(doc, now)

		if name := strings.TrimSpace(recv.Name); name != "" {
			member.Name = name
		}
		if addr := strings.TrimSpace(recv.Address); addr != "" {
			member.Address = addr
		}

		placed = schema.Order{
			ID:        m.eng.NewID(),
			MemberID:  member.Phone,
			Lines:     lines,
			Totals:    quote.Totals(),
			Discounts: quote.Discounts,
			Shipping: schema.ShippingInfo{
				Method: shippingMethod,
				Receiver: schema.Receiver{
					Name:    member.Name,
					Phone:   recv.Phone,
					Address: member.Address,
				},
			},
			CreatedAt: now,
		}

		doc.Orders = append([]schema.Order{placed}, doc.Orders...)
		doc.Cart = []schema.CartLine{}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &placed, doc, nil
}

// snapshotLines copies resolvable cart lines into order line items.
// Stale references are dropped, matching the subtotal's tolerance, so
// the order's line totals always sum to the priced subtotal.
func snapshotLines(doc *schema.Document) []schema.OrderLine {
	var lines []schema.OrderLine
	for _, cl := range doc.Cart {
		product := doc.FindProduct(cl.ProductID)
		if product == nil {
			continue
		}
		lines = append(lines, schema.OrderLine{
			ProductID: product.ID,
			Name:      product.Name,
			Variant:   cl.Variant,
			Qty:       cl.Qty,
			UnitPrice: product.Price,
			LineTotal: product.Price * int64(cl.Qty),
		})
	}
	return lines
}
