// Package cart implements the cart/order manager: cart line mutation and
// the checkout transition that turns a cart into an immutable order.
//
// Every operation runs as one Transact call against the mutation
// gateway. Cart line identity is the (productID, variant) pair: adding
// an existing pair merges quantities instead of duplicating lines.
package cart

import (
	"context"

	"github.com/quayside/storefront/internal/engine"
	"github.com/quayside/storefront/internal/schema"
)

// Manager mutates the cart through the gateway.
type Manager struct {
	eng *engine.Engine
}

// NewManager creates a cart manager over the given gateway.
func NewManager(eng *engine.Engine) *Manager {
	return &Manager{eng: eng}
}

// Add puts qty units of (productID, variant) in the cart, merging into
// an existing line when the pair is already present. Non-positive
// quantities are normalized up to 1. An empty variant selects the
// product's first variant.
//
// Rejects with NOT_FOUND when the product does not exist: unlike pricing
// and snapshotting, which tolerate references going stale later, adding
// a reference that is already dangling is a caller bug worth surfacing.
func (m *Manager) Add(ctx context.Context, productID, variant string, qty int) (*schema.Document, error) {
	if qty < 1 {
		qty = 1
	}

	return m.eng.Transact(ctx, func(doc *schema.Document) error {
		product := doc.FindProduct(productID)
		if product == nil {
			return engine.NewNotFound("product", productID)
		}
		if variant == "" {
			variant = product.Variants[0]
		}

		if i := doc.FindCartLine(productID, variant); i >= 0 {
			doc.Cart[i].Qty += qty
			return nil
		}

		doc.Cart = append(doc.Cart, schema.CartLine{
			ProductID: productID,
			Variant:   variant,
			Qty:       qty,
			AddedAt:   m.eng.Now(),
		})
		return nil
	})
}

// SetQuantity sets the quantity of the matching line, clamped to at
// least 1. A missing line is a no-op, not an error.
func (m *Manager) SetQuantity(ctx context.Context, productID, variant string, qty int) (*schema.Document, error) {
	if qty < 1 {
		qty = 1
	}

	return m.eng.Transact(ctx, func(doc *schema.Document) error {
		if i := doc.FindCartLine(productID, variant); i >= 0 {
			doc.Cart[i].Qty = qty
		}
		return nil
	})
}

// Remove deletes the matching line. Idempotent: removing an absent line
// is a no-op.
func (m *Manager) Remove(ctx context.Context, productID, variant string) (*schema.Document, error) {
	return m.eng.Transact(ctx, func(doc *schema.Document) error {
		if i := doc.FindCartLine(productID, variant); i >= 0 {
			doc.Cart = append(doc.Cart[:i], doc.Cart[i+1:]...)
		}
		return nil
	})
}

// Clear empties the cart without placing an order.
func (m *Manager) Clear(ctx context.Context) (*schema.Document, error) {
	return m.eng.Transact(ctx, func(doc *schema.Document) error {
		doc.Cart = []schema.CartLine{}
		return nil
	})
}
