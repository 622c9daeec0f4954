// Package catalog implements the catalog manager: admin product CRUD
// through the gateway, plus pure filtering/search over the product list.
//
// Deleting a product never cascades into the cart or order history.
// Remaining references become stale and are tolerated by the pricing
// and checkout paths; historical orders keep their snapshots regardless.
package catalog

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/quayside/storefront/internal/engine"
	"github.com/quayside/storefront/internal/schema"
)

// AllCategories is the sentinel that bypasses category filtering.
const AllCategories = "all"

// Manager mutates the catalog through the gateway.
type Manager struct {
	eng *engine.Engine
}

// NewManager creates a catalog manager over the given gateway.
func NewManager(eng *engine.Engine) *Manager {
	return &Manager{eng: eng}
}

// Upsert replaces the product with the same id, or inserts at the front
// when the id is new. A blank id gets a generated one.
//
// Validation: name must be non-empty (MISSING_FIELD); price is coerced
// non-negative; variant and image lists fall back to a single
// placeholder entry when empty after trimming blanks.
func (m *Manager) Upsert(ctx context.Context, p schema.Product) (*schema.Product, *schema.Document, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, nil, engine.NewMissingField("name")
	}
	if p.ID == "" {
		p.ID = m.eng.NewID()
	}
	p.Normalize()

	doc, err := m.eng.Transact(ctx, func(doc *schema.Document) error {
		for i := range doc.Products {
			if doc.Products[i].ID == p.ID {
				doc.Products[i] = p
				return nil
			}
		}
		doc.Products = append([]schema.Product{p}, doc.Products...)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &p, doc, nil
}

// Delete removes the product. Rejects with NOT_FOUND for an unknown id.
// Cart lines and order snapshots referencing the id are left in place.
func (m *Manager) Delete(ctx context.Context, id string) (*schema.Document, error) {
	return m.eng.Transact(ctx, func(doc *schema.Document) error {
		for i := range doc.Products {
			if doc.Products[i].ID == id {
				doc.Products = append(doc.Products[:i], doc.Products[i+1:]...)
				return nil
			}
		}
		return engine.NewNotFound("product", id)
	})
}

// FilterOptions narrows a product list. Zero values disable each gate.
type FilterOptions struct {
	// Category must match exactly; "" or the "all" sentinel bypasses it.
	Category string

	// OnlySilver keeps silver products only.
	OnlySilver bool

	// Query matches case-insensitively as a substring of name,
	// description, category, or collection (OR across fields).
	Query string
}

// Filter returns the products passing every configured gate, preserving
// catalog order. Pure: operates on the given slice, no store access.
func Filter(products []schema.Product, opts FilterOptions) []schema.Product {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(opts.Query))

	out := []schema.Product{}
	for _, p := range products {
		if opts.Category != "" && opts.Category != AllCategories && p.Category != opts.Category {
			continue
		}
		if opts.OnlySilver && !p.IsSilver {
			continue
		}
		if query != "" && !matchesQuery(fold, p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesQuery reports whether the folded query occurs in any of the
// product's searchable fields.
func matchesQuery(fold cases.Caser, p schema.Product, query string) bool {
	for _, field := range []string{p.Name, p.Description, p.Category, p.Collection} {
		if strings.Contains(fold.String(field), query) {
			return true
		}
	}
	return false
}
