package schema

import "strings"

// Placeholder values filled in when a product is saved with no variants
// or images. Every product has at least one implicit variant.
const (
	DefaultVariant   = "default"
	PlaceholderImage = "/images/placeholder.png"
)

// NewDocument constructs the default document from seed data: empty
// cart, no members, no orders, admin logged out.
func NewDocument(products []Product, settings Settings) *Document {
	doc := &Document{
		Products: products,
		Settings: settings,
	}
	doc.Normalize()
	return doc
}

// Normalize fills defaults for absent or malformed fields. Called at the
// store boundary on every load and on initialization, so the rest of the
// system can rely on the invariants below:
//
//   - top-level collections are non-nil
//   - product prices are non-negative
//   - every product has at least one variant and one image
//   - cart quantities are at least 1
func (d *Document) Normalize() {
	if d.Products == nil {
		d.Products = []Product{}
	}
	if d.Cart == nil {
		d.Cart = []CartLine{}
	}
	if d.Members == nil {
		d.Members = []Member{}
	}
	if d.Orders == nil {
		d.Orders = []Order{}
	}
	for i := range d.Products {
		d.Products[i].Normalize()
	}
	for i := range d.Cart {
		if d.Cart[i].Qty < 1 {
			d.Cart[i].Qty = 1
		}
	}
}

// Normalize coerces a product into valid shape: negative prices become
// zero, blank variants and images are trimmed, and empty lists fall back
// to a single placeholder entry.
func (p *Product) Normalize() {
	if p.Price < 0 {
		p.Price = 0
	}
	p.Variants = trimBlanks(p.Variants)
	if len(p.Variants) == 0 {
		p.Variants = []string{DefaultVariant}
	}
	p.Images = trimBlanks(p.Images)
	if len(p.Images) == 0 {
		p.Images = []string{PlaceholderImage}
	}
}

// trimBlanks returns the entries of in with surrounding whitespace
// removed, dropping entries that are blank after trimming.
func trimBlanks(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
