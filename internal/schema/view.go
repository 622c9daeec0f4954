package schema

// PublicView returns a copy of the product with admin-only fields
// removed. Rendering surfaces that are not behind the admin session
// must display this view, never the raw product.
func (p Product) PublicView() Product {
	p.SKU = ""
	p.Vendor = ""
	return p
}
