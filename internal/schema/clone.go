package schema

// Clone returns a deep copy of the document. The gateway applies every
// transition to a clone so a rejected operation can never leave a
// partial mutation behind, and hands clones to subscribers so no reader
// shares backing arrays with the persisted snapshot.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Products = cloneProducts(d.Products)
	out.Cart = make([]CartLine, len(d.Cart))
	copy(out.Cart, d.Cart)
	out.Members = make([]Member, len(d.Members))
	copy(out.Members, d.Members)
	out.Orders = cloneOrders(d.Orders)
	out.Settings = d.Settings.clone()
	return &out
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, len(in))
	for i, p := range in {
		p.Variants = append([]string(nil), p.Variants...)
		p.Images = append([]string(nil), p.Images...)
		out[i] = p
	}
	return out
}

func cloneOrders(in []Order) []Order {
	out := make([]Order, len(in))
	for i, o := range in {
		o.Lines = append([]OrderLine(nil), o.Lines...)
		o.Discounts = append([]DiscountLine(nil), o.Discounts...)
		out[i] = o
	}
	return out
}

func (s Settings) clone() Settings {
	s.Promos = append([]string(nil), s.Promos...)
	s.FAQ = append([]string(nil), s.FAQ...)
	s.Knowledge = append([]string(nil), s.Knowledge...)
	return s
}
