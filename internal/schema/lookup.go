package schema

// FindProduct returns a pointer into d.Products for the given id, or nil
// if no such product exists. A nil result is the defined outcome for a
// stale reference, not an error.
func (d *Document) FindProduct(id string) *Product {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i]
		}
	}
	return nil
}

// FindMember returns a pointer into d.Members for the given phone, or
// nil if no member is keyed by it.
func (d *Document) FindMember(phone string) *Member {
	for i := range d.Members {
		if d.Members[i].Phone == phone {
			return &d.Members[i]
		}
	}
	return nil
}

// CurrentMember resolves the session reference. Returns nil when logged
// out or when the referenced member no longer exists.
func (d *Document) CurrentMember() *Member {
	if d.CurrentMemberID == "" {
		return nil
	}
	return d.FindMember(d.CurrentMemberID)
}

// FindCartLine returns the index of the line matching the composite
// (productID, variant) identity, or -1 if absent.
func (d *Document) FindCartLine(productID, variant string) int {
	for i := range d.Cart {
		if d.Cart[i].ProductID == productID && d.Cart[i].Variant == variant {
			return i
		}
	}
	return -1
}

// OrderCountFor counts completed orders recorded for the given member.
// Used by the first-purchase discount eligibility check.
func (d *Document) OrderCountFor(phone string) int {
	n := 0
	for i := range d.Orders {
		if d.Orders[i].MemberID == phone {
			n++
		}
	}
	return n
}

// OrdersFor returns the member's orders, preserving stored order
// (newest first). The result is a fresh slice safe to retain.
func (d *Document) OrdersFor(phone string) []Order {
	out := []Order{}
	for i := range d.Orders {
		if d.Orders[i].MemberID == phone {
			out = append(out, d.Orders[i])
		}
	}
	return out
}
