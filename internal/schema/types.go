package schema

import "time"

// Document is the single persisted aggregate. JSON keys match the stored
// payload exactly; absent keys are filled by Normalize on load.
type Document struct {
	Products []Product  `json:"products"`
	Settings Settings   `json:"settings"`
	Cart     []CartLine `json:"cart"`
	Members  []Member   `json:"members"`

	// CurrentMemberID is the phone of the logged-in member, or "" when
	// logged out. It is a weak reference: lookup only, never ownership.
	CurrentMemberID string `json:"currentMemberId,omitempty"`

	// Orders holds completed checkouts, newest first.
	Orders []Order `json:"orders"`

	// AdminSession is a process-wide flag, not a security mechanism.
	// The credential gate that sets it lives outside this layer.
	AdminSession bool `json:"adminSession"`
}

// Product is a catalog entry. Price is an integer amount in the store's
// single currency unit; it is never negative after normalization.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status,omitempty"`
	Category    string   `json:"category,omitempty"`
	Collection  string   `json:"collection,omitempty"`
	IsSilver    bool     `json:"isSilver"`
	Price       int64    `json:"price"`
	Variants    []string `json:"variants"`
	Images      []string `json:"images"`
	Description string   `json:"description,omitempty"`

	// SKU and Vendor are internal fields, shown to admin surfaces only.
	// PublicView strips them.
	SKU    string `json:"sku,omitempty"`
	Vendor string `json:"vendor,omitempty"`
}

// CartLine is a (product, variant) quantity entry in the active cart.
// (ProductID, Variant) is the composite identity: at most one line per
// pair, merged on add.
type CartLine struct {
	ProductID string    `json:"productId"`
	Variant   string    `json:"variant"`
	Qty       int       `json:"qty"`
	AddedAt   time.Time `json:"addedAt"`
}

// Member is a registered customer. Phone is the primary key and is
// immutable once set, as are BirthMonth and BirthDay.
//
// Password is stored as an opaque secret compared by exact match. This
// is inherited from the original design and deliberately not "fixed"
// with hashing semantics the design never specified.
type Member struct {
	Phone      string    `json:"phone"`
	Password   string    `json:"password"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	BirthMonth int       `json:"birthMonth,omitempty"` // 1-12, 0 = unset
	BirthDay   int       `json:"birthDay,omitempty"`   // 1-31, 0 = unset
	CreatedAt  time.Time `json:"createdAt"`
}

// Order is an immutable snapshot of a completed checkout. Line items are
// copied at order time, so later catalog edits never retroactively alter
// history.
type Order struct {
	ID        string         `json:"id"`
	MemberID  string         `json:"memberId"`
	Lines     []OrderLine    `json:"lines"`
	Totals    Totals         `json:"totals"`
	Discounts []DiscountLine `json:"discounts,omitempty"`
	Shipping  ShippingInfo   `json:"shipping"`
	CreatedAt time.Time      `json:"createdAt"`
}

// OrderLine is a cart line frozen at order time with the product data it
// resolved to.
type OrderLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Variant   string `json:"variant"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"`
	LineTotal int64  `json:"lineTotal"`
}

// Totals is the checkout arithmetic breakdown.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// DiscountLine is one applied discount, labeled for display. Slice order
// is evaluation order is display order.
type DiscountLine struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// ShippingInfo records the chosen method and the receiver snapshot.
type ShippingInfo struct {
	Method   string   `json:"method"`
	Receiver Receiver `json:"receiver"`
}

// Receiver is the delivery contact captured on an order.
type Receiver struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address"`
}

// Settings holds the named configuration values that drive pricing and
// storefront content.
type Settings struct {
	// ShippingFee is charged unless the free-shipping rule applies.
	ShippingFee int64 `json:"shippingFee"`

	// FreeShippingOver waives shipping for subtotals at or above the
	// threshold. 0 means no free-shipping rule is configured.
	FreeShippingOver int64 `json:"freeShippingOver"`

	// FirstPurchaseDiscountRate applies to a logged-in member with zero
	// prior orders. 0 disables it.
	FirstPurchaseDiscountRate float64 `json:"firstPurchaseDiscountRate"`

	// BirthdayDiscountRate applies during the member's birth month.
	// 0 disables it.
	BirthdayDiscountRate float64 `json:"birthdayDiscountRate"`

	Announcement string   `json:"announcement,omitempty"`
	Promos       []string `json:"promos,omitempty"`
	FAQ          []string `json:"faq,omitempty"`
	Knowledge    []string `json:"knowledge,omitempty"`
}
