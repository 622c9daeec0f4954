// Package member implements the membership manager: registration,
// session state, profile mutation, and order-history lookup, all keyed
// by phone.
//
// Session state machine: LoggedOut -> LoggedIn (register or login) ->
// LoggedOut (logout). No other transitions exist.
//
// Passwords are opaque secrets compared by exact match. Hashing was
// never part of this design; the weakness is documented rather than
// silently papered over with semantics the design does not specify.
package member

import (
	"context"
	"strings"

	"github.com/quayside/storefront/internal/engine"
	"github.com/quayside/storefront/internal/schema"
)

// Manager mutates membership state through the gateway.
type Manager struct {
	eng *engine.Engine
}

// NewManager creates a membership manager over the given gateway.
func NewManager(eng *engine.Engine) *Manager {
	return &Manager{eng: eng}
}

// Registration carries the inputs for Register. Phone, Password, and
// Name are required. Birth month/day outside their calendar ranges are
// stored as unset rather than rejected.
type Registration struct {
	Phone      string
	Password   string
	Name       string
	BirthMonth int
	BirthDay   int
	Address    string
}

// Register creates a member and sets it as the current session.
//
// Rejects with MISSING_FIELD when phone, password, or name is blank and
// with DUPLICATE_PHONE when the phone already keys a member.
func (m *Manager) Register(ctx context.Context, reg Registration) (*schema.Member, *schema.Document, error) {
	reg.Phone = strings.TrimSpace(reg.Phone)
	reg.Name = strings.TrimSpace(reg.Name)

	switch {
	case reg.Phone == "":
		return nil, nil, engine.NewMissingField("phone")
	case reg.Password == "":
		return nil, nil, engine.NewMissingField("password")
	case reg.Name == "":
		return nil, nil, engine.NewMissingField("name")
	}
	if reg.BirthMonth < 1 || reg.BirthMonth > 12 {
		reg.BirthMonth = 0
	}
	if reg.BirthDay < 1 || reg.BirthDay > 31 {
		reg.BirthDay = 0
	}

	var created schema.Member
	doc, err := m.eng.Transact(ctx, func(doc *schema.Document) error {
		if doc.FindMember(reg.Phone) != nil {
			return engine.NewDuplicatePhone(reg.Phone)
		}

		created = schema.Member{
			Phone:      reg.Phone,
			Password:   reg.Password,
			Name:       reg.Name,
			Address:    strings.TrimSpace(reg.Address),
			BirthMonth: reg.BirthMonth,
			BirthDay:   reg.BirthDay,
			CreatedAt:  m.eng.Now(),
		}
		doc.Members = append(doc.Members, created)
		doc.CurrentMemberID = created.Phone
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &created, doc, nil
}

// Login sets the current session when exactly one member matches both
// phone and password by exact value comparison. Any mismatch rejects
// with INVALID_CREDENTIALS and leaves the session untouched.
func (m *Manager) Login(ctx context.Context, phone, password string) (*schema.Member, *schema.Document, error) {
	var logged schema.Member
	doc, err := m.eng.Transact(ctx, func(doc *schema.Document) error {
		found := doc.FindMember(strings.TrimSpace(phone))
		if found == nil || found.Password != password {
			return engine.NewInvalidCredentials()
		}
		logged = *found
		doc.CurrentMemberID = found.Phone
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &logged, doc, nil
}

// Logout clears the current session. The cart is deliberately not
// cleared: it persists across sessions.
func (m *Manager) Logout(ctx context.Context) (*schema.Document, error) {
	return m.eng.Transact(ctx, func(doc *schema.Document) error {
		doc.CurrentMemberID = ""
		return nil
	})
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave
// unchanged". Phone and birth date are immutable once set and cannot be
// expressed here at all, which is how attempts to change them are
// rejected: by construction.
type ProfileUpdate struct {
	Name    *string
	Address *string
}

// UpdateProfile mutates only the fields supplied. Rejects with NOT_FOUND
// when no member is keyed by phone, and with MISSING_FIELD when a
// supplied name is blank (a member always has a name).
func (m *Manager) UpdateProfile(ctx context.Context, phone string, upd ProfileUpdate) (*schema.Document, error) {
	return m.eng.Transact(ctx, func(doc *schema.Document) error {
		found := doc.FindMember(phone)
		if found == nil {
			return engine.NewNotFound("member", phone)
		}

		if upd.Name != nil {
			name := strings.TrimSpace(*upd.Name)
			if name == "" {
				return engine.NewMissingField("name")
			}
			found.Name = name
		}
		if upd.Address != nil {
			found.Address = strings.TrimSpace(*upd.Address)
		}
		return nil
	})
}

// Orders returns the member's order history, newest first. Rejects with
// NOT_FOUND for an unknown phone.
func (m *Manager) Orders(ctx context.Context, phone string) ([]schema.Order, error) {
	doc, err := m.eng.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if doc.FindMember(phone) == nil {
		return nil, engine.NewNotFound("member", phone)
	}
	return doc.OrdersFor(phone), nil
}
