package member

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside/storefront/internal/engine"
	"github.com/quayside/storefront/internal/schema"
	"github.com/quayside/storefront/internal/store"
	"github.com/quayside/storefront/internal/testutil"
)

var march15 = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Manager, *engine.Engine) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	eng := engine.New(s, engine.WithClock(testutil.FixedClock(march15)))
	_, err = eng.Bootstrap(context.Background(), nil, schema.Settings{})
	require.NoError(t, err)
	return NewManager(eng), eng
}

func validReg() Registration {
	return Registration{
		Phone:      "0912345678",
		Password:   "secret",
		Name:       "amy",
		BirthMonth: 3,
		BirthDay:   15,
		Address:    "taipei",
	}
}

func TestRegister(t *testing.T) {
	m, _ := setup(t)

	created, doc, err := m.Register(context.Background(), validReg())
	require.NoError(t, err)

	assert.Equal(t, "0912345678", created.Phone)
	assert.Equal(t, 3, created.BirthMonth)
	assert.Equal(t, march15, created.CreatedAt)
	assert.Equal(t, "0912345678", doc.CurrentMemberID, "registration opens a session")
	require.Len(t, doc.Members, 1)
}

func TestRegister_MissingFields(t *testing.T) {
	m, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		edit  func(*Registration)
		field string
	}{
		{"blank phone", func(r *Registration) { r.Phone = "  " }, "phone"},
		{"blank password", func(r *Registration) { r.Password = "" }, "password"},
		{"blank name", func(r *Registration) { r.Name = "" }, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := validReg()
			tt.edit(&reg)

			_, _, err := m.Register(ctx, reg)
			require.Error(t, err)
			assert.Equal(t, engine.CodeMissingField, engine.CodeOf(err))
		})
	}
}

func TestRegister_DuplicatePhone(t *testing.T) {
	m, eng := setup(t)
	ctx := context.Background()

	_, _, err := m.Register(ctx, validReg())
	require.NoError(t, err)

	reg := validReg()
	reg.Name = "someone else"
	_, _, err = m.Register(ctx, reg)
	require.Error(t, err)
	assert.Equal(t, engine.CodeDuplicatePhone, engine.CodeOf(err))

	doc, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Members, 1, "rejected registration creates nothing")
}

func TestRegister_OutOfRangeBirthDateStoredAsUnset(t *testing.T) {
	m, _ := setup(t)

	reg := validReg()
	reg.BirthMonth = 13
	reg.BirthDay = 42

	created, _, err := m.Register(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, 0, created.BirthMonth)
	assert.Equal(t, 0, created.BirthDay)
}

func TestLogin_AfterRegister(t *testing.T) {
	m, _ := setup(t)
	ctx := context.Background()

	_, _, err := m.Register(ctx, validReg())
	require.NoError(t, err)
	_, err = m.Logout(ctx)
	require.NoError(t, err)

	logged, doc, err := m.Login(ctx, "0912345678", "secret")
	require.NoError(t, err)
	assert.Equal(t, "amy", logged.Name)
	assert.Equal(t, "0912345678", doc.CurrentMemberID)
}

func TestLogin_WrongPassword(t *testing.T) {
	m, eng := setup(t)
	ctx := context.Background()

	_, _, err := m.Register(ctx, validReg())
	require.NoError(t, err)
	_, err = m.Logout(ctx)
	require.NoError(t, err)

	_, _, err = m.Login(ctx, "0912345678", "wrong")
	require.Error(t, err)
	assert.Equal(t, engine.CodeInvalidCredentials, engine.CodeOf(err))

	doc, err := eng.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.CurrentMemberID, "failed login creates no session")
}

func TestLogin_UnknownPhone(t *testing.T) {
	m, _ := setup(t)

	_, _, err := m.Login(context.Background(), "0000000000", "secret")
	require.Error(t, err)
	assert.Equal(t, engine.CodeInvalidCredentials, engine.CodeOf(err))
}

func TestLogout_KeepsCart(t *testing.T) {
	m, eng := setup(t)
	ctx := context.Background()

	_, _, err := m.Register(ctx, validReg())
	require.NoError(t, err)

	_, err = eng.Transact(ctx, func(doc *schema.Document) error {
		doc.Cart = append(doc.Cart, schema.CartLine{ProductID: "p1", Variant: "M", Qty: 2})
		return nil
	})
	require.NoError(t, err)

	doc, err := m.Logout(ctx)
	require.NoError(t, err)

	assert.Empty(t, doc.CurrentMemberID)
	assert.Len(t, doc.Cart, 1, "cart persists across sessions")
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	m, _ := setup(t)
	ctx := context.Background()

	_, _, err := m.Register(ctx, validReg())
	require.NoError(t, err)

	addr := "kaohsiung"
	doc, err := m.UpdateProfile(ctx, "0912345678", ProfileUpdate{Address: &addr})
	require.NoError(t, err)

	got := doc.FindMember("0912345678")
	require.NotNil(t, got)
	assert.Equal(t, "kaohsiung", got.Address)
	assert.Equal(t, "amy", got.Name, "unsupplied field unchanged")
	assert.Equal(t, 3, got.BirthMonth, "birth date immutable")
}

func TestUpdateProfile_BlankNameRejected(t *testing.T) {
	m, _ := setup(t)
	ctx := context.Background()

	_, _, err := m.Register(ctx, validReg())
	require.NoError(t, err)

	blank := "   "
	_, err = m.UpdateProfile(ctx, "0912345678", ProfileUpdate{Name: &blank})
	require.Error(t, err)
	assert.Equal(t, engine.CodeMissingField, engine.CodeOf(err))
}

func TestUpdateProfile_UnknownMember(t *testing.T) {
	m, _ := setup(t)

	name := "bob"
	_, err := m.UpdateProfile(context.Background(), "0000", ProfileUpdate{Name: &name})
	require.Error(t, err)
	assert.Equal(t, engine.CodeNotFound, engine.CodeOf(err))
}

func TestOrders_History(t *testing.T) {
	m, eng := setup(t)
	ctx := context.Background()

	_, _, err := m.Register(ctx, validReg())
	require.NoError(t, err)

	_, err = eng.Transact(ctx, func(doc *schema.Document) error {
		doc.Orders = []schema.Order{
			{ID: "o2", MemberID: "0912345678"},
			{ID: "o1", MemberID: "0912345678"},
			{ID: "ox", MemberID: "someone-else"},
		}
		return nil
	})
	require.NoError(t, err)

	orders, err := m.Orders(ctx, "0912345678")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID, "newest first")
}

func TestOrders_UnknownMember(t *testing.T) {
	m, _ := setup(t)

	_, err := m.Orders(context.Background(), "0000")
	require.Error(t, err)
	assert.Equal(t, engine.CodeNotFound, engine.CodeOf(err))
}
