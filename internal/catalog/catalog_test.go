package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside/storefront/internal/engine"
	"github.com/quayside/storefront/internal/schema"
	"github.com/quayside/storefront/internal/store"
	"github.com/quayside/storefront/internal/testutil"
)

func setup(t *testing.T) (*Manager, *engine.Engine) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	eng := engine.New(s, engine.WithIDGenerator(testutil.NewSequentialIDs("prod")))
	_, err = eng.Bootstrap(context.Background(),
		[]schema.Product{{ID: "p1", Name: "ring", Price: 500, Category: "rings"}},
		schema.Settings{},
	)
	require.NoError(t, err)
	return NewManager(eng), eng
}

func TestUpsert_InsertsAtFront(t *testing.T) {
	m, _ := setup(t)

	created, doc, err := m.Upsert(context.Background(), schema.Product{
		ID: "p2", Name: "chain", Price: 120,
	})
	require.NoError(t, err)

	assert.Equal(t, "p2", created.ID)
	require.Len(t, doc.Products, 2)
	assert.Equal(t, "p2", doc.Products[0].ID, "new products go to the front")
	assert.Equal(t, "p1", doc.Products[1].ID)
}

func TestUpsert_ReplacesById(t *testing.T) {
	m, _ := setup(t)

	_, doc, err := m.Upsert(context.Background(), schema.Product{
		ID: "p1", Name: "silver ring", Price: 650,
	})
	require.NoError(t, err)

	require.Len(t, doc.Products, 1)
	assert.Equal(t, "silver ring", doc.Products[0].Name)
	assert.Equal(t, int64(650), doc.Products[0].Price)
}

func TestUpsert_BlankNameRejected(t *testing.T) {
	m, _ := setup(t)

	_, _, err := m.Upsert(context.Background(), schema.Product{ID: "px", Name: "  "})
	require.Error(t, err)
	assert.Equal(t, engine.CodeMissingField, engine.CodeOf(err))
}

func TestUpsert_GeneratesMissingID(t *testing.T) {
	m, _ := setup(t)

	created, _, err := m.Upsert(context.Background(), schema.Product{Name: "earring", Price: 80})
	require.NoError(t, err)
	assert.Equal(t, "prod-0001", created.ID)
}

func TestUpsert_NormalizesProduct(t *testing.T) {
	m, _ := setup(t)

	created, _, err := m.Upsert(context.Background(), schema.Product{
		ID:       "p3",
		Name:     "bracelet",
		Price:    -10,
		Variants: []string{" ", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), created.Price)
	assert.Equal(t, []string{schema.DefaultVariant}, created.Variants)
	assert.Equal(t, []string{schema.PlaceholderImage}, created.Images)
}

func TestDelete(t *testing.T) {
	m, _ := setup(t)

	doc, err := m.Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, doc.Products)
}

func TestDelete_UnknownIDRejected(t *testing.T) {
	m, _ := setup(t)

	_, err := m.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, engine.CodeNotFound, engine.CodeOf(err))
}

func TestDelete_DoesNotCascade(t *testing.T) {
	m, eng := setup(t)
	ctx := context.Background()

	_, err := eng.Transact(ctx, func(doc *schema.Document) error {
		doc.Cart = append(doc.Cart, schema.CartLine{ProductID: "p1", Variant: "default", Qty: 1})
		doc.Orders = append(doc.Orders, schema.Order{
			ID: "o1", MemberID: "0912",
			Lines: []schema.OrderLine{{ProductID: "p1", Name: "ring", Qty: 1, UnitPrice: 500, LineTotal: 500}},
		})
		return nil
	})
	require.NoError(t, err)

	doc, err := m.Delete(ctx, "p1")
	require.NoError(t, err)

	// References stay: the cart line goes stale, the order keeps its
	// snapshot data.
	assert.Len(t, doc.Cart, 1)
	require.Len(t, doc.Orders, 1)
	assert.Equal(t, "ring", doc.Orders[0].Lines[0].Name)
}

func filterFixture() []schema.Product {
	return []schema.Product{
		{ID: "p1", Name: "Classic Ring", Category: "rings", Collection: "Heritage", IsSilver: true, Description: "a plain band"},
		{ID: "p2", Name: "Curb Chain", Category: "necklaces", Collection: "Street", IsSilver: true},
		{ID: "p3", Name: "Leather Cord", Category: "necklaces", Collection: "Street", IsSilver: false},
	}
}

func TestFilter_CategoryExactMatch(t *testing.T) {
	got := Filter(filterFixture(), FilterOptions{Category: "necklaces"})
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
}

func TestFilter_AllSentinelBypasses(t *testing.T) {
	assert.Len(t, Filter(filterFixture(), FilterOptions{Category: AllCategories}), 3)
	assert.Len(t, Filter(filterFixture(), FilterOptions{}), 3)
}

func TestFilter_OnlySilver(t *testing.T) {
	got := Filter(filterFixture(), FilterOptions{OnlySilver: true})
	require.Len(t, got, 2)
	for _, p := range got {
		assert.True(t, p.IsSilver)
	}
}

func TestFilter_QueryMatchesAcrossFields(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"ring", []string{"p1"}},          // name (case-folded) and category
		{"STREET", []string{"p2", "p3"}},  // collection, case-insensitive
		{"plain band", []string{"p1"}},    // description
		{"necklaces", []string{"p2", "p3"}}, // category
		{"zirconia", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(filterFixture(), FilterOptions{Query: tt.query})
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}

func TestFilter_CombinedGates(t *testing.T) {
	got := Filter(filterFixture(), FilterOptions{Category: "necklaces", OnlySilver: true, Query: "chain"})
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestUpsertThenFilterRoundTrip(t *testing.T) {
	m, eng := setup(t)
	ctx := context.Background()

	created, _, err := m.Upsert(ctx, schema.Product{ID: "p9", Name: "Moonstone Pendant", Category: "necklaces"})
	require.NoError(t, err)

	doc, err := eng.Snapshot(ctx)
	require.NoError(t, err)

	got := Filter(doc.Products, FilterOptions{Query: "moonstone pendant"})
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
}
