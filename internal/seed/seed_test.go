package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	products, settings, err := Default()
	require.NoError(t, err)

	require.NotEmpty(t, products)
	assert.Equal(t, "sf-001", products[0].ID)
	assert.Equal(t, int64(500), products[0].Price)
	assert.True(t, products[0].IsSilver)

	assert.Equal(t, int64(60), settings.ShippingFee)
	assert.Equal(t, int64(1000), settings.FreeShippingOver)
	assert.InDelta(t, 0.1, settings.FirstPurchaseDiscountRate, 1e-9)
	assert.NotEmpty(t, settings.Promos)
}

func TestProducts_Valid(t *testing.T) {
	products, err := Products([]byte(`[
		{"id": "p1", "name": "ring", "price": 500, "variants": ["S"]}
	]`))
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, []string{"S"}, products[0].Variants)
}

func TestProducts_RejectsNegativePrice(t *testing.T) {
	_, err := Products([]byte(`[{"id": "p1", "name": "ring", "price": -5}]`))
	require.Error(t, err)
}

func TestProducts_RejectsMissingRequiredField(t *testing.T) {
	_, err := Products([]byte(`[{"id": "p1", "price": 500}]`))
	require.Error(t, err, "name is required")
}

func TestProducts_RejectsEmptyID(t *testing.T) {
	_, err := Products([]byte(`[{"id": "", "name": "ring", "price": 500}]`))
	require.Error(t, err)
}

func TestProducts_RejectsUnknownKey(t *testing.T) {
	// Definitions are closed: typos in seed files must fail loudly.
	_, err := Products([]byte(`[{"id": "p1", "name": "ring", "price": 500, "pricee": 1}]`))
	require.Error(t, err)
}

func TestProducts_RejectsMalformedJSON(t *testing.T) {
	_, err := Products([]byte(`[{`))
	require.Error(t, err)
}

func TestSettings_Valid(t *testing.T) {
	settings, err := Settings([]byte(`{"shippingFee": 80, "freeShippingOver": 2000}`))
	require.NoError(t, err)

	assert.Equal(t, int64(80), settings.ShippingFee)
	assert.Equal(t, int64(2000), settings.FreeShippingOver)
	assert.Zero(t, settings.FirstPurchaseDiscountRate, "absent keys default")
}

func TestSettings_RejectsNegativeRate(t *testing.T) {
	_, err := Settings([]byte(`{"birthdayDiscountRate": -0.5}`))
	require.Error(t, err)
}

func TestProductsFile_MissingFile(t *testing.T) {
	_, err := ProductsFile("/nonexistent/products.json")
	require.Error(t, err)
}
