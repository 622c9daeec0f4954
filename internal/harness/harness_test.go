package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside/storefront/internal/schema"
)

func TestScenarios_Golden(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			RunGolden(t, scenario)
		})
	}
}

func TestRun_BirthdayStacking(t *testing.T) {
	// March clock: a member born in March gets the birthday discount on
	// top of the first purchase discount.
	scenario := &Scenario{
		Name:        "birthday-stacking",
		Description: "Both discount rules apply to one order",
		Now:         time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC),
		Steps: []Step{
			{Op: "member.register", Args: map[string]interface{}{
				"phone": "0911222333", "password": "pw", "name": "Mei",
				"birthMonth": 3, "birthDay": 9,
			}},
			{Op: "cart.add", Args: map[string]interface{}{"product": "sf-001", "variant": "S", "qty": 2}},
			{Op: "order.place", Args: map[string]interface{}{"address": "Tainan"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	require.Len(t, result.Document.Orders, 1)
	order := result.Document.Orders[0]
	assert.Equal(t, schema.Totals{Subtotal: 1000, Discount: 250, Shipping: 0, Total: 750}, order.Totals)
	require.Len(t, order.Discounts, 2)
	assert.Equal(t, "First purchase discount", order.Discounts[0].Label)
	assert.Equal(t, int64(100), order.Discounts[0].Amount)
	assert.Equal(t, "Birthday month discount", order.Discounts[1].Label)
	assert.Equal(t, int64(150), order.Discounts[1].Amount)
}

func TestRun_SecondOrderLosesFirstPurchase(t *testing.T) {
	scenario := &Scenario{
		Name:        "repeat-purchase",
		Description: "The first purchase discount applies once",
		Steps: []Step{
			{Op: "member.register", Args: map[string]interface{}{
				"phone": "0955666777", "password": "pw", "name": "Kai",
			}},
			{Op: "cart.add", Args: map[string]interface{}{"product": "sf-003"}},
			{Op: "order.place", Args: map[string]interface{}{"address": "Hualien"}},
			{Op: "cart.add", Args: map[string]interface{}{"product": "sf-003"}},
			{Op: "order.place"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Document.Orders, 2)

	// Newest first: the second order pays full price plus shipping.
	second, first := result.Document.Orders[0], result.Document.Orders[1]
	assert.Equal(t, "ord-0002", second.ID)
	assert.Empty(t, second.Discounts)
	assert.Equal(t, schema.Totals{Subtotal: 320, Discount: 0, Shipping: 60, Total: 380}, second.Totals)

	assert.Equal(t, "ord-0001", first.ID)
	assert.Equal(t, int64(32), first.Totals.Discount)
}

func TestRun_SettingsChangeAffectsNextOrder(t *testing.T) {
	scenario := &Scenario{
		Name:        "settings-reprice",
		Description: "Checkout prices against the settings in force",
		Steps: []Step{
			{Op: "settings.set", Args: map[string]interface{}{
				"firstPurchaseDiscountRate": 0, "freeShippingOver": 0, "shippingFee": 80,
			}},
			{Op: "member.register", Args: map[string]interface{}{
				"phone": "0900111222", "password": "pw", "name": "Lin",
			}},
			{Op: "cart.add", Args: map[string]interface{}{"product": "sf-002", "variant": "50cm"}},
			{Op: "order.place", Args: map[string]interface{}{"address": "Chiayi"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Document.Orders, 1)
	assert.Equal(t, schema.Totals{Subtotal: 1280, Discount: 0, Shipping: 80, Total: 1360}, result.Document.Orders[0].Totals)
}

func TestRun_UnexpectedRejectionAborts(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "A step failing with the wrong code aborts the run",
		Steps: []Step{
			{Op: "cart.add", Args: map[string]interface{}{"product": "ghost"}, Reject: "EMPTY_CART"},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestRun_UndeclaredSuccessAborts(t *testing.T) {
	scenario := &Scenario{
		Name:        "undeclared-success",
		Description: "A step declared to fail must fail",
		Steps: []Step{
			{Op: "cart.add", Args: map[string]interface{}{"product": "sf-001"}, Reject: "NOT_FOUND"},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected rejection")
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := `
name: typo
description: misspelled steps key
step:
  - op: cart.clear
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenario_RejectsUnknownOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad-op.yaml")
	content := `
name: bad-op
description: op outside the dispatch table
steps:
  - op: cart.teleport
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown op")
}

func TestLoadScenario_RequiresSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	content := `
name: empty
description: no steps
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps")
}
