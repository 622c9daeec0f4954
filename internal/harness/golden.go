package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/quayside/storefront/internal/schema"
)

// Snapshot is the golden payload for a scenario run: the step trace
// plus the document slices the steps can touch. The seeded catalog and
// settings are excluded; they are covered by the seed package's own
// tests and would drown the diff.
type Snapshot struct {
	Scenario        string            `json:"scenario"`
	Trace           []StepResult      `json:"trace"`
	Cart            []schema.CartLine `json:"cart"`
	Members         []schema.Member   `json:"members"`
	CurrentMemberID string            `json:"currentMemberId"`
	Orders          []schema.Order    `json:"orders"`
	AdminSession    bool              `json:"adminSession"`
}

// RunGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func RunGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s failed: %v", scenario.Name, err)
	}

	snapshot := Snapshot{
		Scenario:        scenario.Name,
		Trace:           result.Trace,
		Cart:            result.Document.Cart,
		Members:         result.Document.Members,
		CurrentMemberID: result.Document.CurrentMemberID,
		Orders:          result.Document.Orders,
		AdminSession:    result.Document.AdminSession,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
