package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is an executable storefront flow.
type Scenario struct {
	// Name uniquely identifies the scenario; golden snapshots are keyed
	// by it.
	Name string `yaml:"name"`

	// Description explains what the flow exercises.
	Description string `yaml:"description"`

	// Now pins the run's clock. Birthday-month discounts and every
	// persisted timestamp derive from it. Zero means DefaultNow.
	Now time.Time `yaml:"now,omitempty"`

	// Steps run in order against a fresh seeded document.
	Steps []Step `yaml:"steps"`
}

// Step is one operation in a scenario.
type Step struct {
	// Op names the operation, e.g. "member.register" or "order.place".
	// See runner.go for the full dispatch table.
	Op string `yaml:"op"`

	// Args carries the operation's inputs as loosely typed YAML values.
	Args map[string]interface{} `yaml:"args,omitempty"`

	// Reject, when set, is the rejection code this step must fail with
	// (e.g. "EMPTY_CART"). An empty Reject means the step must succeed.
	Reject string `yaml:"reject,omitempty"`
}

// DefaultNow is the clock used when a scenario does not pin one.
var DefaultNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

// knownOps is the dispatch table's key set, used for early validation
// so a typo fails at load time rather than mid-run.
var knownOps = map[string]bool{
	"member.register": true,
	"member.login":    true,
	"member.logout":   true,
	"member.update":   true,
	"cart.add":        true,
	"cart.set":        true,
	"cart.remove":     true,
	"cart.clear":      true,
	"order.place":     true,
	"catalog.upsert":  true,
	"catalog.delete":  true,
	"admin.set":       true,
	"settings.set":    true,
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos like "step:" fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml scenario in a directory, sorted by
// filename so test order is stable.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		if !knownOps[step.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
	}
	return nil
}
