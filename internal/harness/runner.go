package harness

import (
	"context"
	"fmt"

	"github.com/quayside/storefront/internal/cart"
	"github.com/quayside/storefront/internal/catalog"
	"github.com/quayside/storefront/internal/engine"
	"github.com/quayside/storefront/internal/member"
	"github.com/quayside/storefront/internal/schema"
	"github.com/quayside/storefront/internal/seed"
	"github.com/quayside/storefront/internal/store"
	"github.com/quayside/storefront/internal/testutil"
)

// StepResult records one executed step for the trace.
type StepResult struct {
	Op string `json:"op"`

	// Outcome is "ok" for a committed step, or the rejection code the
	// step was declared to fail with.
	Outcome string `json:"outcome"`
}

// Result is a completed scenario run.
type Result struct {
	Scenario string
	Trace    []StepResult
	Document *schema.Document
}

// runner holds the managers a scenario's steps dispatch to.
type runner struct {
	eng     *engine.Engine
	carts   *cart.Manager
	members *member.Manager
	catalog *catalog.Manager
}

// Run executes a scenario against a fresh in-memory document seeded
// with the embedded defaults.
//
// The run is deterministic: the clock is pinned to scenario.Now and
// order IDs come from a sequential generator ("ord-0001", ...). A step
// failing with anything other than its declared rejection code aborts
// the run with an error.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	now := scenario.Now
	if now.IsZero() {
		now = DefaultNow
	}
	eng := engine.New(st,
		engine.WithClock(testutil.FixedClock(now)),
		engine.WithIDGenerator(testutil.NewSequentialIDs("ord")),
	)

	ctx := context.Background()

	products, settings, err := seed.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded seed: %w", err)
	}
	if _, err := eng.Bootstrap(ctx, products, settings); err != nil {
		return nil, fmt.Errorf("bootstrap failed: %w", err)
	}

	r := &runner{
		eng:     eng,
		carts:   cart.NewManager(eng),
		members: member.NewManager(eng),
		catalog: catalog.NewManager(eng),
	}

	result := &Result{Scenario: scenario.Name}
	for i, step := range scenario.Steps {
		outcome, err := r.execute(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
		result.Trace = append(result.Trace, StepResult{Op: step.Op, Outcome: outcome})
	}

	doc, err := eng.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot final document: %w", err)
	}
	result.Document = doc
	return result, nil
}

// execute runs one step and reconciles the error against the step's
// declared expectation.
func (r *runner) execute(ctx context.Context, step Step) (string, error) {
	err := r.apply(ctx, step)

	switch {
	case err == nil && step.Reject == "":
		return "ok", nil
	case err == nil:
		return "", fmt.Errorf("expected rejection %s, got success", step.Reject)
	case engine.IsRejection(err):
		code := string(engine.CodeOf(err))
		if code != step.Reject {
			return "", fmt.Errorf("expected rejection %q, got %q (%v)", step.Reject, code, err)
		}
		return code, nil
	default:
		return "", err
	}
}

// apply dispatches a step to the manager that owns its operation.
func (r *runner) apply(ctx context.Context, step Step) error {
	args := step.Args

	switch step.Op {
	case "member.register":
		_, _, err := r.members.Register(ctx, member.Registration{
			Phone:      argString(args, "phone"),
			Password:   argString(args, "password"),
			Name:       argString(args, "name"),
			BirthMonth: argInt(args, "birthMonth", 0),
			BirthDay:   argInt(args, "birthDay", 0),
			Address:    argString(args, "address"),
		})
		return err

	case "member.login":
		_, _, err := r.members.Login(ctx, argString(args, "phone"), argString(args, "password"))
		return err

	case "member.logout":
		_, err := r.members.Logout(ctx)
		return err

	case "member.update":
		var upd member.ProfileUpdate
		if v, ok := args["name"]; ok {
			s := fmt.Sprint(v)
			upd.Name = &s
		}
		if v, ok := args["address"]; ok {
			s := fmt.Sprint(v)
			upd.Address = &s
		}
		_, err := r.members.UpdateProfile(ctx, argString(args, "phone"), upd)
		return err

	case "cart.add":
		_, err := r.carts.Add(ctx, argString(args, "product"), argString(args, "variant"), argInt(args, "qty", 1))
		return err

	case "cart.set":
		_, err := r.carts.SetQuantity(ctx, argString(args, "product"), argString(args, "variant"), argInt(args, "qty", 1))
		return err

	case "cart.remove":
		_, err := r.carts.Remove(ctx, argString(args, "product"), argString(args, "variant"))
		return err

	case "cart.clear":
		_, err := r.carts.Clear(ctx)
		return err

	case "order.place":
		_, _, err := r.carts.PlaceOrder(ctx, argStringOr(args, "method", "home"), cart.ReceiverInfo{
			Name:    argString(args, "receiver"),
			Phone:   argString(args, "receiverPhone"),
			Address: argString(args, "address"),
		})
		return err

	case "catalog.upsert":
		_, _, err := r.catalog.Upsert(ctx, schema.Product{
			ID:       argString(args, "id"),
			Name:     argString(args, "name"),
			Status:   argString(args, "status"),
			Category: argString(args, "category"),
			IsSilver: argBool(args, "silver"),
			Price:    argInt64(args, "price"),
		})
		return err

	case "catalog.delete":
		_, err := r.catalog.Delete(ctx, argString(args, "id"))
		return err

	case "admin.set":
		on := argBool(args, "on")
		_, err := r.eng.Transact(ctx, func(doc *schema.Document) error {
			doc.AdminSession = on
			return nil
		})
		return err

	case "settings.set":
		_, err := r.eng.Transact(ctx, func(doc *schema.Document) error {
			s := &doc.Settings
			if _, ok := args["shippingFee"]; ok {
				s.ShippingFee = argInt64(args, "shippingFee")
			}
			if _, ok := args["freeShippingOver"]; ok {
				s.FreeShippingOver = argInt64(args, "freeShippingOver")
			}
			if _, ok := args["firstPurchaseDiscountRate"]; ok {
				s.FirstPurchaseDiscountRate = argFloat(args, "firstPurchaseDiscountRate")
			}
			if _, ok := args["birthdayDiscountRate"]; ok {
				s.BirthdayDiscountRate = argFloat(args, "birthdayDiscountRate")
			}
			if _, ok := args["announcement"]; ok {
				s.Announcement = argString(args, "announcement")
			}
			return nil
		})
		return err

	default:
		// validateScenario rejects unknown ops before execution.
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

func argString(args map[string]interface{}, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

func argStringOr(args map[string]interface{}, key, fallback string) string {
	if s := argString(args, key); s != "" {
		return s
	}
	return fallback
}

func argInt(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func argInt64(args map[string]interface{}, key string) int64 {
	return int64(argInt(args, key, 0))
}

func argFloat(args map[string]interface{}, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func argBool(args map[string]interface{}, key string) bool {
	v, ok := args[key].(bool)
	return ok && v
}
