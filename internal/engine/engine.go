package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quayside/storefront/internal/schema"
	"github.com/quayside/storefront/internal/store"
)

// Transition mutates the document in place. It runs against a deep copy
// of the latest persisted snapshot; returning an error discards the copy
// and leaves the persisted document unchanged.
type Transition func(*schema.Document) error

// Subscriber receives the post-commit snapshot after every successful
// Transact. Subscribers are pure readers: re-render from the snapshot,
// never mutate it.
type Subscriber func(*schema.Document)

// Engine is the single-writer mutation gateway over a document store.
type Engine struct {
	store *store.Store

	mu   sync.Mutex
	subs []Subscriber

	now   func() time.Time
	newID IDGenerator
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithClock overrides the time source. Used by tests and the harness for
// deterministic birthday-month evaluation and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator overrides the order/product ID generator.
// Defaults to UUIDv7 (time-ordered), matching "derived from creation
// time" without a collision-prone raw timestamp.
func WithIDGenerator(gen IDGenerator) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// New creates an Engine over the given store.
func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store: s,
		now:   time.Now,
		newID: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine's current time. Managers must use this rather
// than time.Now so transitions stay deterministic under an injected
// clock.
func (e *Engine) Now() time.Time {
	return e.now()
}

// NewID returns a fresh unique identifier from the configured generator.
func (e *Engine) NewID() string {
	return e.newID.Generate()
}

// Bootstrap performs the one-time seed load: initializes the document
// from seed data when none exists. Must complete before the first
// Transact; an empty store makes Transact fail with the store's
// not-found error.
func (e *Engine) Bootstrap(ctx context.Context, seedProducts []schema.Product, seedSettings schema.Settings) (*schema.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, err := e.store.Initialize(ctx, seedProducts, seedSettings)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	slog.Debug("document bootstrapped",
		"products", len(doc.Products),
		"members", len(doc.Members),
		"orders", len(doc.Orders))
	return doc, nil
}

// Transact applies an atomic read-modify-write transition.
//
// The document visible to the transition is the latest persisted
// snapshot at call time, and no other transition interleaves
// mid-application. On success the new snapshot is persisted, handed to
// subscribers, and returned. On rejection the persisted document is
// untouched and the rejection is returned as-is.
func (e *Engine) Transact(ctx context.Context, transition Transition) (*schema.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("transact: %w", err)
	}

	// The transition runs on a copy: a rejection must not leave a
	// partial mutation visible to anyone.
	next := doc.Clone()
	if err := transition(next); err != nil {
		return nil, err
	}

	if err := e.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("transact: %w", err)
	}

	e.notify(next)
	return next, nil
}

// Snapshot returns the latest persisted document. Rendering layers must
// re-fetch after every mutation rather than cache the result.
func (e *Engine) Snapshot(ctx context.Context) (*schema.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Load(ctx)
}

// Subscribe registers a change listener. Listeners run synchronously on
// the writer's goroutine after each successful commit, in registration
// order.
func (e *Engine) Subscribe(sub Subscriber) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, sub)
}

// notify delivers the committed snapshot to subscribers. Each subscriber
// gets its own clone so none of them can alias the persisted state.
// Callers must hold e.mu.
func (e *Engine) notify(doc *schema.Document) {
	for _, sub := range e.subs {
		sub(doc.Clone())
	}
}
