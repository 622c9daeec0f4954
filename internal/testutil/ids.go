package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates "prefix-0001", "prefix-0002", ... in order.
//
// Unlike the production UUIDv7 generator, the sequence is reproducible,
// which keeps order IDs stable across golden snapshot runs.
//
// Implements engine.IDGenerator.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequentialIDs creates a generator with the given prefix. An empty
// prefix defaults to "id".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "id"
	}
	return &SequentialIDs{prefix: prefix, next: 1}
}

// Generate returns the next identifier in the sequence.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("%s-%04d", g.prefix, g.next)
	g.next++
	return id
}
