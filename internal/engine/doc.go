// Package engine implements the mutation gateway: the sole write path
// for the storefront document.
//
// Every state change in the system - cart edits, login, order placement,
// catalog edits, settings edits - is expressed as one Transact call. The
// gateway loads the latest persisted snapshot, applies the transition to
// a deep copy, and persists the result only when the transition
// succeeds. A rejected transition leaves the persisted document
// untouched; no partial mutation ever escapes.
//
// Thread-safety model:
//   - Transact() and Bootstrap() serialize on an internal mutex - one
//     logical writer, no interleaving mid-transition
//   - Snapshot() is safe from any goroutine and returns a fresh copy
//   - Subscribers receive post-commit snapshots and must treat them as
//     read-only state for rendering, never as a second write path
//
// Cross-process writers to the same database are out of scope: the
// design assumes a single writer, last writer wins.
package engine
