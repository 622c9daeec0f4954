// Package harness runs storefront scenarios described in YAML.
//
// A scenario is an ordered list of operations (register, cart edits,
// checkout, catalog and settings changes) executed against a fresh
// in-memory document seeded with the embedded defaults. Steps may
// declare an expected rejection code; everything else must succeed.
//
// Runs are deterministic: the gateway is built with a fixed clock and a
// sequential ID generator, so the same scenario always produces a
// byte-identical final document. Golden snapshots of the interesting
// slices of that document live under testdata/golden and are compared
// with goldie (regenerate with `go test ./internal/harness -update`).
package harness
