// Package schema defines the persisted document shape for the storefront.
//
// The Document is the single aggregate root: catalog, settings, cart,
// membership records, order history, and the admin session flag all live
// in one JSON-shaped value. The store (internal/store) persists it as a
// whole; the gateway (internal/engine) is the only sanctioned write path.
//
// Schema rules enforced here rather than scattered across callers:
//   - Normalize fills defaults for absent keys so older payloads load
//     cleanly (informal versioning by key presence).
//   - Clone produces the deep copies the gateway hands to transitions
//     and subscribers, so no caller can mutate shared state directly.
//   - Cart and order lines reference products by id only. The id is a
//     lookup key, not ownership: resolving a deleted product is a
//     defined filter step, never a dereference failure.
package schema
