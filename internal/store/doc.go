// Package store provides SQLite-backed durable storage for the
// storefront document.
//
// The whole application state is one JSON payload in a single-row table.
// Persisting the document wholesale (rather than normalizing it into
// relational tables) keeps the store aligned with the document model:
// one aggregate, one writer, atomic save.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - single connection: SQLite allows one writer at a time
//
// Schema changes are tracked with PRAGMA user_version and applied by
// incremental migrations on Open.
//
// The store reports structural errors only: ErrNotFound when no document
// has been initialized, and CorruptDocumentError when the persisted
// payload cannot be parsed. Business-rule failures never originate here.
package store
