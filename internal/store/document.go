package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quayside/storefront/internal/schema"
)

// Load deserializes the persisted document.
//
// Returns ErrNotFound when nothing has been persisted yet and a
// CorruptDocumentError when the payload cannot be parsed. On success the
// document is normalized, so absent keys in older payloads come back
// with their defaults filled.
func (s *Store) Load(ctx context.Context) (*schema.Document, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM document WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	var doc schema.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, &CorruptDocumentError{Err: err}
	}

	doc.Normalize()
	return &doc, nil
}

// Save serializes and persists the document. The write is a single
// upsert statement, so relative to the single in-process writer no
// partial-write state is ever observable by a subsequent Load.
func (s *Store) Save(ctx context.Context, doc *schema.Document) error {
	payload, err := marshalDocument(doc)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document (id, payload, saved_seq, saved_at)
		VALUES (1, ?, 1, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload   = excluded.payload,
			saved_seq = saved_seq + 1,
			saved_at  = excluded.saved_at
	`, payload, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	return nil
}

// Initialize constructs the default document from seed data and persists
// it, but only when no loadable document exists. A corrupt payload
// counts as absent: it is replaced, with acknowledged data loss.
//
// Returns the live document either way, so callers can bootstrap with a
// single call.
func (s *Store) Initialize(ctx context.Context, seedProducts []schema.Product, seedSettings schema.Settings) (*schema.Document, error) {
	doc, err := s.Load(ctx)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrNotFound) && !IsCorrupt(err) {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	doc = schema.NewDocument(seedProducts, seedSettings)
	if err := s.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	return doc, nil
}

// SavedSeq returns the monotonic save counter for the document row.
// Useful for diagnostics; 0 means no document has been saved.
func (s *Store) SavedSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `SELECT saved_seq FROM document WHERE id = 1`).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("saved seq: %w", err)
	}
	return seq, nil
}

// marshalDocument converts the document to JSON TEXT for storage.
// HTML escaping is disabled so stored payloads stay byte-comparable
// with external seed files.
func marshalDocument(doc *schema.Document) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}
