package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no document has been persisted
// yet. Callers respond by initializing from seed data.
var ErrNotFound = errors.New("store: document not found")

// CorruptDocumentError indicates the persisted payload could not be
// parsed. It is recoverable: callers must treat it as NotFound and
// re-initialize, with acknowledged data loss, rather than crash.
type CorruptDocumentError struct {
	Err error
}

func (e *CorruptDocumentError) Error() string {
	return fmt.Sprintf("corrupt document: %v", e.Err)
}

func (e *CorruptDocumentError) Unwrap() error {
	return e.Err
}

// IsCorrupt reports whether err is a CorruptDocumentError.
// Uses errors.As to handle wrapped errors.
func IsCorrupt(err error) bool {
	var ce *CorruptDocumentError
	return errors.As(err, &ce)
}
