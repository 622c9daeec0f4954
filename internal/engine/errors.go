package engine

import (
	"errors"
	"fmt"
)

// RejectionError represents a business-rule failure detected at a
// manager boundary.
//
// Rejections are non-fatal: the caller surfaces a notification and the
// document remains unchanged. They are the only error shape managers may
// return across the gateway boundary besides structural store errors.
type RejectionError struct {
	// Code identifies the rejection category.
	Code RejectCode

	// Message is a human-readable description.
	Message string

	// Field names the offending input for MISSING_FIELD rejections.
	Field string
}

// RejectCode categorizes rejections.
type RejectCode string

const (
	// CodeDuplicatePhone indicates the phone already keys a member.
	CodeDuplicatePhone RejectCode = "DUPLICATE_PHONE"

	// CodeInvalidCredentials indicates no member matches both phone and
	// password.
	CodeInvalidCredentials RejectCode = "INVALID_CREDENTIALS"

	// CodeMissingField indicates a required input was empty.
	CodeMissingField RejectCode = "MISSING_FIELD"

	// CodeNotAuthenticated indicates the operation requires a logged-in
	// member.
	CodeNotAuthenticated RejectCode = "NOT_AUTHENTICATED"

	// CodeEmptyCart indicates checkout was attempted with nothing to
	// order.
	CodeEmptyCart RejectCode = "EMPTY_CART"

	// CodeNotFound indicates a referenced product, member, or order is
	// absent.
	CodeNotFound RejectCode = "NOT_FOUND"
)

// Error implements the error interface.
func (e *RejectionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsRejection reports whether err is a RejectionError.
// Uses errors.As to handle wrapped errors.
func IsRejection(err error) bool {
	var re *RejectionError
	return errors.As(err, &re)
}

// CodeOf extracts the rejection code from an error, or "" if the error
// is not a RejectionError.
func CodeOf(err error) RejectCode {
	var re *RejectionError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// NewMissingField creates a rejection for an empty required input.
func NewMissingField(field string) *RejectionError {
	return &RejectionError{
		Code:    CodeMissingField,
		Message: "required field is empty",
		Field:   field,
	}
}

// NewDuplicatePhone creates a rejection for a phone that already keys a
// member.
func NewDuplicatePhone(phone string) *RejectionError {
	return &RejectionError{
		Code:    CodeDuplicatePhone,
		Message: fmt.Sprintf("phone %s is already registered", phone),
	}
}

// NewInvalidCredentials creates a rejection for a failed login. The
// message deliberately does not distinguish unknown phone from wrong
// password.
func NewInvalidCredentials() *RejectionError {
	return &RejectionError{
		Code:    CodeInvalidCredentials,
		Message: "phone or password is incorrect",
	}
}

// NewNotAuthenticated creates a rejection for an operation that requires
// a logged-in member.
func NewNotAuthenticated() *RejectionError {
	return &RejectionError{
		Code:    CodeNotAuthenticated,
		Message: "no member is logged in",
	}
}

// NewEmptyCart creates a rejection for checkout with no orderable lines.
func NewEmptyCart() *RejectionError {
	return &RejectionError{
		Code:    CodeEmptyCart,
		Message: "cart has no orderable lines",
	}
}

// NewNotFound creates a rejection for an absent referent.
func NewNotFound(kind, id string) *RejectionError {
	return &RejectionError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s does not exist", kind, id),
	}
}
