package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates no document is stored for a package.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPackageName indicates a package identifier failed the allow-list.
	ErrInvalidPackageName = errors.New("invalid package name")

	// ErrMissingCredential indicates the configured LLM provider needs an API
	// key and none was found in the environment, .env or config file.
	ErrMissingCredential = errors.New("missing LLM credential")

	// ErrUnsupportedProvider indicates an unknown LLM provider name.
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")

	// ErrInvalidConfig indicates a malformed configuration value.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUpstreamStatus indicates the listing page returned a non-2xx status.
	ErrUpstreamStatus = errors.New("unexpected upstream status")

	// ErrEmptyCompletion indicates the LLM returned no text.
	ErrEmptyCompletion = errors.New("empty completion")

	// ErrMalformedDocument indicates stored or generated JSON could not be decoded.
	ErrMalformedDocument = errors.New("malformed package document")
)

// FailureReason classifies why a package document could not be resolved.
type FailureReason string

// Failure reasons.
const (
	// ReasonInvalidName means the package identifier was rejected.
	ReasonInvalidName FailureReason = "invalid_name"

	// ReasonConfiguration means generation was not possible with the current settings.
	ReasonConfiguration FailureReason = "configuration"

	// ReasonFetch means the listing page could not be retrieved.
	ReasonFetch FailureReason = "fetch"

	// ReasonSynthesis means the LLM call failed or its reply was not JSON.
	ReasonSynthesis FailureReason = "synthesis"

	// ReasonStorage means the document could not be read or written.
	ReasonStorage FailureReason = "storage"
)

// String returns the string representation.
func (r FailureReason) String() string {
	return string(r)
}

// DocsError is the failure variant of resolving a PackageDocument.
// The success variant is the document itself.
type DocsError struct {
	// Package is the identifier that was being resolved.
	Package string

	// Reason classifies the failure.
	Reason FailureReason

	// Err is the underlying cause.
	Err error
}

// NewDocsError creates a DocsError.
func NewDocsError(pkg string, reason FailureReason, err error) *DocsError {
	return &DocsError{Package: pkg, Reason: reason, Err: err}
}

// Error implements error. The message always names the package.
func (e *DocsError) Error() string {
	return fmt.Sprintf("failed to get documentation for %s (%s): %v", e.Package, e.Reason, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DocsError) Unwrap() error {
	return e.Err
}

// ReasonOf returns the FailureReason carried by err, or "" when err is not a DocsError.
func ReasonOf(err error) FailureReason {
	var docsErr *DocsError
	if errors.As(err, &docsErr) {
		return docsErr.Reason
	}
	return ""
}
