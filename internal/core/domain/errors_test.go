package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidPackageName", ErrInvalidPackageName},
		{"ErrMissingCredential", ErrMissingCredential},
		{"ErrUnsupportedProvider", ErrUnsupportedProvider},
		{"ErrInvalidConfig", ErrInvalidConfig},
		{"ErrUpstreamStatus", ErrUpstreamStatus},
		{"ErrEmptyCompletion", ErrEmptyCompletion},
		{"ErrMalformedDocument", ErrMalformedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestDocsError_MessageContainsPackage(t *testing.T) {
	err := NewDocsError("examplepkg", ReasonFetch, errors.New("status 404"))

	assert.Contains(t, err.Error(), "examplepkg")
	assert.Contains(t, err.Error(), "fetch")
	assert.Contains(t, err.Error(), "status 404")
}

func TestDocsError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("wrapped: %w", ErrUpstreamStatus)
	err := NewDocsError("pkg", ReasonFetch, cause)

	assert.ErrorIs(t, err, ErrUpstreamStatus)

	var docsErr *DocsError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &docsErr))
	assert.Equal(t, "pkg", docsErr.Package)
}

func TestReasonOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewDocsError("pkg", ReasonSynthesis, ErrEmptyCompletion))

	assert.Equal(t, ReasonSynthesis, ReasonOf(err))
	assert.Equal(t, FailureReason(""), ReasonOf(errors.New("plain")))
	assert.Equal(t, FailureReason(""), ReasonOf(nil))
}
