package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := New(ErrConfig, "Config file not found", "Run 'blood init' to create one")

	msg := err.Error()
	assert.Contains(t, msg, "✗ Config file not found")
	assert.Contains(t, msg, "Run 'blood init' to create one")
	assert.Equal(t, ErrConfig, err.Code)
}

func TestWrapDefaultsToStore(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, "Cannot add entry")

	assert.Equal(t, ErrStore, err.Code)
	assert.Contains(t, err.Error(), "Cannot add entry")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestWrapWithCode(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := WrapWithCode(cause, ErrExport, "Cannot create output file", "Check permissions")

	assert.Equal(t, ErrExport, err.Code)
	msg := err.Error()
	assert.Contains(t, msg, "Cannot create output file")
	assert.Contains(t, msg, "permission denied")
	assert.Contains(t, msg, "Check permissions")
}

func TestErrorWithoutSuggestion(t *testing.T) {
	err := New(ErrTerm, "Not a terminal", "")
	msg := err.Error()
	assert.Contains(t, msg, "✗ Not a terminal")
	// No trailing suggestion block
	assert.NotContains(t, msg, "\n\n  \n")
}

func TestIsCode(t *testing.T) {
	err := New(ErrTerm, "Not a terminal", "")

	assert.True(t, IsCode(err, ErrTerm))
	assert.False(t, IsCode(err, ErrStore))
	assert.False(t, IsCode(nil, ErrTerm))
	assert.False(t, IsCode(stderrors.New("plain"), ErrTerm))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := New(ErrConfig, "Bad config", "")
	wrapped := WrapWithCode(inner, ErrStore, "Cannot open database", "")

	// errors.As finds the outermost structured error first
	require.True(t, IsCode(wrapped, ErrStore))
}
