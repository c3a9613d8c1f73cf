package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewParsingError("bad row", nil)
	assert.Equal(t, "[PARSING] bad row", err.Error())

	wrapped := NewStorageError("open failed", errors.New("no such file"))
	assert.Equal(t, "[STORAGE] open failed: no such file", wrapped.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewConfigError("load failed", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(fmt.Errorf("outer: %w", err), &appErr))
	assert.Equal(t, ErrTypeConfig, appErr.Type)
}

func TestWithContext(t *testing.T) {
	err := NewParsingError("bad row", nil).
		WithContext("line", 42).
		WithContext("file", "feed.csv")

	assert.Equal(t, 42, err.Context["line"])
	assert.Equal(t, "feed.csv", err.Context["file"])
}

func TestIsType(t *testing.T) {
	err := NewNotFoundError("missing", nil)

	assert.True(t, IsType(err, ErrTypeNotFound))
	assert.False(t, IsType(err, ErrTypeParsing))
	assert.False(t, IsType(errors.New("plain"), ErrTypeNotFound))
}
