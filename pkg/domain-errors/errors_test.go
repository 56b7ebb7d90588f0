package dErrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "photo lookup failed")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "photo lookup failed: connection refused", err.Error())
	assert.True(t, HasCode(err, CodeInternal))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestNewWithValue(t *testing.T) {
	err := NewWithValue(CodeInvalidInput, "identity number failed checksum", "123456789")

	// The value is retrievable but never part of the rendered message.
	assert.Equal(t, "123456789", ValueOf(err))
	assert.NotContains(t, err.Error(), "123456789")
	assert.True(t, HasCode(err, CodeInvalidInput))
}

func TestValueOfWithoutValue(t *testing.T) {
	assert.Empty(t, ValueOf(New(CodeInvalidInput, "no value attached")))
	assert.Empty(t, ValueOf(errors.New("plain error")))
}

func TestCodeOf(t *testing.T) {
	t.Run("coded error", func(t *testing.T) {
		assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "no record")))
	})

	t.Run("wrapped deeper in a chain", func(t *testing.T) {
		inner := New(CodeInvalidInput, "bad digits")
		outer := fmt.Errorf("validate: %w", inner)
		assert.Equal(t, CodeInvalidInput, CodeOf(outer))
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidInput: http.StatusUnprocessableEntity,
		CodeBadRequest:   http.StatusBadRequest,
		CodeNotFound:     http.StatusNotFound,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeInternal:     http.StatusInternalServerError,
		Code("mystery"):  http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
