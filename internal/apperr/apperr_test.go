package apperr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = &Error{
	Message: "duration must be between %d and %d",
}

func TestErrorFmt(t *testing.T) {
	err := errSample.Fmt(0, 720)

	assert.Equal(t, "duration must be between 0 and 720", err.Error())
	assert.ErrorIs(t, err, errSample)
	assert.Empty(t, errSample.Context, "Fmt must not modify the sentinel")
}

func TestErrorWrap(t *testing.T) {
	err := errSample.Fmt(1, 2).Wrap(io.EOF)

	assert.Equal(t, "duration must be between 1 and 2: EOF", err.Error())
	assert.ErrorIs(t, err, errSample)
	assert.ErrorIs(t, err, io.EOF)

	other := &Error{Message: "something else"}
	assert.False(t, errors.Is(err, other))
}
