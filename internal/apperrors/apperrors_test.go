package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(TransportError, "request failed", "status 503")
	assert.Equal(t, "TRANSPORT_ERROR: request failed (status 503)", err.Error())

	bare := New(ConfigurationError, "key missing", "")
	assert.Equal(t, "CONFIGURATION_ERROR: key missing", bare.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, TransportError, "fetch failed")

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsType(err, TransportError))

	assert.Nil(t, Wrap(nil, TransportError, "ignored"))
}

func TestIsTypeThroughWrapping(t *testing.T) {
	inner := MissingCredential("cwa")
	outer := fmt.Errorf("loading config: %w", inner)

	assert.True(t, IsType(outer, ConfigurationError))
	assert.False(t, IsType(outer, TransportError))
	assert.False(t, IsType(errors.New("plain"), ConfigurationError))
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, New(ValidationError, "", "").HTTPStatus)
	assert.Equal(t, http.StatusNotFound, New(NotFoundError, "", "").HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, New(TransportError, "", "").HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, New(ShapeError, "", "").HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, MissingCredential("cwa").HTTPStatus)
}
