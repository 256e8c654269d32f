package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", NewValidationError("bad dates"))

	assert.Equal(t, ErrorTypeValidation, TypeOf(wrapped))
	assert.Equal(t, ErrorTypeInternal, TypeOf(errors.New("boom")))
	assert.True(t, Is(wrapped, ErrorTypeValidation))
	assert.False(t, Is(wrapped, ErrorTypeNotFound))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrorType]int{
		ErrorTypeValidation:    http.StatusBadRequest,
		ErrorTypeUnauthorized:  http.StatusUnauthorized,
		ErrorTypeForbidden:     http.StatusForbidden,
		ErrorTypeNotFound:      http.StatusNotFound,
		ErrorTypeConflict:      http.StatusConflict,
		ErrorTypeExternal:      http.StatusBadGateway,
		ErrorTypeConfiguration: http.StatusServiceUnavailable,
		ErrorTypeInternal:      http.StatusInternalServerError,
	}
	for typ, want := range cases {
		assert.Equal(t, want, HTTPStatus(typ), typ)
		assert.Equal(t, typ, TypeForStatus(want))
	}
	assert.Equal(t, ErrorTypeValidation, TypeForStatus(http.StatusMethodNotAllowed))
	assert.Equal(t, ErrorTypeInternal, TypeForStatus(http.StatusGatewayTimeout))
}

func TestPublicMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	assert.Equal(t, "gateway unreachable: dial tcp: connection refused",
		PublicMessage(NewExternalError("gateway unreachable", cause)))
	assert.Equal(t, "failed to save booking",
		PublicMessage(NewInternalError("failed to save booking", cause)))
	assert.Equal(t, "internal server error", PublicMessage(cause))
	assert.ErrorIs(t, NewExternalError("x", cause), cause)
}
