package errormapper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
	"github.com/jnabil1974/storal.fr-sub003/internal/zone"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"dimension", fmt.Errorf("width: %w", pricing.ErrInvalidDimension), ErrorCodeInvalidDimension, http.StatusUnprocessableEntity},
		{"axis", pricing.ErrUnknownAxisValue, ErrorCodeUnknownAxisValue, http.StatusUnprocessableEntity},
		{"coefficient", pricing.ErrMissingCoefficient, ErrorCodeMissingCoefficient, http.StatusInternalServerError},
		{"catalog down", fmt.Errorf("%w: dial tcp", pricing.ErrCatalogUnavailable), ErrorCodeCatalogUnavailable, http.StatusServiceUnavailable},
		{"product", pricing.ErrProductNotFound, ErrorCodeProductNotFound, http.StatusNotFound},
		{"rule", catalog.ErrRuleNotFound, ErrorCodeRuleNotFound, http.StatusNotFound},
		{"duplicate rule", fmt.Errorf("%w: id r1", catalog.ErrDuplicateRule), ErrorCodeDuplicateRule, http.StatusConflict},
		{"malformed catalog", pricing.ErrInvalidCatalogData, ErrorCodeInvalidCatalogData, http.StatusInternalServerError},
		{"zone", zone.ErrZoneNotCovered, ErrorCodeZoneNotCovered, http.StatusUnprocessableEntity},
		{"deadline", context.DeadlineExceeded, ErrorCodeTimeout, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), ErrorCodeSystemError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := CodeFor(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.status, HTTPStatus(code))
		})
	}
}

func TestCatalogUnavailableWinsOverWrappedTimeout(t *testing.T) {
	err := fmt.Errorf("%w: %w", pricing.ErrCatalogUnavailable, context.DeadlineExceeded)
	assert.Equal(t, ErrorCodeCatalogUnavailable, CodeFor(err))
	assert.True(t, Retryable(CodeFor(err)))
	assert.False(t, Retryable(ErrorCodeInvalidDimension))
}

func TestHTTPStatusDefaults(t *testing.T) {
	assert.Equal(t, "", CodeFor(nil))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus("invalid_dimension"))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus("NOPE"))
}
