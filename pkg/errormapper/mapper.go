package errormapper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
	"github.com/jnabil1974/storal.fr-sub003/internal/zone"
)

// Ordered: the first matching sentinel wins.
var errorToCode = []struct {
	target error
	code   string
}{
	{pricing.ErrCatalogUnavailable, ErrorCodeCatalogUnavailable},
	{pricing.ErrInvalidDimension, ErrorCodeInvalidDimension},
	{pricing.ErrUnknownAxisValue, ErrorCodeUnknownAxisValue},
	{pricing.ErrUnknownOption, ErrorCodeUnknownOption},
	{pricing.ErrProductNotFound, ErrorCodeProductNotFound},
	{pricing.ErrMissingCoefficient, ErrorCodeMissingCoefficient},
	{pricing.ErrInvalidCatalogData, ErrorCodeInvalidCatalogData},
	{zone.ErrInvalidPostalCode, ErrorCodeInvalidPostalCode},
	{zone.ErrZoneNotCovered, ErrorCodeZoneNotCovered},
	{catalog.ErrRuleNotFound, ErrorCodeRuleNotFound},
	{catalog.ErrDuplicateRule, ErrorCodeDuplicateRule},
	{context.DeadlineExceeded, ErrorCodeTimeout},
}

var internalToHTTP = map[string]int{
	ErrorCodeInvalidDimension:   http.StatusUnprocessableEntity,
	ErrorCodeUnknownAxisValue:   http.StatusUnprocessableEntity,
	ErrorCodeUnknownOption:      http.StatusUnprocessableEntity,
	ErrorCodeInvalidPostalCode:  http.StatusUnprocessableEntity,
	ErrorCodeZoneNotCovered:     http.StatusUnprocessableEntity,
	ErrorCodeValidationFailure:  http.StatusBadRequest,
	ErrorCodeProductNotFound:    http.StatusNotFound,
	ErrorCodeRuleNotFound:       http.StatusNotFound,
	ErrorCodeDuplicateRule:      http.StatusConflict,
	ErrorCodeMissingCoefficient: http.StatusInternalServerError,
	ErrorCodeInvalidCatalogData: http.StatusInternalServerError,
	ErrorCodeCatalogUnavailable: http.StatusServiceUnavailable,
	ErrorCodeTimeout:            http.StatusGatewayTimeout,
	ErrorCodeRateLimited:        http.StatusTooManyRequests,
	ErrorCodeSystemError:        http.StatusInternalServerError,
}

// CodeFor classifies err into one of the ErrorCode constants. Unknown errors map
// to ErrorCodeSystemError.
func CodeFor(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range errorToCode {
		if errors.Is(err, m.target) {
			return m.code
		}
	}
	return ErrorCodeSystemError
}

// HTTPStatus translates an internal error code to an HTTP status.
func HTTPStatus(internalCode string) int {
	internalCode = strings.ToUpper(internalCode) // Normalize internal code
	if status, ok := internalToHTTP[internalCode]; ok {
		return status
	}
	slog.Debug("No specific mapping found for error code, returning default",
		slog.String("internal_code", internalCode),
		slog.Int("default_status", http.StatusInternalServerError),
	)
	return http.StatusInternalServerError
}

// Retryable reports whether a caller may retry the request unchanged.
func Retryable(internalCode string) bool {
	switch internalCode {
	case ErrorCodeCatalogUnavailable, ErrorCodeTimeout, ErrorCodeRateLimited:
		return true
	}
	return false
}
