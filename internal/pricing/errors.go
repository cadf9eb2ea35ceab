package pricing

import "errors"

// Pricing failures surfaced to callers. Use errors.Is to classify a returned error;
// the wrapped message carries the offending values.
var (
	// ErrInvalidDimension: a measurement is non-positive, below the manufacturable minimum
	// or above every tier bound.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrUnknownAxisValue: a discrete axis key (projection) has no table.
	ErrUnknownAxisValue = errors.New("unknown axis value")
	// ErrMissingCoefficient: no level of the coefficient chain produced a value.
	ErrMissingCoefficient = errors.New("missing coefficient")
	// ErrCatalogUnavailable: the catalog collaborator failed. Retryable.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	ErrProductNotFound    = errors.New("product not found")
	ErrUnknownOption      = errors.New("unknown option")
	ErrInvalidCatalogData = errors.New("invalid catalog data")
)

// IsRetryable reports whether err is an infrastructure failure worth retrying.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrCatalogUnavailable)
}
