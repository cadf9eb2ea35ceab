package errormapper

const (
	// Request validation failures
	ErrorCodeInvalidDimension  = "INVALID_DIMENSION"
	ErrorCodeUnknownAxisValue  = "UNKNOWN_AXIS_VALUE"
	ErrorCodeUnknownOption     = "UNKNOWN_OPTION"
	ErrorCodeInvalidPostalCode = "INVALID_POSTAL_CODE"
	ErrorCodeZoneNotCovered    = "ZONE_NOT_COVERED"
	ErrorCodeValidationFailure = "VALIDATION_FAIL" // Generic validation failure

	// Lookup failures
	ErrorCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrorCodeRuleNotFound    = "RULE_NOT_FOUND"
	ErrorCodeDuplicateRule   = "DUPLICATE_RULE"

	// Catalog failures
	ErrorCodeMissingCoefficient = "MISSING_COEFFICIENT"
	ErrorCodeInvalidCatalogData = "INVALID_CATALOG_DATA"
	ErrorCodeCatalogUnavailable = "CATALOG_UNAVAILABLE" // Backend down or circuit open

	// System Errors
	ErrorCodeSystemError = "SYS_ERR" // General internal error
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeRateLimited = "RATE_LIMITED"
)
