package codes

// Health Status Codes
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded" // Serving, but a dependency is failing
	StatusDown     = "down"
	StatusDisabled = "disabled" // Dependency not configured
)

// Pricing Rule Status Codes, derived from the validity window at read time
const (
	RuleStatusActive    = "active"
	RuleStatusScheduled = "scheduled" // valid_from in the future
	RuleStatusExpired   = "expired"   // valid_until reached
	RuleStatusInactive  = "inactive"  // Manually deactivated
)
