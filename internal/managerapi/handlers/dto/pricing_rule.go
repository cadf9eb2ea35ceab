package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingRuleResponse defines the structure for pricing rule data returned by the API.
type PricingRuleResponse struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	Coefficient string     `json:"coefficient"`
	Reason      string     `json:"reason,omitempty"`
	ValidFrom   time.Time  `json:"valid_from"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	IsActive    bool       `json:"is_active"`
	Status      string     `json:"status"` // active, scheduled, expired or inactive at response time
	CreatedAt   time.Time  `json:"created_at"`
}

// CreatePricingRuleRequest defines the expected JSON body for creating a rule.
// ValidFrom defaults to now. Coefficient is validated in the handler.
type CreatePricingRuleRequest struct {
	ProductID   string          `json:"product_id" binding:"required"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Reason      string          `json:"reason"`
	ValidFrom   *time.Time      `json:"valid_from"`
	ValidUntil  *time.Time      `json:"valid_until"`
}
