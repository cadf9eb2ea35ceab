package dto

import "time"

// CreateQuoteRequest defines the expected JSON body for pricing a configuration.
// Dimensions are in millimetres; zero or negative values are rejected as invalid dimensions.
type CreateQuoteRequest struct {
	ProductID                string   `json:"product_id" binding:"required"`
	Width                    int      `json:"width"`
	Projection               int      `json:"projection"`
	OptionIDs                []string `json:"option_ids"`
	FabricID                 string   `json:"fabric_id"`
	PostalCode               string   `json:"postal_code"`
	ProfessionalInstallation bool     `json:"professional_installation"`
}

// LineItemResponse is one priced line. Amounts are decimal strings with two places.
type LineItemResponse struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
	PriceHT  string `json:"price_ht"`
}

// QuoteResponse is the public price breakdown. Purchase prices are not exposed.
type QuoteResponse struct {
	ID                string             `json:"id"`
	ProductID         string             `json:"product_id"`
	ProductName       string             `json:"product_name"`
	Width             int                `json:"width"`
	Projection        int                `json:"projection"`
	Arms              int                `json:"arms"`
	Coefficient       string             `json:"coefficient"`
	CoefficientSource string             `json:"coefficient_source"`
	VATRate           string             `json:"vat_rate"`
	BasePriceHT       string             `json:"base_price_ht"`
	OptionsHT         []LineItemResponse `json:"options_ht"`
	SurchargesHT      []LineItemResponse `json:"surcharges_ht"`
	TotalHT           string             `json:"total_ht"`
	VAT               string             `json:"vat"`
	TotalTTC          string             `json:"total_ttc"`
	ComputedAt        time.Time          `json:"computed_at"`
}

// WidthLimitsResponse is the manufacturable width range at one projection.
type WidthLimitsResponse struct {
	ProductID  string `json:"product_id"`
	Projection int    `json:"projection"`
	MinWidth   int    `json:"min_width"`
	MaxWidth   int    `json:"max_width"`
}

// ProductLimitsResponse lists the ranges of every projection when none is requested.
type ProductLimitsResponse struct {
	ProductID string                `json:"product_id"`
	Limits    []WidthLimitsResponse `json:"limits"`
}
