package dto

// OfferedOptionResponse is an option with its sale price before tax. From is set
// when the price is the lowest tier because no dimensions were given.
type OfferedOptionResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Mode     string `json:"mode"`
	PriceHT  string `json:"price_ht"`
	From     bool   `json:"from"`
}

// OptionListResponse is the body of GET /products/:id/options.
type OptionListResponse struct {
	ProductID         string                  `json:"product_id"`
	Category          string                  `json:"category,omitempty"`
	Coefficient       string                  `json:"coefficient"`
	CoefficientSource string                  `json:"coefficient_source"`
	Options           []OfferedOptionResponse `json:"options"`
}

// OfferedFabricResponse carries the surcharge per m² and, with dimensions, the total.
type OfferedFabricResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Range     string  `json:"range,omitempty"`
	PriceM2HT string  `json:"price_m2_ht"`
	PriceHT   *string `json:"price_ht,omitempty"`
}

// FabricListResponse is the body of GET /products/:id/fabrics.
type FabricListResponse struct {
	ProductID         string                  `json:"product_id"`
	Coefficient       string                  `json:"coefficient"`
	CoefficientSource string                  `json:"coefficient_source"`
	Fabrics           []OfferedFabricResponse `json:"fabrics"`
}
