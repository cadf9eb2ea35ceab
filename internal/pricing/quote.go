package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Surcharge line identifiers.
const (
	LineInstallation = "installation"
	LineTravelFee    = "deplacement"
)

// QuoteRequest is a priced configuration.
type QuoteRequest struct {
	ProductID  string   `json:"product_id"`
	Width      int      `json:"width"`
	Projection int      `json:"projection"`
	OptionIDs  []string `json:"option_ids,omitempty"`
	FabricID   string   `json:"fabric_id,omitempty"`
	// PostalCode and ProfessionalInstallation add installation lines and switch to
	// the reduced VAT rate.
	PostalCode               string `json:"postal_code,omitempty"`
	ProfessionalInstallation bool   `json:"professional_installation,omitempty"`
}

// LineItem is one priced, rounded, pre-tax line.
type LineItem struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Category string          `json:"category,omitempty"`
	PriceHT  decimal.Decimal `json:"price_ht"`
}

// Quote is the price breakdown. TotalHT is the exact sum of the rounded lines and
// TotalTTC is TotalHT with VAT, rounded once.
type Quote struct {
	ID                string          `json:"id,omitempty"`
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Width             int             `json:"width"`
	Projection        int             `json:"projection"`
	Arms              int             `json:"arms"`
	Coefficient       decimal.Decimal `json:"coefficient"`
	CoefficientSource string          `json:"coefficient_source"`
	VATRate           decimal.Decimal `json:"vat_rate"`
	PurchasePriceHT   decimal.Decimal `json:"purchase_price_ht"`
	BasePriceHT       decimal.Decimal `json:"base_price_ht"`
	OptionsHT         []LineItem      `json:"options_ht"`
	SurchargesHT      []LineItem      `json:"surcharges_ht"`
	TotalHT           decimal.Decimal `json:"total_ht"`
	VAT               decimal.Decimal `json:"vat"`
	TotalTTC          decimal.Decimal `json:"total_ttc"`
	ComputedAt        time.Time       `json:"computed_at"`
}

// Installation is the cost of professional installation at a postal code, pre-tax.
type Installation struct {
	Department  string
	Zone        string
	LabourHT    decimal.Decimal
	TravelFeeHT decimal.Decimal
}

// Installer prices installation for a validated width and a postal code.
type Installer interface {
	Installation(widthMM int, postalCode string) (Installation, error)
}

// Compute prices req against snap. It performs no I/O and is deterministic for a
// given snapshot, request and settings. installer may be nil when installation is
// never requested.
func Compute(snap *Snapshot, req QuoteRequest, settings Settings, installer Installer) (*Quote, error) {
	if req.Projection <= 0 {
		return nil, fmt.Errorf("%w: projection %d mm must be positive", ErrInvalidDimension, req.Projection)
	}
	tier, err := snap.Product.Grid.Lookup(req.Projection, req.Width)
	if err != nil {
		return nil, err
	}
	if err := snap.Product.Mechanics.Check(req.Projection, req.Width); err != nil {
		return nil, err
	}
	dims := Dimensions{
		Width:      req.Width,
		Projection: req.Projection,
		Arms:       snap.Product.Mechanics.ArmCount(req.Projection, req.Width),
	}

	coefficient, err := ResolveCoefficient(snap, DefaultChain(settings))
	if err != nil {
		return nil, err
	}

	q := &Quote{
		ProductID:         snap.Product.ID,
		ProductName:       snap.Product.Name,
		Width:             req.Width,
		Projection:        req.Projection,
		Arms:              dims.Arms,
		Coefficient:       coefficient.Value,
		CoefficientSource: coefficient.Source,
		VATRate:           settings.VATRate,
		PurchasePriceHT:   tier.PurchasePrice,
		BasePriceHT:       Round2(PriceHT(tier.PurchasePrice, coefficient.Value)),
		OptionsHT:         []LineItem{},
		SurchargesHT:      []LineItem{},
		ComputedAt:        snap.TakenAt,
	}

	seen := make(map[string]bool, len(req.OptionIDs))
	for _, id := range req.OptionIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		opt, ok := snap.Options[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q for product %s", ErrUnknownOption, id, snap.Product.ID)
		}
		price, err := opt.PriceHT(dims, coefficient.Value)
		if err != nil {
			return nil, err
		}
		q.OptionsHT = append(q.OptionsHT, LineItem{ID: opt.ID, Label: opt.Name, Category: opt.Category, PriceHT: Round2(price)})
	}

	if req.FabricID != "" {
		fabric, ok := snap.Fabrics[req.FabricID]
		if !ok {
			return nil, fmt.Errorf("%w: fabric %q for product %s", ErrUnknownOption, req.FabricID, snap.Product.ID)
		}
		q.OptionsHT = append(q.OptionsHT, LineItem{
			ID:       fabric.ID,
			Label:    fabric.Name,
			Category: CategoryToile,
			PriceHT:  Round2(fabric.PriceHT(req.Width, req.Projection, coefficient.Value)),
		})
	}

	// Surcharges are passed through at cost; VAT applies through the total.
	for _, rule := range snap.ShippingRules {
		if !rule.Applies(req.Width) {
			continue
		}
		q.SurchargesHT = append(q.SurchargesHT, LineItem{ID: rule.ID, Label: rule.Label, PriceHT: Round2(rule.SurchargePrice)})
	}

	if req.ProfessionalInstallation {
		if installer == nil {
			return nil, fmt.Errorf("professional installation is not offered")
		}
		inst, err := installer.Installation(req.Width, req.PostalCode)
		if err != nil {
			return nil, err
		}
		q.SurchargesHT = append(q.SurchargesHT, LineItem{
			ID:      LineInstallation,
			Label:   fmt.Sprintf("Pose %s (%s)", inst.Zone, inst.Department),
			PriceHT: Round2(inst.LabourHT),
		})
		if inst.TravelFeeHT.IsPositive() {
			q.SurchargesHT = append(q.SurchargesHT, LineItem{
				ID:      LineTravelFee,
				Label:   "Frais de déplacement",
				PriceHT: Round2(inst.TravelFeeHT),
			})
		}
		q.VATRate = settings.ReducedVATRate
	}

	total := q.BasePriceHT
	for _, l := range q.OptionsHT {
		total = total.Add(l.PriceHT)
	}
	for _, l := range q.SurchargesHT {
		total = total.Add(l.PriceHT)
	}
	q.TotalHT = total
	q.TotalTTC = Round2(WithVAT(total, q.VATRate))
	q.VAT = q.TotalTTC.Sub(q.TotalHT)
	return q, nil
}
