package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
)

// Pricing modes reported by the option listing.
const (
	ModeFlat           = "flat"
	ModeTiered         = "tiered"
	ModePerSquareMeter = "per_m2"
)

// OfferedOption is an option with its pre-tax sale price. Without dimensions,
// tiered options carry their lowest tier (From is set) and per-m² options their
// price for one square metre.
type OfferedOption struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Mode     string          `json:"mode"`
	PriceHT  decimal.Decimal `json:"price_ht"`
	From     bool            `json:"from,omitempty"`
}

// OfferedFabric is a fabric with its sale surcharge per m², and the total surcharge
// when dimensions were given.
type OfferedFabric struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Range     string           `json:"range,omitempty"`
	PriceM2HT decimal.Decimal  `json:"price_m2_ht"`
	PriceHT   *decimal.Decimal `json:"price_ht,omitempty"`
}

// OfferRequest selects the product, an optional category and optional dimensions.
// Width and Projection are either both zero or both set.
type OfferRequest struct {
	ProductID  string
	Category   string
	Width      int
	Projection int
}

func (r OfferRequest) hasDimensions() bool {
	return r.Width != 0 || r.Projection != 0
}

// Offer is the priced option and fabric catalog of a product.
type Offer struct {
	ProductID         string          `json:"product_id"`
	Coefficient       decimal.Decimal `json:"coefficient"`
	CoefficientSource string          `json:"coefficient_source"`
	Options           []OfferedOption `json:"options"`
	Fabrics           []OfferedFabric `json:"fabrics"`
}

// ComputeOffer prices the options and fabrics of snap with the resolved coefficient.
// When dimensions are given they are validated like a quote and every price is exact.
func ComputeOffer(snap *Snapshot, req OfferRequest, settings Settings) (*Offer, error) {
	coefficient, err := ResolveCoefficient(snap, DefaultChain(settings))
	if err != nil {
		return nil, err
	}

	var dims *Dimensions
	if req.hasDimensions() {
		if _, err := snap.Product.Grid.Lookup(req.Projection, req.Width); err != nil {
			return nil, err
		}
		if err := snap.Product.Mechanics.Check(req.Projection, req.Width); err != nil {
			return nil, err
		}
		dims = &Dimensions{
			Width:      req.Width,
			Projection: req.Projection,
			Arms:       snap.Product.Mechanics.ArmCount(req.Projection, req.Width),
		}
	}

	offer := &Offer{
		ProductID:         snap.Product.ID,
		Coefficient:       coefficient.Value,
		CoefficientSource: coefficient.Source,
		Options:           []OfferedOption{},
		Fabrics:           []OfferedFabric{},
	}

	category := NormalizeCategory(req.Category)
	for _, opt := range snap.Options {
		if category != "" && opt.Category != category {
			continue
		}
		offered, err := offerOption(opt, dims, coefficient.Value)
		if err != nil {
			return nil, err
		}
		offer.Options = append(offer.Options, offered)
	}
	sort.Slice(offer.Options, func(i, j int) bool {
		a, b := offer.Options[i], offer.Options[j]
		if !a.PriceHT.Equal(b.PriceHT) {
			return a.PriceHT.LessThan(b.PriceHT)
		}
		return a.ID < b.ID
	})

	if category == "" || category == CategoryToile {
		for _, f := range snap.Fabrics {
			offered := OfferedFabric{
				ID:        f.ID,
				Name:      f.Name,
				Range:     f.Range,
				PriceM2HT: Round2(f.PriceHT(1000, 1000, coefficient.Value)),
			}
			if dims != nil {
				price := Round2(f.PriceHT(dims.Width, dims.Projection, coefficient.Value))
				offered.PriceHT = &price
			}
			offer.Fabrics = append(offer.Fabrics, offered)
		}
		sort.Slice(offer.Fabrics, func(i, j int) bool { return offer.Fabrics[i].ID < offer.Fabrics[j].ID })
	}
	return offer, nil
}

func offerOption(opt OptionCatalogEntry, dims *Dimensions, baseCoefficient decimal.Decimal) (OfferedOption, error) {
	offered := OfferedOption{ID: opt.ID, Name: opt.Name, Category: opt.Category, Mode: ModeFlat}
	switch {
	case opt.Grid != nil || opt.Tiers != nil:
		offered.Mode = ModeTiered
	case opt.PerSquareMeter:
		offered.Mode = ModePerSquareMeter
	}

	if dims != nil {
		price, err := opt.PriceHT(*dims, baseCoefficient)
		if err != nil {
			return OfferedOption{}, err
		}
		offered.PriceHT = Round2(price)
		return offered, nil
	}

	coefficient := opt.Coefficient(baseCoefficient)
	switch {
	case opt.Grid != nil:
		offered.PriceHT = Round2(PriceHT(opt.Grid.lowestPrice(), coefficient))
		offered.From = true
	case opt.Tiers != nil:
		offered.PriceHT = Round2(PriceHT(opt.Tiers.tiers[0].PurchasePrice, coefficient))
		offered.From = true
	default:
		offered.PriceHT = Round2(PriceHT(opt.PurchasePrice, coefficient))
	}
	return offered, nil
}

// Offer loads a snapshot and prices the product's options and fabrics.
func (c *Calculator) Offer(ctx context.Context, req OfferRequest) (*Offer, error) {
	logCtx := logging.ContextWithProductID(ctx, req.ProductID)
	if (req.Width == 0) != (req.Projection == 0) {
		return nil, fmt.Errorf("%w: width and projection must be given together", ErrInvalidDimension)
	}
	snap, err := LoadSnapshot(logCtx, c.catalog, req.ProductID, c.now())
	if err != nil {
		slog.WarnContext(logCtx, "Failed to load catalog snapshot", slog.Any("error", err))
		return nil, err
	}
	return ComputeOffer(snap, req, c.settings)
}
