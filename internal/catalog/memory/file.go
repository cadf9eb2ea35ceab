package memory

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

type fileCatalog struct {
	Products      []fileProduct         `yaml:"products"`
	ShippingRules []pricing.ShippingRule `yaml:"shipping_rules"`
}

type fileTier struct {
	Max   int             `yaml:"max"`
	Price decimal.Decimal `yaml:"price"`
}

type fileProduct struct {
	ID               string                    `yaml:"id"`
	Key              string                    `yaml:"key"`
	Type             string                    `yaml:"type"`
	Name             string                    `yaml:"name"`
	Slug             string                    `yaml:"slug"`
	SalesCoefficient *decimal.Decimal          `yaml:"sales_coefficient"`
	Grid             map[int][]fileTier        `yaml:"grid"`
	MinWidths        map[int]int               `yaml:"min_widths"`
	ArmBreaks        []pricing.ArmBreak        `yaml:"arm_breaks"`
	MechanicalLimits []pricing.MechanicalLimit `yaml:"mechanical_limits"`
	Options          []fileOption              `yaml:"options"`
	Fabrics          []fileFabric              `yaml:"fabrics"`
	ShippingRules    []pricing.ShippingRule    `yaml:"shipping_rules"`
	PricingRules     []fileRule                `yaml:"pricing_rules"`
}

type fileOption struct {
	ID               string             `yaml:"id"`
	Name             string             `yaml:"name"`
	Category         string             `yaml:"category"`
	PurchasePrice    decimal.Decimal    `yaml:"purchase_price"`
	SalesCoefficient decimal.Decimal    `yaml:"sales_coefficient"`
	Axis             pricing.Axis       `yaml:"axis"`
	Tiers            []fileTier         `yaml:"tiers"`
	Grid             map[int][]fileTier `yaml:"grid"`
	PerSquareMeter   bool               `yaml:"per_square_meter"`
}

type fileFabric struct {
	ID               string          `yaml:"id"`
	Name             string          `yaml:"name"`
	Range            string          `yaml:"range"`
	SurchargePrice   decimal.Decimal `yaml:"surcharge_price"`
	SalesCoefficient decimal.Decimal `yaml:"sales_coefficient"`
}

type fileRule struct {
	ID          string          `yaml:"id"`
	Coefficient decimal.Decimal `yaml:"coefficient"`
	Reason      string          `yaml:"reason"`
	ValidFrom   time.Time       `yaml:"valid_from"`
	ValidUntil  *time.Time      `yaml:"valid_until"`
	Inactive    bool            `yaml:"inactive"`
}

// LoadFile reads a YAML catalog into a new Store.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Load(data)
}

// Load parses a YAML catalog document.
func Load(data []byte) (*Store, error) {
	var doc fileCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", pricing.ErrInvalidCatalogData, err)
	}

	s := NewStore()
	if err := s.PutShippingRules("", doc.ShippingRules...); err != nil {
		return nil, err
	}
	for _, fp := range doc.Products {
		if err := s.loadProduct(fp); err != nil {
			return nil, fmt.Errorf("product %q: %w", fp.ID, err)
		}
	}
	return s, nil
}

func (s *Store) loadProduct(fp fileProduct) error {
	grid, err := toPriceGrid(fp.Grid, fp.MinWidths)
	if err != nil {
		return err
	}

	if err := s.PutProduct(pricing.Product{
		ID:               fp.ID,
		Key:              fp.Key,
		Type:             fp.Type,
		Name:             fp.Name,
		Slug:             fp.Slug,
		SalesCoefficient: fp.SalesCoefficient,
		Grid:             grid,
		Mechanics: pricing.Mechanics{
			ArmBreaks: fp.ArmBreaks,
			Limits:    fp.MechanicalLimits,
		},
	}); err != nil {
		return err
	}

	for _, fo := range fp.Options {
		opt := pricing.OptionCatalogEntry{
			ID:               fo.ID,
			ProductID:        fp.ID,
			Name:             fo.Name,
			Category:         pricing.NormalizeCategory(fo.Category),
			PurchasePrice:    fo.PurchasePrice,
			SalesCoefficient: fo.SalesCoefficient,
			Axis:             fo.Axis,
			PerSquareMeter:   fo.PerSquareMeter,
		}
		if len(fo.Tiers) > 0 {
			table, err := toTierTable(fo.Tiers)
			if err != nil {
				return fmt.Errorf("option %s: %w", fo.ID, err)
			}
			opt.Tiers = &table
			if opt.Axis == "" {
				opt.Axis = pricing.AxisWidth
			}
		}
		if len(fo.Grid) > 0 {
			optGrid, err := toPriceGrid(fo.Grid, nil)
			if err != nil {
				return fmt.Errorf("option %s: %w", fo.ID, err)
			}
			opt.Grid = optGrid
			if opt.Axis == "" {
				opt.Axis = pricing.AxisArms
			}
		}
		if err := s.PutOptions(fp.ID, opt); err != nil {
			return err
		}
	}

	for _, ff := range fp.Fabrics {
		if err := s.PutFabrics(fp.ID, pricing.Fabric(ff)); err != nil {
			return err
		}
	}
	if err := s.PutShippingRules(fp.ID, fp.ShippingRules...); err != nil {
		return err
	}

	for _, fr := range fp.PricingRules {
		rule, err := pricing.NewPricingRule(fr.ID, fp.ID, fr.Coefficient, fr.Reason, fr.ValidFrom, fr.ValidUntil)
		if err != nil {
			return err
		}
		rule.IsActive = !fr.Inactive
		rule.CreatedAt = fr.ValidFrom
		s.mu.Lock()
		s.rules[rule.ID] = rule
		s.mu.Unlock()
	}
	return nil
}

func toPriceGrid(in map[int][]fileTier, minWidths map[int]int) (*pricing.PriceGrid, error) {
	tables := make(map[int]pricing.TierTable, len(in))
	for projection, tiers := range in {
		table, err := toTierTable(tiers)
		if err != nil {
			return nil, fmt.Errorf("projection %d: %w", projection, err)
		}
		tables[projection] = table
	}
	return pricing.NewPriceGrid(tables, minWidths)
}

func toTierTable(in []fileTier) (pricing.TierTable, error) {
	tiers := make([]pricing.PriceTier, len(in))
	for i, t := range in {
		tiers[i] = pricing.PriceTier{MaxDimension: t.Max, PurchasePrice: t.Price}
	}
	return pricing.NewTierTable(tiers)
}
