package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/database"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

// Store reads the catalog through the generated queries.
type Store struct {
	q database.Querier
}

func NewStore(q database.Querier) *Store {
	return &Store{q: q}
}

var _ catalog.Store = (*Store)(nil)

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", pricing.ErrCatalogUnavailable, op, err)
}

func (s *Store) Product(ctx context.Context, productID string) (*pricing.Product, error) {
	row, err := s.q.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", pricing.ErrProductNotFound, productID)
		}
		return nil, unavailable("get product", err)
	}
	tiers, err := s.q.ListPriceTiersByProduct(ctx, productID)
	if err != nil {
		return nil, unavailable("list price tiers", err)
	}
	minWidths, err := s.q.ListMinWidthsByProduct(ctx, productID)
	if err != nil {
		return nil, unavailable("list minimum widths", err)
	}

	armBreaks, err := s.q.ListArmBreaksByProduct(ctx, productID)
	if err != nil {
		return nil, unavailable("list arm breaks", err)
	}
	limits, err := s.q.ListMechanicalLimitsByProduct(ctx, productID)
	if err != nil {
		return nil, unavailable("list mechanical limits", err)
	}

	grid, err := buildGrid(tiers, minWidths)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, err)
	}
	p := &pricing.Product{
		ID:        row.ID,
		Key:       row.ProductKey,
		Name:      row.Name,
		Grid:      grid,
		Mechanics: mapMechanics(armBreaks, limits),
	}
	if err := p.Mechanics.Validate(); err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, err)
	}
	if row.ProductType != nil {
		p.Type = *row.ProductType
	}
	if row.Slug != nil {
		p.Slug = *row.Slug
	}
	if row.SalesCoefficient.Valid {
		c := row.SalesCoefficient.Decimal
		p.SalesCoefficient = &c
	}
	return p, nil
}

func buildGrid(rows []database.ProductPriceTier, minRows []database.ProductMinWidth) (*pricing.PriceGrid, error) {
	byProjection := make(map[int][]pricing.PriceTier)
	for _, r := range rows {
		p := int(r.Projection)
		byProjection[p] = append(byProjection[p], pricing.PriceTier{MaxDimension: int(r.MaxWidth), PurchasePrice: r.PurchasePrice})
	}
	tables := make(map[int]pricing.TierTable, len(byProjection))
	for projection, tiers := range byProjection {
		table, err := pricing.NewTierTable(tiers)
		if err != nil {
			return nil, fmt.Errorf("projection %d: %w", projection, err)
		}
		tables[projection] = table
	}
	minWidths := make(map[int]int, len(minRows))
	for _, m := range minRows {
		minWidths[int(m.Projection)] = int(m.MinWidth)
	}
	return pricing.NewPriceGrid(tables, minWidths)
}

func mapMechanics(breaks []database.ProductArmBreak, limits []database.ProductMechanicalLimit) pricing.Mechanics {
	var m pricing.Mechanics
	for _, b := range breaks {
		m.ArmBreaks = append(m.ArmBreaks, pricing.ArmBreak{
			Projection: int(b.Projection),
			MinWidth:   int(b.MinWidth),
			MaxWidth:   int(b.MaxWidth),
			Arms:       int(b.Arms),
		})
	}
	for _, l := range limits {
		limit := pricing.MechanicalLimit{
			Projection: int(l.Projection),
			MinWidth:   int(l.MinWidth),
			MaxWidth:   int(l.MaxWidth),
		}
		if l.Reason != nil {
			limit.Reason = *l.Reason
		}
		m.Limits = append(m.Limits, limit)
	}
	return m
}

func (s *Store) ProductIDs(ctx context.Context) ([]string, error) {
	ids, err := s.q.ListProductIDs(ctx)
	if err != nil {
		return nil, unavailable("list products", err)
	}
	return ids, nil
}

func (s *Store) Options(ctx context.Context, productID string) ([]pricing.OptionCatalogEntry, error) {
	rows, err := s.q.ListProductOptions(ctx, productID)
	if err != nil {
		return nil, unavailable("list options", err)
	}
	tierRows, err := s.q.ListOptionTiersByProduct(ctx, productID)
	if err != nil {
		return nil, unavailable("list option tiers", err)
	}
	// Tiers with a projection form a projection × arms grid; the others a flat table.
	tiersByOption := make(map[string][]pricing.PriceTier)
	gridByOption := make(map[string]map[int][]pricing.PriceTier)
	for _, t := range tierRows {
		tier := pricing.PriceTier{MaxDimension: int(t.MaxDimension), PurchasePrice: t.PurchasePrice}
		if t.Projection == 0 {
			tiersByOption[t.OptionID] = append(tiersByOption[t.OptionID], tier)
			continue
		}
		if gridByOption[t.OptionID] == nil {
			gridByOption[t.OptionID] = make(map[int][]pricing.PriceTier)
		}
		p := int(t.Projection)
		gridByOption[t.OptionID][p] = append(gridByOption[t.OptionID][p], tier)
	}

	out := make([]pricing.OptionCatalogEntry, 0, len(rows))
	for _, r := range rows {
		opt := pricing.OptionCatalogEntry{
			ID:               r.ID,
			ProductID:        r.ProductID,
			Name:             r.Name,
			Category:         pricing.NormalizeCategory(r.Category),
			PurchasePrice:    r.PurchasePrice,
			SalesCoefficient: r.SalesCoefficient,
			PerSquareMeter:   r.PerSquareMeter,
		}
		if r.Axis != nil {
			opt.Axis = pricing.Axis(*r.Axis)
		}
		if tiers, ok := tiersByOption[r.ID]; ok {
			table, err := pricing.NewTierTable(tiers)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", r.ID, err)
			}
			opt.Tiers = &table
		}
		if byProjection, ok := gridByOption[r.ID]; ok {
			grid, err := buildOptionGrid(byProjection)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", r.ID, err)
			}
			opt.Grid = grid
			if opt.Axis == "" {
				opt.Axis = pricing.AxisArms
			}
		}
		out = append(out, opt)
	}
	return out, nil
}

func buildOptionGrid(byProjection map[int][]pricing.PriceTier) (*pricing.PriceGrid, error) {
	tables := make(map[int]pricing.TierTable, len(byProjection))
	for projection, tiers := range byProjection {
		table, err := pricing.NewTierTable(tiers)
		if err != nil {
			return nil, fmt.Errorf("projection %d: %w", projection, err)
		}
		tables[projection] = table
	}
	return pricing.NewPriceGrid(tables, nil)
}

func (s *Store) ShippingRules(ctx context.Context, productID string) ([]pricing.ShippingRule, error) {
	rows, err := s.q.ListShippingRulesByProduct(ctx, &productID)
	if err != nil {
		return nil, unavailable("list shipping rules", err)
	}
	out := make([]pricing.ShippingRule, len(rows))
	for i, r := range rows {
		out[i] = pricing.ShippingRule{
			ID:                r.ID,
			Label:             r.Label,
			ConditionMinWidth: int(r.ConditionMinWidth),
			SurchargePrice:    r.SurchargePrice,
		}
	}
	return out, nil
}

func (s *Store) Fabrics(ctx context.Context, productID string) ([]pricing.Fabric, error) {
	rows, err := s.q.ListFabricsByProduct(ctx, productID)
	if err != nil {
		return nil, unavailable("list fabrics", err)
	}
	out := make([]pricing.Fabric, len(rows))
	for i, r := range rows {
		out[i] = pricing.Fabric{
			ID:               r.ID,
			Name:             r.Name,
			SurchargePrice:   r.SurchargePrice,
			SalesCoefficient: r.SalesCoefficient,
		}
		if r.FabricRange != nil {
			out[i].Range = *r.FabricRange
		}
	}
	return out, nil
}

func (s *Store) PricingRules(ctx context.Context, productID string) ([]pricing.PricingRule, error) {
	rows, err := s.q.ListPricingRulesByProduct(ctx, productID)
	if err != nil {
		return nil, unavailable("list pricing rules", err)
	}
	return mapRules(rows), nil
}

func (s *Store) CreatePricingRule(ctx context.Context, rule pricing.PricingRule) (pricing.PricingRule, error) {
	if err := rule.Validate(); err != nil {
		return pricing.PricingRule{}, err
	}
	params := database.CreatePricingRuleParams{
		ID:          rule.ID,
		ProductID:   rule.ProductID,
		Coefficient: rule.Coefficient,
		ValidFrom:   pgtype.Timestamptz{Time: rule.ValidFrom, Valid: true},
	}
	if rule.Reason != "" {
		params.Reason = &rule.Reason
	}
	if rule.ValidUntil != nil {
		params.ValidUntil = pgtype.Timestamptz{Time: *rule.ValidUntil, Valid: true}
	}
	row, err := s.q.CreatePricingRule(ctx, params)
	if err != nil {
		if isForeignKeyViolation(err) {
			return pricing.PricingRule{}, fmt.Errorf("%w: %s", pricing.ErrProductNotFound, rule.ProductID)
		}
		if isUniqueViolation(err) {
			return pricing.PricingRule{}, fmt.Errorf("%w: id %s", catalog.ErrDuplicateRule, rule.ID)
		}
		return pricing.PricingRule{}, unavailable("create pricing rule", err)
	}
	return mapRule(row), nil
}

func (s *Store) GetPricingRule(ctx context.Context, id string) (pricing.PricingRule, error) {
	row, err := s.q.GetPricingRuleByID(ctx, id)
	if err != nil {
		return pricing.PricingRule{}, ruleError("get pricing rule", id, err)
	}
	return mapRule(row), nil
}

func (s *Store) ListPricingRules(ctx context.Context, filter catalog.RuleFilter) ([]pricing.PricingRule, int64, error) {
	var productID *string
	if filter.ProductID != "" {
		productID = &filter.ProductID
	}
	total, err := s.q.CountPricingRules(ctx, productID)
	if err != nil {
		return nil, 0, unavailable("count pricing rules", err)
	}
	if total == 0 || int64(filter.Offset) >= total {
		return []pricing.PricingRule{}, total, nil
	}
	rows, err := s.q.ListPricingRules(ctx, database.ListPricingRulesParams{
		Limit:     filter.Limit,
		Offset:    filter.Offset,
		ProductID: productID,
	})
	if err != nil {
		return nil, 0, unavailable("list pricing rules", err)
	}
	return mapRules(rows), total, nil
}

func (s *Store) DeactivatePricingRule(ctx context.Context, id string) (pricing.PricingRule, error) {
	row, err := s.q.DeactivatePricingRule(ctx, id)
	if err != nil {
		return pricing.PricingRule{}, ruleError("deactivate pricing rule", id, err)
	}
	return mapRule(row), nil
}

func (s *Store) DeletePricingRule(ctx context.Context, id string) (pricing.PricingRule, error) {
	row, err := s.q.GetPricingRuleByID(ctx, id)
	if err != nil {
		return pricing.PricingRule{}, ruleError("get pricing rule", id, err)
	}
	n, err := s.q.DeletePricingRule(ctx, id)
	if err != nil {
		return pricing.PricingRule{}, unavailable("delete pricing rule", err)
	}
	if n == 0 {
		return pricing.PricingRule{}, fmt.Errorf("%w: %s", catalog.ErrRuleNotFound, id)
	}
	return mapRule(row), nil
}

func (s *Store) RulesExpiringBetween(ctx context.Context, from, to time.Time) ([]pricing.PricingRule, error) {
	rows, err := s.q.ListPricingRulesExpiringBetween(ctx, database.ListPricingRulesExpiringBetweenParams{
		WindowStart: pgtype.Timestamptz{Time: from, Valid: true},
		WindowEnd:   pgtype.Timestamptz{Time: to, Valid: true},
	})
	if err != nil {
		return nil, unavailable("list expiring pricing rules", err)
	}
	return mapRules(rows), nil
}

func ruleError(op, id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", catalog.ErrRuleNotFound, id)
	}
	return unavailable(op, err)
}

func mapRule(r database.PricingRule) pricing.PricingRule {
	rule := pricing.PricingRule{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Coefficient: r.Coefficient,
		ValidFrom:   r.ValidFrom.Time,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt.Time,
	}
	if r.Reason != nil {
		rule.Reason = *r.Reason
	}
	if r.ValidUntil.Valid {
		until := r.ValidUntil.Time
		rule.ValidUntil = &until
	}
	return rule
}

func mapRules(rows []database.PricingRule) []pricing.PricingRule {
	out := make([]pricing.PricingRule, len(rows))
	for i, r := range rows {
		out[i] = mapRule(r)
	}
	return out
}

// Postgres error codes.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
