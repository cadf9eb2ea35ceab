package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

// Store is an in-memory catalog. It backs the file catalog source and the tests.
type Store struct {
	mu       sync.RWMutex
	products map[string]pricing.Product
	options  map[string][]pricing.OptionCatalogEntry
	fabrics  map[string][]pricing.Fabric
	rules    map[string]pricing.PricingRule
	// shipping rules keyed by product id; "" holds rules for every product.
	shipping map[string][]pricing.ShippingRule
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]pricing.Product),
		options:  make(map[string][]pricing.OptionCatalogEntry),
		fabrics:  make(map[string][]pricing.Fabric),
		rules:    make(map[string]pricing.PricingRule),
		shipping: make(map[string][]pricing.ShippingRule),
		now:      time.Now,
	}
}

var _ catalog.Store = (*Store)(nil)

// PutProduct adds or replaces a product.
func (s *Store) PutProduct(p pricing.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	return nil
}

func (s *Store) PutOptions(productID string, opts ...pricing.OptionCatalogEntry) error {
	for _, o := range opts {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[productID] = append(s.options[productID], opts...)
	return nil
}

func (s *Store) PutFabrics(productID string, fabrics ...pricing.Fabric) error {
	for _, f := range fabrics {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fabrics[productID] = append(s.fabrics[productID], fabrics...)
	return nil
}

// PutShippingRules stores rules for one product, or for all products when productID is empty.
func (s *Store) PutShippingRules(productID string, rules ...pricing.ShippingRule) error {
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipping[productID] = append(s.shipping[productID], rules...)
	return nil
}

func (s *Store) Product(_ context.Context, productID string) (*pricing.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", pricing.ErrProductNotFound, productID)
	}
	return &p, nil
}

func (s *Store) ProductIDs(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) Options(_ context.Context, productID string) ([]pricing.OptionCatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]pricing.OptionCatalogEntry(nil), s.options[productID]...), nil
}

func (s *Store) Fabrics(_ context.Context, productID string) ([]pricing.Fabric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]pricing.Fabric(nil), s.fabrics[productID]...), nil
}

func (s *Store) ShippingRules(_ context.Context, productID string) ([]pricing.ShippingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]pricing.ShippingRule(nil), s.shipping[""]...)
	if productID != "" {
		out = append(out, s.shipping[productID]...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ConditionMinWidth < out[j].ConditionMinWidth })
	return out, nil
}

func (s *Store) PricingRules(_ context.Context, productID string) ([]pricing.PricingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pricing.PricingRule
	for _, r := range s.rules {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	sortRules(out)
	return out, nil
}

func (s *Store) CreatePricingRule(_ context.Context, rule pricing.PricingRule) (pricing.PricingRule, error) {
	if err := rule.Validate(); err != nil {
		return pricing.PricingRule{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[rule.ProductID]; !ok {
		return pricing.PricingRule{}, fmt.Errorf("%w: %s", pricing.ErrProductNotFound, rule.ProductID)
	}
	if _, dup := s.rules[rule.ID]; dup {
		return pricing.PricingRule{}, fmt.Errorf("%w: id %s", catalog.ErrDuplicateRule, rule.ID)
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = s.now()
	}
	s.rules[rule.ID] = rule
	return rule, nil
}

func (s *Store) GetPricingRule(_ context.Context, id string) (pricing.PricingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[id]
	if !ok {
		return pricing.PricingRule{}, fmt.Errorf("%w: %s", catalog.ErrRuleNotFound, id)
	}
	return r, nil
}

func (s *Store) ListPricingRules(_ context.Context, filter catalog.RuleFilter) ([]pricing.PricingRule, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []pricing.PricingRule
	for _, r := range s.rules {
		if filter.ProductID == "" || r.ProductID == filter.ProductID {
			all = append(all, r)
		}
	}
	sortRules(all)
	total := int64(len(all))
	start := int(filter.Offset)
	if start >= len(all) {
		return []pricing.PricingRule{}, total, nil
	}
	end := len(all)
	if filter.Limit > 0 && start+int(filter.Limit) < end {
		end = start + int(filter.Limit)
	}
	return all[start:end], total, nil
}

func (s *Store) DeactivatePricingRule(_ context.Context, id string) (pricing.PricingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rules[id]
	if !ok {
		return pricing.PricingRule{}, fmt.Errorf("%w: %s", catalog.ErrRuleNotFound, id)
	}
	r.IsActive = false
	s.rules[id] = r
	return r, nil
}

func (s *Store) DeletePricingRule(_ context.Context, id string) (pricing.PricingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rules[id]
	if !ok {
		return pricing.PricingRule{}, fmt.Errorf("%w: %s", catalog.ErrRuleNotFound, id)
	}
	delete(s.rules, id)
	return r, nil
}

func (s *Store) RulesExpiringBetween(_ context.Context, from, to time.Time) ([]pricing.PricingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pricing.PricingRule
	for _, r := range s.rules {
		if !r.IsActive || r.ValidUntil == nil {
			continue
		}
		if !r.ValidUntil.Before(from) && r.ValidUntil.Before(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValidUntil.Before(*out[j].ValidUntil) })
	return out, nil
}

// Rules are listed most recent first, the order the rule selection expects.
func sortRules(rules []pricing.PricingRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if !rules[i].ValidFrom.Equal(rules[j].ValidFrom) {
			return rules[i].ValidFrom.After(rules[j].ValidFrom)
		}
		if !rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].CreatedAt.After(rules[j].CreatedAt)
		}
		return rules[i].ID < rules[j].ID
	})
}
