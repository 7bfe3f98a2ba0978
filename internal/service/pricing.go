package service

import (
	"fmt"

	"github.com/brackenhill/bakehouse/internal/domain"
)

// Pricer computes order totals for a fixed catalog. All amounts are
// integer cents; the calculator never touches floating point.
type Pricer struct {
	catalog domain.Catalog
}

// NewPricer creates a pricing calculator over the given catalog.
func NewPricer(catalog domain.Catalog) (*Pricer, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &Pricer{catalog: catalog}, nil
}

// Subtotal sums the charged cost of every line in the cart.
func (p *Pricer) Subtotal(cart domain.Cart) (int64, error) {
	var subtotal int64
	for _, line := range cart.Lines {
		cost, err := p.LineCost(line)
		if err != nil {
			return 0, err
		}
		subtotal += cost
	}
	return subtotal, nil
}

// LineCost computes the charged cost of a single line, bulk rule applied.
//
// With a rule (threshold T, group price G) and quantity q >= T the line
// costs floor(q/T)*G + (q mod T)*unit; otherwise q*unit. Negative
// quantities are rejected rather than clamped: clamping is the mutation
// API's concern, a negative quantity reaching the calculator is a bug.
func (p *Pricer) LineCost(line domain.LineItem) (int64, error) {
	if line.Quantity < 0 {
		return 0, ErrInvalidQuantity
	}
	if line.Quantity == 0 {
		return 0, nil
	}

	item, ok := p.catalog.ItemByID(line.ItemID)
	if !ok {
		return 0, ErrUnknownItem
	}

	// Unavailable items are forced to zero upstream; price them at zero
	// here too so a stale line can never be charged.
	if !item.Available {
		return 0, nil
	}

	return chargedCost(item, line.Quantity), nil
}

// LineSavings is the display-only difference between plain per-unit
// pricing and the charged cost. Zero when no rule applies or the
// threshold is not met.
func (p *Pricer) LineSavings(line domain.LineItem) (int64, error) {
	if line.Quantity < 0 {
		return 0, ErrInvalidQuantity
	}
	if line.Quantity == 0 {
		return 0, nil
	}

	item, ok := p.catalog.ItemByID(line.ItemID)
	if !ok {
		return 0, ErrUnknownItem
	}
	if !item.Available {
		return 0, nil
	}

	naive := int64(line.Quantity) * item.UnitPriceCents
	return naive - chargedCost(item, line.Quantity), nil
}

// TotalSavings sums per-line savings. Subtotal plus total savings always
// reconciles with the naive per-unit total: the remainder units are
// priced at the unit rate on both sides.
func (p *Pricer) TotalSavings(cart domain.Cart) (int64, error) {
	var total int64
	for _, line := range cart.Lines {
		savings, err := p.LineSavings(line)
		if err != nil {
			return 0, err
		}
		total += savings
	}
	return total, nil
}

func chargedCost(item domain.CatalogItem, qty int) int64 {
	if item.HasDiscount() && qty >= item.DiscountThreshold {
		groups := int64(qty / item.DiscountThreshold)
		remainder := int64(qty % item.DiscountThreshold)
		return groups*item.DiscountGroupPriceCents + remainder*item.UnitPriceCents
	}
	return int64(qty) * item.UnitPriceCents
}
