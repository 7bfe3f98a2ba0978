package domain

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// CatalogItem is a single orderable product. Prices are integer cents.
//
// The bulk rule is a paired optional: DiscountThreshold > 0 means "buy
// DiscountThreshold units for DiscountGroupPriceCents flat", with any
// remainder billed at UnitPriceCents. A zero threshold means no rule.
type CatalogItem struct {
	ID             int64
	Name           string
	UnitPriceCents int64

	DiscountThreshold       int
	DiscountGroupPriceCents int64

	// Available gates ordering; unavailable items render "coming soon"
	// and can never hold a positive quantity.
	Available bool
}

// HasDiscount reports whether the item carries a bulk rule.
func (i CatalogItem) HasDiscount() bool {
	return i.DiscountThreshold > 0
}

// Validate checks the catalog entry's structural invariants.
func (i CatalogItem) Validate() error {
	if i.ID <= 0 {
		return Errorf(EINVALID, "catalog.validate", "item id must be positive, got %d", i.ID)
	}
	if i.Name == "" {
		return Errorf(EINVALID, "catalog.validate", "item %d has no name", i.ID)
	}
	if i.UnitPriceCents < 0 {
		return Errorf(EINVALID, "catalog.validate", "item %d has negative unit price", i.ID)
	}
	if i.DiscountThreshold < 0 {
		return Errorf(EINVALID, "catalog.validate", "item %d has negative discount threshold", i.ID)
	}
	// Threshold and group price are both present or both absent.
	if i.DiscountThreshold > 0 && i.DiscountGroupPriceCents <= 0 {
		return Errorf(EINVALID, "catalog.validate", "item %d has a discount threshold but no group price", i.ID)
	}
	if i.DiscountThreshold == 0 && i.DiscountGroupPriceCents != 0 {
		return Errorf(EINVALID, "catalog.validate", "item %d has a group price but no discount threshold", i.ID)
	}
	return nil
}

// Catalog is the full set of orderable items.
type Catalog []CatalogItem

// ItemByID resolves a catalog entry. The bool reports whether it exists.
func (c Catalog) ItemByID(id int64) (CatalogItem, bool) {
	for _, item := range c {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// Validate checks every entry and rejects duplicate IDs.
func (c Catalog) Validate() error {
	seen := make(map[int64]bool, len(c))
	for _, item := range c {
		if err := item.Validate(); err != nil {
			return err
		}
		if seen[item.ID] {
			return Errorf(EINVALID, "catalog.validate", "duplicate item id %d", item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

// DefaultCatalog returns the production catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: 1, Name: "Farm Fresh Eggs (Dozen)", UnitPriceCents: 700, DiscountThreshold: 3, DiscountGroupPriceCents: 1800, Available: true},
		{ID: 2, Name: "Crunchy Round Loaf", UnitPriceCents: 1000, DiscountThreshold: 2, DiscountGroupPriceCents: 1800, Available: true},
		{ID: 3, Name: "Sandwich Bread", UnitPriceCents: 500, DiscountThreshold: 2, DiscountGroupPriceCents: 800, Available: true},
		{ID: 4, Name: "French Bread", UnitPriceCents: 500, DiscountThreshold: 2, DiscountGroupPriceCents: 800, Available: true},
		{ID: 5, Name: "Cinnamon Raisin Loaf", UnitPriceCents: 900, Available: false},
	}
}

// =============================================================================
// CART TYPES
// =============================================================================

// LineItem is a catalog item reference plus the chosen quantity.
// Quantity zero means "not in cart".
type LineItem struct {
	ItemID   int64
	Quantity int
}

// Cart is the runtime order state: one line per catalog item, created at
// cart-open time with all quantities at zero. Updates are copy-on-write
// so handed-out carts never change underneath a reader.
type Cart struct {
	Lines []LineItem
}

// NewCart opens a cart over the given catalog with every quantity at zero.
func NewCart(catalog Catalog) Cart {
	lines := make([]LineItem, len(catalog))
	for i, item := range catalog {
		lines[i] = LineItem{ItemID: item.ID}
	}
	return Cart{Lines: lines}
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	lines := make([]LineItem, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// Quantity returns the quantity for an item, zero if absent.
func (c Cart) Quantity(itemID int64) int {
	for _, line := range c.Lines {
		if line.ItemID == itemID {
			return line.Quantity
		}
	}
	return 0
}

// HasItems reports whether any line has a positive quantity.
func (c Cart) HasItems() bool {
	for _, line := range c.Lines {
		if line.Quantity > 0 {
			return true
		}
	}
	return false
}
