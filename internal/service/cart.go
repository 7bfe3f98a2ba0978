package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/brackenhill/bakehouse/internal/domain"
)

// NoticeKind distinguishes discount-notice lifecycle events.
type NoticeKind int

const (
	// NoticeStarted fires when a quantity first crosses the bulk
	// threshold since the cart was last reset.
	NoticeStarted NoticeKind = iota
	// NoticeExpired fires when the banner's display window elapses.
	NoticeExpired
)

// Notice is a discount-banner event for a single catalog item.
type Notice struct {
	Kind   NoticeKind
	ItemID int64
}

// CartService owns the session cart: quantity mutations, availability
// checks, and the one-shot "bulk discount applied" notice per item.
//
// Mutations are copy-on-write: callers always receive a fresh cart value,
// so a cart handed out earlier never changes underneath its reader.
type CartService struct {
	mu      sync.Mutex
	catalog domain.Catalog
	cart    domain.Cart

	// noticed marks items whose discount notice already fired since the
	// last reset; the notice is one-shot per item per cart lifetime.
	noticed map[int64]bool
	timers  map[int64]*time.Timer
	// resetSeq invalidates pending timers across resets so an expiry
	// can never fire against a fresh cart.
	resetSeq uint64

	delay    time.Duration
	onNotice func(Notice)
	logger   *slog.Logger
}

// NewCartService opens a zero-quantity cart over the catalog.
// onNotice may be nil; delay <= 0 falls back to 3 seconds.
func NewCartService(catalog domain.Catalog, delay time.Duration, onNotice func(Notice), logger *slog.Logger) (*CartService, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = 3 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CartService{
		catalog:  catalog,
		cart:     domain.NewCart(catalog),
		noticed:  make(map[int64]bool),
		timers:   make(map[int64]*time.Timer),
		delay:    delay,
		onNotice: onNotice,
		logger:   logger,
	}, nil
}

// Cart returns a snapshot of the current cart.
func (s *CartService) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// SetQuantity sets the quantity for one item and returns the updated
// cart snapshot. The stored cart is replaced, never mutated in place.
//
// Fails with ErrInvalidQuantity for negative quantities,
// ErrItemUnavailable when raising an unavailable item above zero, and
// ErrUnknownItem for ids outside the catalog. On failure the cart is
// unchanged.
func (s *CartService) SetQuantity(itemID int64, quantity int) (domain.Cart, error) {
	s.mu.Lock()

	if quantity < 0 {
		cur := s.cart.Clone()
		s.mu.Unlock()
		return cur, ErrInvalidQuantity
	}

	item, ok := s.catalog.ItemByID(itemID)
	if !ok {
		cur := s.cart.Clone()
		s.mu.Unlock()
		return cur, ErrUnknownItem
	}

	if !item.Available && quantity > 0 {
		cur := s.cart.Clone()
		s.mu.Unlock()
		return cur, ErrItemUnavailable
	}

	prev := s.cart.Quantity(itemID)

	next := s.cart.Clone()
	for i := range next.Lines {
		if next.Lines[i].ItemID == itemID {
			next.Lines[i].Quantity = quantity
			break
		}
	}
	s.cart = next

	fired := false
	if item.HasDiscount() && prev < item.DiscountThreshold && quantity >= item.DiscountThreshold && !s.noticed[itemID] {
		s.noticed[itemID] = true
		s.startExpiry(itemID)
		fired = true
	}

	snapshot := s.cart.Clone()
	onNotice := s.onNotice
	s.mu.Unlock()

	if fired {
		s.logger.Debug("discount notice fired", slog.Int64("item_id", itemID), slog.Int("quantity", quantity))
		if onNotice != nil {
			onNotice(Notice{Kind: NoticeStarted, ItemID: itemID})
		}
	}

	return snapshot, nil
}

// startExpiry schedules the banner's self-clear. Caller holds s.mu.
func (s *CartService) startExpiry(itemID int64) {
	seq := s.resetSeq
	s.timers[itemID] = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.resetSeq != seq {
			// Cart was reset while the timer was pending; the notice
			// belongs to a discarded cart.
			s.mu.Unlock()
			return
		}
		delete(s.timers, itemID)
		onNotice := s.onNotice
		s.mu.Unlock()

		if onNotice != nil {
			onNotice(Notice{Kind: NoticeExpired, ItemID: itemID})
		}
	})
}

// Reset discards the cart: all quantities back to zero, notices re-armed,
// pending expiry timers cancelled.
func (s *CartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.resetSeq++
	s.noticed = make(map[int64]bool)
	s.cart = domain.NewCart(s.catalog)
}

// Catalog returns the catalog the cart was opened over.
func (s *CartService) Catalog() domain.Catalog {
	return s.catalog
}
