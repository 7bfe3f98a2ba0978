package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/brackenhill/bakehouse/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Submitter is the external order-notification collaborator. It receives
// the finalized payload and answers with success/failure plus a message
// safe to show the customer.
type Submitter interface {
	SubmitOrder(ctx context.Context, payload domain.OrderPayload) (domain.Ack, error)
}

// North-American phone shape: optional +1, optional parens/hyphens/spaces
// around a 3-3-4 digit grouping.
var phonePattern = regexp.MustCompile(`^(\+?1[-\s]?)?(\()?([0-9]{3})(\))?[-\s]?([0-9]{3})[-\s]?([0-9]{4})$`)

// Validation messages shown inline on the form.
const (
	msgSelectItems     = "Please select at least one item to order"
	msgNameRequired    = "Please enter your name"
	msgContactNeeded   = "Please provide either an email or phone number"
	msgInvalidEmail    = "Please enter a valid email address"
	msgInvalidPhone    = "Please enter a valid phone number (e.g., 123-456-7890)"
	msgAddressNeeded   = "Please provide a delivery address"
	msgCommentsTooLong = "Special instructions must be less than 500 characters"
	msgNetworkError    = "Network error. Please try again later."
)

// CheckoutService drives the three-step order wizard as an explicit
// state machine: Items -> Details -> Review -> Submitting -> Success,
// with unguarded Back transitions and a full reset on dismissal.
//
// Validation failures never change the step; they attach a message the
// UI surfaces inline. Review is only reachable through passed guards,
// and Submit re-runs every guard defensively before handing the payload
// to the collaborator.
type CheckoutService struct {
	mu        sync.Mutex
	cart      *CartService
	pricer    *Pricer
	submitter Submitter
	validate  *validator.Validate
	logger    *slog.Logger

	step     domain.Step
	draft    domain.OrderDraft
	message  string
	inFlight bool
}

// NewCheckoutService creates a checkout at the item-selection step.
func NewCheckoutService(cart *CartService, pricer *Pricer, submitter Submitter, logger *slog.Logger) *CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutService{
		cart:      cart,
		pricer:    pricer,
		submitter: submitter,
		validate:  validator.New(),
		logger:    logger,
		step:      domain.StepItems,
		draft:     domain.OrderDraft{Fulfillment: domain.FulfillmentPickup},
	}
}

// Step returns the current wizard position.
func (s *CheckoutService) Step() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Draft returns the current order draft.
func (s *CheckoutService) Draft() domain.OrderDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Message returns the last surfaced validation or submission failure,
// empty when the current step has no pending error.
func (s *CheckoutService) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// UpdateDraft replaces the contact/fulfillment fields. Allowed at any
// step before submission; changing the draft after Review is why Submit
// re-validates.
func (s *CheckoutService) UpdateDraft(draft domain.OrderDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == domain.StepSubmitting {
		return ErrSubmissionInFlight
	}
	s.draft = draft
	return nil
}

// Next advances the wizard one step, running the current step's guard.
// A failed guard keeps the step, stores the first failing message and
// returns the validation error.
func (s *CheckoutService) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case domain.StepItems:
		if !s.cart.Cart().HasItems() {
			s.message = msgSelectItems
			return ErrEmptyCart
		}
		s.message = ""
		s.step = domain.StepDetails
		return nil

	case domain.StepDetails:
		if err := s.validateDetails(s.draft); err != nil {
			s.message = domain.ErrorMessage(err)
			return err
		}
		s.message = ""
		s.step = domain.StepReview
		return nil

	default:
		return domain.Errorf(domain.ECONFLICT, "checkout.next", "no next step from %s", s.step)
	}
}

// Back returns to the previous step without any guard.
func (s *CheckoutService) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case domain.StepDetails:
		s.step = domain.StepItems
	case domain.StepReview:
		s.step = domain.StepDetails
	default:
		return ErrNoBackStep
	}
	s.message = ""
	return nil
}

// Submit finalizes the order and hands it to the collaborator. Only one
// submission may be in flight; the state may have been mutated since
// Review was reached, so both guards run again before anything leaves
// the process. On failure the draft stays intact and the customer can
// resubmit; there is no automatic retry.
func (s *CheckoutService) Submit(ctx context.Context) (domain.Ack, error) {
	s.mu.Lock()

	if s.inFlight {
		s.mu.Unlock()
		return domain.Ack{}, ErrSubmissionInFlight
	}
	if s.step != domain.StepReview {
		s.mu.Unlock()
		return domain.Ack{}, ErrNotReviewing
	}

	cart := s.cart.Cart()
	if !cart.HasItems() {
		s.message = msgSelectItems
		s.mu.Unlock()
		return domain.Ack{}, ErrEmptyCart
	}
	if err := s.validateDetails(s.draft); err != nil {
		s.message = domain.ErrorMessage(err)
		s.mu.Unlock()
		return domain.Ack{}, err
	}

	payload, err := s.buildPayload(cart)
	if err != nil {
		s.mu.Unlock()
		return domain.Ack{}, err
	}

	s.inFlight = true
	s.step = domain.StepSubmitting
	s.message = ""
	s.mu.Unlock()

	ack, err := s.submitter.SubmitOrder(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.logger.Error("order submission failed", slog.String("reference", payload.Reference), slog.Any("error", err))
		s.step = domain.StepReview
		s.message = msgNetworkError
		return domain.Ack{OK: false, Message: msgNetworkError},
			domain.WrapError(err, domain.EINTERNAL, "checkout.submit", "order submission failed")
	}
	if !ack.OK {
		s.logger.Warn("order submission rejected", slog.String("reference", payload.Reference), slog.String("message", ack.Message))
		s.step = domain.StepReview
		s.message = ack.Message
		return ack, nil
	}

	s.logger.Info("order submitted", slog.String("reference", payload.Reference), slog.Int64("subtotal_cents", payload.SubtotalCents))
	s.step = domain.StepSuccess
	s.message = ""
	return ack, nil
}

// Dismiss closes the success confirmation and resets everything: cart
// quantities, draft fields, and pending discount notices.
func (s *CheckoutService) Dismiss() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != domain.StepSuccess {
		return ErrNotDismissable
	}

	s.cart.Reset()
	s.draft = domain.OrderDraft{Fulfillment: domain.FulfillmentPickup}
	s.step = domain.StepItems
	s.message = ""
	return nil
}

// validateDetails runs the Details guard clauses in order and returns
// the first failure. Later clauses are not evaluated.
func (s *CheckoutService) validateDetails(draft domain.OrderDraft) error {
	const op = "checkout.details"

	name := strings.TrimSpace(draft.Contact.Name)
	email := strings.TrimSpace(draft.Contact.Email)
	phone := strings.TrimSpace(draft.Contact.Phone)

	if name == "" {
		return domain.NewValidationError(op, "name", msgNameRequired)
	}
	if email == "" && phone == "" {
		return domain.NewValidationError(op, "contact", msgContactNeeded)
	}
	if email != "" {
		if err := s.validate.Var(strings.ToLower(email), "email"); err != nil {
			return domain.NewValidationError(op, "email", msgInvalidEmail)
		}
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return domain.NewValidationError(op, "phone", msgInvalidPhone)
	}
	if draft.Fulfillment == domain.FulfillmentDelivery && strings.TrimSpace(draft.Address) == "" {
		return domain.NewValidationError(op, "address", msgAddressNeeded)
	}
	if len(draft.Comments) > domain.MaxCommentsLen {
		return domain.NewValidationError(op, "comments", msgCommentsTooLong)
	}
	return nil
}

// buildPayload assembles the boundary payload from the cart and draft.
func (s *CheckoutService) buildPayload(cart domain.Cart) (domain.OrderPayload, error) {
	subtotal, err := s.pricer.Subtotal(cart)
	if err != nil {
		return domain.OrderPayload{}, err
	}
	savings, err := s.pricer.TotalSavings(cart)
	if err != nil {
		return domain.OrderPayload{}, err
	}

	items := make([]domain.PayloadItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if line.Quantity == 0 {
			continue
		}
		item, _ := s.cart.Catalog().ItemByID(line.ItemID)
		cost, err := s.pricer.LineCost(line)
		if err != nil {
			return domain.OrderPayload{}, err
		}
		items = append(items, domain.PayloadItem{
			ID:         line.ItemID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			PriceCents: cost,
		})
	}

	return domain.OrderPayload{
		Reference:      uuid.NewString(),
		Name:           strings.TrimSpace(s.draft.Contact.Name),
		Email:          strings.TrimSpace(s.draft.Contact.Email),
		Phone:          strings.TrimSpace(s.draft.Contact.Phone),
		Items:          items,
		Comments:       s.draft.Comments,
		DeliveryOption: s.draft.Fulfillment,
		Address:        strings.TrimSpace(s.draft.Address),
		SubtotalCents:  subtotal,
		SavingsCents:   savings,
	}, nil
}
