package service

import (
	"github.com/brackenhill/bakehouse/internal/domain"
)

// Cart/pricing errors
var (
	ErrInvalidQuantity = domain.Errorf(domain.EINVALID, "", "Quantity cannot be negative")
	ErrUnknownItem     = domain.Errorf(domain.ENOTFOUND, "", "Item not found in catalog")
	ErrItemUnavailable = domain.Errorf(domain.EUNAVAILABLE, "", "Item is not available for ordering")
)

// Checkout errors
var (
	ErrEmptyCart          = domain.Errorf(domain.EINVALID, "", "Please select at least one item to order")
	ErrNotReviewing       = domain.Errorf(domain.ECONFLICT, "", "Order is not ready to submit")
	ErrSubmissionInFlight = domain.Errorf(domain.ECONFLICT, "", "Order submission already in progress")
	ErrNoBackStep         = domain.Errorf(domain.ECONFLICT, "", "Cannot go back from this step")
	ErrNotDismissable     = domain.Errorf(domain.ECONFLICT, "", "No confirmation to dismiss")
)
