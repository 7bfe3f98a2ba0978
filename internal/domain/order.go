package domain

// =============================================================================
// CHECKOUT / ORDER TYPES
// =============================================================================

// Fulfillment is how the customer receives the order.
type Fulfillment string

const (
	FulfillmentPickup   Fulfillment = "pickup"
	FulfillmentDelivery Fulfillment = "delivery"
)

// Step is the customer's position in the order wizard.
type Step int

const (
	StepItems      Step = iota + 1 // item selection
	StepDetails                    // contact + fulfillment details
	StepReview                     // review and submit
	StepSubmitting                 // submission in flight
	StepSuccess                    // confirmation shown
)

// String returns the step name for logs and error messages.
func (s Step) String() string {
	switch s {
	case StepItems:
		return "items"
	case StepDetails:
		return "details"
	case StepReview:
		return "review"
	case StepSubmitting:
		return "submitting"
	case StepSuccess:
		return "success"
	}
	return "unknown"
}

// Contact is who placed the order. Name is required; at least one of
// Email/Phone must be present.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// OrderDraft is the in-progress checkout state. It is a plain value:
// the checkout service owns transitions and validation.
type OrderDraft struct {
	Contact     Contact
	Fulfillment Fulfillment
	Address     string
	Comments    string
}

// MaxCommentsLen caps the special-instructions field.
const MaxCommentsLen = 500

// =============================================================================
// SUBMISSION BOUNDARY
// =============================================================================

// PayloadItem is one ordered line in the submission payload. Price is
// the charged line total in cents, bulk rule already applied.
type PayloadItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// OrderPayload is the finalized order handed to the notification
// collaborator once checkout completes. The collaborator emails it and
// appends a spreadsheet row; the core never sees transport details.
type OrderPayload struct {
	Reference      string        `json:"reference"`
	Name           string        `json:"name"`
	Email          string        `json:"email,omitempty"`
	Phone          string        `json:"phone,omitempty"`
	Items          []PayloadItem `json:"items"`
	Comments       string        `json:"comments,omitempty"`
	DeliveryOption Fulfillment   `json:"delivery_option"`
	Address        string        `json:"address,omitempty"`
	SubtotalCents  int64         `json:"subtotal_cents"`
	SavingsCents   int64         `json:"savings_cents"`
}

// Ack is the collaborator's answer: success or failure plus a message
// safe to show the customer.
type Ack struct {
	OK      bool
	Message string
}
