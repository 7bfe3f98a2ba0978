package email

import "fmt"

// EmailError represents an email-specific error with a code and message.
// Codes mirror the domain error codes to avoid a circular import; the
// handler layer maps them to HTTP statuses.
type EmailError struct {
	Code    string
	Message string
}

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
)

func (e *EmailError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *EmailError) ErrorCode() string {
	return e.Code
}

var (
	// ErrNoRecipients is returned when an email has no recipients.
	ErrNoRecipients = &EmailError{Code: codeInvalid, Message: "Email has no recipients"}

	// ErrInvalidFromAddress is returned when the from address is invalid.
	ErrInvalidFromAddress = &EmailError{Code: codeInvalid, Message: "Invalid from email address"}
)

// SendFailed wraps a provider failure.
func SendFailed(err error) error {
	return &EmailError{Code: codeInternal, Message: fmt.Sprintf("Failed to send email: %v", err)}
}
