package domain

import "errors"

// --- Domain Specific Errors ---

var (
	// ErrUnauthenticated indicates that the call carries no identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates that the identity is not allowed to perform the action.
	ErrForbidden = errors.New("action forbidden")
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrValidation indicates that the provided input data is invalid.
	ErrValidation = errors.New("validation failed")
	// ErrComputation indicates that a derived value (e.g. total cost) could not be computed.
	ErrComputation = errors.New("computation failed")
	// ErrInsufficientFunds indicates that a wallet debit would go below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrDateRangeUnavailable indicates that the listing already has a booking overlapping the range.
	ErrDateRangeUnavailable = errors.New("listing is not available for the selected dates")
	// ErrReviewAlreadyExists indicates that the (booking, target type) pair was already reviewed.
	ErrReviewAlreadyExists = errors.New("review already exists for this booking and target")
	// ErrRepository indicates a generic data persistence error.
	ErrRepository = errors.New("repository error")
)

// AuthenticationMessage is returned to callers that did not present an identity.
const AuthenticationMessage = "*** you must be logged in ***"

// AccessError is an authentication or authorization failure. Error() yields the
// caller facing message; errors.Is matches the Kind sentinel.
type AccessError struct {
	Kind    error
	Message string
}

func (e *AccessError) Error() string { return e.Message }

func (e *AccessError) Unwrap() error { return e.Kind }

// NewAuthenticationError builds the error raised when no userId is present.
func NewAuthenticationError() error {
	return &AccessError{Kind: ErrUnauthenticated, Message: AuthenticationMessage}
}

// NewForbiddenError builds a role or ownership failure with the given message.
func NewForbiddenError(message string) error {
	return &AccessError{Kind: ErrForbidden, Message: message}
}
