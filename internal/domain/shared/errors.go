package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
// This lets errors.Is match a predefined error against one rebuilt with a
// more specific message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Checkout precondition errors. They are correctable by the shopper and
// block checkout before any order is created.
var (
	ErrNotAuthenticated       = NewDomainError("NOT_AUTHENTICATED", "You must be signed in to check out")
	ErrMissingContact         = NewDomainError("MISSING_CONTACT", "Add a contact number to your profile before checking out")
	ErrNoAddress              = NewDomainError("NO_ADDRESS", "Add a delivery address before checking out")
	ErrMissingDeliveryAddress = NewDomainError("MISSING_DELIVERY_ADDRESS", "Choose a delivery address")
	ErrEmptyCart              = NewDomainError("EMPTY_CART", "Your cart is empty")
)
