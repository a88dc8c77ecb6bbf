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

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// IsDomainError reports whether err is a DomainError with the given code
func IsDomainError(err error, code string) bool {
	if err == nil {
		return false
	}
	domainErr, ok := err.(*DomainError)
	return ok && domainErr.Code == code
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrAccountNotFound    = NewDomainError("ACCOUNT_NOT_FOUND", "Ledger account code is not present in the chart of accounts")
	ErrUnbalancedEntry    = NewDomainError("UNBALANCED_ENTRY", "Journal entry debits and credits do not balance")
	ErrProductNotResolved = NewDomainError("PRODUCT_NOT_RESOLVED", "Product reference could not be resolved by id, code or name")
)
