package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeMissingFile      = "MISSING_FILE"
	ErrCodeInvalidWorkbook  = "INVALID_WORKBOOK"
	ErrCodeEmptyWorkbook    = "EMPTY_WORKBOOK"
	ErrCodeSourceTooLarge   = "SOURCE_TOO_LARGE"
	ErrCodeSourceNotFound   = "SOURCE_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeStorageDisabled  = "STORAGE_DISABLED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidParameter = "INVALID_PARAMETER"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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

// Common domain errors
var (
	ErrMissingFile     = NewDomainError(ErrCodeMissingFile, "A workbook file is required")
	ErrInvalidWorkbook = NewDomainError(ErrCodeInvalidWorkbook, "The file could not be decoded as a workbook")
	ErrEmptyWorkbook   = NewDomainError(ErrCodeEmptyWorkbook, "The workbook contains no sheets")
	ErrSourceTooLarge  = NewDomainError(ErrCodeSourceTooLarge, "The source file exceeds the configured size limit")
	ErrSourceNotFound  = NewDomainError(ErrCodeSourceNotFound, "The source file does not exist")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrStorageDisabled = NewDomainError(ErrCodeStorageDisabled, "Product storage is not configured")
)
