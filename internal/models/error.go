package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Catalog errors
	ErrProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCategoryNotFound = "CATEGORY_NOT_FOUND"
	ErrProductNoStock   = "PRODUCT_OUT_OF_STOCK"
	ErrFlavorNoStock    = "FLAVOR_OUT_OF_STOCK"

	// Cart/checkout errors
	ErrCartEmpty     = "CART_EMPTY"
	ErrCartBadIndex  = "CART_BAD_INDEX"
	ErrPickupTooSoon = "PICKUP_TOO_SOON"
	ErrNotifyFailed  = "NOTIFY_FAILED"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
