package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned to API clients
const (
	// Authentication errors (1000-1999)
	ErrInvalidCredentials    = "AUTH_001" // Invalid credentials
	ErrUserDisabled          = "AUTH_002" // User disabled
	ErrUserNotFound          = "AUTH_003" // User not found
	ErrInvalidToken          = "AUTH_006" // Invalid token
	ErrExpiredToken          = "AUTH_007" // Expired token
	ErrInsufficientPrivilege = "AUTH_008" // Insufficient privileges
	ErrUserAlreadyExists     = "AUTH_009" // User already exists

	// Validation errors (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Malformed request
	ErrMissingRequiredData = "VAL_002" // Required data missing
	ErrInvalidFormat       = "VAL_003" // Invalid data format
	ErrValidationFailed    = "VAL_004" // Domain validation rejected the payload

	// Resource errors (4000-4999)
	ErrResourceNotFound = "RES_001" // Requested resource does not exist

	// Server errors (5000-5999)
	ErrInternalServer    = "SRV_001" // Internal server error
	ErrDatabaseOperation = "SRV_002" // Database operation failed
	ErrExternalService   = "SRV_003" // External service error
)

// Error-code to HTTP status mapping
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrValidationFailed:      http.StatusUnprocessableEntity,
	ErrResourceNotFound:      http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
}

// APIError is the standard error envelope
type APIError struct {
	Code    string `json:"code"`              // Machine-readable error code
	Message string `json:"message,omitempty"` // Human-readable message (optional)
	Details any    `json:"details,omitempty"` // Extra details, e.g. a validation error list
}

// WriteError writes the standard error envelope to the HTTP response
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps a Go error into an API error
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
