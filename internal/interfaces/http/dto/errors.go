package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeInvalidCredentials is used when login fails
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeEmptyCart is used when checkout is attempted on an empty cart
	ErrCodeEmptyCart = "ERR_EMPTY_CART"
)

// Upload error codes
const (
	// ErrCodeFileTooLarge is used when an uploaded file exceeds the size limit
	ErrCodeFileTooLarge = "ERR_FILE_TOO_LARGE"
	// ErrCodeUnsupportedFileType is used when an uploaded file has an unsupported type
	ErrCodeUnsupportedFileType = "ERR_UNSUPPORTED_FILE_TYPE"
	// ErrCodeUploadFailed is used when writing to object storage fails
	ErrCodeUploadFailed = "ERR_UPLOAD_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,
	ErrCodeEmptyCart:    http.StatusUnprocessableEntity,

	// Upload errors
	ErrCodeFileTooLarge:        http.StatusRequestEntityTooLarge,
	ErrCodeUnsupportedFileType: http.StatusUnsupportedMediaType,
	ErrCodeUploadFailed:        http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to standardized codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":         ErrCodeNotFound,
	"PRODUCT_NOT_FOUND": ErrCodeNotFound,
	"USER_NOT_FOUND":    ErrCodeNotFound,

	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"EMAIL_TAKEN":    ErrCodeAlreadyExists,

	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"INVALID_CREDENTIALS": ErrCodeInvalidCredentials,
	"TOKEN_EXPIRED":       ErrCodeTokenExpired,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"TOKEN_MAX_REFRESH":   ErrCodeTokenInvalid,
	"TOKEN_ERROR":         ErrCodeUnauthorized,
	"FORBIDDEN":           ErrCodeForbidden,

	"INVALID_INPUT":     ErrCodeValidation,
	"INVALID_EMAIL":     ErrCodeValidation,
	"INVALID_PASSWORD":  ErrCodeValidation,
	"INVALID_NAME":      ErrCodeValidation,
	"INVALID_PHONE":     ErrCodeValidation,
	"INVALID_ADDRESS":   ErrCodeValidation,
	"INVALID_PRICE":     ErrCodeValidation,
	"INVALID_QUANTITY":  ErrCodeValidation,
	"INVALID_USER":      ErrCodeValidation,
	"INVALID_ROLE":      ErrCodeValidation,
	"INVALID_FILE":      ErrCodeValidation,
	"INVALID_FILE_NAME": ErrCodeValidation,
	"INVALID_FILE_URL":  ErrCodeValidation,

	"INVALID_STATE":  ErrCodeInvalidState,
	"INVALID_STATUS": ErrCodeValidation,
	"INVALID_ORDER":  ErrCodeInvalidState,
	"EMPTY_CART":     ErrCodeEmptyCart,
	"EMPTY_ORDER":    ErrCodeEmptyCart,

	"FILE_TOO_LARGE":    ErrCodeFileTooLarge,
	"INVALID_FILE_TYPE": ErrCodeUnsupportedFileType,
	"UPLOAD_FAILED":     ErrCodeUploadFailed,

	"INTERNAL_ERROR":      ErrCodeInternal,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// If the code is already in the new format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
