package dto

import "net/http"

// HTTP-layer error codes for failures that never reach the domain
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// domainErrorHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map fall back to 400: the remaining domain codes
// are all input validation failures (INVALID_NAME, INVALID_QUANTITY, ...).
var domainErrorHTTPStatus = map[string]int{
	"NOT_FOUND":           http.StatusNotFound,
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"ALREADY_EXISTS":      http.StatusConflict,
	"DUPLICATE_CODE":      http.StatusConflict,
	"DUPLICATE_LINE_ITEM": http.StatusConflict,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"INTERNAL_ERROR":      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
