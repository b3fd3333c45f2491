package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tradejournal/internal/domain"
)

// Response represents a standardized API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message)
}

// ForbiddenResponse sends a 403 Forbidden response
func ForbiddenResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusForbidden, message)
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusNotFound, message)
}

// ConflictResponse sends a 409 Conflict response
func ConflictResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusConflict, message)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusInternalServerError, message)
}

// DomainErrorResponse maps a domain error onto the matching HTTP response.
// Unknown errors become a 500 without leaking internals.
func DomainErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTradeInput):
		return BadRequestResponse(c, "Lot, open price and close price must be greater than zero and the pair must be supported")
	case errors.Is(err, domain.ErrDuplicateUsername):
		return ConflictResponse(c, "Username already exists")
	case errors.Is(err, domain.ErrUserNotFound):
		return NotFoundResponse(c, "User not found")
	case errors.Is(err, domain.ErrTradeNotFound):
		return NotFoundResponse(c, "Trade not found")
	case errors.Is(err, domain.ErrAccountDisabled):
		return ForbiddenResponse(c, "Account is disabled. Contact an admin")
	case errors.Is(err, domain.ErrInvalidCredential):
		return UnauthorizedResponse(c, "Invalid credentials")
	case errors.Is(err, domain.ErrStoreClosed):
		return ForbiddenResponse(c, "Store is closed. Trade entry is disabled for non-admin accounts")
	case errors.Is(err, domain.ErrForbidden):
		return ForbiddenResponse(c, "Operation not permitted")
	default:
		return InternalServerErrorResponse(c, "Internal server error")
	}
}
