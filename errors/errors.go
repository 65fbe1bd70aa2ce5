package errors

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
)

type ErrorType string

const (
	ErrNotFound            ErrorType = "ENTRY_NOT_FOUND_ERROR"
	ErrValidation          ErrorType = "VALIDATION_ERROR"
	ErrEntryExists         ErrorType = "ENTRY_EXISTS_ERROR"
	ErrAuthorization       ErrorType = "AUTHORIZATION_ERROR"
	ErrAuthentication      ErrorType = "AUTHENTICATION_ERROR"
	ErrInvalidToken        ErrorType = "INVALID_TOKEN_ERROR"
	ErrPermission          ErrorType = "PERMISSION_ERROR"
	ErrQuoteNotFound       ErrorType = "QUOTE_NOT_FOUND_ERROR"
	ErrInsufficientBalance ErrorType = "INSUFFICIENT_BALANCE_ERROR"
	ErrNoRoute             ErrorType = "NO_VIABLE_ROUTE_ERROR"
	ErrProvider            ErrorType = "PROVIDER_ERROR"
	ErrPayment             ErrorType = "PAYMENT_ERROR"
	ErrSettlementFailed    ErrorType = "SETTLEMENT_FAILED_ERROR"
	ErrConflict            ErrorType = "CONFLICT_ERROR"
	ErrFailedDependency    ErrorType = "FAILED_DEPENDENCY"
	ErrFatal               ErrorType = "FATAL_ERROR"
)

type AppError struct {
	Code     int       `json:"-"`
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	Internal string    `json:"internal,omitempty"`
}

func (a AppError) Error() string {
	return fmt.Sprintf("%s: %s", a.Type, a.Message)
}

func (a AppError) Serialize(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.Code)
	if err := json.NewEncoder(w).Encode(a); err != nil {
		panic(a)
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	apperr := new(AppError)
	return errors.As(err, apperr) && apperr.Type == t
}

func HandleDataDBError(err error) AppError {
	if Is(err, sql.ErrNoRows) {
		return NewNotFoundError("resource not found")
	}
	return NewFatalError(err)
}

func HandleBindError(err error) AppError {
	if errors.As(err, &AppError{}) {
		return AsAppError(err)
	}

	if v, ok := err.(validator.ValidationErrors); ok {
		var message string
		switch v[0].ActualTag() {
		case "required":
			message = fmt.Sprintf("%s is required", v[0].Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of values: (%s), value received: %s", v[0].Field(), v[0].Param(), v[0].Value())
		case "gt":
			message = fmt.Sprintf("%s must be greater than (%s), value received: %s", v[0].Field(), v[0].Param(), v[0].Value())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", v[0].Field())
		default:
			message = fmt.Sprintf("Validation failed on field { %s }, Condition: %s", v[0].Field(), v[0].ActualTag())
			if v[0].Param() != "" {
				message += fmt.Sprintf("{ %s }", v[0].Param())
			}
			if v[0].Value() != "" && v[0].Value() != nil {
				message += fmt.Sprintf(", Value Received: %v", v[0].Value())
			}
		}

		return AppError{
			Code:     http.StatusBadRequest,
			Type:     ErrValidation,
			Message:  message,
			Internal: err.Error(),
		}
	}
	if Is(err, io.EOF) {
		return NewValidationError("No request body")
	}

	vErr := NewValidationError("invalid request received")
	vErr.Internal = err.Error()

	return vErr
}

func NewValidationError(msg string) AppError {
	return AppError{
		Code:    http.StatusBadRequest,
		Type:    ErrValidation,
		Message: msg,
	}
}

func NewNotFoundError(msg string) AppError {
	return AppError{
		Code:    http.StatusNotFound,
		Type:    ErrNotFound,
		Message: msg,
	}
}

func NewQuoteNotFoundError() AppError {
	return AppError{
		Code:    http.StatusNotFound,
		Type:    ErrQuoteNotFound,
		Message: "quote not found or already used",
	}
}

func NewInsufficientBalanceError(currency string) AppError {
	return AppError{
		Code:    http.StatusUnprocessableEntity,
		Type:    ErrInsufficientBalance,
		Message: fmt.Sprintf("insufficient %s balance", currency),
	}
}

func NewNoRouteError() AppError {
	return AppError{
		Code:    http.StatusFailedDependency,
		Type:    ErrNoRoute,
		Message: "no viable crypto route found",
	}
}

func NewProviderError(provider string, err error) AppError {
	return AppError{
		Code:     http.StatusFailedDependency,
		Type:     ErrProvider,
		Message:  fmt.Sprintf("%s provider request failed", provider),
		Internal: err.Error(),
	}
}

func NewPaymentError(err error) AppError {
	return AppError{
		Code:     http.StatusBadGateway,
		Type:     ErrPayment,
		Message:  "payment deposit failed",
		Internal: err.Error(),
	}
}

func NewSettlementFailedError(err error) AppError {
	return AppError{
		Code:     http.StatusConflict,
		Type:     ErrSettlementFailed,
		Message:  "transfer could not be settled",
		Internal: err.Error(),
	}
}

func NewConflictError(msg string) AppError {
	return AppError{
		Code:    http.StatusConflict,
		Type:    ErrConflict,
		Message: msg,
	}
}

func NewPermissionError(msg string) AppError {
	return AppError{
		Code:    http.StatusForbidden,
		Type:    ErrPermission,
		Message: msg,
	}
}

func NewAuthenticationError(msg string) AppError {
	return AppError{
		Code:    http.StatusUnauthorized,
		Type:    ErrAuthentication,
		Message: msg,
	}
}

func NewInvalidTokenError() AppError {
	return AppError{
		Code:    http.StatusUnauthorized,
		Type:    ErrInvalidToken,
		Message: "Invalid token",
	}
}

func NewFatalError(err error) AppError {
	debug.PrintStack()
	return AppError{
		Code:     http.StatusInternalServerError,
		Type:     ErrFatal,
		Message:  "Oops! something happened on our end.",
		Internal: err.Error(),
	}
}

func NewUnknownError(err any) AppError {
	return NewFatalError(fmt.Errorf("%v", err))
}

func NewFailedDependencyError(msg string) AppError {
	return AppError{
		Code:    http.StatusFailedDependency,
		Type:    ErrFailedDependency,
		Message: msg,
	}
}

func AsAppError(err error) AppError {
	apperr := new(AppError)
	if errors.As(err, apperr) {
		return *apperr
	}
	return NewFatalError(err)
}
