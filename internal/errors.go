package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount          ErrorCode = "INVALID_AMOUNT"
	ErrCodeModificationExhausted  ErrorCode = "MODIFICATION_EXHAUSTED"
	ErrCodeInvalidState           ErrorCode = "INVALID_STATE"
	ErrCodePaymentNotFound        ErrorCode = "PAYMENT_NOT_FOUND"
	ErrCodePaymentMethodNotFound  ErrorCode = "PAYMENT_METHOD_NOT_FOUND"
	ErrCodeCustomerNotFound       ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodeConcurrencyConflict    ErrorCode = "CONCURRENCY_CONFLICT"
	ErrCodeDuplicatePaymentMethod ErrorCode = "DUPLICATE_PAYMENT_METHOD"
	ErrCodeDuplicateCustomer      ErrorCode = "DUPLICATE_CUSTOMER"
	ErrCodeCardExpired            ErrorCode = "CARD_EXPIRED"
	ErrCodeCardNumberInvalid      ErrorCode = "CARD_NUMBER_INVALID"
	ErrCodeRoutingNumberInvalid   ErrorCode = "ROUTING_NUMBER_INVALID"
	ErrCodeAccountNumberInvalid   ErrorCode = "ACCOUNT_NUMBER_INVALID"
	ErrCodeUnknown                ErrorCode = "UNKNOWN"
)

type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeUnknown,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrPaymentNotFound       = NewNotFoundError("Payment not found", ErrCodePaymentNotFound)
	ErrPaymentMethodNotFound = NewNotFoundError("Payment method not found", ErrCodePaymentMethodNotFound)
	ErrCustomerNotFound      = NewNotFoundError("Customer not found", ErrCodeCustomerNotFound)
	ErrConcurrencyConflict   = NewConflictError("Payment was modified concurrently, retry with latest version", ErrCodeConcurrencyConflict)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
