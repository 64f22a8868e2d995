package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	// Step is the checkout step that failed validation, zero otherwise.
	Step int
	// Redirect is the location the client should navigate to, if any.
	Redirect string
	Err      error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

func (e *AppError) WithRedirect(location string) *AppError {
	e.Redirect = location

	return e
}

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeDuplicateEntry    = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError   = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"
	ErrCodeResourceExhausted = "RESOURCE_EXHAUSTED"

	ErrCodeStepValidation       = "VALIDATION_FAILED"
	ErrCodeNotAuthenticated     = "NOT_AUTHENTICATED"
	ErrCodeCartOperation        = "CART_OPERATION_FAILED"
	ErrCodeOrderSubmission      = "ORDER_SUBMISSION_FAILED"
	ErrCodeEmptyCart            = "EMPTY_CART"
	ErrCodeSubmissionInProgress = "SUBMISSION_IN_PROGRESS"
	ErrCodeNotificationFailed   = "NOTIFICATION_FAILED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusInternalServerError)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func ResourceExhaustedError(message string) *AppError {
	return NewAppError(ErrCodeResourceExhausted, message, http.StatusTooManyRequests)
}

// ValidationFailedError blocks a checkout step transition. The missing field
// names are reported in Detail.
func ValidationFailedError(step int, message string, missing []string) *AppError {
	e := NewAppError(ErrCodeStepValidation, message, http.StatusUnprocessableEntity)
	e.Step = step

	if len(missing) > 0 {
		e.Detail = "missing: " + strings.Join(missing, ", ")
	}

	return e
}

func NotAuthenticatedError(returnTo string) *AppError {
	return NewAppError(ErrCodeNotAuthenticated, "You must be logged in to place an order.", http.StatusUnauthorized).
		WithRedirect(returnTo)
}

// CartOperationFailedError passes the store message through as the detail.
func CartOperationFailedError(err error) *AppError {
	e := NewAppError(ErrCodeCartOperation, "Cart operation failed", http.StatusInternalServerError)
	if err != nil {
		e.Detail = err.Error()
		e.Err = err
	}

	return e
}

// OrderSubmissionFailedError passes the store message through as the detail.
func OrderSubmissionFailedError(err error) *AppError {
	e := NewAppError(ErrCodeOrderSubmission, "Failed to place order. Please try again.", http.StatusInternalServerError)
	if err != nil {
		e.Detail = err.Error()
		e.Err = err
	}

	return e
}

func EmptyCartError(returnTo string) *AppError {
	return NewAppError(ErrCodeEmptyCart, "Your cart is empty", http.StatusBadRequest).WithRedirect(returnTo)
}

func SubmissionInProgressError() *AppError {
	return NewAppError(ErrCodeSubmissionInProgress, "An order submission is already in progress", http.StatusConflict)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Code == code
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
