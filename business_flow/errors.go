// Package businessflow contains the core business logic and use cases for the storefront and wholesale portal
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Identity errors
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPasswordNotSet     = errors.New("account has no password set")

	// Authorization errors
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("admin access required")

	// Wholesale application errors
	ErrApplicationNotFound        = errors.New("application not found")
	ErrApplicationAlreadyReviewed = errors.New("application already reviewed")
	ErrInvalidApplicationID       = errors.New("application id must be a valid uuid")
	ErrInvalidDecision            = errors.New("decision must be approved or rejected")
	ErrPlanRequired               = errors.New("plan is required for approval")
	ErrInvalidPlan                = errors.New("plan must be A or B")
	ErrCaptchaFailed              = errors.New("captcha verification failed")

	// Activation errors
	ErrActivationTokenNotFound = errors.New("activation token not found")
	ErrActivationTokenUsed     = errors.New("activation token already used")
	ErrActivationTokenExpired  = errors.New("activation token has expired")

	// Wholesale portal errors
	ErrWholesaleAccessDenied = errors.New("wholesale access denied")
	ErrPlanNotAssigned       = errors.New("no wholesale plan assigned")
	ErrProductNotFound       = errors.New("product not found")
	ErrProductInactive       = errors.New("product is not active")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderEmpty            = errors.New("order must contain at least one item")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 200")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsApplicationNotFound(err error) bool {
	return errors.Is(err, ErrApplicationNotFound)
}

func IsApplicationAlreadyReviewed(err error) bool {
	return errors.Is(err, ErrApplicationAlreadyReviewed)
}

func IsPlanRequired(err error) bool {
	return errors.Is(err, ErrPlanRequired)
}

func IsInvalidPlan(err error) bool {
	return errors.Is(err, ErrInvalidPlan)
}

func IsInvalidApplicationID(err error) bool {
	return errors.Is(err, ErrInvalidApplicationID)
}

func IsInvalidDecision(err error) bool {
	return errors.Is(err, ErrInvalidDecision)
}

func IsCaptchaFailed(err error) bool {
	return errors.Is(err, ErrCaptchaFailed)
}

func IsActivationTokenNotFound(err error) bool {
	return errors.Is(err, ErrActivationTokenNotFound)
}

func IsActivationTokenUsed(err error) bool {
	return errors.Is(err, ErrActivationTokenUsed)
}

func IsActivationTokenExpired(err error) bool {
	return errors.Is(err, ErrActivationTokenExpired)
}

func IsWholesaleAccessDenied(err error) bool {
	return errors.Is(err, ErrWholesaleAccessDenied)
}

func IsProductNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

func IsOrderNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

func IsPasswordNotSet(err error) bool {
	return errors.Is(err, ErrPasswordNotSet)
}

func IsPlanNotAssigned(err error) bool {
	return errors.Is(err, ErrPlanNotAssigned)
}

func IsProductInactive(err error) bool {
	return errors.Is(err, ErrProductInactive)
}

func IsOrderEmpty(err error) bool {
	return errors.Is(err, ErrOrderEmpty)
}

func IsInvalidQuantity(err error) bool {
	return errors.Is(err, ErrInvalidQuantity)
}
