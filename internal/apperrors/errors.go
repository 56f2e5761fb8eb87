package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateUnavailable indicates that no usable exchange rate could be produced by any path.
// This is the single "give up" condition and should be treated as an operational alert.
var ErrRateUnavailable = errors.New("no exchange rate available")

// AppError carries an HTTP-ish status code alongside the underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic application error with a status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates an error that satisfies errors.Is(err, ErrValidation).
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewNotFoundError creates an error that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewDuplicateError creates an error that satisfies errors.Is(err, ErrDuplicate).
func NewDuplicateError(message string) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, message)
}

// ManualRateReason enumerates the ways a manually configured rate can be rejected.
type ManualRateReason string

const (
	ManualRateRequired     ManualRateReason = "required"
	ManualRateNotPositive  ManualRateReason = "not_positive"
	ManualRateTooLow       ManualRateReason = "too_low"
	ManualRateTooHigh      ManualRateReason = "too_high"
	ManualRateUnreasonable ManualRateReason = "unreasonable_value"
)

// InvalidManualRateError is raised synchronously on bad rate configuration input.
type InvalidManualRateError struct {
	Reason  ManualRateReason
	Message string
}

func (e *InvalidManualRateError) Error() string {
	return e.Message
}

func (e *InvalidManualRateError) Unwrap() error {
	return ErrValidation
}

func NewInvalidManualRateError(reason ManualRateReason, message string) *InvalidManualRateError {
	return &InvalidManualRateError{Reason: reason, Message: message}
}

// StaleRateError reports a rate whose age exceeds the tolerated maximum.
type StaleRateError struct {
	RateDate   time.Time
	MaxAgeDays int
	DaysOld    int
}

func (e *StaleRateError) Error() string {
	return fmt.Sprintf("exchange rate from %s is %d days old, exceeding the maximum age of %d days",
		e.RateDate.Format("2006-01-02"), e.DaysOld, e.MaxAgeDays)
}

func (e *StaleRateError) Unwrap() error {
	return ErrRateUnavailable
}

func NewStaleRateError(rateDate time.Time, maxAgeDays, daysOld int) *StaleRateError {
	return &StaleRateError{RateDate: rateDate, MaxAgeDays: maxAgeDays, DaysOld: daysOld}
}

// NoRateReason enumerates why rate acquisition gave up.
type NoRateReason string

const (
	NoRateNoProviders           NoRateReason = "no_providers"
	NoRateAllProvidersExhausted NoRateReason = "all_providers_exhausted"
	NoRateNoCachedRate          NoRateReason = "no_cached_rate"
	NoRateAPIFailure            NoRateReason = "api_failure"
)

// NoRateAvailableError is raised only when no usable rate can be produced by any path.
type NoRateAvailableError struct {
	Reason NoRateReason
	Detail string
}

func (e *NoRateAvailableError) Error() string {
	switch e.Reason {
	case NoRateNoProviders:
		return "no exchange rate providers are configured"
	case NoRateAllProvidersExhausted:
		return "all exchange rate providers are exhausted or failing"
	case NoRateNoCachedRate:
		return "no cached exchange rate is available for fallback"
	case NoRateAPIFailure:
		return fmt.Sprintf("exchange rate API failure: %s", e.Detail)
	}
	return "no exchange rate available"
}

func (e *NoRateAvailableError) Unwrap() error {
	return ErrRateUnavailable
}

func NewNoRateAvailableError(reason NoRateReason) *NoRateAvailableError {
	return &NoRateAvailableError{Reason: reason}
}

func NewAPIFailureError(detail string) *NoRateAvailableError {
	return &NoRateAvailableError{Reason: NoRateAPIFailure, Detail: detail}
}
