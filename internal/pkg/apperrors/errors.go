package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrUnauthorized = errors.New("unauthorized")

	ErrProductNotFound = fmt.Errorf("%w: loan product not found", ErrNotFound)

	ErrInvalidProduct = errors.New("invalid loan product definition")

	ErrInvalidPrincipal = fmt.Errorf("%w: invalid principal", ErrValidation)

	ErrInvalidTerm = fmt.Errorf("%w: invalid term", ErrValidation)

	// ErrNumericDegenerate never leaves the schedule package; the EMI generator
	// falls back to the linear formula when it sees it.
	ErrNumericDegenerate = errors.New("numerically degenerate annuity factor")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// BoundsRule names the request check that failed.
type BoundsRule string

const (
	RulePrincipalNotPositive  BoundsRule = "principal_not_positive"
	RulePrincipalBelowMinimum BoundsRule = "principal_below_minimum"
	RulePrincipalAboveMaximum BoundsRule = "principal_above_maximum"
	RuleTermNotPositive       BoundsRule = "term_not_positive"
	RuleTermBelowMinimum      BoundsRule = "term_below_minimum"
	RuleTermAboveMaximum      BoundsRule = "term_above_maximum"
)

// BoundsError reports a principal or term outside the product limits. Limit is
// zero for the positivity rules.
type BoundsError struct {
	Rule  BoundsRule
	Field string
	Value decimal.Decimal
	Limit decimal.Decimal
	Kind  error
}

func (e *BoundsError) Error() string {
	switch e.Rule {
	case RulePrincipalNotPositive, RuleTermNotPositive:
		return fmt.Sprintf("%s must be greater than zero, got %s", e.Field, e.Value.String())
	case RulePrincipalBelowMinimum, RuleTermBelowMinimum:
		return fmt.Sprintf("%s %s is below the product minimum of %s", e.Field, e.Value.String(), e.Limit.String())
	case RulePrincipalAboveMaximum, RuleTermAboveMaximum:
		return fmt.Sprintf("%s %s is above the product maximum of %s", e.Field, e.Value.String(), e.Limit.String())
	default:
		return fmt.Sprintf("%s %s is out of bounds", e.Field, e.Value.String())
	}
}

func (e *BoundsError) Unwrap() error {
	return e.Kind
}

func NewPrincipalBoundsError(rule BoundsRule, value, limit decimal.Decimal) error {
	return &BoundsError{Rule: rule, Field: "principal", Value: value, Limit: limit, Kind: ErrInvalidPrincipal}
}

func NewTermBoundsError(rule BoundsRule, value, limit int) error {
	return &BoundsError{
		Rule:  rule,
		Field: "term_months",
		Value: decimal.NewFromInt(int64(value)),
		Limit: decimal.NewFromInt(int64(limit)),
		Kind:  ErrInvalidTerm,
	}
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}
