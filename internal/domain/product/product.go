package product

import (
	"loan-schedule/internal/domain/calendar"
	"loan-schedule/internal/pkg/apperrors"
	"strings"

	"github.com/shopspring/decimal"
)

type InterestMethod string

const (
	MethodEqualPrincipal InterestMethod = "equal_principal"
	MethodEMI            InterestMethod = "emi"
)

func (m InterestMethod) Valid() bool {
	return m == MethodEqualPrincipal || m == MethodEMI
}

type RepaymentPeriod string

const PeriodMonthly RepaymentPeriod = "monthly"

// DefaultRoundingUnit applies when a product leaves RoundingUnit unset.
var DefaultRoundingUnit = decimal.NewFromInt(1)

// LoanProduct is a read-only snapshot of a catalog entry. Optional bounds are
// nil when the product does not configure them.
type LoanProduct struct {
	Key               string                `json:"key"`
	Name              string                `json:"name"`
	InterestMethod    InterestMethod        `json:"interestMethod"`
	MonthlyRate       decimal.Decimal       `json:"monthlyRate"`
	DefaultTermMonths int                   `json:"defaultTermMonths"`
	MinTermMonths     *int                  `json:"minTermMonths,omitempty"`
	MaxTermMonths     *int                  `json:"maxTermMonths,omitempty"`
	MinPrincipal      *decimal.Decimal      `json:"minPrincipal,omitempty"`
	MaxPrincipal      *decimal.Decimal      `json:"maxPrincipal,omitempty"`
	RepaymentPeriod   RepaymentPeriod       `json:"repaymentPeriod"`
	FirstDueRule      calendar.FirstDueRule `json:"firstDueRule"`
	HolidayRule       calendar.HolidayRule  `json:"holidayRule"`
	RoundingUnit      decimal.Decimal       `json:"roundingUnit"`
	Active            bool                  `json:"active"`
}

// EffectiveRoundingUnit returns RoundingUnit, or DefaultRoundingUnit when unset.
func (p LoanProduct) EffectiveRoundingUnit() decimal.Decimal {
	if p.RoundingUnit.IsZero() {
		return DefaultRoundingUnit
	}
	return p.RoundingUnit
}

// Validate checks the catalog invariants. It does not judge the tags: unknown
// interest methods and date rules have named fallbacks downstream.
func (p LoanProduct) Validate() error {
	if strings.TrimSpace(p.Key) == "" {
		return apperrors.NewValidationError("key", "must not be empty")
	}
	if p.MonthlyRate.IsNegative() {
		return apperrors.NewValidationError("monthly_rate", "must not be negative")
	}
	if p.RoundingUnit.IsNegative() {
		return apperrors.NewValidationError("rounding_unit", "must be positive")
	}
	if p.MinPrincipal != nil && p.MinPrincipal.IsNegative() {
		return apperrors.NewValidationError("min_principal", "must not be negative")
	}
	if p.MaxPrincipal != nil && p.MaxPrincipal.IsNegative() {
		return apperrors.NewValidationError("max_principal", "must not be negative")
	}
	if p.MinPrincipal != nil && p.MaxPrincipal != nil && p.MinPrincipal.GreaterThan(*p.MaxPrincipal) {
		return apperrors.NewValidationError("min_principal", "must not exceed max_principal")
	}
	if p.MinTermMonths != nil && *p.MinTermMonths < 0 {
		return apperrors.NewValidationError("min_term_months", "must not be negative")
	}
	if p.MaxTermMonths != nil && *p.MaxTermMonths < 0 {
		return apperrors.NewValidationError("max_term_months", "must not be negative")
	}
	if p.MinTermMonths != nil && p.MaxTermMonths != nil && *p.MinTermMonths > *p.MaxTermMonths {
		return apperrors.NewValidationError("min_term_months", "must not exceed max_term_months")
	}
	return nil
}
