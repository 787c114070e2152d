package schedule

import (
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// ResolveTerm returns the override when it is positive, else the product default.
func ResolveTerm(p product.LoanProduct, override *int) int {
	if override != nil && *override > 0 {
		return *override
	}
	return p.DefaultTermMonths
}

// CheckBounds validates principal and term against the product limits. Checks
// run in a fixed order and the first violation is returned as a
// *apperrors.BoundsError.
func CheckBounds(p product.LoanProduct, principal decimal.Decimal, termMonths int) error {
	if !principal.IsPositive() {
		return apperrors.NewPrincipalBoundsError(apperrors.RulePrincipalNotPositive, principal, decimal.Zero)
	}
	if p.MinPrincipal != nil && principal.LessThan(*p.MinPrincipal) {
		return apperrors.NewPrincipalBoundsError(apperrors.RulePrincipalBelowMinimum, principal, *p.MinPrincipal)
	}
	if p.MaxPrincipal != nil && principal.GreaterThan(*p.MaxPrincipal) {
		return apperrors.NewPrincipalBoundsError(apperrors.RulePrincipalAboveMaximum, principal, *p.MaxPrincipal)
	}
	if termMonths <= 0 {
		return apperrors.NewTermBoundsError(apperrors.RuleTermNotPositive, termMonths, 0)
	}
	if p.MinTermMonths != nil && termMonths < *p.MinTermMonths {
		return apperrors.NewTermBoundsError(apperrors.RuleTermBelowMinimum, termMonths, *p.MinTermMonths)
	}
	if p.MaxTermMonths != nil && termMonths > *p.MaxTermMonths {
		return apperrors.NewTermBoundsError(apperrors.RuleTermAboveMaximum, termMonths, *p.MaxTermMonths)
	}
	return nil
}
