package schedule

import (
	"fmt"
	"loan-schedule/internal/domain/calendar"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/domain/rounding"
	"loan-schedule/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

type computeOptions struct {
	isHoliday calendar.HolidayFunc
}

type Option func(*computeOptions)

// WithHolidays adds a holiday calendar on top of the weekend rule.
func WithHolidays(isHoliday calendar.HolidayFunc) Option {
	return func(o *computeOptions) {
		o.isHoliday = isHoliday
	}
}

// Compute builds the repayment schedule of req against p. An inactive product
// yields apperrors.ErrProductNotFound, an internally inconsistent one
// apperrors.ErrInvalidProduct, and out-of-bounds inputs a
// *apperrors.BoundsError.
func Compute(p product.LoanProduct, req Request, opts ...Option) (*Schedule, error) {
	o := computeOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if !p.Active {
		return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrProductNotFound, p.Key)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrInvalidProduct, p.Key, err)
	}

	term := ResolveTerm(p, req.TermMonths)
	if term <= 0 {
		return nil, apperrors.NewTermBoundsError(apperrors.RuleTermNotPositive, term, 0)
	}
	if err := CheckBounds(p, req.Principal, term); err != nil {
		return nil, err
	}

	gen := GeneratorFor(p.InterestMethod)
	periods := gen.Generate(Terms{
		Principal:   req.Principal,
		MonthlyRate: p.MonthlyRate,
		Months:      term,
		StartDate:   calendar.Midnight(req.StartDate),
		FirstDue:    p.FirstDueRule,
		HolidayRule: p.HolidayRule,
		IsHoliday:   o.isHoliday,
	})

	unit := p.EffectiveRoundingUnit()
	rows := displayRows(periods, req.Principal, unit)

	return &Schedule{
		Summary: summarize(p, gen.Method(), req.Principal, term, unit, rows),
		Rows:    rows,
	}, nil
}

// displayRows rounds raw periods for display. Interest is rounded per row;
// principal and balance are rounded on the cumulative principal, so rounded
// principal always sums to the rounded loan amount and the last balance is 0.
func displayRows(periods []Period, principal, unit decimal.Decimal) []Row {
	rows := make([]Row, len(periods))
	shownPrincipal := rounding.ToUnit(principal, unit)

	repaid := decimal.Zero
	shownRepaid := decimal.Zero
	for i, p := range periods {
		repaid = repaid.Add(p.Principal)
		nextShown := rounding.ToUnit(repaid, unit)
		part := nextShown.Sub(shownRepaid)
		interest := rounding.ToUnit(p.Interest, unit)

		rows[i] = Row{
			Period:    p.Index,
			DueDate:   p.DueDate,
			Principal: part,
			Interest:  interest,
			Total:     part.Add(interest),
			Balance:   shownPrincipal.Sub(nextShown),
		}
		shownRepaid = nextShown
	}
	return rows
}

func summarize(p product.LoanProduct, method product.InterestMethod, principal decimal.Decimal, term int, unit decimal.Decimal, rows []Row) Summary {
	s := Summary{
		ProductKey:   p.Key,
		ProductName:  p.Name,
		Method:       method,
		MonthlyRate:  p.MonthlyRate,
		TermMonths:   term,
		Principal:    principal,
		RoundingUnit: unit,
	}

	switch method {
	case product.MethodEMI:
		installment := rounding.ToUnit(Installment(principal, p.MonthlyRate, term), unit)
		s.Installment = &installment
	default:
		portion := rounding.ToUnit(MonthlyPrincipal(principal, term), unit)
		s.MonthlyPrincipal = &portion
	}

	for _, r := range rows {
		s.TotalInterest = s.TotalInterest.Add(r.Interest)
		s.TotalPrincipal = s.TotalPrincipal.Add(r.Principal)
	}
	s.TotalPayable = s.TotalPrincipal.Add(s.TotalInterest)

	if len(rows) > 0 {
		s.FirstPeriodInterest = rows[0].Interest
		s.FirstDueDate = rows[0].DueDate
		s.MaturityDate = rows[len(rows)-1].DueDate
	}
	return s
}
