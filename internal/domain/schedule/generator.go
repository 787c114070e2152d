package schedule

import (
	"errors"
	"loan-schedule/internal/domain/calendar"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/pkg/apperrors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// FallbackInterestMethod is used for products with an unrecognized method tag.
const FallbackInterestMethod = product.MethodEqualPrincipal

// degenerateThreshold bounds 1-(1+r)^-n from below; smaller denominators use
// the zero-rate formula.
const degenerateThreshold = 1e-12

// workingPlaces caps the scale of raw interest so EMI balances do not grow a
// digit pair every period.
var workingPlaces = int32(decimal.DivisionPrecision)

// Terms are the validated inputs shared by both generators.
type Terms struct {
	Principal   decimal.Decimal
	MonthlyRate decimal.Decimal
	Months      int
	StartDate   time.Time
	FirstDue    calendar.FirstDueRule
	HolidayRule calendar.HolidayRule
	IsHoliday   calendar.HolidayFunc
}

// DueDate returns the due date of period k, always counted from StartDate.
func (t Terms) DueDate(k int) time.Time {
	return calendar.AdjustBusinessDay(calendar.AddMonths(t.StartDate, k, t.FirstDue), t.HolidayRule, t.IsHoliday)
}

type Generator interface {
	Method() product.InterestMethod

	// Generate returns Months raw periods. The last period always retires
	// the remaining balance, so its closing balance is exactly zero.
	Generate(t Terms) []Period
}

// GeneratorFor selects the generator for a product method tag.
func GeneratorFor(m product.InterestMethod) Generator {
	switch m {
	case product.MethodEMI:
		return EqualInstallment{}
	case product.MethodEqualPrincipal:
		return EqualPrincipal{}
	default:
		return GeneratorFor(FallbackInterestMethod)
	}
}

// EqualPrincipal repays principal/n each period with interest on the
// outstanding balance, so the total payment declines.
type EqualPrincipal struct{}

func (EqualPrincipal) Method() product.InterestMethod { return product.MethodEqualPrincipal }

func (EqualPrincipal) Generate(t Terms) []Period {
	if t.Months <= 0 {
		return nil
	}
	portion := MonthlyPrincipal(t.Principal, t.Months)
	return amortize(t, func(_ decimal.Decimal) decimal.Decimal {
		return portion
	})
}

// EqualInstallment pays a constant annuity installment; the principal part
// grows as interest on the shrinking balance falls.
type EqualInstallment struct{}

func (EqualInstallment) Method() product.InterestMethod { return product.MethodEMI }

func (EqualInstallment) Generate(t Terms) []Period {
	if t.Months <= 0 {
		return nil
	}
	installment := Installment(t.Principal, t.MonthlyRate, t.Months)
	return amortize(t, func(interest decimal.Decimal) decimal.Decimal {
		return installment.Sub(interest)
	})
}

// MonthlyPrincipal is the constant equal-principal portion at full precision.
func MonthlyPrincipal(principal decimal.Decimal, months int) decimal.Decimal {
	return principal.Div(decimal.NewFromInt(int64(months)))
}

// Installment returns the annuity installment P*r/(1-(1+r)^-n), or P/n when
// the rate is zero or the annuity factor is degenerate.
func Installment(principal, rate decimal.Decimal, months int) decimal.Decimal {
	installment, err := annuityInstallment(principal, rate, months)
	if errors.Is(err, apperrors.ErrNumericDegenerate) {
		return MonthlyPrincipal(principal, months)
	}
	return installment
}

func annuityInstallment(principal, rate decimal.Decimal, months int) (decimal.Decimal, error) {
	if rate.IsZero() {
		return MonthlyPrincipal(principal, months), nil
	}
	// The power is taken in float64 and the rest stays in decimal.
	denominator := 1 - math.Pow(1+rate.InexactFloat64(), -float64(months))
	if math.IsNaN(denominator) || denominator < degenerateThreshold {
		return decimal.Zero, apperrors.ErrNumericDegenerate
	}
	return principal.Mul(rate).Div(decimal.NewFromFloat(denominator)), nil
}

// amortize runs the shared reducing-balance loop. principalFor gives the
// principal part of every period but the last, which takes the whole balance.
func amortize(t Terms, principalFor func(interest decimal.Decimal) decimal.Decimal) []Period {
	periods := make([]Period, 0, t.Months)
	balance := t.Principal

	for k := 1; k <= t.Months; k++ {
		interest := balance.Mul(t.MonthlyRate).Round(workingPlaces)

		var principal decimal.Decimal
		if k == t.Months {
			principal = balance
		} else {
			principal = principalFor(interest)
		}

		closing := balance.Sub(principal)
		periods = append(periods, Period{
			Index:          k,
			DueDate:        t.DueDate(k),
			OpeningBalance: balance,
			Principal:      principal,
			Interest:       interest,
			Total:          principal.Add(interest),
			Balance:        closing,
		})
		balance = closing
	}
	return periods
}
