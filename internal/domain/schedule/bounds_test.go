package schedule

import (
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/pkg/apperrors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func boundedProduct() product.LoanProduct {
	p := testProduct(product.MethodEqualPrincipal)
	p.MinPrincipal, p.MaxPrincipal = decPtr(50_000), decPtr(500_000)
	p.MinTermMonths, p.MaxTermMonths = intPtr(6), intPtr(36)
	return p
}

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		term      int
		rule      apperrors.BoundsRule
		kind      error
	}{
		{"within bounds", decimal.NewFromInt(120_000), 12, "", nil},
		{"at minimums", decimal.NewFromInt(50_000), 6, "", nil},
		{"at maximums", decimal.NewFromInt(500_000), 36, "", nil},
		{"zero principal", decimal.Zero, 12, apperrors.RulePrincipalNotPositive, apperrors.ErrInvalidPrincipal},
		{"negative principal", decimal.NewFromInt(-5), 12, apperrors.RulePrincipalNotPositive, apperrors.ErrInvalidPrincipal},
		{"below minimum principal", decimal.NewFromInt(10_000), 12, apperrors.RulePrincipalBelowMinimum, apperrors.ErrInvalidPrincipal},
		{"above maximum principal", decimal.NewFromInt(500_001), 12, apperrors.RulePrincipalAboveMaximum, apperrors.ErrInvalidPrincipal},
		{"zero term", decimal.NewFromInt(120_000), 0, apperrors.RuleTermNotPositive, apperrors.ErrInvalidTerm},
		{"below minimum term", decimal.NewFromInt(120_000), 3, apperrors.RuleTermBelowMinimum, apperrors.ErrInvalidTerm},
		{"above maximum term", decimal.NewFromInt(120_000), 48, apperrors.RuleTermAboveMaximum, apperrors.ErrInvalidTerm},
		{"principal is checked before term", decimal.NewFromInt(10_000), 48, apperrors.RulePrincipalBelowMinimum, apperrors.ErrInvalidPrincipal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBounds(boundedProduct(), tt.principal, tt.term)
			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			var be *apperrors.BoundsError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.rule, be.Rule)
		})
	}
}

func TestCheckBoundsWithoutLimits(t *testing.T) {
	p := testProduct(product.MethodEMI)
	assert.NoError(t, CheckBounds(p, decimal.RequireFromString("0.01"), 1))
	assert.NoError(t, CheckBounds(p, decimal.NewFromInt(1_000_000_000), 600))
}

func TestBoundsErrorCarriesLimit(t *testing.T) {
	err := CheckBounds(boundedProduct(), decimal.NewFromInt(10_000), 12)
	var be *apperrors.BoundsError
	require.ErrorAs(t, err, &be)
	assert.True(t, be.Limit.Equal(decimal.NewFromInt(50_000)))
	assert.Equal(t, "principal 10000 is below the product minimum of 50000", err.Error())
}

func TestResolveTerm(t *testing.T) {
	p := testProduct(product.MethodEMI)
	assert.Equal(t, 12, ResolveTerm(p, nil))
	assert.Equal(t, 24, ResolveTerm(p, intPtr(24)))
	assert.Equal(t, 12, ResolveTerm(p, intPtr(0)))
	assert.Equal(t, 12, ResolveTerm(p, intPtr(-3)))
}
