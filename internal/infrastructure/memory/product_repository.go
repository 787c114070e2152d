// Package memory serves the loan product catalog from configuration when no
// database is configured.
package memory

import (
	"context"
	"fmt"
	"loan-schedule/internal/config"
	"loan-schedule/internal/domain/calendar"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/pkg/apperrors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductRepository is an immutable in-memory catalog, safe for concurrent use.
type ProductRepository struct {
	byKey map[string]product.LoanProduct
	keys  []string
}

var _ product.Repository = (*ProductRepository)(nil)

func NewProductRepository(products []product.LoanProduct) (*ProductRepository, error) {
	r := &ProductRepository{byKey: make(map[string]product.LoanProduct, len(products))}
	for _, p := range products {
		if _, dup := r.byKey[p.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate product key %q", apperrors.ErrInvalidArgument, p.Key)
		}
		r.byKey[p.Key] = clone(p)
		r.keys = append(r.keys, p.Key)
	}
	sort.Strings(r.keys)
	return r, nil
}

func (r *ProductRepository) FindByKey(_ context.Context, key string) (*product.LoanProduct, error) {
	p, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrProductNotFound, key)
	}
	p = clone(p)
	return &p, nil
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]product.LoanProduct, error) {
	all, _ := r.ListAll(ctx)
	active := make([]product.LoanProduct, 0, len(all))
	for _, p := range all {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (r *ProductRepository) ListAll(_ context.Context) ([]product.LoanProduct, error) {
	out := make([]product.LoanProduct, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, clone(r.byKey[k]))
	}
	return out, nil
}

// clone copies the optional bounds so callers cannot mutate the catalog.
func clone(p product.LoanProduct) product.LoanProduct {
	if p.MinTermMonths != nil {
		v := *p.MinTermMonths
		p.MinTermMonths = &v
	}
	if p.MaxTermMonths != nil {
		v := *p.MaxTermMonths
		p.MaxTermMonths = &v
	}
	if p.MinPrincipal != nil {
		v := *p.MinPrincipal
		p.MinPrincipal = &v
	}
	if p.MaxPrincipal != nil {
		v := *p.MaxPrincipal
		p.MaxPrincipal = &v
	}
	return p
}

// ProductsFromConfig converts seed products. Missing tags take the usual
// defaults and a missing active flag means active.
func ProductsFromConfig(cfgs []config.ProductConfig) ([]product.LoanProduct, error) {
	products := make([]product.LoanProduct, 0, len(cfgs))
	for i, c := range cfgs {
		p, err := productFromConfig(c)
		if err != nil {
			return nil, fmt.Errorf("catalog product %d (%s): %w", i, c.Key, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func productFromConfig(c config.ProductConfig) (product.LoanProduct, error) {
	rate, err := parseDecimal("monthlyRate", c.MonthlyRate)
	if err != nil {
		return product.LoanProduct{}, err
	}
	unit, err := parseDecimal("roundingUnit", c.RoundingUnit)
	if err != nil {
		return product.LoanProduct{}, err
	}
	minPrincipal, err := parseOptionalDecimal("minPrincipal", c.MinPrincipal)
	if err != nil {
		return product.LoanProduct{}, err
	}
	maxPrincipal, err := parseOptionalDecimal("maxPrincipal", c.MaxPrincipal)
	if err != nil {
		return product.LoanProduct{}, err
	}

	p := product.LoanProduct{
		Key:               strings.TrimSpace(c.Key),
		Name:              c.Name,
		InterestMethod:    product.InterestMethod(orDefault(c.InterestMethod, string(product.MethodEqualPrincipal))),
		MonthlyRate:       rate,
		DefaultTermMonths: c.DefaultTermMonths,
		MinTermMonths:     c.MinTermMonths,
		MaxTermMonths:     c.MaxTermMonths,
		MinPrincipal:      minPrincipal,
		MaxPrincipal:      maxPrincipal,
		RepaymentPeriod:   product.RepaymentPeriod(orDefault(c.RepaymentPeriod, string(product.PeriodMonthly))),
		FirstDueRule:      calendar.FirstDueRule(orDefault(c.FirstDueRule, string(calendar.SameDayNextMonth))),
		HolidayRule:       calendar.HolidayRule(orDefault(c.HolidayRule, string(calendar.Exact))),
		RoundingUnit:      unit,
		Active:            c.Active == nil || *c.Active,
	}
	if p.Name == "" {
		p.Name = p.Key
	}
	return p, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError(field, fmt.Sprintf("invalid decimal %q", s))
	}
	return d, nil
}

func parseOptionalDecimal(field, s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := parseDecimal(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
