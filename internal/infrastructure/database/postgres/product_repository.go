package postgres

import (
	"context"
	"errors"
	"fmt"
	"loan-schedule/internal/domain/calendar"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/infrastructure/monitoring"
	"loan-schedule/internal/pkg/apperrors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const productColumns = `product_key, name, interest_method, monthly_rate, default_term_months,
        min_term_months, max_term_months, min_principal, max_principal, repayment_period,
        first_due_rule, holiday_rule, rounding_unit, is_active`

var errMsgFormat = "%w: %w"

// ProductRepository reads the loan_products table. It never writes.
type ProductRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ product.Repository = (*ProductRepository)(nil)

func NewProductRepository(db DBPool, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger.With("component", "ProductRepository")}
}

func (r *ProductRepository) FindByKey(ctx context.Context, key string) (*product.LoanProduct, error) {
	query := `
        SELECT ` + productColumns + `
        FROM loan_products
        WHERE product_key = $1`
	status := "success"
	startTime := time.Now()

	p, err := scanProduct(r.db.QueryRow(ctx, query, key))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		status = "error"
	}
	monitoring.RecordDBQuery("FindProductByKey", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan product not found", "productKey", key)
			return nil, fmt.Errorf("%w: %s", apperrors.ErrProductNotFound, key)
		}
		r.logger.ErrorContext(ctx, "Failed to get loan product by key", "productKey", key, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &p, nil
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]product.LoanProduct, error) {
	query := `
        SELECT ` + productColumns + `
        FROM loan_products
        WHERE is_active = TRUE
        ORDER BY name ASC`
	return r.list(ctx, "ListActiveProducts", query)
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]product.LoanProduct, error) {
	query := `
        SELECT ` + productColumns + `
        FROM loan_products
        ORDER BY product_key ASC`
	return r.list(ctx, "ListAllProducts", query)
}

func (r *ProductRepository) list(ctx context.Context, queryName, query string) ([]product.LoanProduct, error) {
	status := "success"
	startTime := time.Now()
	defer func() {
		monitoring.RecordDBQuery(queryName, status, time.Since(startTime))
	}()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		status = "error"
		r.logger.ErrorContext(ctx, "Failed to query loan products", "query", queryName, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	products := make([]product.LoanProduct, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			status = "error"
			r.logger.ErrorContext(ctx, "Failed to scan loan product row", "query", queryName, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		status = "error"
		r.logger.ErrorContext(ctx, "Error iterating loan product rows", "query", queryName, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	r.logger.DebugContext(ctx, "Loaded loan products", "query", queryName, "count", len(products))
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (product.LoanProduct, error) {
	var (
		p                          product.LoanProduct
		method, period             string
		firstDue, holiday          string
		minTerm, maxTerm           pgtype.Int4
		minPrincipal, maxPrincipal decimal.NullDecimal
	)

	err := row.Scan(
		&p.Key, &p.Name, &method, &p.MonthlyRate, &p.DefaultTermMonths,
		&minTerm, &maxTerm, &minPrincipal, &maxPrincipal, &period,
		&firstDue, &holiday, &p.RoundingUnit, &p.Active,
	)
	if err != nil {
		return product.LoanProduct{}, err
	}

	p.InterestMethod = product.InterestMethod(method)
	p.RepaymentPeriod = product.RepaymentPeriod(period)
	p.FirstDueRule = calendar.FirstDueRule(firstDue)
	p.HolidayRule = calendar.HolidayRule(holiday)
	p.MinTermMonths = intOrNil(minTerm)
	p.MaxTermMonths = intOrNil(maxTerm)
	p.MinPrincipal = decimalOrNil(minPrincipal)
	p.MaxPrincipal = decimalOrNil(maxPrincipal)
	return p, nil
}

func intOrNil(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func decimalOrNil(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}
