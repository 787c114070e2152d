package batch

import (
	"context"
	"fmt"
	"loan-schedule/internal/domain/calendar"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/domain/schedule"
	"loan-schedule/internal/infrastructure/monitoring"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Issue is one problem found on a catalog product.
type Issue struct {
	ProductKey string
	Problem    string
	// Blocking issues make requests on the default terms fail.
	Blocking bool
}

type AuditReport struct {
	Total   int
	Invalid int
	Issues  []Issue
}

// CatalogAuditJob checks every catalog product, inactive ones included, and
// publishes the number of unusable products as a gauge.
type CatalogAuditJob struct {
	repo   product.Repository
	logger *slog.Logger
}

func NewCatalogAuditJob(repo product.Repository, logger *slog.Logger) *CatalogAuditJob {
	if repo == nil || logger == nil {
		panic("CatalogAuditJob dependencies cannot be nil")
	}
	return &CatalogAuditJob{
		repo:   repo,
		logger: logger.With("job", "CatalogAudit"),
	}
}

func (j *CatalogAuditJob) Run(ctx context.Context) error {
	_, err := j.Audit(ctx)
	return err
}

func (j *CatalogAuditJob) Audit(ctx context.Context) (*AuditReport, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting loan product catalog audit.")

	products, err := j.repo.ListAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list loan products, aborting audit.", slog.Any("error", err))
		return nil, fmt.Errorf("cannot run audit, failed to list products: %w", err)
	}

	report := &AuditReport{Total: len(products)}
	for _, p := range products {
		issues := auditProduct(p)
		blocked := false
		for _, issue := range issues {
			logCtx := j.logger.With("productKey", issue.ProductKey, "active", p.Active)
			if issue.Blocking {
				blocked = true
				logCtx.WarnContext(ctx, "Loan product cannot produce schedules", "problem", issue.Problem)
			} else {
				logCtx.InfoContext(ctx, "Loan product relies on a fallback", "problem", issue.Problem)
			}
		}
		if blocked {
			report.Invalid++
		}
		report.Issues = append(report.Issues, issues...)
	}

	monitoring.SetInvalidProducts(report.Invalid)

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("total_products", report.Total),
		slog.Int("invalid_products", report.Invalid),
		slog.Int("issues", len(report.Issues)),
	)
	if report.Invalid > 0 {
		summaryLog.WarnContext(ctx, "Catalog audit finished with invalid products.")
	} else {
		summaryLog.InfoContext(ctx, "Catalog audit finished successfully.")
	}
	return report, nil
}

func auditProduct(p product.LoanProduct) []Issue {
	var issues []Issue
	add := func(blocking bool, format string, args ...any) {
		issues = append(issues, Issue{ProductKey: p.Key, Problem: fmt.Sprintf(format, args...), Blocking: blocking})
	}

	if err := p.Validate(); err != nil {
		add(true, "%v", err)
		return issues
	}

	if !p.InterestMethod.Valid() {
		add(false, "unknown interest method %q, %s is used", p.InterestMethod, schedule.FallbackInterestMethod)
	}
	if !p.FirstDueRule.Valid() {
		add(false, "unknown first due rule %q, %s is used", p.FirstDueRule, calendar.SameDayNextMonth)
	}
	if !p.HolidayRule.Valid() {
		add(false, "unknown holiday rule %q, %s is used", p.HolidayRule, calendar.Exact)
	}
	if p.RepaymentPeriod != "" && p.RepaymentPeriod != product.PeriodMonthly {
		add(false, "repayment period %q is scheduled monthly", p.RepaymentPeriod)
	}

	// The default term must pass the product's own bounds.
	probe := decimal.NewFromInt(1)
	if p.MinPrincipal != nil && p.MinPrincipal.GreaterThan(probe) {
		probe = *p.MinPrincipal
	}
	if err := schedule.CheckBounds(p, probe, p.DefaultTermMonths); err != nil {
		add(true, "default terms rejected: %v", err)
	}
	return issues
}
