package schedule

import (
	"context"
	"errors"
	"loan-schedule/internal/domain/calendar"
	"loan-schedule/internal/domain/product"
	"loan-schedule/internal/event"
	"loan-schedule/internal/infrastructure/monitoring"
	"loan-schedule/internal/pkg/apperrors"
	"log/slog"
	"time"
)

type ScheduleService interface {
	ComputeSchedule(ctx context.Context, req Request) (*Schedule, error)
}

type scheduleServiceImpl struct {
	products  product.Repository
	publisher event.Publisher
	holidays  calendar.HolidayFunc
	logger    *slog.Logger
}

// NewScheduleService wires the pure engine to a product catalog. A nil
// publisher disables quote events and a nil holidays func skips weekends only.
func NewScheduleService(products product.Repository, publisher event.Publisher, holidays calendar.HolidayFunc, logger *slog.Logger) ScheduleService {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	return &scheduleServiceImpl{
		products:  products,
		publisher: publisher,
		holidays:  holidays,
		logger:    logger.With("component", "ScheduleService"),
	}
}

func (s *scheduleServiceImpl) ComputeSchedule(ctx context.Context, req Request) (*Schedule, error) {
	start := time.Now()
	logCtx := s.logger.With("productKey", req.ProductKey)

	p, err := product.ResolveActive(ctx, s.products, req.ProductKey, logCtx)
	if err != nil {
		monitoring.RecordScheduleComputation("unknown", outcomeOf(err), time.Since(start))
		return nil, err
	}

	method := GeneratorFor(p.InterestMethod).Method()
	if method != p.InterestMethod {
		logCtx.WarnContext(ctx, "Unknown interest method, using fallback",
			"interestMethod", p.InterestMethod, "fallback", method)
	}

	sched, err := Compute(*p, req, WithHolidays(s.holidays))
	monitoring.RecordScheduleComputation(string(method), outcomeOf(err), time.Since(start))
	if err != nil {
		var be *apperrors.BoundsError
		if errors.As(err, &be) {
			logCtx.InfoContext(ctx, "Schedule request out of bounds", "rule", be.Rule, "value", be.Value.String())
		} else {
			logCtx.ErrorContext(ctx, "Failed to compute schedule", slog.Any("error", err))
		}
		return nil, err
	}

	logCtx.InfoContext(ctx, "Computed repayment schedule",
		"method", method,
		"termMonths", sched.Summary.TermMonths,
		"principal", sched.Summary.Principal.String(),
		"totalInterest", sched.Summary.TotalInterest.String(),
	)

	if err := s.publisher.PublishScheduleComputed(ctx, newComputedEvent(sched.Summary)); err != nil {
		logCtx.WarnContext(ctx, "Failed to publish schedule computed event", slog.Any("error", err))
	}
	return sched, nil
}

func newComputedEvent(s Summary) event.ScheduleComputedEvent {
	installment := s.Installment
	if installment == nil {
		installment = s.MonthlyPrincipal
	}
	e := event.ScheduleComputedEvent{
		ProductKey:    s.ProductKey,
		Method:        string(s.Method),
		Principal:     s.Principal,
		TermMonths:    s.TermMonths,
		TotalInterest: s.TotalInterest,
		TotalPayable:  s.TotalPayable,
		FirstDueDate:  s.FirstDueDate.Format(calendar.DateLayout),
		MaturityDate:  s.MaturityDate.Format(calendar.DateLayout),
		ComputedAt:    time.Now().UTC(),
	}
	if installment != nil {
		e.Installment = *installment
	}
	return e
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, apperrors.ErrInvalidProduct):
		return "invalid_product"
	case errors.Is(err, apperrors.ErrInvalidPrincipal):
		return "invalid_principal"
	case errors.Is(err, apperrors.ErrInvalidTerm):
		return "invalid_term"
	default:
		return "error"
	}
}
