package event

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Publisher announces computed schedules. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishScheduleComputed(ctx context.Context, event ScheduleComputedEvent) error
}

// ScheduleComputedEvent is a quote notification. Installment is the rounded
// EMI installment, or the rounded monthly principal for equal-principal loans.
type ScheduleComputedEvent struct {
	ProductKey    string          `json:"productKey"`
	Method        string          `json:"method"`
	Principal     decimal.Decimal `json:"principal"`
	TermMonths    int             `json:"termMonths"`
	Installment   decimal.Decimal `json:"installment"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalPayable  decimal.Decimal `json:"totalPayable"`
	FirstDueDate  string          `json:"firstDueDate"`
	MaturityDate  string          `json:"maturityDate"`
	ComputedAt    time.Time       `json:"computedAt"`
}

// NoopPublisher drops every event. It is used when RabbitMQ is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishScheduleComputed(context.Context, ScheduleComputedEvent) error {
	return nil
}
