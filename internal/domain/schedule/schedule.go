// Package schedule computes reducing-balance repayment schedules for a loan
// product. Compute and the generators are pure functions of their inputs and
// are safe for concurrent use; Service adds the catalog lookup around them.
package schedule

import (
	"loan-schedule/internal/domain/product"
	"time"

	"github.com/shopspring/decimal"
)

// Request describes one schedule computation. A nil or non-positive
// TermMonths falls back to the product default.
type Request struct {
	ProductKey string
	Principal  decimal.Decimal
	StartDate  time.Time
	TermMonths *int
}

// Period is one raw generator step. Nothing in it is rounded.
type Period struct {
	Index          int
	DueDate        time.Time
	OpeningBalance decimal.Decimal
	Principal      decimal.Decimal
	Interest       decimal.Decimal
	Total          decimal.Decimal
	Balance        decimal.Decimal
}

// Row is one displayed schedule line, rounded to the product unit.
type Row struct {
	Period    int
	DueDate   time.Time
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Total     decimal.Decimal
	Balance   decimal.Decimal
}

// Summary echoes the inputs and carries totals summed from the rounded rows.
// MonthlyPrincipal is set for equal-principal schedules, Installment for EMI.
type Summary struct {
	ProductKey          string
	ProductName         string
	Method              product.InterestMethod
	MonthlyRate         decimal.Decimal
	TermMonths          int
	Principal           decimal.Decimal
	RoundingUnit        decimal.Decimal
	MonthlyPrincipal    *decimal.Decimal
	Installment         *decimal.Decimal
	FirstPeriodInterest decimal.Decimal
	TotalInterest       decimal.Decimal
	TotalPrincipal      decimal.Decimal
	TotalPayable        decimal.Decimal
	FirstDueDate        time.Time
	MaturityDate        time.Time
}

type Schedule struct {
	Summary Summary
	Rows    []Row
}
