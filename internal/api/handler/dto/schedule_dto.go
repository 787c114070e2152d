package dto

import (
	"loan-schedule/internal/domain/calendar"
	"loan-schedule/internal/domain/schedule"
	"loan-schedule/internal/pkg/apperrors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CalcRequest accepts principal as a JSON number or a decimal string.
type CalcRequest struct {
	ProductKey string          `json:"product_key"`
	Principal  decimal.Decimal `json:"principal"`
	StartDate  string          `json:"start_date,omitempty"`
	TermMonths *int            `json:"term_months,omitempty"`
}

func (r *CalcRequest) Validate() error {
	if strings.TrimSpace(r.ProductKey) == "" {
		return apperrors.NewValidationError("product_key", "product_key is required")
	}
	return nil
}

// ToDomain builds the engine request. An empty start date means today.
func (r *CalcRequest) ToDomain(today time.Time) (schedule.Request, error) {
	start := calendar.Midnight(today)
	if s := strings.TrimSpace(r.StartDate); s != "" {
		parsed, err := calendar.ParseDate(s)
		if err != nil {
			return schedule.Request{}, apperrors.NewValidationError("start_date", err.Error())
		}
		start = parsed
	}
	return schedule.Request{
		ProductKey: strings.TrimSpace(r.ProductKey),
		Principal:  r.Principal,
		StartDate:  start,
		TermMonths: r.TermMonths,
	}, nil
}

type SummaryResponse struct {
	ProductKey          string   `json:"ProductKey"`
	LoanName            string   `json:"LoanName"`
	InterestMethod      string   `json:"InterestMethod"`
	MonthlyInterestRate float64  `json:"MonthlyInterestRate"`
	TermMonths          int      `json:"TermMonths"`
	Principal           float64  `json:"Principal"`
	RoundingUnit        float64  `json:"RoundingUnit"`
	MonthlyPrincipal    *float64 `json:"MonthlyPrincipal,omitempty"`
	EMI                 *float64 `json:"EMI,omitempty"`
	FirstMonthInterest  float64  `json:"FirstMonthInterest"`
	TotalInterest       float64  `json:"TotalInterest"`
	TotalPrincipal      float64  `json:"TotalPrincipal"`
	TotalPayable        float64  `json:"TotalPayable"`
	FirstDueDate        string   `json:"FirstDueDate"`
	MaturityDate        string   `json:"MaturityDate"`
}

type RowResponse struct {
	Period    int     `json:"period"`
	Date      string  `json:"date"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Total     float64 `json:"total"`
	Balance   float64 `json:"balance"`
}

type ScheduleResponse struct {
	Summary  SummaryResponse `json:"summary"`
	Schedule []RowResponse   `json:"schedule"`
}

func NewScheduleResponse(s *schedule.Schedule) ScheduleResponse {
	sum := s.Summary
	resp := ScheduleResponse{
		Summary: SummaryResponse{
			ProductKey:          sum.ProductKey,
			LoanName:            sum.ProductName,
			InterestMethod:      string(sum.Method),
			MonthlyInterestRate: sum.MonthlyRate.InexactFloat64(),
			TermMonths:          sum.TermMonths,
			Principal:           sum.Principal.InexactFloat64(),
			RoundingUnit:        sum.RoundingUnit.InexactFloat64(),
			MonthlyPrincipal:    floatOrNil(sum.MonthlyPrincipal),
			EMI:                 floatOrNil(sum.Installment),
			FirstMonthInterest:  sum.FirstPeriodInterest.InexactFloat64(),
			TotalInterest:       sum.TotalInterest.InexactFloat64(),
			TotalPrincipal:      sum.TotalPrincipal.InexactFloat64(),
			TotalPayable:        sum.TotalPayable.InexactFloat64(),
			FirstDueDate:        formatDate(sum.FirstDueDate),
			MaturityDate:        formatDate(sum.MaturityDate),
		},
		Schedule: make([]RowResponse, 0, len(s.Rows)),
	}
	for _, r := range s.Rows {
		resp.Schedule = append(resp.Schedule, RowResponse{
			Period:    r.Period,
			Date:      formatDate(r.DueDate),
			Principal: r.Principal.InexactFloat64(),
			Interest:  r.Interest.InexactFloat64(),
			Total:     r.Total.InexactFloat64(),
			Balance:   r.Balance.InexactFloat64(),
		})
	}
	return resp
}

// CSVHeader matches the calculator's export.
var CSVHeader = []string{"Period", "Date", "Principal", "Interest", "Total", "Balance"}

// CSVRecords renders rows with as many decimals as the rounding unit carries.
func CSVRecords(s *schedule.Schedule) [][]string {
	places := DisplayPlaces(s.Summary.RoundingUnit)
	records := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		records = append(records, []string{
			strconv.Itoa(r.Period),
			formatDate(r.DueDate),
			r.Principal.StringFixed(places),
			r.Interest.StringFixed(places),
			r.Total.StringFixed(places),
			r.Balance.StringFixed(places),
		})
	}
	return records
}

// DisplayPlaces is the number of decimals in unit, e.g. 2 for 0.01 and 0 for 100.
func DisplayPlaces(unit decimal.Decimal) int32 {
	if !unit.IsPositive() {
		return 2
	}
	places := int32(0)
	for !unit.Equal(unit.Truncate(places)) {
		places++
	}
	return places
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(calendar.DateLayout)
}
