package dto

import (
	"loan-schedule/internal/domain/product"

	"github.com/shopspring/decimal"
)

// ProductResponse keeps the field names the calculator client reads.
type ProductResponse struct {
	ProductKey          string   `json:"ProductKey"`
	LoanName            string   `json:"LoanName"`
	InterestMethod      string   `json:"InterestMethod"`
	MonthlyInterestRate float64  `json:"MonthlyInterestRate"`
	DefaultTermMonths   int      `json:"DefaultTermMonths"`
	MinTermMonths       *int     `json:"MinTermMonths"`
	MaxTermMonths       *int     `json:"MaxTermMonths"`
	MinPrincipal        *float64 `json:"MinPrincipal"`
	MaxPrincipal        *float64 `json:"MaxPrincipal"`
	RepaymentPeriod     string   `json:"RepaymentPeriod"`
	FirstDueRule        string   `json:"FirstDueRule"`
	HolidayRule         string   `json:"HolidayRule"`
	RoundingUnit        float64  `json:"RoundingUnit"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

func NewProductResponse(p product.LoanProduct) ProductResponse {
	return ProductResponse{
		ProductKey:          p.Key,
		LoanName:            p.Name,
		InterestMethod:      string(p.InterestMethod),
		MonthlyInterestRate: p.MonthlyRate.InexactFloat64(),
		DefaultTermMonths:   p.DefaultTermMonths,
		MinTermMonths:       p.MinTermMonths,
		MaxTermMonths:       p.MaxTermMonths,
		MinPrincipal:        floatOrNil(p.MinPrincipal),
		MaxPrincipal:        floatOrNil(p.MaxPrincipal),
		RepaymentPeriod:     string(p.RepaymentPeriod),
		FirstDueRule:        string(p.FirstDueRule),
		HolidayRule:         string(p.HolidayRule),
		RoundingUnit:        p.EffectiveRoundingUnit().InexactFloat64(),
	}
}

func NewProductListResponse(products []product.LoanProduct) ProductListResponse {
	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, NewProductResponse(p))
	}
	return ProductListResponse{Items: items}
}

func floatOrNil(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
