package dto

import (
	"encoding/json"
	"loan-schedule/internal/domain/product"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductListResponse(t *testing.T) {
	minTerm, maxTerm := 6, 48
	minPrincipal := decimal.NewFromInt(10000)

	p := testProduct(product.MethodEqualPrincipal, "0")
	p.MinTermMonths = &minTerm
	p.MaxTermMonths = &maxTerm
	p.MinPrincipal = &minPrincipal

	raw, err := json.Marshal(NewProductListResponse([]product.LoanProduct{p}))
	require.NoError(t, err)

	var decoded struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Items, 1)

	item := decoded.Items[0]
	assert.Equal(t, "development", item["ProductKey"])
	assert.Equal(t, "Development Loan", item["LoanName"])
	assert.Equal(t, 0.01, item["MonthlyInterestRate"])
	assert.Equal(t, 12.0, item["DefaultTermMonths"])
	assert.Equal(t, 6.0, item["MinTermMonths"])
	assert.Equal(t, 48.0, item["MaxTermMonths"])
	assert.Equal(t, 10000.0, item["MinPrincipal"])
	assert.Nil(t, item["MaxPrincipal"])
	assert.Equal(t, 1.0, item["RoundingUnit"])
}

func TestNewProductListResponseEmpty(t *testing.T) {
	raw, err := json.Marshal(NewProductListResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(raw))
}
