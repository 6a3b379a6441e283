package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestSaleCostOfGoods(t *testing.T) {
	sale := Sale{Items: []SaleItem{
		{Quantity: d("3"), UnitCost: d("50.00")},
		{Quantity: d("2"), UnitCost: d("25.50")},
		{Quantity: d("1"), UnitCost: d("0")},
	}}
	assert.True(t, sale.CostOfGoods().Equal(d("201.00")))
}

func TestReceiptTotal(t *testing.T) {
	receipt := Receipt{Items: []ReceiptItem{
		{Method: "Cash", Amount: d("400.00")},
		{Method: "Bank", Amount: d("600.00")},
	}}
	assert.True(t, receipt.Total().Equal(d("1000.00")))
}

func TestCheckPostDated(t *testing.T) {
	issue := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	check := Check{IssueDate: issue, DueDate: issue}
	assert.False(t, check.PostDated())

	check.DueDate = issue.AddDate(0, 2, 0)
	assert.True(t, check.PostDated())
}

func TestPeriodCovers(t *testing.T) {
	period := Period{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, period.Covers(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Covers(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, period.Covers(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDocRefIsZero(t *testing.T) {
	assert.True(t, DocRef{}.IsZero())
	assert.False(t, DocRef{Type: DocTypeSale}.IsZero())
}
