// Package payroll turns a monthly sales summary into percentage-based
// employee payouts with the tip pool split evenly between staff and the
// business.
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stylematrix/backend/internal/aggregate"
)

var oneHundred = decimal.NewFromInt(100)

// ComputePayout returns totalSales scaled by a whole-month percentage.
// Percentages outside 0..100 are rejected.
func ComputePayout(totalSales decimal.Decimal, pct float64) (decimal.Decimal, error) {
	if pct < 0 || pct > 100 {
		return decimal.Zero, fmt.Errorf("percentage must be between 0 and 100, got %g", pct)
	}
	return totalSales.Mul(decimal.NewFromFloat(pct)).Div(oneHundred), nil
}

// Row is one employee line on the salary sheet. A row with HasPercentage
// false is empty: it contributes nothing to TotalPaid.
type Row struct {
	Key           string          `json:"key"`
	EmployeeName  string          `json:"employee_name"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TipsHalf      decimal.Decimal `json:"tips_half"`
	HasPercentage bool            `json:"has_percentage"`
	Percentage    float64         `json:"percentage"`
	Payout        decimal.Decimal `json:"payout"`
}

type BusinessSummary struct {
	MonthTotal       decimal.Decimal `json:"month_total"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	EmployeeTipsHalf decimal.Decimal `json:"employee_tips_half"`
	BusinessTipsHalf decimal.Decimal `json:"business_tips_half"`
	TotalRemaining   decimal.Decimal `json:"total_remaining"`
}

// Sheet is a salary worksheet for one month. Rows are keyed by employee id,
// or by "unknown-<name>" for sales that no longer resolve to an employee.
type Sheet struct {
	Rows     []Row           `json:"rows"`
	Business BusinessSummary `json:"business"`
}

// NewSheet seeds one row per employee bucket of the month's summary. The
// per-row TipsHalf is the bucket's half share of its own tips.
func NewSheet(summary aggregate.Summary, keyFor func(name string) string) *Sheet {
	s := &Sheet{Rows: []Row{}}
	halfFactor := decimal.NewFromFloat(0.5)
	for _, e := range summary.Employees {
		sales := e.CashTotal.Add(e.CardTotal)
		s.Rows = append(s.Rows, Row{
			Key:          keyFor(e.Name),
			EmployeeName: e.Name,
			TotalSales:   sales,
			TipsHalf:     e.TipsTotal.Mul(halfFactor),
		})
	}
	s.Business = BusinessSummary{
		MonthTotal:       summary.TotalSales,
		EmployeeTipsHalf: summary.EmployeeTipsHalf,
		BusinessTipsHalf: summary.BusinessTipsHalf,
	}
	s.recompute()
	return s
}

// SetPercentage applies a percentage edit to one row and recomputes the
// entire business summary. A rejected value resets the row to empty and
// still triggers the recompute, then reports the validation error.
func (s *Sheet) SetPercentage(key string, pct float64) error {
	row := s.row(key)
	if row == nil {
		return fmt.Errorf("no salary row for key %q", key)
	}
	payout, err := ComputePayout(row.TotalSales, pct)
	if err != nil {
		row.HasPercentage = false
		row.Percentage = 0
		row.Payout = decimal.Zero
		s.recompute()
		return err
	}
	row.HasPercentage = true
	row.Percentage = pct
	row.Payout = payout
	s.recompute()
	return nil
}

func (s *Sheet) row(key string) *Row {
	for i := range s.Rows {
		if s.Rows[i].Key == key {
			return &s.Rows[i]
		}
	}
	return nil
}

func (s *Sheet) recompute() {
	paid := decimal.Zero
	for _, r := range s.Rows {
		if r.HasPercentage {
			paid = paid.Add(r.Payout)
		}
	}
	s.Business.TotalPaid = paid
	// May go negative; reported as-is.
	s.Business.TotalRemaining = s.Business.MonthTotal.
		Sub(paid).
		Add(s.Business.BusinessTipsHalf)
}

// Rounded returns a copy with every amount rounded to 2 places for the
// response edge.
func (s *Sheet) Rounded() Sheet {
	out := Sheet{Rows: make([]Row, len(s.Rows))}
	for i, r := range s.Rows {
		r.TotalSales = r.TotalSales.Round(2)
		r.TipsHalf = r.TipsHalf.Round(2)
		r.Payout = r.Payout.Round(2)
		out.Rows[i] = r
	}
	out.Business = BusinessSummary{
		MonthTotal:       s.Business.MonthTotal.Round(2),
		TotalPaid:        s.Business.TotalPaid.Round(2),
		EmployeeTipsHalf: s.Business.EmployeeTipsHalf.Round(2),
		BusinessTipsHalf: s.Business.BusinessTipsHalf.Round(2),
		TotalRemaining:   s.Business.TotalRemaining.Round(2),
	}
	return out
}
