// Package aggregate computes sales summaries. Every report surface (daily
// view, monthly report, calendar detail, salary sheet, CSV export) runs the
// same reducer, so the figures can never drift apart between pages.
package aggregate

import (
	"github.com/shopspring/decimal"

	"stylematrix/backend/internal/domain"
	"stylematrix/backend/internal/gst"
)

type EmployeeStat struct {
	Name             string          `json:"name"`
	TransactionCount int             `json:"transaction_count"`
	CashTotal        decimal.Decimal `json:"cash_total"`
	CardTotal        decimal.Decimal `json:"card_total"`
	TipsTotal        decimal.Decimal `json:"tips_total"`
}

type Summary struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	CashTotal        decimal.Decimal `json:"cash_total"`
	CardTotal        decimal.Decimal `json:"card_total"`
	TipsTotal        decimal.Decimal `json:"tips_total"`
	EmployeeTipsHalf decimal.Decimal `json:"employee_tips_half"`
	BusinessTipsHalf decimal.Decimal `json:"business_tips_half"`
	TransactionCount int             `json:"transaction_count"`
	Employees        []EmployeeStat  `json:"employees"`
}

var half = decimal.NewFromFloat(0.5)

// Summarize reduces a transaction window in a single pass. Sales totals
// exclude tips. Each transaction lands in exactly one payment bucket.
// Employee buckets are keyed by display name, "Unknown" when the employee
// reference is absent, in first-appearance order.
func Summarize(txs []domain.Transaction) Summary {
	s := Summary{Employees: []EmployeeStat{}}
	index := map[string]int{}

	for _, tx := range txs {
		s.TransactionCount++
		s.TotalSales = s.TotalSales.Add(tx.Subtotal)
		s.TipsTotal = s.TipsTotal.Add(tx.Tip)

		name := tx.EmployeeName
		if name == "" {
			name = domain.UnknownEmployeeName
		}
		i, ok := index[name]
		if !ok {
			i = len(s.Employees)
			index[name] = i
			s.Employees = append(s.Employees, EmployeeStat{Name: name})
		}
		stat := &s.Employees[i]
		stat.TransactionCount++
		stat.TipsTotal = stat.TipsTotal.Add(tx.Tip)

		if tx.PaymentMethod == domain.PaymentMethodCard {
			s.CardTotal = s.CardTotal.Add(tx.Subtotal)
			stat.CardTotal = stat.CardTotal.Add(tx.Subtotal)
		} else {
			s.CashTotal = s.CashTotal.Add(tx.Subtotal)
			stat.CashTotal = stat.CashTotal.Add(tx.Subtotal)
		}
	}

	s.EmployeeTipsHalf = s.TipsTotal.Mul(half)
	s.BusinessTipsHalf = s.TipsTotal.Mul(half)
	return s
}

// CountByDay buckets transactions per GST calendar day, keyed YYYY-MM-DD.
func CountByDay(txs []domain.Transaction) map[string]int {
	counts := map[string]int{}
	for _, tx := range txs {
		counts[gst.DayKey(tx.OccurredAt)]++
	}
	return counts
}

// Rounded returns a copy with every amount rounded half-up to 2 places,
// for serialization at the response edge.
func (s Summary) Rounded() Summary {
	out := s
	out.TotalSales = s.TotalSales.Round(2)
	out.CashTotal = s.CashTotal.Round(2)
	out.CardTotal = s.CardTotal.Round(2)
	out.TipsTotal = s.TipsTotal.Round(2)
	out.EmployeeTipsHalf = s.EmployeeTipsHalf.Round(2)
	out.BusinessTipsHalf = s.BusinessTipsHalf.Round(2)
	out.Employees = make([]EmployeeStat, len(s.Employees))
	for i, e := range s.Employees {
		e.CashTotal = e.CashTotal.Round(2)
		e.CardTotal = e.CardTotal.Round(2)
		e.TipsTotal = e.TipsTotal.Round(2)
		out.Employees[i] = e
	}
	return out
}
