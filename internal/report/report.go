// Package report renders the monthly sales report as a CSV document.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"stylematrix/backend/internal/aggregate"
	"stylematrix/backend/internal/domain"
	"stylematrix/backend/internal/gst"
)

// Monthly builds the CSV for one GST month: a header block, business
// summary, per-employee performance, then every transaction sorted by
// instant. Amounts are plain 2-decimal numbers; the currency is named once
// in the header.
func Monthly(businessName string, currencyCode string, year, month int, summary aggregate.Summary, txs []domain.Transaction) string {
	var b strings.Builder

	writeRow(&b, businessName+" - Monthly Sales Report")
	writeRow(&b, "Month", gst.MonthName(year, month))
	if currencyCode != "" {
		writeRow(&b, "Currency", currencyCode)
	}
	writeRow(&b, "Generated", gst.FormatTimestamp(gst.Now()))
	b.WriteString("\n")

	writeRow(&b, "SUMMARY")
	writeRow(&b, "Total Sales", amount(summary.TotalSales))
	writeRow(&b, "Cash Total", amount(summary.CashTotal))
	writeRow(&b, "Card Total", amount(summary.CardTotal))
	writeRow(&b, "Tips Total", amount(summary.TipsTotal))
	writeRow(&b, "Employee Tip Share (50%)", amount(summary.EmployeeTipsHalf))
	writeRow(&b, "Business Tip Share (50%)", amount(summary.BusinessTipsHalf))
	writeRow(&b, "Transaction Count", fmt.Sprintf("%d", summary.TransactionCount))
	b.WriteString("\n")

	writeRow(&b, "EMPLOYEE PERFORMANCE")
	writeRow(&b, "Employee", "Transactions", "Cash Sales", "Card Sales", "Tips")
	for _, e := range summary.Employees {
		writeRow(&b, e.Name, fmt.Sprintf("%d", e.TransactionCount),
			amount(e.CashTotal), amount(e.CardTotal), amount(e.TipsTotal))
	}
	b.WriteString("\n")

	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
	})

	writeRow(&b, "DETAILED TRANSACTIONS")
	writeRow(&b, "Date", "Time", "Employee", "Services", "Payment Method", "Subtotal", "Tip", "Total")
	for _, tx := range sorted {
		name := tx.EmployeeName
		if name == "" {
			name = domain.UnknownEmployeeName
		}
		writeRow(&b,
			gst.FormatDate(tx.OccurredAt),
			gst.FormatTime(tx.OccurredAt),
			name,
			serviceList(tx.Items),
			strings.ToUpper(tx.PaymentMethod),
			amount(tx.Subtotal),
			amount(tx.Tip),
			amount(tx.Total),
		)
	}

	return b.String()
}

// Filename names the export download, e.g.
// Monthly_Sales_Report_March_2026.csv.
func Filename(year, month int) string {
	t := gst.StartOfMonth(year, month).In(gst.Zone)
	return fmt.Sprintf("Monthly_Sales_Report_%s_%d.csv", t.Format("January"), t.Year())
}

func serviceList(items []domain.TransactionItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", item.ServiceName, item.Quantity))
	}
	return strings.Join(parts, "; ")
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func writeRow(b *strings.Builder, cells ...string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(cell))
	}
	b.WriteByte('\n')
}

func escape(cell string) string {
	if strings.ContainsAny(cell, ",\"\n") {
		return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return cell
}
