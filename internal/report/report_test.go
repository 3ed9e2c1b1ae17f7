package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stylematrix/backend/internal/aggregate"
	"stylematrix/backend/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		{
			EmployeeName:  "Amal",
			PaymentMethod: domain.PaymentMethodCard,
			Subtotal:      dec("200"),
			Tip:           dec("0"),
			Total:         dec("200"),
			OccurredAt:    time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC),
			Items: []domain.TransactionItem{
				{ServiceName: "Haircut", Quantity: 1},
				{ServiceName: "Blow Dry", Quantity: 2},
			},
		},
		{
			EmployeeName:  "Zara",
			PaymentMethod: domain.PaymentMethodCash,
			Subtotal:      dec("100"),
			Tip:           dec("10"),
			Total:         dec("110"),
			OccurredAt:    time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
			Items: []domain.TransactionItem{
				{ServiceName: "Manicure", Quantity: 1},
			},
		},
	}
}

func TestMonthlySections(t *testing.T) {
	txs := sampleTransactions()
	csv := Monthly("Style Matrix", "AED", 2026, 3, aggregate.Summarize(txs), txs)

	for _, want := range []string{
		"Style Matrix - Monthly Sales Report\n",
		"Month,March 2026\n",
		"Currency,AED\n",
		"Generated,",
		"SUMMARY\n",
		"Total Sales,300.00\n",
		"Cash Total,100.00\n",
		"Card Total,200.00\n",
		"Tips Total,10.00\n",
		"Employee Tip Share (50%),5.00\n",
		"Business Tip Share (50%),5.00\n",
		"Transaction Count,2\n",
		"EMPLOYEE PERFORMANCE\n",
		"Amal,1,0.00,200.00,0.00\n",
		"Zara,1,100.00,0.00,10.00\n",
		"DETAILED TRANSACTIONS\n",
	} {
		if !strings.Contains(csv, want) {
			t.Errorf("missing %q in report:\n%s", want, csv)
		}
	}
}

func TestMonthlyEmptyMonth(t *testing.T) {
	csv := Monthly("Style Matrix", "AED", 2026, 3, aggregate.Summarize(nil), nil)

	// Every section still appears, with zeroed summary values and no data
	// rows under the column headers.
	for _, want := range []string{
		"Style Matrix - Monthly Sales Report\n",
		"Month,March 2026\n",
		"SUMMARY\n",
		"Total Sales,0.00\n",
		"Cash Total,0.00\n",
		"Card Total,0.00\n",
		"Tips Total,0.00\n",
		"Transaction Count,0\n",
		"EMPLOYEE PERFORMANCE\n",
		"Employee,Transactions,Cash Sales,Card Sales,Tips\n",
		"DETAILED TRANSACTIONS\n",
	} {
		if !strings.Contains(csv, want) {
			t.Errorf("missing %q in empty report:\n%s", want, csv)
		}
	}

	if !strings.HasSuffix(csv, "Date,Time,Employee,Services,Payment Method,Subtotal,Tip,Total\n") {
		t.Fatalf("expected report to end at the detail header, got:\n%s", csv)
	}
}

func TestMonthlyDetailRowsSortedAscending(t *testing.T) {
	txs := sampleTransactions()
	csv := Monthly("Style Matrix", "AED", 2026, 3, aggregate.Summarize(txs), txs)

	zara := strings.Index(csv, "05/03/2026")
	amal := strings.Index(csv, "20/03/2026")
	if zara == -1 || amal == -1 {
		t.Fatalf("detail rows missing:\n%s", csv)
	}
	if zara > amal {
		t.Fatal("detail rows not sorted ascending by instant")
	}
}

func TestMonthlyDetailRowFormat(t *testing.T) {
	txs := sampleTransactions()
	csv := Monthly("Style Matrix", "AED", 2026, 3, aggregate.Summarize(txs), txs)

	// Multi-service cell is semicolon-joined and quoted, method upper-cased.
	want := `20/03/2026,2:00 PM,Amal,"Haircut (x1); Blow Dry (x2)",CARD,200.00,0.00,200.00`
	if !strings.Contains(csv, want) {
		t.Fatalf("missing detail row %q in:\n%s", want, csv)
	}
}

func TestEscapeQuotes(t *testing.T) {
	txs := []domain.Transaction{{
		EmployeeName:  `Mo "Scissors" K`,
		PaymentMethod: domain.PaymentMethodCash,
		Subtotal:      dec("50"),
		Tip:           dec("0"),
		Total:         dec("50"),
		OccurredAt:    time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}}
	csv := Monthly("Style Matrix", "AED", 2026, 3, aggregate.Summarize(txs), txs)
	if !strings.Contains(csv, `"Mo ""Scissors"" K"`) {
		t.Fatalf("quotes not escaped:\n%s", csv)
	}
}

func TestUnknownEmployeeInDetail(t *testing.T) {
	txs := []domain.Transaction{{
		PaymentMethod: domain.PaymentMethodCash,
		Subtotal:      dec("30"),
		Tip:           dec("0"),
		Total:         dec("30"),
		OccurredAt:    time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}}
	csv := Monthly("Style Matrix", "AED", 2026, 3, aggregate.Summarize(txs), txs)
	if !strings.Contains(csv, ",Unknown,") {
		t.Fatalf("unknown employee not labeled:\n%s", csv)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(2026, 3); got != "Monthly_Sales_Report_March_2026.csv" {
		t.Fatalf("Filename = %q", got)
	}
	// Month 13 rolls into January of the next year.
	if got := Filename(2026, 13); got != "Monthly_Sales_Report_January_2027.csv" {
		t.Fatalf("Filename(13) = %q", got)
	}
}
