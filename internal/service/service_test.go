package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stylematrix/backend/internal/domain"
	"stylematrix/backend/internal/store"
	"stylematrix/backend/internal/store/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	t.Setenv("SEED_ADMIN_PASSWORD", "admin123")
	t.Setenv("SEED_EMPLOYEE_PASSWORD", "employee123")

	return New(memory.NewSeeded(), nil, time.Minute, "Test Salon", "AED")
}

func adminCtx() context.Context {
	return WithActor(context.Background(), domain.Actor{
		Email: "admin@test.local",
		Role:  domain.RoleAdmin,
	})
}

func employeeCtx() context.Context {
	return WithActor(context.Background(), domain.Actor{
		Email: "staff@test.local",
		Role:  domain.RoleEmployee,
	})
}

func seededEmployee(t *testing.T, svc *Service) domain.Employee {
	t.Helper()
	employees, err := svc.ListEmployees(adminCtx(), false)
	if err != nil {
		t.Fatalf("list employees: %v", err)
	}
	if len(employees) == 0 {
		t.Fatalf("expected seeded employees")
	}
	return employees[0]
}

func seededService(t *testing.T, svc *Service) domain.Service {
	t.Helper()
	services, err := svc.ListServices(employeeCtx())
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(services) == 0 {
		t.Fatalf("expected seeded services")
	}
	return services[0]
}

// recordingCache tracks catalog cache interactions for assertions.
type recordingCache struct {
	entries     map[string][]domain.Service
	sets        int
	invalidates int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string][]domain.Service)}
}

func (c *recordingCache) Get(_ context.Context, key string) ([]domain.Service, bool, error) {
	services, ok := c.entries[key]
	return services, ok, nil
}

func (c *recordingCache) Set(_ context.Context, key string, services []domain.Service, _ time.Duration) error {
	c.sets++
	c.entries[key] = services
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, key string) error {
	c.invalidates++
	delete(c.entries, key)
	return nil
}

func TestCreateEmployeeRequiresAdmin(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateEmployee(employeeCtx(), domain.EmployeeCreateRequest{Name: "New Hire"})
	if err == nil || !strings.Contains(err.Error(), "admin role required") {
		t.Fatalf("expected admin requirement error, got %v", err)
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name string
		req  domain.EmployeeCreateRequest
	}{
		{"empty name", domain.EmployeeCreateRequest{Name: "   "}},
		{"short phone", domain.EmployeeCreateRequest{Name: "Ok", Phone: "12345"}},
		{"bad email", domain.EmployeeCreateRequest{Name: "Ok", Email: "not-an-email"}},
		{"email missing local part", domain.EmployeeCreateRequest{Name: "Ok", Email: "@salon.test"}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateEmployee(adminCtx(), tc.req); !errors.Is(err, store.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCreateEmployeeOptionalContactsAllowed(t *testing.T) {
	svc := newTestService(t)

	employee, err := svc.CreateEmployee(adminCtx(), domain.EmployeeCreateRequest{Name: "Contact Free"})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if !employee.Active {
		t.Fatalf("expected new employee to be active")
	}
	if employee.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestUpdateEmployeePartial(t *testing.T) {
	svc := newTestService(t)
	existing := seededEmployee(t, svc)

	phone := "0509998877"
	updated, err := svc.UpdateEmployee(adminCtx(), existing.ID, domain.EmployeeUpdateRequest{Phone: &phone})
	if err != nil {
		t.Fatalf("update employee: %v", err)
	}
	if updated.Phone != phone {
		t.Fatalf("expected phone %q, got %q", phone, updated.Phone)
	}
	if updated.Name != existing.Name {
		t.Fatalf("expected name unchanged, got %q", updated.Name)
	}
}

func TestSetEmployeeActiveTogglesListing(t *testing.T) {
	svc := newTestService(t)
	existing := seededEmployee(t, svc)

	if _, err := svc.SetEmployeeActive(adminCtx(), existing.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := svc.ListEmployees(adminCtx(), true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	for _, e := range active {
		if e.ID == existing.ID {
			t.Fatalf("deactivated employee still listed as active")
		}
	}

	all, err := svc.ListEmployees(adminCtx(), false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	found := false
	for _, e := range all {
		if e.ID == existing.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("deactivated employee missing from full list")
	}
}

func TestListServicesUsesCatalogCache(t *testing.T) {
	t.Setenv("SEED_ADMIN_PASSWORD", "admin123")
	t.Setenv("SEED_EMPLOYEE_PASSWORD", "employee123")

	catalog := newRecordingCache()
	svc := New(memory.NewSeeded(), catalog, time.Minute, "Test Salon", "AED")

	first, err := svc.ListServices(employeeCtx())
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	if catalog.sets != 1 {
		t.Fatalf("expected cache fill on miss, sets=%d", catalog.sets)
	}

	second, err := svc.ListServices(employeeCtx())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if catalog.sets != 1 {
		t.Fatalf("expected second list served from cache, sets=%d", catalog.sets)
	}
	if len(first) != len(second) {
		t.Fatalf("cache returned different catalog size: %d vs %d", len(first), len(second))
	}
}

func TestServiceWritesInvalidateCatalogCache(t *testing.T) {
	t.Setenv("SEED_ADMIN_PASSWORD", "admin123")
	t.Setenv("SEED_EMPLOYEE_PASSWORD", "employee123")

	catalog := newRecordingCache()
	svc := New(memory.NewSeeded(), catalog, time.Minute, "Test Salon", "AED")

	if _, err := svc.ListServices(employeeCtx()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	created, err := svc.CreateService(adminCtx(), domain.ServiceCreateRequest{
		Name:            "Keratin Treatment",
		Price:           decimal.NewFromInt(300),
		DurationMinutes: 90,
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if catalog.invalidates != 1 {
		t.Fatalf("expected invalidate after create, got %d", catalog.invalidates)
	}

	after, err := svc.ListServices(employeeCtx())
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	found := false
	for _, s := range after {
		if s.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected new service in refreshed catalog")
	}
}

func TestCreateServiceValidation(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.CreateService(adminCtx(), domain.ServiceCreateRequest{Name: ""}); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := svc.CreateService(adminCtx(), domain.ServiceCreateRequest{
		Name:  "Negative",
		Price: decimal.NewFromInt(-5),
	}); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative price, got %v", err)
	}
}

func TestCreateTransactionRecomputesAmounts(t *testing.T) {
	svc := newTestService(t)
	employee := seededEmployee(t, svc)
	catalog := seededService(t, svc)

	tx, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		EmployeeID:    employee.ID,
		PaymentMethod: domain.PaymentMethodCard,
		Tip:           decimal.NewFromInt(15),
		Items: []domain.TransactionItemInput{
			{ServiceID: catalog.ID, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	wantSubtotal := catalog.Price.Mul(decimal.NewFromInt(3))
	if !tx.Subtotal.Equal(wantSubtotal) {
		t.Fatalf("subtotal %s, want %s", tx.Subtotal, wantSubtotal)
	}
	if !tx.Total.Equal(wantSubtotal.Add(decimal.NewFromInt(15))) {
		t.Fatalf("total %s, want %s", tx.Total, wantSubtotal.Add(decimal.NewFromInt(15)))
	}
	if tx.EmployeeName != employee.Name {
		t.Fatalf("employee name %q, want %q", tx.EmployeeName, employee.Name)
	}
	if len(tx.Items) != 1 || !tx.Items[0].UnitPrice.Equal(catalog.Price) {
		t.Fatalf("expected snapshotted unit price %s, got %+v", catalog.Price, tx.Items)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	svc := newTestService(t)
	catalog := seededService(t, svc)

	cases := []struct {
		name string
		req  domain.TransactionCreateRequest
	}{
		{"bad method", domain.TransactionCreateRequest{
			PaymentMethod: "crypto",
			Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
		}},
		{"negative tip", domain.TransactionCreateRequest{
			PaymentMethod: domain.PaymentMethodCash,
			Tip:           decimal.NewFromInt(-1),
			Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
		}},
		{"no items", domain.TransactionCreateRequest{
			PaymentMethod: domain.PaymentMethodCash,
		}},
		{"zero quantity", domain.TransactionCreateRequest{
			PaymentMethod: domain.PaymentMethodCash,
			Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 0}},
		}},
		{"unknown service", domain.TransactionCreateRequest{
			PaymentMethod: domain.PaymentMethodCash,
			Items:         []domain.TransactionItemInput{{ServiceID: "svc-missing", Quantity: 1}},
		}},
		{"unknown employee", domain.TransactionCreateRequest{
			EmployeeID:    "emp-missing",
			PaymentMethod: domain.PaymentMethodCash,
			Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
		}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateTransaction(employeeCtx(), tc.req); !errors.Is(err, store.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCreateTransactionRejectsInactiveService(t *testing.T) {
	svc := newTestService(t)
	catalog := seededService(t, svc)

	inactive := false
	if _, err := svc.UpdateService(adminCtx(), catalog.ID, domain.ServiceUpdateRequest{Active: &inactive}); err != nil {
		t.Fatalf("deactivate service: %v", err)
	}

	_, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		PaymentMethod: domain.PaymentMethodCash,
		Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
	})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inactive service, got %v", err)
	}
}

func TestTransactionsForDayUsesGulfDayBounds(t *testing.T) {
	svc := newTestService(t)
	catalog := seededService(t, svc)

	// 22:30 UTC on March 19 is already 02:30 on March 20 in UTC+4.
	late := time.Date(2026, 3, 19, 22, 30, 0, 0, time.UTC)
	if _, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		PaymentMethod: domain.PaymentMethodCash,
		Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
		OccurredAt:    &late,
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	onNineteenth, err := svc.TransactionsForDay(employeeCtx(), "2026-03-19")
	if err != nil {
		t.Fatalf("list 19th: %v", err)
	}
	if len(onNineteenth) != 0 {
		t.Fatalf("expected no transactions on the 19th, got %d", len(onNineteenth))
	}

	onTwentieth, err := svc.TransactionsForDay(employeeCtx(), "2026-03-20")
	if err != nil {
		t.Fatalf("list 20th: %v", err)
	}
	if len(onTwentieth) != 1 {
		t.Fatalf("expected 1 transaction on the 20th, got %d", len(onTwentieth))
	}
}

func TestDeleteTransactionRequiresAdmin(t *testing.T) {
	svc := newTestService(t)
	catalog := seededService(t, svc)

	tx, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		PaymentMethod: domain.PaymentMethodCash,
		Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if err := svc.DeleteTransaction(employeeCtx(), tx.ID); err == nil {
		t.Fatalf("expected employee delete to be rejected")
	}
	if err := svc.DeleteTransaction(adminCtx(), tx.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if err := svc.DeleteTransaction(adminCtx(), tx.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestTransactionByIDReturnsItems(t *testing.T) {
	svc := newTestService(t)
	catalog := seededService(t, svc)

	created, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		PaymentMethod: domain.PaymentMethodCard,
		Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	got, err := svc.TransactionByID(employeeCtx(), created.ID)
	if err != nil {
		t.Fatalf("transaction by id: %v", err)
	}
	if got.ID != created.ID || len(got.Items) != 1 {
		t.Fatalf("unexpected transaction %+v", got)
	}
	if got.Items[0].ServiceName != catalog.Name {
		t.Fatalf("service name %q, want %q", got.Items[0].ServiceName, catalog.Name)
	}

	if _, err := svc.TransactionByID(employeeCtx(), "tx-missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.TransactionByID(employeeCtx(), ""); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}
}

func TestMonthlyReportSplitsTips(t *testing.T) {
	svc := newTestService(t)
	employee := seededEmployee(t, svc)
	catalog := seededService(t, svc)

	occurred := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	if _, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		EmployeeID:    employee.ID,
		PaymentMethod: domain.PaymentMethodCash,
		Tip:           decimal.NewFromInt(30),
		Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
		OccurredAt:    &occurred,
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	summary, txs, err := svc.MonthlyReport(employeeCtx(), 2026, 5)
	if err != nil {
		t.Fatalf("monthly report: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if !summary.TotalSales.Equal(catalog.Price) {
		t.Fatalf("total sales %s should exclude tip, want %s", summary.TotalSales, catalog.Price)
	}
	if !summary.TipsTotal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("tips total %s, want 30", summary.TipsTotal)
	}
	if !summary.EmployeeTipsHalf.Equal(decimal.NewFromInt(15)) || !summary.BusinessTipsHalf.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("tips split %s/%s, want 15/15", summary.EmployeeTipsHalf, summary.BusinessTipsHalf)
	}
}

func TestCalendarCountsGroupsByGulfDay(t *testing.T) {
	svc := newTestService(t)
	catalog := seededService(t, svc)

	for _, ts := range []time.Time{
		time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 14, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC),
	} {
		occurred := ts
		if _, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
			PaymentMethod: domain.PaymentMethodCard,
			Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
			OccurredAt:    &occurred,
		}); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	counts, err := svc.CalendarCounts(employeeCtx(), 2026, 8)
	if err != nil {
		t.Fatalf("calendar counts: %v", err)
	}
	if counts["2026-08-03"] != 2 {
		t.Fatalf("expected 2 on 2026-08-03, got %d", counts["2026-08-03"])
	}
	if counts["2026-08-21"] != 1 {
		t.Fatalf("expected 1 on 2026-08-21, got %d", counts["2026-08-21"])
	}
}

func TestApplySalaryPercentagesComputesPayout(t *testing.T) {
	svc := newTestService(t)
	employee := seededEmployee(t, svc)
	catalog := seededService(t, svc)

	occurred := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	if _, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		EmployeeID:    employee.ID,
		PaymentMethod: domain.PaymentMethodCash,
		Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 2}},
		OccurredAt:    &occurred,
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	sheet, err := svc.ApplySalaryPercentages(adminCtx(), domain.SalaryPercentageRequest{
		Year:        2026,
		Month:       9,
		Percentages: map[string]float64{employee.ID: 25},
	})
	if err != nil {
		t.Fatalf("apply percentages: %v", err)
	}

	wantPayout := catalog.Price.Mul(decimal.NewFromInt(2)).Mul(decimal.NewFromFloat(0.25))
	found := false
	for _, r := range sheet.Rows {
		if r.Key == employee.ID {
			found = true
			if !r.Payout.Equal(wantPayout) {
				t.Fatalf("payout %s, want %s", r.Payout, wantPayout)
			}
		}
	}
	if !found {
		t.Fatalf("expected row for employee %s", employee.ID)
	}
}

func TestSalarySheetNeverRetainsPercentages(t *testing.T) {
	svc := newTestService(t)
	employee := seededEmployee(t, svc)
	catalog := seededService(t, svc)

	occurred := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	if _, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		EmployeeID:    employee.ID,
		PaymentMethod: domain.PaymentMethodCash,
		Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 2}},
		OccurredAt:    &occurred,
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if _, err := svc.ApplySalaryPercentages(adminCtx(), domain.SalaryPercentageRequest{
		Year:        2026,
		Month:       9,
		Percentages: map[string]float64{employee.ID: 10},
	}); err != nil {
		t.Fatalf("apply percentages: %v", err)
	}

	// The entry lives only in the request; a fresh sheet build starts blank.
	rebuilt, err := svc.SalarySheet(adminCtx(), 2026, 9)
	if err != nil {
		t.Fatalf("rebuild sheet: %v", err)
	}
	for _, r := range rebuilt.Rows {
		if r.HasPercentage || r.Percentage != 0 || !r.Payout.IsZero() {
			t.Fatalf("percentage survived into a fresh sheet: %+v", r)
		}
	}
	if !rebuilt.Business.TotalPaid.IsZero() {
		t.Fatalf("TotalPaid %s on a fresh sheet, want 0", rebuilt.Business.TotalPaid)
	}
}

func TestApplySalaryPercentagesRejectsOutOfRange(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ApplySalaryPercentages(adminCtx(), domain.SalaryPercentageRequest{
		Year:        2026,
		Month:       9,
		Percentages: map[string]float64{"emp-any": 101},
	})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.ApplySalaryPercentages(adminCtx(), domain.SalaryPercentageRequest{
		Year:  2026,
		Month: 9,
	})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty entries, got %v", err)
	}
}

func TestApplySalaryPercentagesRejectsUnknownRow(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ApplySalaryPercentages(adminCtx(), domain.SalaryPercentageRequest{
		Year:        2026,
		Month:       9,
		Percentages: map[string]float64{"emp-missing": 20},
	})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSalarySheetKeysUnknownRows(t *testing.T) {
	svc := newTestService(t)
	catalog := seededService(t, svc)

	occurred := time.Date(2026, 10, 5, 10, 0, 0, 0, time.UTC)
	if _, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		PaymentMethod: domain.PaymentMethodCash,
		Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
		OccurredAt:    &occurred,
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	sheet, err := svc.SalarySheet(adminCtx(), 2026, 10)
	if err != nil {
		t.Fatalf("salary sheet: %v", err)
	}
	found := false
	for _, r := range sheet.Rows {
		if strings.HasPrefix(r.Key, "unknown-") && r.EmployeeName == domain.UnknownEmployeeName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown-keyed row, got %+v", sheet.Rows)
	}
}

func TestExportMonthlyCSV(t *testing.T) {
	svc := newTestService(t)
	employee := seededEmployee(t, svc)
	catalog := seededService(t, svc)

	occurred := time.Date(2026, 11, 20, 10, 0, 0, 0, time.UTC)
	if _, err := svc.CreateTransaction(employeeCtx(), domain.TransactionCreateRequest{
		EmployeeID:    employee.ID,
		PaymentMethod: domain.PaymentMethodCard,
		Items:         []domain.TransactionItemInput{{ServiceID: catalog.ID, Quantity: 1}},
		OccurredAt:    &occurred,
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	csv, filename, err := svc.ExportMonthlyCSV(adminCtx(), 2026, 11)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filename != "Monthly_Sales_Report_November_2026.csv" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !strings.Contains(csv, "Test Salon") {
		t.Fatalf("expected business name in report")
	}
	if !strings.Contains(csv, employee.Name) {
		t.Fatalf("expected employee name in report")
	}

	if _, _, err := svc.ExportMonthlyCSV(employeeCtx(), 2026, 11); err == nil {
		t.Fatalf("expected employee export to be rejected")
	}
}

func TestTransactionsForMonthRejectsAbsurdYear(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.TransactionsForMonth(employeeCtx(), 1999, 5); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for year 1999, got %v", err)
	}
	if _, err := svc.TransactionsForMonth(employeeCtx(), 2201, 5); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for year 2201, got %v", err)
	}
}
