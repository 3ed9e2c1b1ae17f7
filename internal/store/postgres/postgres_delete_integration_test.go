package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stylematrix/backend/internal/domain"
	"stylematrix/backend/internal/store"
)

func TestDeleteTransactionCascadesItems(t *testing.T) {
	databaseURL := os.Getenv("STYLEMATRIX_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set STYLEMATRIX_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	stamp := time.Now().UnixNano()
	employeeID := fmt.Sprintf("emp-del-it-%d", stamp)
	txID := fmt.Sprintf("tx-del-it-%d", stamp)

	t.Cleanup(func() {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, txID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, txID)
		_, _ = s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, employeeID)
	})

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, active, created_at, updated_at)
		VALUES ($1, 'Delete IT Employee', true, now(), now())
	`, employeeID); err != nil {
		t.Fatalf("insert employee: %v", err)
	}

	created, err := s.CreateTransaction(ctx, domain.Transaction{
		ID:            txID,
		EmployeeID:    employeeID,
		PaymentMethod: domain.PaymentMethodCash,
		Subtotal:      decimal.NewFromInt(80),
		Tip:           decimal.NewFromInt(10),
		Total:         decimal.NewFromInt(90),
		OccurredAt:    time.Now().UTC(),
		Items: []domain.TransactionItem{
			{ServiceName: "Haircut", UnitPrice: decimal.NewFromInt(80), Quantity: 1, LineTotal: decimal.NewFromInt(80)},
		},
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if created.EmployeeName != "Delete IT Employee" {
		t.Fatalf("employee name not resolved, got %q", created.EmployeeName)
	}

	if err := s.DeleteTransaction(ctx, txID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}

	var itemCount int
	if err := s.db.QueryRowContext(ctx, `
		SELECT count(*)
		FROM transaction_items
		WHERE transaction_id = $1
	`, txID).Scan(&itemCount); err != nil {
		t.Fatalf("count items: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("expected 0 items after cascade delete, got %d", itemCount)
	}

	if _, err := s.GetTransactionByID(ctx, txID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
