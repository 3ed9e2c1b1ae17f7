package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"stylematrix/backend/internal/domain"
	"stylematrix/backend/internal/store"
	"stylematrix/backend/internal/xid"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	if strings.TrimSpace(employee.Name) == "" {
		return nil, store.ErrInvalidInput
	}
	if employee.ID == "" {
		employee.ID = xid.New("emp")
	}
	now := time.Now().UTC()
	employee.Active = true
	employee.CreatedAt = now
	employee.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, phone, email, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, employee.ID, employee.Name, nullIfEmpty(employee.Phone), nullIfEmpty(employee.Email), employee.Active, employee.CreatedAt, employee.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}

	created := employee
	return &created, nil
}

func (s *Store) GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error) {
	var employee domain.Employee
	var phone, email sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`, id).Scan(&employee.ID, &employee.Name, &phone, &email, &employee.Active, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	employee.Phone = phone.String
	employee.Email = email.String
	employee.CreatedAt = employee.CreatedAt.UTC()
	employee.UpdatedAt = employee.UpdatedAt.UTC()
	return &employee, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	if strings.TrimSpace(employee.Name) == "" {
		return nil, store.ErrInvalidInput
	}

	employee.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE employees
		SET name = $2, phone = $3, email = $4, active = $5, updated_at = $6
		WHERE id = $1
	`, employee.ID, employee.Name, nullIfEmpty(employee.Phone), nullIfEmpty(employee.Email), employee.Active, employee.UpdatedAt)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := employee
	return &updated, nil
}

func (s *Store) ListEmployees(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	query := `
		SELECT id, name, phone, email, active, created_at, updated_at
		FROM employees
		ORDER BY name, id
	`
	if activeOnly {
		query = `
			SELECT id, name, phone, email, active, created_at, updated_at
			FROM employees
			WHERE active = true
			ORDER BY name, id
		`
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0, 32)
	for rows.Next() {
		var employee domain.Employee
		var phone, email sql.NullString
		if err := rows.Scan(&employee.ID, &employee.Name, &phone, &email, &employee.Active, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
			return nil, err
		}
		employee.Phone = phone.String
		employee.Email = email.String
		employee.CreatedAt = employee.CreatedAt.UTC()
		employee.UpdatedAt = employee.UpdatedAt.UTC()
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (s *Store) CreateService(ctx context.Context, service domain.Service) (*domain.Service, error) {
	if strings.TrimSpace(service.Name) == "" || service.Price.Sign() < 0 || service.DurationMinutes < 0 {
		return nil, store.ErrInvalidInput
	}
	if service.ID == "" {
		service.ID = xid.New("svc")
	}
	now := time.Now().UTC()
	service.Active = true
	service.CreatedAt = now
	service.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO services (id, name, price, duration_minutes, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, service.ID, service.Name, service.Price, service.DurationMinutes, service.Active, service.CreatedAt, service.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}

	created := service
	return &created, nil
}

func (s *Store) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	var service domain.Service
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, price, duration_minutes, active, created_at, updated_at
		FROM services
		WHERE id = $1
	`, id).Scan(&service.ID, &service.Name, &service.Price, &service.DurationMinutes, &service.Active, &service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	service.CreatedAt = service.CreatedAt.UTC()
	service.UpdatedAt = service.UpdatedAt.UTC()
	return &service, nil
}

func (s *Store) UpdateService(ctx context.Context, service domain.Service) (*domain.Service, error) {
	if strings.TrimSpace(service.Name) == "" || service.Price.Sign() < 0 || service.DurationMinutes < 0 {
		return nil, store.ErrInvalidInput
	}

	service.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE services
		SET name = $2, price = $3, duration_minutes = $4, active = $5, updated_at = $6
		WHERE id = $1
	`, service.ID, service.Name, service.Price, service.DurationMinutes, service.Active, service.UpdatedAt)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := service
	return &updated, nil
}

func (s *Store) DeleteService(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, duration_minutes, active, created_at, updated_at
		FROM services
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]domain.Service, 0, 64)
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(&service.ID, &service.Name, &service.Price, &service.DurationMinutes, &service.Active, &service.CreatedAt, &service.UpdatedAt); err != nil {
			return nil, err
		}
		service.CreatedAt = service.CreatedAt.UTC()
		service.UpdatedAt = service.UpdatedAt.UTC()
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if len(tx.Items) == 0 {
		return nil, store.ErrInvalidInput
	}
	if tx.PaymentMethod != domain.PaymentMethodCash && tx.PaymentMethod != domain.PaymentMethodCard {
		return nil, store.ErrInvalidInput
	}
	if tx.ID == "" {
		tx.ID = xid.New("tx")
	}
	now := time.Now().UTC()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = now
	}

	pgTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer func() { _ = pgTx.Rollback() }()

	_, err = pgTx.ExecContext(ctx, `
		INSERT INTO transactions (id, employee_id, payment_method, subtotal, tip, total, transaction_date, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, tx.ID, nullIfEmpty(tx.EmployeeID), tx.PaymentMethod, tx.Subtotal, tx.Tip, tx.Total, tx.OccurredAt, tx.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}

	for i := range tx.Items {
		item := &tx.Items[i]
		if item.ID == "" {
			item.ID = xid.New("itm")
		}
		_, err = pgTx.ExecContext(ctx, `
			INSERT INTO transaction_items (id, transaction_id, service_id, service_name, unit_price, quantity, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, item.ID, tx.ID, nullIfEmpty(item.ServiceID), item.ServiceName, item.UnitPrice, item.Quantity, item.LineTotal)
		if err != nil {
			return nil, err
		}
	}

	if err := pgTx.Commit(); err != nil {
		return nil, err
	}

	if tx.EmployeeID != "" {
		if employee, err := s.GetEmployeeByID(ctx, tx.EmployeeID); err == nil {
			tx.EmployeeName = employee.Name
		}
	}

	created := tx
	return &created, nil
}

func (s *Store) GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var tx domain.Transaction
	var employeeID, employeeName sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.employee_id, e.name, t.payment_method, t.subtotal, t.tip, t.total, t.transaction_date, t.created_at
		FROM transactions t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1
	`, id).Scan(&tx.ID, &employeeID, &employeeName, &tx.PaymentMethod, &tx.Subtotal, &tx.Tip, &tx.Total, &tx.OccurredAt, &tx.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	tx.EmployeeID = employeeID.String
	tx.EmployeeName = employeeName.String
	tx.OccurredAt = tx.OccurredAt.UTC()
	tx.CreatedAt = tx.CreatedAt.UTC()

	items, err := s.itemsForTransactions(ctx, []string{tx.ID})
	if err != nil {
		return nil, err
	}
	tx.Items = items[tx.ID]
	if tx.Items == nil {
		tx.Items = []domain.TransactionItem{}
	}
	return &tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, from time.Time, to time.Time) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.employee_id, e.name, t.payment_method, t.subtotal, t.tip, t.total, t.transaction_date, t.created_at
		FROM transactions t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.transaction_date >= $1 AND t.transaction_date <= $2
		ORDER BY t.transaction_date DESC, t.id DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0, 128)
	ids := make([]string, 0, 128)
	for rows.Next() {
		var tx domain.Transaction
		var employeeID, employeeName sql.NullString
		if err := rows.Scan(&tx.ID, &employeeID, &employeeName, &tx.PaymentMethod, &tx.Subtotal, &tx.Tip, &tx.Total, &tx.OccurredAt, &tx.CreatedAt); err != nil {
			return nil, err
		}
		tx.EmployeeID = employeeID.String
		tx.EmployeeName = employeeName.String
		tx.OccurredAt = tx.OccurredAt.UTC()
		tx.CreatedAt = tx.CreatedAt.UTC()
		tx.Items = []domain.TransactionItem{}
		txs = append(txs, tx)
		ids = append(ids, tx.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := s.itemsForTransactions(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if lines, ok := items[txs[i].ID]; ok {
			txs[i].Items = lines
		}
	}

	return txs, nil
}

func (s *Store) itemsForTransactions(ctx context.Context, ids []string) (map[string][]domain.TransactionItem, error) {
	result := make(map[string][]domain.TransactionItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, service_id, service_name, unit_price, quantity, line_total
		FROM transaction_items
		WHERE transaction_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.TransactionItem
		var txID string
		var serviceID sql.NullString
		if err := rows.Scan(&item.ID, &txID, &serviceID, &item.ServiceName, &item.UnitPrice, &item.Quantity, &item.LineTotal); err != nil {
			return nil, err
		}
		item.ServiceID = serviceID.String
		result[txID] = append(result[txID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	pgTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = pgTx.Rollback() }()

	if _, err := pgTx.ExecContext(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, id); err != nil {
		return err
	}
	res, err := pgTx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return pgTx.Commit()
}

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	if email == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidInput
	}
	if user.ID == "" {
		user.ID = xid.New("usr")
	}
	if user.Role == "" {
		user.Role = domain.RoleEmployee
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password, role, employee_id, active, created_at)
		VALUES ($1,$2,$3,$4,$5,true,$6)
	`, user.ID, email, user.Password, user.Role, nullIfEmpty(user.EmployeeID), user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	var user domain.UserAccount
	var employeeID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password, role, employee_id, active, created_at
		FROM users
		WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(&user.ID, &user.Email, &user.Password, &user.Role, &employeeID, &user.Active, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	user.EmployeeID = employeeID.String
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, password, role, employee_id, active, created_at
		FROM users
		ORDER BY email
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var user domain.UserAccount
		var employeeID sql.NullString
		if err := rows.Scan(&user.ID, &user.Email, &user.Password, &user.Role, &employeeID, &user.Active, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.EmployeeID = employeeID.String
		user.CreatedAt = user.CreatedAt.UTC()
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullIfEmpty(val string) any {
	if val == "" {
		return nil
	}
	return val
}
