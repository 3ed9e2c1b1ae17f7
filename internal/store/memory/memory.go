package memory

import (
	"context"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"stylematrix/backend/internal/domain"
	"stylematrix/backend/internal/store"
	"stylematrix/backend/internal/xid"
)

type Store struct {
	mu               sync.RWMutex
	employeesByID    map[string]domain.Employee
	servicesByID     map[string]domain.Service
	transactionsByID map[string]*domain.Transaction
	usersByEmail     map[string]domain.UserAccount
}

// seedUsers builds the initial in-memory user accounts for dev/demo mode.
// Credentials are read from SEED_ADMIN_PASSWORD and SEED_EMPLOYEE_PASSWORD
// environment variables. If unset, hardcoded dev defaults are used with a
// warning logged. These credentials are never used in production (the
// backend uses PostgreSQL when DATABASE_URL is set).
func seedUsers(employeeID string) map[string]domain.UserAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	employeePwd := envOr("SEED_EMPLOYEE_PASSWORD", "employee123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_EMPLOYEE_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_EMPLOYEE_PASSWORD to override.")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		email      string
		password   string
		role       string
		employeeID string
	}{
		{"admin@stylematrix.local", adminPwd, domain.RoleAdmin, ""},
		{"staff@stylematrix.local", employeePwd, domain.RoleEmployee, employeeID},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.email, err)
		}
		users[u.email] = domain.UserAccount{
			ID:         xid.New("usr"),
			Email:      u.email,
			Password:   string(hash),
			Role:       u.role,
			EmployeeID: u.employeeID,
			Active:     true,
			CreatedAt:  now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func NewSeeded() *Store {
	now := time.Now().UTC()

	employees := []domain.Employee{
		{ID: xid.New("emp"), Name: "Amal Haddad", Phone: "0501234567", Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: xid.New("emp"), Name: "Zara Khalil", Phone: "0559876543", Active: true, CreatedAt: now, UpdatedAt: now},
	}

	services := []domain.Service{
		{ID: xid.New("svc"), Name: "Haircut", Price: decimal.NewFromInt(80), DurationMinutes: 30, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: xid.New("svc"), Name: "Blow Dry", Price: decimal.NewFromInt(60), DurationMinutes: 25, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: xid.New("svc"), Name: "Hair Color", Price: decimal.NewFromInt(250), DurationMinutes: 90, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: xid.New("svc"), Name: "Manicure", Price: decimal.NewFromInt(70), DurationMinutes: 40, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: xid.New("svc"), Name: "Pedicure", Price: decimal.NewFromInt(90), DurationMinutes: 45, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: xid.New("svc"), Name: "Facial", Price: decimal.NewFromInt(180), DurationMinutes: 60, Active: true, CreatedAt: now, UpdatedAt: now},
	}

	employeeMap := make(map[string]domain.Employee, len(employees))
	for _, e := range employees {
		employeeMap[e.ID] = e
	}
	serviceMap := make(map[string]domain.Service, len(services))
	for _, svc := range services {
		serviceMap[svc.ID] = svc
	}

	return &Store{
		employeesByID:    employeeMap,
		servicesByID:     serviceMap,
		transactionsByID: make(map[string]*domain.Transaction),
		usersByEmail:     seedUsers(employees[0].ID),
	}
}

func (s *Store) CreateEmployee(_ context.Context, employee domain.Employee) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(employee.Name) == "" {
		return nil, store.ErrInvalidInput
	}
	if employee.ID == "" {
		employee.ID = xid.New("emp")
	}
	now := time.Now().UTC()
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = now
	}
	employee.UpdatedAt = now
	employee.Active = true

	s.employeesByID[employee.ID] = employee
	created := employee
	return &created, nil
}

func (s *Store) GetEmployeeByID(_ context.Context, id string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, exists := s.employeesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyEmployee := employee
	return &copyEmployee, nil
}

func (s *Store) UpdateEmployee(_ context.Context, employee domain.Employee) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(employee.Name) == "" {
		return nil, store.ErrInvalidInput
	}
	existing, exists := s.employeesByID[employee.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	employee.CreatedAt = existing.CreatedAt
	employee.UpdatedAt = time.Now().UTC()

	s.employeesByID[employee.ID] = employee
	updated := employee
	return &updated, nil
}

func (s *Store) ListEmployees(_ context.Context, activeOnly bool) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]domain.Employee, 0, len(s.employeesByID))
	for _, e := range s.employeesByID {
		if activeOnly && !e.Active {
			continue
		}
		employees = append(employees, e)
	}
	slices.SortFunc(employees, func(a, b domain.Employee) int {
		if a.Name == b.Name {
			return cmpString(a.ID, b.ID)
		}
		return cmpString(a.Name, b.Name)
	})
	return employees, nil
}

func (s *Store) CreateService(_ context.Context, service domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(service.Name) == "" || service.Price.Sign() < 0 || service.DurationMinutes < 0 {
		return nil, store.ErrInvalidInput
	}
	if service.ID == "" {
		service.ID = xid.New("svc")
	}
	now := time.Now().UTC()
	if service.CreatedAt.IsZero() {
		service.CreatedAt = now
	}
	service.UpdatedAt = now
	service.Active = true

	s.servicesByID[service.ID] = service
	created := service
	return &created, nil
}

func (s *Store) GetServiceByID(_ context.Context, id string) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	service, exists := s.servicesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyService := service
	return &copyService, nil
}

func (s *Store) UpdateService(_ context.Context, service domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(service.Name) == "" || service.Price.Sign() < 0 || service.DurationMinutes < 0 {
		return nil, store.ErrInvalidInput
	}
	existing, exists := s.servicesByID[service.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	service.CreatedAt = existing.CreatedAt
	service.UpdatedAt = time.Now().UTC()

	s.servicesByID[service.ID] = service
	updated := service
	return &updated, nil
}

func (s *Store) DeleteService(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.servicesByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.servicesByID, id)
	return nil
}

func (s *Store) ListServices(_ context.Context) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]domain.Service, 0, len(s.servicesByID))
	for _, svc := range s.servicesByID {
		services = append(services, svc)
	}
	slices.SortFunc(services, func(a, b domain.Service) int {
		if a.Name == b.Name {
			return cmpString(a.ID, b.ID)
		}
		return cmpString(a.Name, b.Name)
	})
	return services, nil
}

func (s *Store) CreateTransaction(_ context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
	for i := range tx.Items {
		if tx.Items[i].ID == "" {
			tx.Items[i].ID = xid.New("itm")
		}
	}
	if tx.EmployeeID != "" {
		if e, ok := s.employeesByID[tx.EmployeeID]; ok {
			tx.EmployeeName = e.Name
		}
	}

	saved := cloneTransaction(&tx)
	s.transactionsByID[tx.ID] = saved
	return cloneTransaction(saved), nil
}

func (s *Store) GetTransactionByID(_ context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, exists := s.transactionsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	return cloneTransaction(tx), nil
}

func (s *Store) ListTransactions(_ context.Context, from time.Time, to time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Transaction, 0, 64)
	for _, tx := range s.transactionsByID {
		if tx.OccurredAt.Before(from) || tx.OccurredAt.After(to) {
			continue
		}
		result = append(result, *cloneTransaction(tx))
	}
	slices.SortFunc(result, func(a, b domain.Transaction) int {
		if a.OccurredAt.Equal(b.OccurredAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.OccurredAt.After(b.OccurredAt) {
			return -1
		}
		return 1
	})
	return result, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactionsByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.transactionsByID, id)
	return nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	if email == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidInput
	}
	if _, exists := s.usersByEmail[email]; exists {
		return store.ErrConflict
	}
	user.Email = email
	if user.ID == "" {
		user.ID = xid.New("usr")
	}
	if user.Role == "" {
		user.Role = domain.RoleEmployee
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Active = true
	s.usersByEmail[user.Email] = user
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.usersByEmail[strings.ToLower(strings.TrimSpace(email))]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyUser := user
	return &copyUser, nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.UserAccount, 0, len(s.usersByEmail))
	for _, user := range s.usersByEmail {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b domain.UserAccount) int {
		return cmpString(a.Email, b.Email)
	})
	return users, nil
}

func cmpString(a string, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func cloneTransaction(src *domain.Transaction) *domain.Transaction {
	if src == nil {
		return nil
	}
	dup := *src
	dupItems := make([]domain.TransactionItem, len(src.Items))
	copy(dupItems, src.Items)
	dup.Items = dupItems
	return &dup
}
