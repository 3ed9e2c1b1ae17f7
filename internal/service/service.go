package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stylematrix/backend/internal/aggregate"
	"stylematrix/backend/internal/cache"
	"stylematrix/backend/internal/domain"
	"stylematrix/backend/internal/gst"
	"stylematrix/backend/internal/payroll"
	"stylematrix/backend/internal/report"
	"stylematrix/backend/internal/store"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

const catalogCacheKey = "catalog:services"

type Service struct {
	repo         store.Repository
	catalog      cache.CatalogCache
	catalogTTL   time.Duration
	businessName string
	currencyCode string
}

func New(repo store.Repository, catalog cache.CatalogCache, catalogTTL time.Duration, businessName string, currencyCode string) *Service {
	if catalog == nil {
		catalog = cache.NoopCatalogCache{}
	}
	if catalogTTL < time.Second {
		catalogTTL = 5 * time.Minute
	}
	if businessName == "" {
		businessName = "Style Matrix Salon"
	}
	if currencyCode == "" {
		currencyCode = "AED"
	}

	return &Service{
		repo:         repo,
		catalog:      catalog,
		catalogTTL:   catalogTTL,
		businessName: businessName,
		currencyCode: currencyCode,
	}
}

func (s *Service) requireAdmin(ctx context.Context) (domain.Actor, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleAdmin {
		return domain.Actor{}, fmt.Errorf("admin role required")
	}
	return actor, nil
}

func (s *Service) CreateEmployee(ctx context.Context, req domain.EmployeeCreateRequest) (domain.Employee, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return domain.Employee{}, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" {
		return domain.Employee{}, fmt.Errorf("%w: name is required", store.ErrInvalidInput)
	}
	if err := validatePhone(req.Phone); err != nil {
		return domain.Employee{}, err
	}
	if err := validateEmail(req.Email); err != nil {
		return domain.Employee{}, err
	}

	created, err := s.repo.CreateEmployee(ctx, domain.Employee{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Active: true,
	})
	if err != nil {
		return domain.Employee{}, err
	}

	s.logAudit(ctx, "employee_create", "employee", created.ID, created.Name)
	return *created, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, req domain.EmployeeUpdateRequest) (domain.Employee, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return domain.Employee{}, err
	}

	existing, err := s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Employee{}, fmt.Errorf("%w: name is required", store.ErrInvalidInput)
		}
		updated.Name = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if err := validatePhone(phone); err != nil {
			return domain.Employee{}, err
		}
		updated.Phone = phone
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if err := validateEmail(email); err != nil {
			return domain.Employee{}, err
		}
		updated.Email = email
	}

	saved, err := s.repo.UpdateEmployee(ctx, updated)
	if err != nil {
		return domain.Employee{}, err
	}

	s.logAudit(ctx, "employee_update", "employee", saved.ID, saved.Name)
	return *saved, nil
}

func (s *Service) SetEmployeeActive(ctx context.Context, id string, active bool) (domain.Employee, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return domain.Employee{}, err
	}

	existing, err := s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}

	updated := *existing
	updated.Active = active
	saved, err := s.repo.UpdateEmployee(ctx, updated)
	if err != nil {
		return domain.Employee{}, err
	}

	action := "employee_deactivate"
	if active {
		action = "employee_activate"
	}
	s.logAudit(ctx, action, "employee", saved.ID, saved.Name)
	return *saved, nil
}

func (s *Service) ListEmployees(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListEmployees(ctx, activeOnly)
}

// ListServices serves the catalog through the cache. A cache failure falls
// back to the store so a dead redis never takes the booking flow down.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	cached, hit, err := s.catalog.Get(ctx, catalogCacheKey)
	if err != nil {
		log.Printf("[service] WARN: catalog cache get failed: %v", err)
	}
	if hit {
		return cached, nil
	}

	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.Set(ctx, catalogCacheKey, services, s.catalogTTL); err != nil {
		log.Printf("[service] WARN: catalog cache set failed: %v", err)
	}
	return services, nil
}

func (s *Service) CreateService(ctx context.Context, req domain.ServiceCreateRequest) (domain.Service, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return domain.Service{}, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.Service{}, fmt.Errorf("%w: name is required", store.ErrInvalidInput)
	}
	if req.Price.Sign() < 0 {
		return domain.Service{}, fmt.Errorf("%w: price cannot be negative", store.ErrInvalidInput)
	}
	if req.DurationMinutes < 0 {
		return domain.Service{}, fmt.Errorf("%w: duration cannot be negative", store.ErrInvalidInput)
	}

	created, err := s.repo.CreateService(ctx, domain.Service{
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	})
	if err != nil {
		return domain.Service{}, err
	}

	s.invalidateCatalog(ctx)
	s.logAudit(ctx, "service_create", "service", created.ID, created.Name)
	return *created, nil
}

func (s *Service) UpdateService(ctx context.Context, id string, req domain.ServiceUpdateRequest) (domain.Service, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return domain.Service{}, err
	}

	existing, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Service{}, fmt.Errorf("%w: name is required", store.ErrInvalidInput)
		}
		updated.Name = name
	}
	if req.Price != nil {
		if req.Price.Sign() < 0 {
			return domain.Service{}, fmt.Errorf("%w: price cannot be negative", store.ErrInvalidInput)
		}
		updated.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 0 {
			return domain.Service{}, fmt.Errorf("%w: duration cannot be negative", store.ErrInvalidInput)
		}
		updated.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	saved, err := s.repo.UpdateService(ctx, updated)
	if err != nil {
		return domain.Service{}, err
	}

	s.invalidateCatalog(ctx)
	s.logAudit(ctx, "service_update", "service", saved.ID, saved.Name)
	return *saved, nil
}

func (s *Service) DeleteService(ctx context.Context, id string) error {
	if _, err := s.requireAdmin(ctx); err != nil {
		return err
	}

	if err := s.repo.DeleteService(ctx, id); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	s.logAudit(ctx, "service_delete", "service", id, "")
	return nil
}

func (s *Service) invalidateCatalog(ctx context.Context) {
	if err := s.catalog.Invalidate(ctx, catalogCacheKey); err != nil {
		log.Printf("[service] WARN: catalog cache invalidate failed: %v", err)
	}
}

// CreateTransaction records a sale. Line prices are snapshotted from the
// catalog and the subtotal and total are recomputed server-side; amounts
// supplied by the client are ignored.
func (s *Service) CreateTransaction(ctx context.Context, req domain.TransactionCreateRequest) (domain.Transaction, error) {
	if _, ok := ActorFromContext(ctx); !ok {
		return domain.Transaction{}, fmt.Errorf("authentication required")
	}

	if req.PaymentMethod != domain.PaymentMethodCash && req.PaymentMethod != domain.PaymentMethodCard {
		return domain.Transaction{}, fmt.Errorf("%w: payment method must be cash or card", store.ErrInvalidInput)
	}
	if req.Tip.Sign() < 0 {
		return domain.Transaction{}, fmt.Errorf("%w: tip cannot be negative", store.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return domain.Transaction{}, fmt.Errorf("%w: at least one service is required", store.ErrInvalidInput)
	}

	employeeName := ""
	if req.EmployeeID != "" {
		employee, err := s.repo.GetEmployeeByID(ctx, req.EmployeeID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Transaction{}, fmt.Errorf("%w: employee %s not found", store.ErrInvalidInput, req.EmployeeID)
			}
			return domain.Transaction{}, err
		}
		employeeName = employee.Name
	}

	subtotal := decimal.Zero
	items := make([]domain.TransactionItem, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return domain.Transaction{}, fmt.Errorf("%w: quantity must be at least 1", store.ErrInvalidInput)
		}
		svc, err := s.repo.GetServiceByID(ctx, line.ServiceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Transaction{}, fmt.Errorf("%w: service %s not found", store.ErrInvalidInput, line.ServiceID)
			}
			return domain.Transaction{}, err
		}
		if !svc.Active {
			return domain.Transaction{}, fmt.Errorf("%w: service %s is not active", store.ErrInvalidInput, svc.Name)
		}
		lineTotal := svc.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, domain.TransactionItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			UnitPrice:   svc.Price,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	occurredAt := gst.Now()
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		occurredAt = req.OccurredAt.UTC()
	}

	created, err := s.repo.CreateTransaction(ctx, domain.Transaction{
		EmployeeID:    req.EmployeeID,
		EmployeeName:  employeeName,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      subtotal,
		Tip:           req.Tip,
		Total:         subtotal.Add(req.Tip),
		OccurredAt:    occurredAt,
		Items:         items,
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	return *created, nil
}

// TransactionsForDay lists the GST calendar day's transactions, newest
// first.
func (s *Service) TransactionsForDay(ctx context.Context, date string) ([]domain.Transaction, error) {
	day, err := gst.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	return s.repo.ListTransactions(ctx, gst.StartOfDay(day), gst.EndOfDay(day))
}

func (s *Service) TransactionsForMonth(ctx context.Context, year int, month int) ([]domain.Transaction, error) {
	if year < 2000 || year > 2200 {
		return nil, fmt.Errorf("%w: year out of range", store.ErrInvalidInput)
	}
	return s.repo.ListTransactions(ctx, gst.StartOfMonth(year, month), gst.EndOfMonth(year, month))
}

// TransactionByID fetches one transaction with its items, backing the
// per-transaction detail view on the calendar and report pages.
func (s *Service) TransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: transaction id required", store.ErrInvalidInput)
	}
	return s.repo.GetTransactionByID(ctx, id)
}

// DeleteTransaction is a hard delete of the transaction and its items.
// The HTTP layer additionally requires manager PIN confirmation.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	actor, err := s.requireAdmin(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	log.Printf("[audit] transaction deleted id=%s by=%s", id, actor.Email)
	return nil
}

// DailyReport recomputes the day's summary on every call.
func (s *Service) DailyReport(ctx context.Context, date string) (aggregate.Summary, []domain.Transaction, error) {
	txs, err := s.TransactionsForDay(ctx, date)
	if err != nil {
		return aggregate.Summary{}, nil, err
	}
	return aggregate.Summarize(txs), txs, nil
}

// MonthlyReport recomputes the month's summary on every call.
func (s *Service) MonthlyReport(ctx context.Context, year int, month int) (aggregate.Summary, []domain.Transaction, error) {
	txs, err := s.TransactionsForMonth(ctx, year, month)
	if err != nil {
		return aggregate.Summary{}, nil, err
	}
	return aggregate.Summarize(txs), txs, nil
}

func (s *Service) CalendarCounts(ctx context.Context, year int, month int) (map[string]int, error) {
	txs, err := s.TransactionsForMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return aggregate.CountByDay(txs), nil
}

// SalarySheet builds the month's payout worksheet: one row per employee
// bucket, keyed by employee id (or unknown-<name> when the bucket has no
// resolvable employee). The sheet carries no percentages; those are
// session state the client re-sends through ApplySalaryPercentages.
func (s *Service) SalarySheet(ctx context.Context, year int, month int) (payroll.Sheet, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return payroll.Sheet{}, err
	}

	summary, _, err := s.MonthlyReport(ctx, year, month)
	if err != nil {
		return payroll.Sheet{}, err
	}

	keyFor, err := s.rowKeyResolver(ctx)
	if err != nil {
		return payroll.Sheet{}, err
	}
	return *payroll.NewSheet(summary, keyFor), nil
}

// ApplySalaryPercentages rebuilds the month's sheet and applies the
// client-held percentage entries to it. Nothing is written back: the
// entries vanish with the admin's session and every call recomputes the
// sheet from sales data alone.
func (s *Service) ApplySalaryPercentages(ctx context.Context, req domain.SalaryPercentageRequest) (payroll.Sheet, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return payroll.Sheet{}, err
	}

	if len(req.Percentages) == 0 {
		return payroll.Sheet{}, fmt.Errorf("%w: no percentage entries supplied", store.ErrInvalidInput)
	}
	for key, pct := range req.Percentages {
		if pct < 0 || pct > 100 {
			return payroll.Sheet{}, fmt.Errorf("%w: percentage for row %s must be between 0 and 100", store.ErrInvalidInput, key)
		}
	}

	sheet, err := s.SalarySheet(ctx, req.Year, req.Month)
	if err != nil {
		return payroll.Sheet{}, err
	}
	keys := make([]string, 0, len(req.Percentages))
	for key := range req.Percentages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := sheet.SetPercentage(key, req.Percentages[key]); err != nil {
			return payroll.Sheet{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
		}
	}
	return sheet, nil
}

func (s *Service) rowKeyResolver(ctx context.Context) (func(name string) string, error) {
	employees, err := s.repo.ListEmployees(ctx, false)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(employees))
	for _, e := range employees {
		if _, taken := byName[e.Name]; !taken {
			byName[e.Name] = e.ID
		}
	}
	return func(name string) string {
		if id, ok := byName[name]; ok {
			return id
		}
		return "unknown-" + name
	}, nil
}

// ExportMonthlyCSV renders the month's report and returns the document with
// its download filename.
func (s *Service) ExportMonthlyCSV(ctx context.Context, year int, month int) (string, string, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return "", "", err
	}

	summary, txs, err := s.MonthlyReport(ctx, year, month)
	if err != nil {
		return "", "", err
	}

	s.logAudit(ctx, "report_export", "report", fmt.Sprintf("%04d-%02d", year, month), "csv")
	return report.Monthly(s.businessName, s.currencyCode, year, month, summary, txs), report.Filename(year, month), nil
}

func (s *Service) logAudit(ctx context.Context, action string, entityType string, entityID string, detail string) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		actor = domain.Actor{Email: "system", Role: "system"}
	}
	log.Printf("[audit] action=%s entity=%s/%s actor=%s role=%s detail=%q",
		action, entityType, entityID, actor.Email, actor.Role, detail)
}

func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 8 {
		return fmt.Errorf("%w: phone must contain at least 8 digits", store.ErrInvalidInput)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return fmt.Errorf("%w: invalid email address", store.ErrInvalidInput)
	}
	return nil
}
