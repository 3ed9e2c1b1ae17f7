package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EmployeeCreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type EmployeeUpdateRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

type EmployeeListResponse struct {
	Employees []Employee `json:"employees"`
}

type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ServiceCreateRequest struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}

type ServiceUpdateRequest struct {
	Name            *string          `json:"name,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

type ServiceListResponse struct {
	Services []Service `json:"services"`
}

type TransactionItem struct {
	ID          string          `json:"id"`
	ServiceID   string          `json:"service_id,omitempty"`
	ServiceName string          `json:"service_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Transaction struct {
	ID            string            `json:"id"`
	EmployeeID    string            `json:"employee_id,omitempty"`
	EmployeeName  string            `json:"employee_name"`
	PaymentMethod string            `json:"payment_method"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Tip           decimal.Decimal   `json:"tip"`
	Total         decimal.Decimal   `json:"total"`
	OccurredAt    time.Time         `json:"occurred_at"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []TransactionItem `json:"items"`
}

type TransactionItemInput struct {
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
}

type TransactionCreateRequest struct {
	EmployeeID    string                 `json:"employee_id"`
	PaymentMethod string                 `json:"payment_method"`
	Tip           decimal.Decimal        `json:"tip"`
	OccurredAt    *time.Time             `json:"occurred_at,omitempty"`
	Items         []TransactionItemInput `json:"items"`
}

type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type TransactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	EmployeeID  string `json:"employee_id,omitempty"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Email      string
	Role       string
	EmployeeID string
}

// SalaryPercentageRequest carries the percentage entries the admin has
// typed into the month's sheet, keyed by salary row key. The entries are
// session state held by the client; the server only computes with them.
type SalaryPercentageRequest struct {
	Year        int                `json:"year"`
	Month       int                `json:"month"`
	Percentages map[string]float64 `json:"percentages"`
}

type CalendarCountsResponse struct {
	Year   int            `json:"year"`
	Month  int            `json:"month"`
	Counts map[string]int `json:"counts"`
}

type StaffUserCreateRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
}

type StaffUser struct {
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	ID         string
	Email      string
	Password   string
	Role       string
	EmployeeID string
	Active     bool
	CreatedAt  time.Time
}

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// UnknownEmployeeName labels transactions whose employee reference is
// missing or no longer resolves.
const UnknownEmployeeName = "Unknown"
