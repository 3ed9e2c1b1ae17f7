package store

import (
	"context"
	"errors"
	"time"

	"stylematrix/backend/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

type Repository interface {
	CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)
	GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)
	ListEmployees(ctx context.Context, activeOnly bool) ([]domain.Employee, error)

	CreateService(ctx context.Context, service domain.Service) (*domain.Service, error)
	GetServiceByID(ctx context.Context, id string) (*domain.Service, error)
	UpdateService(ctx context.Context, service domain.Service) (*domain.Service, error)
	DeleteService(ctx context.Context, id string) error
	ListServices(ctx context.Context) ([]domain.Service, error)

	CreateTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error)
	// ListTransactions returns every transaction whose instant falls in
	// [from, to], with items attached, newest first.
	ListTransactions(ctx context.Context, from time.Time, to time.Time) ([]domain.Transaction, error)
	// DeleteTransaction removes a transaction and its items.
	DeleteTransaction(ctx context.Context, id string) error

	CreateUser(ctx context.Context, user domain.UserAccount) error
	GetUserByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
}
