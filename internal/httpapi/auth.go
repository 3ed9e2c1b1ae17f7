package httpapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"stylematrix/backend/internal/domain"
)

type AuthManager struct {
	mu         sync.RWMutex
	secret     []byte
	tokenTTL   time.Duration
	managerPIN string
	userStore  UserStore
	users      map[string]credential
}

type UserStore interface {
	CreateUser(ctx context.Context, user domain.UserAccount) error
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
}

type credential struct {
	password   string
	role       string
	employeeID string
	active     bool
	created    time.Time
}

type salonCustomClaims struct {
	jwtlib.RegisteredClaims
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
}

func NewAuthManager(secret string, tokenTTL time.Duration, managerPIN string, userStore UserStore) *AuthManager {
	if secret == "" {
		secret = "dev-change-me"
	}
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	managerPIN = strings.TrimSpace(managerPIN)
	if managerPIN == "" {
		managerPIN = "disabled"
	}
	hashedPIN, err := hashPassword(managerPIN)
	if err == nil {
		managerPIN = hashedPIN
	}

	manager := &AuthManager{
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		managerPIN: managerPIN,
		userStore:  userStore,
		users:      make(map[string]credential),
	}
	manager.bootstrapUsers(context.Background())
	return manager
}

func (a *AuthManager) Login(req domain.LoginRequest) (domain.LoginResponse, error) {
	// bootstrapUsers runs on every login to pick up users added outside
	// this process.
	a.bootstrapUsers(context.Background())
	email := strings.ToLower(strings.TrimSpace(req.Email))
	a.mu.RLock()
	cred, ok := a.users[email]
	a.mu.RUnlock()
	if !ok {
		return domain.LoginResponse{}, errors.New("invalid credentials")
	}

	valid := verifyPassword(cred.password, req.Password)
	if !valid {
		return domain.LoginResponse{}, errors.New("invalid credentials")
	}
	if !cred.active {
		return domain.LoginResponse{}, errors.New("account is inactive")
	}

	expiresAt := time.Now().UTC().Add(a.tokenTTL)
	token, err := a.sign(email, cred.role, cred.employeeID, expiresAt)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		AccessToken: token,
		Role:        cred.role,
		EmployeeID:  cred.employeeID,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}

func (a *AuthManager) ParseToken(tokenStr string) (domain.Actor, error) {
	claims := &salonCustomClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return domain.Actor{}, errors.New("invalid or expired token")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Actor{}, errors.New("invalid token subject")
	}
	return domain.Actor{Email: sub, Role: claims.Role, EmployeeID: claims.EmployeeID}, nil
}

func (a *AuthManager) sign(email, role, employeeID string, expiresAt time.Time) (string, error) {
	claims := salonCustomClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwtlib.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			Issuer:    "stylematrix",
		},
		Role:       role,
		EmployeeID: employeeID,
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *AuthManager) ValidateManagerPIN(pin string) bool {
	input := strings.TrimSpace(pin)
	if input == "" || !isPasswordHash(a.managerPIN) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.managerPIN), []byte(input)) == nil
}

func (a *AuthManager) CreateStaffUser(req domain.StaffUserCreateRequest) (domain.StaffUser, error) {
	a.bootstrapUsers(context.Background())
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.Index(email, "@") < 1 || strings.HasSuffix(email, "@") {
		return domain.StaffUser{}, fmt.Errorf("a valid email address is required")
	}
	if strings.TrimSpace(req.Password) == "" || len(req.Password) < 6 {
		return domain.StaffUser{}, fmt.Errorf("password must be at least 6 characters")
	}
	role := req.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if role != domain.RoleAdmin && role != domain.RoleEmployee {
		return domain.StaffUser{}, fmt.Errorf("role must be admin or employee")
	}

	a.mu.RLock()
	_, exists := a.users[email]
	a.mu.RUnlock()
	if exists {
		return domain.StaffUser{}, fmt.Errorf("email already registered")
	}

	now := time.Now().UTC()
	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return domain.StaffUser{}, fmt.Errorf("failed to hash password")
	}

	if a.userStore != nil {
		err := a.userStore.CreateUser(context.Background(), domain.UserAccount{
			Email:      email,
			Password:   passwordHash,
			Role:       role,
			EmployeeID: req.EmployeeID,
			Active:     true,
			CreatedAt:  now,
		})
		if err != nil {
			return domain.StaffUser{}, err
		}
	}

	a.mu.Lock()
	a.users[email] = credential{
		password:   passwordHash,
		role:       role,
		employeeID: req.EmployeeID,
		active:     true,
		created:    now,
	}
	a.mu.Unlock()

	return domain.StaffUser{
		Email:      email,
		Role:       role,
		EmployeeID: req.EmployeeID,
		Active:     true,
		CreatedAt:  now,
	}, nil
}

func (a *AuthManager) ListStaffUsers() []domain.StaffUser {
	a.bootstrapUsers(context.Background())
	a.mu.RLock()
	result := make([]domain.StaffUser, 0, len(a.users))
	for email, user := range a.users {
		result = append(result, domain.StaffUser{
			Email:      email,
			Role:       user.role,
			EmployeeID: user.employeeID,
			Active:     user.active,
			CreatedAt:  user.created,
		})
	}
	a.mu.RUnlock()
	sort.Slice(result, func(i, j int) bool {
		return result[i].Email < result[j].Email
	})
	return result
}

// bootstrapUsers loads user accounts from the user store into the in-memory
// credential cache.
func (a *AuthManager) bootstrapUsers(ctx context.Context) {
	if a.userStore == nil {
		return
	}

	users, err := a.userStore.ListUsers(ctx)
	if err != nil || len(users) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, user := range users {
		email := strings.ToLower(strings.TrimSpace(user.Email))
		if email == "" || !isPasswordHash(user.Password) {
			continue
		}
		a.users[email] = credential{
			password:   user.Password,
			role:       user.Role,
			employeeID: user.EmployeeID,
			active:     user.Active,
			created:    user.CreatedAt,
		}
	}
}

func verifyPassword(stored string, input string) bool {
	if stored == "" || strings.TrimSpace(input) == "" || !isPasswordHash(stored) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)) == nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func isPasswordHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}
