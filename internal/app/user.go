package app

import (
	"fmt"
	"strings"
	"time"

	"eliterentals/internal/util"
	"eliterentals/pkg/auth"
	"eliterentals/pkg/domain"
)

// SignUpInput carries the fields accepted at registration.
type SignUpInput struct {
	FirstName              string
	LastName               string
	Email                  string
	Password               string
	Role                   domain.UserRole
	LanguagePreference     string
	NotificationPreference string
}

// SignUp registers a new user. Tenants start with approval Pending.
func (a *App) SignUp(in SignUpInput) (domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return domain.User{}, fmt.Errorf("%w: first name required", ErrValidation)
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return domain.User{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleTenant
	}
	switch role {
	case domain.RoleAdmin, domain.RolePropertyManager, domain.RoleTenant, domain.RoleCaretaker:
	default:
		return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	exists, err := a.store.HasUserEmail(email)
	if err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, ErrEmailAlreadyExists
	}
	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:                     util.NewID(),
		FirstName:              strings.TrimSpace(in.FirstName),
		LastName:               strings.TrimSpace(in.LastName),
		Email:                  email,
		PasswordHash:           passwordHash,
		Role:                   role,
		LanguagePreference:     in.LanguagePreference,
		NotificationPreference: in.NotificationPreference,
		IsActive:               true,
		CreatedAt:              time.Now().UTC(),
	}
	if role == domain.RoleTenant {
		user.TenantApproval = domain.ApprovalPending
	}
	if err := a.store.CreateUser(user); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login validates credentials and returns the account.
func (a *App) Login(email, password string) (domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.User{}, ErrUserDisabled
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns a single user.
func (a *App) GetUser(id string) (domain.User, error) {
	user, ok, err := a.store.GetUser(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return user, nil
}

// ListUsers returns all users (admin use only).
func (a *App) ListUsers() ([]domain.User, error) {
	return a.store.ListUsers()
}

// UpdateUserInput carries the admin-editable fields; nil means unchanged.
type UpdateUserInput struct {
	FirstName              *string
	LastName               *string
	Role                   *domain.UserRole
	IsActive               *bool
	TenantApproval         *domain.TenantApproval
	LanguagePreference     *string
	NotificationPreference *string
}

// UpdateUser applies an admin edit to an account.
func (a *App) UpdateUser(id string, in UpdateUserInput) (domain.User, error) {
	user, ok, err := a.store.GetUser(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrNotFound
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.TenantApproval != nil {
		user.TenantApproval = *in.TenantApproval
	}
	if in.LanguagePreference != nil {
		user.LanguagePreference = *in.LanguagePreference
	}
	if in.NotificationPreference != nil {
		user.NotificationPreference = *in.NotificationPreference
	}
	if err := a.store.UpdateUser(user); err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account.
func (a *App) DeleteUser(id string) error {
	_, ok, err := a.store.GetUser(id)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return a.store.DeleteUser(id)
}

// SetFCMToken registers the device push token for an account.
func (a *App) SetFCMToken(userID, token string) error {
	_, ok, err := a.store.GetUser(userID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return a.store.SetUserFCMToken(userID, strings.TrimSpace(token))
}
