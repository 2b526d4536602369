package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sethuso/product-management-system/internal/models"
	"github.com/Sethuso/product-management-system/internal/utils"
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	Create(u *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
	UpdateRole(userID, roleID int64) error
	Deactivate(userID int64) error
}

// RoleStore is the role persistence surface.
type RoleStore interface {
	Create(role *models.Role) error
	GetByName(name string) (*models.Role, error)
}

// UserService handles registration, credentials, and role assignment.
type UserService struct {
	users  UserStore
	roles  RoleStore
	tokens *TokenService
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, roles RoleStore, tokens *TokenService) *UserService {
	return &UserService{users: users, roles: roles, tokens: tokens}
}

// Register creates a new active user with the default USER role.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, utils.NewValidationError("Username, email, and password are required")
	}

	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, utils.NewConflictError("User with this email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	role, err := s.roles.GetByName(models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("default role %q missing: %w", models.RoleUser, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		RoleName:     role.Name,
		IsActive:     true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues a bearer token carrying the
// user's role claim.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", utils.NewAuthError("Invalid credentials")
		}
		return "", fmt.Errorf("fetching user: %w", err)
	}

	if !user.IsActive {
		log.Warn().Str("email", email).Msg("login attempt for inactive account")
		return "", utils.NewAuthError("Account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", utils.NewAuthError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.Email, user.Username, user.RoleName)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	log.Info().Str("email", user.Email).Str("role", user.RoleName).Msg("login successful")
	return token, nil
}

// ValidateToken checks a token and returns its claims, translating
// verification failures into client-safe auth errors.
func (s *UserService) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			return nil, utils.NewAuthError("Token has expired. Please log in again")
		case errors.Is(err, ErrTokenSignature):
			return nil, utils.NewAuthError("Token signature could not be verified")
		case errors.Is(err, ErrTokenEmpty):
			return nil, utils.NewAuthError("Token must not be empty")
		default:
			return nil, utils.NewAuthError("Token is malformed")
		}
	}
	return claims, nil
}

// AssignRole changes a user's role by email.
func (s *UserService) AssignRole(ctx context.Context, email, roleName string) error {
	user, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.NewNotFoundError(fmt.Sprintf("User not found with email: %s", email))
		}
		return fmt.Errorf("fetching user: %w", err)
	}

	role, err := s.roles.GetByName(strings.TrimSpace(roleName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.NewNotFoundError(fmt.Sprintf("Role not found with name: %s", roleName))
		}
		return fmt.Errorf("fetching role: %w", err)
	}

	if err := s.users.UpdateRole(user.ID, role.ID); err != nil {
		return fmt.Errorf("assigning role: %w", err)
	}

	log.Info().Str("email", user.Email).Str("role", role.Name).Msg("role assigned")
	return nil
}

// DeactivateUser soft-deletes a user; the row is kept for audit.
func (s *UserService) DeactivateUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.NewNotFoundError(fmt.Sprintf("User not found with ID: %d", userID))
		}
		return fmt.Errorf("fetching user: %w", err)
	}

	if err := s.users.Deactivate(userID); err != nil {
		return fmt.Errorf("deactivating user: %w", err)
	}
	return nil
}

// GetUserByEmail returns a user by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("User not found with email: %s", email))
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

// CreateRole adds a new role name.
func (s *UserService) CreateRole(ctx context.Context, name string) (*models.Role, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, utils.NewValidationError("Role name must not be empty")
	}

	if _, err := s.roles.GetByName(name); err == nil {
		return nil, utils.NewConflictError(fmt.Sprintf("Role with name %s already exists", name))
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checking role name: %w", err)
	}

	role := &models.Role{Name: name}
	if err := s.roles.Create(role); err != nil {
		return nil, fmt.Errorf("creating role: %w", err)
	}
	return role, nil
}
