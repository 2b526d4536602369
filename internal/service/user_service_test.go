package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sethuso/product-management-system/internal/models"
	"github.com/Sethuso/product-management-system/internal/utils"
)

type stubUserStore struct {
	byEmail map[string]*models.User
	nextID  int64
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byEmail: make(map[string]*models.User)}
}

func (s *stubUserStore) Create(u *models.User) error {
	s.nextID++
	u.ID = s.nextID
	s.byEmail[u.Email] = u
	return nil
}

func (s *stubUserStore) GetByEmail(email string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (s *stubUserStore) GetByID(id int64) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubUserStore) UpdateRole(userID, roleID int64) error {
	u, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	u.RoleID = roleID
	return nil
}

func (s *stubUserStore) Deactivate(userID int64) error {
	u, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	u.IsActive = false
	return nil
}

type stubRoleStore struct {
	roles map[string]*models.Role
}

func newStubRoleStore() *stubRoleStore {
	return &stubRoleStore{roles: map[string]*models.Role{
		models.RoleUser:  {ID: 1, Name: models.RoleUser},
		models.RoleAdmin: {ID: 2, Name: models.RoleAdmin},
	}}
}

func (s *stubRoleStore) Create(role *models.Role) error {
	role.ID = int64(len(s.roles) + 1)
	s.roles[role.Name] = role
	return nil
}

func (s *stubRoleStore) GetByName(name string) (*models.Role, error) {
	r, ok := s.roles[name]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func newTestUserService() *UserService {
	return NewUserService(newStubUserStore(), newStubRoleStore(), NewTokenService(testSecret))
}

func TestRegister_DefaultsToUserRole(t *testing.T) {
	svc := newTestUserService()

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.RoleName)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice2", "alice@example.com", "otherpass")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Register(context.Background(), "", "alice@example.com", "s3cretpass")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestLogin_IssuesTokenWithRoleClaim(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "Invalid credentials", appErr.Message)
}

func TestLogin_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "Invalid credentials", appErr.Message)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc := newTestUserService()

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateUser(context.Background(), user.ID))

	_, err = svc.Login(context.Background(), "alice@example.com", "s3cretpass")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Equal(t, "Account is inactive", appErr.Message)
}

func TestAssignRole(t *testing.T) {
	users := newStubUserStore()
	svc := NewUserService(users, newStubRoleStore(), NewTokenService(testSecret))

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	require.NoError(t, svc.AssignRole(context.Background(), "alice@example.com", models.RoleAdmin))
	assert.Equal(t, int64(2), users.byEmail["alice@example.com"].RoleID)

	err = svc.AssignRole(context.Background(), "nobody@example.com", models.RoleAdmin)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)

	err = svc.AssignRole(context.Background(), user.Email, "SUPERVISOR")
	appErr, ok = utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestCreateRole_NormalizesAndRejectsDuplicates(t *testing.T) {
	svc := newTestUserService()

	role, err := svc.CreateRole(context.Background(), "  auditor ")
	require.NoError(t, err)
	assert.Equal(t, "AUDITOR", role.Name)

	_, err = svc.CreateRole(context.Background(), "admin")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestValidateToken_TranslatesFailures(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.ValidateToken(context.Background(), "")
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)

	_, err = svc.ValidateToken(context.Background(), "garbage")
	appErr, ok = utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
}
