package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/Sethuso/product-management-system/internal/models"
)

// UserRepository handles data access for users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
    u.id, u.username, u.email, u.password_hash, u.role_id,
    r.name AS role_name, u.is_active, u.created_at, u.updated_at`

// Create inserts a user and fills in its generated id and timestamps.
func (r *UserRepository) Create(u *models.User) error {
	const q = `
        INSERT INTO users (username, email, password_hash, role_id, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRowx(q, u.Username, u.Email, u.PasswordHash, u.RoleID, u.IsActive).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// GetByEmail returns a user with its role name resolved.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	q := `SELECT ` + userColumns + `
        FROM users u JOIN roles r ON r.id = u.role_id
        WHERE u.email = $1 LIMIT 1`
	var u models.User
	if err := r.db.Get(&u, q, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user with its role name resolved.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	q := `SELECT ` + userColumns + `
        FROM users u JOIN roles r ON r.id = u.role_id
        WHERE u.id = $1 LIMIT 1`
	var u models.User
	if err := r.db.Get(&u, q, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateRole reassigns the user's role.
func (r *UserRepository) UpdateRole(userID, roleID int64) error {
	_, err := r.db.Exec(`UPDATE users SET role_id = $1, updated_at = NOW() WHERE id = $2`, roleID, userID)
	return err
}

// Deactivate soft-deletes a user by clearing its is_active flag.
func (r *UserRepository) Deactivate(userID int64) error {
	_, err := r.db.Exec(`UPDATE users SET is_active = false, updated_at = NOW() WHERE id = $1`, userID)
	return err
}
