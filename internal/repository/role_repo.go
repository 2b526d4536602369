package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/Sethuso/product-management-system/internal/models"
)

// RoleRepository handles data access for roles.
type RoleRepository struct {
	db *sqlx.DB
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create inserts a role and fills in its generated id.
func (r *RoleRepository) Create(role *models.Role) error {
	const q = `INSERT INTO roles (name) VALUES ($1) RETURNING id`
	return r.db.QueryRowx(q, role.Name).Scan(&role.ID)
}

// GetByName returns a role by its unique name.
func (r *RoleRepository) GetByName(name string) (*models.Role, error) {
	const q = `SELECT * FROM roles WHERE name = $1 LIMIT 1`
	var role models.Role
	if err := r.db.Get(&role, q, name); err != nil {
		return nil, err
	}
	return &role, nil
}
