package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/database"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
)

// RoleRepository provides data access for roles.
type RoleRepository interface {
	// Create inserts a new role and fills in its generated id.
	Create(ctx context.Context, role *models.Role) error

	// List returns all roles.
	List(ctx context.Context) ([]*models.Role, error)

	// GetByID retrieves a role by ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*models.Role, error)
}

type roleRepository struct {
	db *database.DB
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(db *database.DB) RoleRepository {
	return &roleRepository{db: db}
}

var _ RoleRepository = (*roleRepository)(nil)

func (r *roleRepository) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (name, job_description)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, role.Name, role.JobDescription).
		Scan(&role.ID, &role.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert role: %w", err)
	}

	return nil
}

func (r *roleRepository) List(ctx context.Context) ([]*models.Role, error) {
	query := `
		SELECT id, name, job_description, created_at
		FROM roles
		ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]*models.Role, 0)
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.JobDescription, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}

	return roles, nil
}

func (r *roleRepository) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	query := `
		SELECT id, name, job_description, created_at
		FROM roles
		WHERE id = $1`

	var role models.Role
	err := r.db.QueryRow(ctx, query, id).
		Scan(&role.ID, &role.Name, &role.JobDescription, &role.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by id: %w", err)
	}

	return &role, nil
}
