package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/database"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
)

// AssessmentRepository provides data access for interview assessments.
type AssessmentRepository interface {
	// Create inserts a new assessment and fills in its generated id.
	// Multiple assessments per (profile, role) pair are allowed.
	Create(ctx context.Context, assessment *models.Assessment) error

	// GetByProfileAndRole retrieves the most recent assessment for a
	// (profile, role) pair. Returns (nil, nil) when absent.
	GetByProfileAndRole(ctx context.Context, profileID, roleID int64) (*models.Assessment, error)
}

type assessmentRepository struct {
	db *database.DB
}

// NewAssessmentRepository creates a new AssessmentRepository.
func NewAssessmentRepository(db *database.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

var _ AssessmentRepository = (*assessmentRepository)(nil)

func (r *assessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	query := `
		INSERT INTO assessments (profile_id, role_id, assessment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		assessment.ProfileID, assessment.RoleID, []byte(assessment.Assessment),
	).Scan(&assessment.ID, &assessment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}

	return nil
}

func (r *assessmentRepository) GetByProfileAndRole(ctx context.Context, profileID, roleID int64) (*models.Assessment, error) {
	query := `
		SELECT id, profile_id, role_id, assessment, created_at
		FROM assessments
		WHERE profile_id = $1 AND role_id = $2
		ORDER BY id DESC
		LIMIT 1`

	var a models.Assessment
	var payload []byte
	err := r.db.QueryRow(ctx, query, profileID, roleID).
		Scan(&a.ID, &a.ProfileID, &a.RoleID, &payload, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get assessment: %w", err)
	}

	a.Assessment = json.RawMessage(payload)
	return &a, nil
}
