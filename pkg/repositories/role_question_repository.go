package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/database"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
)

// RoleQuestionRepository provides data access for generated role questions.
type RoleQuestionRepository interface {
	// Create inserts the question set for a role.
	Create(ctx context.Context, questions *models.RoleScreenQuestions) error

	// GetByRole retrieves the question set for a role. Returns (nil, nil)
	// when absent.
	GetByRole(ctx context.Context, roleID int64) (*models.RoleScreenQuestions, error)
}

type roleQuestionRepository struct {
	db *database.DB
}

// NewRoleQuestionRepository creates a new RoleQuestionRepository.
func NewRoleQuestionRepository(db *database.DB) RoleQuestionRepository {
	return &roleQuestionRepository{db: db}
}

var _ RoleQuestionRepository = (*roleQuestionRepository)(nil)

func (r *roleQuestionRepository) Create(ctx context.Context, questions *models.RoleScreenQuestions) error {
	questionsJSON, err := json.Marshal(questions.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	query := `
		INSERT INTO role_screen_questions (role_id, questions)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err = r.db.QueryRow(ctx, query, questions.RoleID, questionsJSON).
		Scan(&questions.ID, &questions.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert role questions: %w", err)
	}

	return nil
}

func (r *roleQuestionRepository) GetByRole(ctx context.Context, roleID int64) (*models.RoleScreenQuestions, error) {
	query := `
		SELECT id, role_id, questions, created_at
		FROM role_screen_questions
		WHERE role_id = $1`

	var q models.RoleScreenQuestions
	var questionsJSON []byte
	err := r.db.QueryRow(ctx, query, roleID).
		Scan(&q.ID, &q.RoleID, &questionsJSON, &q.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get role questions: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}

	return &q, nil
}
