package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/database"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
)

// CustomQuestionRepository provides data access for recruiter-authored
// role questions.
type CustomQuestionRepository interface {
	// Upsert writes the question set for a role, replacing any existing set
	// in a single statement so concurrent writers cannot create duplicate
	// rows. Returns the stored row.
	Upsert(ctx context.Context, roleID int64, questions []string) (*models.CustomRoleScreenQuestions, error)

	// GetByRole retrieves the question set for a role. Returns (nil, nil)
	// when absent.
	GetByRole(ctx context.Context, roleID int64) (*models.CustomRoleScreenQuestions, error)
}

type customQuestionRepository struct {
	db *database.DB
}

// NewCustomQuestionRepository creates a new CustomQuestionRepository.
func NewCustomQuestionRepository(db *database.DB) CustomQuestionRepository {
	return &customQuestionRepository{db: db}
}

var _ CustomQuestionRepository = (*customQuestionRepository)(nil)

func (r *customQuestionRepository) Upsert(ctx context.Context, roleID int64, questions []string) (*models.CustomRoleScreenQuestions, error) {
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}

	query := `
		INSERT INTO custom_role_screen_questions (role_id, questions)
		VALUES ($1, $2)
		ON CONFLICT (role_id) DO UPDATE SET questions = EXCLUDED.questions
		RETURNING id, role_id, questions, created_at`

	q, err := scanCustomQuestions(r.db.QueryRow(ctx, query, roleID, questionsJSON))
	if err != nil {
		return nil, fmt.Errorf("upsert custom questions: %w", err)
	}

	return q, nil
}

func (r *customQuestionRepository) GetByRole(ctx context.Context, roleID int64) (*models.CustomRoleScreenQuestions, error) {
	query := `
		SELECT id, role_id, questions, created_at
		FROM custom_role_screen_questions
		WHERE role_id = $1`

	q, err := scanCustomQuestions(r.db.QueryRow(ctx, query, roleID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get custom questions: %w", err)
	}

	return q, nil
}

func scanCustomQuestions(row pgx.Row) (*models.CustomRoleScreenQuestions, error) {
	var q models.CustomRoleScreenQuestions
	var questionsJSON []byte

	if err := row.Scan(&q.ID, &q.RoleID, &questionsJSON, &q.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}

	return &q, nil
}
