package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/database"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
)

// ProfileQuestionRepository provides data access for candidate-specific
// screening questions.
type ProfileQuestionRepository interface {
	// Create inserts the question set for a (profile, role) pair. Concurrent
	// readers racing on a cold cache may both attempt the insert; the unique
	// key on (profile_id, role_id) makes the first writer win and the rest
	// no-ops.
	Create(ctx context.Context, questions *models.ProfileScreenQuestions) error

	// GetByProfileAndRole retrieves the question set for a (profile, role)
	// pair. Returns (nil, nil) when absent.
	GetByProfileAndRole(ctx context.Context, profileID, roleID int64) (*models.ProfileScreenQuestions, error)
}

type profileQuestionRepository struct {
	db *database.DB
}

// NewProfileQuestionRepository creates a new ProfileQuestionRepository.
func NewProfileQuestionRepository(db *database.DB) ProfileQuestionRepository {
	return &profileQuestionRepository{db: db}
}

var _ ProfileQuestionRepository = (*profileQuestionRepository)(nil)

func (r *profileQuestionRepository) Create(ctx context.Context, questions *models.ProfileScreenQuestions) error {
	questionsJSON, err := json.Marshal(questions.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	query := `
		INSERT INTO profile_screen_questions (role_id, profile_id, questions)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id, role_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, questions.RoleID, questions.ProfileID, questionsJSON); err != nil {
		return fmt.Errorf("insert profile questions: %w", err)
	}

	return nil
}

func (r *profileQuestionRepository) GetByProfileAndRole(ctx context.Context, profileID, roleID int64) (*models.ProfileScreenQuestions, error) {
	query := `
		SELECT id, role_id, profile_id, questions, created_at
		FROM profile_screen_questions
		WHERE profile_id = $1 AND role_id = $2`

	var q models.ProfileScreenQuestions
	var questionsJSON []byte
	err := r.db.QueryRow(ctx, query, profileID, roleID).
		Scan(&q.ID, &q.RoleID, &q.ProfileID, &questionsJSON, &q.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile questions: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}

	return &q, nil
}
