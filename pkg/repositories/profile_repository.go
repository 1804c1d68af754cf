package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/database"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
)

// ProfileRepository provides data access for candidate profiles.
type ProfileRepository interface {
	// Create inserts a new profile and fills in its generated id.
	Create(ctx context.Context, profile *models.Profile) error

	// ListByRole returns all profiles submitted against a role.
	ListByRole(ctx context.Context, roleID int64) ([]*models.Profile, error)

	// GetByID retrieves a profile by ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*models.Profile, error)

	// UpdateScoring writes the match score, reasons and red flags onto the
	// profile row, filtered by both id and role_id. A role_id mismatch
	// matches zero rows and is not an error; the linkage was fixed at
	// insert time.
	UpdateScoring(ctx context.Context, id, roleID int64, score float64, matchReasons []string, redFlags *models.RedFlags) error

	// UpdateContact writes the extracted name and email onto the profile row.
	UpdateContact(ctx context.Context, id int64, name, email string) error

	// UpdateAssessmentScore sets the assessment score and returns the
	// updated profile. Returns (nil, nil) when the profile does not exist.
	UpdateAssessmentScore(ctx context.Context, id int64, assessmentScore float64) (*models.Profile, error)
}

type profileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *database.DB) ProfileRepository {
	return &profileRepository{db: db}
}

var _ ProfileRepository = (*profileRepository)(nil)

const profileColumns = `id, role_id, profile_url, name, email, score, match_reasons, red_flags, assessment_score, created_at`

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (role_id, profile_url)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, profile.RoleID, profile.ProfileURL).
		Scan(&profile.ID, &profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

func (r *profileRepository) ListByRole(ctx context.Context, roleID int64) ([]*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM profiles
		WHERE role_id = $1
		ORDER BY id ASC`, profileColumns)

	rows, err := r.db.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("list profiles by role: %w", err)
	}
	defer rows.Close()

	profiles := make([]*models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM profiles
		WHERE id = $1`, profileColumns)

	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by id: %w", err)
	}

	return p, nil
}

func (r *profileRepository) UpdateScoring(ctx context.Context, id, roleID int64, score float64, matchReasons []string, redFlags *models.RedFlags) error {
	reasonsJSON, err := json.Marshal(matchReasons)
	if err != nil {
		return fmt.Errorf("marshal match reasons: %w", err)
	}
	flagsJSON, err := json.Marshal(redFlags)
	if err != nil {
		return fmt.Errorf("marshal red flags: %w", err)
	}

	query := `
		UPDATE profiles
		SET score = $3, match_reasons = $4, red_flags = $5
		WHERE id = $1 AND role_id = $2`

	if _, err := r.db.Exec(ctx, query, id, roleID, score, reasonsJSON, flagsJSON); err != nil {
		return fmt.Errorf("update profile scoring: %w", err)
	}

	return nil
}

func (r *profileRepository) UpdateContact(ctx context.Context, id int64, name, email string) error {
	query := `
		UPDATE profiles
		SET name = $2, email = $3
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, nullableString(name), nullableString(email)); err != nil {
		return fmt.Errorf("update profile contact: %w", err)
	}

	return nil
}

func (r *profileRepository) UpdateAssessmentScore(ctx context.Context, id int64, assessmentScore float64) (*models.Profile, error) {
	query := fmt.Sprintf(`
		UPDATE profiles
		SET assessment_score = $2
		WHERE id = $1
		RETURNING %s`, profileColumns)

	p, err := scanProfile(r.db.QueryRow(ctx, query, id, assessmentScore))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("update assessment score: %w", err)
	}

	return p, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	var matchReasonsJSON, redFlagsJSON []byte

	err := row.Scan(
		&p.ID, &p.RoleID, &p.ProfileURL, &p.Name, &p.Email,
		&p.Score, &matchReasonsJSON, &redFlagsJSON, &p.AssessmentScore, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(matchReasonsJSON) > 0 {
		if err := json.Unmarshal(matchReasonsJSON, &p.MatchReasons); err != nil {
			return nil, fmt.Errorf("unmarshal match reasons: %w", err)
		}
	}
	if len(redFlagsJSON) > 0 {
		var flags models.RedFlags
		if err := json.Unmarshal(redFlagsJSON, &flags); err != nil {
			return nil, fmt.Errorf("unmarshal red flags: %w", err)
		}
		p.RedFlags = &flags
	}

	return &p, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
