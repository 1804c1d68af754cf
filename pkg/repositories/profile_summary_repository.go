package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/apperrors"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/database"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
)

// ProfileSummaryRepository provides data access for extracted profile summaries.
type ProfileSummaryRepository interface {
	// Create inserts a new summary and fills in its generated id.
	Create(ctx context.Context, summary *models.ProfileSummary) error

	// ListByProfile returns all summaries stored for a profile.
	ListByProfile(ctx context.Context, profileID int64) ([]*models.ProfileSummary, error)

	// Update overwrites the non-nil sections of the summary for a profile
	// and returns the updated row. Returns apperrors.ErrNotFound when no
	// summary exists for the profile.
	Update(ctx context.Context, summary *models.ProfileSummary) (*models.ProfileSummary, error)
}

type profileSummaryRepository struct {
	db *database.DB
}

// NewProfileSummaryRepository creates a new ProfileSummaryRepository.
func NewProfileSummaryRepository(db *database.DB) ProfileSummaryRepository {
	return &profileSummaryRepository{db: db}
}

var _ ProfileSummaryRepository = (*profileSummaryRepository)(nil)

const summaryColumns = `id, profile_id, pi, work_history, projects, education, skills, created_at`

func (r *profileSummaryRepository) Create(ctx context.Context, summary *models.ProfileSummary) error {
	query := `
		INSERT INTO profile_summaries (profile_id, pi, work_history, projects, education, skills)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		summary.ProfileID,
		rawJSON(summary.PersonalInfo), rawJSON(summary.WorkHistory),
		rawJSON(summary.Projects), rawJSON(summary.Education), rawJSON(summary.Skills),
	).Scan(&summary.ID, &summary.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert profile summary: %w", err)
	}

	return nil
}

func (r *profileSummaryRepository) ListByProfile(ctx context.Context, profileID int64) ([]*models.ProfileSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM profile_summaries
		WHERE profile_id = $1
		ORDER BY id ASC`, summaryColumns)

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list profile summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]*models.ProfileSummary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile summaries: %w", err)
	}

	return summaries, nil
}

func (r *profileSummaryRepository) Update(ctx context.Context, summary *models.ProfileSummary) (*models.ProfileSummary, error) {
	// Only the sections present in the request are overwritten.
	setClauses := []string{}
	args := []interface{}{summary.ProfileID}
	argIdx := 2

	for _, section := range []struct {
		column string
		value  json.RawMessage
	}{
		{"pi", summary.PersonalInfo},
		{"work_history", summary.WorkHistory},
		{"projects", summary.Projects},
		{"education", summary.Education},
		{"skills", summary.Skills},
	} {
		if section.value != nil {
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", section.column, argIdx))
			args = append(args, []byte(section.value))
			argIdx++
		}
	}

	if len(setClauses) == 0 {
		// Nothing to change; behave as a read.
		summaries, err := r.ListByProfile(ctx, summary.ProfileID)
		if err != nil {
			return nil, err
		}
		if len(summaries) == 0 {
			return nil, apperrors.ErrNotFound
		}
		return summaries[0], nil
	}

	query := fmt.Sprintf(`
		UPDATE profile_summaries
		SET %s
		WHERE profile_id = $1
		RETURNING %s`, strings.Join(setClauses, ", "), summaryColumns)

	s, err := scanSummary(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("update profile summary: %w", err)
	}

	return s, nil
}

func scanSummary(row pgx.Row) (*models.ProfileSummary, error) {
	var s models.ProfileSummary
	var pi, workHistory, projects, education, skills []byte

	err := row.Scan(&s.ID, &s.ProfileID, &pi, &workHistory, &projects, &education, &skills, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	s.PersonalInfo = json.RawMessage(pi)
	s.WorkHistory = json.RawMessage(workHistory)
	s.Projects = json.RawMessage(projects)
	s.Education = json.RawMessage(education)
	s.Skills = json.RawMessage(skills)

	return &s, nil
}

// rawJSON converts a RawMessage to a driver-friendly value, mapping nil to
// SQL NULL instead of the invalid empty JSON document.
func rawJSON(m json.RawMessage) interface{} {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
