package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/repositories"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/scoring"
)

// EnrichmentService runs the scoring-service workflows triggered by role and
// profile creation. Enrichment is best-effort: the primary entity has already
// been committed when these run, so every failure here is logged and reported
// back as an error the caller may ignore, never rolled into the entity's
// creation response.
type EnrichmentService interface {
	// GenerateRoleQuestions asks the scoring service for screening questions
	// for a newly created role and stores them. When the service returns no
	// question list the workflow ends silently; an empty upstream response
	// must not create a row with null content.
	GenerateRoleQuestions(ctx context.Context, role *models.Role) error

	// EnrichProfile scores a newly created profile against its role and
	// extracts the structured resume summary. The two upstream calls run in
	// sequence; within the extraction step the summary insert and the
	// contact update are both attempted even if one fails. Returns nil only
	// when every step succeeded.
	EnrichProfile(ctx context.Context, profile *models.Profile, role *models.Role) error

	// ReextractProfile re-runs resume extraction for an existing profile
	// and returns the stored summary. Unlike EnrichProfile this is a
	// caller-facing operation, so failures surface instead of being
	// swallowed.
	ReextractProfile(ctx context.Context, profileID int64, profileURL string) (*models.ProfileSummary, error)
}

type enrichmentService struct {
	scoringClient   scoring.Client
	profileRepo     repositories.ProfileRepository
	summaryRepo     repositories.ProfileSummaryRepository
	roleQuestionRepo repositories.RoleQuestionRepository
	logger          *zap.Logger
}

// NewEnrichmentService creates a new EnrichmentService.
func NewEnrichmentService(
	scoringClient scoring.Client,
	profileRepo repositories.ProfileRepository,
	summaryRepo repositories.ProfileSummaryRepository,
	roleQuestionRepo repositories.RoleQuestionRepository,
	logger *zap.Logger,
) EnrichmentService {
	return &enrichmentService{
		scoringClient:    scoringClient,
		profileRepo:      profileRepo,
		summaryRepo:      summaryRepo,
		roleQuestionRepo: roleQuestionRepo,
		logger:           logger,
	}
}

var _ EnrichmentService = (*enrichmentService)(nil)

func (s *enrichmentService) GenerateRoleQuestions(ctx context.Context, role *models.Role) error {
	questions, err := s.scoringClient.GenerateRoleQuestions(ctx, role.JobDescription)
	if err != nil {
		s.logger.Error("Failed to generate role questions",
			zap.Int64("role_id", role.ID),
			zap.Error(err))
		return fmt.Errorf("generate role questions: %w", err)
	}

	if len(questions) == 0 {
		// Nothing usable came back; do not store an empty set.
		s.logger.Info("Scoring service returned no role questions",
			zap.Int64("role_id", role.ID))
		return nil
	}

	row := &models.RoleScreenQuestions{
		RoleID:    role.ID,
		Questions: questions,
	}
	if err := s.roleQuestionRepo.Create(ctx, row); err != nil {
		s.logger.Error("Failed to store role questions",
			zap.Int64("role_id", role.ID),
			zap.Error(err))
		return fmt.Errorf("store role questions: %w", err)
	}

	return nil
}

func (s *enrichmentService) EnrichProfile(ctx context.Context, profile *models.Profile, role *models.Role) error {
	var errs []error

	if err := s.scoreProfile(ctx, profile, role); err != nil {
		s.logger.Error("Profile scoring step failed",
			zap.Int64("profile_id", profile.ID),
			zap.Int64("role_id", role.ID),
			zap.Error(err))
		errs = append(errs, err)
	}

	if _, err := s.extractProfile(ctx, profile.ID, profile.ProfileURL); err != nil {
		s.logger.Error("Profile extraction step failed",
			zap.Int64("profile_id", profile.ID),
			zap.Error(err))
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (s *enrichmentService) ReextractProfile(ctx context.Context, profileID int64, profileURL string) (*models.ProfileSummary, error) {
	return s.extractProfile(ctx, profileID, profileURL)
}

// scoreProfile runs the match call and writes score, match reasons and
// severity-bucketed red flags onto the profile row.
func (s *enrichmentService) scoreProfile(ctx context.Context, profile *models.Profile, role *models.Role) error {
	match, err := s.scoringClient.MatchResumeToJob(ctx, profile.ProfileURL, role.JobDescription)
	if err != nil {
		return fmt.Errorf("match resume to job: %w", err)
	}

	redFlags := remapRedFlags(match.RedFlags)

	// The update filters by both id and role_id; a mismatch silently
	// matches zero rows, which is fine because the linkage was fixed when
	// the profile was inserted.
	if err := s.profileRepo.UpdateScoring(ctx, profile.ID, role.ID, match.Score, match.MatchReasons, redFlags); err != nil {
		return fmt.Errorf("store profile scoring: %w", err)
	}

	return nil
}

// extractProfile runs the resume extraction call, stores the structured
// summary, and copies name and email from the Personal Information section
// onto the profile. The insert and the update are independent writes; one
// failing must not stop the other.
func (s *enrichmentService) extractProfile(ctx context.Context, profileID int64, profileURL string) (*models.ProfileSummary, error) {
	extracted, err := s.scoringClient.ExtractCandidateProfile(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("extract candidate profile: %w", err)
	}

	var errs []error

	summary := &models.ProfileSummary{
		ProfileID:    profileID,
		PersonalInfo: extracted.PersonalInfo,
		WorkHistory:  extracted.WorkHistory,
		Projects:     extracted.Projects,
		Education:    extracted.Education,
		Skills:       extracted.Skills,
	}
	if err := s.summaryRepo.Create(ctx, summary); err != nil {
		errs = append(errs, fmt.Errorf("store profile summary: %w", err))
	}

	var personal scoring.PersonalInfo
	if len(extracted.PersonalInfo) > 0 {
		if err := json.Unmarshal(extracted.PersonalInfo, &personal); err != nil {
			s.logger.Warn("Personal information section is not an object",
				zap.Int64("profile_id", profileID),
				zap.Error(err))
		}
	}
	if err := s.profileRepo.UpdateContact(ctx, profileID, personal.Name, personal.Email); err != nil {
		errs = append(errs, fmt.Errorf("update profile contact: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return summary, nil
}

// remapRedFlags converts the scoring service's numeric severity buckets to
// the named buckets the store uses: "1" is high, "2" medium, "3" low.
func remapRedFlags(flags map[string][]string) *models.RedFlags {
	return &models.RedFlags{
		High:   flags["1"],
		Medium: flags["2"],
		Low:    flags["3"],
	}
}
