package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/apperrors"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/repositories"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/scoring"
)

// QuestionAggregate combines the three question sources for a (profile, role)
// pair. A source is null when it has no row or its read failed; Errors holds
// the first per-source failure message so missing data never aborts the
// aggregate.
type QuestionAggregate struct {
	ProfileQuestions []string `json:"profileQuestions"`
	RoleQuestions    []string `json:"roleQuestions"`
	CustomQuestions  []string `json:"customQuestions"`
	Errors           *string  `json:"errors"`
}

// QuestionService serves screening questions: lazy candidate-specific
// generation, the combined three-source read, and recruiter-authored
// custom sets.
type QuestionService interface {
	// GetOrGenerateProfileQuestions returns the stored question set for the
	// pair, generating and persisting one on first read. A stored set is
	// returned without calling the scoring service again. On a cold cache
	// an upstream failure propagates to the caller.
	GetOrGenerateProfileQuestions(ctx context.Context, profileID, roleID int64) ([]string, error)

	// GetAllQuestions reads the three question sources concurrently and
	// merges them into a single best-available response.
	GetAllQuestions(ctx context.Context, profileID, roleID int64) *QuestionAggregate

	// SaveCustomQuestions upserts the recruiter-authored question set for a
	// role, keeping at most one row per role.
	SaveCustomQuestions(ctx context.Context, roleID int64, questions []string) (*models.CustomRoleScreenQuestions, error)
}

type questionService struct {
	scoringClient       scoring.Client
	roleRepo            repositories.RoleRepository
	profileRepo         repositories.ProfileRepository
	roleQuestionRepo    repositories.RoleQuestionRepository
	profileQuestionRepo repositories.ProfileQuestionRepository
	customQuestionRepo  repositories.CustomQuestionRepository
	logger              *zap.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(
	scoringClient scoring.Client,
	roleRepo repositories.RoleRepository,
	profileRepo repositories.ProfileRepository,
	roleQuestionRepo repositories.RoleQuestionRepository,
	profileQuestionRepo repositories.ProfileQuestionRepository,
	customQuestionRepo repositories.CustomQuestionRepository,
	logger *zap.Logger,
) QuestionService {
	return &questionService{
		scoringClient:       scoringClient,
		roleRepo:            roleRepo,
		profileRepo:         profileRepo,
		roleQuestionRepo:    roleQuestionRepo,
		profileQuestionRepo: profileQuestionRepo,
		customQuestionRepo:  customQuestionRepo,
		logger:              logger,
	}
}

var _ QuestionService = (*questionService)(nil)

func (s *questionService) GetOrGenerateProfileQuestions(ctx context.Context, profileID, roleID int64) ([]string, error) {
	existing, err := s.profileQuestionRepo.GetByProfileAndRole(ctx, profileID, roleID)
	if err != nil {
		return nil, fmt.Errorf("read profile questions: %w", err)
	}
	if existing != nil {
		return existing.Questions, nil
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %d: %w", profileID, apperrors.ErrNotFound)
	}

	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("load role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("role %d: %w", roleID, apperrors.ErrNotFound)
	}

	questions, err := s.scoringClient.GenerateCandidateQuestions(ctx, profile.ProfileURL, role.JobDescription)
	if err != nil {
		return nil, fmt.Errorf("generate candidate questions: %w", err)
	}

	if len(questions) == 0 {
		// Service had nothing to say; do not cache an empty set.
		return nil, nil
	}

	row := &models.ProfileScreenQuestions{
		RoleID:    roleID,
		ProfileID: profileID,
		Questions: questions,
	}
	// Two readers racing on a cold cache both reach this insert; the unique
	// key on (profile_id, role_id) lets the first win. The generated
	// questions are still returned to this caller either way.
	if err := s.profileQuestionRepo.Create(ctx, row); err != nil {
		s.logger.Error("Failed to cache profile questions",
			zap.Int64("profile_id", profileID),
			zap.Int64("role_id", roleID),
			zap.Error(err))
	}

	return questions, nil
}

func (s *questionService) GetAllQuestions(ctx context.Context, profileID, roleID int64) *QuestionAggregate {
	agg := &QuestionAggregate{}
	// One error slot per source, in the order errors are reported:
	// profile, role, custom.
	sourceErrs := make([]error, 3)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		row, err := s.profileQuestionRepo.GetByProfileAndRole(ctx, profileID, roleID)
		switch {
		case err != nil:
			sourceErrs[0] = err
		case row == nil:
			sourceErrs[0] = fmt.Errorf("profile questions: %w", apperrors.ErrNotFound)
		default:
			agg.ProfileQuestions = row.Questions
		}
	}()

	go func() {
		defer wg.Done()
		row, err := s.roleQuestionRepo.GetByRole(ctx, roleID)
		switch {
		case err != nil:
			sourceErrs[1] = err
		case row == nil:
			sourceErrs[1] = fmt.Errorf("role questions: %w", apperrors.ErrNotFound)
		default:
			agg.RoleQuestions = row.Questions
		}
	}()

	go func() {
		defer wg.Done()
		row, err := s.customQuestionRepo.GetByRole(ctx, roleID)
		switch {
		case err != nil:
			sourceErrs[2] = err
		case row == nil:
			sourceErrs[2] = fmt.Errorf("custom questions: %w", apperrors.ErrNotFound)
		default:
			agg.CustomQuestions = row.Questions
		}
	}()

	wg.Wait()

	for _, err := range sourceErrs {
		if err != nil {
			msg := err.Error()
			agg.Errors = &msg
			break
		}
	}

	return agg
}

func (s *questionService) SaveCustomQuestions(ctx context.Context, roleID int64, questions []string) (*models.CustomRoleScreenQuestions, error) {
	row, err := s.customQuestionRepo.Upsert(ctx, roleID, questions)
	if err != nil {
		return nil, fmt.Errorf("save custom questions: %w", err)
	}
	return row, nil
}
