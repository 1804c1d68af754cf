package repositories

import (
	"context"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
)

// Configurable mocks for testing services and handlers without a database.
// Set the function fields to control behavior; nil fields return zero values.

// MockRoleRepository is a configurable mock for RoleRepository.
type MockRoleRepository struct {
	CreateFunc  func(ctx context.Context, role *models.Role) error
	ListFunc    func(ctx context.Context) ([]*models.Role, error)
	GetByIDFunc func(ctx context.Context, id int64) (*models.Role, error)

	CreateCalls  int
	ListCalls    int
	GetByIDCalls int
}

var _ RoleRepository = (*MockRoleRepository)(nil)

func (m *MockRoleRepository) Create(ctx context.Context, role *models.Role) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, role)
	}
	return nil
}

func (m *MockRoleRepository) List(ctx context.Context) ([]*models.Role, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	m.GetByIDCalls++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

// MockProfileRepository is a configurable mock for ProfileRepository.
type MockProfileRepository struct {
	CreateFunc                func(ctx context.Context, profile *models.Profile) error
	ListByRoleFunc            func(ctx context.Context, roleID int64) ([]*models.Profile, error)
	GetByIDFunc               func(ctx context.Context, id int64) (*models.Profile, error)
	UpdateScoringFunc         func(ctx context.Context, id, roleID int64, score float64, matchReasons []string, redFlags *models.RedFlags) error
	UpdateContactFunc         func(ctx context.Context, id int64, name, email string) error
	UpdateAssessmentScoreFunc func(ctx context.Context, id int64, assessmentScore float64) (*models.Profile, error)

	CreateCalls                int
	ListByRoleCalls            int
	GetByIDCalls               int
	UpdateScoringCalls         int
	UpdateContactCalls         int
	UpdateAssessmentScoreCalls int
}

var _ ProfileRepository = (*MockProfileRepository)(nil)

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) ListByRole(ctx context.Context, roleID int64) ([]*models.Profile, error) {
	m.ListByRoleCalls++
	if m.ListByRoleFunc != nil {
		return m.ListByRoleFunc(ctx, roleID)
	}
	return nil, nil
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	m.GetByIDCalls++
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProfileRepository) UpdateScoring(ctx context.Context, id, roleID int64, score float64, matchReasons []string, redFlags *models.RedFlags) error {
	m.UpdateScoringCalls++
	if m.UpdateScoringFunc != nil {
		return m.UpdateScoringFunc(ctx, id, roleID, score, matchReasons, redFlags)
	}
	return nil
}

func (m *MockProfileRepository) UpdateContact(ctx context.Context, id int64, name, email string) error {
	m.UpdateContactCalls++
	if m.UpdateContactFunc != nil {
		return m.UpdateContactFunc(ctx, id, name, email)
	}
	return nil
}

func (m *MockProfileRepository) UpdateAssessmentScore(ctx context.Context, id int64, assessmentScore float64) (*models.Profile, error) {
	m.UpdateAssessmentScoreCalls++
	if m.UpdateAssessmentScoreFunc != nil {
		return m.UpdateAssessmentScoreFunc(ctx, id, assessmentScore)
	}
	return nil, nil
}

// MockProfileSummaryRepository is a configurable mock for ProfileSummaryRepository.
type MockProfileSummaryRepository struct {
	CreateFunc        func(ctx context.Context, summary *models.ProfileSummary) error
	ListByProfileFunc func(ctx context.Context, profileID int64) ([]*models.ProfileSummary, error)
	UpdateFunc        func(ctx context.Context, summary *models.ProfileSummary) (*models.ProfileSummary, error)

	CreateCalls        int
	ListByProfileCalls int
	UpdateCalls        int
}

var _ ProfileSummaryRepository = (*MockProfileSummaryRepository)(nil)

func (m *MockProfileSummaryRepository) Create(ctx context.Context, summary *models.ProfileSummary) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, summary)
	}
	return nil
}

func (m *MockProfileSummaryRepository) ListByProfile(ctx context.Context, profileID int64) ([]*models.ProfileSummary, error) {
	m.ListByProfileCalls++
	if m.ListByProfileFunc != nil {
		return m.ListByProfileFunc(ctx, profileID)
	}
	return nil, nil
}

func (m *MockProfileSummaryRepository) Update(ctx context.Context, summary *models.ProfileSummary) (*models.ProfileSummary, error) {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, summary)
	}
	return nil, nil
}

// MockRoleQuestionRepository is a configurable mock for RoleQuestionRepository.
type MockRoleQuestionRepository struct {
	CreateFunc    func(ctx context.Context, questions *models.RoleScreenQuestions) error
	GetByRoleFunc func(ctx context.Context, roleID int64) (*models.RoleScreenQuestions, error)

	CreateCalls    int
	GetByRoleCalls int
}

var _ RoleQuestionRepository = (*MockRoleQuestionRepository)(nil)

func (m *MockRoleQuestionRepository) Create(ctx context.Context, questions *models.RoleScreenQuestions) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, questions)
	}
	return nil
}

func (m *MockRoleQuestionRepository) GetByRole(ctx context.Context, roleID int64) (*models.RoleScreenQuestions, error) {
	m.GetByRoleCalls++
	if m.GetByRoleFunc != nil {
		return m.GetByRoleFunc(ctx, roleID)
	}
	return nil, nil
}

// MockProfileQuestionRepository is a configurable mock for ProfileQuestionRepository.
type MockProfileQuestionRepository struct {
	CreateFunc              func(ctx context.Context, questions *models.ProfileScreenQuestions) error
	GetByProfileAndRoleFunc func(ctx context.Context, profileID, roleID int64) (*models.ProfileScreenQuestions, error)

	CreateCalls              int
	GetByProfileAndRoleCalls int
}

var _ ProfileQuestionRepository = (*MockProfileQuestionRepository)(nil)

func (m *MockProfileQuestionRepository) Create(ctx context.Context, questions *models.ProfileScreenQuestions) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, questions)
	}
	return nil
}

func (m *MockProfileQuestionRepository) GetByProfileAndRole(ctx context.Context, profileID, roleID int64) (*models.ProfileScreenQuestions, error) {
	m.GetByProfileAndRoleCalls++
	if m.GetByProfileAndRoleFunc != nil {
		return m.GetByProfileAndRoleFunc(ctx, profileID, roleID)
	}
	return nil, nil
}

// MockCustomQuestionRepository is a configurable mock for CustomQuestionRepository.
type MockCustomQuestionRepository struct {
	UpsertFunc    func(ctx context.Context, roleID int64, questions []string) (*models.CustomRoleScreenQuestions, error)
	GetByRoleFunc func(ctx context.Context, roleID int64) (*models.CustomRoleScreenQuestions, error)

	UpsertCalls    int
	GetByRoleCalls int
}

var _ CustomQuestionRepository = (*MockCustomQuestionRepository)(nil)

func (m *MockCustomQuestionRepository) Upsert(ctx context.Context, roleID int64, questions []string) (*models.CustomRoleScreenQuestions, error) {
	m.UpsertCalls++
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, roleID, questions)
	}
	return &models.CustomRoleScreenQuestions{RoleID: roleID, Questions: questions}, nil
}

func (m *MockCustomQuestionRepository) GetByRole(ctx context.Context, roleID int64) (*models.CustomRoleScreenQuestions, error) {
	m.GetByRoleCalls++
	if m.GetByRoleFunc != nil {
		return m.GetByRoleFunc(ctx, roleID)
	}
	return nil, nil
}

// MockAssessmentRepository is a configurable mock for AssessmentRepository.
type MockAssessmentRepository struct {
	CreateFunc              func(ctx context.Context, assessment *models.Assessment) error
	GetByProfileAndRoleFunc func(ctx context.Context, profileID, roleID int64) (*models.Assessment, error)

	CreateCalls              int
	GetByProfileAndRoleCalls int
}

var _ AssessmentRepository = (*MockAssessmentRepository)(nil)

func (m *MockAssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, assessment)
	}
	return nil
}

func (m *MockAssessmentRepository) GetByProfileAndRole(ctx context.Context, profileID, roleID int64) (*models.Assessment, error) {
	m.GetByProfileAndRoleCalls++
	if m.GetByProfileAndRoleFunc != nil {
		return m.GetByProfileAndRoleFunc(ctx, profileID, roleID)
	}
	return nil, nil
}
