package scoring

import "context"

// MockClient is a configurable mock for testing scoring workflows.
// Set the function fields to control behavior in tests.
type MockClient struct {
	// MatchResumeToJobFunc is called when MatchResumeToJob is invoked.
	// If nil, returns an empty result and nil error.
	MatchResumeToJobFunc func(ctx context.Context, resumeURL, jobDescription string) (*MatchResult, error)

	// GenerateRoleQuestionsFunc is called when GenerateRoleQuestions is invoked.
	// If nil, returns nil slice and nil error.
	GenerateRoleQuestionsFunc func(ctx context.Context, jobDescription string) ([]string, error)

	// GenerateCandidateQuestionsFunc is called when GenerateCandidateQuestions is invoked.
	// If nil, returns nil slice and nil error.
	GenerateCandidateQuestionsFunc func(ctx context.Context, resumeURL, jobDescription string) ([]string, error)

	// ExtractCandidateProfileFunc is called when ExtractCandidateProfile is invoked.
	// If nil, returns an empty profile and nil error.
	ExtractCandidateProfileFunc func(ctx context.Context, resumeURL string) (*CandidateProfile, error)

	// Call tracking for verification
	MatchResumeToJobCalls           int
	GenerateRoleQuestionsCalls      int
	GenerateCandidateQuestionsCalls int
	ExtractCandidateProfileCalls    int
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a new mock with no-op defaults.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// MatchResumeToJob implements Client.
func (m *MockClient) MatchResumeToJob(ctx context.Context, resumeURL, jobDescription string) (*MatchResult, error) {
	m.MatchResumeToJobCalls++
	if m.MatchResumeToJobFunc != nil {
		return m.MatchResumeToJobFunc(ctx, resumeURL, jobDescription)
	}
	return &MatchResult{RedFlags: map[string][]string{}}, nil
}

// GenerateRoleQuestions implements Client.
func (m *MockClient) GenerateRoleQuestions(ctx context.Context, jobDescription string) ([]string, error) {
	m.GenerateRoleQuestionsCalls++
	if m.GenerateRoleQuestionsFunc != nil {
		return m.GenerateRoleQuestionsFunc(ctx, jobDescription)
	}
	return nil, nil
}

// GenerateCandidateQuestions implements Client.
func (m *MockClient) GenerateCandidateQuestions(ctx context.Context, resumeURL, jobDescription string) ([]string, error) {
	m.GenerateCandidateQuestionsCalls++
	if m.GenerateCandidateQuestionsFunc != nil {
		return m.GenerateCandidateQuestionsFunc(ctx, resumeURL, jobDescription)
	}
	return nil, nil
}

// ExtractCandidateProfile implements Client.
func (m *MockClient) ExtractCandidateProfile(ctx context.Context, resumeURL string) (*CandidateProfile, error) {
	m.ExtractCandidateProfileCalls++
	if m.ExtractCandidateProfileFunc != nil {
		return m.ExtractCandidateProfileFunc(ctx, resumeURL)
	}
	return &CandidateProfile{}, nil
}
