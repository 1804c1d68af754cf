// Package scoring wraps the external resume-scoring service.
//
// The service exposes four JSON endpoints: match a resume against a job
// description, generate role-level screening questions, generate
// candidate-specific questions, and extract a structured profile from a
// resume. The client shapes requests and normalizes responses; retry policy
// belongs to callers.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MatchResult is the normalized response of the resume-to-job match call.
// RedFlags stays keyed by the service's numeric severity buckets ("1", "2",
// "3"); remapping to named severities is the orchestrator's job.
type MatchResult struct {
	Score        float64             `json:"score"`
	MatchReasons []string            `json:"match_reasons"`
	RedFlags     map[string][]string `json:"red_flags"`
}

// CandidateProfile is the structured resume data extracted by the service.
// Sections are kept as raw JSON because their shape varies per resume.
type CandidateProfile struct {
	PersonalInfo json.RawMessage `json:"Personal Information"`
	WorkHistory  json.RawMessage `json:"Work History"`
	Projects     json.RawMessage `json:"Projects"`
	Education    json.RawMessage `json:"Education"`
	Skills       json.RawMessage `json:"Skills"`
}

// PersonalInfo is the subset of the Personal Information section the
// ingestion workflow copies onto the Profile row.
type PersonalInfo struct {
	Name  string `json:"Name"`
	Email string `json:"Email"`
}

// Client defines the scoring service operations.
// Use this interface for dependency injection to enable mocking in tests.
type Client interface {
	// MatchResumeToJob scores a resume against a job description.
	MatchResumeToJob(ctx context.Context, resumeURL, jobDescription string) (*MatchResult, error)

	// GenerateRoleQuestions produces screening questions for a job
	// description. Returns nil (not an error) when the service omits the
	// question list.
	GenerateRoleQuestions(ctx context.Context, jobDescription string) ([]string, error)

	// GenerateCandidateQuestions produces questions tailored to one resume.
	// Returns nil when the service omits the question list.
	GenerateCandidateQuestions(ctx context.Context, resumeURL, jobDescription string) ([]string, error)

	// ExtractCandidateProfile parses a resume into structured sections.
	ExtractCandidateProfile(ctx context.Context, resumeURL string) (*CandidateProfile, error)
}

// HTTPClient is the production Client backed by net/http.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the scoring service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// matchRequest mirrors the service's wire field names exactly.
type matchRequest struct {
	ResumeURL      string `json:"resume_url"`
	JobDescription string `json:"jd"`
}

type roleQuestionsRequest struct {
	JobDescription string `json:"jd"`
}

type extractRequest struct {
	URL string `json:"url"`
}

type questionsResponse struct {
	Questions []string `json:"questions"`
}

func (c *HTTPClient) MatchResumeToJob(ctx context.Context, resumeURL, jobDescription string) (*MatchResult, error) {
	const endpoint = "/match_resume_to_job"

	var result struct {
		Score        *float64            `json:"score"`
		MatchReasons []string            `json:"match_reasons"`
		RedFlags     map[string][]string `json:"red_flags"`
	}
	if err := c.post(ctx, endpoint, matchRequest{ResumeURL: resumeURL, JobDescription: jobDescription}, &result); err != nil {
		return nil, err
	}

	// score and red_flags are required; the workflow dereferences both.
	if result.Score == nil {
		return nil, newError(endpoint, 0, "response missing score", nil)
	}
	if result.RedFlags == nil {
		return nil, newError(endpoint, 0, "response missing red_flags", nil)
	}

	return &MatchResult{
		Score:        *result.Score,
		MatchReasons: result.MatchReasons,
		RedFlags:     result.RedFlags,
	}, nil
}

func (c *HTTPClient) GenerateRoleQuestions(ctx context.Context, jobDescription string) ([]string, error) {
	const endpoint = "/generate_role_questions"

	var result questionsResponse
	if err := c.post(ctx, endpoint, roleQuestionsRequest{JobDescription: jobDescription}, &result); err != nil {
		return nil, err
	}

	// The service legitimately omits questions for some inputs; callers
	// treat nil as "nothing to store".
	return result.Questions, nil
}

func (c *HTTPClient) GenerateCandidateQuestions(ctx context.Context, resumeURL, jobDescription string) ([]string, error) {
	const endpoint = "/generate_candidate_questions"

	var result questionsResponse
	if err := c.post(ctx, endpoint, matchRequest{ResumeURL: resumeURL, JobDescription: jobDescription}, &result); err != nil {
		return nil, err
	}

	return result.Questions, nil
}

func (c *HTTPClient) ExtractCandidateProfile(ctx context.Context, resumeURL string) (*CandidateProfile, error) {
	const endpoint = "/extract_candidate_profile"

	var result CandidateProfile
	if err := c.post(ctx, endpoint, extractRequest{URL: resumeURL}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// post issues a JSON POST to the scoring service and decodes the response
// into out. Any transport failure, non-2xx status, or undecodable body is
// reported as a *scoring.Error.
func (c *HTTPClient) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return newError(endpoint, 0, "marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return newError(endpoint, 0, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newError(endpoint, 0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(endpoint, resp.StatusCode, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(endpoint, resp.StatusCode, "decode response", err)
	}

	return nil
}
