package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, wantPath string, status int, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != wantPath {
			t.Errorf("expected path %s, got %s", wantPath, r.URL.Path)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func TestMatchResumeToJob(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{
			"score": 7.5,
			"match_reasons": ["solid backend experience"],
			"red_flags": {"1": ["gap in 2021"], "3": ["short tenure"]}
		}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	result, err := client.MatchResumeToJob(context.Background(), "https://files/resume.pdf", "Backend engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["resume_url"] != "https://files/resume.pdf" {
		t.Errorf("expected resume_url in request, got %q", gotBody["resume_url"])
	}
	if gotBody["jd"] != "Backend engineer" {
		t.Errorf("expected jd in request, got %q", gotBody["jd"])
	}
	if result.Score != 7.5 {
		t.Errorf("expected score 7.5, got %v", result.Score)
	}
	if len(result.MatchReasons) != 1 || result.MatchReasons[0] != "solid backend experience" {
		t.Errorf("unexpected match reasons: %v", result.MatchReasons)
	}
	if len(result.RedFlags["1"]) != 1 || result.RedFlags["1"][0] != "gap in 2021" {
		t.Errorf("unexpected red flags: %v", result.RedFlags)
	}
}

func TestMatchResumeToJob_MissingScore(t *testing.T) {
	server := newTestServer(t, "/match_resume_to_job", http.StatusOK,
		`{"match_reasons": [], "red_flags": {}}`)
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.MatchResumeToJob(context.Background(), "url", "jd")
	if err == nil {
		t.Fatal("expected error for response missing score")
	}
	var scoringErr *Error
	if !errors.As(err, &scoringErr) {
		t.Fatalf("expected *scoring.Error, got %T", err)
	}
}

func TestMatchResumeToJob_MissingRedFlags(t *testing.T) {
	server := newTestServer(t, "/match_resume_to_job", http.StatusOK, `{"score": 5}`)
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.MatchResumeToJob(context.Background(), "url", "jd")
	if err == nil {
		t.Fatal("expected error for response missing red_flags")
	}
}

func TestMatchResumeToJob_ZeroScoreIsValid(t *testing.T) {
	// A zero score is a real score, not a missing field.
	server := newTestServer(t, "/match_resume_to_job", http.StatusOK,
		`{"score": 0, "red_flags": {}}`)
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	result, err := client.MatchResumeToJob(context.Background(), "url", "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 0 {
		t.Errorf("expected score 0, got %v", result.Score)
	}
}

func TestGenerateRoleQuestions(t *testing.T) {
	server := newTestServer(t, "/generate_role_questions", http.StatusOK,
		`{"questions": ["Tell me about Go.", "Describe a system you scaled."]}`)
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	questions, err := client.GenerateRoleQuestions(context.Background(), "Backend engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestGenerateRoleQuestions_OmittedList(t *testing.T) {
	// A body without questions is not an error; the caller decides what an
	// empty set means.
	server := newTestServer(t, "/generate_role_questions", http.StatusOK, `{}`)
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	questions, err := client.GenerateRoleQuestions(context.Background(), "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if questions != nil {
		t.Errorf("expected nil questions, got %v", questions)
	}
}

func TestGenerateCandidateQuestions(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate_candidate_questions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"questions": ["Why did you leave your last role?"]}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	questions, err := client.GenerateCandidateQuestions(context.Background(), "https://files/r.pdf", "jd text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["resume_url"] != "https://files/r.pdf" || gotBody["jd"] != "jd text" {
		t.Errorf("unexpected request body: %v", gotBody)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
}

func TestExtractCandidateProfile(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract_candidate_profile" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{
			"Personal Information": {"Name": "Ada Lovelace", "Email": "ada@example.com"},
			"Work History": [{"company": "Analytical Engines"}],
			"Projects": [],
			"Education": [{"school": "Home"}],
			"Skills": ["mathematics"]
		}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	profile, err := client.ExtractCandidateProfile(context.Background(), "https://files/r.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["url"] != "https://files/r.pdf" {
		t.Errorf("expected url in request, got %q", gotBody["url"])
	}

	var personal PersonalInfo
	if err := json.Unmarshal(profile.PersonalInfo, &personal); err != nil {
		t.Fatalf("failed to decode personal info: %v", err)
	}
	if personal.Name != "Ada Lovelace" || personal.Email != "ada@example.com" {
		t.Errorf("unexpected personal info: %+v", personal)
	}
	if len(profile.WorkHistory) == 0 {
		t.Error("expected work history section")
	}
}

func TestPost_Non2xxStatus(t *testing.T) {
	server := newTestServer(t, "/generate_role_questions", http.StatusBadGateway, `upstream broke`)
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.GenerateRoleQuestions(context.Background(), "jd")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}

	var scoringErr *Error
	if !errors.As(err, &scoringErr) {
		t.Fatalf("expected *scoring.Error, got %T", err)
	}
	if scoringErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", scoringErr.StatusCode)
	}
	if scoringErr.Endpoint != "/generate_role_questions" {
		t.Errorf("expected endpoint recorded, got %q", scoringErr.Endpoint)
	}
}

func TestPost_MalformedBody(t *testing.T) {
	server := newTestServer(t, "/extract_candidate_profile", http.StatusOK, `not json`)
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.ExtractCandidateProfile(context.Background(), "url")
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestPost_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.GenerateRoleQuestions(context.Background(), "jd")
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	var scoringErr *Error
	if !errors.As(err, &scoringErr) {
		t.Fatalf("expected *scoring.Error, got %T", err)
	}
	if scoringErr.Unwrap() == nil {
		t.Error("expected wrapped transport error")
	}
}
