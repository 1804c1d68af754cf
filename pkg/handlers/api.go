package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/apperrors"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/jsonutil"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/repositories"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/scoring"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/services"
)

// ============================================================================
// Request Types
// ============================================================================

// APIRequest is the single dispatch envelope. requestType selects the
// operation; the remaining fields are read per-operation. Identifiers go
// through jsonutil.FlexibleID because the web client sends them both as
// numbers and as numeric strings.
type APIRequest struct {
	RequestType     string               `json:"requestType"`
	Role            *RoleInput           `json:"role"`
	Profile         *ProfileInput        `json:"profile"`
	RoleID          jsonutil.FlexibleID  `json:"role_id"`
	ProfileID       jsonutil.FlexibleID  `json:"profile_id"`
	ProfileSummary  *ProfileSummaryInput `json:"profile_summary"`
	ProfileURL      string               `json:"profile_url"`
	Assessment      json.RawMessage      `json:"assessment"`
	Questions       []string             `json:"questions"`
	AssessmentScore *float64             `json:"assessment_score"`
}

// RoleInput is the payload for createRole.
type RoleInput struct {
	Name           string `json:"name"`
	JobDescription string `json:"job_description"`
}

// ProfileInput is the payload for createProfile.
type ProfileInput struct {
	RoleID     jsonutil.FlexibleID `json:"role_id"`
	ProfileURL string              `json:"profile_url"`
}

// ProfileSummaryInput is the payload for createProfileSummary and
// updateProfileSummary.
type ProfileSummaryInput struct {
	ProfileID    jsonutil.FlexibleID `json:"profile_id"`
	RoleID       jsonutil.FlexibleID `json:"role_id"`
	PersonalInfo json.RawMessage     `json:"pi"`
	WorkHistory  json.RawMessage     `json:"work_history"`
	Projects     json.RawMessage     `json:"projects"`
	Education    json.RawMessage     `json:"education"`
	Skills       json.RawMessage     `json:"skills"`
}

// CreateProfileResponse is the createProfile payload: the new profile plus
// the role lookup result. The role field is a list because that is what the
// web client expects.
type CreateProfileResponse struct {
	NewProfile *models.Profile `json:"newProfile"`
	Role       []*models.Role  `json:"role"`
}

// QuestionsResponse wraps a bare question list (createProfileQuestions).
type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

// ============================================================================
// Handler
// ============================================================================

// APIHandler is the single request-dispatch boundary. All operations arrive
// on one POST endpoint with a requestType discriminator.
type APIHandler struct {
	roleRepo            repositories.RoleRepository
	profileRepo         repositories.ProfileRepository
	summaryRepo         repositories.ProfileSummaryRepository
	roleQuestionRepo    repositories.RoleQuestionRepository
	profileQuestionRepo repositories.ProfileQuestionRepository
	assessmentRepo      repositories.AssessmentRepository
	enrichment          services.EnrichmentService
	questions           services.QuestionService
	uploads             services.UploadService
	logger              *zap.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(
	roleRepo repositories.RoleRepository,
	profileRepo repositories.ProfileRepository,
	summaryRepo repositories.ProfileSummaryRepository,
	roleQuestionRepo repositories.RoleQuestionRepository,
	profileQuestionRepo repositories.ProfileQuestionRepository,
	assessmentRepo repositories.AssessmentRepository,
	enrichment services.EnrichmentService,
	questions services.QuestionService,
	uploads services.UploadService,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		roleRepo:            roleRepo,
		profileRepo:         profileRepo,
		summaryRepo:         summaryRepo,
		roleQuestionRepo:    roleQuestionRepo,
		profileQuestionRepo: profileQuestionRepo,
		assessmentRepo:      assessmentRepo,
		enrichment:          enrichment,
		questions:           questions,
		uploads:             uploads,
		logger:              logger,
	}
}

// RegisterRoutes registers the dispatch endpoint on the given mux.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/talenthunt", h.Dispatch)
}

// Dispatch decodes the envelope and routes to the requested operation.
func (h *APIHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req APIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.RequestType {
	case "getRoles":
		h.getRoles(w, r)
	case "createRole":
		h.createRole(w, r, &req)
	case "getProfiles":
		h.getProfiles(w, r, &req)
	case "createProfile":
		h.createProfile(w, r, &req)
	case "getSignedUrl":
		h.getSignedURL(w, r, &req)
	case "getProfileSummary":
		h.getProfileSummary(w, r, &req)
	case "createProfileSummary":
		h.createProfileSummary(w, r, &req)
	case "createProfileQuestions":
		h.createProfileQuestions(w, r, &req)
	case "getProfileQuestions":
		h.getProfileQuestions(w, r, &req)
	case "getRoleQuestions":
		h.getRoleQuestions(w, r, &req)
	case "createCustomQuestions":
		h.createCustomQuestions(w, r, &req)
	case "getAllQuestions":
		h.getAllQuestions(w, r, &req)
	case "updateProfileSummary":
		h.updateProfileSummary(w, r, &req)
	case "generateProfileSumamry":
		// The discriminator carries the original client's spelling.
		h.regenerateProfileSummary(w, r, &req)
	case "saveAssessment":
		h.saveAssessment(w, r, &req)
	case "updateScore":
		h.updateScore(w, r, &req)
	case "getAssessment":
		h.getAssessment(w, r, &req)
	default:
		h.writeError(w, http.StatusBadRequest, "Invalid request type")
	}
}

// ============================================================================
// Roles
// ============================================================================

func (h *APIHandler) getRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list roles", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, roles)
}

func (h *APIHandler) createRole(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.Role == nil || req.Role.Name == "" || req.Role.JobDescription == "" {
		h.writeRequestError(w, apperrors.NewValidationError("Name and job description are required"))
		return
	}

	role := &models.Role{
		Name:           req.Role.Name,
		JobDescription: req.Role.JobDescription,
	}
	if err := h.roleRepo.Create(r.Context(), role); err != nil {
		h.logger.Error("Failed to create role", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Question generation is enrichment: its failure must not fail the
	// creation that already committed.
	if err := h.enrichment.GenerateRoleQuestions(r.Context(), role); err != nil {
		h.logger.Warn("Role question enrichment failed",
			zap.Int64("role_id", role.ID),
			zap.Error(err))
	}

	h.writeJSON(w, http.StatusOK, role)
}

// ============================================================================
// Profiles
// ============================================================================

func (h *APIHandler) getProfiles(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.RoleID.IsZero() {
		h.writeRequestError(w, apperrors.NewValidationError("role id is required"))
		return
	}

	profiles, err := h.profileRepo.ListByRole(r.Context(), req.RoleID.Int64())
	if err != nil {
		h.logger.Error("Failed to list profiles", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, profiles)
}

func (h *APIHandler) createProfile(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.Profile == nil || req.Profile.RoleID.IsZero() || req.Profile.ProfileURL == "" {
		h.writeRequestError(w, apperrors.NewValidationError("role id and profile url are required"))
		return
	}

	profile := &models.Profile{
		RoleID:     req.Profile.RoleID.Int64(),
		ProfileURL: req.Profile.ProfileURL,
	}
	if err := h.profileRepo.Create(r.Context(), profile); err != nil {
		h.logger.Error("Failed to create profile", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	roles := make([]*models.Role, 0, 1)
	role, err := h.roleRepo.GetByID(r.Context(), profile.RoleID)
	if err != nil {
		h.logger.Error("Failed to load role for enrichment",
			zap.Int64("role_id", profile.RoleID),
			zap.Error(err))
	}
	if role != nil {
		roles = append(roles, role)
		// Scoring and extraction are best-effort; the profile is returned
		// to the caller regardless of what happens here.
		if err := h.enrichment.EnrichProfile(r.Context(), profile, role); err != nil {
			h.logger.Warn("Profile enrichment failed",
				zap.Int64("profile_id", profile.ID),
				zap.Error(err))
		}
	}

	h.writeJSON(w, http.StatusOK, CreateProfileResponse{
		NewProfile: profile,
		Role:       roles,
	})
}

// ============================================================================
// Uploads
// ============================================================================

func (h *APIHandler) getSignedURL(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.RoleID.IsZero() {
		h.writeRequestError(w, apperrors.NewValidationError("role id is required"))
		return
	}

	descriptor, err := h.uploads.CreateSignedUploadURL(req.RoleID.Int64())
	if err != nil {
		h.logger.Error("Failed to create signed upload URL", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, descriptor)
}

// ============================================================================
// Profile Summaries
// ============================================================================

func (h *APIHandler) getProfileSummary(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.ProfileID.IsZero() {
		h.writeRequestError(w, apperrors.NewValidationError("profile id is required"))
		return
	}

	summaries, err := h.summaryRepo.ListByProfile(r.Context(), req.ProfileID.Int64())
	if err != nil {
		h.logger.Error("Failed to list profile summaries", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *APIHandler) createProfileSummary(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	ps := req.ProfileSummary
	if ps == nil || ps.ProfileID.IsZero() || len(ps.PersonalInfo) == 0 || len(ps.WorkHistory) == 0 || len(ps.Education) == 0 {
		h.writeRequestError(w, apperrors.NewValidationError("profile id, pi, work_history, projects and education are required"))
		return
	}

	summary := &models.ProfileSummary{
		ProfileID:    ps.ProfileID.Int64(),
		PersonalInfo: ps.PersonalInfo,
		WorkHistory:  ps.WorkHistory,
		Projects:     ps.Projects,
		Education:    ps.Education,
		Skills:       ps.Skills,
	}
	if err := h.summaryRepo.Create(r.Context(), summary); err != nil {
		h.logger.Error("Failed to create profile summary", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

func (h *APIHandler) updateProfileSummary(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	ps := req.ProfileSummary
	if ps == nil || ps.ProfileID.IsZero() || ps.RoleID.IsZero() {
		h.writeRequestError(w, apperrors.NewValidationError("profile id and role id is required"))
		return
	}

	summary := &models.ProfileSummary{
		ProfileID:    ps.ProfileID.Int64(),
		PersonalInfo: ps.PersonalInfo,
		WorkHistory:  ps.WorkHistory,
		Projects:     ps.Projects,
		Education:    ps.Education,
		Skills:       ps.Skills,
	}
	updated, err := h.summaryRepo.Update(r.Context(), summary)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.writeError(w, http.StatusBadRequest, "profile summary not found")
			return
		}
		h.logger.Error("Failed to update profile summary", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

func (h *APIHandler) regenerateProfileSummary(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.ProfileID.IsZero() || req.ProfileURL == "" {
		h.writeRequestError(w, apperrors.NewValidationError("profile id and profile url are required"))
		return
	}

	summary, err := h.enrichment.ReextractProfile(r.Context(), req.ProfileID.Int64(), req.ProfileURL)
	if err != nil {
		h.logger.Error("Failed to re-extract profile", zap.Error(err))
		h.writeRequestError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

// ============================================================================
// Questions
// ============================================================================

func (h *APIHandler) createProfileQuestions(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.ProfileID.IsZero() || req.RoleID.IsZero() {
		h.writeRequestError(w, apperrors.NewValidationError("profile_id, role_id and questions are required"))
		return
	}

	questions, err := h.questions.GetOrGenerateProfileQuestions(r.Context(), req.ProfileID.Int64(), req.RoleID.Int64())
	if err != nil {
		h.logger.Error("Failed to get or generate profile questions",
			zap.Int64("profile_id", req.ProfileID.Int64()),
			zap.Int64("role_id", req.RoleID.Int64()),
			zap.Error(err))
		h.writeRequestError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, QuestionsResponse{Questions: questions})
}

func (h *APIHandler) getProfileQuestions(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.ProfileID.IsZero() || req.RoleID.IsZero() {
		h.writeRequestError(w, apperrors.NewValidationError("profile id and role id are required"))
		return
	}

	row, err := h.profileQuestionRepo.GetByProfileAndRole(r.Context(), req.ProfileID.Int64(), req.RoleID.Int64())
	if err != nil {
		h.logger.Error("Failed to get profile questions", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if row == nil {
		h.writeError(w, http.StatusBadRequest, "profile questions not found")
		return
	}

	h.writeJSON(w, http.StatusOK, row)
}

func (h *APIHandler) getRoleQuestions(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.RoleID.IsZero() {
		h.writeRequestError(w, apperrors.NewValidationError("role id is required"))
		return
	}

	row, err := h.roleQuestionRepo.GetByRole(r.Context(), req.RoleID.Int64())
	if err != nil {
		h.logger.Error("Failed to get role questions", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if row == nil {
		h.writeError(w, http.StatusBadRequest, "role questions not found")
		return
	}

	h.writeJSON(w, http.StatusOK, row)
}

func (h *APIHandler) createCustomQuestions(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.RoleID.IsZero() || req.Questions == nil {
		h.writeRequestError(w, apperrors.NewValidationError("role_id and questions are required"))
		return
	}

	row, err := h.questions.SaveCustomQuestions(r.Context(), req.RoleID.Int64(), req.Questions)
	if err != nil {
		h.logger.Error("Failed to save custom questions", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, row)
}

func (h *APIHandler) getAllQuestions(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.ProfileID.IsZero() || req.RoleID.IsZero() {
		h.writeRequestError(w, apperrors.NewValidationError("profile id and role id are required"))
		return
	}

	aggregate := h.questions.GetAllQuestions(r.Context(), req.ProfileID.Int64(), req.RoleID.Int64())
	h.writeJSON(w, http.StatusOK, aggregate)
}

// ============================================================================
// Assessments
// ============================================================================

func (h *APIHandler) saveAssessment(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.ProfileID.IsZero() || req.RoleID.IsZero() || len(req.Assessment) == 0 {
		h.writeRequestError(w, apperrors.NewValidationError("assessment, profile id and role id is required"))
		return
	}

	assessment := &models.Assessment{
		ProfileID:  req.ProfileID.Int64(),
		RoleID:     req.RoleID.Int64(),
		Assessment: req.Assessment,
	}
	if err := h.assessmentRepo.Create(r.Context(), assessment); err != nil {
		h.logger.Error("Failed to save assessment", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, assessment)
}

func (h *APIHandler) updateScore(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.ProfileID.IsZero() || req.AssessmentScore == nil {
		h.writeRequestError(w, apperrors.NewValidationError("profile_id, role_id and score are required"))
		return
	}

	profile, err := h.profileRepo.UpdateAssessmentScore(r.Context(), req.ProfileID.Int64(), *req.AssessmentScore)
	if err != nil {
		h.logger.Error("Failed to update assessment score", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if profile == nil {
		h.writeError(w, http.StatusBadRequest, "profile not found")
		return
	}

	h.writeJSON(w, http.StatusOK, profile)
}

func (h *APIHandler) getAssessment(w http.ResponseWriter, r *http.Request, req *APIRequest) {
	if req.ProfileID.IsZero() || req.RoleID.IsZero() {
		h.writeRequestError(w, apperrors.NewValidationError("profile id and role id are required"))
		return
	}

	assessment, err := h.assessmentRepo.GetByProfileAndRole(r.Context(), req.ProfileID.Int64(), req.RoleID.Int64())
	if err != nil {
		h.logger.Error("Failed to get assessment", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if assessment == nil {
		h.writeError(w, http.StatusBadRequest, "assessment not found")
		return
	}

	h.writeJSON(w, http.StatusOK, assessment)
}

// ============================================================================
// Helpers
// ============================================================================

func (h *APIHandler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	if err := WriteJSON(w, statusCode, data); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *APIHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	if err := ErrorResponse(w, statusCode, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

// writeRequestError maps domain errors onto the wire: validation failures
// and missing rows are the caller's fault, while scoring-service failures
// become a generic 500 so no upstream detail leaks.
func (h *APIHandler) writeRequestError(w http.ResponseWriter, err error) {
	var scoringErr *scoring.Error
	if errors.As(err, &scoringErr) {
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.writeError(w, http.StatusBadRequest, err.Error())
}
