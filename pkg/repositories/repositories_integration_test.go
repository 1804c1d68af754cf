package repositories_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/talenthunt-inc/talenthunt-engine/pkg/apperrors"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/models"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/repositories"
	"github.com/talenthunt-inc/talenthunt-engine/pkg/testhelpers"
)

func seedRole(t *testing.T, repo repositories.RoleRepository) *models.Role {
	t.Helper()
	role := &models.Role{Name: "Backend Engineer", JobDescription: "Builds backends."}
	if err := repo.Create(context.Background(), role); err != nil {
		t.Fatalf("failed to seed role: %v", err)
	}
	return role
}

func seedProfile(t *testing.T, repo repositories.ProfileRepository, roleID int64) *models.Profile {
	t.Helper()
	profile := &models.Profile{RoleID: roleID, ProfileURL: "https://files/resume.pdf"}
	if err := repo.Create(context.Background(), profile); err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return profile
}

func TestRoleRepository(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.TruncateAll(t, db.DB)
	ctx := context.Background()

	repo := repositories.NewRoleRepository(db.DB)

	role := seedRole(t, repo)
	if role.ID == 0 {
		t.Fatal("expected generated id")
	}
	if role.CreatedAt.IsZero() {
		t.Error("expected created_at filled in")
	}

	got, err := repo.GetByID(ctx, role.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || got.Name != "Backend Engineer" {
		t.Errorf("unexpected role: %+v", got)
	}

	missing, err := repo.GetByID(ctx, 999999)
	if err != nil {
		t.Fatalf("GetByID for missing row failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing role, got %+v", missing)
	}

	roles, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(roles) != 1 {
		t.Errorf("expected 1 role, got %d", len(roles))
	}
}

func TestProfileRepository_ScoringRoundTrip(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.TruncateAll(t, db.DB)
	ctx := context.Background()

	roleRepo := repositories.NewRoleRepository(db.DB)
	profileRepo := repositories.NewProfileRepository(db.DB)

	role := seedRole(t, roleRepo)
	profile := seedProfile(t, profileRepo, role.ID)

	flags := &models.RedFlags{High: []string{"gap"}, Medium: nil, Low: []string{"tenure"}}
	err := profileRepo.UpdateScoring(ctx, profile.ID, role.ID, 7.5, []string{"good fit"}, flags)
	if err != nil {
		t.Fatalf("UpdateScoring failed: %v", err)
	}

	got, err := profileRepo.GetByID(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Score == nil || *got.Score != 7.5 {
		t.Errorf("expected score 7.5, got %v", got.Score)
	}
	if len(got.MatchReasons) != 1 || got.MatchReasons[0] != "good fit" {
		t.Errorf("unexpected match reasons: %v", got.MatchReasons)
	}
	if got.RedFlags == nil || len(got.RedFlags.High) != 1 {
		t.Errorf("unexpected red flags: %+v", got.RedFlags)
	}
}

func TestProfileRepository_ScoringRoleMismatchIsNoop(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.TruncateAll(t, db.DB)
	ctx := context.Background()

	roleRepo := repositories.NewRoleRepository(db.DB)
	profileRepo := repositories.NewProfileRepository(db.DB)

	role := seedRole(t, roleRepo)
	profile := seedProfile(t, profileRepo, role.ID)

	// Wrong role filter matches zero rows and must not error.
	err := profileRepo.UpdateScoring(ctx, profile.ID, role.ID+1, 5, nil, &models.RedFlags{})
	if err != nil {
		t.Fatalf("expected silent zero-row update, got %v", err)
	}

	got, _ := profileRepo.GetByID(ctx, profile.ID)
	if got.Score != nil {
		t.Errorf("expected score untouched, got %v", *got.Score)
	}
}

func TestProfileRepository_ContactAndAssessmentScore(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.TruncateAll(t, db.DB)
	ctx := context.Background()

	roleRepo := repositories.NewRoleRepository(db.DB)
	profileRepo := repositories.NewProfileRepository(db.DB)

	role := seedRole(t, roleRepo)
	profile := seedProfile(t, profileRepo, role.ID)

	if err := profileRepo.UpdateContact(ctx, profile.ID, "Ada", "ada@example.com"); err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}

	updated, err := profileRepo.UpdateAssessmentScore(ctx, profile.ID, 4.5)
	if err != nil {
		t.Fatalf("UpdateAssessmentScore failed: %v", err)
	}
	if updated.Name == nil || *updated.Name != "Ada" {
		t.Errorf("expected name set, got %v", updated.Name)
	}
	if updated.AssessmentScore == nil || *updated.AssessmentScore != 4.5 {
		t.Errorf("expected assessment score 4.5, got %v", updated.AssessmentScore)
	}

	missing, err := profileRepo.UpdateAssessmentScore(ctx, 999999, 1)
	if err != nil {
		t.Fatalf("missing profile should not error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing profile, got %+v", missing)
	}
}

func TestProfileSummaryRepository(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.TruncateAll(t, db.DB)
	ctx := context.Background()

	roleRepo := repositories.NewRoleRepository(db.DB)
	profileRepo := repositories.NewProfileRepository(db.DB)
	summaryRepo := repositories.NewProfileSummaryRepository(db.DB)

	role := seedRole(t, roleRepo)
	profile := seedProfile(t, profileRepo, role.ID)

	summary := &models.ProfileSummary{
		ProfileID:    profile.ID,
		PersonalInfo: json.RawMessage(`{"Name": "Ada"}`),
		WorkHistory:  json.RawMessage(`[{"company": "Engines"}]`),
	}
	if err := summaryRepo.Create(ctx, summary); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	summaries, err := summaryRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		t.Fatalf("ListByProfile failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].Projects != nil {
		t.Errorf("absent section should stay null, got %s", summaries[0].Projects)
	}

	// Partial update touches only the provided sections.
	updated, err := summaryRepo.Update(ctx, &models.ProfileSummary{
		ProfileID: profile.ID,
		Skills:    json.RawMessage(`["go"]`),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if string(updated.Skills) != `["go"]` {
		t.Errorf("expected skills updated, got %s", updated.Skills)
	}
	var personal map[string]string
	if err := json.Unmarshal(updated.PersonalInfo, &personal); err != nil || personal["Name"] != "Ada" {
		t.Errorf("expected personal info untouched, got %s", updated.PersonalInfo)
	}

	_, err = summaryRepo.Update(ctx, &models.ProfileSummary{
		ProfileID: 999999,
		Skills:    json.RawMessage(`["go"]`),
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing profile, got %v", err)
	}
}

func TestProfileQuestionRepository_InsertRace(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.TruncateAll(t, db.DB)
	ctx := context.Background()

	roleRepo := repositories.NewRoleRepository(db.DB)
	profileRepo := repositories.NewProfileRepository(db.DB)
	questionRepo := repositories.NewProfileQuestionRepository(db.DB)

	role := seedRole(t, roleRepo)
	profile := seedProfile(t, profileRepo, role.ID)

	first := &models.ProfileScreenQuestions{
		RoleID: role.ID, ProfileID: profile.ID, Questions: []string{"first"},
	}
	if err := questionRepo.Create(ctx, first); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	// The loser of an insert race is a silent no-op.
	second := &models.ProfileScreenQuestions{
		RoleID: role.ID, ProfileID: profile.ID, Questions: []string{"second"},
	}
	if err := questionRepo.Create(ctx, second); err != nil {
		t.Fatalf("conflicting insert should be a no-op, got %v", err)
	}

	got, err := questionRepo.GetByProfileAndRole(ctx, profile.ID, role.ID)
	if err != nil {
		t.Fatalf("GetByProfileAndRole failed: %v", err)
	}
	if len(got.Questions) != 1 || got.Questions[0] != "first" {
		t.Errorf("first writer must win, got %v", got.Questions)
	}
}

func TestCustomQuestionRepository_Upsert(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.TruncateAll(t, db.DB)
	ctx := context.Background()

	roleRepo := repositories.NewRoleRepository(db.DB)
	customRepo := repositories.NewCustomQuestionRepository(db.DB)

	role := seedRole(t, roleRepo)

	first, err := customRepo.Upsert(ctx, role.ID, []string{"v1"})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second, err := customRepo.Upsert(ctx, role.ID, []string{"v2a", "v2b"})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert must replace, not duplicate: ids %d vs %d", first.ID, second.ID)
	}

	got, err := customRepo.GetByRole(ctx, role.ID)
	if err != nil {
		t.Fatalf("GetByRole failed: %v", err)
	}
	if len(got.Questions) != 2 || got.Questions[0] != "v2a" {
		t.Errorf("expected latest set, got %v", got.Questions)
	}
}

func TestRoleQuestionRepository(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.TruncateAll(t, db.DB)
	ctx := context.Background()

	roleRepo := repositories.NewRoleRepository(db.DB)
	questionRepo := repositories.NewRoleQuestionRepository(db.DB)

	role := seedRole(t, roleRepo)

	missing, err := questionRepo.GetByRole(ctx, role.ID)
	if err != nil {
		t.Fatalf("GetByRole failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil before insert, got %+v", missing)
	}

	row := &models.RoleScreenQuestions{RoleID: role.ID, Questions: []string{"q1", "q2"}}
	if err := questionRepo.Create(ctx, row); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := questionRepo.GetByRole(ctx, role.ID)
	if err != nil {
		t.Fatalf("GetByRole failed: %v", err)
	}
	if len(got.Questions) != 2 {
		t.Errorf("expected 2 questions, got %v", got.Questions)
	}
}

func TestAssessmentRepository_LatestWins(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.TruncateAll(t, db.DB)
	ctx := context.Background()

	roleRepo := repositories.NewRoleRepository(db.DB)
	profileRepo := repositories.NewProfileRepository(db.DB)
	assessmentRepo := repositories.NewAssessmentRepository(db.DB)

	role := seedRole(t, roleRepo)
	profile := seedProfile(t, profileRepo, role.ID)

	for _, verdict := range []string{"maybe", "hire"} {
		a := &models.Assessment{
			ProfileID:  profile.ID,
			RoleID:     role.ID,
			Assessment: json.RawMessage(`{"verdict": "` + verdict + `"}`),
		}
		if err := assessmentRepo.Create(ctx, a); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := assessmentRepo.GetByProfileAndRole(ctx, profile.ID, role.ID)
	if err != nil {
		t.Fatalf("GetByProfileAndRole failed: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(got.Assessment, &payload); err != nil {
		t.Fatalf("failed to decode assessment: %v", err)
	}
	if payload["verdict"] != "hire" {
		t.Errorf("expected most recent assessment, got %v", payload)
	}
}
