package models

import "time"

// RoleScreenQuestions is the generated screening question set for a role.
// A row exists only when the scoring service returned a non-empty list.
type RoleScreenQuestions struct {
	ID        int64     `json:"id"`
	RoleID    int64     `json:"role_id"`
	Questions []string  `json:"questions"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileScreenQuestions is the candidate-specific question set for a
// (profile, role) pair, generated lazily on first read.
type ProfileScreenQuestions struct {
	ID        int64     `json:"id"`
	RoleID    int64     `json:"role_id"`
	ProfileID int64     `json:"profile_id"`
	Questions []string  `json:"questions"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomRoleScreenQuestions holds recruiter-authored questions for a role.
// At most one row per role; writes are upserts.
type CustomRoleScreenQuestions struct {
	ID        int64     `json:"id"`
	RoleID    int64     `json:"role_id"`
	Questions []string  `json:"questions"`
	CreatedAt time.Time `json:"created_at"`
}
