package models

import "time"

// RedFlags buckets resume concerns by severity. The scoring service reports
// them keyed "1" (most severe) through "3"; the ingestion workflow remaps
// them to these named buckets before persisting.
type RedFlags struct {
	High   []string `json:"high"`
	Medium []string `json:"medium"`
	Low    []string `json:"low"`
}

// Profile is a candidate submission tied to a Role. Score, match reasons,
// red flags, name and email are filled in by enrichment after creation and
// are null until the scoring service has responded.
type Profile struct {
	ID              int64     `json:"id"`
	RoleID          int64     `json:"role_id"`
	ProfileURL      string    `json:"profile_url"`
	Name            *string   `json:"name"`
	Email           *string   `json:"email"`
	Score           *float64  `json:"score"`
	MatchReasons    []string  `json:"match_reasons"`
	RedFlags        *RedFlags `json:"red_flags"`
	AssessmentScore *float64  `json:"assessment_score"`
	CreatedAt       time.Time `json:"created_at"`
}
