package models

import (
	"encoding/json"
	"time"
)

// ProfileSummary holds the structured resume data extracted for a profile.
// The sections are stored as the scoring service returned them, so they stay
// schemaless JSON rather than typed structs.
type ProfileSummary struct {
	ID           int64           `json:"id"`
	ProfileID    int64           `json:"profile_id"`
	PersonalInfo json.RawMessage `json:"pi"`
	WorkHistory  json.RawMessage `json:"work_history"`
	Projects     json.RawMessage `json:"projects"`
	Education    json.RawMessage `json:"education"`
	Skills       json.RawMessage `json:"skills"`
	CreatedAt    time.Time       `json:"created_at"`
}
