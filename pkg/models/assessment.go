package models

import (
	"encoding/json"
	"time"
)

// Assessment is a recorded interview assessment for a profile against a role.
// Multiple submissions per pair are allowed; the payload is free-form.
type Assessment struct {
	ID         int64           `json:"id"`
	ProfileID  int64           `json:"profile_id"`
	RoleID     int64           `json:"role_id"`
	Assessment json.RawMessage `json:"assessment"`
	CreatedAt  time.Time       `json:"created_at"`
}
