package models

import "time"

// Role is a job opening with a description against which candidates are scored.
type Role struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	JobDescription string    `json:"job_description"`
	CreatedAt      time.Time `json:"created_at"`
}
