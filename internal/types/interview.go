package types

import (
	"time"

	"github.com/google/uuid"
)

// Invitation holds the drafted invitation email in two tones.
type Invitation struct {
	Subject  string `json:"subject"`
	Formal   string `json:"formal"`
	Friendly string `json:"friendly"`
}

// Interview is the drafted logistics for a match. There is at most one per match.
type Interview struct {
	ID              uuid.UUID       `json:"id"`
	MatchID         uuid.UUID       `json:"match_id"`
	ScheduledAt     time.Time       `json:"scheduled_at"`
	DurationMinutes int             `json:"duration_minutes"`
	Type            string          `json:"type"`
	Format          string          `json:"format"`
	Topics          []string        `json:"topics"`
	Interviewers    []string        `json:"interviewers"`
	SuggestedSlots  []time.Time     `json:"suggested_slots"`
	Invitation      Invitation      `json:"invitation"`
	DraftStatus     ResultStatus    `json:"draft_status"`
	Status          InterviewStatus `json:"status"`
	Feedback        string          `json:"feedback,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
