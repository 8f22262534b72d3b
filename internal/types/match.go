package types

import (
	"time"

	"github.com/google/uuid"
)

// MatchDetails is the per-component breakdown of a match score.
// All scores are percentages in [0,100].
type MatchDetails struct {
	OverallScore        float64      `json:"overall_score"`
	EmbeddingSimilarity float64      `json:"embedding_similarity"`
	SkillMatch          float64      `json:"skill_match"`
	ExperienceMatch     float64      `json:"experience_match"`
	MatchingSkills      []string     `json:"matching_skills"`
	MatchingExperience  []Experience `json:"matching_experience"`
}

// ZeroDetails returns a breakdown with every score at zero and empty lists.
func ZeroDetails() MatchDetails {
	return MatchDetails{
		MatchingSkills:     []string{},
		MatchingExperience: []Experience{},
	}
}

// Match joins one job and one candidate with a computed score.
type Match struct {
	ID           uuid.UUID    `json:"id"`
	JobID        uuid.UUID    `json:"job_id"`
	CandidateID  uuid.UUID    `json:"candidate_id"`
	OverallScore float64      `json:"overall_score"`
	Details      MatchDetails `json:"details"`
	Status       MatchStatus  `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
