package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// AnalyzeJobRequest is the body of POST /jobs. Exactly one of Description or URL is set.
type AnalyzeJobRequest struct {
	Description string `json:"description" validate:"required_without=URL,excluded_with=URL"`
	URL         string `json:"url" validate:"omitempty,url"`
}

// Validate trims the fields and validates the AnalyzeJobRequest using the validator.
func (r *AnalyzeJobRequest) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	r.URL = strings.TrimSpace(r.URL)
	return validate.Struct(r)
}

// AnalyzeCandidateRequest is the JSON form of POST /candidates.
type AnalyzeCandidateRequest struct {
	Text       string `json:"text" validate:"required"`
	SourceFile string `json:"source_file,omitempty"`
}

// Validate trims the text and validates the AnalyzeCandidateRequest using the validator.
func (r *AnalyzeCandidateRequest) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	return validate.Struct(r)
}

// MatchRequest is the body of POST /matches.
type MatchRequest struct {
	JobID       uuid.UUID `json:"job_id" validate:"required"`
	CandidateID uuid.UUID `json:"candidate_id" validate:"required"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	return validate.Struct(r)
}

// MatchStatusRequest is the body of PATCH /matches/{id}/status.
type MatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

// Validate validates the MatchStatusRequest using the validator.
func (r *MatchStatusRequest) Validate() error {
	return validate.Struct(r)
}

// InterviewStatusRequest is the body of PATCH /interviews/{id}/status.
type InterviewStatusRequest struct {
	Status   string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
	Feedback string `json:"feedback,omitempty"`
}

// Validate validates the InterviewStatusRequest using the validator.
func (r *InterviewStatusRequest) Validate() error {
	return validate.Struct(r)
}
