package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeJobRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AnalyzeJobRequest
		wantErr bool
	}{
		{name: "description only", req: AnalyzeJobRequest{Description: "Backend engineer"}},
		{name: "url only", req: AnalyzeJobRequest{URL: "https://jobs.example.com/123"}},
		{name: "neither", req: AnalyzeJobRequest{}, wantErr: true},
		{name: "both", req: AnalyzeJobRequest{Description: "x", URL: "https://jobs.example.com/1"}, wantErr: true},
		{name: "bad url", req: AnalyzeJobRequest{URL: "not a url"}, wantErr: true},
		{name: "blank description", req: AnalyzeJobRequest{Description: " \n\t "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatchRequest_Validate(t *testing.T) {
	assert.NoError(t, (&MatchRequest{JobID: uuid.New(), CandidateID: uuid.New()}).Validate())
	assert.Error(t, (&MatchRequest{JobID: uuid.New()}).Validate())
	assert.Error(t, (&MatchRequest{CandidateID: uuid.New()}).Validate())
}

func TestStatusRequests_Validate(t *testing.T) {
	assert.NoError(t, (&MatchStatusRequest{Status: "accepted"}).Validate())
	assert.Error(t, (&MatchStatusRequest{Status: "maybe"}).Validate())
	assert.NoError(t, (&InterviewStatusRequest{Status: "completed", Feedback: "strong"}).Validate())
	assert.Error(t, (&InterviewStatusRequest{}).Validate())
}

func TestAnalyzeCandidateRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AnalyzeCandidateRequest{Text: "Jane Doe"}).Validate())
	assert.Error(t, (&AnalyzeCandidateRequest{}).Validate())
	assert.Error(t, (&AnalyzeCandidateRequest{Text: "  \n\t "}).Validate())

	req := &AnalyzeCandidateRequest{Text: "\n Jane Doe \n"}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "Jane Doe", req.Text)
}
