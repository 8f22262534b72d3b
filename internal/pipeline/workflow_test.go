package pipeline

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jonathan/job-screening/internal/db"
	"github.com/jonathan/job-screening/internal/llm/llmtest"
	"github.com/jonathan/job-screening/internal/parsing"
	"github.com/jonathan/job-screening/internal/ranking"
	"github.com/jonathan/job-screening/internal/scheduling"
	"github.com/jonathan/job-screening/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	e2eJobText    = "Backend Engineer\nRequired: Python, AWS\nExperience: 3+ years backend development"
	e2eResumeText = "Jane Doe\njane@example.com\nSkills: python, docker\nBuilt Python services on AWS"
)

func TestWorkflow_EndToEnd(t *testing.T) {
	jobGen := llmtest.NewClient(`{
		"title": "Backend Engineer",
		"required_skills": ["Python", "AWS"],
		"experience": "3+ years backend development",
		"responsibilities": ["Build services"]
	}`)
	resumeGen := llmtest.NewClient(`{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"skills": ["python", "docker"],
		"experience": [{"title": "Backend Engineer", "company": "Acme", "description": "Built Python services on AWS"}]
	}`)
	draftGen := llmtest.NewClient(
		`{"date": "2026-03-04", "time": "11:00", "duration": 45, "type": "Technical", "format": "Online"}`,
		`{"subject": "Interview", "formal": "Dear Jane", "friendly": "Hi Jane"}`,
	)

	emb := llmtest.NewEmbedder(nil).
		On(e2eJobText, []float32{0.6, 0.8}).
		On(e2eResumeText, []float32{0.6, 0.8}).
		On("3+ years backend development", []float32{1, 0}).
		On("Built Python services on AWS", []float32{0.9, float32(math.Sqrt(1 - 0.81))})

	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	notifier := &recordingNotifier{}
	svc := New(
		db.NewMemory(),
		parsing.NewJobExtractor(jobGen, emb, nil),
		parsing.NewResumeExtractor(resumeGen, emb, nil),
		ranking.NewScorer(emb, ranking.DefaultWeights(), nil),
		scheduling.NewDrafter(draftGen, nil, scheduling.Options{Now: func() time.Time { return now }, Location: time.UTC}),
		notifier,
		Config{Threshold: 75, AutoSchedule: true},
		nil,
	)
	ctx := context.Background()

	job, err := svc.AnalyzeJob(ctx, e2eJobText)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, job.ExtractionStatus)

	c, err := svc.AnalyzeCandidate(ctx, e2eResumeText, "jane.txt")
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, c.ExtractionStatus)

	out, err := svc.MatchCandidate(ctx, job.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 78.0, ranking.RoundScore(out.Match.OverallScore))
	assert.Equal(t, []string{"Python"}, out.Match.Details.MatchingSkills)

	require.NotNil(t, out.Interview)
	assert.Equal(t, time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC), out.Interview.ScheduledAt)
	assert.Equal(t, 45, out.Interview.DurationMinutes)
	assert.Equal(t, types.StatusSuccess, out.Interview.DraftStatus)
	assert.Equal(t, []string{"jane@example.com"}, notifier.sent)
}
