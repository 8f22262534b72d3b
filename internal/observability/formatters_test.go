package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := types.NewEmptyJob()
	job.Title = "Senior Backend Engineer"
	job.RequiredSkills = []string{"Go", "SQL", "Kubernetes", "AWS", "Kafka", "Redis", "gRPC"}
	job.PreferredSkills = []string{"Rust"}
	job.Experience = "5+ years"
	job.ExtractionStatus = types.StatusSuccess

	p.PrintJob(job)
	output := buf.String()

	assert.Contains(t, output, "ANALYZED JOB")
	assert.Contains(t, output, "Senior Backend Engineer")
	assert.Contains(t, output, "Kafka")
	assert.NotContains(t, output, "Redis")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "Rust")
	assert.Contains(t, output, "success")
}

func TestPrintCandidate(t *testing.T) {
	var buf bytes.Buffer
	c := types.NewEmptyCandidate()
	c.Name = "Jane Doe"
	c.Email = "jane@example.com"
	c.Skills = []string{"python"}
	c.Experience = []types.Experience{{Title: "Engineer", Company: "Acme"}}

	NewPrinter(&buf).PrintCandidate(c)

	assert.Contains(t, buf.String(), "Jane Doe")
	assert.Contains(t, buf.String(), "Engineer @ Acme")
}

func TestPrintMatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	d := types.ZeroDetails()
	d.SkillMatch = 75
	d.MatchingSkills = []string{"Go"}
	m := &types.Match{ID: uuid.New(), OverallScore: 81.236, Details: d}

	p.PrintMatch(m, nil)
	assert.Contains(t, buf.String(), "81.24")
	assert.NotContains(t, buf.String(), "Interview:")

	buf.Reset()
	iv := &types.Interview{
		ScheduledAt:     time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
		Type:            "Technical",
		Format:          "Online",
	}
	p.PrintMatch(m, iv)
	assert.Contains(t, buf.String(), "Wed 2026-03-04 11:00 (45 min)")
}

func TestPrintBox_ClipsLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("T", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintJob(nil)
	p.PrintCandidate(nil)
	p.PrintMatch(nil, nil)
	assert.Empty(t, buf.String())
}
