package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBoard(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", "greenhouse"},
		{"https://boards.greenhouse.io/company/jobs/123", "greenhouse"},
		{"https://jobs.lever.co/company/job-id", "lever"},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", "workday"},
		{"https://jobs.ashbyhq.com/acme/123", "ashby"},
		{"https://www.linkedin.com/jobs/view/123", "linkedin"},
		{"https://notgreenhouse.io.example.com/jobs", "generic"},
		{"https://example.com/careers/backend", "generic"},
		{"::not a url", "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectBoard(tt.url).Name)
		})
	}
}

func TestBoard_Selectors(t *testing.T) {
	gh := DetectBoard("https://boards.greenhouse.io/acme/jobs/1")

	content := gh.ContentSelectors()
	assert.Equal(t, ".job__description.body", content[0])
	assert.Contains(t, content, "main")

	noise := gh.NoiseSelectors()
	assert.Contains(t, noise, "form")
	assert.Contains(t, noise, ".voluntary-self-id")

	generic := GenericBoard.ContentSelectors()
	assert.Equal(t, JobPostingSelectors(), generic)
}
