package types

import (
	"time"

	"github.com/google/uuid"
)

// Job is a structured job posting extracted from raw text.
// Jobs are immutable once saved.
type Job struct {
	ID               uuid.UUID    `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	RequiredSkills   []string     `json:"required_skills"`
	PreferredSkills  []string     `json:"preferred_skills"`
	Experience       string       `json:"experience"`
	Education        string       `json:"education"`
	Responsibilities []string     `json:"responsibilities"`
	Embedding        []float32    `json:"embedding,omitempty"`
	ExtractionStatus ResultStatus `json:"extraction_status"`
	SourceURL        string       `json:"source_url,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// NewEmptyJob returns a job with every sequence initialised to an empty slice.
func NewEmptyJob() *Job {
	return &Job{
		RequiredSkills:   []string{},
		PreferredSkills:  []string{},
		Responsibilities: []string{},
		Embedding:        []float32{},
	}
}

// FillDefaults replaces nil sequences with empty ones so the record is always fully populated.
func (j *Job) FillDefaults() {
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	if j.PreferredSkills == nil {
		j.PreferredSkills = []string{}
	}
	if j.Responsibilities == nil {
		j.Responsibilities = []string{}
	}
	if j.Embedding == nil {
		j.Embedding = []float32{}
	}
}

// AllSkills returns required then preferred skills.
func (j *Job) AllSkills() []string {
	out := make([]string, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	out = append(out, j.RequiredSkills...)
	return append(out, j.PreferredSkills...)
}
