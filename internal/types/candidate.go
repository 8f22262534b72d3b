package types

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is a structured résumé extracted from raw text.
// Candidates are immutable once saved.
type Candidate struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	Skills           []string     `json:"skills"`
	Experience       []Experience `json:"experience"`
	Education        []Education  `json:"education"`
	Embedding        []float32    `json:"embedding,omitempty"`
	ExtractionStatus ResultStatus `json:"extraction_status"`
	SourceFile       string       `json:"source_file,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Experience is a single work history entry.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is a single education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// NewEmptyCandidate returns a candidate with every sequence initialised to an empty slice.
func NewEmptyCandidate() *Candidate {
	return &Candidate{
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
		Embedding:  []float32{},
	}
}

// FillDefaults replaces nil sequences with empty ones.
func (c *Candidate) FillDefaults() {
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Experience == nil {
		c.Experience = []Experience{}
	}
	if c.Education == nil {
		c.Education = []Education{}
	}
	if c.Embedding == nil {
		c.Embedding = []float32{}
	}
}
