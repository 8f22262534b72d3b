// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-screening/internal/ranking"
	"github.com/jonathan/job-screening/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items under a heading.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintJob outputs a summary of an extracted job.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:      %s\n", job.Title)
	fmt.Fprintf(&sb, "Status:     %s\n", job.ExtractionStatus)
	if job.Experience != "" {
		fmt.Fprintf(&sb, "Experience: %s\n", job.Experience)
	}
	fmt.Fprintf(&sb, "Embedding:  %d dims\n\n", len(job.Embedding))

	writeList(&sb, "Required Skills", job.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred Skills", job.PreferredSkills, 3)
	writeList(&sb, "Responsibilities", job.Responsibilities, 3)

	p.printBox("ANALYZED JOB", strings.TrimRight(sb.String(), "\n"))
}

// PrintCandidate outputs a summary of an extracted candidate.
func (p *Printer) PrintCandidate(c *types.Candidate) {
	if c == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:   %s\n", c.Name)
	fmt.Fprintf(&sb, "Email:  %s\n", c.Email)
	fmt.Fprintf(&sb, "Status: %s\n\n", c.ExtractionStatus)

	writeList(&sb, "Skills", c.Skills, maxItemsToShow)

	roles := make([]string, 0, len(c.Experience))
	for _, e := range c.Experience {
		role := e.Title
		if e.Company != "" {
			role += " @ " + e.Company
		}
		roles = append(roles, role)
	}
	writeList(&sb, "Experience", roles, 3)

	p.printBox("ANALYZED CANDIDATE", strings.TrimRight(sb.String(), "\n"))
}

// PrintMatch outputs a match's score breakdown and, when drafted, its interview.
func (p *Printer) PrintMatch(m *types.Match, iv *types.Interview) {
	if m == nil {
		return
	}

	d := m.Details
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:    %.2f\n", ranking.RoundScore(m.OverallScore))
	fmt.Fprintf(&sb, "Embedding:  %.2f\n", ranking.RoundScore(d.EmbeddingSimilarity))
	fmt.Fprintf(&sb, "Skills:     %.2f\n", ranking.RoundScore(d.SkillMatch))
	fmt.Fprintf(&sb, "Experience: %.2f\n", ranking.RoundScore(d.ExperienceMatch))
	fmt.Fprintf(&sb, "Notes:      %s\n", ranking.Notes(d))

	if iv != nil {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Interview:  %s (%d min)\n", iv.ScheduledAt.Format("Mon 2006-01-02 15:04"), iv.DurationMinutes)
		fmt.Fprintf(&sb, "Format:     %s %s\n", iv.Format, iv.Type)
		fmt.Fprintf(&sb, "Draft:      %s\n", iv.DraftStatus)
	}

	p.printBox("MATCH "+m.ID.String(), strings.TrimRight(sb.String(), "\n"))
}
