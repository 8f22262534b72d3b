// Package report exports ranked matches for a job as an XLSX workbook.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/job-screening/internal/ranking"
	"github.com/jonathan/job-screening/internal/types"
	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Ranked Candidates"
)

// Row is one ranked match with its candidate and, if drafted, its interview.
type Row struct {
	Match     types.Match
	Candidate *types.Candidate
	Interview *types.Interview
}

// Report is the input to Write.
type Report struct {
	Job       *types.Job
	Rows      []Row
	Threshold float64
	Generated time.Time
}

var candidateHeaders = []string{
	"Rank", "Candidate", "Email", "Overall", "Embedding", "Skills", "Experience",
	"Matching Skills", "Status", "Interview", "Notes",
}

// Write renders the workbook to w.
func Write(w io.Writer, r *Report) error {
	f, err := build(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile renders the workbook to path, adding the .xlsx extension when missing.
func WriteFile(path string, r *Report) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f, err := build(r)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return path, nil
}

func build(r *Report) (*excelize.File, error) {
	if r == nil || r.Job == nil {
		return nil, fmt.Errorf("report requires a job")
	}
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(CandidatesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeSummary(f, r); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeCandidates(f, r.Rows); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}
	return f, nil
}

func writeSummary(f *excelize.File, r *Report) error {
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 22)
	_ = f.SetColWidth(SummarySheet, "B", "B", 60)

	generated := r.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	var total float64
	shortlisted := 0
	for _, row := range r.Rows {
		total += row.Match.OverallScore
		if row.Match.OverallScore >= r.Threshold {
			shortlisted++
		}
	}
	average := 0.0
	if len(r.Rows) > 0 {
		average = ranking.RoundScore(total / float64(len(r.Rows)))
	}

	rows := [][2]any{
		{"Job Title", r.Job.Title},
		{"Required Skills", strings.Join(r.Job.RequiredSkills, ", ")},
		{"Preferred Skills", strings.Join(r.Job.PreferredSkills, ", ")},
		{"Experience", r.Job.Experience},
		{"Candidates", len(r.Rows)},
		{"Average Score", average},
		{fmt.Sprintf("At or above %.0f", r.Threshold), shortlisted},
		{"Generated", generated.Format(time.RFC3339)},
	}
	for i, kv := range rows {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(SummarySheet, label, kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(SummarySheet, value, kv[1]); err != nil {
			return err
		}
		_ = f.SetCellStyle(SummarySheet, label, label, labelStyle)
	}
	return nil
}

func writeCandidates(f *excelize.File, rows []Row) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	bands, err := scoreStyles(f)
	if err != nil {
		return err
	}

	widths := []float64{6, 24, 28, 10, 11, 10, 11, 30, 11, 20, 60}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(CandidatesSheet, col, col, w)
	}

	for i, h := range candidateHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(CandidatesSheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(candidateHeaders), 1)
	_ = f.SetCellStyle(CandidatesSheet, "A1", last, headerStyle)

	for i, row := range rows {
		line := i + 2
		d := row.Match.Details
		name, email := "", ""
		if row.Candidate != nil {
			name, email = row.Candidate.Name, row.Candidate.Email
		}
		interview := ""
		if row.Interview != nil {
			interview = row.Interview.ScheduledAt.Format("2006-01-02 15:04")
		}

		values := []any{
			i + 1,
			name,
			email,
			ranking.RoundScore(row.Match.OverallScore),
			ranking.RoundScore(d.EmbeddingSimilarity),
			ranking.RoundScore(d.SkillMatch),
			ranking.RoundScore(d.ExperienceMatch),
			strings.Join(d.MatchingSkills, ", "),
			string(row.Match.Status),
			interview,
			ranking.Notes(d),
		}
		start, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetSheetRow(CandidatesSheet, start, &values); err != nil {
			return err
		}
		end, _ := excelize.CoordinatesToCellName(len(values), line)
		_ = f.SetCellStyle(CandidatesSheet, start, end, bands.pick(row.Match.OverallScore))
	}
	return nil
}

type bandStyles struct {
	excellent, good, fair, poor int
}

func (b bandStyles) pick(score float64) int {
	switch {
	case score >= 90:
		return b.excellent
	case score >= 70:
		return b.good
	case score >= 50:
		return b.fair
	default:
		return b.poor
	}
}

func scoreStyles(f *excelize.File) (bandStyles, error) {
	var b bandStyles
	for _, s := range []struct {
		dst   *int
		color string
	}{
		{&b.excellent, "C6EFCE"},
		{&b.good, "FFEB9C"},
		{&b.fair, "FFC7CE"},
		{&b.poor, "FF9999"},
	} {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{s.color}, Pattern: 1},
		})
		if err != nil {
			return b, err
		}
		*s.dst = id
	}
	return b, nil
}
