package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/report"
)

// JobReport collects a job's ranked matches with their candidates and interviews.
func (s *Service) JobReport(ctx context.Context, jobID uuid.UUID) (*report.Report, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.ListMatchesByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job matches: %w", err)
	}

	rows := make([]report.Row, 0, len(matches))
	for _, m := range matches {
		c, err := s.store.GetCandidate(ctx, m.CandidateID)
		if err != nil {
			return nil, fmt.Errorf("failed to get candidate: %w", err)
		}
		iv, err := s.store.GetInterviewByMatch(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get interview: %w", err)
		}
		rows = append(rows, report.Row{Match: m, Candidate: c, Interview: iv})
	}

	return &report.Report{
		Job:       job,
		Rows:      rows,
		Threshold: s.cfg.Threshold,
		Generated: time.Now(),
	}, nil
}
