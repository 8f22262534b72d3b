package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/job-screening/internal/types"
)

const matchColumns = `id, job_id, candidate_id, overall_score, details, status, created_at, updated_at`

// SaveMatch inserts a match. A nil ID is assigned and an empty status becomes pending.
func (db *DB) SaveMatch(ctx context.Context, m *types.Match) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = types.MatchPending
	}

	details, err := marshalJSON(m.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal match details: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO matches (id, job_id, candidate_id, overall_score, details, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		m.ID, m.JobID, m.CandidateID, m.OverallScore, details, string(m.Status),
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}
	return nil
}

// GetMatch retrieves a match by ID. It returns nil, nil when absent.
func (db *DB) GetMatch(ctx context.Context, id uuid.UUID) (*types.Match, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	m, err := scanMatch(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// ListMatchesByJob returns a job's matches, best score first.
func (db *DB) ListMatchesByJob(ctx context.Context, jobID uuid.UUID) ([]types.Match, error) {
	return db.listMatches(ctx, "job_id", jobID)
}

// ListMatchesByCandidate returns a candidate's matches, best score first.
func (db *DB) ListMatchesByCandidate(ctx context.Context, candidateID uuid.UUID) ([]types.Match, error) {
	return db.listMatches(ctx, "candidate_id", candidateID)
}

func (db *DB) listMatches(ctx context.Context, column string, id uuid.UUID) ([]types.Match, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE `+column+` = $1
		 ORDER BY overall_score DESC, created_at ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := []types.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// UpdateMatchStatus sets a match's workflow status.
func (db *DB) UpdateMatchStatus(ctx context.Context, id uuid.UUID, status types.MatchStatus) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE matches SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMatch(row pgx.Row) (*types.Match, error) {
	var (
		m       types.Match
		details []byte
		status  string
	)
	if err := row.Scan(&m.ID, &m.JobID, &m.CandidateID, &m.OverallScore, &details,
		&status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Details = types.ZeroDetails()
	if err := unmarshalJSON(details, &m.Details); err != nil {
		return nil, fmt.Errorf("failed to decode match details: %w", err)
	}
	m.Status = types.MatchStatus(status)
	return &m, nil
}
