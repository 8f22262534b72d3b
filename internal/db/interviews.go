package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/job-screening/internal/types"
)

const interviewColumns = `id, match_id, scheduled_at, duration_minutes, type, format, topics,
	interviewers, suggested_slots, invitation, draft_status, status, feedback, created_at, updated_at`

// SaveInterview inserts an interview. It returns ErrDuplicate when the match
// already has one.
func (db *DB) SaveInterview(ctx context.Context, iv *types.Interview) error {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	if iv.Status == "" {
		iv.Status = types.InterviewScheduled
	}

	topics, err := marshalJSON(iv.Topics)
	if err != nil {
		return fmt.Errorf("failed to marshal topics: %w", err)
	}
	interviewers, err := marshalJSON(iv.Interviewers)
	if err != nil {
		return fmt.Errorf("failed to marshal interviewers: %w", err)
	}
	slots, err := marshalJSON(iv.SuggestedSlots)
	if err != nil {
		return fmt.Errorf("failed to marshal suggested slots: %w", err)
	}
	invitation, err := marshalJSON(iv.Invitation)
	if err != nil {
		return fmt.Errorf("failed to marshal invitation: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO interviews (id, match_id, scheduled_at, duration_minutes, type, format, topics,
		                         interviewers, suggested_slots, invitation, draft_status, status, feedback)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING created_at, updated_at`,
		iv.ID, iv.MatchID, iv.ScheduledAt, iv.DurationMinutes, iv.Type, iv.Format, topics,
		interviewers, slots, invitation, string(iv.DraftStatus), string(iv.Status), iv.Feedback,
	).Scan(&iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to save interview: %w", err)
	}
	return nil
}

// GetInterview retrieves an interview by ID. It returns nil, nil when absent.
func (db *DB) GetInterview(ctx context.Context, id uuid.UUID) (*types.Interview, error) {
	return db.getInterview(ctx, "id", id)
}

// GetInterviewByMatch retrieves the interview for a match. It returns nil, nil when absent.
func (db *DB) GetInterviewByMatch(ctx context.Context, matchID uuid.UUID) (*types.Interview, error) {
	return db.getInterview(ctx, "match_id", matchID)
}

func (db *DB) getInterview(ctx context.Context, column string, id uuid.UUID) (*types.Interview, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE `+column+` = $1`, id)
	iv, err := scanInterview(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return iv, nil
}

// UpdateInterviewStatus sets an interview's status. An empty feedback keeps the stored one.
func (db *DB) UpdateInterviewStatus(ctx context.Context, id uuid.UUID, status types.InterviewStatus, feedback string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE interviews
		 SET status = $1, feedback = COALESCE(NULLIF($2, ''), feedback), updated_at = NOW()
		 WHERE id = $3`,
		string(status), feedback, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update interview status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanInterview(row pgx.Row) (*types.Interview, error) {
	var (
		iv                                      types.Interview
		topics, interviewers, slots, invitation []byte
		draftStatus, status                     string
	)
	if err := row.Scan(&iv.ID, &iv.MatchID, &iv.ScheduledAt, &iv.DurationMinutes, &iv.Type,
		&iv.Format, &topics, &interviewers, &slots, &invitation, &draftStatus, &status,
		&iv.Feedback, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		data []byte
		out  any
		name string
	}{
		{topics, &iv.Topics, "topics"},
		{interviewers, &iv.Interviewers, "interviewers"},
		{slots, &iv.SuggestedSlots, "suggested slots"},
		{invitation, &iv.Invitation, "invitation"},
	} {
		if err := unmarshalJSON(f.data, f.out); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", f.name, err)
		}
	}
	iv.DraftStatus = types.ResultStatus(draftStatus)
	iv.Status = types.InterviewStatus(status)
	return &iv, nil
}
