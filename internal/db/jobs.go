package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/types"
	"github.com/pgvector/pgvector-go"
)

const jobColumns = `id, title, description, required_skills, preferred_skills, experience,
	education, responsibilities, embedding, extraction_status, source_url, created_at`

// SaveJob inserts a job. A nil ID is assigned before the insert.
func (db *DB) SaveJob(ctx context.Context, job *types.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.FillDefaults()

	required, err := marshalJSON(job.RequiredSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal required skills: %w", err)
	}
	preferred, err := marshalJSON(job.PreferredSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal preferred skills: %w", err)
	}
	responsibilities, err := marshalJSON(job.Responsibilities)
	if err != nil {
		return fmt.Errorf("failed to marshal responsibilities: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, title, description, required_skills, preferred_skills, experience,
		                   education, responsibilities, embedding, extraction_status, source_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at`,
		job.ID, job.Title, job.Description, required, preferred, job.Experience,
		job.Education, responsibilities, toVector(job.Embedding), string(job.ExtractionStatus), job.SourceURL,
	).Scan(&job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID. It returns nil, nil when absent.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var (
		j                                   types.Job
		required, preferred, responsibility []byte
		embedding                           *pgvector.Vector
		status                              string
	)

	err := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id,
	).Scan(&j.ID, &j.Title, &j.Description, &required, &preferred, &j.Experience,
		&j.Education, &responsibility, &embedding, &status, &j.SourceURL, &j.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if err := unmarshalJSON(required, &j.RequiredSkills); err != nil {
		return nil, fmt.Errorf("failed to decode required skills: %w", err)
	}
	if err := unmarshalJSON(preferred, &j.PreferredSkills); err != nil {
		return nil, fmt.Errorf("failed to decode preferred skills: %w", err)
	}
	if err := unmarshalJSON(responsibility, &j.Responsibilities); err != nil {
		return nil, fmt.Errorf("failed to decode responsibilities: %w", err)
	}
	j.Embedding = fromVector(embedding)
	j.ExtractionStatus = types.ResultStatus(status)
	j.FillDefaults()
	return &j, nil
}
