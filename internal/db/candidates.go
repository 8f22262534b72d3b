package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/types"
	"github.com/pgvector/pgvector-go"
)

// SaveCandidate inserts a candidate. A nil ID is assigned before the insert.
func (db *DB) SaveCandidate(ctx context.Context, c *types.Candidate) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.FillDefaults()

	skills, err := marshalJSON(c.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	experience, err := marshalJSON(c.Experience)
	if err != nil {
		return fmt.Errorf("failed to marshal experience: %w", err)
	}
	education, err := marshalJSON(c.Education)
	if err != nil {
		return fmt.Errorf("failed to marshal education: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO candidates (id, name, email, phone, skills, experience, education,
		                         embedding, extraction_status, source_file)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		c.ID, c.Name, c.Email, c.Phone, skills, experience, education,
		toVector(c.Embedding), string(c.ExtractionStatus), c.SourceFile,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	return nil
}

// GetCandidate retrieves a candidate by ID. It returns nil, nil when absent.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	var (
		c                             types.Candidate
		skills, experience, education []byte
		embedding                     *pgvector.Vector
		status                        string
	)

	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, skills, experience, education,
		        embedding, extraction_status, source_file, created_at
		 FROM candidates WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &skills, &experience, &education,
		&embedding, &status, &c.SourceFile, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if err := unmarshalJSON(skills, &c.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	if err := unmarshalJSON(experience, &c.Experience); err != nil {
		return nil, fmt.Errorf("failed to decode experience: %w", err)
	}
	if err := unmarshalJSON(education, &c.Education); err != nil {
		return nil, fmt.Errorf("failed to decode education: %w", err)
	}
	c.Embedding = fromVector(embedding)
	c.ExtractionStatus = types.ResultStatus(status)
	c.FillDefaults()
	return &c, nil
}
