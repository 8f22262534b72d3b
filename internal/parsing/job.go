// Package parsing turns job descriptions and résumés into structured records.
// A generative model does the extraction; when its output is unusable a
// keyword heuristic fills the record instead.
package parsing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/job-screening/internal/llm"
	"github.com/jonathan/job-screening/internal/logging"
	"github.com/jonathan/job-screening/internal/prompts"
	"github.com/jonathan/job-screening/internal/schemas"
	"github.com/jonathan/job-screening/internal/types"
	"go.uber.org/zap"
)

const maxLoggedResponse = 500

// JobResult is the outcome of one job description extraction.
// Job is never nil.
type JobResult struct {
	Job    *types.Job
	Status types.ResultStatus
	Err    error
}

// JobExtractor extracts job records from raw description text.
type JobExtractor struct {
	gen    llm.Client
	emb    llm.Embedder
	logger *zap.Logger
}

// NewJobExtractor returns an extractor using gen for extraction and emb for
// the description embedding.
func NewJobExtractor(gen llm.Client, emb llm.Embedder, logger *zap.Logger) *JobExtractor {
	logger = logging.WithComponent(logger, "job_extractor")
	if gen != nil {
		logger = logging.WithModel(logger, "gemini", gen.GetModel(llm.TierStandard))
	}
	return &JobExtractor{gen: gen, emb: emb, logger: logger}
}

type jobRecord struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	Experience       string   `json:"experience"`
	Education        string   `json:"education"`
	Responsibilities []string `json:"responsibilities"`
}

// Extract never fails: errors are reported through the result status and
// the returned record is always usable.
func (e *JobExtractor) Extract(ctx context.Context, text string) (res JobResult) {
	var embedding []float32
	defer func() {
		if r := recover(); r != nil {
			job := types.NewEmptyJob()
			job.Description = strings.TrimSpace(text)
			if embedding != nil {
				job.Embedding = embedding
			}
			job.ExtractionStatus = types.StatusFailed
			res = JobResult{Job: job, Status: types.StatusFailed, Err: fmt.Errorf("job extraction panicked: %v", r)}
			e.logger.Error("job extraction panicked", zap.Any("panic", r))
		}
	}()

	if strings.TrimSpace(text) == "" {
		job := types.NewEmptyJob()
		job.ExtractionStatus = types.StatusFailed
		return JobResult{Job: job, Status: types.StatusFailed, Err: ErrEmptyInput}
	}

	embedding = embed(ctx, e.emb, text, e.logger)

	job, status, err := e.extract(ctx, text)
	job.Embedding = embedding
	job.ExtractionStatus = status
	job.FillDefaults()

	e.logger.Info("job extracted",
		zap.String(logging.FieldStatus, string(status)),
		zap.String("title", job.Title),
		zap.Int("required_skills", len(job.RequiredSkills)),
		zap.Int("embedding_dim", len(job.Embedding)),
	)
	return JobResult{Job: job, Status: status, Err: err}
}

func (e *JobExtractor) extract(ctx context.Context, text string) (*types.Job, types.ResultStatus, error) {
	if e.gen == nil {
		err := &APICallError{Message: "no generative provider configured"}
		e.logger.Warn("using heuristic job extraction", zap.Error(err))
		return HeuristicJob(text), types.StatusFailed, err
	}

	prompt, err := prompts.Render("extraction.json", "extract-job", map[string]string{
		"Schema": llm.JobRecordSchema().Example(),
		"Text":   text,
	})
	if err != nil {
		return HeuristicJob(text), types.StatusFailed, err
	}

	resp, err := e.gen.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		apiErr := &APICallError{Message: "failed to extract job record", Cause: err}
		e.logger.Warn("generative provider failed, using heuristic job extraction", zap.Error(apiErr))
		return HeuristicJob(text), types.StatusFailed, apiErr
	}
	e.logger.Debug("job extraction response", zap.String("response", logging.TruncateForLog(resp, maxLoggedResponse)))

	var rec jobRecord
	if err := decodeRecord(resp, schemas.JobRecord, &rec); err != nil {
		e.logger.Warn("unusable job extraction response, using heuristic", zap.Error(err))
		return HeuristicJob(text), types.StatusDegraded, err
	}

	job := &types.Job{
		Title:            strings.TrimSpace(rec.Title),
		Description:      strings.TrimSpace(rec.Description),
		RequiredSkills:   NormalizeSkills(rec.RequiredSkills),
		PreferredSkills:  NormalizeSkills(rec.PreferredSkills),
		Experience:       strings.TrimSpace(rec.Experience),
		Education:        strings.TrimSpace(rec.Education),
		Responsibilities: trimAll(rec.Responsibilities),
	}
	if job.Description == "" {
		job.Description = strings.TrimSpace(text)
	}
	return job, types.StatusSuccess, nil
}

// embed returns the embedding of text, or an empty vector when it fails.
func embed(ctx context.Context, emb llm.Embedder, text string, logger *zap.Logger) []float32 {
	if emb == nil {
		return []float32{}
	}
	vec, err := emb.Embed(ctx, text)
	if err != nil {
		level := zap.WarnLevel
		if errors.Is(err, context.Canceled) {
			level = zap.DebugLevel
		}
		logger.Log(level, "embedding failed", zap.Error(err))
		return []float32{}
	}
	return vec
}
