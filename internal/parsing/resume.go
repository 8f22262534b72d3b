package parsing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/job-screening/internal/llm"
	"github.com/jonathan/job-screening/internal/logging"
	"github.com/jonathan/job-screening/internal/prompts"
	"github.com/jonathan/job-screening/internal/schemas"
	"github.com/jonathan/job-screening/internal/types"
	"go.uber.org/zap"
)

// CandidateResult is the outcome of one résumé extraction.
// Candidate is never nil.
type CandidateResult struct {
	Candidate *types.Candidate
	Status    types.ResultStatus
	Err       error
}

// ResumeExtractor extracts candidate records from résumé text.
type ResumeExtractor struct {
	gen    llm.Client
	emb    llm.Embedder
	logger *zap.Logger
}

// NewResumeExtractor returns a résumé extractor.
func NewResumeExtractor(gen llm.Client, emb llm.Embedder, logger *zap.Logger) *ResumeExtractor {
	logger = logging.WithComponent(logger, "resume_extractor")
	if gen != nil {
		logger = logging.WithModel(logger, "gemini", gen.GetModel(llm.TierStandard))
	}
	return &ResumeExtractor{gen: gen, emb: emb, logger: logger}
}

type candidateRecord struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Skills     []string           `json:"skills"`
	Experience []types.Experience `json:"experience"`
	Education  []types.Education  `json:"education"`
}

// Extract never fails; see JobExtractor.Extract.
func (e *ResumeExtractor) Extract(ctx context.Context, text string) (res CandidateResult) {
	var embedding []float32
	defer func() {
		if r := recover(); r != nil {
			c := types.NewEmptyCandidate()
			if embedding != nil {
				c.Embedding = embedding
			}
			c.ExtractionStatus = types.StatusFailed
			res = CandidateResult{Candidate: c, Status: types.StatusFailed, Err: fmt.Errorf("resume extraction panicked: %v", r)}
			e.logger.Error("resume extraction panicked", zap.Any("panic", r))
		}
	}()

	if strings.TrimSpace(text) == "" {
		c := types.NewEmptyCandidate()
		c.ExtractionStatus = types.StatusFailed
		return CandidateResult{Candidate: c, Status: types.StatusFailed, Err: ErrEmptyInput}
	}

	embedding = embed(ctx, e.emb, text, e.logger)

	c, status, err := e.extract(ctx, text)
	c.Embedding = embedding
	c.ExtractionStatus = status
	c.FillDefaults()

	e.logger.Info("resume extracted",
		zap.String(logging.FieldStatus, string(status)),
		zap.Int("skills", len(c.Skills)),
		zap.Int("experience_entries", len(c.Experience)),
		zap.Int("embedding_dim", len(c.Embedding)),
	)
	return CandidateResult{Candidate: c, Status: status, Err: err}
}

func (e *ResumeExtractor) extract(ctx context.Context, text string) (*types.Candidate, types.ResultStatus, error) {
	if e.gen == nil {
		err := &APICallError{Message: "no generative provider configured"}
		e.logger.Warn("using heuristic resume extraction", zap.Error(err))
		return HeuristicCandidate(text), types.StatusFailed, err
	}

	prompt, err := prompts.Render("extraction.json", "extract-resume", map[string]string{
		"Schema": llm.CandidateRecordSchema().Example(),
		"Text":   text,
	})
	if err != nil {
		return HeuristicCandidate(text), types.StatusFailed, err
	}

	resp, err := e.gen.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		apiErr := &APICallError{Message: "failed to extract candidate record", Cause: err}
		e.logger.Warn("generative provider failed, using heuristic resume extraction", zap.Error(apiErr))
		return HeuristicCandidate(text), types.StatusFailed, apiErr
	}
	e.logger.Debug("resume extraction response", zap.String("response", logging.TruncateForLog(resp, maxLoggedResponse)))

	var rec candidateRecord
	if err := decodeRecord(resp, schemas.CandidateRecord, &rec); err != nil {
		e.logger.Warn("unusable resume extraction response, using heuristic", zap.Error(err))
		return HeuristicCandidate(text), types.StatusDegraded, err
	}

	c := &types.Candidate{
		Name:   strings.TrimSpace(rec.Name),
		Email:  strings.TrimSpace(rec.Email),
		Phone:  strings.TrimSpace(rec.Phone),
		Skills: NormalizeSkills(rec.Skills),
	}
	for _, exp := range rec.Experience {
		exp.Title = strings.TrimSpace(exp.Title)
		exp.Company = strings.TrimSpace(exp.Company)
		exp.Duration = strings.TrimSpace(exp.Duration)
		exp.Description = strings.TrimSpace(exp.Description)
		if exp == (types.Experience{}) {
			continue
		}
		c.Experience = append(c.Experience, exp)
	}
	for _, edu := range rec.Education {
		if edu == (types.Education{}) {
			continue
		}
		c.Education = append(c.Education, edu)
	}
	return c, types.StatusSuccess, nil
}
