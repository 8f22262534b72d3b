// Package ranking scores how well a candidate fits a job.
package ranking

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/job-screening/internal/llm"
	"github.com/jonathan/job-screening/internal/logging"
	"github.com/jonathan/job-screening/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// experience entries above this similarity are reported as matching
	matchingExperienceThreshold = 0.5
	embedConcurrency            = 4
)

// Scorer combines embedding similarity, skill overlap and experience
// similarity into a 0-100 score.
type Scorer struct {
	emb     llm.Embedder
	weights Weights
	logger  *zap.Logger
}

// NewScorer returns a Scorer. emb is used for the experience component.
func NewScorer(emb llm.Embedder, weights Weights, logger *zap.Logger) *Scorer {
	return &Scorer{
		emb:     emb,
		weights: weights.Normalize(),
		logger:  logging.WithComponent(logger, "matcher"),
	}
}

// Weights returns the normalized weights in use.
func (s *Scorer) Weights() Weights { return s.weights }

// Score never fails; an internal failure yields (0, zeroed details).
func (s *Scorer) Score(ctx context.Context, job *types.Job, candidate *types.Candidate) (score float64, details types.MatchDetails) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scoring panicked", zap.Any("panic", r))
			score, details = 0, types.ZeroDetails()
		}
	}()

	if job == nil || candidate == nil {
		return 0, types.ZeroDetails()
	}

	embSim := CosineSimilarity(job.Embedding, candidate.Embedding)
	skillScore, matchedSkills := SkillMatch(job.AllSkills(), candidate.Skills)
	expScore, matchedExp := s.experienceMatch(ctx, job.Experience, candidate.Experience)

	w := s.weights
	// normalized weights can sum to slightly above 1
	overall := clamp01(w.Embedding*embSim+w.Skills*skillScore+w.Experience*expScore) * 100

	details = types.MatchDetails{
		OverallScore:        overall,
		EmbeddingSimilarity: embSim * 100,
		SkillMatch:          skillScore * 100,
		ExperienceMatch:     expScore * 100,
		MatchingSkills:      matchedSkills,
		MatchingExperience:  matchedExp,
	}

	s.logger.Debug("candidate scored",
		zap.String("job_id", job.ID.String()),
		zap.String("candidate_id", candidate.ID.String()),
		zap.Float64("overall", RoundScore(overall)),
		zap.Float64("embedding", RoundScore(embSim*100)),
		zap.Float64("skills", RoundScore(skillScore*100)),
		zap.Float64("experience", RoundScore(expScore*100)),
	)
	return overall, details
}

// experienceMatch returns the best similarity between the job's experience
// requirement and any experience entry, plus the entries above the
// reporting threshold.
func (s *Scorer) experienceMatch(ctx context.Context, requirement string, entries []types.Experience) (float64, []types.Experience) {
	matched := make([]types.Experience, 0)
	if strings.TrimSpace(requirement) == "" || len(entries) == 0 || s.emb == nil {
		return 0, matched
	}

	reqVec, err := s.emb.Embed(ctx, requirement)
	if err != nil {
		s.logger.Warn("failed to embed experience requirement", zap.Error(err))
		return 0, matched
	}

	sims := make([]float64, len(entries))
	g := new(errgroup.Group)
	g.SetLimit(embedConcurrency)
	for i, entry := range entries {
		if strings.TrimSpace(entry.Description) == "" {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("embedding panicked: %v", r)
				}
			}()
			vec, embErr := s.emb.Embed(ctx, entry.Description)
			if embErr != nil {
				s.logger.Warn("failed to embed experience entry", zap.Int("entry", i), zap.Error(embErr))
				return nil
			}
			sims[i] = CosineSimilarity(reqVec, vec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("experience scoring incomplete", zap.Error(err))
	}

	best := 0.0
	for i, sim := range sims {
		if sim > best {
			best = sim
		}
		if sim > matchingExperienceThreshold {
			matched = append(matched, entries[i])
		}
	}
	return best, matched
}
