// Package pipeline orchestrates the screening workflow: extract, save, match and schedule.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/db"
	"github.com/jonathan/job-screening/internal/ingestion"
	"github.com/jonathan/job-screening/internal/logging"
	"github.com/jonathan/job-screening/internal/parsing"
	"github.com/jonathan/job-screening/internal/scheduling"
	"github.com/jonathan/job-screening/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxParallelMatches bounds MatchCandidates.
const maxParallelMatches = 4

// Store is the persistence the workflow needs. Get methods return nil, nil when
// the record is absent. Update methods return db.ErrNotFound when no row matched.
type Store interface {
	SaveJob(ctx context.Context, job *types.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	SaveCandidate(ctx context.Context, c *types.Candidate) error
	GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error)
	SaveMatch(ctx context.Context, m *types.Match) error
	GetMatch(ctx context.Context, id uuid.UUID) (*types.Match, error)
	ListMatchesByJob(ctx context.Context, jobID uuid.UUID) ([]types.Match, error)
	ListMatchesByCandidate(ctx context.Context, candidateID uuid.UUID) ([]types.Match, error)
	UpdateMatchStatus(ctx context.Context, id uuid.UUID, status types.MatchStatus) error
	SaveInterview(ctx context.Context, iv *types.Interview) error
	GetInterview(ctx context.Context, id uuid.UUID) (*types.Interview, error)
	GetInterviewByMatch(ctx context.Context, matchID uuid.UUID) (*types.Interview, error)
	UpdateInterviewStatus(ctx context.Context, id uuid.UUID, status types.InterviewStatus, feedback string) error
}

// JobAnalyzer extracts a job record from a description.
type JobAnalyzer interface {
	Extract(ctx context.Context, text string) parsing.JobResult
}

// ResumeAnalyzer extracts a candidate record from résumé text.
type ResumeAnalyzer interface {
	Extract(ctx context.Context, text string) parsing.CandidateResult
}

// MatchScorer scores a candidate against a job.
type MatchScorer interface {
	Score(ctx context.Context, job *types.Job, candidate *types.Candidate) (float64, types.MatchDetails)
}

// InterviewDrafter drafts interview logistics and the invitation.
type InterviewDrafter interface {
	Draft(ctx context.Context, job *types.Job, c *types.Candidate, details types.MatchDetails) scheduling.Draft
}

// Notifier delivers an invitation to a candidate.
type Notifier interface {
	SendInvitation(ctx context.Context, to, name string, inv types.Invitation) error
}

// PostingFetcher retrieves the text of a job posting.
type PostingFetcher interface {
	Posting(ctx context.Context, url string) (string, error)
}

// Config holds the workflow knobs. Threshold is the score at or above which
// MatchCandidate drafts an interview when AutoSchedule is set.
type Config struct {
	Threshold    float64
	AutoSchedule bool
}

// DefaultConfig schedules automatically at a score of 80.
func DefaultConfig() Config {
	return Config{Threshold: 80, AutoSchedule: true}
}

// Service runs the screening workflow against a Store.
type Service struct {
	store      Store
	jobs       JobAnalyzer
	resumes    ResumeAnalyzer
	scorer     MatchScorer
	drafter    InterviewDrafter
	notifier   Notifier
	fetcher    PostingFetcher
	cfg        Config
	logger     *zap.Logger
	onProgress ProgressCallback
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithFetcher enables AnalyzeJobURL.
func WithFetcher(f PostingFetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(s *Service) { s.onProgress = cb }
}

// New returns a Service. notifier may be nil.
func New(store Store, jobs JobAnalyzer, resumes ResumeAnalyzer, scorer MatchScorer,
	drafter InterviewDrafter, notifier Notifier, cfg Config, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		jobs:     jobs,
		resumes:  resumes,
		scorer:   scorer,
		drafter:  drafter,
		notifier: notifier,
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "screening"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MatchOutcome is a saved match and, when one was drafted, its interview.
type MatchOutcome struct {
	Match     *types.Match     `json:"match"`
	Interview *types.Interview `json:"interview,omitempty"`
}

// AnalyzeJob extracts and saves a job.
func (s *Service) AnalyzeJob(ctx context.Context, text string) (*types.Job, error) {
	return s.analyzeJob(ctx, text, "")
}

// AnalyzeJobURL fetches a posting and analyzes its main text.
func (s *Service) AnalyzeJobURL(ctx context.Context, url string) (*types.Job, error) {
	if s.fetcher == nil {
		return nil, errors.New("job posting fetching is not configured")
	}
	s.emit(StageFetch, "fetching job posting "+url, nil)
	text, err := s.fetcher.Posting(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	return s.analyzeJob(ctx, ingestion.CleanText(text), url)
}

func (s *Service) analyzeJob(ctx context.Context, text, sourceURL string) (*types.Job, error) {
	res := s.jobs.Extract(ctx, text)
	job := res.Job
	job.SourceURL = sourceURL
	if res.Status != types.StatusSuccess {
		s.logger.Warn("job extracted with fallback",
			zap.String("status", string(res.Status)), zap.Error(res.Err))
	}
	s.emit(StageExtract, fmt.Sprintf("extracted job %q (%s)", job.Title, res.Status), job)

	if err := s.store.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	s.emit(StageSave, "saved job "+job.ID.String(), nil)
	s.logger.Info("job analyzed",
		zap.String("job_id", job.ID.String()),
		zap.String("status", string(job.ExtractionStatus)),
		zap.Int("skills", len(job.RequiredSkills)+len(job.PreferredSkills)),
	)
	return job, nil
}

// AnalyzeCandidate extracts and saves a candidate. sourceFile may be empty.
func (s *Service) AnalyzeCandidate(ctx context.Context, text, sourceFile string) (*types.Candidate, error) {
	res := s.resumes.Extract(ctx, text)
	c := res.Candidate
	c.SourceFile = strings.TrimSpace(sourceFile)
	if res.Status != types.StatusSuccess {
		s.logger.Warn("candidate extracted with fallback",
			zap.String("status", string(res.Status)), zap.Error(res.Err))
	}
	s.emit(StageExtract, fmt.Sprintf("extracted candidate %q (%s)", c.Name, res.Status), c)

	if err := s.store.SaveCandidate(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save candidate: %w", err)
	}
	s.emit(StageSave, "saved candidate "+c.ID.String(), nil)
	s.logger.Info("candidate analyzed",
		zap.String("candidate_id", c.ID.String()),
		zap.String("status", string(c.ExtractionStatus)),
		zap.Int("skills", len(c.Skills)),
		zap.Int("experience", len(c.Experience)),
	)
	return c, nil
}

// MatchCandidate scores a candidate against a job and saves the match. With
// AutoSchedule set, an interview is drafted when the score reaches the threshold.
func (s *Service) MatchCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (*MatchOutcome, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	c, err := s.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	score, details := s.scorer.Score(ctx, job, c)
	s.emit(StageScore, fmt.Sprintf("scored %.2f", score), details)

	m := &types.Match{
		JobID:        job.ID,
		CandidateID:  c.ID,
		OverallScore: score,
		Details:      details,
		Status:       types.MatchPending,
	}
	if err := s.store.SaveMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save match: %w", err)
	}
	s.logger.Info("candidate matched",
		zap.String("match_id", m.ID.String()),
		zap.String("job_id", job.ID.String()),
		zap.String("candidate_id", c.ID.String()),
		zap.Float64("score", score),
	)

	out := &MatchOutcome{Match: m}
	if !s.cfg.AutoSchedule || score < s.cfg.Threshold {
		return out, nil
	}
	iv, err := s.schedule(ctx, m, job, c)
	if err != nil {
		return nil, err
	}
	out.Interview = iv
	return out, nil
}

// MatchCandidates matches several candidates against one job concurrently.
// Outcomes are returned in input order. The first error cancels the rest.
func (s *Service) MatchCandidates(ctx context.Context, jobID uuid.UUID, candidateIDs []uuid.UUID) ([]*MatchOutcome, error) {
	if _, err := s.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	outcomes := make([]*MatchOutcome, len(candidateIDs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelMatches)
	for i, id := range candidateIDs {
		g.Go(func() error {
			out, err := s.MatchCandidate(gCtx, jobID, id)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// ScheduleInterview drafts and saves the interview for a match. A match has at most one.
func (s *Service) ScheduleInterview(ctx context.Context, matchID uuid.UUID) (*types.Interview, error) {
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	job, err := s.GetJob(ctx, m.JobID)
	if err != nil {
		return nil, err
	}
	c, err := s.GetCandidate(ctx, m.CandidateID)
	if err != nil {
		return nil, err
	}
	return s.schedule(ctx, m, job, c)
}

func (s *Service) schedule(ctx context.Context, m *types.Match, job *types.Job, c *types.Candidate) (*types.Interview, error) {
	existing, err := s.store.GetInterviewByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Message: fmt.Sprintf("interview already scheduled for match %s", m.ID)}
	}

	draft := s.drafter.Draft(ctx, job, c, m.Details)
	iv := draft.Interview
	iv.MatchID = m.ID
	if err := s.store.SaveInterview(ctx, iv); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, &ConflictError{Message: fmt.Sprintf("interview already scheduled for match %s", m.ID)}
		}
		return nil, fmt.Errorf("failed to save interview: %w", err)
	}
	s.emit(StageSchedule, "interview drafted for "+iv.ScheduledAt.Format("2006-01-02 15:04"), iv)
	s.logger.Info("interview scheduled",
		zap.String("interview_id", iv.ID.String()),
		zap.String("match_id", m.ID.String()),
		zap.Time("scheduled_at", iv.ScheduledAt),
		zap.String("draft_status", string(iv.DraftStatus)),
	)

	s.notify(ctx, c, iv)
	return iv, nil
}

// notify sends the formal invitation. Failures are logged only.
func (s *Service) notify(ctx context.Context, c *types.Candidate, iv *types.Interview) {
	if s.notifier == nil {
		return
	}
	if strings.TrimSpace(c.Email) == "" {
		s.logger.Info("candidate has no email, invitation not sent", zap.String("candidate_id", c.ID.String()))
		return
	}
	if err := s.notifier.SendInvitation(ctx, c.Email, c.Name, iv.Invitation); err != nil {
		s.logger.Warn("failed to send invitation",
			zap.String("interview_id", iv.ID.String()), zap.Error(err))
		return
	}
	s.emit(StageNotify, "invitation sent to "+c.Email, nil)
}

// GetJob returns a job or a *NotFoundError.
func (s *Service) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, &NotFoundError{Kind: "job", ID: id}
	}
	return job, nil
}

// GetCandidate returns a candidate or a *NotFoundError.
func (s *Service) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	c, err := s.store.GetCandidate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	if c == nil {
		return nil, &NotFoundError{Kind: "candidate", ID: id}
	}
	return c, nil
}

// GetMatch returns a match or a *NotFoundError.
func (s *Service) GetMatch(ctx context.Context, id uuid.UUID) (*types.Match, error) {
	m, err := s.store.GetMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if m == nil {
		return nil, &NotFoundError{Kind: "match", ID: id}
	}
	return m, nil
}

// ListJobMatches returns a job's matches, best first. The job must exist.
func (s *Service) ListJobMatches(ctx context.Context, jobID uuid.UUID) ([]types.Match, error) {
	if _, err := s.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	matches, err := s.store.ListMatchesByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job matches: %w", err)
	}
	return matches, nil
}

// ListCandidateMatches returns a candidate's matches, best first.
func (s *Service) ListCandidateMatches(ctx context.Context, candidateID uuid.UUID) ([]types.Match, error) {
	if _, err := s.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	matches, err := s.store.ListMatchesByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate matches: %w", err)
	}
	return matches, nil
}

// GetMatchInterview returns the interview drafted for a match.
func (s *Service) GetMatchInterview(ctx context.Context, matchID uuid.UUID) (*types.Interview, error) {
	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}
	iv, err := s.store.GetInterviewByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	if iv == nil {
		return nil, &NotFoundError{Kind: "interview for match", ID: matchID}
	}
	return iv, nil
}

// UpdateMatchStatus sets a match's status and returns the updated match.
func (s *Service) UpdateMatchStatus(ctx context.Context, id uuid.UUID, status string) (*types.Match, error) {
	st, err := types.ParseMatchStatus(status)
	if err != nil {
		return nil, &InvalidStatusError{Value: status, Cause: err}
	}
	if err := s.store.UpdateMatchStatus(ctx, id, st); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &NotFoundError{Kind: "match", ID: id}
		}
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}
	s.logger.Info("match status updated", zap.String("match_id", id.String()), zap.String("status", string(st)))
	return s.GetMatch(ctx, id)
}

// UpdateInterviewStatus sets an interview's status and feedback and returns the updated interview.
func (s *Service) UpdateInterviewStatus(ctx context.Context, id uuid.UUID, status, feedback string) (*types.Interview, error) {
	st, err := types.ParseInterviewStatus(status)
	if err != nil {
		return nil, &InvalidStatusError{Value: status, Cause: err}
	}
	if err := s.store.UpdateInterviewStatus(ctx, id, st, strings.TrimSpace(feedback)); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &NotFoundError{Kind: "interview", ID: id}
		}
		return nil, fmt.Errorf("failed to update interview status: %w", err)
	}
	s.logger.Info("interview status updated", zap.String("interview_id", id.String()), zap.String("status", string(st)))

	iv, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	if iv == nil {
		return nil, &NotFoundError{Kind: "interview", ID: id}
	}
	return iv, nil
}
