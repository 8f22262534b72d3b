package db

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/types"
)

// Memory is an in-process store with the same behavior as DB.
// Records are copied on the way in and out.
type Memory struct {
	mu         sync.RWMutex
	now        func() time.Time
	jobs       map[uuid.UUID]types.Job
	candidates map[uuid.UUID]types.Candidate
	matches    map[uuid.UUID]types.Match
	interviews map[uuid.UUID]types.Interview
	byMatch    map[uuid.UUID]uuid.UUID
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		now:        time.Now,
		jobs:       make(map[uuid.UUID]types.Job),
		candidates: make(map[uuid.UUID]types.Candidate),
		matches:    make(map[uuid.UUID]types.Match),
		interviews: make(map[uuid.UUID]types.Interview),
		byMatch:    make(map[uuid.UUID]uuid.UUID),
	}
}

// SaveJob stores a copy of job, assigning an ID when nil.
func (m *Memory) SaveJob(_ context.Context, job *types.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if _, ok := m.jobs[job.ID]; ok {
		return ErrDuplicate
	}
	job.FillDefaults()
	job.CreatedAt = m.now()
	m.jobs[job.ID] = cloneJob(*job)
	return nil
}

// GetJob returns a copy of the job, or nil, nil when absent.
func (m *Memory) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	j = cloneJob(j)
	return &j, nil
}

// SaveCandidate stores a copy of c, assigning an ID when nil.
func (m *Memory) SaveCandidate(_ context.Context, c *types.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if _, ok := m.candidates[c.ID]; ok {
		return ErrDuplicate
	}
	c.FillDefaults()
	c.CreatedAt = m.now()
	m.candidates[c.ID] = cloneCandidate(*c)
	return nil
}

// GetCandidate returns a copy of the candidate, or nil, nil when absent.
func (m *Memory) GetCandidate(_ context.Context, id uuid.UUID) (*types.Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil, nil
	}
	c = cloneCandidate(c)
	return &c, nil
}

// SaveMatch stores a copy of match. An empty status becomes pending.
func (m *Memory) SaveMatch(_ context.Context, match *types.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	if _, ok := m.matches[match.ID]; ok {
		return ErrDuplicate
	}
	if match.Status == "" {
		match.Status = types.MatchPending
	}
	match.CreatedAt = m.now()
	match.UpdatedAt = match.CreatedAt
	m.matches[match.ID] = cloneMatch(*match)
	return nil
}

// GetMatch returns a copy of the match, or nil, nil when absent.
func (m *Memory) GetMatch(_ context.Context, id uuid.UUID) (*types.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	match, ok := m.matches[id]
	if !ok {
		return nil, nil
	}
	match = cloneMatch(match)
	return &match, nil
}

// ListMatchesByJob returns a job's matches, best score first.
func (m *Memory) ListMatchesByJob(_ context.Context, jobID uuid.UUID) ([]types.Match, error) {
	return m.listMatches(func(match types.Match) bool { return match.JobID == jobID }), nil
}

// ListMatchesByCandidate returns a candidate's matches, best score first.
func (m *Memory) ListMatchesByCandidate(_ context.Context, candidateID uuid.UUID) ([]types.Match, error) {
	return m.listMatches(func(match types.Match) bool { return match.CandidateID == candidateID }), nil
}

func (m *Memory) listMatches(keep func(types.Match) bool) []types.Match {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []types.Match{}
	for _, match := range m.matches {
		if keep(match) {
			out = append(out, cloneMatch(match))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OverallScore != out[j].OverallScore {
			return out[i].OverallScore > out[j].OverallScore
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// UpdateMatchStatus sets a match's status. It returns ErrNotFound when absent.
func (m *Memory) UpdateMatchStatus(_ context.Context, id uuid.UUID, status types.MatchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[id]
	if !ok {
		return ErrNotFound
	}
	match.Status = status
	match.UpdatedAt = m.now()
	m.matches[id] = match
	return nil
}

// SaveInterview stores a copy of iv. It returns ErrDuplicate when the match
// already has an interview.
func (m *Memory) SaveInterview(_ context.Context, iv *types.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byMatch[iv.MatchID]; ok {
		return ErrDuplicate
	}
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	if _, ok := m.interviews[iv.ID]; ok {
		return ErrDuplicate
	}
	if iv.Status == "" {
		iv.Status = types.InterviewScheduled
	}
	iv.CreatedAt = m.now()
	iv.UpdatedAt = iv.CreatedAt
	m.interviews[iv.ID] = cloneInterview(*iv)
	m.byMatch[iv.MatchID] = iv.ID
	return nil
}

// GetInterview returns a copy of the interview, or nil, nil when absent.
func (m *Memory) GetInterview(_ context.Context, id uuid.UUID) (*types.Interview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	iv, ok := m.interviews[id]
	if !ok {
		return nil, nil
	}
	iv = cloneInterview(iv)
	return &iv, nil
}

// GetInterviewByMatch returns the interview for a match, or nil, nil when absent.
func (m *Memory) GetInterviewByMatch(ctx context.Context, matchID uuid.UUID) (*types.Interview, error) {
	m.mu.RLock()
	id, ok := m.byMatch[matchID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return m.GetInterview(ctx, id)
}

// UpdateInterviewStatus sets an interview's status. An empty feedback keeps the stored one.
func (m *Memory) UpdateInterviewStatus(_ context.Context, id uuid.UUID, status types.InterviewStatus, feedback string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.interviews[id]
	if !ok {
		return ErrNotFound
	}
	iv.Status = status
	if feedback != "" {
		iv.Feedback = feedback
	}
	iv.UpdatedAt = m.now()
	m.interviews[id] = iv
	return nil
}

func cloneJob(j types.Job) types.Job {
	j.RequiredSkills = slices.Clone(j.RequiredSkills)
	j.PreferredSkills = slices.Clone(j.PreferredSkills)
	j.Responsibilities = slices.Clone(j.Responsibilities)
	j.Embedding = slices.Clone(j.Embedding)
	j.FillDefaults()
	return j
}

func cloneCandidate(c types.Candidate) types.Candidate {
	c.Skills = slices.Clone(c.Skills)
	c.Experience = slices.Clone(c.Experience)
	c.Education = slices.Clone(c.Education)
	c.Embedding = slices.Clone(c.Embedding)
	c.FillDefaults()
	return c
}

func cloneMatch(m types.Match) types.Match {
	m.Details.MatchingSkills = slices.Clone(m.Details.MatchingSkills)
	m.Details.MatchingExperience = slices.Clone(m.Details.MatchingExperience)
	return m
}

func cloneInterview(iv types.Interview) types.Interview {
	iv.Topics = slices.Clone(iv.Topics)
	iv.Interviewers = slices.Clone(iv.Interviewers)
	iv.SuggestedSlots = slices.Clone(iv.SuggestedSlots)
	return iv
}
