package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/config"
	"github.com/jonathan/job-screening/internal/db"
	"github.com/jonathan/job-screening/internal/parsing"
	"github.com/jonathan/job-screening/internal/pipeline"
	"github.com/jonathan/job-screening/internal/scheduling"
	"github.com/jonathan/job-screening/internal/server/ratelimit"
	"github.com/jonathan/job-screening/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJobs struct{}

func (stubJobs) Extract(_ context.Context, text string) parsing.JobResult {
	job := types.NewEmptyJob()
	job.Title = "Backend Engineer"
	job.Description = text
	job.RequiredSkills = []string{"Go", "SQL"}
	job.ExtractionStatus = types.StatusSuccess
	return parsing.JobResult{Job: job, Status: types.StatusSuccess}
}

type stubResumes struct{}

func (stubResumes) Extract(_ context.Context, text string) parsing.CandidateResult {
	c := types.NewEmptyCandidate()
	c.Name = "Jane Doe"
	c.Email = "jane@example.com"
	c.Skills = []string{"Go"}
	c.ExtractionStatus = types.StatusDegraded
	return parsing.CandidateResult{Candidate: c, Status: types.StatusDegraded}
}

type stubScorer struct {
	score float64
}

func (s stubScorer) Score(_ context.Context, _ *types.Job, _ *types.Candidate) (float64, types.MatchDetails) {
	d := types.ZeroDetails()
	d.OverallScore = s.score
	d.MatchingSkills = []string{"Go"}
	return s.score, d
}

type stubDrafter struct{}

func (stubDrafter) Draft(_ context.Context, _ *types.Job, _ *types.Candidate, _ types.MatchDetails) scheduling.Draft {
	return scheduling.Draft{
		Interview: &types.Interview{
			ScheduledAt:     time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
			DurationMinutes: 60,
			Type:            "Technical",
			Format:          "Online",
			Invitation:      types.Invitation{Subject: "Interview", Formal: "Dear Jane", Friendly: "Hi Jane"},
			DraftStatus:     types.StatusSuccess,
		},
		LogisticsStatus: types.StatusSuccess,
		EmailStatus:     types.StatusSuccess,
	}
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *stubNotifier) SendInvitation(_ context.Context, to, _ string, _ types.Invitation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, to)
	return nil
}

type stubFetcher struct {
	text string
	err  error
}

func (f stubFetcher) Posting(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

type testEnv struct {
	server   *Server
	store    *db.Memory
	notifier *stubNotifier
}

type envOptions struct {
	score     float64
	fetcher   pipeline.PostingFetcher
	jwt       *config.JWTConfig
	rateLimit *ratelimit.Config
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	store := db.NewMemory()
	notifier := &stubNotifier{}

	var svcOpts []pipeline.Option
	if opts.fetcher != nil {
		svcOpts = append(svcOpts, pipeline.WithFetcher(opts.fetcher))
	}
	svc := pipeline.New(store, stubJobs{}, stubResumes{}, stubScorer{score: opts.score}, stubDrafter{},
		notifier, pipeline.DefaultConfig(), nil, svcOpts...)

	if opts.rateLimit == nil {
		opts.rateLimit = &ratelimit.Config{Enabled: false}
	}
	s := New(svc, Config{Port: 0, JWT: opts.jwt, RateLimit: opts.rateLimit}, nil)
	t.Cleanup(s.rateLimiter.Stop)
	return &testEnv{server: s, store: store, notifier: notifier}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	w := env.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	w := env.do(t, http.MethodOptions, "/jobs", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, envOptions{rateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	}})

	id := uuid.New().String()
	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodGet, "/jobs/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := env.do(t, http.MethodGet, "/jobs/"+id, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	// health is never limited
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", nil).Code)
	}
}

func TestAuth(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: "test-secret", ExpirationHours: 1}
	env := newTestEnv(t, envOptions{jwt: jwtCfg})

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", nil).Code)

	id := uuid.New().String()
	w := env.do(t, http.MethodGet, "/jobs/"+id, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/jobs/"+id, nil, "Authorization", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other, err := NewJWTService(&config.JWTConfig{Secret: "other", ExpirationHours: 1}).GenerateToken("mallory")
	require.NoError(t, err)
	w = env.do(t, http.MethodGet, "/jobs/"+id, nil, "Authorization", "Bearer "+other)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := NewJWTService(jwtCfg).GenerateToken("recruiter-1")
	require.NoError(t, err)
	w = env.do(t, http.MethodGet, "/jobs/"+id, nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	env.server.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.server.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestFail_HidesInternalErrors(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	env.server.fail(w, req, errors.New("connection refused to 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode[map[string]string](t, w)["error"])
}
