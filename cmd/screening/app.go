package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/job-screening/internal/config"
	"github.com/jonathan/job-screening/internal/db"
	"github.com/jonathan/job-screening/internal/fetch"
	"github.com/jonathan/job-screening/internal/llm"
	"github.com/jonathan/job-screening/internal/logging"
	"github.com/jonathan/job-screening/internal/notify"
	"github.com/jonathan/job-screening/internal/parsing"
	"github.com/jonathan/job-screening/internal/pipeline"
	"github.com/jonathan/job-screening/internal/ranking"
	"github.com/jonathan/job-screening/internal/scheduling"
	"go.uber.org/zap"
)

// app holds what every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newApp() (*app, error) {
	logger, err := logging.New(jsonLogs, debugLogs)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// openStore connects to PostgreSQL, or returns an in-memory store when memory is set.
func (a *app) openStore(ctx context.Context, memory bool) (pipeline.Store, func(), error) {
	if memory {
		a.logger.Warn("using in-memory store, records are lost on exit")
		return db.NewMemory(), func() {}, nil
	}
	if a.cfg.DatabaseURL == "" {
		return nil, nil, errors.New("DATABASE_URL is required (or use the in-memory store)")
	}
	database, err := db.Connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return database, database.Close, nil
}

type serviceOptions struct {
	store      pipeline.Store
	useBrowser bool
	progress   pipeline.ProgressCallback
}

// newService wires the model clients, extractors, scorer, drafter and mailer.
func (a *app) newService(ctx context.Context, opts serviceOptions) (*pipeline.Service, func(), error) {
	if a.cfg.LLM.APIKey == "" {
		return nil, nil, errors.New("GEMINI_API_KEY is required")
	}

	llmCfg := llm.DefaultConfig()
	if a.cfg.LLM.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, a.cfg.LLM.Model)
	}
	if a.cfg.LLM.EmbeddingModel != "" {
		llmCfg.EmbeddingModel = a.cfg.LLM.EmbeddingModel
	}
	llmCfg.EmbeddingTimeout = a.cfg.LLM.EmbeddingTimeout

	gemini, err := llm.NewClient(ctx, llmCfg, a.cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, err
	}
	gen := llm.NewRetryingClient(gemini, llm.RetryOptions{
		Timeout:    a.cfg.LLM.GenerationTimeout,
		MaxRetries: a.cfg.LLM.MaxRetries,
		Backoff:    llmCfg.RetryBackoff,
		MaxLogLen:  a.cfg.LLM.MaxLogLength,
	}, a.logger)

	loc, err := a.cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	w := a.cfg.Matching.Weights
	weights := ranking.Weights{Embedding: w.Embedding, Skills: w.Skills, Experience: w.Experience}

	var notifier pipeline.Notifier
	if a.cfg.EmailEnabled() {
		s := a.cfg.SMTP
		notifier = notify.NewMailer(notify.SMTPConfig{
			Host:     s.Host,
			Port:     s.Port,
			User:     s.User,
			Password: s.Password,
			From:     s.From,
		}, a.logger)
	}

	svcOpts := []pipeline.Option{pipeline.WithFetcher(fetch.NewFetcher(opts.useBrowser, a.logger))}
	if opts.progress != nil {
		svcOpts = append(svcOpts, pipeline.WithProgress(opts.progress))
	}

	svc := pipeline.New(
		opts.store,
		parsing.NewJobExtractor(gen, gemini, a.logger),
		parsing.NewResumeExtractor(gen, gemini, a.logger),
		ranking.NewScorer(gemini, weights, a.logger),
		scheduling.NewDrafter(gen, a.logger, scheduling.Options{
			Location:      loc,
			BusinessStart: a.cfg.Scheduling.BusinessStart,
			BusinessEnd:   a.cfg.Scheduling.BusinessEnd,
		}),
		notifier,
		pipeline.Config{Threshold: a.cfg.Matching.Threshold, AutoSchedule: a.cfg.Matching.AutoSchedule},
		a.logger,
		svcOpts...,
	)
	return svc, func() { _ = gen.Close() }, nil
}

// readOnlyService serves lookups and reports. It has no model clients.
func (a *app) readOnlyService(store pipeline.Store) *pipeline.Service {
	return pipeline.New(store, nil, nil, nil, nil, nil,
		pipeline.Config{Threshold: a.cfg.Matching.Threshold}, a.logger)
}

// printProgress reports workflow stages on w.
func printProgress(w io.Writer) pipeline.ProgressCallback {
	return func(ev pipeline.ProgressEvent) {
		_, _ = fmt.Fprintf(w, "[%s] %s\n", ev.Stage, ev.Message)
	}
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(stdout io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
