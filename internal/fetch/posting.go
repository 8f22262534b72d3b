package fetch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultBrowserTimeout bounds a headless render.
const DefaultBrowserTimeout = 30 * time.Second

// Fetcher retrieves job postings and returns their main text.
type Fetcher struct {
	Options        *Options
	UseBrowser     bool
	BrowserTimeout time.Duration
	Logger         *zap.Logger

	// render is swapped in tests
	render func(ctx context.Context, url string, timeout time.Duration, logger *zap.Logger) (string, error)
}

// NewFetcher returns a Fetcher with default HTTP options.
func NewFetcher(useBrowser bool, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		Options:        DefaultOptions(),
		UseBrowser:     useBrowser,
		BrowserTimeout: DefaultBrowserTimeout,
		Logger:         logger,
		render:         WithBrowser,
	}
}

// Posting fetches urlStr and extracts the job posting text using the board's
// selectors. Pages with too little text are re-rendered in a headless browser
// when UseBrowser is set; a failed render keeps the HTTP text.
func (f *Fetcher) Posting(ctx context.Context, urlStr string) (string, error) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	board := DetectBoard(urlStr)
	logger = logger.With(zap.String("url", urlStr), zap.String("board", board.Name))

	result, err := URL(ctx, urlStr, f.Options)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(result.HTML, board.ContentSelectors(), board.NoiseSelectors()...)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	logger.Debug("extracted posting text", zap.Int("chars", len(text)))

	if f.UseBrowser && ShouldUseBrowser(text) {
		render := f.render
		if render == nil {
			render = WithBrowser
		}
		timeout := f.BrowserTimeout
		if timeout <= 0 {
			timeout = DefaultBrowserTimeout
		}

		logger.Info("posting text too short, rendering in browser", zap.Int("chars", len(text)))
		html, renderErr := render(ctx, urlStr, timeout, logger)
		if renderErr != nil {
			logger.Warn("browser rendering failed, using HTTP content", zap.Error(renderErr))
		} else if rendered, exErr := ExtractMainText(html, board.ContentSelectors(), board.NoiseSelectors()...); exErr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	if text == "" {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("no text found on %s page", board.Name)}
	}
	return text, nil
}
