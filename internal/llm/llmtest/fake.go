// Package llmtest provides scripted in-memory providers for tests.
package llmtest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jonathan/job-screening/internal/llm"
)

// Client is a scripted llm.Client. Responses are consumed in order; when they
// run out the last one repeats. Err, when set, is returned for every call.
type Client struct {
	mu        sync.Mutex
	Responses []string
	Errs      []error
	Err       error
	Prompts   []string
}

var _ llm.Client = (*Client)(nil)

// NewClient returns a client that answers with responses in order.
func NewClient(responses ...string) *Client {
	return &Client{Responses: responses}
}

// Failing returns a client whose every call fails with err.
func Failing(err error) *Client {
	return &Client{Err: err}
}

// GenerateContent records the prompt and returns the next scripted response.
func (c *Client) GenerateContent(ctx context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return c.next(ctx, prompt)
}

// GenerateJSON records the prompt and returns the next scripted response, cleaned.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, _ llm.ModelTier) (string, error) {
	out, err := c.next(ctx, prompt)
	if err != nil {
		return "", err
	}
	return llm.CleanJSONBlock(out), nil
}

// GetModel returns a fixed model name.
func (c *Client) GetModel(_ llm.ModelTier) string { return "fake-model" }

// Close is a no-op.
func (c *Client) Close() error { return nil }

// Calls returns how many generation calls were made.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Prompts)
}

func (c *Client) next(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := len(c.Prompts)
	c.Prompts = append(c.Prompts, prompt)

	if c.Err != nil {
		return "", c.Err
	}
	if i < len(c.Errs) && c.Errs[i] != nil {
		return "", c.Errs[i]
	}
	if len(c.Responses) == 0 {
		return "", errors.New("llmtest: no scripted response")
	}
	if i >= len(c.Responses) {
		i = len(c.Responses) - 1
	}
	return c.Responses[i], nil
}

// Embedder is a scripted llm.Embedder. Vectors are looked up by exact text,
// then by substring of the registered keys, then Default is used.
type Embedder struct {
	mu      sync.Mutex
	Vectors map[string][]float32
	Errs    map[string]error
	Default []float32
	Err     error
	Texts   []string
}

var _ llm.Embedder = (*Embedder)(nil)

// NewEmbedder returns an embedder answering with def for unknown text.
func NewEmbedder(def []float32) *Embedder {
	return &Embedder{
		Vectors: make(map[string][]float32),
		Errs:    make(map[string]error),
		Default: def,
	}
}

// On registers the vector returned for text.
func (e *Embedder) On(text string, vec []float32) *Embedder {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Vectors[text] = vec
	return e
}

// FailOn registers an error returned for text.
func (e *Embedder) FailOn(text string, err error) *Embedder {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Errs[text] = err
	return e
}

// Embed returns the registered vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.Texts = append(e.Texts, text)

	if e.Err != nil {
		return nil, e.Err
	}
	if err, ok := e.Errs[text]; ok {
		return nil, err
	}
	if v, ok := e.Vectors[text]; ok {
		return v, nil
	}
	for key, v := range e.Vectors {
		if key != "" && strings.Contains(text, key) {
			return v, nil
		}
	}
	if e.Default == nil {
		return nil, errors.New("llmtest: no vector for text")
	}
	return e.Default, nil
}

// Calls returns how many embedding calls were made.
func (e *Embedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Texts)
}
