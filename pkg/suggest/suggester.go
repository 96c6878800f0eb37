package suggest

import (
	"context"
	"errors"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"clinicode-api/pkg/agent"
)

// Suggester turns a free-text clinical note into a batch of code
// suggestions. Implementations are expected to be safe for concurrent use.
type Suggester interface {
	Analyze(ctx context.Context, note string) (Batch, error)
}

// BasicSuggester wires the prompt, the agent client and the response parser
// into the request-per-submission pipeline: one agent call per note, bounded
// by the configured timeout, with no automatic retry on any failure.
type BasicSuggester struct {
	cfg    *Config
	client agent.ChatClient
	prompt *PromptTemplate
}

// NewSuggester constructs a BasicSuggester. When the config names a prompt
// template it is parsed eagerly so a broken template fails at startup.
func NewSuggester(cfg *Config, client agent.ChatClient) (*BasicSuggester, error) {
	if cfg == nil {
		return nil, errors.New("suggest: config is required")
	}
	if client == nil {
		return nil, errors.New("suggest: agent client is required")
	}

	s := &BasicSuggester{cfg: cfg.Clone(), client: client}
	if cfg.PromptTemplate != "" {
		prompt, err := NewPromptTemplate(cfg.PromptTemplate)
		if err != nil {
			return nil, err
		}
		s.prompt = prompt
	}
	return s, nil
}

// GetConfig exposes the immutable pipeline configuration.
func (s *BasicSuggester) GetConfig() *Config { return s.cfg.Clone() }

// PromptDigest identifies the prompt revision in use, for journal entries.
func (s *BasicSuggester) PromptDigest() string {
	if s.prompt != nil {
		return s.prompt.Digest()
	}
	return DigestString(defaultPrompt)
}

// Analyze runs the end-to-end pipeline for one note.
func (s *BasicSuggester) Analyze(ctx context.Context, note string) (Batch, error) {
	if strings.TrimSpace(note) == "" {
		return nil, errors.New("suggest: note is empty")
	}

	system := defaultPrompt
	if s.prompt != nil {
		rendered, err := s.prompt.Render(note)
		if err != nil {
			return nil, err
		}
		system = rendered
	}

	req := &agent.CompletionRequest{
		Model: s.cfg.Model,
		Messages: []agent.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: note},
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.Complete(callCtx, req)
	if err != nil {
		return s.concludeFailure(ctx, newFailure(KindNoResponse, "", err))
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return s.concludeFailure(ctx, newFailure(KindNoResponse, "", ErrNoResponse))
	}

	batch, err := ParseResponse(resp.Content)
	if err != nil {
		return s.concludeFailure(ctx, err)
	}
	return batch, nil
}

// concludeFailure applies the demo fallback when enabled; otherwise the
// failure stays terminal.
func (s *BasicSuggester) concludeFailure(ctx context.Context, err error) (Batch, error) {
	if fallback := s.cfg.fallbackBatch(); fallback != nil {
		logx.WithContext(ctx).Errorf("suggest: serving demo fallback after failure: %v", err)
		return fallback, nil
	}
	return nil, err
}
