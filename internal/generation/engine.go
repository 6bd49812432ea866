package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/classplay/classplay-api/internal/generation/extract"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/redact"
)

// Settings are the model parameters used for single-call generations.
type Settings struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// Engine generates every kind except storybooks with one text call: the
// prompt is rendered, sent, extracted and decoded into the kind's payload.
//
// An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	text     TextGenerator
	prompts  PromptBuilder
	settings Settings
	logger   *slog.Logger
}

// NewEngine creates an Engine. text may be nil when no model credential is
// configured; Generate then fails with ErrNotConfigured.
func NewEngine(text TextGenerator, prompts PromptBuilder, settings Settings, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		text:     text,
		prompts:  prompts,
		settings: settings,
		logger:   logger.With("component", "generation_engine"),
	}
}

// Configured reports whether the engine can reach a model.
func (e *Engine) Configured() bool {
	return e != nil && e.text != nil && e.prompts != nil
}

// Generate produces the payload for req.
//
// When the model call fails or its reply cannot be decoded, the returned
// error wraps ErrNoContent and the Result is still returned so that
// TokensUsed and Outcome can be accounted for.
func (e *Engine) Generate(ctx context.Context, req Request) (*Result, error) {
	if !e.Configured() {
		return nil, ErrNotConfigured
	}
	if req.Kind == KindStorybook {
		return nil, fmt.Errorf("%w: storybooks are produced by the storybook pipeline", ErrInvalidRequest)
	}

	log := logger.FromContextOrDefault(ctx, e.logger).With("kind", string(req.Kind))

	p, err := e.prompts.Build(req)
	if err != nil {
		return nil, err
	}

	resp, err := e.text.GenerateText(ctx, TextRequest{
		Model:           e.settings.Model,
		System:          p.System,
		User:            p.User,
		Temperature:     e.settings.Temperature,
		MaxOutputTokens: e.settings.MaxOutputTokens,
	})
	if err != nil {
		log.ErrorContext(ctx, "text model call failed", "error", redact.Error(err))
		return &Result{Kind: req.Kind, Outcome: OutcomeTransportFailure},
			fmt.Errorf("%w: %w", ErrNoContent, transportCause(err))
	}

	res := &Result{Kind: req.Kind, TokensUsed: resp.TokensUsed}

	parsed := extract.Parse(resp.Text, resp.TokensUsed)
	if !parsed.OK() {
		log.WarnContext(ctx, "model reply contained no JSON",
			"tokens_used", resp.TokensUsed,
			"reply_length", len(resp.Text))
		res.Outcome = OutcomeParseFailure
		return res, fmt.Errorf("%w: reply contained no JSON", ErrNoContent)
	}

	payload, err := DecodePayload(req.Kind, parsed.Value)
	if err != nil {
		// Schema errors name payload fields and carry no provider detail.
		log.WarnContext(ctx, "model reply did not match the payload shape",
			"stage", parsed.Stage.String(),
			"tokens_used", resp.TokensUsed,
			"error", err.Error())
		res.Outcome = OutcomeParseFailure
		return res, fmt.Errorf("%w: %v", ErrNoContent, err)
	}

	log.InfoContext(ctx, "content generated",
		"stage", parsed.Stage.String(),
		"tokens_used", resp.TokensUsed)

	res.Payload = payload
	res.Outcome = OutcomeOK
	return res, nil
}

// transportCause keeps safety refusals and cancellations distinguishable in
// the wrapped error while hiding provider details.
func transportCause(err error) error {
	switch {
	case errors.Is(err, ErrContentBlocked):
		return ErrContentBlocked
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return errors.New("text model call failed")
	}
}
