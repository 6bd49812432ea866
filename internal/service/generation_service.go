package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/generation"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/platform/metrics"
	"github.com/classplay/classplay-api/internal/redact"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/google/uuid"
)

// Generator produces content for a request. Both generation.Engine and
// storybook.Pipeline implement it.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
	Configured() bool
}

// ClassContexts resolves the class description used as generation context.
type ClassContexts interface {
	Context(ctx context.Context, ownerID uuid.UUID, classID *uuid.UUID) (string, error)
}

// GenerationService runs generations on behalf of a teacher: it resolves the
// class context, dispatches to the engine or the storybook pipeline and
// accounts for the tokens spent.
type GenerationService struct {
	engine     Generator
	storybooks Generator
	classes    ClassContexts
	usage      store.UsageStore
	logger     *slog.Logger
}

// NewGenerationService creates a GenerationService.
func NewGenerationService(
	engine Generator,
	storybooks Generator,
	classes ClassContexts,
	usage store.UsageStore,
	logger *slog.Logger,
) *GenerationService {
	return &GenerationService{
		engine:     engine,
		storybooks: storybooks,
		classes:    classes,
		usage:      usage,
		logger:     logger.With("component", "generation_service"),
	}
}

// Configured reports whether every kind can be generated.
func (s *GenerationService) Configured() bool {
	return s.engine.Configured() && s.storybooks.Configured()
}

// Generate produces the content described by req for userID. When classID
// is set, the description of that class (if owned by userID) becomes the
// prompt context.
//
// A usage record is written whenever the model reported tokens, including
// for replies that could not be parsed.
func (s *GenerationService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req generation.Request,
	classID *uuid.UUID,
) (*generation.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("kind", string(req.Kind), "user_id", userID)

	gen := s.engine
	if req.Kind == generation.KindStorybook {
		gen = s.storybooks
	}
	if !gen.Configured() {
		log.Warn("generation requested but no model is configured")
		return nil, generation.ErrNotConfigured
	}

	if classID != nil {
		classContext, err := s.classes.Context(ctx, userID, classID)
		if err != nil {
			return nil, err
		}
		req.Context = classContext
	}

	res, err := gen.Generate(ctx, req)
	if res != nil {
		s.account(ctx, log, userID, req.Kind, res)
	}
	if err != nil {
		if errors.Is(err, generation.ErrNoContent) {
			log.Warn("generation produced no content", "error", redact.Error(err))
		}
		return nil, err
	}
	return res, nil
}

func (s *GenerationService) account(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	kind generation.Kind,
	res *generation.Result,
) {
	metrics.ObserveGeneration(string(kind), string(res.Outcome), res.TokensUsed)
	if book, ok := res.Payload.(*generation.Storybook); ok && book != nil {
		missing := book.Missing()
		metrics.ObserveIllustrations(len(book.Pages)-missing, missing)
	}

	if res.TokensUsed <= 0 {
		return
	}
	record, err := domain.NewUsageRecord(userID, string(kind), res.TokensUsed)
	if err != nil {
		log.Error("failed to build usage record", "error", err)
		return
	}
	if err := s.usage.Create(ctx, record); err != nil {
		log.Error("failed to record token usage",
			"tokens", res.TokensUsed,
			"error", redact.Error(fmt.Errorf("usage insert: %w", err)))
		return
	}
	log.Debug("token usage recorded", "tokens", res.TokensUsed)
}
