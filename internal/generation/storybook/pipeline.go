package storybook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/classplay/classplay-api/internal/generation"
	"github.com/classplay/classplay-api/internal/generation/extract"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/redact"
	"golang.org/x/sync/errgroup"
)

// Settings are the model parameters of the pipeline.
type Settings struct {
	// Model and Temperature are used for the story text.
	Model           string
	Temperature     float32
	MaxOutputTokens int32

	// ImageModels are tried in order for every page; the first image wins.
	ImageModels []string

	// Concurrency bounds the number of pages illustrated at once.
	Concurrency int
}

// Pipeline generates storybooks. It holds no per-call state and is safe for
// concurrent use.
type Pipeline struct {
	text     generation.TextGenerator
	images   generation.ImageGenerator
	prompts  generation.PromptBuilder
	settings Settings
	logger   *slog.Logger
}

// New creates a Pipeline. text and images may be nil when no model
// credential is configured; Generate then fails with ErrNotConfigured.
func New(
	text generation.TextGenerator,
	images generation.ImageGenerator,
	prompts generation.PromptBuilder,
	settings Settings,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if settings.Concurrency < 1 {
		settings.Concurrency = 1
	}
	return &Pipeline{
		text:     text,
		images:   images,
		prompts:  prompts,
		settings: settings,
		logger:   logger.With("component", "storybook_pipeline"),
	}
}

// Configured reports whether both stages can reach a model.
func (p *Pipeline) Configured() bool {
	return p != nil && p.text != nil && p.images != nil && p.prompts != nil && len(p.settings.ImageModels) > 0
}

// Generate writes and illustrates the storybook described by req.
//
// The Result payload is a *generation.Storybook whose pages are numbered
// from 1 in reply order. Outcome is partial when at least one page has no
// illustration. A failed Stage 1 returns an error wrapping ErrNoContent
// together with a Result carrying the tokens spent.
func (p *Pipeline) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	if !p.Configured() {
		return nil, generation.ErrNotConfigured
	}
	if req.Kind == "" {
		req.Kind = generation.KindStorybook
	}
	if req.Kind != generation.KindStorybook {
		return nil, fmt.Errorf("%w: pipeline only writes storybooks, got %q", generation.ErrInvalidRequest, req.Kind)
	}

	log := logger.FromContextOrDefault(ctx, p.logger)

	book, res, err := p.writeStory(ctx, log, req)
	if err != nil {
		return res, err
	}

	p.illustrate(ctx, log, book, req.AgeGroup)

	res.Payload = book
	res.Outcome = generation.OutcomeOK
	if missing := book.Missing(); missing > 0 {
		res.Outcome = generation.OutcomePartial
		log.WarnContext(ctx, "storybook generated with missing illustrations",
			"pages", len(book.Pages),
			"missing", missing)
	} else {
		log.InfoContext(ctx, "storybook generated", "pages", len(book.Pages))
	}
	return res, nil
}

// writeStory runs Stage 1.
func (p *Pipeline) writeStory(
	ctx context.Context,
	log *slog.Logger,
	req generation.Request,
) (*generation.Storybook, *generation.Result, error) {
	prompt, err := p.prompts.Build(req)
	if err != nil {
		return nil, nil, err
	}

	resp, err := p.text.GenerateText(ctx, generation.TextRequest{
		Model:           p.settings.Model,
		System:          prompt.System,
		User:            prompt.User,
		Temperature:     p.settings.Temperature,
		MaxOutputTokens: p.settings.MaxOutputTokens,
	})
	if err != nil {
		log.ErrorContext(ctx, "story text call failed", "error", redact.Error(err))
		res := &generation.Result{Kind: generation.KindStorybook, Outcome: generation.OutcomeTransportFailure}
		return nil, res, fmt.Errorf("%w: story text call failed", generation.ErrNoContent)
	}

	res := &generation.Result{Kind: generation.KindStorybook, TokensUsed: resp.TokensUsed}
	parseFailure := func(reason string) (*generation.Storybook, *generation.Result, error) {
		log.WarnContext(ctx, "story reply rejected",
			"reason", reason,
			"tokens_used", resp.TokensUsed)
		res.Outcome = generation.OutcomeParseFailure
		return nil, res, fmt.Errorf("%w: %s", generation.ErrNoContent, reason)
	}

	parsed := extract.Parse(resp.Text, resp.TokensUsed)
	if !parsed.OK() {
		return parseFailure("reply contained no JSON")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(parsed.Value, &fields); err != nil {
		return parseFailure("reply is not a JSON object")
	}
	if _, ok := fields["pages"]; !ok {
		return parseFailure(`reply has no "pages" key`)
	}

	payload, err := generation.DecodePayload(generation.KindStorybook, parsed.Value)
	if err != nil {
		return parseFailure(err.Error())
	}
	book := payload.(*generation.Storybook)

	for i := range book.Pages {
		page := &book.Pages[i]
		page.PageNumber = generation.Int(i + 1)
		page.ImageBase64 = nil
		if strings.TrimSpace(string(page.IllustrationPrompt)) == "" {
			page.IllustrationPrompt = generation.Text(fmt.Sprintf("Scene from page %d", i+1))
		}
	}
	return book, res, nil
}

// illustrate runs Stage 2. Each page writes only its own slot, so pages
// never affect each other.
func (p *Pipeline) illustrate(ctx context.Context, log *slog.Logger, book *generation.Storybook, ageGroup string) {
	var g errgroup.Group
	g.SetLimit(p.settings.Concurrency)

	for i := range book.Pages {
		page := &book.Pages[i]
		g.Go(func() error {
			page.ImageBase64 = p.illustratePage(ctx, log, int(page.PageNumber),
				ImagePrompt(string(page.IllustrationPrompt), ageGroup))
			return nil
		})
	}
	_ = g.Wait()
}

// illustratePage tries every image model in order and returns nil when none
// produced an image.
func (p *Pipeline) illustratePage(ctx context.Context, log *slog.Logger, pageNumber int, prompt string) *string {
	for _, model := range p.settings.ImageModels {
		if ctx.Err() != nil {
			return nil
		}

		img, err := p.images.GenerateImage(ctx, model, prompt)
		if err != nil {
			log.WarnContext(ctx, "illustration attempt failed",
				"page", pageNumber,
				"model", model,
				"error", redact.Error(err))
			continue
		}

		encoded, ok := img.Encoded()
		if !ok {
			log.WarnContext(ctx, "image model returned an empty image",
				"page", pageNumber,
				"model", model)
			continue
		}

		log.DebugContext(ctx, "page illustrated", "page", pageNumber, "model", model)
		return &encoded
	}

	log.WarnContext(ctx, "no image model could illustrate page", "page", pageNumber)
	return nil
}

// ImagePrompt wraps a page's illustration prompt with the house style for
// the given age group.
func ImagePrompt(illustrationPrompt, ageGroup string) string {
	return illustrationPrompt + " " +
		"Children's storybook, ages " + ageGroup + ". " +
		"Soft watercolor illustration, warm pastel palette, " +
		"professional children's book art, highly detailed, " +
		"no text, no words, no letters."
}
