package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/classplay/classplay-api/internal/config"
	"github.com/classplay/classplay-api/internal/generation"
	"github.com/classplay/classplay-api/internal/redact"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models used by the Client.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client implements generation.TextGenerator and generation.ImageGenerator.
type Client struct {
	models           contentGenerator
	imageTemperature float32
	logger           *slog.Logger
}

var (
	_ generation.TextGenerator  = (*Client)(nil)
	_ generation.ImageGenerator = (*Client)(nil)
)

// NewClient creates a Gemini client from cfg. It returns
// generation.ErrNotConfigured when no Gemini API key is set.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is empty", generation.ErrNotConfigured)
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %s", redact.Error(err))
	}

	return newClient(client.Models, cfg.ImageTemperature, logger), nil
}

func newClient(models contentGenerator, imageTemperature float32, logger *slog.Logger) *Client {
	return &Client{
		models:           models,
		imageTemperature: imageTemperature,
		logger:           logger.With("component", "gemini"),
	}
}

// GenerateText sends one text generation request.
func (c *Client) GenerateText(ctx context.Context, req generation.TextRequest) (*generation.TextResponse, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: req.MaxOutputTokens,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	c.logger.DebugContext(ctx, "calling Gemini text model",
		"model", req.Model,
		"prompt_length", len(req.User))

	resp, err := c.models.GenerateContent(ctx, req.Model, genai.Text(req.User), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini text call to %s failed: %w", req.Model, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return &generation.TextResponse{Text: text, TokensUsed: tokensUsed(resp)}, nil
}

// GenerateImage asks model for one image described by prompt.
func (c *Client) GenerateImage(ctx context.Context, model, prompt string) (generation.Image, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr(c.imageTemperature),
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	c.logger.DebugContext(ctx, "calling Gemini image model", "model", model)

	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return generation.Image{}, fmt.Errorf("gemini image call to %s failed: %w", model, err)
	}

	data, err := responseImage(resp)
	if err != nil {
		return generation.Image{}, err
	}
	return generation.Image{Bytes: data}, nil
}
