// Package openai adapts OpenAI-compatible chat completion APIs to the
// generation.TextGenerator contract. Any server speaking the OpenAI wire
// format can be used by setting a base URL.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/classplay/classplay-api/internal/config"
	"github.com/classplay/classplay-api/internal/generation"
	openaigo "github.com/sashabaranov/go-openai"
)

// Client implements generation.TextGenerator.
type Client struct {
	client *openaigo.Client
	logger *slog.Logger
}

var _ generation.TextGenerator = (*Client)(nil)

// NewClient creates a client from cfg. It returns generation.ErrNotConfigured
// when no OpenAI API key is set.
func NewClient(cfg config.LLMConfig, logger *slog.Logger) (*Client, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key is empty", generation.ErrNotConfigured)
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientConfig := openaigo.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &Client{
		client: openaigo.NewClientWithConfig(clientConfig),
		logger: logger.With("component", "openai"),
	}, nil
}

// GenerateText sends one chat completion request made of the system and
// user prompts.
func (c *Client) GenerateText(ctx context.Context, req generation.TextRequest) (*generation.TextResponse, error) {
	messages := make([]openaigo.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{
			Role:    openaigo.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openaigo.ChatCompletionMessage{
		Role:    openaigo.ChatMessageRoleUser,
		Content: req.User,
	})

	c.logger.DebugContext(ctx, "calling OpenAI chat model",
		"model", req.Model,
		"prompt_length", len(req.User))

	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   int(req.MaxOutputTokens),
	})
	if err != nil {
		var apiErr *openaigo.APIError
		if errors.As(err, &apiErr) && apiErr.Code == "content_filter" {
			return nil, fmt.Errorf("%w: %s", generation.ErrContentBlocked, apiErr.Message)
		}
		return nil, fmt.Errorf("openai call to %s failed: %w", req.Model, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openaigo.FinishReasonContentFilter {
		return nil, fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, choice.FinishReason)
	}

	return &generation.TextResponse{
		Text:       choice.Message.Content,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
