package storybook_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/classplay/classplay-api/internal/generation"
	"github.com/classplay/classplay-api/internal/generation/prompt"
	"github.com/classplay/classplay-api/internal/generation/storybook"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textGeneratorMock struct {
	GenerateTextFn func(ctx context.Context, req generation.TextRequest) (*generation.TextResponse, error)
}

func (m *textGeneratorMock) GenerateText(
	ctx context.Context,
	req generation.TextRequest,
) (*generation.TextResponse, error) {
	return m.GenerateTextFn(ctx, req)
}

type imageCall struct {
	Model  string
	Prompt string
}

type imageGeneratorMock struct {
	GenerateImageFn func(ctx context.Context, model, prompt string) (generation.Image, error)

	mu    sync.Mutex
	calls []imageCall
}

func (m *imageGeneratorMock) GenerateImage(ctx context.Context, model, prompt string) (generation.Image, error) {
	m.mu.Lock()
	m.calls = append(m.calls, imageCall{Model: model, Prompt: prompt})
	m.mu.Unlock()
	return m.GenerateImageFn(ctx, model, prompt)
}

func (m *imageGeneratorMock) Calls() []imageCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]imageCall(nil), m.calls...)
}

var imageModels = []string{"gemini-2.0-flash-exp", "gemini-2.5-flash-image"}

func storyReply(pages int) string {
	var sb strings.Builder
	sb.WriteString("```json\n{\"title\": \"Ants\", \"description\": \"A tale\", \"pages\": [")
	for i := 1; i <= pages; i++ {
		if i > 1 {
			sb.WriteString(",")
		}
		// Page numbers in the reply are deliberately off to check renumbering.
		fmt.Fprintf(&sb, `{"page_number": %d, "text": "Page text %d", "illustration_prompt": "scene %d"}`, i*10, i, i)
	}
	sb.WriteString("]}\n```")
	return sb.String()
}

func textReplying(text string, tokens int) *textGeneratorMock {
	return &textGeneratorMock{
		GenerateTextFn: func(context.Context, generation.TextRequest) (*generation.TextResponse, error) {
			return &generation.TextResponse{Text: text, TokensUsed: tokens}, nil
		},
	}
}

func newPipeline(t *testing.T, text generation.TextGenerator, images generation.ImageGenerator) *storybook.Pipeline {
	t.Helper()
	l, _ := logger.GetTestLogger(t)
	return storybook.New(text, images, prompt.Builder{}, storybook.Settings{
		Model:           "gemini-2.0-flash",
		Temperature:     0.9,
		MaxOutputTokens: 8192,
		ImageModels:     imageModels,
		Concurrency:     4,
	}, l)
}

func storyRequest(pages int) generation.Request {
	return generation.Request{
		Kind:     generation.KindStorybook,
		Title:    "Ants",
		Topic:    "teamwork",
		AgeGroup: "7-10",
		Language: "Russian",
		Genre:    "fairy tale",
		Pages:    pages,
	}
}

func TestPipelinePartialIllustrations(t *testing.T) {
	images := &imageGeneratorMock{
		GenerateImageFn: func(_ context.Context, model, prompt string) (generation.Image, error) {
			switch {
			case strings.HasPrefix(prompt, "scene 3 "), strings.HasPrefix(prompt, "scene 7 "):
				return generation.Image{}, errors.New("upstream 500")
			case model == imageModels[0]:
				return generation.Image{}, generation.ErrNoImage
			default:
				return generation.Image{Bytes: []byte(prompt[:7])}, nil
			}
		},
	}
	p := newPipeline(t, textReplying(storyReply(10), 900), images)

	res, err := p.Generate(context.Background(), storyRequest(10))
	require.NoError(t, err)

	assert.Equal(t, generation.OutcomePartial, res.Outcome)
	assert.Equal(t, 900, res.TokensUsed)
	book, ok := res.Payload.(*generation.Storybook)
	require.True(t, ok)
	require.Len(t, book.Pages, 10)
	assert.Equal(t, 2, book.Missing())

	for i, page := range book.Pages {
		n := i + 1
		assert.Equal(t, generation.Int(n), page.PageNumber)
		assert.Equal(t, generation.Text(fmt.Sprintf("Page text %d", n)), page.Text)
		if n == 3 || n == 7 {
			assert.Nil(t, page.ImageBase64, "page %d", n)
			continue
		}
		require.NotNil(t, page.ImageBase64, "page %d", n)
		assert.NotEmpty(t, *page.ImageBase64)
	}

	// Every page tried both models: the first never yields an image.
	assert.Len(t, images.Calls(), 20)
}

func TestPipelineAllIllustrated(t *testing.T) {
	images := &imageGeneratorMock{
		GenerateImageFn: func(context.Context, string, string) (generation.Image, error) {
			return generation.Image{Base64: "aW1n"}, nil
		},
	}
	p := newPipeline(t, textReplying(storyReply(3), 50), images)

	res, err := p.Generate(context.Background(), storyRequest(3))
	require.NoError(t, err)
	assert.Equal(t, generation.OutcomeOK, res.Outcome)

	calls := images.Calls()
	require.Len(t, calls, 3)
	for _, c := range calls {
		assert.Equal(t, imageModels[0], c.Model)
		assert.Contains(t, c.Prompt, "Children's storybook, ages 7-10.")
		assert.True(t, strings.HasSuffix(c.Prompt, "no text, no words, no letters."))
	}
}

func TestPipelineIllustrationPromptFallback(t *testing.T) {
	reply := `{"title": "T", "pages": [{"page_number": 1, "text": "Once"}, {"text": "Then", "illustration_prompt": "  "}]}`
	images := &imageGeneratorMock{
		GenerateImageFn: func(context.Context, string, string) (generation.Image, error) {
			return generation.Image{Base64: "aW1n"}, nil
		},
	}
	p := newPipeline(t, textReplying(reply, 5), images)

	res, err := p.Generate(context.Background(), storyRequest(2))
	require.NoError(t, err)

	book := res.Payload.(*generation.Storybook)
	assert.Equal(t, generation.Text("Scene from page 1"), book.Pages[0].IllustrationPrompt)
	assert.Equal(t, generation.Text("Scene from page 2"), book.Pages[1].IllustrationPrompt)

	prompts := make([]string, 0, 2)
	for _, c := range images.Calls() {
		prompts = append(prompts, c.Prompt)
	}
	assert.ElementsMatch(t, []string{
		storybook.ImagePrompt("Scene from page 1", "7-10"),
		storybook.ImagePrompt("Scene from page 2", "7-10"),
	}, prompts)
}

func TestPipelineFailsFastWithoutStory(t *testing.T) {
	testCases := []struct {
		name    string
		reply   string
		outcome generation.Outcome
	}{
		{"not json", "Once upon a time there was no JSON.", generation.OutcomeParseFailure},
		{"array", `[{"text": "page"}]`, generation.OutcomeParseFailure},
		{"no pages key", `{"title": "Ants", "story": "..."}`, generation.OutcomeParseFailure},
		{"page without text", `{"title": "Ants", "pages": [{"page_number": 1}]}`, generation.OutcomeParseFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			images := &imageGeneratorMock{
				GenerateImageFn: func(context.Context, string, string) (generation.Image, error) {
					return generation.Image{Base64: "aW1n"}, nil
				},
			}
			p := newPipeline(t, textReplying(tc.reply, 40), images)

			res, err := p.Generate(context.Background(), storyRequest(10))
			assert.ErrorIs(t, err, generation.ErrNoContent)
			require.NotNil(t, res)
			assert.Equal(t, tc.outcome, res.Outcome)
			assert.Equal(t, 40, res.TokensUsed)
			assert.Nil(t, res.Payload)
			assert.Empty(t, images.Calls(), "no image call may happen without a story")
		})
	}
}

func TestPipelineSchemaMismatchNamesPage(t *testing.T) {
	reply := `{"title": "Ants", "pages": [{"text": "One"}, {"illustration_prompt": "ants"}]}`
	l, logs := logger.GetTestLogger(t)
	images := &imageGeneratorMock{
		GenerateImageFn: func(context.Context, string, string) (generation.Image, error) {
			return generation.Image{Base64: "aW1n"}, nil
		},
	}
	p := storybook.New(textReplying(reply, 30), images, prompt.Builder{}, storybook.Settings{
		Model:       "gemini-2.0-flash",
		ImageModels: imageModels,
		Concurrency: 1,
	}, l)

	_, err := p.Generate(context.Background(), storyRequest(2))

	require.ErrorIs(t, err, generation.ErrNoContent)
	assert.Contains(t, err.Error(), "Storybook.Pages[1].Text")
	logger.AssertLogContains(t, logs, "Storybook.Pages[1].Text")
	assert.Empty(t, images.Calls())
}

func TestPipelineTextTransportFailure(t *testing.T) {
	text := &textGeneratorMock{
		GenerateTextFn: func(context.Context, generation.TextRequest) (*generation.TextResponse, error) {
			return nil, errors.New("deadline exceeded")
		},
	}
	images := &imageGeneratorMock{}
	p := newPipeline(t, text, images)

	res, err := p.Generate(context.Background(), storyRequest(10))
	assert.ErrorIs(t, err, generation.ErrNoContent)
	require.NotNil(t, res)
	assert.Equal(t, generation.OutcomeTransportFailure, res.Outcome)
	assert.Zero(t, res.TokensUsed)
	assert.Empty(t, images.Calls())
}

func TestPipelineStoryCallSettings(t *testing.T) {
	var got generation.TextRequest
	text := &textGeneratorMock{
		GenerateTextFn: func(_ context.Context, req generation.TextRequest) (*generation.TextResponse, error) {
			got = req
			return &generation.TextResponse{Text: `{"pages": []}`, TokensUsed: 3}, nil
		},
	}
	p := newPipeline(t, text, &imageGeneratorMock{})

	res, err := p.Generate(context.Background(), storyRequest(10))
	require.NoError(t, err)
	assert.Equal(t, generation.OutcomeOK, res.Outcome)
	assert.Equal(t, float32(0.9), got.Temperature)
	assert.Equal(t, "gemini-2.0-flash", got.Model)
	assert.Contains(t, got.System, "storybook author")
	assert.Contains(t, got.User, "Write a children's fairy tale storybook in Russian.")
}

func TestPipelineNotConfigured(t *testing.T) {
	l, _ := logger.GetTestLogger(t)

	p := storybook.New(textReplying("{}", 1), nil, prompt.Builder{}, storybook.Settings{ImageModels: imageModels}, l)
	_, err := p.Generate(context.Background(), storyRequest(1))
	assert.ErrorIs(t, err, generation.ErrNotConfigured)

	p = storybook.New(textReplying("{}", 1), &imageGeneratorMock{}, prompt.Builder{}, storybook.Settings{}, l)
	assert.False(t, p.Configured())
}

func TestPipelineRejectsOtherKinds(t *testing.T) {
	p := newPipeline(t, textReplying("[]", 1), &imageGeneratorMock{})
	req := storyRequest(1)
	req.Kind = generation.KindQuiz

	_, err := p.Generate(context.Background(), req)
	assert.ErrorIs(t, err, generation.ErrInvalidRequest)
}
