// Package prompt renders the system and user instructions for every
// generation kind. Rendering is a pure function of the request: the same
// request always yields byte-identical prompts.
//
// Request fields are inserted verbatim. Nothing is escaped, and an empty
// class context is rendered as an empty value, not dropped.
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/classplay/classplay-api/internal/generation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("prompt").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"))

// Builder renders prompts. The zero value is ready to use.
type Builder struct{}

var _ generation.PromptBuilder = Builder{}

// Build renders the prompt pair for req.
func (Builder) Build(req generation.Request) (generation.Prompt, error) {
	return Build(req)
}

type data struct {
	generation.Request
	Arc []string
}

// Build renders the prompt pair for req.
func Build(req generation.Request) (generation.Prompt, error) {
	if err := req.Validate(); err != nil {
		return generation.Prompt{}, err
	}

	system := "system.default"
	if req.Kind == generation.KindStorybook {
		system = "system.storybook"
	}

	d := data{Request: req}
	if req.Kind == generation.KindStorybook {
		d.Arc = storyArc(req.Pages)
	}

	sys, err := render(system, d)
	if err != nil {
		return generation.Prompt{}, err
	}
	user, err := render("user."+string(req.Kind), d)
	if err != nil {
		return generation.Prompt{}, err
	}
	return generation.Prompt{System: sys, User: user}, nil
}

func render(name string, d data) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, d); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", name, err)
	}
	return sb.String(), nil
}

// storyArc spreads the narrative over n pages: an opening page, the
// adventure, a resolution page and a closing page.
func storyArc(n int) []string {
	switch {
	case n <= 1:
		return []string{"Page 1: a complete short story with a beginning, a small challenge and a warm ending"}
	case n == 2:
		return []string{
			"Page 1: introduce characters, setting and a small challenge",
			"Page 2: the challenge is resolved with a warm, hopeful ending that reinforces the topic/theme",
		}
	case n == 3:
		return []string{
			"Page 1: introduce characters and setting",
			"Page 2: a small challenge or adventure unfolds and is resolved",
			"Page 3: warm, hopeful ending that reinforces the topic/theme",
		}
	}

	middle := "Page 2"
	if n-2 > 2 {
		middle = fmt.Sprintf("Pages 2-%d", n-2)
	}
	return []string{
		"Page 1: introduce characters and setting",
		middle + ": story unfolds with a small challenge or adventure",
		fmt.Sprintf("Page %d: problem is resolved", n-1),
		fmt.Sprintf("Page %d: warm, hopeful ending that reinforces the topic/theme", n),
	}
}
