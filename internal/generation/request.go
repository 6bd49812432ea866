package generation

import "fmt"

// Request describes one piece of content to generate. It exists only for the
// duration of a call.
//
// Difficulty, Grade, Language, AgeGroup and Context are free text inserted
// into the prompt as given. They are neither escaped nor validated.
type Request struct {
	Kind       Kind
	Topic      string
	Count      int
	Difficulty string
	Grade      string
	Language   string
	AgeGroup   string
	// Context is the free-text class description; it may be empty.
	Context string

	Subject string // assignment
	Title   string // storybook
	Genre   string // storybook
	Pages   int    // storybook
}

// Validate checks the parts of a request the prompt templates rely on.
func (r Request) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, r.Kind)
	}
	if r.Count < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrInvalidRequest)
	}
	if r.Kind == KindStorybook && r.Pages < 1 {
		return fmt.Errorf("%w: a storybook needs at least one page", ErrInvalidRequest)
	}
	return nil
}

// Prompt is the rendered instruction pair sent to a text model.
type Prompt struct {
	System string
	User   string
}

// PromptBuilder renders prompts for requests.
type PromptBuilder interface {
	Build(req Request) (Prompt, error)
}
