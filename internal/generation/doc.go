// Package generation is the content generation core: the kinds of material
// teachers can request, the typed payloads recovered from language model
// replies, the collaborator contracts for text and image models, and the
// Engine that turns a Request into a Result with one text call.
//
// Prompt rendering lives in generation/prompt, JSON recovery from free-form
// replies in generation/extract and the two-stage illustrated storybook flow
// in generation/storybook.
package generation
