package api

import (
	"net/http"

	"github.com/classplay/classplay-api/internal/api/shared"
	"github.com/classplay/classplay-api/internal/generation"
	"github.com/google/uuid"
)

// Defaults for optional generation fields.
const (
	defaultLanguage   = "English"
	defaultDifficulty = "medium"

	defaultStoryAgeGroup = "7-10"
	defaultStoryLanguage = "Russian"
	defaultStoryGenre    = "fairy tale"
)

// GenerationHandler serves the content generation endpoints.
type GenerationHandler struct {
	generator  GenerationService
	storyPages int
}

// NewGenerationHandler creates a GenerationHandler. storyPages is the number
// of pages requested for every storybook.
func NewGenerationHandler(generator GenerationService, storyPages int) *GenerationHandler {
	return &GenerationHandler{
		generator:  generator,
		storyPages: storyPages,
	}
}

// Math handles POST /api/generate/math.
func (h *GenerationHandler) Math(w http.ResponseWriter, r *http.Request) {
	var req MathRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.generate(w, r, "problems", req.ClassID, generation.Request{
		Kind:       generation.KindMath,
		Topic:      req.Topic,
		Count:      *req.Count,
		Difficulty: orDefault(req.Difficulty, defaultDifficulty),
		Grade:      req.Grade,
		Language:   orDefault(req.Language, defaultLanguage),
	})
}

// Crossword handles POST /api/generate/crossword.
func (h *GenerationHandler) Crossword(w http.ResponseWriter, r *http.Request) {
	var req CrosswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.generate(w, r, "words", req.ClassID, generation.Request{
		Kind:     generation.KindCrossword,
		Topic:    req.Topic,
		Count:    *req.WordCount,
		Grade:    req.Grade,
		Language: orDefault(req.Language, defaultLanguage),
	})
}

// Quiz handles POST /api/generate/quiz.
func (h *GenerationHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.generate(w, r, "questions", req.ClassID, generation.Request{
		Kind:       generation.KindQuiz,
		Topic:      req.Topic,
		Count:      *req.Count,
		Difficulty: orDefault(req.Difficulty, defaultDifficulty),
		Grade:      req.Grade,
		Language:   orDefault(req.Language, defaultLanguage),
	})
}

// Assignment handles POST /api/generate/assignment.
func (h *GenerationHandler) Assignment(w http.ResponseWriter, r *http.Request) {
	var req AssignmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.generate(w, r, "result", req.ClassID, generation.Request{
		Kind:       generation.KindAssignment,
		Subject:    req.Subject,
		Topic:      req.Topic,
		Count:      *req.Count,
		Difficulty: orDefault(req.Difficulty, defaultDifficulty),
		Grade:      req.Grade,
		Language:   orDefault(req.Language, defaultLanguage),
	})
}

// Jeopardy handles POST /api/generate/jeopardy.
func (h *GenerationHandler) Jeopardy(w http.ResponseWriter, r *http.Request) {
	var req JeopardyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.generate(w, r, "board", req.ClassID, generation.Request{
		Kind:       generation.KindJeopardy,
		Topic:      req.Topic,
		Count:      req.Categories,
		Difficulty: orDefault(req.Difficulty, defaultDifficulty),
		Grade:      req.Grade,
		Language:   orDefault(req.Language, defaultLanguage),
	})
}

// Storybook handles POST /api/library/generate.
func (h *GenerationHandler) Storybook(w http.ResponseWriter, r *http.Request) {
	var req StorybookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	res, err := h.generator.Generate(r.Context(), user.ID, generation.Request{
		Kind:     generation.KindStorybook,
		Title:    req.Title,
		Topic:    req.Topic,
		AgeGroup: orDefault(req.AgeGroup, defaultStoryAgeGroup),
		Language: orDefault(req.Language, defaultStoryLanguage),
		Genre:    orDefault(req.Genre, defaultStoryGenre),
		Pages:    h.storyPages,
	}, nil)
	if err != nil {
		HandleAPIError(w, r, err, msgGenerationFailed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		"book": res.Payload,
	})
}

// generate runs req for the authenticated user and writes the payload under
// key together with the tokens spent.
func (h *GenerationHandler) generate(
	w http.ResponseWriter,
	r *http.Request,
	key string,
	classID *uuid.UUID,
	req generation.Request,
) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	res, err := h.generator.Generate(r.Context(), user.ID, req, classID)
	if err != nil {
		HandleAPIError(w, r, err, msgGenerationFailed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
		key:           res.Payload,
		"tokens_used": res.TokensUsed,
	})
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
