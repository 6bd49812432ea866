package api

import (
	"net/http"

	"github.com/classplay/classplay-api/internal/api/shared"
	"github.com/classplay/classplay-api/internal/service"
)

// ClassHandler serves the classes of the authenticated teacher.
type ClassHandler struct {
	classes ClassService
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(classes ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// List handles GET /api/classes.
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	classes, err := h.classes.List(r.Context(), user.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load classes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(classes))
}

// Create handles POST /api/classes.
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req ClassRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	class, err := h.classes.Create(r.Context(), user.ID, req.input())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create class")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, class)
}

// Update handles PUT /api/classes/{id}.
func (h *ClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ClassRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	class, err := h.classes.Update(r.Context(), user.ID, id, req.input())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update class")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, class)
}

// Delete handles DELETE /api/classes/{id}.
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.classes.Delete(r.Context(), user.ID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete class")
		return
	}
	shared.RespondWithMessage(w, r, "Class deleted")
}

func (req ClassRequest) input() service.ClassInput {
	return service.ClassInput{
		Name:         req.Name,
		Grade:        req.Grade,
		StudentCount: req.StudentCount,
		Description:  req.Description,
	}
}
