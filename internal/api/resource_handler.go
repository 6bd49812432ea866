package api

import (
	"net/http"

	"github.com/classplay/classplay-api/internal/api/shared"
)

// ResourceHandler serves the saved resources of the authenticated teacher.
type ResourceHandler struct {
	resources ResourceService
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler(resources ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// List handles GET /api/resources.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	resources, err := h.resources.List(r.Context(), user.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load resources")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(resources))
}

// Save handles POST /api/resources.
func (h *ResourceHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req ResourceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resource, err := h.resources.Save(r.Context(), user.ID, req.Title, req.Type, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save resource")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, resource)
}

// Delete handles DELETE /api/resources/{id}.
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, id, ok := userAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.resources.Delete(r.Context(), user.ID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete resource")
		return
	}
	shared.RespondWithMessage(w, r, "Resource deleted")
}
