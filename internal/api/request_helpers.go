package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/classplay/classplay-api/internal/api/shared"
	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// currentUser returns the authenticated user placed in the context by the
// auth middleware, writing a 401 when it is missing.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	return user, true
}

// getPathUUID parses the chi path parameter paramName as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", errInvalidPathID, paramName)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", errInvalidPathID, paramName)
	}
	return id, nil
}

// userAndPathUUID extracts the authenticated user and the {paramName} UUID,
// writing an error response when either is missing.
func userAndPathUUID(w http.ResponseWriter, r *http.Request, paramName string) (*domain.User, uuid.UUID, bool) {
	user, ok := currentUser(w, r)
	if !ok {
		return nil, uuid.Nil, false
	}
	id, err := getPathUUID(r, paramName)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, uuid.Nil, false
	}
	return user, id, true
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// pageFromQuery reads the skip and limit query parameters. Missing values
// fall back to store.Page defaults.
func pageFromQuery(r *http.Request) (store.Page, error) {
	var page store.Page
	q := r.URL.Query()

	for name, dst := range map[string]*int{"skip": &page.Skip, "limit": &page.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return store.Page{}, fmt.Errorf("%w: %s must be an integer", errInvalidQuery, name)
		}
		*dst = n
	}
	return page, nil
}
