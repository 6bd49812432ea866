package api

import (
	"net/http"
	"strings"

	"github.com/classplay/classplay-api/internal/api/shared"
	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/service"
)

// AdminHandler serves the super admin back office. Routes are expected to be
// mounted behind middleware.RequireRole(domain.RoleSuperAdmin).
type AdminHandler struct {
	admin AdminService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// CreateTeacher handles POST /api/admin/teachers.
func (h *AdminHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreateTeacherRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	teacher, err := h.admin.CreateTeacher(r.Context(), actor.ID, req.Email, req.FullName, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create teacher")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, teacher)
}

// ListTeachers handles GET /api/admin/teachers?skip=&limit=&search=.
func (h *AdminHandler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	teachers, err := h.admin.ListTeachers(r.Context(), search, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load teachers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(teachers))
}

// DeleteTeacher handles DELETE /api/admin/teachers/{id}.
func (h *AdminHandler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := userAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.admin.DeleteTeacher(r.Context(), actor.ID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete teacher")
		return
	}
	shared.RespondWithMessage(w, r, "Teacher deleted")
}

// Analytics handles GET /api/admin/analytics.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.admin.Analytics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load analytics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(rows))
}

// ListOrganizations handles GET /api/admin/organizations?skip=&limit=.
func (h *AdminHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	orgs, err := h.admin.ListOrganizations(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load organizations")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(orgs))
}

// CreateOrganization handles POST /api/admin/organizations.
func (h *AdminHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req OrganizationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	org, err := h.admin.CreateOrganization(r.Context(), actor.ID, req.Name, req.Contact, req.Seats, req.ExpiresAt)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create organization")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, org)
}

// ListPayments handles GET /api/admin/payments?skip=&limit=.
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	payments, err := h.admin.ListPayments(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load payments")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(payments))
}

// RecordPayment handles POST /api/admin/payments.
func (h *AdminHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req PaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := h.admin.RecordPayment(r.Context(), actor.ID, service.PaymentInput{
		OrganizationID: req.OrganizationID,
		AmountCents:    req.AmountCents,
		Currency:       req.Currency,
		Method:         req.Method,
		Period:         req.Period,
		Status:         domain.PaymentStatus(req.Status),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record payment")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, payment)
}

// AuditLog handles GET /api/admin/audit-logs?skip=&limit=.
func (h *AdminHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	entries, err := h.admin.AuditLog(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load audit log")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(entries))
}

// nonNil makes empty listings encode as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
