package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"estatedesk/internal/services"
)

// Handlers bundles the service dependencies for the HTTP surface
type Handlers struct {
	Auth       *services.AuthService
	Inquiry    *services.InquiryService
	Builder    *services.BuilderInquiryService
	Location   *services.LocationInquiryService
	Career     *services.CareerService
	Newsletter *services.NewsletterService
	Project    *services.ProjectService
	Health     *services.HealthService
}

// NewHandlers creates the handler set
func NewHandlers(
	auth *services.AuthService,
	inquiry *services.InquiryService,
	builder *services.BuilderInquiryService,
	location *services.LocationInquiryService,
	career *services.CareerService,
	newsletter *services.NewsletterService,
	project *services.ProjectService,
	health *services.HealthService,
) *Handlers {
	return &Handlers{
		Auth:       auth,
		Inquiry:    inquiry,
		Builder:    builder,
		Location:   location,
		Career:     career,
		Newsletter: newsletter,
		Project:    project,
		Health:     health,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("[API] Failed to encode response: %v", err)
		}
	}
}

// writeError maps service errors to HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	svcErr, ok := services.AsServiceError(err)
	if !ok {
		log.Printf("[API] Unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "Server error"})
		return
	}

	var status int
	switch svcErr.Type {
	case services.ErrTypeBadRequest:
		status = http.StatusBadRequest
	case services.ErrTypeUnauthorized:
		status = http.StatusUnauthorized
	case services.ErrTypeForbidden:
		status = http.StatusForbidden
	case services.ErrTypeNotFound:
		status = http.StatusNotFound
	case services.ErrTypeConflict:
		status = http.StatusConflict
	default:
		log.Printf("[API] Internal error: %v", svcErr)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": svcErr.Message})
		return
	}

	body := map[string]interface{}{"error": svcErr.Message}
	if svcErr.Duplicate {
		body["duplicate"] = true
	}
	writeJSON(w, status, body)
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.NewBadRequestError("Invalid request body")
	}
	return nil
}

func parseID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, services.NewBadRequestError("Invalid id")
	}
	return uint(id), nil
}

// parseListFilters extracts the uniform admin list filters from the query
// string. Dates use the YYYY-MM-DD form the dashboard sends.
func parseListFilters(r *http.Request) services.ListFilters {
	f := services.ListFilters{Search: r.URL.Query().Get("search")}
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			f.StartDate = &t
		}
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			f.EndDate = &t
		}
	}
	return f
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Health.Check(r.Context()))
}

// Login handles POST /admin/login and POST /api/admin/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.Auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ResetPassword handles POST /api/admin/reset-password
func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Auth.ResetPassword(r.Context(), body.Email, body.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Password reset successfully"})
}

// SubmitInquiry handles POST /inquiry
func (h *Handlers) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var payload services.InquiryPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.Inquiry.Submit(r.Context(), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// SubmitBuilderInquiry handles POST /api/builder-inquiry
func (h *Handlers) SubmitBuilderInquiry(w http.ResponseWriter, r *http.Request) {
	var payload services.BuilderInquiryPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.Builder.Submit(r.Context(), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// SubmitLocationInquiry handles POST /api/location-inquiry
func (h *Handlers) SubmitLocationInquiry(w http.ResponseWriter, r *http.Request) {
	var payload services.LocationInquiryPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.Location.Submit(r.Context(), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// SubmitCareer handles POST /api/career
func (h *Handlers) SubmitCareer(w http.ResponseWriter, r *http.Request) {
	var payload services.CareerPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.Career.Submit(r.Context(), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// SubscribeNewsletter handles POST /api/newsletter
func (h *Handlers) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var payload services.NewsletterPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.Newsletter.Subscribe(r.Context(), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// UnsubscribeNewsletter handles POST /api/newsletter/unsubscribe
func (h *Handlers) UnsubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Newsletter.Unsubscribe(r.Context(), body.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Successfully unsubscribed from newsletter"})
}

// SearchProjects handles GET /api/projects/search
func (h *Handlers) SearchProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := services.ProjectFilters{
		Location:    q.Get("location"),
		BHK:         q.Get("bhk"),
		Builder:     q.Get("builder"),
		Status:      q.Get("status"),
		ProjectType: q.Get("projectType"),
		SearchTerm:  q.Get("searchTerm"),
	}
	projects, err := h.Project.Search(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// ProjectLocations handles GET /api/projects/locations
func (h *Handlers) ProjectLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Project.Locations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

// ProjectBuilders handles GET /api/projects/builders
func (h *Handlers) ProjectBuilders(w http.ResponseWriter, r *http.Request) {
	builders, err := h.Project.Builders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, builders)
}

// CreateProject handles POST /api/admin/properties
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var payload services.ProjectPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.Project.Create(r.Context(), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListInquiries handles GET /api/admin/inquiries
func (h *Handlers) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.Inquiry.List(r.Context(), parseListFilters(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiries)
}

// UpdateInquiry handles PUT /api/admin/inquiries/{id}
func (h *Handlers) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload services.InquiryUpdate
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Inquiry.Update(r.Context(), id, &payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Inquiry updated successfully"})
}

// DeleteInquiry handles DELETE /api/admin/inquiries/{id}
func (h *Handlers) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Inquiry.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBuilderInquiries handles GET /api/admin/builder-inquiries
func (h *Handlers) ListBuilderInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.Builder.List(r.Context(), parseListFilters(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiries)
}

// DeleteBuilderInquiry handles DELETE /api/admin/builder-inquiries/{id}
func (h *Handlers) DeleteBuilderInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Builder.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLocationInquiries handles GET /api/admin/location-inquiries
func (h *Handlers) ListLocationInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.Location.List(r.Context(), parseListFilters(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiries)
}

// UpdateLocationInquiryStatus handles PUT /api/admin/location-inquiries/{id}/status
func (h *Handlers) UpdateLocationInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	inquiry, err := h.Location.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiry)
}

// DeleteLocationInquiry handles DELETE /api/admin/location-inquiries/{id}
func (h *Handlers) DeleteLocationInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Location.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCareerSubmissions handles GET /api/admin/career-submissions
func (h *Handlers) ListCareerSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.Career.List(r.Context(), parseListFilters(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

// UpdateCareerSubmission handles PUT /api/admin/career-submissions/{id}
func (h *Handlers) UpdateCareerSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Career.UpdateStatus(r.Context(), id, body.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteCareerSubmission handles DELETE /api/admin/career-submissions/{id}
func (h *Handlers) DeleteCareerSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Career.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListNewsletterSubscriptions handles GET /api/admin/newsletter-subscriptions
func (h *Handlers) ListNewsletterSubscriptions(w http.ResponseWriter, r *http.Request) {
	subscriptions, err := h.Newsletter.List(r.Context(), parseListFilters(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriptions)
}

// DeleteNewsletterSubscription handles DELETE /api/admin/newsletter-subscriptions/{id}
func (h *Handlers) DeleteNewsletterSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Newsletter.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
