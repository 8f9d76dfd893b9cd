package handlers

import (
	"context"
	"net/http"

	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/policy"
)

// BatchGeocoder runs the rate-limited batch geocode flow.
type BatchGeocoder interface {
	BatchGeocode(ctx context.Context, inputs []string) *services.BatchGeocodeResult
}

// AnalyticsProvider produces the admin dashboard report.
type AnalyticsProvider interface {
	Report(ctx context.Context) (*entities.AnalyticsReport, error)
}

// UserAdminProvider is the account administration surface.
type UserAdminProvider interface {
	List(ctx context.Context) ([]*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	SetRole(ctx context.Context, userID string, role entities.Role, managedResourceID *string) (*entities.User, error)
	SetActive(ctx context.Context, userID string, active bool) (*entities.User, error)
}

// AdminHandler handles admin-facing HTTP requests
type AdminHandler struct {
	geocoder  BatchGeocoder
	analytics AnalyticsProvider
	users     UserAdminProvider
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(geocoder BatchGeocoder, analytics AnalyticsProvider, users UserAdminProvider) *AdminHandler {
	return &AdminHandler{
		geocoder:  geocoder,
		analytics: analytics,
		users:     users,
	}
}

type batchGeocodeRequest struct {
	Zipcodes []string `json:"zipcodes"`
}

// BatchGeocode handles POST /api/admin/geocode-zipcodes
// (admin or business representative).
func (h *AdminHandler) BatchGeocode(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, policy.ActionBatchGeocode, "") == nil {
		return
	}

	var req batchGeocodeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if len(req.Zipcodes) == 0 {
		respondWithError(w, http.StatusBadRequest, "zipcodes is required")
		return
	}

	result := h.geocoder.BatchGeocode(r.Context(), req.Zipcodes)
	respondWithJSON(w, http.StatusOK, result)
}

// GetAnalytics handles GET /api/admin/analytics
// (admin or business representative).
func (h *AdminHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, policy.ActionViewAnalytics, "") == nil {
		return
	}

	report, err := h.analytics.Report(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// ListUsers handles GET /api/admin/users (admin only)
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, policy.ActionManageUsers, "") == nil {
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// GetUser handles GET /api/admin/users/{id} (admin only)
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, policy.ActionManageUsers, "") == nil {
		return
	}

	user, err := h.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

type setRoleRequest struct {
	Role              string  `json:"role"`
	ManagedResourceID *string `json:"managed_resource_id,omitempty"`
}

// SetUserRole handles PATCH /api/admin/users/{id}/role (admin only)
func (h *AdminHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, policy.ActionManageUsers, "") == nil {
		return
	}

	var req setRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user, err := h.users.SetRole(r.Context(), r.PathValue("id"), entities.Role(req.Role), req.ManagedResourceID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetUserActive handles PATCH /api/admin/users/{id}/active (admin only)
func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, policy.ActionManageUsers, "") == nil {
		return
	}

	var req setActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user, err := h.users.SetActive(r.Context(), r.PathValue("id"), req.IsActive)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
