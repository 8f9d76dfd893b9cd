package handlers

import (
	"context"
	"net/http"

	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/policy"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
)

// ResourceProvider is the service surface the resource handler needs.
type ResourceProvider interface {
	Create(ctx context.Context, resource *entities.Resource) error
	GetByID(ctx context.Context, id string) (*entities.Resource, error)
	Update(ctx context.Context, resource *entities.Resource) error
	ApplyRepUpdate(ctx context.Context, resourceID string, fields services.RepEditableFields) (*entities.Resource, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter repositories.ResourceFilter) ([]*entities.Resource, error)
}

// ResourceHandler handles resource HTTP requests
type ResourceHandler struct {
	service ResourceProvider
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(service ResourceProvider) *ResourceHandler {
	return &ResourceHandler{service: service}
}

type searchRequest struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	ZipCode     string   `json:"zipCode"`
	AgeRange    []string `json:"ageRange"`
	Limit       int      `json:"limit"`
	Offset      int      `json:"offset"`
}

// SearchResources handles POST /api/resources/search
func (h *ResourceHandler) SearchResources(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	filter := repositories.ResourceFilter{
		Category:    req.Category,
		Description: req.Description,
		ZipCode:     req.ZipCode,
		AgeRange:    req.AgeRange,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 30
	}

	resources, err := h.service.Search(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"resources": resources,
		"count":     len(resources),
	})
}

// GetResource handles GET /api/resources/{id}
func (h *ResourceHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if resourceID == "" {
		respondWithError(w, http.StatusBadRequest, "resource ID is required")
		return
	}

	resource, err := h.service.GetByID(r.Context(), resourceID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resource)
}

// CreateResource handles POST /api/resources (admin only)
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, policy.ActionManageResources, "") == nil {
		return
	}

	var resource entities.Resource
	if err := decodeJSON(r, &resource); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &resource); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, &resource)
}

// UpdateResource handles PUT /api/resources/{id} (admin only)
func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if authorize(w, r, policy.ActionManageResources, resourceID) == nil {
		return
	}

	var resource entities.Resource
	if err := decodeJSON(r, &resource); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	resource.ID = resourceID

	if err := h.service.Update(r.Context(), &resource); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, &resource)
}

// UpdateManagedResource handles PATCH /api/resources/{id}. Admins may patch
// any resource; a business representative only the one they manage, and
// only the restricted field subset.
func (h *ResourceHandler) UpdateManagedResource(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if authorize(w, r, policy.ActionEditResource, resourceID) == nil {
		return
	}

	var fields services.RepEditableFields
	if err := decodeJSON(r, &fields); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	resource, err := h.service.ApplyRepUpdate(r.Context(), resourceID, fields)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resource)
}

// DeleteResource handles DELETE /api/resources/{id} (admin only)
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if authorize(w, r, policy.ActionManageResources, resourceID) == nil {
		return
	}

	if err := h.service.Delete(r.Context(), resourceID); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
