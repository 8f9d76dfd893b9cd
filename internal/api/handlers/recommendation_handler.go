package handlers

import (
	"context"
	"net/http"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/policy"
)

// RecommendationProvider is the service surface the recommendation handler
// needs.
type RecommendationProvider interface {
	Submit(ctx context.Context, rec *entities.ResourceRecommendation) error
	List(ctx context.Context, status string) ([]*entities.ResourceRecommendation, error)
	Resolve(ctx context.Context, id, status string) (*entities.ResourceRecommendation, error)
}

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	service RecommendationProvider
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service RecommendationProvider) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// SubmitRecommendation handles POST /api/recommendations. Open to anyone,
// including anonymous visitors.
func (h *RecommendationHandler) SubmitRecommendation(w http.ResponseWriter, r *http.Request) {
	var rec entities.ResourceRecommendation
	if err := decodeJSON(r, &rec); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	if err := h.service.Submit(r.Context(), &rec); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"id": rec.ID})
}

// ListRecommendations handles GET /api/admin/recommendations (admin only).
// An optional ?status= filter narrows the triage queue.
func (h *RecommendationHandler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	if authorize(w, r, policy.ActionTriageRecommendations, "") == nil {
		return
	}

	recs, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// ResolveRecommendation handles PATCH /api/recommendations/{id}/status
// (admin only).
func (h *RecommendationHandler) ResolveRecommendation(w http.ResponseWriter, r *http.Request) {
	recID := r.PathValue("id")
	if authorize(w, r, policy.ActionTriageRecommendations, "") == nil {
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	rec, err := h.service.Resolve(r.Context(), recID, req.Status)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rec)
}
