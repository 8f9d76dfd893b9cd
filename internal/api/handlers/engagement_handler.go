package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/advocacy-resources/advo-sub001/internal/api/middleware"
	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/policy"
)

// EngagementProvider is the service surface the engagement handler needs.
type EngagementProvider interface {
	SubmitRating(ctx context.Context, userID, resourceID string, value *int) (services.RatingSummary, error)
	GetRating(ctx context.Context, userID, resourceID string) (services.RatingSummary, error)
	ToggleFavorite(ctx context.Context, userID, resourceID string) (services.FavoriteSummary, error)
	FavoriteStatus(ctx context.Context, userID, resourceID string) (services.FavoriteSummary, error)
	ListFavorites(ctx context.Context, userID string) ([]*entities.Resource, error)
}

// EngagementHandler handles rating and favorite HTTP requests
type EngagementHandler struct {
	service EngagementProvider
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(service EngagementProvider) *EngagementHandler {
	return &EngagementHandler{service: service}
}

type ratingRequest struct {
	// "UP", "DOWN" or null. Null clears the existing vote.
	Rating *string `json:"rating"`
}

// SubmitRating handles POST /api/resources/{id}/rating
func (h *EngagementHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	principal := authorize(w, r, policy.ActionRate, resourceID)
	if principal == nil {
		return
	}

	var req ratingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var value *int
	if req.Rating != nil {
		switch strings.ToUpper(*req.Rating) {
		case "UP":
			v := entities.RatingUp
			value = &v
		case "DOWN":
			v := entities.RatingDown
			value = &v
		default:
			respondWithError(w, http.StatusBadRequest, "rating must be UP, DOWN or null")
			return
		}
	}

	summary, err := h.service.SubmitRating(r.Context(), principal.UserID, resourceID, value)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// GetRating handles GET /api/resources/{id}/rating. Works for anonymous
// callers too; userRating is only present for authenticated ones.
func (h *EngagementHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if resourceID == "" {
		respondWithError(w, http.StatusBadRequest, "resource ID is required")
		return
	}

	userID := ""
	if principal := middleware.PrincipalFromContext(r.Context()); principal != nil {
		userID = principal.UserID
	}

	summary, err := h.service.GetRating(r.Context(), userID, resourceID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// ToggleFavorite handles POST /api/resources/{id}/favorite
func (h *EngagementHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	principal := authorize(w, r, policy.ActionFavorite, resourceID)
	if principal == nil {
		return
	}

	summary, err := h.service.ToggleFavorite(r.Context(), principal.UserID, resourceID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// GetFavorite handles GET /api/resources/{id}/favorite. Anonymous callers
// get isFavorited=false with the real count.
func (h *EngagementHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if resourceID == "" {
		respondWithError(w, http.StatusBadRequest, "resource ID is required")
		return
	}

	userID := ""
	if principal := middleware.PrincipalFromContext(r.Context()); principal != nil {
		userID = principal.UserID
	}

	summary, err := h.service.FavoriteStatus(r.Context(), userID, resourceID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// ListFavorites handles GET /api/users/me/favorites
func (h *EngagementHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	principal := authorize(w, r, policy.ActionFavorite, "")
	if principal == nil {
		return
	}

	resources, err := h.service.ListFavorites(r.Context(), principal.UserID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"resources": resources,
		"count":     len(resources),
	})
}
