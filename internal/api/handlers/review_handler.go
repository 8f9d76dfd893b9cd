package handlers

import (
	"context"
	"net/http"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/policy"
)

// ReviewProvider is the service surface the review handler needs.
type ReviewProvider interface {
	Create(ctx context.Context, review *entities.Review) error
	ListByResource(ctx context.Context, resourceID string) ([]*entities.Review, error)
	Update(ctx context.Context, reviewID, userID, content string) (*entities.Review, error)
	Delete(ctx context.Context, reviewID, userID string) error
}

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	service ReviewProvider
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewProvider) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type reviewRequest struct {
	Content string `json:"content"`
}

// CreateReview handles POST /api/resources/{id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	principal := authorize(w, r, policy.ActionWriteReview, resourceID)
	if principal == nil {
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	review := &entities.Review{
		UserID:     principal.UserID,
		ResourceID: resourceID,
		Content:    req.Content,
	}
	if err := h.service.Create(r.Context(), review); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /api/resources/{id}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	resourceID := r.PathValue("id")
	if resourceID == "" {
		respondWithError(w, http.StatusBadRequest, "resource ID is required")
		return
	}

	reviews, err := h.service.ListByResource(r.Context(), resourceID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// UpdateReview handles PUT /api/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")
	principal := authorize(w, r, policy.ActionWriteReview, "")
	if principal == nil {
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	review, err := h.service.Update(r.Context(), reviewID, principal.UserID, req.Content)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")
	principal := authorize(w, r, policy.ActionWriteReview, "")
	if principal == nil {
		return
	}

	if err := h.service.Delete(r.Context(), reviewID, principal.UserID); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
