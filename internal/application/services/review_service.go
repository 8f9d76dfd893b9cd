package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

// ReviewService handles resource reviews. Only the author may update or
// delete a review.
type ReviewService struct {
	repo         repositories.ReviewRepository
	resourceRepo repositories.ResourceRepository
}

// NewReviewService creates a new review service
func NewReviewService(repo repositories.ReviewRepository, resourceRepo repositories.ResourceRepository) *ReviewService {
	return &ReviewService{repo: repo, resourceRepo: resourceRepo}
}

// Create validates and stores a review.
func (s *ReviewService) Create(ctx context.Context, review *entities.Review) error {
	if err := validateContent(review.Content); err != nil {
		return err
	}
	if _, err := s.resourceRepo.GetByID(ctx, review.ResourceID); err != nil {
		return err
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	return s.repo.Create(ctx, review)
}

// ListByResource returns all reviews for a resource, newest first.
func (s *ReviewService) ListByResource(ctx context.Context, resourceID string) ([]*entities.Review, error) {
	reviews, err := s.repo.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*entities.Review{}
	}
	return reviews, nil
}

// Update replaces the review content after checking authorship.
func (s *ReviewService) Update(ctx context.Context, reviewID, userID, content string) (*entities.Review, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperrors.NewForbiddenError("only the author may modify this review")
	}

	review.Content = content
	review.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review after checking authorship.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID string) error {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return apperrors.NewForbiddenError("only the author may delete this review")
	}
	return s.repo.Delete(ctx, reviewID)
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperrors.NewValidationError("review content is required")
	}
	if len(content) > entities.MaxReviewLength {
		return apperrors.NewValidationError("review content exceeds 1000 characters")
	}
	return nil
}
