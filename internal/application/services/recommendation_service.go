package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

// RecommendationService handles the suggestion triage workflow.
type RecommendationService struct {
	repo repositories.RecommendationRepository
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(repo repositories.RecommendationRepository) *RecommendationService {
	return &RecommendationService{repo: repo}
}

// Submit validates and stores a recommendation in the pending state.
func (s *RecommendationService) Submit(ctx context.Context, rec *entities.ResourceRecommendation) error {
	if err := validateRecommendation(rec); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	rec.Status = entities.RecommendationPending
	rec.CreatedAt = now
	rec.UpdatedAt = now

	return s.repo.Create(ctx, rec)
}

// GetByID retrieves a recommendation by ID
func (s *RecommendationService) GetByID(ctx context.Context, id string) (*entities.ResourceRecommendation, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns recommendations, optionally filtered by status.
func (s *RecommendationService) List(ctx context.Context, status string) ([]*entities.ResourceRecommendation, error) {
	var filter entities.RecommendationStatus
	switch status {
	case "":
		filter = ""
	case string(entities.RecommendationPending), string(entities.RecommendationApproved), string(entities.RecommendationRejected):
		filter = entities.RecommendationStatus(status)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", status))
	}
	return s.repo.List(ctx, filter)
}

// Resolve moves a pending recommendation to approved or rejected. Any other
// target status is rejected, and a recommendation already resolved cannot
// move again.
func (s *RecommendationService) Resolve(ctx context.Context, id, status string) (*entities.ResourceRecommendation, error) {
	target := entities.RecommendationStatus(status)
	if target != entities.RecommendationApproved && target != entities.RecommendationRejected {
		return nil, apperrors.NewValidationError("status must be approved or rejected")
	}
	return s.repo.UpdateStatus(ctx, id, target)
}

func validateRecommendation(rec *entities.ResourceRecommendation) error {
	missing := []string{}
	for field, value := range map[string]string{
		"name":        rec.Name,
		"type":        rec.Type,
		"description": rec.Description,
		"category":    rec.Category,
		"note":        rec.Note,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	switch rec.Type {
	case entities.RecommendationTypeState:
		if strings.TrimSpace(rec.State) == "" {
			return apperrors.NewValidationError("state is required for state recommendations")
		}
	case entities.RecommendationTypeNational:
	default:
		return apperrors.NewValidationError("type must be state or national")
	}
	return nil
}
