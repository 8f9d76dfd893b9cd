package services

import (
	"context"
	"time"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

// UserService handles account administration and profile updates.
type UserService struct {
	users        repositories.UserRepository
	resourceRepo repositories.ResourceRepository
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, resourceRepo repositories.ResourceRepository) *UserService {
	return &UserService{users: users, resourceRepo: resourceRepo}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetManagedResourceID returns the resource link for business
// representatives, nil for everyone else.
func (s *UserService) GetManagedResourceID(ctx context.Context, userID string) (*string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ManagedResourceID, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*entities.User{}
	}
	return users, nil
}

// Demographics is the self-service profile subset a user may update.
type Demographics struct {
	AgeGroup          *string  `json:"age_group,omitempty"`
	Gender            *string  `json:"gender,omitempty"`
	RaceEthnicity     *string  `json:"race_ethnicity,omitempty"`
	SexualOrientation *string  `json:"sexual_orientation,omitempty"`
	Zipcode           *string  `json:"zipcode,omitempty"`
	State             *string  `json:"state,omitempty"`
	ResourceInterests []string `json:"resource_interests,omitempty"`
	Name              *string  `json:"name,omitempty"`
}

// UpdateDemographics applies the self-service subset to the user's own
// record.
func (s *UserService) UpdateDemographics(ctx context.Context, userID string, d Demographics) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if d.Name != nil {
		user.Name = *d.Name
	}
	if d.AgeGroup != nil {
		user.AgeGroup = *d.AgeGroup
	}
	if d.Gender != nil {
		user.Gender = *d.Gender
	}
	if d.RaceEthnicity != nil {
		user.RaceEthnicity = *d.RaceEthnicity
	}
	if d.SexualOrientation != nil {
		user.SexualOrientation = *d.SexualOrientation
	}
	if d.Zipcode != nil {
		user.Zipcode = *d.Zipcode
	}
	if d.State != nil {
		user.State = *d.State
	}
	if d.ResourceInterests != nil {
		user.ResourceInterests = d.ResourceInterests
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole changes a user's role. Promoting to business representative
// requires an existing resource to manage; any other role clears the
// managed resource link.
func (s *UserService) SetRole(ctx context.Context, userID string, role entities.Role, managedResourceID *string) (*entities.User, error) {
	switch role {
	case entities.RoleUser, entities.RoleAdmin, entities.RoleBusinessRep:
	default:
		return nil, apperrors.NewValidationError("unknown role")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if role == entities.RoleBusinessRep {
		if managedResourceID == nil || *managedResourceID == "" {
			return nil, apperrors.NewValidationError("business representatives must manage a resource")
		}
		if _, err := s.resourceRepo.GetByID(ctx, *managedResourceID); err != nil {
			return nil, err
		}
		user.ManagedResourceID = managedResourceID
	} else {
		user.ManagedResourceID = nil
	}

	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive freezes or unfreezes an account. Frozen accounts cannot log in
// but their data is retained.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
