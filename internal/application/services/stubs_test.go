package services_test

import (
	"context"
	"time"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/providers"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

// In-memory repository stubs. Only the behavior the services under test
// rely on is implemented; unsupported paths return zero values.

type stubResourceRepo struct {
	resources map[string]*entities.Resource
	searchFn  func(repositories.ResourceFilter) ([]*entities.Resource, error)
}

func newStubResourceRepo(resources ...*entities.Resource) *stubResourceRepo {
	repo := &stubResourceRepo{resources: map[string]*entities.Resource{}}
	for _, r := range resources {
		repo.resources[r.ID] = r
	}
	return repo
}

func (s *stubResourceRepo) Create(_ context.Context, r *entities.Resource) error {
	s.resources[r.ID] = r
	return nil
}

func (s *stubResourceRepo) GetByID(_ context.Context, id string) (*entities.Resource, error) {
	r, ok := s.resources[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("resource not found")
	}
	return r, nil
}

func (s *stubResourceRepo) Update(_ context.Context, r *entities.Resource) error {
	if _, ok := s.resources[r.ID]; !ok {
		return apperrors.NewNotFoundError("resource not found")
	}
	s.resources[r.ID] = r
	return nil
}

func (s *stubResourceRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.resources[id]; !ok {
		return apperrors.NewNotFoundError("resource not found")
	}
	delete(s.resources, id)
	return nil
}

func (s *stubResourceRepo) Search(_ context.Context, filter repositories.ResourceFilter) ([]*entities.Resource, error) {
	if s.searchFn != nil {
		return s.searchFn(filter)
	}
	out := []*entities.Resource{}
	for _, r := range s.resources {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubResourceRepo) GetByIDs(_ context.Context, ids []string) ([]*entities.Resource, error) {
	out := []*entities.Resource{}
	for _, id := range ids {
		if r, ok := s.resources[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubRatingRepo struct {
	votes map[string]int // userID|resourceID -> value
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{votes: map[string]int{}}
}

func ratingKey(userID, resourceID string) string { return userID + "|" + resourceID }

func (s *stubRatingRepo) Set(_ context.Context, userID, resourceID string, value int) (entities.RatingTally, error) {
	s.votes[ratingKey(userID, resourceID)] = value
	return s.tally(resourceID), nil
}

func (s *stubRatingRepo) Clear(_ context.Context, userID, resourceID string) (entities.RatingTally, error) {
	delete(s.votes, ratingKey(userID, resourceID))
	return s.tally(resourceID), nil
}

func (s *stubRatingRepo) Get(_ context.Context, userID, resourceID string) (*entities.Rating, error) {
	v, ok := s.votes[ratingKey(userID, resourceID)]
	if !ok {
		return nil, nil
	}
	return &entities.Rating{UserID: userID, ResourceID: resourceID, Value: v}, nil
}

func (s *stubRatingRepo) Tally(_ context.Context, resourceID string) (entities.RatingTally, error) {
	return s.tally(resourceID), nil
}

func (s *stubRatingRepo) tally(resourceID string) entities.RatingTally {
	var t entities.RatingTally
	for key, v := range s.votes {
		if key[len(key)-len(resourceID):] == resourceID {
			if v == entities.RatingUp {
				t.Upvotes++
			} else {
				t.Downvotes++
			}
		}
	}
	return t
}

type stubFavoriteRepo struct {
	pairs map[string]bool
}

func newStubFavoriteRepo() *stubFavoriteRepo {
	return &stubFavoriteRepo{pairs: map[string]bool{}}
}

func (s *stubFavoriteRepo) Toggle(_ context.Context, userID, resourceID string) (bool, int, error) {
	key := ratingKey(userID, resourceID)
	if s.pairs[key] {
		delete(s.pairs, key)
	} else {
		s.pairs[key] = true
	}
	count, _ := s.Count(context.Background(), resourceID)
	return s.pairs[key], count, nil
}

func (s *stubFavoriteRepo) IsFavorited(_ context.Context, userID, resourceID string) (bool, error) {
	return s.pairs[ratingKey(userID, resourceID)], nil
}

func (s *stubFavoriteRepo) Count(_ context.Context, resourceID string) (int, error) {
	count := 0
	for key := range s.pairs {
		if key[len(key)-len(resourceID):] == resourceID {
			count++
		}
	}
	return count, nil
}

func (s *stubFavoriteRepo) ListResourceIDs(_ context.Context, userID string) ([]string, error) {
	ids := []string{}
	for key := range s.pairs {
		if len(key) > len(userID) && key[:len(userID)] == userID {
			ids = append(ids, key[len(userID)+1:])
		}
	}
	return ids, nil
}

type stubUserRepo struct {
	users map[string]*entities.User
}

func newStubUserRepo(users ...*entities.User) *stubUserRepo {
	repo := &stubUserRepo{users: map[string]*entities.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (s *stubUserRepo) Create(_ context.Context, u *entities.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return apperrors.NewConflictError("email already registered")
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return u, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (s *stubUserRepo) Update(_ context.Context, u *entities.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	s.users[u.ID] = u
	return nil
}

func (s *stubUserRepo) List(_ context.Context) ([]*entities.User, error) {
	out := []*entities.User{}
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *stubUserRepo) SetOTP(_ context.Context, id, secret string, expiry time.Time) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	u.OTPSecret = secret
	u.OTPExpiry = &expiry
	return nil
}

func (s *stubUserRepo) ClearOTP(_ context.Context, id string) error {
	u, ok := s.users[id]
	if !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	u.OTPSecret = ""
	u.OTPExpiry = nil
	return nil
}

type stubRecommendationRepo struct {
	recs map[string]*entities.ResourceRecommendation
}

func newStubRecommendationRepo() *stubRecommendationRepo {
	return &stubRecommendationRepo{recs: map[string]*entities.ResourceRecommendation{}}
}

func (s *stubRecommendationRepo) Create(_ context.Context, rec *entities.ResourceRecommendation) error {
	s.recs[rec.ID] = rec
	return nil
}

func (s *stubRecommendationRepo) GetByID(_ context.Context, id string) (*entities.ResourceRecommendation, error) {
	rec, ok := s.recs[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("recommendation not found")
	}
	return rec, nil
}

func (s *stubRecommendationRepo) List(_ context.Context, status entities.RecommendationStatus) ([]*entities.ResourceRecommendation, error) {
	out := []*entities.ResourceRecommendation{}
	for _, rec := range s.recs {
		if status == "" || rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubRecommendationRepo) UpdateStatus(_ context.Context, id string, status entities.RecommendationStatus) (*entities.ResourceRecommendation, error) {
	rec, ok := s.recs[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("recommendation not found")
	}
	if rec.Status != entities.RecommendationPending {
		return nil, apperrors.NewConflictError("recommendation is already " + string(rec.Status))
	}
	rec.Status = status
	return rec, nil
}

type stubReviewRepo struct {
	reviews map[string]*entities.Review
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: map[string]*entities.Review{}}
}

func (s *stubReviewRepo) Create(_ context.Context, r *entities.Review) error {
	s.reviews[r.ID] = r
	return nil
}

func (s *stubReviewRepo) GetByID(_ context.Context, id string) (*entities.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("review not found")
	}
	return r, nil
}

func (s *stubReviewRepo) ListByResource(_ context.Context, resourceID string) ([]*entities.Review, error) {
	out := []*entities.Review{}
	for _, r := range s.reviews {
		if r.ResourceID == resourceID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReviewRepo) Update(_ context.Context, r *entities.Review) error {
	if _, ok := s.reviews[r.ID]; !ok {
		return apperrors.NewNotFoundError("review not found")
	}
	s.reviews[r.ID] = r
	return nil
}

func (s *stubReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := s.reviews[id]; !ok {
		return apperrors.NewNotFoundError("review not found")
	}
	delete(s.reviews, id)
	return nil
}

// stubGeocoder resolves addresses from a fixed map and fails on anything
// else.
type stubGeocoder struct {
	known map[string]providers.Coordinates
}

func (s *stubGeocoder) Geocode(_ context.Context, address string) (providers.Coordinates, error) {
	if coords, ok := s.known[address]; ok {
		return coords, nil
	}
	return providers.Coordinates{}, apperrors.NewExternalError("no match for address", nil)
}
