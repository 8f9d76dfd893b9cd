package services

import (
	"context"
	"math"
	"sort"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
)

// zipDigitStates is a coarse first-digit-of-zip to state lookup, used only
// when a user record carries no explicit state. Multiple states share a
// digit, so the mapping is approximate, never authoritative.
var zipDigitStates = map[byte]string{
	'0': "MA",
	'1': "NY",
	'2': "VA",
	'3': "FL",
	'4': "OH",
	'5': "MN",
	'6': "IL",
	'7': "TX",
	'8': "CO",
	'9': "CA",
}

// AnalyticsService produces the admin demographics dashboard payload.
//
// It scans the whole user table per request; acceptable only at small
// volume.
type AnalyticsService struct {
	users repositories.UserRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(users repositories.UserRepository) *AnalyticsService {
	return &AnalyticsService{users: users}
}

// Report buckets every user by demographic dimension and by attributed
// state, with per-state demographic breakdowns nested inside.
func (s *AnalyticsService) Report(ctx context.Context) (*entities.AnalyticsReport, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &entities.AnalyticsReport{
		TotalUsers:   len(users),
		Demographics: buildDemographics(users),
		Geographic:   buildGeographic(users),
	}
	return report, nil
}

func buildDemographics(users []*entities.User) entities.DemographicBreakdown {
	ageGroups := map[string]int{}
	genders := map[string]int{}
	races := map[string]int{}
	orientations := map[string]int{}
	interests := map[string]int{}

	for _, u := range users {
		countIf(ageGroups, u.AgeGroup)
		countIf(genders, u.Gender)
		countIf(races, u.RaceEthnicity)
		countIf(orientations, u.SexualOrientation)
		// Interests are many-to-many: each tag counts once per user.
		for _, tag := range u.ResourceInterests {
			countIf(interests, tag)
		}
	}

	return entities.DemographicBreakdown{
		AgeGroups:          toBuckets(ageGroups),
		Genders:            toBuckets(genders),
		RaceEthnicities:    toBuckets(races),
		SexualOrientations: toBuckets(orientations),
		ResourceInterests:  toBuckets(interests),
	}
}

func buildGeographic(users []*entities.User) []entities.StateBreakdown {
	byState := map[string][]*entities.User{}
	for _, u := range users {
		state := attributeState(u)
		if state == "" {
			continue
		}
		byState[state] = append(byState[state], u)
	}

	breakdowns := make([]entities.StateBreakdown, 0, len(byState))
	for state, stateUsers := range byState {
		breakdowns = append(breakdowns, entities.StateBreakdown{
			State:        state,
			Count:        len(stateUsers),
			Demographics: buildDemographics(stateUsers),
		})
	}

	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].Count != breakdowns[j].Count {
			return breakdowns[i].Count > breakdowns[j].Count
		}
		return breakdowns[i].State < breakdowns[j].State
	})
	return breakdowns
}

// attributeState prefers the explicit state field and falls back to the
// zip-digit heuristic. Users with neither are left out of the geographic
// distribution.
func attributeState(u *entities.User) string {
	if u.State != "" {
		return u.State
	}
	if u.Zipcode != "" {
		if state, ok := zipDigitStates[u.Zipcode[0]]; ok {
			return state
		}
	}
	return ""
}

func countIf(counts map[string]int, label string) {
	if label != "" {
		counts[label]++
	}
}

// toBuckets converts a count map to a descending-ordered bucket list with
// percentages over the dimension total.
func toBuckets(counts map[string]int) []entities.BucketCount {
	total := 0
	for _, c := range counts {
		total += c
	}

	buckets := make([]entities.BucketCount, 0, len(counts))
	for label, count := range counts {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(count)/float64(total)*1000) / 10
		}
		buckets = append(buckets, entities.BucketCount{
			Label:      label,
			Count:      count,
			Percentage: pct,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}
