package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
)

func TestAnalyticsService_Report_Demographics(t *testing.T) {
	repo := newStubUserRepo(
		&entities.User{ID: "u1", AgeGroup: "18-24", Gender: "female", ResourceInterests: []string{"housing", "mental-health"}},
		&entities.User{ID: "u2", AgeGroup: "18-24", Gender: "male", ResourceInterests: []string{"housing"}},
		&entities.User{ID: "u3", AgeGroup: "25-34"},
	)
	svc := services.NewAnalyticsService(repo)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalUsers)

	require.Len(t, report.Demographics.AgeGroups, 2)
	assert.Equal(t, "18-24", report.Demographics.AgeGroups[0].Label)
	assert.Equal(t, 2, report.Demographics.AgeGroups[0].Count)
	assert.InDelta(t, 66.7, report.Demographics.AgeGroups[0].Percentage, 0.05)

	// Each interest tag counts once per user.
	require.Len(t, report.Demographics.ResourceInterests, 2)
	assert.Equal(t, "housing", report.Demographics.ResourceInterests[0].Label)
	assert.Equal(t, 2, report.Demographics.ResourceInterests[0].Count)
}

func TestAnalyticsService_Report_StateAttribution(t *testing.T) {
	repo := newStubUserRepo(
		// Explicit state wins over the zip digit.
		&entities.User{ID: "u1", State: "WA", Zipcode: "10001"},
		// Zip starting with 1 falls back to NY.
		&entities.User{ID: "u2", Zipcode: "10001"},
		&entities.User{ID: "u3", Zipcode: "11201"},
		// Zip starting with 9 falls back to CA.
		&entities.User{ID: "u4", Zipcode: "90210"},
		// No state and no zipcode: excluded from geographic distribution.
		&entities.User{ID: "u5"},
	)
	svc := services.NewAnalyticsService(repo)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)

	byState := map[string]int{}
	total := 0
	for _, b := range report.Geographic {
		byState[b.State] = b.Count
		total += b.Count
	}

	assert.Equal(t, 2, byState["NY"])
	assert.Equal(t, 1, byState["CA"])
	assert.Equal(t, 1, byState["WA"])
	// Sum of per-state counts equals users with a state or zipcode.
	assert.Equal(t, 4, total)

	// Sorted descending by count.
	assert.Equal(t, "NY", report.Geographic[0].State)
}

func TestAnalyticsService_Report_NestedStateDemographics(t *testing.T) {
	repo := newStubUserRepo(
		&entities.User{ID: "u1", Zipcode: "10001", Gender: "female"},
		&entities.User{ID: "u2", Zipcode: "10002", Gender: "female"},
		&entities.User{ID: "u3", Zipcode: "90001", Gender: "male"},
	)
	svc := services.NewAnalyticsService(repo)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)

	for _, b := range report.Geographic {
		if b.State == "NY" {
			require.Len(t, b.Demographics.Genders, 1)
			assert.Equal(t, "female", b.Demographics.Genders[0].Label)
			assert.Equal(t, 2, b.Demographics.Genders[0].Count)
			assert.InDelta(t, 100.0, b.Demographics.Genders[0].Percentage, 0.01)
		}
	}
}

func TestAnalyticsService_Report_EmptyUserTable(t *testing.T) {
	svc := services.NewAnalyticsService(newStubUserRepo())

	report, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalUsers)
	assert.Empty(t, report.Geographic)
	assert.Empty(t, report.Demographics.AgeGroups)
}
