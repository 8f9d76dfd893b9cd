package entities

// BucketCount is one label within a demographic dimension with its
// absolute count and share of the dimension total.
type BucketCount struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DemographicBreakdown groups users across every demographic dimension.
// Buckets within a dimension are sorted descending by count.
type DemographicBreakdown struct {
	AgeGroups          []BucketCount `json:"age_groups"`
	Genders            []BucketCount `json:"genders"`
	RaceEthnicities    []BucketCount `json:"race_ethnicities"`
	SexualOrientations []BucketCount `json:"sexual_orientations"`
	ResourceInterests  []BucketCount `json:"resource_interests"`
}

// StateBreakdown nests the demographic dimensions for users attributed to
// one state.
type StateBreakdown struct {
	State        string               `json:"state"`
	Count        int                  `json:"count"`
	Demographics DemographicBreakdown `json:"demographics"`
}

// AnalyticsReport is the full dashboard payload.
type AnalyticsReport struct {
	TotalUsers   int                  `json:"total_users"`
	Demographics DemographicBreakdown `json:"demographics"`
	Geographic   []StateBreakdown     `json:"geographic"`
}
