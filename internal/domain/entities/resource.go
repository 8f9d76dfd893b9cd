package entities

import "time"

// Contact holds the ways to reach a resource.
type Contact struct {
	Phone   string `json:"phone" db:"phone"`
	Email   string `json:"email" db:"email"`
	Website string `json:"website" db:"website"`
}

// Address holds the physical location of a resource.
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	State   string `json:"state" db:"state"`
	ZipCode string `json:"zip_code" db:"zip_code"`
}

// Location holds geographic coordinates. A zero-value location means the
// address has not been geocoded; it is never a valid position.
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// IsZero reports whether the location is the unresolved sentinel.
func (l Location) IsZero() bool {
	return l.Latitude == 0 && l.Longitude == 0
}

// DayHours holds the open/close times for one weekday, formatted "HH:MM".
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// OperatingHours maps lowercase weekday names to hours.
type OperatingHours map[string]DayHours

// Resource represents a listed community service or organization entry.
type Resource struct {
	ID                    string         `json:"id" db:"id"`
	Name                  string         `json:"name" db:"name"`
	Description           string         `json:"description" db:"description"`
	Categories            []string       `json:"categories" db:"categories"`
	Contact               Contact        `json:"contact"`
	Address               Address        `json:"address"`
	Location              Location       `json:"location"`
	OperatingHours        OperatingHours `json:"operating_hours"`
	EligibilityCriteria   string         `json:"eligibility_criteria" db:"eligibility_criteria"`
	ServicesProvided      []string       `json:"services_provided" db:"services_provided"`
	TargetAudience        []string       `json:"target_audience" db:"target_audience"`
	AccessibilityFeatures []string       `json:"accessibility_features" db:"accessibility_features"`
	Cost                  string         `json:"cost" db:"cost"`
	Tags                  []string       `json:"tags" db:"tags"`
	FavoriteCount         int            `json:"favorite_count" db:"favorite_count"`
	UpvoteCount           int            `json:"upvote_count" db:"upvote_count"`
	ProfilePhotoURL       string         `json:"profile_photo_url" db:"profile_photo_url"`
	BannerImageURL        string         `json:"banner_image_url" db:"banner_image_url"`
	IsActive              bool           `json:"is_active" db:"is_active"`
	CreatedAt             time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at" db:"updated_at"`
}

// Normalize replaces nil collections with empty ones so JSON consumers never
// see null where they expect an array or object.
func (r *Resource) Normalize() {
	if r.Categories == nil {
		r.Categories = []string{}
	}
	if r.ServicesProvided == nil {
		r.ServicesProvided = []string{}
	}
	if r.TargetAudience == nil {
		r.TargetAudience = []string{}
	}
	if r.AccessibilityFeatures == nil {
		r.AccessibilityFeatures = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.OperatingHours == nil {
		r.OperatingHours = OperatingHours{}
	}
}

// HasCategory reports whether the resource carries the given category tag.
func (r *Resource) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}
