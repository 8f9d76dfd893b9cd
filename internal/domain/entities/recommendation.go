package entities

import "time"

// Recommendation types.
const (
	RecommendationTypeState    = "state"
	RecommendationTypeNational = "national"
)

// RecommendationStatus is the triage state of a suggestion.
type RecommendationStatus string

const (
	RecommendationPending  RecommendationStatus = "pending"
	RecommendationApproved RecommendationStatus = "approved"
	RecommendationRejected RecommendationStatus = "rejected"
)

// ResourceRecommendation is a user-submitted suggestion for a new resource.
// Status only ever moves pending -> approved or pending -> rejected.
type ResourceRecommendation struct {
	ID          string               `json:"id" db:"id"`
	Name        string               `json:"name" db:"name"`
	Type        string               `json:"type" db:"type"`
	State       string               `json:"state" db:"state"`
	Description string               `json:"description" db:"description"`
	Category    string               `json:"category" db:"category"`
	Note        string               `json:"note" db:"note"`
	Contact     Contact              `json:"contact"`
	Address     Address              `json:"address"`
	SubmittedBy string               `json:"submitted_by" db:"submitted_by"`
	Email       string               `json:"email" db:"email"`
	Status      RecommendationStatus `json:"status" db:"status"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" db:"updated_at"`
}
