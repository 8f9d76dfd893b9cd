package entities

import (
	"math"
	"time"
)

// Rating values stored in the ratings table.
const (
	RatingUp   = 1
	RatingDown = -1
)

// Rating is one user's up/down vote on a resource. Absence of a row means
// the user has not rated the resource.
type Rating struct {
	UserID     string    `json:"user_id" db:"user_id"`
	ResourceID string    `json:"resource_id" db:"resource_id"`
	Value      int       `json:"value" db:"value"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Favorite marks a resource as favorited by a user. Row existence is the
// whole state.
type Favorite struct {
	UserID     string    `json:"user_id" db:"user_id"`
	ResourceID string    `json:"resource_id" db:"resource_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// RatingTally holds the aggregate vote counts for a resource.
type RatingTally struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// ApprovalPercentage returns upvotes over total votes rounded to the
// nearest integer, or 0 when there are no votes.
func (t RatingTally) ApprovalPercentage() int {
	total := t.Upvotes + t.Downvotes
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(t.Upvotes) / float64(total) * 100))
}

// NetVotes is the cached upvote_count written back to the resource.
func (t RatingTally) NetVotes() int {
	return t.Upvotes - t.Downvotes
}
