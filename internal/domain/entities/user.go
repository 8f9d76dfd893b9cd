package entities

import "time"

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleUser        Role = "user"
	RoleAdmin       Role = "admin"
	RoleBusinessRep Role = "business_rep"
)

// User represents an account in the system.
//
// Invariant: Role == RoleBusinessRep implies ManagedResourceID is set; any
// other role implies it is nil. The user service enforces this on every
// write.
type User struct {
	ID                string     `json:"id" db:"id"`
	Email             string     `json:"email" db:"email"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	Name              string     `json:"name" db:"name"`
	Role              Role       `json:"role" db:"role"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	ManagedResourceID *string    `json:"managed_resource_id,omitempty" db:"managed_resource_id"`
	AgeGroup          string     `json:"age_group" db:"age_group"`
	Gender            string     `json:"gender" db:"gender"`
	RaceEthnicity     string     `json:"race_ethnicity" db:"race_ethnicity"`
	SexualOrientation string     `json:"sexual_orientation" db:"sexual_orientation"`
	Zipcode           string     `json:"zipcode" db:"zipcode"`
	State             string     `json:"state" db:"state"`
	ResourceInterests []string   `json:"resource_interests" db:"resource_interests"`
	OTPSecret         string     `json:"-" db:"otp_secret"`
	OTPExpiry         *time.Time `json:"-" db:"otp_expiry"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}
