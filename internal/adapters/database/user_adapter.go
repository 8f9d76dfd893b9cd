package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/postgres"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

const userColumns = `
	id, email, password_hash, name, role, is_active, managed_resource_id,
	age_group, gender, race_ethnicity, sexual_orientation, zipcode, state,
	resource_interests, otp_secret, otp_expiry, created_at, updated_at
`

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{client: client}
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, name, role, is_active, managed_resource_id,
			age_group, gender, race_ethnicity, sexual_orientation, zipcode, state,
			resource_interests, otp_secret, otp_expiry, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
		user.IsActive,
		nullString(user.ManagedResourceID),
		user.AgeGroup,
		user.Gender,
		user.RaceEthnicity,
		user.SexualOrientation,
		user.Zipcode,
		user.State,
		pq.Array(user.ResourceInterests),
		user.OTPSecret,
		nullTime(user.OTPExpiry),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("email already registered")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

// Update updates a user's profile, role and activation state
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET
			email = $2, name = $3, role = $4, is_active = $5, managed_resource_id = $6,
			age_group = $7, gender = $8, race_ethnicity = $9, sexual_orientation = $10,
			zipcode = $11, state = $12, resource_interests = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := a.client.DB().ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		user.IsActive,
		nullString(user.ManagedResourceID),
		user.AgeGroup,
		user.Gender,
		user.RaceEthnicity,
		user.SexualOrientation,
		user.Zipcode,
		user.State,
		pq.Array(user.ResourceInterests),
		user.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to update user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", user.ID))
	}

	return nil
}

// List returns every user, oldest first.
func (a *UserAdapter) List(ctx context.Context) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate users", err)
	}
	return users, nil
}

// UpdatePassword replaces the stored password hash
func (a *UserAdapter) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`

	result, err := a.client.DB().ExecContext(ctx, query, id, passwordHash, time.Now())
	if err != nil {
		return apperrors.NewInternalError("failed to update password", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	return nil
}

// SetOTP stores a pending one-time code and its expiry
func (a *UserAdapter) SetOTP(ctx context.Context, id, secret string, expiry time.Time) error {
	query := `UPDATE users SET otp_secret = $2, otp_expiry = $3, updated_at = $4 WHERE id = $1`

	if _, err := a.client.DB().ExecContext(ctx, query, id, secret, expiry, time.Now()); err != nil {
		return apperrors.NewInternalError("failed to set otp", err)
	}
	return nil
}

// ClearOTP discards any pending one-time code
func (a *UserAdapter) ClearOTP(ctx context.Context, id string) error {
	query := `UPDATE users SET otp_secret = '', otp_expiry = NULL, updated_at = $2 WHERE id = $1`

	if _, err := a.client.DB().ExecContext(ctx, query, id, time.Now()); err != nil {
		return apperrors.NewInternalError("failed to clear otp", err)
	}
	return nil
}

func scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var managedResourceID sql.NullString
	var otpExpiry sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.IsActive,
		&managedResourceID,
		&user.AgeGroup,
		&user.Gender,
		&user.RaceEthnicity,
		&user.SexualOrientation,
		&user.Zipcode,
		&user.State,
		pq.Array(&user.ResourceInterests),
		&user.OTPSecret,
		&otpExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if managedResourceID.Valid {
		user.ManagedResourceID = &managedResourceID.String
	}
	if otpExpiry.Valid {
		t := otpExpiry.Time
		user.OTPExpiry = &t
	}
	if user.ResourceInterests == nil {
		user.ResourceInterests = []string{}
	}
	return user, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
