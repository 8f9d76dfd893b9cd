package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

const otpValidity = 10 * time.Minute

// AuthService handles registration, login and the OTP-verified password
// change flow.
type AuthService struct {
	users repositories.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a regular user account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("a valid email is required")
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Role:         entities.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. Frozen accounts cannot log in. The same
// unauthorized error covers unknown email and wrong password so the
// response does not reveal which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeNotFound {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("account is deactivated")
	}
	return user, nil
}

// RequestPasswordChange issues a fresh OTP for the user and stores it with
// a ten minute expiry. Delivery is out of band; here the code is only
// logged.
func (s *AuthService) RequestPasswordChange(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return apperrors.NewInternalError("failed to generate verification code", err)
	}

	expiry := time.Now().UTC().Add(otpValidity)
	if err := s.users.SetOTP(ctx, user.ID, code, expiry); err != nil {
		return err
	}

	// TODO: send the code by email once a mail provider is wired up.
	log.Printf("password change verification code for user %s issued (expires %s)", user.ID, expiry.Format(time.RFC3339))
	return nil
}

// ChangePassword verifies the OTP and replaces the password. The OTP is
// single-use: it is cleared on success.
func (s *AuthService) ChangePassword(ctx context.Context, userID, code, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.OTPSecret == "" || user.OTPExpiry == nil {
		return apperrors.NewValidationError("no verification code requested")
	}
	if time.Now().UTC().After(*user.OTPExpiry) {
		return apperrors.NewValidationError("verification code expired")
	}
	if user.OTPSecret != code {
		return apperrors.NewValidationError("invalid verification code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	return s.users.ClearOTP(ctx, user.ID)
}

// generateOTP returns a six digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
