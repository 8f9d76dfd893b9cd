package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advocacy-resources/advo-sub001/internal/application/services"
	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	apperrors "github.com/advocacy-resources/advo-sub001/pkg/errors"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := services.NewAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alex@Example.com", "hunter2hunter2", "Alex")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", user.Email)
	assert.Equal(t, entities.RoleUser, user.Role)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	loggedIn, err := svc.Login(ctx, "alex@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := services.NewAuthService(newStubUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "hunter2hunter2", "Alex")
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	_, err = svc.Register(ctx, "a@b.com", "short", "Alex")
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := services.NewAuthService(newStubUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "hunter2hunter2", "First")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@b.com", "hunter2hunter2", "Second")
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := services.NewAuthService(newStubUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "hunter2hunter2", "Alex")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.com", "wrong-password")
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.TypeOf(err))

	// Unknown email yields the same error type as a wrong password.
	_, err = svc.Login(ctx, "nobody@b.com", "whatever")
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.TypeOf(err))
}

func TestAuthService_Login_FrozenAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := services.NewAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@b.com", "hunter2hunter2", "Alex")
	require.NoError(t, err)
	user.IsActive = false

	_, err = svc.Login(ctx, "a@b.com", "hunter2hunter2")
	assert.Equal(t, apperrors.ErrorTypeForbidden, apperrors.TypeOf(err))
}

func TestAuthService_PasswordChangeWithOTP(t *testing.T) {
	repo := newStubUserRepo()
	svc := services.NewAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@b.com", "hunter2hunter2", "Alex")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordChange(ctx, user.ID))
	require.Len(t, user.OTPSecret, 6)

	// Wrong code is rejected.
	err = svc.ChangePassword(ctx, user.ID, "000000x", "newpassword99")
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	require.NoError(t, svc.ChangePassword(ctx, user.ID, user.OTPSecret, "newpassword99"))

	// OTP is single-use.
	assert.Empty(t, user.OTPSecret)

	_, err = svc.Login(ctx, "a@b.com", "newpassword99")
	assert.NoError(t, err)
}

func TestAuthService_ChangePassword_ExpiredOTP(t *testing.T) {
	repo := newStubUserRepo()
	svc := services.NewAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@b.com", "hunter2hunter2", "Alex")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordChange(ctx, user.ID))
	expired := time.Now().UTC().Add(-time.Minute)
	user.OTPExpiry = &expired

	err = svc.ChangePassword(ctx, user.ID, user.OTPSecret, "newpassword99")
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestAuthService_ChangePassword_WithoutRequest(t *testing.T) {
	repo := newStubUserRepo()
	svc := services.NewAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@b.com", "hunter2hunter2", "Alex")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "123456", "newpassword99")
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}
