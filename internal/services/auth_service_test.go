package services_test

import (
	"context"
	"testing"
	"time"

	"designmatch_backend/internal/models"
	"designmatch_backend/internal/services"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc      services.AuthService
	users    *stubUserRepo
	profiles *stubProfileRepo
	emails   *stubEmailService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newStubUserRepo(),
		profiles: newStubProfileRepo(),
		emails:   &stubEmailService{},
	}
	f.svc = services.NewAuthService(f.users, f.profiles, f.emails)
	return f
}

func (f *authFixture) register(t *testing.T, email string, userType models.UserType) *models.User {
	t.Helper()
	require.NoError(t, f.svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    email,
		Password: "correct-horse-battery",
		UserType: userType,
		FullName: "Sam Example",
	}))
	user, err := f.users.FindByEmail(email)
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)

	assert.Equal(t, models.UserStatusPending, user.Status)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.VerificationToken)
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)

	// Profile is created alongside the account.
	profile, err := f.profiles.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeClient, profile.UserType)
	assert.Equal(t, "Sam Example", profile.FullName)

	// Verification email carries the token.
	require.Len(t, f.emails.sent, 1)
	assert.Equal(t, "verification", f.emails.sent[0].kind)
	assert.Equal(t, user.VerificationToken, f.emails.sent[0].token)
}

func TestRegister_Rejections(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "weak@example.com", Password: "short", UserType: models.UserTypeClient, FullName: "W",
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	err = f.svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "admin@example.com", Password: "long-enough-password", UserType: models.UserTypeAdmin, FullName: "A",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserType, "admins are seeded, never self-registered")

	f.register(t, "taken@example.com", models.UserTypeDesigner)
	err = f.svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "taken@example.com", Password: "long-enough-password", UserType: models.UserTypeClient, FullName: "T",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)
	require.NoError(t, f.svc.VerifyEmail(context.Background(), user.VerificationToken))

	resp, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "sam@example.com", Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)

	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "sam@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown accounts get the same error as bad passwords.
	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@example.com", Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshToken_Rotation(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	f.register(t, "sam@example.com", models.UserTypeClient)
	resp, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "sam@example.com", Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	next, err := f.svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, next.RefreshToken)

	// The presented token is single-use.
	_, err = f.svc.RefreshToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefreshToken_Expired(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)
	require.NoError(t, f.users.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := f.svc.RefreshToken(context.Background(), "expired-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// The dead token is reaped on the way out.
	_, err = f.users.FindRefreshToken("expired-token")
	assert.Error(t, err)
}

func TestVerifyEmail(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)
	require.NoError(t, f.svc.VerifyEmail(context.Background(), user.VerificationToken))

	assert.True(t, user.IsVerified)
	assert.Equal(t, models.UserStatusActive, user.Status)

	assert.ErrorIs(t, f.svc.VerifyEmail(context.Background(), "bogus"), apperrors.ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)

	// Unknown addresses are silently accepted.
	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
	assert.Len(t, f.emails.sent, 1, "no reset email for unknown addresses")

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "sam@example.com"))
	require.Len(t, f.emails.sent, 2)
	token := f.emails.sent[1].token
	require.NotEmpty(t, token)

	require.NoError(t, f.svc.ResetPassword(context.Background(), token, "brand-new-password"))

	// Old password is gone, new one works, token is spent.
	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{Email: "sam@example.com", Password: "correct-horse-battery"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{Email: "sam@example.com", Password: "brand-new-password"})
	assert.NoError(t, err)
	assert.ErrorIs(t, f.svc.ResetPassword(context.Background(), token, "another-password"), apperrors.ErrInvalidToken)
	_ = user
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)
	exp := time.Now().Add(-time.Minute)
	user.ResetToken = "stale-token"
	user.ResetTokenExp = &exp

	err := f.svc.ResetPassword(context.Background(), "stale-token", "brand-new-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)

	err := f.svc.ChangePassword(context.Background(), user.ID, "wrong-current", "next-password-123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = f.svc.ChangePassword(context.Background(), user.ID, "correct-horse-battery", "short")
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	require.NoError(t, f.svc.ChangePassword(context.Background(), user.ID, "correct-horse-battery", "next-password-123"))
	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{Email: "sam@example.com", Password: "next-password-123"})
	assert.NoError(t, err)
}

func TestDeactivate(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)
	resp, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "sam@example.com", Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	// Anything but the exact literal is refused.
	for _, confirmation := range []string{"", "deactivate", "Deactivate", "DEACTIVATE "} {
		err := f.svc.Deactivate(context.Background(), user.ID, confirmation)
		assert.ErrorIs(t, err, apperrors.ErrDeactivateConfirmation, "confirmation %q", confirmation)
	}
	assert.NotEqual(t, models.UserStatusDeactivated, user.Status)

	require.NoError(t, f.svc.Deactivate(context.Background(), user.ID, "DEACTIVATE"))
	assert.Equal(t, models.UserStatusDeactivated, user.Status)
	assert.NotNil(t, user.DeactivatedAt)

	// Sessions are revoked and the account no longer logs in.
	_, err = f.svc.RefreshToken(context.Background(), resp.RefreshToken)
	assert.Error(t, err)
	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{Email: "sam@example.com", Password: "correct-horse-battery"})
	assert.ErrorIs(t, err, apperrors.ErrUserDeactivated)
}

func TestAuthStatus(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeDesigner)

	status, err := f.svc.AuthStatus(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	assert.Equal(t, models.UserTypeDesigner, status.UserType)

	status, err = f.svc.AuthStatus(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, status.Authenticated)
}

func TestCheckUserStatus(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)

	status, err := f.svc.CheckUserStatus(context.Background(), "sam@example.com")
	require.NoError(t, err)
	assert.True(t, status.Found)
	assert.Equal(t, user.ID, status.UserID)
	assert.Equal(t, models.UserStatusPending, status.Status)
	assert.False(t, status.IsVerified)

	status, err = f.svc.CheckUserStatus(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, status.Found)
	assert.Empty(t, status.UserID)
}

func TestConfirmUserByEmail(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	user := f.register(t, "sam@example.com", models.UserTypeClient)
	require.False(t, user.IsVerified)

	require.NoError(t, f.svc.ConfirmUserByEmail(context.Background(), "sam@example.com"))
	assert.True(t, f.users.users[user.ID].IsVerified)
	assert.Equal(t, models.UserStatusActive, f.users.users[user.ID].Status)

	// Confirming twice is harmless.
	require.NoError(t, f.svc.ConfirmUserByEmail(context.Background(), "sam@example.com"))

	err := f.svc.ConfirmUserByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
