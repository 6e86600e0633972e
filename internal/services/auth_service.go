package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"designmatch_backend/internal/auth"
	"designmatch_backend/internal/config"
	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/pkg/apperrors"
)

// DeactivateConfirmation is the literal the client must type to
// deactivate an account.
const DeactivateConfirmation = "DEACTIVATE"

const resetTokenTTL = time.Hour

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	Deactivate(ctx context.Context, userID, confirmation string) error
	AuthStatus(ctx context.Context, userID string) (*dto.AuthStatusResponse, error)
	CheckUserStatus(ctx context.Context, emailAddr string) (*dto.UserStatusResponse, error)
	ConfirmUserByEmail(ctx context.Context, emailAddr string) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	emailSvc    EmailService
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	emailSvc EmailService,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
	}
}

// Register creates a pending account with its profile and sends the
// verification email.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}
	if req.UserType != models.UserTypeClient && req.UserType != models.UserTypeDesigner {
		return apperrors.ErrInvalidUserType
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	verificationToken := generateRandomToken()

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		UserType:          req.UserType,
		Status:            models.UserStatusPending,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	profile := &models.UserProfile{
		UserID:   user.ID,
		UserType: req.UserType,
		FullName: req.FullName,
		Email:    req.Email,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return apperrors.InternalError(err)
	}

	// Registration succeeds even when the email fails; the token can be
	// re-sent later.
	if err := s.emailSvc.SendVerificationEmail(ctx, user.Email, req.FullName, verificationToken); err != nil {
		logger.CtxWithError(ctx, "Failed to send verification email", err, "user_id", user.ID)
	}

	return nil
}

// Login authenticates credentials and issues a token pair.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusDeactivated {
		return nil, apperrors.ErrUserDeactivated
	}

	return s.issueTokens(user)
}

// RefreshToken rotates a refresh token into a fresh pair.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if stored.ExpiresAt.Before(time.Now()) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if user.Status == models.UserStatusDeactivated {
		return nil, apperrors.ErrUserDeactivated
	}

	// Rotation: the presented token is single-use.
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

// Logout revokes a refresh token.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyEmail confirms the account behind a verification token and
// activates it.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if err := s.userRepo.VerifyUser(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// RequestPasswordReset issues a reset token and emails it. Unknown
// addresses are ignored so the endpoint cannot be used to probe for
// accounts.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token := generateRandomToken()
	exp := time.Now().Add(resetTokenTTL)
	user.ResetToken = token
	user.ResetTokenExp = &exp
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	fullName := user.Email
	if user.Profile != nil {
		fullName = user.Profile.FullName
	}
	if err := s.emailSvc.SendPasswordResetEmail(ctx, user.Email, fullName, token); err != nil {
		logger.CtxWithError(ctx, "Failed to send password reset email", err, "user_id", user.ID)
	}

	return nil
}

// ResetPassword completes the reset flow and revokes every session.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if user.ResetTokenExp == nil || user.ResetTokenExp.Before(time.Now()) {
		return apperrors.ErrInvalidToken
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashed
	user.ResetToken = ""
	user.ResetTokenExp = nil
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.DeleteUserRefreshTokens(user.ID); err != nil {
		logger.CtxWithError(ctx, "Failed to revoke refresh tokens after reset", err, "user_id", user.ID)
	}
	return nil
}

// ChangePassword verifies the current password before replacing it.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashed
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Deactivate disables the account after the literal confirmation and
// revokes all sessions.
func (s *AuthServiceImpl) Deactivate(ctx context.Context, userID, confirmation string) error {
	if confirmation != DeactivateConfirmation {
		return apperrors.ErrDeactivateConfirmation
	}

	if err := s.userRepo.Deactivate(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
		logger.CtxWithError(ctx, "Failed to revoke refresh tokens on deactivation", err, "user_id", userID)
	}
	return nil
}

// AuthStatus reports the current session's account details.
func (s *AuthServiceImpl) AuthStatus(ctx context.Context, userID string) (*dto.AuthStatusResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return &dto.AuthStatusResponse{Authenticated: false}, nil
	}
	return &dto.AuthStatusResponse{
		Authenticated: true,
		UserID:        user.ID,
		UserType:      user.UserType,
		Email:         user.Email,
		IsVerified:    user.IsVerified,
	}, nil
}

// CheckUserStatus looks up an account by email for support tooling.
// Unknown addresses are reported, not an error; only admins reach this.
func (s *AuthServiceImpl) CheckUserStatus(ctx context.Context, emailAddr string) (*dto.UserStatusResponse, error) {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return &dto.UserStatusResponse{Found: false}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	createdAt := user.CreatedAt
	return &dto.UserStatusResponse{
		Found:      true,
		UserID:     user.ID,
		Email:      user.Email,
		UserType:   user.UserType,
		Status:     user.Status,
		IsVerified: user.IsVerified,
		CreatedAt:  &createdAt,
	}, nil
}

// ConfirmUserByEmail force-verifies an account when the verification
// email never arrived.
func (s *AuthServiceImpl) ConfirmUserByEmail(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if user.IsVerified {
		return nil
	}
	if err := s.userRepo.VerifyUser(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "User confirmed by admin", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.UserType))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := generateRandomToken()
	cfg := config.GetConfig()
	rt := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(time.Duration(cfg.JWT.RefreshTTL) * time.Hour),
	}
	if err := s.userRepo.CreateRefreshToken(rt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserDTO(user),
	}, nil
}

func generateRandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process cannot do anything
		// security-sensitive at all
		panic(err)
	}
	return hex.EncodeToString(b)
}
