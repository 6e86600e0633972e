package services

import (
	"context"

	"designmatch_backend/internal/cache"
	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/pkg/apperrors"

	"github.com/lib/pq"
)

type ProfileService interface {
	GetByUserID(ctx context.Context, userID string) (*dto.ProfileDTO, error)
	Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileDTO, error)
	SwitchUserType(ctx context.Context, userID string, userType models.UserType) (*dto.ProfileDTO, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	cache       *cache.DiscoveryCache // nil when Redis is disabled
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	discoveryCache *cache.DiscoveryCache,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		cache:       discoveryCache,
	}
}

func (s *ProfileServiceImpl) GetByUserID(ctx context.Context, userID string) (*dto.ProfileDTO, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	result := dto.NewProfileDTO(profile)
	return &result, nil
}

// Update applies a partial profile update. Designer listings are
// cached, so any change invalidates the discovery cache.
func (s *ProfileServiceImpl) Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileDTO, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Skills != nil {
		profile.Skills = pq.StringArray(req.Skills)
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = *req.HourlyRate
	}
	if req.PortfolioURL != nil {
		profile.PortfolioURL = *req.PortfolioURL
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.invalidateDiscovery(ctx)

	result := dto.NewProfileDTO(profile)
	return &result, nil
}

// SwitchUserType flips an account between the client and designer
// roles. Both the account and the profile carry the type; they are
// updated together.
func (s *ProfileServiceImpl) SwitchUserType(ctx context.Context, userID string, userType models.UserType) (*dto.ProfileDTO, error) {
	if userType != models.UserTypeClient && userType != models.UserTypeDesigner {
		return nil, apperrors.ErrInvalidUserType
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	user.UserType = userType
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.profileRepo.UpdateUserType(userID, userType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.invalidateDiscovery(ctx)

	return s.GetByUserID(ctx, userID)
}

func (s *ProfileServiceImpl) invalidateDiscovery(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.CtxWithError(ctx, "Failed to invalidate discovery cache", err)
	}
}
