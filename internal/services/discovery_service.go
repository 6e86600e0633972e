package services

import (
	"context"

	"designmatch_backend/internal/cache"
	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/pkg/apperrors"
)

const (
	defaultDiscoveryLimit = 20
	maxDiscoveryLimit     = 100
)

type DiscoveryService interface {
	DiscoverDesigners(ctx context.Context, req *dto.DiscoverDesignersRequest) (*dto.DiscoverDesignersResponse, error)
}

type DiscoveryServiceImpl struct {
	profileRepo repositories.ProfileRepository
	cache       *cache.DiscoveryCache // nil when Redis is disabled
}

func NewDiscoveryService(profileRepo repositories.ProfileRepository, discoveryCache *cache.DiscoveryCache) DiscoveryService {
	return &DiscoveryServiceImpl{
		profileRepo: profileRepo,
		cache:       discoveryCache,
	}
}

// DiscoverDesigners lists designer profiles matching the filters.
// Only profiles with a bio and at least one skill are listed; the
// same filters always hit the same cache entry.
func (s *DiscoveryServiceImpl) DiscoverDesigners(ctx context.Context, req *dto.DiscoverDesignersRequest) (*dto.DiscoverDesignersResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultDiscoveryLimit
	}
	if limit > maxDiscoveryLimit {
		limit = maxDiscoveryLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	if req.RateRange != "" {
		if _, _, _, err := repositories.ParseRateRange(req.RateRange); err != nil {
			return nil, apperrors.NewBadRequestError("Invalid rate range filter")
		}
	}

	filter := repositories.DesignerFilter{
		Search:    req.Search,
		Skill:     req.Skill,
		RateRange: req.RateRange,
		Limit:     limit,
		Offset:    offset,
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, filter)
		if err != nil {
			logger.CtxWithError(ctx, "Discovery cache read failed", err)
		} else if cached != nil {
			return buildDiscoveryResponse(cached.Profiles, cached.Total, limit, offset), nil
		}
	}

	profiles, total, err := s.profileRepo.FindDesigners(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, filter, &cache.CachedDesigners{Profiles: profiles, Total: total}); err != nil {
			logger.CtxWithError(ctx, "Discovery cache write failed", err)
		}
	}

	return buildDiscoveryResponse(profiles, total, limit, offset), nil
}

func buildDiscoveryResponse(profiles []models.UserProfile, total int64, limit, offset int) *dto.DiscoverDesignersResponse {
	designers := make([]dto.ProfileDTO, 0, len(profiles))
	for i := range profiles {
		designers = append(designers, dto.NewProfileDTO(&profiles[i]))
	}
	return &dto.DiscoverDesignersResponse{
		Designers: designers,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}
}
