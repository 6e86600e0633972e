package repositories

import (
	"errors"
	"fmt"
	"strings"

	"designmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// DesignerFilter holds server-side discovery predicates. All active
// predicates are combined with AND semantics.
type DesignerFilter struct {
	Search    string // case-insensitive substring over name/bio/skills
	Skill     string // exact skill membership
	RateRange string // "0-25", "25-50", "50-100", "100+"
	Limit     int
	Offset    int
}

type ProfileRepository interface {
	FindByUserID(userID string) (*models.UserProfile, error)
	FindByID(id string) (*models.UserProfile, error)
	Create(profile *models.UserProfile) error
	Update(profile *models.UserProfile) error
	UpdateUserType(userID string, userType models.UserType) error
	FindDesigners(filter DesignerFilter) ([]models.UserProfile, int64, error)
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByID(id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Create(profile *models.UserProfile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) Update(profile *models.UserProfile) error {
	return r.db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) UpdateUserType(userID string, userType models.UserType) error {
	result := r.db.Model(&models.UserProfile{}).Where("user_id = ?", userID).Update("user_type", userType)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// FindDesigners lists designer profiles with a filled-in bio and skills,
// applying the discovery filters in SQL.
func (r *ProfileRepositoryImpl) FindDesigners(filter DesignerFilter) ([]models.UserProfile, int64, error) {
	query := r.db.Model(&models.UserProfile{}).
		Where("user_type = ?", models.UserTypeDesigner).
		Where("bio <> ''").
		Where("skills IS NOT NULL AND array_length(skills, 1) > 0")

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(bio) LIKE ? OR EXISTS (SELECT 1 FROM unnest(skills) AS s WHERE LOWER(s) LIKE ?)",
			pattern, pattern, pattern,
		)
	}

	if filter.Skill != "" {
		query = query.Where("? = ANY(skills)", filter.Skill)
	}

	if filter.RateRange != "" {
		min, max, open, err := ParseRateRange(filter.RateRange)
		if err != nil {
			return nil, 0, err
		}
		if open {
			query = query.Where("hourly_rate >= ?", min)
		} else {
			query = query.Where("hourly_rate >= ? AND hourly_rate < ?", min, max)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var profiles []models.UserProfile
	if err := query.Order("hourly_rate ASC").Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// ParseRateRange parses a rate bucket. Buckets are half-open ("50-100"
// means 50 <= rate < 100) so a rate of exactly 100 lands only in the
// open-ended "100+" bucket.
func ParseRateRange(rateRange string) (min, max float64, openEnded bool, err error) {
	switch rateRange {
	case "0-25":
		return 0, 25, false, nil
	case "25-50":
		return 25, 50, false, nil
	case "50-100":
		return 50, 100, false, nil
	case "100+":
		return 100, 0, true, nil
	default:
		return 0, 0, false, fmt.Errorf("unknown rate range: %s", rateRange)
	}
}
