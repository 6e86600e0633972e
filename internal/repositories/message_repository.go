package repositories

import (
	"errors"

	"designmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	FindByID(id string) (*models.Message, error)
	FindByProject(projectID string, limit, offset int) ([]models.Message, int64, error)
	Create(message *models.Message) error
	ClearProjectWatermarks(projectID string) error
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) FindByID(id string) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// FindByProject returns the conversation oldest-first so the client can
// render it top to bottom.
func (r *MessageRepositoryImpl) FindByProject(projectID string, limit, offset int) ([]models.Message, int64, error) {
	query := r.db.Model(&models.Message{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := query.Preload("Sender").
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// ClearProjectWatermarks unmarks image messages once the project completes
func (r *MessageRepositoryImpl) ClearProjectWatermarks(projectID string) error {
	return r.db.Model(&models.Message{}).
		Where("project_id = ? AND is_watermarked = true", projectID).
		Update("is_watermarked", false).Error
}
