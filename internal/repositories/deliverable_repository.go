package repositories

import (
	"errors"
	"time"

	"designmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDeliverableNotFound = errors.New("deliverable not found")

type DeliverableRepository interface {
	FindByID(id string) (*models.Deliverable, error)
	FindByProject(projectID string) ([]models.Deliverable, error)
	Create(deliverable *models.Deliverable) error
	Update(deliverable *models.Deliverable) error
	Approve(deliverableID string) error
	RequestRevision(deliverableID, notes string) error
	ClearProjectWatermarks(projectID string) error
}

type DeliverableRepositoryImpl struct {
	db *gorm.DB
}

func NewDeliverableRepository(db *gorm.DB) DeliverableRepository {
	return &DeliverableRepositoryImpl{db: db}
}

func (r *DeliverableRepositoryImpl) FindByID(id string) (*models.Deliverable, error) {
	var deliverable models.Deliverable
	err := r.db.First(&deliverable, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliverableNotFound
		}
		return nil, err
	}
	return &deliverable, nil
}

func (r *DeliverableRepositoryImpl) FindByProject(projectID string) ([]models.Deliverable, error) {
	var deliverables []models.Deliverable
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&deliverables).Error
	return deliverables, err
}

func (r *DeliverableRepositoryImpl) Create(deliverable *models.Deliverable) error {
	return r.db.Create(deliverable).Error
}

func (r *DeliverableRepositoryImpl) Update(deliverable *models.Deliverable) error {
	return r.db.Save(deliverable).Error
}

// Approve marks the deliverable client-approved and clears its watermark
func (r *DeliverableRepositoryImpl) Approve(deliverableID string) error {
	now := time.Now()
	result := r.db.Model(&models.Deliverable{}).Where("id = ?", deliverableID).Updates(map[string]interface{}{
		"client_approved": true,
		"approved_at":     &now,
		"is_watermarked":  false,
		"revision_notes":  "",
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeliverableNotFound
	}
	return nil
}

func (r *DeliverableRepositoryImpl) RequestRevision(deliverableID, notes string) error {
	result := r.db.Model(&models.Deliverable{}).Where("id = ?", deliverableID).Updates(map[string]interface{}{
		"client_approved": false,
		"revision_notes":  notes,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeliverableNotFound
	}
	return nil
}

// ClearProjectWatermarks removes the watermark flag from every
// deliverable of a completed project
func (r *DeliverableRepositoryImpl) ClearProjectWatermarks(projectID string) error {
	return r.db.Model(&models.Deliverable{}).
		Where("project_id = ?", projectID).
		Update("is_watermarked", false).Error
}
