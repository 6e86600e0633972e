package repositories

import (
	"errors"
	"time"

	"designmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	FindByID(id string) (*models.Project, error)
	FindByIDWithParties(id string) (*models.Project, error)
	FindByUser(userID string, limit, offset int) ([]models.Project, int64, error)
	Create(project *models.Project) error
	Update(project *models.Project) error
	UpdateStatus(projectID string, status models.ProjectStatus) error
	AssignDesigner(projectID, designerID string) error
	MarkCompleted(projectID string) error
	CountByUserAndStatus(userID string, statuses []models.ProjectStatus) (int64, error)
	SumCompletedBudgetByDesigner(designerID string) (float64, error)
}

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) FindByID(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) FindByIDWithParties(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Client").Preload("Designer").Preload("Deliverables").
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindByUser returns projects where the user is either the client or the
// assigned designer, newest first.
func (r *ProjectRepositoryImpl) FindByUser(userID string, limit, offset int) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{}).
		Where("client_id = ? OR designer_id = ?", userID, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := query.Preload("Client").Preload("Designer").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepositoryImpl) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepositoryImpl) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *ProjectRepositoryImpl) UpdateStatus(projectID string, status models.ProjectStatus) error {
	result := r.db.Model(&models.Project{}).Where("id = ?", projectID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) AssignDesigner(projectID, designerID string) error {
	result := r.db.Model(&models.Project{}).Where("id = ?", projectID).Update("designer_id", designerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) MarkCompleted(projectID string) error {
	now := time.Now()
	result := r.db.Model(&models.Project{}).Where("id = ?", projectID).Updates(map[string]interface{}{
		"status":       models.ProjectStatusCompleted,
		"completed_at": &now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) CountByUserAndStatus(userID string, statuses []models.ProjectStatus) (int64, error) {
	query := r.db.Model(&models.Project{}).
		Where("client_id = ? OR designer_id = ?", userID, userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// SumCompletedBudgetByDesigner totals budgets of the designer's completed
// projects; earnings are this sum times the designer share.
func (r *ProjectRepositoryImpl) SumCompletedBudgetByDesigner(designerID string) (float64, error) {
	var sum float64
	err := r.db.Model(&models.Project{}).
		Where("designer_id = ? AND status = ?", designerID, models.ProjectStatusCompleted).
		Select("COALESCE(SUM(budget), 0)").
		Scan(&sum).Error
	return sum, err
}
