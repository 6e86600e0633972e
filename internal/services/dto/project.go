package dto

import (
	"time"

	"designmatch_backend/internal/models"
)

// CreateProjectRequest - post a new project brief
type CreateProjectRequest struct {
	Title          string    `json:"title" binding:"required,min=3,max=200"`
	Description    string    `json:"description" binding:"required,min=10"`
	Budget         float64   `json:"budget" binding:"required,gt=0"`
	SkillsRequired []string  `json:"skills_required"`
	DesignerID     string    `json:"designer_id,omitempty"`
	Deadline       time.Time `json:"deadline,omitempty"`
}

// UpdateProjectStatusRequest - explicit status transition
type UpdateProjectStatusRequest struct {
	Status models.ProjectStatus `json:"status" binding:"required"`
}

// AssignDesignerRequest - attach a designer to an open project
type AssignDesignerRequest struct {
	DesignerID string `json:"designer_id" binding:"required,uuid"`
}

// ListProjectsRequest - pagination for the project list
type ListProjectsRequest struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// ProjectDTO - project view with participants
type ProjectDTO struct {
	ID             string               `json:"id"`
	ClientID       string               `json:"client_id"`
	DesignerID     *string              `json:"designer_id,omitempty"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Budget         float64              `json:"budget"`
	Status         models.ProjectStatus `json:"status"`
	SkillsRequired []string             `json:"skills_required"`
	Deadline       *time.Time           `json:"deadline,omitempty"`
	CompletedAt    *time.Time           `json:"completed_at,omitempty"`
	Client         *ProfileDTO          `json:"client,omitempty"`
	Designer       *ProfileDTO          `json:"designer,omitempty"`
	Deliverables   []DeliverableDTO     `json:"deliverables,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// ProjectListResponse - paginated project listing
type ProjectListResponse struct {
	Projects []ProjectDTO `json:"projects"`
	Total    int64        `json:"total"`
	Limit    int          `json:"limit"`
	Offset   int          `json:"offset"`
}

// NewProjectDTO maps a project model to its DTO
func NewProjectDTO(project *models.Project) ProjectDTO {
	skills := []string{}
	if project.SkillsRequired != nil {
		skills = []string(project.SkillsRequired)
	}

	d := ProjectDTO{
		ID:             project.ID,
		ClientID:       project.ClientID,
		DesignerID:     project.DesignerID,
		Title:          project.Title,
		Description:    project.Description,
		Budget:         project.Budget,
		Status:         project.Status,
		SkillsRequired: skills,
		Deadline:       project.Deadline,
		CompletedAt:    project.CompletedAt,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}

	if project.Client != nil {
		client := NewProfileDTO(project.Client)
		d.Client = &client
	}
	if project.Designer != nil {
		designer := NewProfileDTO(project.Designer)
		d.Designer = &designer
	}
	for i := range project.Deliverables {
		d.Deliverables = append(d.Deliverables, NewDeliverableDTO(&project.Deliverables[i], project))
	}

	return d
}
