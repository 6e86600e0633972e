package dto

import (
	"time"

	"designmatch_backend/internal/models"
)

// SubmitDeliverableRequest - multipart form fields accompanying the
// uploaded file
type SubmitDeliverableRequest struct {
	Title              string `form:"title" binding:"required,min=3,max=200"`
	Description        string `form:"description"`
	IsFinalDeliverable bool   `form:"is_final_deliverable"`
}

// ReviewDeliverableRequest - client decision on a deliverable.
// RevisionNotes are mandatory when the work is rejected.
type ReviewDeliverableRequest struct {
	Approved      bool   `json:"approved"`
	RevisionNotes string `json:"revision_notes"`
}

// DeliverableDTO - deliverable view. Watermarked reflects the
// effective display state: a deliverable stops being watermarked once
// it is approved or its project completes.
type DeliverableDTO struct {
	ID                 string     `json:"id"`
	ProjectID          string     `json:"project_id"`
	DesignerID         string     `json:"designer_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	FileName           string     `json:"file_name"`
	FileURL            string     `json:"file_url"`
	IsFinalDeliverable bool       `json:"is_final_deliverable"`
	Watermarked        bool       `json:"watermarked"`
	ClientApproved     bool       `json:"client_approved"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	RevisionNotes      string     `json:"revision_notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// NewDeliverableDTO maps a deliverable to its DTO. The project is
// optional; when given, a completed project clears the watermark.
func NewDeliverableDTO(d *models.Deliverable, project *models.Project) DeliverableDTO {
	watermarked := d.IsWatermarked
	if project != nil && project.Status == models.ProjectStatusCompleted {
		watermarked = false
	}
	return DeliverableDTO{
		ID:                 d.ID,
		ProjectID:          d.ProjectID,
		DesignerID:         d.DesignerID,
		Title:              d.Title,
		Description:        d.Description,
		FileName:           d.FileName,
		FileURL:            d.FileURL,
		IsFinalDeliverable: d.IsFinalDeliverable,
		Watermarked:        watermarked,
		ClientApproved:     d.ClientApproved,
		ApprovedAt:         d.ApprovedAt,
		RevisionNotes:      d.RevisionNotes,
		CreatedAt:          d.CreatedAt,
	}
}
