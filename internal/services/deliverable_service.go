package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"designmatch_backend/internal/config"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/internal/storage"
	"designmatch_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// DeliverableUpload carries the file part of a deliverable submission.
type DeliverableUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type DeliverableService interface {
	Submit(ctx context.Context, designerID, projectID string, req *dto.SubmitDeliverableRequest, upload *DeliverableUpload) (*dto.DeliverableDTO, error)
	ListByProject(ctx context.Context, userID, projectID string) ([]dto.DeliverableDTO, error)
	Review(ctx context.Context, clientID, deliverableID string, req *dto.ReviewDeliverableRequest) (*dto.DeliverableDTO, error)
}

type DeliverableServiceImpl struct {
	deliverableRepo repositories.DeliverableRepository
	projectRepo     repositories.ProjectRepository
	messageRepo     repositories.MessageRepository
	store           storage.Storage
	notifications   NotificationService
}

func NewDeliverableService(
	deliverableRepo repositories.DeliverableRepository,
	projectRepo repositories.ProjectRepository,
	messageRepo repositories.MessageRepository,
	store storage.Storage,
	notifications NotificationService,
) DeliverableService {
	return &DeliverableServiceImpl{
		deliverableRepo: deliverableRepo,
		projectRepo:     projectRepo,
		messageRepo:     messageRepo,
		store:           store,
		notifications:   notifications,
	}
}

// Submit uploads a deliverable file and records it as watermarked
// pending client review. Submitting on a project in revision moves it
// back to pending_approval.
func (s *DeliverableServiceImpl) Submit(ctx context.Context, designerID, projectID string, req *dto.SubmitDeliverableRequest, upload *DeliverableUpload) (*dto.DeliverableDTO, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if project.DesignerID == nil || *project.DesignerID != designerID {
		return nil, apperrors.ErrProjectAccessDenied
	}
	switch project.Status {
	case models.ProjectStatusInProgress, models.ProjectStatusRevisionRequested, models.ProjectStatusPendingApproval:
	default:
		return nil, apperrors.ErrInvalidProjectStatus
	}

	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("deliverables/%s/%s%s", projectID, uuid.NewString(), safeExt(upload.FileName))
	if err := s.store.Save(ctx, path, upload.Reader, upload.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}
	fileURL, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	deliverable := &models.Deliverable{
		ProjectID:          projectID,
		DesignerID:         designerID,
		Title:              req.Title,
		Description:        req.Description,
		FileName:           upload.FileName,
		FileURL:            fileURL,
		IsFinalDeliverable: req.IsFinalDeliverable,
		IsWatermarked:      true,
	}
	if err := s.deliverableRepo.Create(deliverable); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if project.Status != models.ProjectStatusPendingApproval {
		if err := s.projectRepo.UpdateStatus(projectID, models.ProjectStatusPendingApproval); err != nil {
			return nil, apperrors.InternalError(err)
		}
		project.Status = models.ProjectStatusPendingApproval
	}

	s.notifications.Notify(ctx, project.ClientID, NotificationDeliverableNew,
		"New deliverable",
		fmt.Sprintf("A deliverable was submitted for %q", project.Title),
		map[string]string{"project_id": projectID, "deliverable_id": deliverable.ID})

	result := dto.NewDeliverableDTO(deliverable, project)
	return &result, nil
}

// ListByProject returns a project's deliverables to its participants.
func (s *DeliverableServiceImpl) ListByProject(ctx context.Context, userID, projectID string) ([]dto.DeliverableDTO, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !project.IsParticipant(userID) {
		return nil, apperrors.ErrProjectAccessDenied
	}

	deliverables, err := s.deliverableRepo.FindByProject(projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.DeliverableDTO, 0, len(deliverables))
	for i := range deliverables {
		items = append(items, dto.NewDeliverableDTO(&deliverables[i], project))
	}
	return items, nil
}

// Review records the client's decision. Approval clears the
// deliverable's watermark; approving a final deliverable completes the
// project. Rejection requires revision notes and sends the project
// back into revision.
func (s *DeliverableServiceImpl) Review(ctx context.Context, clientID, deliverableID string, req *dto.ReviewDeliverableRequest) (*dto.DeliverableDTO, error) {
	deliverable, err := s.deliverableRepo.FindByID(deliverableID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDeliverableNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	project, err := s.projectRepo.FindByID(deliverable.ProjectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if project.ClientID != clientID {
		return nil, apperrors.ErrProjectAccessDenied
	}
	if deliverable.ClientApproved {
		return nil, apperrors.ErrDeliverableAlreadyApproved
	}

	if req.Approved {
		return s.approve(ctx, deliverable, project)
	}
	return s.requestRevision(ctx, deliverable, project, req.RevisionNotes)
}

func (s *DeliverableServiceImpl) approve(ctx context.Context, deliverable *models.Deliverable, project *models.Project) (*dto.DeliverableDTO, error) {
	if err := s.deliverableRepo.Approve(deliverable.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	now := time.Now()
	deliverable.ClientApproved = true
	deliverable.ApprovedAt = &now
	deliverable.IsWatermarked = false
	deliverable.RevisionNotes = ""

	if deliverable.IsFinalDeliverable && project.Status.CanTransition(models.ProjectStatusCompleted) {
		if err := s.projectRepo.MarkCompleted(project.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if err := s.deliverableRepo.ClearProjectWatermarks(project.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if err := s.messageRepo.ClearProjectWatermarks(project.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		project.Status = models.ProjectStatusCompleted
	}

	s.notifications.Notify(ctx, deliverable.DesignerID, NotificationDeliverableReview,
		"Deliverable approved",
		fmt.Sprintf("Your deliverable %q was approved", deliverable.Title),
		map[string]string{"project_id": project.ID, "deliverable_id": deliverable.ID})

	result := dto.NewDeliverableDTO(deliverable, project)
	return &result, nil
}

func (s *DeliverableServiceImpl) requestRevision(ctx context.Context, deliverable *models.Deliverable, project *models.Project, notes string) (*dto.DeliverableDTO, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, apperrors.ErrRevisionNotesRequired
	}

	if err := s.deliverableRepo.RequestRevision(deliverable.ID, notes); err != nil {
		return nil, apperrors.InternalError(err)
	}
	deliverable.RevisionNotes = notes

	if project.Status.CanTransition(models.ProjectStatusRevisionRequested) {
		if err := s.projectRepo.UpdateStatus(project.ID, models.ProjectStatusRevisionRequested); err != nil {
			return nil, apperrors.InternalError(err)
		}
		project.Status = models.ProjectStatusRevisionRequested
	}

	s.notifications.Notify(ctx, deliverable.DesignerID, NotificationDeliverableReview,
		"Revision requested",
		fmt.Sprintf("Changes were requested on %q", deliverable.Title),
		map[string]string{"project_id": project.ID, "deliverable_id": deliverable.ID})

	result := dto.NewDeliverableDTO(deliverable, project)
	return &result, nil
}

// validateUpload enforces the configured size and content-type limits.
func validateUpload(upload *DeliverableUpload) error {
	if upload == nil || upload.Reader == nil {
		return apperrors.NewBadRequestError("A file is required")
	}

	cfg := config.GetConfig()
	if upload.Size > cfg.Upload.MaxSize {
		return apperrors.ErrFileTooLarge
	}

	for _, allowed := range cfg.Upload.AllowedTypes {
		if strings.EqualFold(upload.ContentType, allowed) {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

// safeExt keeps the original extension, normalized, and drops anything
// that does not look like one.
func safeExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
