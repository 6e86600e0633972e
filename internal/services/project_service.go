package services

import (
	"context"
	"fmt"

	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/pkg/apperrors"

	"github.com/lib/pq"
)

type ProjectService interface {
	Create(ctx context.Context, clientID string, req *dto.CreateProjectRequest) (*dto.ProjectDTO, error)
	List(ctx context.Context, userID string, limit, offset int) (*dto.ProjectListResponse, error)
	Get(ctx context.Context, userID, projectID string) (*dto.ProjectDTO, error)
	AssignDesigner(ctx context.Context, clientID, projectID, designerID string) (*dto.ProjectDTO, error)
	UpdateStatus(ctx context.Context, userID, projectID string, status models.ProjectStatus) (*dto.ProjectDTO, error)
}

type ProjectServiceImpl struct {
	projectRepo     repositories.ProjectRepository
	profileRepo     repositories.ProfileRepository
	deliverableRepo repositories.DeliverableRepository
	messageRepo     repositories.MessageRepository
	notifications   NotificationService
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
	deliverableRepo repositories.DeliverableRepository,
	messageRepo repositories.MessageRepository,
	notifications NotificationService,
) ProjectService {
	return &ProjectServiceImpl{
		projectRepo:     projectRepo,
		profileRepo:     profileRepo,
		deliverableRepo: deliverableRepo,
		messageRepo:     messageRepo,
		notifications:   notifications,
	}
}

// Create posts a new project for the client. A designer may be
// attached at creation time; the project still starts as open.
func (s *ProjectServiceImpl) Create(ctx context.Context, clientID string, req *dto.CreateProjectRequest) (*dto.ProjectDTO, error) {
	project := &models.Project{
		ClientID:       clientID,
		Title:          req.Title,
		Description:    req.Description,
		Budget:         req.Budget,
		Status:         models.ProjectStatusOpen,
		SkillsRequired: pq.StringArray(req.SkillsRequired),
	}
	if !req.Deadline.IsZero() {
		deadline := req.Deadline
		project.Deadline = &deadline
	}

	if req.DesignerID != "" {
		designer, err := s.profileRepo.FindByUserID(req.DesignerID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Designer does not exist")
		}
		if designer.UserType != models.UserTypeDesigner {
			return nil, apperrors.NewBadRequestError("Selected user is not a designer")
		}
		designerID := req.DesignerID
		project.DesignerID = &designerID
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if project.DesignerID != nil {
		s.notifications.Notify(ctx, *project.DesignerID, NotificationProjectAssigned,
			"New project invitation",
			fmt.Sprintf("You were invited to the project %q", project.Title),
			map[string]string{"project_id": project.ID})
	}

	return s.Get(ctx, clientID, project.ID)
}

// List returns projects where the user is the client or the assigned
// designer, newest first.
func (s *ProjectServiceImpl) List(ctx context.Context, userID string, limit, offset int) (*dto.ProjectListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	projects, total, err := s.projectRepo.FindByUser(userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ProjectDTO, 0, len(projects))
	for i := range projects {
		items = append(items, dto.NewProjectDTO(&projects[i]))
	}

	return &dto.ProjectListResponse{
		Projects: items,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// Get returns a project with participants and deliverables. Only the
// client and the assigned designer may read it.
func (s *ProjectServiceImpl) Get(ctx context.Context, userID, projectID string) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.FindByIDWithParties(projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !project.IsParticipant(userID) {
		return nil, apperrors.ErrProjectAccessDenied
	}

	result := dto.NewProjectDTO(project)
	return &result, nil
}

// AssignDesigner attaches a designer to an open project and moves it
// to in_progress.
func (s *ProjectServiceImpl) AssignDesigner(ctx context.Context, clientID, projectID, designerID string) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if project.ClientID != clientID {
		return nil, apperrors.ErrProjectAccessDenied
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, apperrors.ErrInvalidProjectStatus
	}
	if project.DesignerID != nil && *project.DesignerID != designerID {
		return nil, apperrors.ErrDesignerAlreadyAssigned
	}

	designer, err := s.profileRepo.FindByUserID(designerID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Designer does not exist")
	}
	if designer.UserType != models.UserTypeDesigner {
		return nil, apperrors.NewBadRequestError("Selected user is not a designer")
	}

	if err := s.projectRepo.AssignDesigner(projectID, designerID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.projectRepo.UpdateStatus(projectID, models.ProjectStatusInProgress); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifications.Notify(ctx, designerID, NotificationProjectAssigned,
		"Project assigned",
		fmt.Sprintf("You were assigned to the project %q", project.Title),
		map[string]string{"project_id": project.ID})

	return s.Get(ctx, clientID, projectID)
}

// UpdateStatus applies an explicit status transition. Transitions are
// validated against the project lifecycle and the caller's role:
// clients approve and cancel, designers submit and resume work.
func (s *ProjectServiceImpl) UpdateStatus(ctx context.Context, userID, projectID string, status models.ProjectStatus) (*dto.ProjectDTO, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidProjectStatus
	}

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

	if !project.Status.CanTransition(status) {
		return nil, apperrors.ErrInvalidStatus("project",
			fmt.Sprintf("Cannot move project from %s to %s", project.Status, status))
	}
	if err := s.authorizeTransition(project, userID, status); err != nil {
		return nil, err
	}

	if status == models.ProjectStatusCompleted {
		if err := s.completeProject(ctx, project); err != nil {
			return nil, err
		}
	} else {
		if err := s.projectRepo.UpdateStatus(projectID, status); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	s.notifyCounterparty(ctx, project, userID, status)

	return s.Get(ctx, userID, projectID)
}

// authorizeTransition enforces which side may trigger a transition.
func (s *ProjectServiceImpl) authorizeTransition(project *models.Project, userID string, to models.ProjectStatus) error {
	isClient := project.ClientID == userID

	switch to {
	case models.ProjectStatusPendingApproval:
		// Designer hands work over for review.
		if isClient {
			return apperrors.ErrInsufficientPermissions
		}
	case models.ProjectStatusRevisionRequested, models.ProjectStatusCompleted:
		// Review decisions belong to the client.
		if !isClient {
			return apperrors.ErrInsufficientPermissions
		}
	case models.ProjectStatusCancelled:
		if !isClient {
			return apperrors.ErrInsufficientPermissions
		}
	}
	return nil
}

// completeProject marks the project completed and removes watermarks
// from everything delivered in it.
func (s *ProjectServiceImpl) completeProject(ctx context.Context, project *models.Project) error {
	if err := s.projectRepo.MarkCompleted(project.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.deliverableRepo.ClearProjectWatermarks(project.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.messageRepo.ClearProjectWatermarks(project.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProjectServiceImpl) notifyCounterparty(ctx context.Context, project *models.Project, actorID string, status models.ProjectStatus) {
	var recipient string
	if project.ClientID == actorID {
		if project.DesignerID == nil {
			return
		}
		recipient = *project.DesignerID
	} else {
		recipient = project.ClientID
	}

	s.notifications.Notify(ctx, recipient, NotificationProjectStatus,
		"Project status updated",
		fmt.Sprintf("The project %q is now %s", project.Title, status),
		map[string]string{"project_id": project.ID, "status": string(status)})
}
