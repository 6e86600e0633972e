package services

import (
	"context"
	"fmt"

	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/internal/storage"
	"designmatch_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// Broadcaster pushes a message to every live subscriber of a project
// conversation. The WebSocket manager implements it; a nil broadcaster
// disables live delivery without affecting persistence.
type Broadcaster interface {
	BroadcastToProject(projectID string, payload interface{})
}

type MessageService interface {
	List(ctx context.Context, userID, projectID string, limit, offset int) (*dto.MessageListResponse, error)
	SendText(ctx context.Context, senderID, projectID string, req *dto.SendMessageRequest) (*dto.MessageDTO, error)
	SendImage(ctx context.Context, senderID, projectID string, upload *DeliverableUpload) (*dto.MessageDTO, error)
}

type MessageServiceImpl struct {
	messageRepo   repositories.MessageRepository
	projectRepo   repositories.ProjectRepository
	store         storage.Storage
	notifications NotificationService
	broadcaster   Broadcaster
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	projectRepo repositories.ProjectRepository,
	store storage.Storage,
	notifications NotificationService,
	broadcaster Broadcaster,
) MessageService {
	return &MessageServiceImpl{
		messageRepo:   messageRepo,
		projectRepo:   projectRepo,
		store:         store,
		notifications: notifications,
		broadcaster:   broadcaster,
	}
}

// List returns conversation history, oldest first.
func (s *MessageServiceImpl) List(ctx context.Context, userID, projectID string, limit, offset int) (*dto.MessageListResponse, error) {
	if _, err := s.loadConversation(userID, projectID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	messages, total, err := s.messageRepo.FindByProject(projectID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.MessageDTO, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewMessageDTO(&messages[i]))
	}

	return &dto.MessageListResponse{
		Messages: items,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// SendText persists a text message and fans it out to live subscribers
// and the counterparty's notifications.
func (s *MessageServiceImpl) SendText(ctx context.Context, senderID, projectID string, req *dto.SendMessageRequest) (*dto.MessageDTO, error) {
	project, err := s.loadConversation(senderID, projectID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ProjectID: projectID,
		SenderID:  senderID,
		Content:   req.Content,
		Type:      models.MessageTypeText,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.deliver(ctx, project, message)
}

// SendImage uploads an image attachment and persists it as an image
// message. Attachments stay watermarked until the project completes.
func (s *MessageServiceImpl) SendImage(ctx context.Context, senderID, projectID string, upload *DeliverableUpload) (*dto.MessageDTO, error) {
	project, err := s.loadConversation(senderID, projectID)
	if err != nil {
		return nil, err
	}

	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("messages/%s/%s%s", projectID, uuid.NewString(), safeExt(upload.FileName))
	if err := s.store.Save(ctx, path, upload.Reader, upload.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}
	imageURL, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	message := &models.Message{
		ProjectID:     projectID,
		SenderID:      senderID,
		Type:          models.MessageTypeImage,
		ImageURL:      imageURL,
		IsWatermarked: project.Status != models.ProjectStatusCompleted,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.deliver(ctx, project, message)
}

// loadConversation checks the sender can use the project conversation.
// Messaging needs an assigned designer and an active project.
func (s *MessageServiceImpl) loadConversation(userID, projectID string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !project.IsParticipant(userID) {
		return nil, apperrors.ErrConversationAccessDenied
	}
	return project, nil
}

func (s *MessageServiceImpl) deliver(ctx context.Context, project *models.Project, message *models.Message) (*dto.MessageDTO, error) {
	// Reload with the sender profile for the response payload.
	full, err := s.messageRepo.FindByID(message.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to reload message after create", err, "message_id", message.ID)
		full = message
	}
	result := dto.NewMessageDTO(full)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToProject(project.ID, result)
	}

	recipient := project.ClientID
	if message.SenderID == project.ClientID {
		if project.DesignerID == nil {
			return &result, nil
		}
		recipient = *project.DesignerID
	}
	s.notifications.Notify(ctx, recipient, NotificationNewMessage,
		"New message",
		fmt.Sprintf("New message in %q", project.Title),
		map[string]string{"project_id": project.ID, "message_id": message.ID})

	return &result, nil
}
