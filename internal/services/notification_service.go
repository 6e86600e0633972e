package services

import (
	"context"
	"encoding/json"

	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// Notification types used across the services.
const (
	NotificationProjectAssigned   = "project_assigned"
	NotificationProjectStatus     = "project_status"
	NotificationDeliverableNew    = "deliverable_submitted"
	NotificationDeliverableReview = "deliverable_reviewed"
	NotificationPaymentReceived   = "payment_received"
	NotificationNewMessage        = "new_message"
)

type NotificationService interface {
	Notify(ctx context.Context, userID, notifType, title, message string, data map[string]string)
	List(ctx context.Context, userID string, limit, offset int) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

// Notify records an in-app notification. Failures are logged, never
// propagated: a notification must not break the operation it reports.
func (s *NotificationServiceImpl) Notify(ctx context.Context, userID, notifType, title, message string, data map[string]string) {
	var payload datatypes.JSON
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.CtxWithError(ctx, "Failed to marshal notification data", err, "type", notifType)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := s.notificationRepo.Create(n); err != nil {
		logger.CtxWithError(ctx, "Failed to create notification", err, "user_id", userID, "type", notifType)
	}
}

func (s *NotificationServiceImpl) List(ctx context.Context, userID string, limit, offset int) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	notifications, total, err := s.notificationRepo.FindByUser(userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.NotificationDTO, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NewNotificationDTO(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		Total:         total,
		UnreadCount:   unread,
		Limit:         limit,
		Offset:        offset,
	}, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.notificationRepo.MarkRead(notificationID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
