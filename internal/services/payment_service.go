package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/payments"
	"designmatch_backend/internal/repositories"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/pkg/apperrors"
)

// CommissionRate is the fixed platform commission on every payment,
// as a percentage. Stored on each payment row so a future rate change
// never touches settled payments.
const CommissionRate = 10.0

// SplitAmount computes the platform commission and designer share for
// a payment amount. Commission is rounded to cents; the designer share
// is the exact remainder so the two always sum to the amount.
func SplitAmount(amount float64) (commission, designerShare float64) {
	commission = math.Round(amount*CommissionRate) / 100
	designerShare = amount - commission
	return commission, designerShare
}

type PaymentService interface {
	Initiate(ctx context.Context, clientID string, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error)
	ListByProject(ctx context.Context, userID, projectID string) ([]dto.PaymentDTO, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	Reconcile(ctx context.Context, payment *models.Payment) error
}

type PaymentServiceImpl struct {
	paymentRepo   repositories.PaymentRepository
	projectRepo   repositories.ProjectRepository
	stripe        *payments.StripeClient
	notifications NotificationService
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	projectRepo repositories.ProjectRepository,
	stripe *payments.StripeClient,
	notifications NotificationService,
) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:   paymentRepo,
		projectRepo:   projectRepo,
		stripe:        stripe,
		notifications: notifications,
	}
}

// Initiate creates a Stripe payment intent for a project payment and
// records it as pending. The commission split is fixed at creation so
// later rate changes never touch existing payments.
func (s *PaymentServiceImpl) Initiate(ctx context.Context, clientID string, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	project, err := s.projectRepo.FindByID(req.ProjectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if project.ClientID != clientID {
		return nil, apperrors.ErrProjectAccessDenied
	}
	if project.Status == models.ProjectStatusCancelled {
		return nil, apperrors.ErrInvalidProjectStatus
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeDeposit
	}

	intent, err := s.stripe.CreatePaymentIntent(ctx, payments.CreateIntentParams{
		AmountMinorUnits: payments.ToMinorUnits(req.Amount),
		Metadata: map[string]string{
			"project_id":   project.ID,
			"client_id":    clientID,
			"payment_type": string(paymentType),
		},
	})
	if err != nil {
		logger.CtxWithError(ctx, "Stripe payment intent creation failed", err, "project_id", project.ID)
		return nil, apperrors.ErrPaymentProviderError
	}

	commission, designerShare := SplitAmount(req.Amount)

	payment := &models.Payment{
		ProjectID:             project.ID,
		ClientID:              clientID,
		DesignerID:            project.DesignerID,
		Amount:                req.Amount,
		CommissionRate:        CommissionRate,
		CommissionAmount:      commission,
		DesignerAmount:        designerShare,
		StripePaymentIntentID: intent.ID,
		PaymentType:           paymentType,
		Status:                models.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.InitiatePaymentResponse{
		PaymentID:        payment.ID,
		ClientSecret:     intent.ClientSecret,
		Amount:           payment.Amount,
		CommissionAmount: payment.CommissionAmount,
		DesignerAmount:   payment.DesignerAmount,
		Currency:         intent.Currency,
	}, nil
}

// ListByProject returns the payment history of a project to its
// participants.
func (s *PaymentServiceImpl) ListByProject(ctx context.Context, userID, projectID string) ([]dto.PaymentDTO, error) {
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

	paymentsList, err := s.paymentRepo.FindByProject(projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.PaymentDTO, 0, len(paymentsList))
	for i := range paymentsList {
		items = append(items, dto.NewPaymentDTO(&paymentsList[i]))
	}
	return items, nil
}

// HandleWebhook verifies and applies a Stripe event. Events for
// unknown intents are acknowledged and dropped; Stripe retries
// anything we fail on.
func (s *PaymentServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if err := s.stripe.VerifyWebhookSignature(payload, signature, payments.DefaultWebhookTolerance); err != nil {
		return apperrors.ErrInvalidWebhookSignature
	}

	var event payments.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return apperrors.NewBadRequestError("Malformed webhook payload")
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
	default:
		logger.CtxDebug(ctx, "Ignoring webhook event", "type", event.Type)
		return nil
	}

	var intent payments.PaymentIntent
	if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
		return apperrors.NewBadRequestError("Malformed webhook payload")
	}

	payment, err := s.paymentRepo.FindByPaymentIntentID(intent.ID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			logger.CtxWarn(ctx, "Webhook for unknown payment intent", "intent_id", intent.ID)
			return nil
		}
		return apperrors.InternalError(err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return s.markSucceeded(ctx, payment)
	case "payment_intent.payment_failed":
		return s.markFailed(ctx, payment)
	}
	return nil
}

// Reconcile checks a pending payment against Stripe and settles it if
// the intent already finished. Used by the background worker to catch
// webhooks that never arrived.
func (s *PaymentServiceImpl) Reconcile(ctx context.Context, payment *models.Payment) error {
	intent, err := s.stripe.GetPaymentIntent(ctx, payment.StripePaymentIntentID)
	if err != nil {
		return err
	}

	switch intent.Status {
	case "succeeded":
		return s.markSucceeded(ctx, payment)
	case "canceled":
		return s.markFailed(ctx, payment)
	default:
		// Still in flight, leave it pending.
		return nil
	}
}

func (s *PaymentServiceImpl) markSucceeded(ctx context.Context, payment *models.Payment) error {
	if payment.Status == models.PaymentStatusSucceeded {
		return nil // idempotent: webhook retries and the worker may race
	}
	if err := s.paymentRepo.MarkPaid(payment.ID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Payment succeeded", "payment_id", payment.ID, "project_id", payment.ProjectID)

	if payment.DesignerID != nil {
		s.notifications.Notify(ctx, *payment.DesignerID, NotificationPaymentReceived,
			"Payment received",
			fmt.Sprintf("A payment of %.2f was received; your share is %.2f", payment.Amount, payment.DesignerAmount),
			map[string]string{"project_id": payment.ProjectID, "payment_id": payment.ID})
	}
	return nil
}

func (s *PaymentServiceImpl) markFailed(ctx context.Context, payment *models.Payment) error {
	if payment.Status == models.PaymentStatusFailed {
		return nil
	}
	if err := s.paymentRepo.UpdateStatus(payment.ID, models.PaymentStatusFailed); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxWarn(ctx, "Payment failed", "payment_id", payment.ID, "project_id", payment.ProjectID)

	s.notifications.Notify(ctx, payment.ClientID, NotificationPaymentReceived,
		"Payment failed",
		fmt.Sprintf("Your payment of %.2f could not be processed", payment.Amount),
		map[string]string{"project_id": payment.ProjectID, "payment_id": payment.ID})
	return nil
}
