package dto

import (
	"time"

	"designmatch_backend/internal/models"
)

// InitiatePaymentRequest - create a payment intent for a project
type InitiatePaymentRequest struct {
	ProjectID   string             `json:"project_id" binding:"required,uuid"`
	Amount      float64            `json:"amount" binding:"required,gt=0"`
	PaymentType models.PaymentType `json:"payment_type" validate:"omitempty,is-payment-type"`
}

// InitiatePaymentResponse - client secret for the Stripe confirmation
// step plus the recorded split
type InitiatePaymentResponse struct {
	PaymentID        string  `json:"payment_id"`
	ClientSecret     string  `json:"client_secret"`
	Amount           float64 `json:"amount"`
	CommissionAmount float64 `json:"commission_amount"`
	DesignerAmount   float64 `json:"designer_amount"`
	Currency         string  `json:"currency"`
}

// PaymentDTO - payment record view
type PaymentDTO struct {
	ID               string               `json:"id"`
	ProjectID        string               `json:"project_id"`
	ClientID         string               `json:"client_id"`
	DesignerID       *string              `json:"designer_id,omitempty"`
	Amount           float64              `json:"amount"`
	CommissionRate   float64              `json:"commission_rate"`
	CommissionAmount float64              `json:"commission_amount"`
	DesignerAmount   float64              `json:"designer_amount"`
	PaymentType      models.PaymentType   `json:"payment_type"`
	Status           models.PaymentStatus `json:"status"`
	PaidAt           *time.Time           `json:"paid_at,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

// NewPaymentDTO maps a payment model to its DTO
func NewPaymentDTO(p *models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:               p.ID,
		ProjectID:        p.ProjectID,
		ClientID:         p.ClientID,
		DesignerID:       p.DesignerID,
		Amount:           p.Amount,
		CommissionRate:   p.CommissionRate,
		CommissionAmount: p.CommissionAmount,
		DesignerAmount:   p.DesignerAmount,
		PaymentType:      p.PaymentType,
		Status:           p.Status,
		PaidAt:           p.PaidAt,
		CreatedAt:        p.CreatedAt,
	}
}
