package models

import "time"

// Payment records one escrow payment against a project. The commission
// split is computed once at initiation and stored denormalized so the
// ledger survives commission-rate changes.
type Payment struct {
	BaseModel
	ProjectID             string        `gorm:"type:uuid;not null;index" json:"project_id"`
	ClientID              string        `gorm:"type:uuid;not null;index" json:"client_id"`
	DesignerID            *string       `gorm:"type:uuid;index" json:"designer_id"`
	Amount                float64       `gorm:"not null" json:"amount"`
	CommissionRate        float64       `gorm:"not null" json:"commission_rate"` // percent, e.g. 10.00
	CommissionAmount      float64       `gorm:"not null" json:"commission_amount"`
	DesignerAmount        float64       `gorm:"not null" json:"designer_amount"`
	StripePaymentIntentID string        `gorm:"uniqueIndex" json:"stripe_payment_intent_id"`
	PaymentType           PaymentType   `gorm:"type:varchar(20);default:'deposit'" json:"payment_type"`
	Status                PaymentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PaidAt                *time.Time    `json:"paid_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
