package repositories

import (
	"errors"
	"time"

	"designmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	FindByID(id string) (*models.Payment, error)
	FindByPaymentIntentID(intentID string) (*models.Payment, error)
	FindByProject(projectID string) ([]models.Payment, error)
	Create(payment *models.Payment) error
	UpdateStatus(paymentID string, status models.PaymentStatus) error
	MarkPaid(paymentID string) error
	FindStalePending(olderThan time.Duration, limit int) ([]models.Payment, error)
	SumSucceededByClient(clientID string) (float64, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByPaymentIntentID(intentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "stripe_payment_intent_id = ?", intentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByProject(projectID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) UpdateStatus(paymentID string, status models.PaymentStatus) error {
	result := r.db.Model(&models.Payment{}).Where("id = ?", paymentID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) MarkPaid(paymentID string) error {
	now := time.Now()
	result := r.db.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(map[string]interface{}{
		"status":  models.PaymentStatusSucceeded,
		"paid_at": &now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// FindStalePending returns pending payments older than the given age, for
// reconciliation against the processor.
func (r *PaymentRepositoryImpl) FindStalePending(olderThan time.Duration, limit int) ([]models.Payment, error) {
	cutoff := time.Now().Add(-olderThan)
	var payments []models.Payment
	err := r.db.Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// SumSucceededByClient totals the client's settled payments.
func (r *PaymentRepositoryImpl) SumSucceededByClient(clientID string) (float64, error) {
	var total float64
	err := r.db.Model(&models.Payment{}).
		Where("client_id = ? AND status = ?", clientID, models.PaymentStatusSucceeded).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
