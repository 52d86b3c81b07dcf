package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment request not found")
	ErrNothingToPay    = errors.New("pickup has no billed amount due")
	ErrAlreadyPaid     = errors.New("pickup is already paid")
	ErrPhoneRequired   = errors.New("phone number is required")
)

type PaymentService struct {
	db      *gorm.DB
	pickups *PickupService
}

func NewPaymentService(db *gorm.DB, pickups *PickupService) *PaymentService {
	return &PaymentService{db: db, pickups: pickups}
}

// Initiate opens an STK push charge for a billed pickup. The actual push is
// handled by the external gateway; we record the reference it will echo back.
func (s *PaymentService) Initiate(userID uuid.UUID, req *dto.InitiatePaymentRequest) (*dto.PaymentResponse, error) {
	if req.Phone == "" {
		return nil, ErrPhoneRequired
	}

	var pickup models.PickupRequest
	if err := s.db.Where("id = ? AND user_id = ?", req.PickupID, userID).First(&pickup).Error; err != nil {
		return nil, ErrPickupNotFound
	}
	if pickup.Status != models.PickupCollected || pickup.BilledAmount <= 0 {
		return nil, ErrNothingToPay
	}
	if pickup.IsPaid {
		return nil, ErrAlreadyPaid
	}

	payment := models.PaymentRequest{
		ID:        uuid.New(),
		PickupID:  pickup.ID,
		UserID:    userID,
		Phone:     req.Phone,
		Amount:    pickup.BilledAmount,
		Reference: newPaymentReference(),
		Status:    models.PaymentPending,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}

	slog.Info("payment initiated", "payment_id", payment.ID, "pickup_id", pickup.ID, "amount", payment.Amount)
	return toPaymentResponse(&payment), nil
}

// HandleCallback resolves a gateway callback. Result code zero completes the
// payment and marks the pickup paid; anything else fails it. Replays against
// a resolved payment are ignored.
func (s *PaymentService) HandleCallback(req *dto.PaymentCallbackRequest) error {
	var payment models.PaymentRequest
	if err := s.db.Where("reference = ?", req.Reference).First(&payment).Error; err != nil {
		return ErrPaymentNotFound
	}
	if payment.Status != models.PaymentPending {
		slog.Warn("duplicate payment callback ignored", "reference", req.Reference, "status", payment.Status)
		return nil
	}

	if req.ResultCode != 0 {
		slog.Warn("payment failed", "reference", req.Reference, "result_code", req.ResultCode, "desc", req.ResultDesc)
		return s.db.Model(&payment).Update("status", models.PaymentFailed).Error
	}

	if err := s.db.Model(&payment).Update("status", models.PaymentCompleted).Error; err != nil {
		return err
	}
	if err := s.pickups.MarkPaid(payment.PickupID); err != nil {
		slog.Error("payment completed but pickup could not be marked paid", "error", err, "pickup_id", payment.PickupID)
		return err
	}

	slog.Info("payment completed", "reference", req.Reference, "pickup_id", payment.PickupID)
	return nil
}

// Status lets the client poll while waiting for the STK push to resolve.
func (s *PaymentService) Status(userID, paymentID uuid.UUID) (*dto.PaymentResponse, error) {
	var payment models.PaymentRequest
	if err := s.db.Where("id = ? AND user_id = ?", paymentID, userID).First(&payment).Error; err != nil {
		return nil, ErrPaymentNotFound
	}
	return toPaymentResponse(&payment), nil
}

func toPaymentResponse(p *models.PaymentRequest) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:        p.ID,
		PickupID:  p.PickupID,
		Phone:     p.Phone,
		Amount:    p.Amount,
		Reference: p.Reference,
		Status:    p.Status,
	}
}

func newPaymentReference() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return "RT-" + hex.EncodeToString(b)
}
