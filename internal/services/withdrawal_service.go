package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrWithdrawalNotFound  = errors.New("withdrawal request not found")
	ErrInsufficientPoints  = errors.New("insufficient redeemable points")
	ErrWithdrawalResolved  = errors.New("withdrawal request already resolved")
	ErrMinimumWithdrawal   = errors.New("withdrawal is below the minimum")
	ErrMpesaNumberRequired = errors.New("mpesa number is required")
)

// MinWithdrawalPoints is the smallest points redemption accepted.
const MinWithdrawalPoints = 100

// PointValueKES converts points to shillings.
const PointValueKES = 1.0

type WithdrawalService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewWithdrawalService(db *gorm.DB, notifications *NotificationService) *WithdrawalService {
	return &WithdrawalService{db: db, notifications: notifications}
}

// Create deducts the points immediately and opens a pending request. If the
// admin rejects later, the points come back.
func (s *WithdrawalService) Create(userID uuid.UUID, req *dto.CreateWithdrawalRequest) (*models.WithdrawalRequest, error) {
	if req.Points < MinWithdrawalPoints {
		return nil, ErrMinimumWithdrawal
	}
	if req.MpesaNumber == "" {
		return nil, ErrMpesaNumberRequired
	}

	var withdrawal models.WithdrawalRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return ErrUserNotFound
		}
		if user.RedeemablePoints < req.Points {
			return ErrInsufficientPoints
		}

		if err := tx.Model(&user).
			Update("redeemable_points", gorm.Expr("redeemable_points - ?", req.Points)).Error; err != nil {
			return err
		}

		withdrawal = models.WithdrawalRequest{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      float64(req.Points) * PointValueKES,
			PointsUsed:  req.Points,
			MpesaNumber: req.MpesaNumber,
			Status:      models.WithdrawalPending,
		}
		return tx.Create(&withdrawal).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("withdrawal requested", "withdrawal_id", withdrawal.ID, "user_id", userID, "points", req.Points)
	return &withdrawal, nil
}

// Approve marks a pending request as paid out. Terminal.
func (s *WithdrawalService) Approve(withdrawalID uuid.UUID) (*models.WithdrawalRequest, error) {
	var withdrawal models.WithdrawalRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&withdrawal, "id = ?", withdrawalID).Error; err != nil {
			return ErrWithdrawalNotFound
		}
		if withdrawal.Status != models.WithdrawalPending {
			return ErrWithdrawalResolved
		}
		withdrawal.Status = models.WithdrawalApproved
		return tx.Save(&withdrawal).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(withdrawal.UserID,
		fmt.Sprintf("Your withdrawal of KES %.2f was approved and sent to %s", withdrawal.Amount, withdrawal.MpesaNumber))
	return &withdrawal, nil
}

// Reject refunds the deducted points. Terminal.
func (s *WithdrawalService) Reject(withdrawalID uuid.UUID, reason string) (*models.WithdrawalRequest, error) {
	var withdrawal models.WithdrawalRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&withdrawal, "id = ?", withdrawalID).Error; err != nil {
			return ErrWithdrawalNotFound
		}
		if withdrawal.Status != models.WithdrawalPending {
			return ErrWithdrawalResolved
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", withdrawal.UserID).
			Update("redeemable_points", gorm.Expr("redeemable_points + ?", withdrawal.PointsUsed)).Error; err != nil {
			return err
		}

		withdrawal.Status = models.WithdrawalRejected
		withdrawal.RejectReason = reason
		return tx.Save(&withdrawal).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(withdrawal.UserID,
		fmt.Sprintf("Your withdrawal was rejected and %d points were refunded", withdrawal.PointsUsed))
	return &withdrawal, nil
}

// Mine returns one user's withdrawal history.
func (s *WithdrawalService) Mine(userID uuid.UUID) ([]models.WithdrawalRequest, error) {
	var withdrawals []models.WithdrawalRequest
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawals).Error
	return withdrawals, err
}

// ByStatus lists requests in one resolution state for the admin queue,
// oldest first.
func (s *WithdrawalService) ByStatus(status string) ([]models.WithdrawalRequest, error) {
	switch status {
	case models.WithdrawalPending, models.WithdrawalApproved, models.WithdrawalRejected:
	default:
		return nil, errors.New("invalid withdrawal status")
	}
	var withdrawals []models.WithdrawalRequest
	err := s.db.Preload("User").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&withdrawals).Error
	return withdrawals, err
}
