package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/finance"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"gorm.io/gorm"
)

var ErrWalletNotFound = errors.New("wallet not found")

type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

// Wallet returns a driver's wallet with its recent ledger.
func (s *WalletService) Wallet(userID uuid.UUID) (*dto.WalletResponse, error) {
	wallet, err := s.ensure(s.db, userID)
	if err != nil {
		return nil, err
	}

	var txns []models.WalletTransaction
	if err := s.db.Where("wallet_id = ?", wallet.ID).
		Order("created_at DESC").Limit(50).
		Find(&txns).Error; err != nil {
		return nil, err
	}

	resp := &dto.WalletResponse{
		Balance:       wallet.Balance,
		TotalEarned:   wallet.TotalEarned,
		PendingAmount: wallet.PendingAmount,
		Transactions:  make([]dto.TransactionResponse, 0, len(txns)),
	}
	for _, t := range txns {
		resp.Transactions = append(resp.Transactions, dto.TransactionResponse{
			ID:            t.ID.String(),
			Type:          t.TransactionType,
			Amount:        t.Amount,
			Status:        t.Status,
			ReferenceCode: t.ReferenceCode,
			Description:   t.Description,
			CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// CreditJobEarning records a billed job's payout as pending. Called inside
// the billing transaction.
func (s *WalletService) CreditJobEarning(tx *gorm.DB, collectorID uuid.UUID, pickup *models.PickupRequest) error {
	wallet, err := s.ensure(tx, collectorID)
	if err != nil {
		return err
	}

	earnings := finance.Earnings(pickup.BilledAmount)
	txn := models.WalletTransaction{
		ID:              uuid.New(),
		WalletID:        wallet.ID,
		TransactionType: models.TxnJobEarning,
		Amount:          earnings,
		Status:          models.TxnStatusPending,
		ReferenceCode:   pickup.ID.String(),
		Description:     fmt.Sprintf("%s pickup, %.1f kg", pickup.WasteType, pickup.ActualQuantity),
	}
	if err := tx.Create(&txn).Error; err != nil {
		return err
	}

	return tx.Model(wallet).
		Update("pending_amount", gorm.Expr("pending_amount + ?", earnings)).Error
}

// ReleaseJobEarning moves a verified job's payout from pending into the
// balance. Called inside the verification transaction.
func (s *WalletService) ReleaseJobEarning(tx *gorm.DB, collectorID uuid.UUID, pickup *models.PickupRequest) error {
	wallet, err := s.ensure(tx, collectorID)
	if err != nil {
		return err
	}

	earnings := finance.Earnings(pickup.BilledAmount)
	if err := tx.Model(&models.WalletTransaction{}).
		Where("wallet_id = ? AND reference_code = ? AND status = ?", wallet.ID, pickup.ID.String(), models.TxnStatusPending).
		Update("status", models.TxnStatusPaid).Error; err != nil {
		return err
	}

	if err := tx.Model(wallet).Updates(map[string]interface{}{
		"pending_amount": gorm.Expr("pending_amount - ?", earnings),
		"balance":        gorm.Expr("balance + ?", earnings),
		"total_earned":   gorm.Expr("total_earned + ?", earnings),
	}).Error; err != nil {
		return err
	}

	return tx.Model(&models.DriverProfile{}).
		Where("user_id = ?", collectorID).
		Update("total_earned", gorm.Expr("total_earned + ?", earnings)).Error
}

// CancelJobEarning voids the pending payout of a billed job that was
// rejected before verification.
func (s *WalletService) CancelJobEarning(tx *gorm.DB, collectorID uuid.UUID, pickup *models.PickupRequest) error {
	wallet, err := s.ensure(tx, collectorID)
	if err != nil {
		return err
	}

	result := tx.Where("wallet_id = ? AND reference_code = ? AND status = ?", wallet.ID, pickup.ID.String(), models.TxnStatusPending).
		Delete(&models.WalletTransaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}

	earnings := finance.Earnings(pickup.BilledAmount)
	return tx.Model(wallet).
		Update("pending_amount", gorm.Expr("pending_amount - ?", earnings)).Error
}

func (s *WalletService) ensure(tx *gorm.DB, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = models.Wallet{ID: uuid.New(), UserID: userID}
		if err := tx.Create(&wallet).Error; err != nil {
			return nil, err
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}
