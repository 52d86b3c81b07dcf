package models

import (
	"time"

	"github.com/google/uuid"
)

// Wallet tracks a driver's earnings. PendingAmount holds billed-but-unverified
// job earnings; TotalEarned only grows when an admin verifies the pickup.
type Wallet struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Balance       float64   `gorm:"default:0" json:"balance"`
	TotalEarned   float64   `gorm:"default:0" json:"total_earned"`
	PendingAmount float64   `gorm:"default:0" json:"pending_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
}

const (
	TxnJobEarning = "job_earning"
	TxnPayout     = "payout"

	TxnStatusPending = "pending"
	TxnStatusPaid    = "paid"
)

// WalletTransaction is one ledger entry against a wallet.
type WalletTransaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WalletID        uuid.UUID `gorm:"type:uuid;not null;index" json:"wallet_id"`
	TransactionType string    `gorm:"size:30;not null" json:"transaction_type"`
	Amount          float64   `gorm:"not null" json:"amount"`
	Status          string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	ReferenceCode   string    `gorm:"size:64;index" json:"reference_code"`
	Description     string    `gorm:"size:255" json:"description"`
	CreatedAt       time.Time `json:"timestamp"`
	Wallet          Wallet    `gorm:"foreignKey:WalletID" json:"-"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
