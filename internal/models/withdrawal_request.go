package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// WithdrawalRequest converts a resident's redeemable points into an M-Pesa
// payout. Points are deducted on initiation and refunded if the admin rejects.
// Approve and reject are both terminal.
type WithdrawalRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user"`
	Amount       float64   `gorm:"not null" json:"amount"`
	PointsUsed   int       `gorm:"not null" json:"points_used"`
	MpesaNumber  string    `gorm:"size:20;not null" json:"mpesa_number"`
	Status       string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RejectReason string    `gorm:"size:500" json:"reject_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
