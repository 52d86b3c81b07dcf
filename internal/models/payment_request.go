package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// PaymentRequest records an initiated M-Pesa charge for a billed pickup.
// The provider integration is external; the callback endpoint resolves it.
type PaymentRequest struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	PickupID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"pickup_id"`
	UserID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	Phone     string        `gorm:"size:20;not null" json:"phone"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Reference string        `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	Status    string        `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Pickup    PickupRequest `gorm:"foreignKey:PickupID" json:"-"`
}

func (PaymentRequest) TableName() string {
	return "payment_requests"
}
