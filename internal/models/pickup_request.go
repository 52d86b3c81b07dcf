package models

import (
	"time"

	"github.com/google/uuid"
)

// PickupStatus is the lifecycle state of a pickup request. Transitions are
// validated server-side by the workflow package; the client only requests them.
type PickupStatus string

const (
	PickupPending   PickupStatus = "pending"
	PickupAssigned  PickupStatus = "assigned"
	PickupCollected PickupStatus = "collected"
	PickupVerified  PickupStatus = "verified"
	PickupRejected  PickupStatus = "rejected"
)

// PickupRequest is a resident's scheduled waste-collection job.
//
// Quantity is the free-text estimate given at booking; ActualQuantity is the
// weight the driver records at pickup, which drives BilledAmount.
type PickupRequest struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"user"`
	WasteType      string       `gorm:"size:50;not null" json:"waste_type"`
	CenterID       *uuid.UUID   `gorm:"type:uuid;index" json:"center_id,omitempty"`
	CenterName     string       `gorm:"size:200" json:"center_name"`
	Quantity       string       `gorm:"size:100" json:"quantity"`
	ActualQuantity float64      `gorm:"default:0" json:"actual_quantity"`
	ScheduledDate  string       `gorm:"size:10;not null" json:"scheduled_date"`
	PickupAddress  string       `gorm:"size:255;not null" json:"pickup_address"`
	Region         string       `gorm:"size:100" json:"region"`
	Latitude       *float64     `json:"latitude,omitempty"`
	Longitude      *float64     `json:"longitude,omitempty"`
	Status         PickupStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CollectorID    *uuid.UUID   `gorm:"type:uuid;index" json:"collector"`
	AssignedAt     *time.Time   `json:"assigned_at,omitempty"`
	BilledAmount   float64      `gorm:"default:0" json:"billed_amount"`
	IsPaid         bool         `gorm:"default:false" json:"is_paid"`
	RejectReason   string       `gorm:"size:500" json:"reject_reason,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	User           User         `gorm:"foreignKey:UserID" json:"-"`
	Collector      *User        `gorm:"foreignKey:CollectorID" json:"-"`
}

func (PickupRequest) TableName() string {
	return "pickup_requests"
}
