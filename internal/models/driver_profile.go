package models

import (
	"time"

	"github.com/google/uuid"
)

// DriverProfile carries the vetting documents a service provider submits
// before an admin verifies them for job assignment.
type DriverProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	IDNo        string    `gorm:"size:30" json:"id_no"`
	LicenseNo   string    `gorm:"size:50" json:"license_no"`
	VehicleReg  string    `gorm:"size:30" json:"vehicle_reg"`
	IsVerified  bool      `gorm:"default:false" json:"is_verified"`
	TotalEarned float64   `gorm:"default:0" json:"total_earned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
}

func (DriverProfile) TableName() string {
	return "driver_profiles"
}
