package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles known to the platform. Anything else is treated as a resident.
const (
	RoleResident        = "resident"
	RoleServiceProvider = "service_provider"
	RoleAdmin           = "admin"
)

// User is the shared identity for residents, drivers and admins.
// Driver-specific fields live on DriverProfile.
type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password         string         `gorm:"not null" json:"-"`
	FullName         string         `gorm:"size:100" json:"full_name"`
	Phone            string         `gorm:"size:20" json:"phone"`
	Address          string         `gorm:"size:255" json:"address"`
	Role             string         `gorm:"size:20;default:'resident'" json:"role"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	IsSuperuser      bool           `gorm:"default:false" json:"is_superuser"`
	RedeemablePoints int            `gorm:"default:0" json:"redeemable_points"`
	LifetimePoints   int            `gorm:"default:0" json:"lifetime_points"`
	WeeklyPoints     int            `gorm:"default:0" json:"weekly_points"`
	MonthlyPoints    int            `gorm:"default:0" json:"monthly_points"`
	Latitude         *float64       `json:"latitude,omitempty"`
	Longitude        *float64       `json:"longitude,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// HomeRoute returns the dashboard path the frontend should land this role on.
// Unknown or malformed roles fall through to the resident dashboard.
func HomeRoute(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleServiceProvider:
		return "/driver/dashboard"
	default:
		return "/dashboard"
	}
}
