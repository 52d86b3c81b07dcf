package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecyclingCenter is admin-owned reference data shown on the map and offered
// as drop-off targets when booking a pickup.
type RecyclingCenter struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"size:200;not null" json:"name"`
	Address           string    `gorm:"size:255;not null" json:"address"`
	Latitude          float64   `gorm:"not null" json:"latitude"`
	Longitude         float64   `gorm:"not null" json:"longitude"`
	Phone             string    `gorm:"size:20" json:"phone"`
	OpenHours         string    `gorm:"size:100" json:"open_hours"`
	AcceptedMaterials string    `gorm:"size:500" json:"accepted_materials"` // comma-separated, e.g. "Plastic, Paper"
	Services          string    `gorm:"size:500" json:"services"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (RecyclingCenter) TableName() string {
	return "recycling_centers"
}

// AcceptsMaterial reports whether the center takes the given waste type,
// using the same case-insensitive substring match the booking form applies.
func (c *RecyclingCenter) AcceptsMaterial(wasteType string) bool {
	if c.AcceptedMaterials == "" || wasteType == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.AcceptedMaterials), strings.ToLower(wasteType))
}
