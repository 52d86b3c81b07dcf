package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity types recognised by the points engine.
const (
	ActivityRecycle        = "recycle"
	ActivityProperDisposal = "proper_disposal"
	ActivityReportIssue    = "report_issue"
	ActivityEducation      = "education"
)

// Activity is a self-reported recycling action. Points are computed
// server-side; the client only renders what it is given.
type Activity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ActivityType string    `gorm:"size:50;not null" json:"activity_type"`
	Category     string    `gorm:"size:50" json:"category"`
	Quantity     string    `gorm:"size:100" json:"quantity"`
	Description  string    `gorm:"type:text" json:"description"`
	Location     string    `gorm:"size:255" json:"location"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	PointsEarned int       `gorm:"default:0" json:"points_earned"`
	IsVerified   bool      `gorm:"default:true" json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
}

func (Activity) TableName() string {
	return "activities"
}
