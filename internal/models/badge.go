package models

import (
	"time"

	"github.com/google/uuid"
)

// Badge is a gamification milestone. Tier runs bronze through diamond.
type Badge struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null;uniqueIndex" json:"badge_name"`
	Description    string    `gorm:"size:500" json:"description"`
	IconURL        string    `gorm:"size:255" json:"icon_url"`
	Tier           string    `gorm:"size:20;default:'bronze'" json:"badge_type"`
	PointsRequired int       `gorm:"default:0" json:"points_required"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserBadge links an earned badge to a user, once per (user, badge).
type UserBadge struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:1" json:"user_id"`
	BadgeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:2" json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Badge     Badge     `gorm:"foreignKey:BadgeID" json:"-"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

// PointsHistory logs every points award for auditing.
type PointsHistory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Points       int       `gorm:"not null" json:"points"`
	ActivityType string    `gorm:"size:100" json:"activity_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PointsHistory) TableName() string {
	return "points_history"
}
