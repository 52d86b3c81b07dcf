package dto

import "github.com/google/uuid"

type ReportActivityRequest struct {
	ActivityType string  `json:"activity_type"`
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
}

type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Points   int       `json:"points"`
}

type UserStatsResponse struct {
	RedeemablePoints int     `json:"redeemable_points"`
	LifetimePoints   int     `json:"lifetime_points"`
	WeeklyPoints     int     `json:"weekly_points"`
	MonthlyPoints    int     `json:"monthly_points"`
	TotalPickups     int64   `json:"total_pickups"`
	TotalKGRecycled  float64 `json:"total_kg_recycled"`
	BadgeCount       int64   `json:"badge_count"`
	Level            int     `json:"level"`
}

type BadgeResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Tier           string    `json:"tier"`
	PointsRequired int       `json:"points_required"`
	Earned         bool      `json:"earned"`
	EarnedAt       string    `json:"earned_at,omitempty"`
}
