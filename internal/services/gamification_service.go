package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/recycletrack/recycletrack-backend/internal/pricing"
	"gorm.io/gorm"
)

var ErrContentRejected = errors.New("content rejected")

// Points for self-reported activities, keyed by activity type.
var activityPoints = map[string]int{
	models.ActivityRecycle:        50,
	models.ActivityProperDisposal: 30,
	models.ActivityReportIssue:    20,
	models.ActivityEducation:      15,
}

type GamificationService struct {
	db     *gorm.DB
	rates  *pricing.Registry
	filter *ContentFilter
}

func NewGamificationService(db *gorm.DB, rates *pricing.Registry) *GamificationService {
	return &GamificationService{
		db:     db,
		rates:  rates,
		filter: NewContentFilter(),
	}
}

// SeedBadges inserts the badge catalog without touching badges an admin has
// already edited. Keyed by name, like the settings seed.
func (s *GamificationService) SeedBadges() error {
	catalog := []models.Badge{
		{Name: "First Steps", Description: "Earn your first points", Tier: "bronze", IconURL: "🥉", PointsRequired: 10},
		{Name: "Eco Beginner", Description: "Earn your first 100 points", Tier: "bronze", IconURL: "🌱", PointsRequired: 100},
		{Name: "Point Master", Description: "Reach 500 points", Tier: "silver", IconURL: "⭐", PointsRequired: 500},
		{Name: "Green Champion", Description: "Reach 1000 points", Tier: "gold", IconURL: "🥇", PointsRequired: 1000},
		{Name: "Point Legend", Description: "Reach 2500 points", Tier: "platinum", IconURL: "💎", PointsRequired: 2500},
		{Name: "Ultimate Champion", Description: "Reach 5000 points", Tier: "diamond", IconURL: "👑", PointsRequired: 5000},
	}
	for _, b := range catalog {
		b.ID = uuid.New()
		var existing models.Badge
		if err := s.db.Where("name = ?", b.Name).Attrs(b).FirstOrCreate(&existing).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReportActivity records a self-reported recycling action and awards its
// points. The description goes through the content filter first.
func (s *GamificationService) ReportActivity(userID uuid.UUID, req *dto.ReportActivityRequest) (*models.Activity, error) {
	points, ok := activityPoints[req.ActivityType]
	if !ok {
		return nil, errors.New("unknown activity type")
	}

	if ok, reason := s.filter.Check(req.Description); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.filter.RejectionMessage(reason))
	}

	activity := models.Activity{
		ID:           uuid.New(),
		UserID:       userID,
		ActivityType: req.ActivityType,
		Quantity:     fmt.Sprintf("%.1f", req.Quantity),
		Description:  req.Description,
		PointsEarned: points,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		return s.award(tx, userID, points, req.ActivityType)
	})
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// AwardPickupPoints grants points for a verified pickup based on the weighed
// quantity. Runs inside the verification transaction.
func (s *GamificationService) AwardPickupPoints(tx *gorm.DB, pickup *models.PickupRequest) error {
	kg := int(math.Round(pickup.ActualQuantity))
	if kg < 1 {
		kg = 1
	}
	points := kg * s.rates.PointsFor(pickup.WasteType)
	return s.award(tx, pickup.UserID, points, models.ActivityRecycle)
}

func (s *GamificationService) award(tx *gorm.DB, userID uuid.UUID, points int, activityType string) error {
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"redeemable_points": gorm.Expr("redeemable_points + ?", points),
		"lifetime_points":   gorm.Expr("lifetime_points + ?", points),
		"weekly_points":     gorm.Expr("weekly_points + ?", points),
		"monthly_points":    gorm.Expr("monthly_points + ?", points),
	}).Error; err != nil {
		return err
	}

	history := models.PointsHistory{
		ID:           uuid.New(),
		UserID:       userID,
		Points:       points,
		ActivityType: activityType,
	}
	if err := tx.Create(&history).Error; err != nil {
		return err
	}

	return s.evaluateBadges(tx, userID)
}

// evaluateBadges awards any badge whose points threshold the user has now
// crossed. The unique (user, badge) index makes double awards impossible.
func (s *GamificationService) evaluateBadges(tx *gorm.DB, userID uuid.UUID) error {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	var earned []models.Badge
	if err := tx.Where("points_required <= ?", user.LifetimePoints).Find(&earned).Error; err != nil {
		return err
	}

	for _, badge := range earned {
		var link models.UserBadge
		err := tx.Where("user_id = ? AND badge_id = ?", userID, badge.ID).
			Attrs(models.UserBadge{
				ID:        uuid.New(),
				UserID:    userID,
				BadgeID:   badge.ID,
				AwardedAt: time.Now(),
			}).
			FirstOrCreate(&link).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Leaderboard returns the top residents by the chosen period's points.
// Period is one of weekly, monthly, alltime.
func (s *GamificationService) Leaderboard(period string, limit int) ([]dto.LeaderboardEntry, error) {
	column := "lifetime_points"
	switch period {
	case "weekly":
		column = "weekly_points"
	case "monthly":
		column = "monthly_points"
	case "", "alltime":
	default:
		return nil, errors.New("period must be weekly, monthly or alltime")
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var users []models.User
	if err := s.db.Where("role = ? AND is_active = true", models.RoleResident).
		Order(column + " DESC").Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		points := u.LifetimePoints
		switch column {
		case "weekly_points":
			points = u.WeeklyPoints
		case "monthly_points":
			points = u.MonthlyPoints
		}
		entries = append(entries, dto.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   u.ID,
			FullName: u.FullName,
			Points:   points,
		})
	}
	return entries, nil
}

// Stats aggregates a user's gamification standing.
func (s *GamificationService) Stats(userID uuid.UUID) (*dto.UserStatsResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var totalPickups int64
	s.db.Model(&models.PickupRequest{}).
		Where("user_id = ? AND status = ?", userID, models.PickupVerified).
		Count(&totalPickups)

	var totalKG float64
	s.db.Model(&models.PickupRequest{}).
		Where("user_id = ? AND status = ?", userID, models.PickupVerified).
		Select("COALESCE(SUM(actual_quantity), 0)").Scan(&totalKG)

	var badgeCount int64
	s.db.Model(&models.UserBadge{}).Where("user_id = ?", userID).Count(&badgeCount)

	return &dto.UserStatsResponse{
		RedeemablePoints: user.RedeemablePoints,
		LifetimePoints:   user.LifetimePoints,
		WeeklyPoints:     user.WeeklyPoints,
		MonthlyPoints:    user.MonthlyPoints,
		TotalPickups:     totalPickups,
		TotalKGRecycled:  totalKG,
		BadgeCount:       badgeCount,
		Level:            user.LifetimePoints/1000 + 1,
	}, nil
}

// Badges lists every badge with the user's earned flag.
func (s *GamificationService) Badges(userID uuid.UUID) ([]dto.BadgeResponse, error) {
	var badges []models.Badge
	if err := s.db.Order("points_required ASC").Find(&badges).Error; err != nil {
		return nil, err
	}

	var held []models.UserBadge
	if err := s.db.Where("user_id = ?", userID).Find(&held).Error; err != nil {
		return nil, err
	}
	heldAt := make(map[uuid.UUID]time.Time, len(held))
	for _, ub := range held {
		heldAt[ub.BadgeID] = ub.AwardedAt
	}

	resp := make([]dto.BadgeResponse, 0, len(badges))
	for _, b := range badges {
		br := dto.BadgeResponse{
			ID:             b.ID,
			Name:           b.Name,
			Description:    b.Description,
			Tier:           b.Tier,
			PointsRequired: b.PointsRequired,
		}
		if at, ok := heldAt[b.ID]; ok {
			br.Earned = true
			br.EarnedAt = at.Format(time.RFC3339)
		}
		resp = append(resp, br)
	}
	return resp, nil
}

// Activities returns a user's recent self-reported activities.
func (s *GamificationService) Activities(userID uuid.UUID) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(100).
		Find(&activities).Error
	return activities, err
}

// PointsHistory returns the audit trail of points awards.
func (s *GamificationService) PointsHistory(userID uuid.UUID) ([]models.PointsHistory, error) {
	var history []models.PointsHistory
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(100).
		Find(&history).Error
	return history, err
}

// ResetWeeklyPoints zeroes every user's weekly counter. Run from cron.
func (s *GamificationService) ResetWeeklyPoints() error {
	return s.db.Model(&models.User{}).Where("weekly_points > 0").
		Update("weekly_points", 0).Error
}

// ResetMonthlyPoints zeroes every user's monthly counter. Run from cron.
func (s *GamificationService) ResetMonthlyPoints() error {
	return s.db.Model(&models.User{}).Where("monthly_points > 0").
		Update("monthly_points", 0).Error
}
