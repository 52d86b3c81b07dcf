package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/recycletrack/recycletrack-backend/internal/pricing"
	"github.com/recycletrack/recycletrack-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGamificationFixture(t *testing.T) (*GamificationService, *gorm.DB, models.User) {
	db := testutil.OpenTestDB(t)
	svc := NewGamificationService(db, pricing.NewRegistry())

	user := models.User{
		ID: uuid.New(), Email: "resident@example.com", Password: "x",
		FullName: "Resident", Role: models.RoleResident, IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return svc, db, user
}

func TestReportActivityAwardsPoints(t *testing.T) {
	svc, db, user := newGamificationFixture(t)

	activity, err := svc.ReportActivity(user.ID, &dto.ReportActivityRequest{
		ActivityType: models.ActivityRecycle,
		Description:  "Sorted bottles at home",
		Quantity:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, activity.PointsEarned)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, 50, updated.RedeemablePoints)
	assert.Equal(t, 50, updated.LifetimePoints)
	assert.Equal(t, 50, updated.WeeklyPoints)

	var history models.PointsHistory
	require.NoError(t, db.First(&history, "user_id = ?", user.ID).Error)
	assert.Equal(t, 50, history.Points)
}

func TestReportActivityUnknownType(t *testing.T) {
	svc, _, user := newGamificationFixture(t)
	_, err := svc.ReportActivity(user.ID, &dto.ReportActivityRequest{ActivityType: "littering"})
	assert.Error(t, err)
}

func TestReportActivityFiltersContent(t *testing.T) {
	svc, _, user := newGamificationFixture(t)

	_, err := svc.ReportActivity(user.ID, &dto.ReportActivityRequest{
		ActivityType: models.ActivityRecycle,
		Description:  "this is bullshit",
	})
	assert.ErrorIs(t, err, ErrContentRejected)

	_, err = svc.ReportActivity(user.ID, &dto.ReportActivityRequest{
		ActivityType: models.ActivityRecycle,
		Description:  "check out https://spam.example.com",
	})
	assert.ErrorIs(t, err, ErrContentRejected)
}

func TestBadgeAwardedOnThreshold(t *testing.T) {
	svc, db, user := newGamificationFixture(t)

	badge := models.Badge{ID: uuid.New(), Name: "Eco Starter", Tier: "bronze", PointsRequired: 10}
	require.NoError(t, db.Create(&badge).Error)

	_, err := svc.ReportActivity(user.ID, &dto.ReportActivityRequest{
		ActivityType: models.ActivityRecycle,
		Description:  "recycled glass jars",
	})
	require.NoError(t, err)

	badges, err := svc.Badges(user.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.True(t, badges[0].Earned)

	// A second award attempt stays idempotent.
	_, err = svc.ReportActivity(user.ID, &dto.ReportActivityRequest{
		ActivityType: models.ActivityEducation,
		Description:  "read an article",
	})
	require.NoError(t, err)

	var count int64
	db.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSeedBadgesPopulatesCatalog(t *testing.T) {
	svc, db, user := newGamificationFixture(t)

	require.NoError(t, svc.SeedBadges())
	require.NoError(t, svc.SeedBadges())

	var count int64
	db.Model(&models.Badge{}).Count(&count)
	assert.EqualValues(t, 6, count)

	// A first activity clears the entry-level threshold.
	_, err := svc.ReportActivity(user.ID, &dto.ReportActivityRequest{
		ActivityType: models.ActivityRecycle,
		Description:  "sorted plastics",
	})
	require.NoError(t, err)

	badges, err := svc.Badges(user.ID)
	require.NoError(t, err)
	require.Len(t, badges, 6)

	earned := 0
	for _, b := range badges {
		if b.Earned {
			earned++
		}
	}
	assert.Equal(t, 1, earned)
}

func TestLeaderboardOrdersAndRanks(t *testing.T) {
	svc, db, _ := newGamificationFixture(t)

	second := models.User{
		ID: uuid.New(), Email: "second@example.com", Password: "x",
		FullName: "Second", Role: models.RoleResident, IsActive: true,
		LifetimePoints: 50, WeeklyPoints: 80,
	}
	first := models.User{
		ID: uuid.New(), Email: "first@example.com", Password: "x",
		FullName: "First", Role: models.RoleResident, IsActive: true,
		LifetimePoints: 200, WeeklyPoints: 20,
	}
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Create(&first).Error)

	entries, err := svc.Leaderboard("alltime", 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, "First", entries[0].FullName)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 200, entries[0].Points)

	weekly, err := svc.Leaderboard("weekly", 10)
	require.NoError(t, err)
	assert.Equal(t, "Second", weekly[0].FullName)
	assert.Equal(t, 80, weekly[0].Points)

	_, err = svc.Leaderboard("hourly", 10)
	assert.Error(t, err)
}

func TestWeeklyAndMonthlyResets(t *testing.T) {
	svc, db, user := newGamificationFixture(t)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"weekly_points": 40, "monthly_points": 90, "lifetime_points": 90,
	}).Error)

	require.NoError(t, svc.ResetWeeklyPoints())
	require.NoError(t, svc.ResetMonthlyPoints())

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Zero(t, updated.WeeklyPoints)
	assert.Zero(t, updated.MonthlyPoints)
	assert.Equal(t, 90, updated.LifetimePoints)
}

func TestStatsAggregation(t *testing.T) {
	svc, db, user := newGamificationFixture(t)

	for _, q := range []float64{4, 6} {
		pickup := models.PickupRequest{
			ID: uuid.New(), UserID: user.ID, WasteType: "Plastic",
			ScheduledDate: "2026-09-01", PickupAddress: "x",
			Status: models.PickupVerified, ActualQuantity: q,
		}
		require.NoError(t, db.Create(&pickup).Error)
	}

	stats, err := svc.Stats(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalPickups)
	assert.Equal(t, 10.0, stats.TotalKGRecycled)
	assert.Equal(t, 1, stats.Level)
}
