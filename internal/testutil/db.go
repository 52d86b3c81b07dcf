// Package testutil provides shared fixtures for service tests.
package testutil

import (
	"testing"

	"github.com/recycletrack/recycletrack-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB returns an isolated in-memory database with the full schema.
// The pool is pinned to one connection so every query sees the same
// in-memory instance.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.DriverProfile{},
		&models.PickupRequest{},
		&models.RecyclingCenter{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.WithdrawalRequest{},
		&models.Article{},
		&models.Badge{},
		&models.UserBadge{},
		&models.PointsHistory{},
		&models.Activity{},
		&models.Notification{},
		&models.PaymentRequest{},
		&models.Setting{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
