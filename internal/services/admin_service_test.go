package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifiedPickup drives one pickup through the full lifecycle so that it
// lands in the verified history the financials are computed from.
func verifiedPickup(t *testing.T, f *pickupFixture, weight float64) *models.PickupRequest {
	t.Helper()
	pickup := f.create(t)
	_, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: f.driver.ID})
	require.NoError(t, err)
	_, err = f.pickups.Bill(pickup.ID, f.driver.ID, &dto.BillPickupRequest{Weight: weight})
	require.NoError(t, err)
	require.NoError(t, f.pickups.MarkPaid(pickup.ID))
	verified, err := f.pickups.Verify(pickup.ID)
	require.NoError(t, err)
	return verified
}

func TestFinancialsComposition(t *testing.T) {
	f := newPickupFixture(t)
	admin := NewAdminService(f.db, f.pickups)

	// 10 kg -> billed 500, payout 200; 4 kg -> billed 200, payout 140.
	verifiedPickup(t, f, 10)
	verifiedPickup(t, f, 4)

	resp, err := admin.Financials()
	require.NoError(t, err)

	assert.Equal(t, 700.0, resp.Summary.TotalRevenue)
	assert.Equal(t, 340.0, resp.Summary.TotalDriverPayouts)
	assert.Equal(t, 360.0, resp.Summary.NetCompanyRevenue)
	assert.Equal(t, 2, resp.Summary.JobCount)

	require.Len(t, resp.DriverStats, 1)
	assert.Equal(t, "Driver", resp.DriverStats[0].Name)
	assert.Equal(t, 340.0, resp.DriverStats[0].Earnings)
	assert.Equal(t, 14.0, resp.DriverStats[0].TotalKG)

	require.Len(t, resp.WasteBreakdown, 1)
	assert.Equal(t, "Plastic", resp.WasteBreakdown[0].WasteType)
	assert.Equal(t, 100.0, resp.WasteBreakdown[0].Percentage)
}

func TestCreateAndDeleteCollector(t *testing.T) {
	f := newPickupFixture(t)
	admin := NewAdminService(f.db, f.pickups)

	created, err := admin.CreateDriver(&dto.CreateDriverRequest{
		Email:     "newdriver@example.com",
		Password:  "password123",
		FullName:  "New Driver",
		LicenseNo: "DL-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleServiceProvider, created.Role)

	var wallet models.Wallet
	require.NoError(t, f.db.First(&wallet, "user_id = ?", created.ID).Error)

	require.NoError(t, admin.DeleteCollector(created.ID))

	var count int64
	f.db.Model(&models.User{}).Where("id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
	f.db.Model(&models.Wallet{}).Where("user_id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
	f.db.Model(&models.DriverProfile{}).Where("user_id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteCollectorWithOpenJobs(t *testing.T) {
	f := newPickupFixture(t)
	admin := NewAdminService(f.db, f.pickups)

	pickup := f.create(t)
	_, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: f.driver.ID})
	require.NoError(t, err)

	err = admin.DeleteCollector(f.driver.ID)
	assert.ErrorIs(t, err, ErrDriverHasOpenJobs)
}

func TestDeleteCollectorRejectsNonDrivers(t *testing.T) {
	f := newPickupFixture(t)
	admin := NewAdminService(f.db, f.pickups)

	assert.ErrorIs(t, admin.DeleteCollector(f.resident.ID), ErrUserNotFound)
	assert.ErrorIs(t, admin.DeleteCollector(uuid.New()), ErrUserNotFound)
}

func TestUpdateDriverDocsDropsVerification(t *testing.T) {
	f := newPickupFixture(t)
	admin := NewAdminService(f.db, f.pickups)

	require.NoError(t, admin.VerifyDriver(f.driver.ID))

	profile, err := admin.UpdateDriverDocs(f.driver.ID, &dto.DriverDocsRequest{
		LicenseNo: "DL-9999",
	})
	require.NoError(t, err)

	var updated models.DriverProfile
	require.NoError(t, f.db.First(&updated, "id = ?", profile.ID).Error)
	assert.Equal(t, "DL-9999", updated.LicenseNo)
	assert.False(t, updated.IsVerified)
}

func TestDeactivateUserRevokesSessions(t *testing.T) {
	f := newPickupFixture(t)
	admin := NewAdminService(f.db, f.pickups)

	token := models.RefreshToken{
		ID: uuid.New(), UserID: f.driver.ID, TokenHash: "abc",
	}
	require.NoError(t, f.db.Create(&token).Error)

	inactive := false
	_, err := admin.UpdateUser(f.driver.ID, &dto.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)

	var updated models.RefreshToken
	require.NoError(t, f.db.First(&updated, "id = ?", token.ID).Error)
	assert.True(t, updated.Revoked)
}
