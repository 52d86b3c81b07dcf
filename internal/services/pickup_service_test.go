package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/recycletrack/recycletrack-backend/internal/pricing"
	"github.com/recycletrack/recycletrack-backend/internal/testutil"
	"github.com/recycletrack/recycletrack-backend/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type pickupFixture struct {
	db       *gorm.DB
	pickups  *PickupService
	wallets  *WalletService
	resident models.User
	driver   models.User
}

func newPickupFixture(t *testing.T) *pickupFixture {
	db := testutil.OpenTestDB(t)
	rates := pricing.NewRegistry()
	wallets := NewWalletService(db)
	gamification := NewGamificationService(db, rates)
	notifications := NewNotificationService(db)
	pickups := NewPickupService(db, rates, wallets, gamification, notifications)

	f := &pickupFixture{db: db, pickups: pickups, wallets: wallets}

	f.resident = models.User{
		ID: uuid.New(), Email: "resident@example.com", Password: "x",
		FullName: "Resident", Role: models.RoleResident, IsActive: true,
	}
	f.driver = models.User{
		ID: uuid.New(), Email: "driver@example.com", Password: "x",
		FullName: "Driver", Role: models.RoleServiceProvider, IsActive: true,
	}
	require.NoError(t, db.Create(&f.resident).Error)
	require.NoError(t, db.Create(&f.driver).Error)
	require.NoError(t, db.Create(&models.DriverProfile{ID: uuid.New(), UserID: f.driver.ID, IsVerified: true}).Error)
	require.NoError(t, db.Create(&models.Wallet{ID: uuid.New(), UserID: f.driver.ID}).Error)
	return f
}

func (f *pickupFixture) create(t *testing.T) *models.PickupRequest {
	pickup, err := f.pickups.Create(f.resident.ID, &dto.CreatePickupRequest{
		WasteType:     "Plastic",
		Quantity:      "about 2 bags",
		ScheduledDate: "2026-09-01",
		PickupAddress: "12 Ngong Road",
		Region:        "Nairobi",
	})
	require.NoError(t, err)
	return pickup
}

func TestCreatePickupValidation(t *testing.T) {
	f := newPickupFixture(t)

	_, err := f.pickups.Create(f.resident.ID, &dto.CreatePickupRequest{WasteType: "Plastic"})
	assert.Error(t, err)

	_, err = f.pickups.Create(f.resident.ID, &dto.CreatePickupRequest{
		WasteType: "Plastic", ScheduledDate: "01/09/2026", PickupAddress: "somewhere",
	})
	assert.Error(t, err)
}

func TestCreatePickupRejectsIncompatibleCenter(t *testing.T) {
	f := newPickupFixture(t)

	center := models.RecyclingCenter{
		ID: uuid.New(), Name: "Paper Only", Address: "x",
		AcceptedMaterials: "Paper, Cardboard", IsActive: true,
	}
	require.NoError(t, f.db.Create(&center).Error)

	_, err := f.pickups.Create(f.resident.ID, &dto.CreatePickupRequest{
		WasteType:     "Plastic",
		CenterID:      &center.ID,
		ScheduledDate: "2026-09-01",
		PickupAddress: "12 Ngong Road",
	})
	assert.ErrorIs(t, err, ErrCenterRejectsWaste)
}

func TestFullPickupLifecycle(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)
	assert.Equal(t, models.PickupPending, pickup.Status)

	assigned, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: f.driver.ID})
	require.NoError(t, err)
	assert.Equal(t, models.PickupAssigned, assigned.Status)
	assert.NotNil(t, assigned.AssignedAt)

	billed, err := f.pickups.Bill(pickup.ID, f.driver.ID, &dto.BillPickupRequest{Weight: 10})
	require.NoError(t, err)
	assert.Equal(t, models.PickupCollected, billed.Status)
	assert.Equal(t, 500.0, billed.BilledAmount) // 10 kg at the default 50/kg

	// Billing parks the payout as pending.
	wallet, err := f.wallets.Wallet(f.driver.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, wallet.PendingAmount)
	assert.Zero(t, wallet.Balance)

	require.NoError(t, f.pickups.MarkPaid(pickup.ID))

	verified, err := f.pickups.Verify(pickup.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PickupVerified, verified.Status)

	// Verification releases the payout and pays points.
	wallet, err = f.wallets.Wallet(f.driver.ID)
	require.NoError(t, err)
	assert.Zero(t, wallet.PendingAmount)
	assert.Equal(t, 200.0, wallet.Balance)
	assert.Equal(t, 200.0, wallet.TotalEarned)

	var resident models.User
	require.NoError(t, f.db.First(&resident, "id = ?", f.resident.ID).Error)
	assert.Equal(t, 100, resident.RedeemablePoints) // 10 kg at 10 points/kg
}

func TestBillRejectsNonPositiveWeight(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)
	_, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: f.driver.ID})
	require.NoError(t, err)

	_, err = f.pickups.Bill(pickup.ID, f.driver.ID, &dto.BillPickupRequest{Weight: 0})
	assert.ErrorIs(t, err, ErrInvalidWeight)

	_, err = f.pickups.Bill(pickup.ID, f.driver.ID, &dto.BillPickupRequest{Weight: -3})
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestBillRequiresAssignedCollector(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)
	_, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: f.driver.ID})
	require.NoError(t, err)

	_, err = f.pickups.Bill(pickup.ID, uuid.New(), &dto.BillPickupRequest{Weight: 5})
	assert.ErrorIs(t, err, ErrNotYourJob)
}

func TestVerifyRequiresPayment(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)
	_, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: f.driver.ID})
	require.NoError(t, err)
	_, err = f.pickups.Bill(pickup.ID, f.driver.ID, &dto.BillPickupRequest{Weight: 10})
	require.NoError(t, err)

	_, err = f.pickups.Verify(pickup.ID)
	assert.ErrorIs(t, err, ErrUnpaidPickup)
}

func TestVerifyPendingPickupIsIllegal(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)

	_, err := f.pickups.Verify(pickup.ID)
	assert.ErrorIs(t, err, workflow.ErrIllegalTransition)
}

func TestRejectRequiresReason(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)

	_, err := f.pickups.Reject(pickup.ID, &dto.RejectPickupRequest{})
	assert.ErrorIs(t, err, ErrRejectReasonRequired)
}

func TestRejectTerminalPickupFails(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)

	_, err := f.pickups.Reject(pickup.ID, &dto.RejectPickupRequest{Reason: "duplicate"})
	require.NoError(t, err)

	_, err = f.pickups.Reject(pickup.ID, &dto.RejectPickupRequest{Reason: "again"})
	assert.ErrorIs(t, err, workflow.ErrIllegalTransition)
}

func TestRejectBilledJobCancelsPendingEarnings(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)
	_, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: f.driver.ID})
	require.NoError(t, err)
	_, err = f.pickups.Bill(pickup.ID, f.driver.ID, &dto.BillPickupRequest{Weight: 10})
	require.NoError(t, err)

	_, err = f.pickups.Reject(pickup.ID, &dto.RejectPickupRequest{Reason: "resident cancelled"})
	require.NoError(t, err)

	wallet, err := f.wallets.Wallet(f.driver.ID)
	require.NoError(t, err)
	assert.Zero(t, wallet.PendingAmount)
	assert.Zero(t, wallet.Balance)
}

func TestAssignUnknownCollector(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)

	_, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: uuid.New()})
	assert.ErrorIs(t, err, ErrCollectorNotFound)
}

func TestAssignRequiresVerifiedDriver(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)

	unvetted := models.User{
		ID: uuid.New(), Email: "unvetted@example.com", Password: "x",
		FullName: "Unvetted", Role: models.RoleServiceProvider, IsActive: true,
	}
	require.NoError(t, f.db.Create(&unvetted).Error)
	require.NoError(t, f.db.Create(&models.DriverProfile{ID: uuid.New(), UserID: unvetted.ID}).Error)

	_, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: unvetted.ID})
	assert.ErrorIs(t, err, ErrCollectorNotVerified)
}

func TestMarkPaidOnlyWhenCollected(t *testing.T) {
	f := newPickupFixture(t)
	pickup := f.create(t)

	err := f.pickups.MarkPaid(pickup.ID)
	assert.ErrorIs(t, err, workflow.ErrIllegalTransition)
}

func TestPendingGroupsByDay(t *testing.T) {
	f := newPickupFixture(t)
	f.create(t)
	f.create(t)

	groups, err := f.pickups.Pending()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Pickups, 2)
	assert.Equal(t, "Resident", groups[0].Pickups[0].ResidentName)
}
