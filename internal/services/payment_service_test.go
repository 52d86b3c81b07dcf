package services

import (
	"testing"

	"github.com/recycletrack/recycletrack-backend/internal/dto"
	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billedPickup(t *testing.T, f *pickupFixture) *models.PickupRequest {
	pickup := f.create(t)
	_, err := f.pickups.Assign(pickup.ID, &dto.AssignPickupRequest{CollectorID: f.driver.ID})
	require.NoError(t, err)
	billed, err := f.pickups.Bill(pickup.ID, f.driver.ID, &dto.BillPickupRequest{Weight: 10})
	require.NoError(t, err)
	return billed
}

func TestInitiatePayment(t *testing.T) {
	f := newPickupFixture(t)
	svc := NewPaymentService(f.db, f.pickups)
	pickup := billedPickup(t, f)

	resp, err := svc.Initiate(f.resident.ID, &dto.InitiatePaymentRequest{
		PickupID: pickup.ID, Phone: "0712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, resp.Status)
	assert.Equal(t, pickup.BilledAmount, resp.Amount)
	assert.NotEmpty(t, resp.Reference)
}

func TestInitiatePaymentRequiresBilledPickup(t *testing.T) {
	f := newPickupFixture(t)
	svc := NewPaymentService(f.db, f.pickups)
	pickup := f.create(t)

	_, err := svc.Initiate(f.resident.ID, &dto.InitiatePaymentRequest{
		PickupID: pickup.ID, Phone: "0712345678",
	})
	assert.ErrorIs(t, err, ErrNothingToPay)
}

func TestInitiatePaymentWrongUser(t *testing.T) {
	f := newPickupFixture(t)
	svc := NewPaymentService(f.db, f.pickups)
	pickup := billedPickup(t, f)

	_, err := svc.Initiate(f.driver.ID, &dto.InitiatePaymentRequest{
		PickupID: pickup.ID, Phone: "0712345678",
	})
	assert.ErrorIs(t, err, ErrPickupNotFound)
}

func TestCallbackCompletesPaymentAndMarksPickupPaid(t *testing.T) {
	f := newPickupFixture(t)
	svc := NewPaymentService(f.db, f.pickups)
	pickup := billedPickup(t, f)

	resp, err := svc.Initiate(f.resident.ID, &dto.InitiatePaymentRequest{
		PickupID: pickup.ID, Phone: "0712345678",
	})
	require.NoError(t, err)

	require.NoError(t, svc.HandleCallback(&dto.PaymentCallbackRequest{
		Reference: resp.Reference, ResultCode: 0, Receipt: "QHX12345",
	}))

	var updated models.PickupRequest
	require.NoError(t, f.db.First(&updated, "id = ?", pickup.ID).Error)
	assert.True(t, updated.IsPaid)

	status, err := svc.Status(f.resident.ID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, status.Status)

	// Replays are ignored.
	require.NoError(t, svc.HandleCallback(&dto.PaymentCallbackRequest{
		Reference: resp.Reference, ResultCode: 1,
	}))
	status, err = svc.Status(f.resident.ID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, status.Status)
}

func TestCallbackFailureLeavesPickupUnpaid(t *testing.T) {
	f := newPickupFixture(t)
	svc := NewPaymentService(f.db, f.pickups)
	pickup := billedPickup(t, f)

	resp, err := svc.Initiate(f.resident.ID, &dto.InitiatePaymentRequest{
		PickupID: pickup.ID, Phone: "0712345678",
	})
	require.NoError(t, err)

	require.NoError(t, svc.HandleCallback(&dto.PaymentCallbackRequest{
		Reference: resp.Reference, ResultCode: 1032, ResultDesc: "Cancelled by user",
	}))

	var updated models.PickupRequest
	require.NoError(t, f.db.First(&updated, "id = ?", pickup.ID).Error)
	assert.False(t, updated.IsPaid)

	status, err := svc.Status(f.resident.ID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, status.Status)
}

func TestCallbackUnknownReference(t *testing.T) {
	f := newPickupFixture(t)
	svc := NewPaymentService(f.db, f.pickups)

	err := svc.HandleCallback(&dto.PaymentCallbackRequest{Reference: "RT-unknown"})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestDoubleInitiateAfterPaymentConflicts(t *testing.T) {
	f := newPickupFixture(t)
	svc := NewPaymentService(f.db, f.pickups)
	pickup := billedPickup(t, f)

	resp, err := svc.Initiate(f.resident.ID, &dto.InitiatePaymentRequest{
		PickupID: pickup.ID, Phone: "0712345678",
	})
	require.NoError(t, err)
	require.NoError(t, svc.HandleCallback(&dto.PaymentCallbackRequest{Reference: resp.Reference}))

	_, err = svc.Initiate(f.resident.ID, &dto.InitiatePaymentRequest{
		PickupID: pickup.ID, Phone: "0712345678",
	})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}
