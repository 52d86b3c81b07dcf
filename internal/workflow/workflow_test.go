package workflow

import (
	"testing"

	"github.com/recycletrack/recycletrack-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLegalTransitions(t *testing.T) {
	cases := []struct {
		from  models.PickupStatus
		event Event
		to    models.PickupStatus
	}{
		{models.PickupPending, EventAssign, models.PickupAssigned},
		{models.PickupPending, EventReject, models.PickupRejected},
		{models.PickupAssigned, EventCollect, models.PickupCollected},
		{models.PickupAssigned, EventReject, models.PickupRejected},
		{models.PickupCollected, EventVerify, models.PickupVerified},
		{models.PickupCollected, EventReject, models.PickupRejected},
	}

	for _, tc := range cases {
		next, err := Apply(tc.from, tc.event)
		assert.NoError(t, err, "%s --%s-->", tc.from, tc.event)
		assert.Equal(t, tc.to, next)
	}
}

func TestIllegalTransitions(t *testing.T) {
	cases := []struct {
		from  models.PickupStatus
		event Event
	}{
		{models.PickupPending, EventCollect},
		{models.PickupPending, EventVerify},
		{models.PickupAssigned, EventAssign},
		{models.PickupAssigned, EventVerify},
		{models.PickupCollected, EventAssign},
		{models.PickupVerified, EventReject},
		{models.PickupVerified, EventVerify},
		{models.PickupRejected, EventAssign},
		{models.PickupRejected, EventReject},
	}

	for _, tc := range cases {
		_, err := Apply(tc.from, tc.event)
		assert.ErrorIs(t, err, ErrIllegalTransition, "%s --%s-->", tc.from, tc.event)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, Terminal(models.PickupVerified))
	assert.True(t, Terminal(models.PickupRejected))
	assert.False(t, Terminal(models.PickupPending))
	assert.False(t, Terminal(models.PickupAssigned))
	assert.False(t, Terminal(models.PickupCollected))
}

func TestCanApply(t *testing.T) {
	assert.True(t, CanApply(models.PickupPending, EventAssign))
	assert.False(t, CanApply(models.PickupVerified, EventReject))
}
