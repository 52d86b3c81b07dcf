package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZero(t *testing.T) {
	assert.Zero(t, Distance(-1.2921, 36.8219, -1.2921, 36.8219))
}

func TestDistanceKnownPoints(t *testing.T) {
	// Nairobi CBD to Westlands, roughly 3.9 km.
	d := Distance(-1.2921, 36.8219, -1.2672, 36.8037)
	assert.InDelta(t, 3450, d, 500)
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(-1.30, 36.80, -1.35, 36.90)
	b := Distance(-1.35, 36.90, -1.30, 36.80)
	assert.InDelta(t, a, b, 0.0001)
}
