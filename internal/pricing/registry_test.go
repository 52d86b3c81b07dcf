package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsWithoutConfig(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 50.0, r.RateFor("Plastic"))
	assert.Equal(t, 10, r.PointsFor("Plastic"))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	data := `[
		{"waste_type": "Plastic", "rate_per_kg": 60, "points_per_kg": 12},
		{"waste_type": "Glass", "rate_per_kg": 30, "points_per_kg": 8}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	r := NewRegistry()
	require.NoError(t, r.LoadFromFile(path))

	assert.Equal(t, 60.0, r.RateFor("plastic"))
	assert.Equal(t, 12, r.PointsFor("PLASTIC"))
	assert.Equal(t, 30.0, r.RateFor("Glass"))

	// Unknown materials fall back to the defaults.
	assert.Equal(t, 50.0, r.RateFor("Metal"))
	assert.Equal(t, 10, r.PointsFor("Metal"))
}

func TestLoadFromFileErrors(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.LoadFromFile("/nonexistent/rates.json"))

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	assert.Error(t, r.LoadFromFile(path))
}
