package pricing

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Defaults applied when a waste type has no explicit rate configured.
const (
	DefaultRatePerKG   = 50.0
	DefaultPointsPerKG = 10
)

// MaterialRate is the per-kilogram pricing for one waste type.
type MaterialRate struct {
	WasteType   string  `json:"waste_type"`
	RatePerKG   float64 `json:"rate_per_kg"`
	PointsPerKG int     `json:"points_per_kg"`
}

// Registry holds per-material rates, safe for concurrent lookup while
// a reload replaces the table.
type Registry struct {
	mu    sync.RWMutex
	rates map[string]MaterialRate
}

func NewRegistry() *Registry {
	return &Registry{rates: make(map[string]MaterialRate)}
}

// LoadFromFile replaces the rate table with the contents of a JSON file.
// The file holds an array of MaterialRate entries.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var rates []MaterialRate
	if err := json.Unmarshal(data, &rates); err != nil {
		return err
	}

	table := make(map[string]MaterialRate, len(rates))
	for _, rate := range rates {
		table[strings.ToLower(rate.WasteType)] = rate
	}

	r.mu.Lock()
	r.rates = table
	r.mu.Unlock()

	slog.Info("pricing registry loaded", "materials", len(table), "path", path)
	return nil
}

// RateFor returns the per-kg billing rate for a waste type.
func (r *Registry) RateFor(wasteType string) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rate, ok := r.rates[strings.ToLower(wasteType)]; ok && rate.RatePerKG > 0 {
		return rate.RatePerKG
	}
	return DefaultRatePerKG
}

// PointsFor returns the per-kg reward points for a waste type.
func (r *Registry) PointsFor(wasteType string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rate, ok := r.rates[strings.ToLower(wasteType)]; ok && rate.PointsPerKG > 0 {
		return rate.PointsPerKG
	}
	return DefaultPointsPerKG
}
