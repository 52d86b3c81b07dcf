// Package finance centralizes payout and revenue math. The earnings formula
// is intentionally defined once here and consumed by wallet, admin analytics
// and billing code alike.
package finance

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/recycletrack/recycletrack-backend/internal/models"
)

const (
	// BaseFee is the flat amount a driver earns per completed job.
	BaseFee = 100.0
	// CommissionRate is the driver's cut of the billed amount.
	CommissionRate = 0.20
)

// Earnings returns the driver payout for a job with the given billed amount.
// A zero bill still pays the base fee.
func Earnings(billedAmount float64) float64 {
	return BaseFee + billedAmount*CommissionRate
}

// Summary is the company-level financial rollup over a pickup history.
type Summary struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalDriverPayouts float64 `json:"total_driver_payouts"`
	NetCompanyRevenue  float64 `json:"net_company_revenue"`
	JobCount           int     `json:"job_count"`
}

// Summarize computes the revenue rollup over a set of pickups.
func Summarize(history []models.PickupRequest) Summary {
	var s Summary
	for _, p := range history {
		s.TotalRevenue += p.BilledAmount
		s.TotalDriverPayouts += Earnings(p.BilledAmount)
		s.JobCount++
	}
	s.NetCompanyRevenue = s.TotalRevenue - s.TotalDriverPayouts
	return s
}

// DriverStat is one driver's aggregate over a pickup history.
type DriverStat struct {
	DriverID uuid.UUID `json:"driver_id"`
	Name     string    `json:"name"`
	JobCount int       `json:"job_count"`
	TotalKG  float64   `json:"total_kg"`
	Earnings float64   `json:"earnings"`
}

// PerDriver aggregates earnings per collector and returns stats sorted by
// earnings descending. Pickups without a collector are skipped. Names are
// resolved from the drivers map when present.
func PerDriver(history []models.PickupRequest, drivers map[uuid.UUID]string) []DriverStat {
	byDriver := make(map[uuid.UUID]*DriverStat)
	for _, p := range history {
		if p.CollectorID == nil {
			continue
		}
		id := *p.CollectorID
		stat, ok := byDriver[id]
		if !ok {
			stat = &DriverStat{DriverID: id, Name: drivers[id]}
			byDriver[id] = stat
		}
		stat.JobCount++
		stat.TotalKG += p.ActualQuantity
		stat.Earnings += Earnings(p.BilledAmount)
	}

	stats := make([]DriverStat, 0, len(byDriver))
	for _, stat := range byDriver {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Earnings != stats[j].Earnings {
			return stats[i].Earnings > stats[j].Earnings
		}
		return stats[i].DriverID.String() < stats[j].DriverID.String()
	})
	return stats
}

// WasteSlice is one waste type's share of the pickup history.
type WasteSlice struct {
	WasteType  string  `json:"waste_type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// WasteBreakdown counts pickups per waste type with rounded percentages.
// An empty history yields no rows.
func WasteBreakdown(history []models.PickupRequest) []WasteSlice {
	counts := make(map[string]int)
	for _, p := range history {
		counts[p.WasteType]++
	}

	total := len(history)
	if total == 0 {
		total = 1
	}

	slices := make([]WasteSlice, 0, len(counts))
	for wt, count := range counts {
		slices = append(slices, WasteSlice{
			WasteType:  wt,
			Count:      count,
			Percentage: math.Round(float64(count) / float64(total) * 100),
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].WasteType < slices[j].WasteType
	})
	return slices
}
