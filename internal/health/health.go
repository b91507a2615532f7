// Package health scores a part's remaining life from mileage and time usage
// versus its expected lifespan. Pure functions, no database access.
package health

import (
	"time"

	"github.com/motorhaus/garagego/internal/models"
)

// Status is the derived wear indicator for a part
type Status string

const (
	StatusGood     Status = "Good"
	StatusWarning  Status = "Warning"
	StatusCritical Status = "Critical"
	StatusUnknown  Status = "Unknown"
)

// UnknownReason explains why a health result is Unknown
type UnknownReason string

const (
	ReasonNoLifespan    UnknownReason = "no_lifespan"     // No lifespan data, user or default
	ReasonNoInstallData UnknownReason = "no_install_data" // Lifespan known but no install date/mileage
)

// Thresholds on remaining health percentage
const (
	criticalThreshold = 10
	warningThreshold  = 30
)

// AxisResult is the per-axis (mileage or time) usage breakdown
type AxisResult struct {
	Used       int     `json:"used"`
	Total      int     `json:"total"`
	Remaining  int     `json:"remaining"`
	Percentage float64 `json:"percentage"` // 0-100 usage
}

// Result is the combined health verdict for a part
type Result struct {
	Status             Status        `json:"status"`
	PercentageUsed     float64       `json:"percentage_used"`
	ReorderRecommended bool          `json:"reorder_recommended"`
	UnknownReason      UnknownReason `json:"unknown_reason,omitempty"`
	Mileage            *AxisResult   `json:"mileage,omitempty"`
	Time               *AxisResult   `json:"time,omitempty"`
}

// Calculate scores an inventory item against the vehicle's current odometer.
// The item's lifespan overrides win over the category defaults in def; def
// may be nil when the item has no category definition.
func Calculate(item *models.InventoryItem, def *models.ComponentType, currentOdometer int, now time.Time) Result {
	lifespanMiles := effectiveLifespan(item.LifespanMiles, defLifespanMiles(def))
	lifespanMonths := effectiveLifespan(item.LifespanMonths, defLifespanMonths(def))

	if lifespanMiles <= 0 && lifespanMonths <= 0 {
		return Result{Status: StatusUnknown, UnknownReason: ReasonNoLifespan}
	}

	var mileage, timeAxis *AxisResult

	if lifespanMiles > 0 && item.InstallMiles != nil {
		driven := currentOdometer - *item.InstallMiles
		if driven < 0 {
			driven = 0
		}
		mileage = &AxisResult{
			Used:       driven,
			Total:      lifespanMiles,
			Remaining:  max(0, lifespanMiles-driven),
			Percentage: float64(driven) / float64(lifespanMiles) * 100,
		}
	}

	if lifespanMonths > 0 && item.InstalledAt != nil {
		elapsed := monthsBetween(*item.InstalledAt, now)
		timeAxis = &AxisResult{
			Used:       elapsed,
			Total:      lifespanMonths,
			Remaining:  max(0, lifespanMonths-elapsed),
			Percentage: float64(elapsed) / float64(lifespanMonths) * 100,
		}
	}

	if mileage == nil && timeAxis == nil {
		return Result{Status: StatusUnknown, UnknownReason: ReasonNoInstallData}
	}

	// Worst axis drives the overall status
	usage := 0.0
	if mileage != nil {
		usage = mileage.Percentage
	}
	if timeAxis != nil && timeAxis.Percentage > usage {
		usage = timeAxis.Percentage
	}

	remaining := 100 - usage
	status := StatusGood
	if remaining <= criticalThreshold {
		status = StatusCritical
	} else if remaining <= warningThreshold {
		status = StatusWarning
	}

	return Result{
		Status:             status,
		PercentageUsed:     usage,
		ReorderRecommended: remaining <= warningThreshold,
		Mileage:            mileage,
		Time:               timeAxis,
	}
}

// UnknownReasonMessage returns a user-facing explanation for an Unknown result
func UnknownReasonMessage(reason UnknownReason) string {
	switch reason {
	case ReasonNoLifespan:
		return "Add expected lifespan (miles or months) to enable health tracking."
	case ReasonNoInstallData:
		return "Add install date or mileage to calculate remaining life."
	default:
		return "Missing data needed to calculate health."
	}
}

// monthsBetween counts whole calendar months on year+month only,
// ignoring day-of-month. Never negative.
func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months < 0 {
		return 0
	}
	return months
}

func effectiveLifespan(override *int, fallback int) int {
	if override != nil {
		return *override
	}
	return fallback
}

func defLifespanMiles(def *models.ComponentType) int {
	if def == nil || def.DefaultLifespanMiles == nil {
		return 0
	}
	return *def.DefaultLifespanMiles
}

func defLifespanMonths(def *models.ComponentType) int {
	if def == nil || def.DefaultLifespanMonths == nil {
		return 0
	}
	return *def.DefaultLifespanMonths
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
