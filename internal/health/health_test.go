package health

import (
	"testing"
	"time"

	"github.com/motorhaus/garagego/internal/models"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestNoLifespanIsUnknown(t *testing.T) {
	item := &models.InventoryItem{
		InstallMiles: intPtr(10000),
		InstalledAt:  timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	res := Calculate(item, nil, 50000, time.Now())
	if res.Status != StatusUnknown {
		t.Fatalf("expected Unknown, got %s", res.Status)
	}
	if res.UnknownReason != ReasonNoLifespan {
		t.Errorf("expected no_lifespan, got %s", res.UnknownReason)
	}

	// Zero/negative lifespans count as absent
	item.LifespanMiles = intPtr(0)
	item.LifespanMonths = intPtr(-5)
	res = Calculate(item, nil, 50000, time.Now())
	if res.Status != StatusUnknown || res.UnknownReason != ReasonNoLifespan {
		t.Errorf("zero lifespan should be Unknown/no_lifespan, got %s/%s", res.Status, res.UnknownReason)
	}
}

func TestNoInstallDataIsUnknown(t *testing.T) {
	item := &models.InventoryItem{
		LifespanMiles:  intPtr(30000),
		LifespanMonths: intPtr(36),
	}

	res := Calculate(item, nil, 50000, time.Now())
	if res.Status != StatusUnknown {
		t.Fatalf("expected Unknown, got %s", res.Status)
	}
	if res.UnknownReason != ReasonNoInstallData {
		t.Errorf("expected no_install_data, got %s", res.UnknownReason)
	}
}

func TestMileageThresholds(t *testing.T) {
	tests := []struct {
		name     string
		odometer int
		want     Status
		reorder  bool
	}{
		{"fresh part", 10000, StatusGood, false},
		{"60 percent used is still Good", 28000, StatusGood, false},
		{"exactly 70 percent used hits Warning", 31000, StatusWarning, true},
		{"exactly 90 percent used hits Critical", 37000, StatusCritical, true},
		{"fully used", 40000, StatusCritical, true},
		{"over lifespan", 60000, StatusCritical, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &models.InventoryItem{
				InstallMiles:  intPtr(10000),
				LifespanMiles: intPtr(30000),
			}
			res := Calculate(item, nil, tt.odometer, time.Now())
			if res.Status != tt.want {
				t.Errorf("odometer %d: got %s, want %s (used %.1f%%)", tt.odometer, res.Status, tt.want, res.PercentageUsed)
			}
			if res.ReorderRecommended != tt.reorder {
				t.Errorf("odometer %d: reorder = %v, want %v", tt.odometer, res.ReorderRecommended, tt.reorder)
			}
		})
	}
}

func TestMileageBreakdown(t *testing.T) {
	item := &models.InventoryItem{
		InstallMiles:  intPtr(10000),
		LifespanMiles: intPtr(30000),
	}

	res := Calculate(item, nil, 28000, time.Now())
	if res.Mileage == nil {
		t.Fatal("expected mileage breakdown")
	}
	if res.Mileage.Used != 18000 {
		t.Errorf("used = %d, want 18000", res.Mileage.Used)
	}
	if res.Mileage.Remaining != 12000 {
		t.Errorf("remaining = %d, want 12000", res.Mileage.Remaining)
	}
	if res.PercentageUsed != 60 {
		t.Errorf("percentage = %.1f, want 60", res.PercentageUsed)
	}
	// remaining health 40 > 30, so Good per the exact thresholds
	if res.Status != StatusGood {
		t.Errorf("status = %s, want Good", res.Status)
	}
}

func TestCategoryDefaultFallback(t *testing.T) {
	def := &models.ComponentType{DefaultLifespanMiles: intPtr(30000)}
	item := &models.InventoryItem{InstallMiles: intPtr(0)}

	res := Calculate(item, def, 15000, time.Now())
	if res.Status != StatusGood {
		t.Errorf("status = %s, want Good", res.Status)
	}
	if res.PercentageUsed != 50 {
		t.Errorf("percentage = %.1f, want 50", res.PercentageUsed)
	}

	// Item override wins over the default
	item.LifespanMiles = intPtr(15000)
	res = Calculate(item, def, 15000, time.Now())
	if res.Status != StatusCritical {
		t.Errorf("override: status = %s, want Critical", res.Status)
	}
}

func TestWholeMonthArithmetic(t *testing.T) {
	// Installed Jan 31, checked Feb 1 the same year: one calendar month
	// boundary crossed, day-of-month ignored.
	installed := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	item := &models.InventoryItem{
		InstalledAt:    timePtr(installed),
		LifespanMonths: intPtr(12),
	}

	res := Calculate(item, nil, 0, now)
	if res.Time == nil {
		t.Fatal("expected time breakdown")
	}
	if res.Time.Used != 1 {
		t.Errorf("months used = %d, want 1", res.Time.Used)
	}
}

func TestFutureInstallNeverNegative(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0)
	item := &models.InventoryItem{
		InstalledAt:    timePtr(future),
		InstallMiles:   intPtr(60000),
		LifespanMiles:  intPtr(30000),
		LifespanMonths: intPtr(12),
	}

	res := Calculate(item, nil, 50000, time.Now())
	if res.PercentageUsed != 0 {
		t.Errorf("usage should clamp to 0, got %.1f", res.PercentageUsed)
	}
	if res.Status != StatusGood {
		t.Errorf("status = %s, want Good", res.Status)
	}
}

func TestWorstAxisWins(t *testing.T) {
	installed := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) // 48 months

	item := &models.InventoryItem{
		InstalledAt:    timePtr(installed),
		InstallMiles:   intPtr(0),
		LifespanMiles:  intPtr(100000), // barely used by miles
		LifespanMonths: intPtr(48),     // exactly used up by time
	}

	res := Calculate(item, nil, 5000, now)
	if res.PercentageUsed != 100 {
		t.Errorf("worst axis should drive usage, got %.1f", res.PercentageUsed)
	}
	if res.Status != StatusCritical {
		t.Errorf("status = %s, want Critical", res.Status)
	}
}

func TestHealthMonotonicity(t *testing.T) {
	item := &models.InventoryItem{
		InstallMiles:  intPtr(0),
		LifespanMiles: intPtr(30000),
	}

	prev := -1.0
	for odo := 0; odo <= 60000; odo += 1500 {
		res := Calculate(item, nil, odo, time.Now())
		if res.PercentageUsed < prev {
			t.Fatalf("usage decreased from %.2f to %.2f at odometer %d", prev, res.PercentageUsed, odo)
		}
		prev = res.PercentageUsed
	}
}
