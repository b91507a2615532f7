package workshop

import (
	"errors"
	"strings"
	"testing"

	"github.com/motorhaus/garagego/internal/models"
)

func readyState() Readiness {
	return Readiness{Ready: true, MissingParts: []MissingPart{}, MissingTools: []MissingTool{}}
}

func TestEvaluateReadiness(t *testing.T) {
	parts := []models.InventoryItem{
		{ID: 1, Name: "Rotor", Status: models.StatusInStock},
		{ID: 2, Name: "Pads", Status: models.StatusWishlist},
		{ID: 3, Name: "Lines", Status: models.StatusOrdered},
	}
	tools := []models.JobTool{
		{ID: 1, Name: "Torque wrench", Required: true, IsAcquired: true},
		{ID: 2, Name: "Caliper piston tool", Required: true, IsAcquired: false},
		{ID: 3, Name: "Brake grease", Required: false, IsAcquired: false},
	}

	r := EvaluateReadiness(parts, tools)

	if r.Ready {
		t.Error("should not be ready")
	}
	if len(r.MissingParts) != 2 {
		t.Errorf("missing parts = %d, want 2", len(r.MissingParts))
	}
	if len(r.MissingTools) != 1 {
		t.Errorf("missing tools = %d, want 1 (recommended tools don't gate)", len(r.MissingTools))
	}
	if r.MissingParts[0].Status != models.StatusWishlist {
		t.Errorf("missing part carries its status, got %s", r.MissingParts[0].Status)
	}
}

func TestEvaluateReadinessReadyIffBothEmpty(t *testing.T) {
	parts := []models.InventoryItem{{ID: 1, Name: "Rotor", Status: models.StatusInStock}}
	tools := []models.JobTool{{ID: 1, Name: "Jack", Required: true, IsAcquired: true}}

	r := EvaluateReadiness(parts, tools)
	if !r.Ready {
		t.Error("all in stock and acquired should be ready")
	}

	// A job with nothing linked at all is trivially ready
	r = EvaluateReadiness(nil, nil)
	if !r.Ready {
		t.Error("empty job should be ready")
	}
}

func TestPlanTransitionDraftToReady(t *testing.T) {
	if err := CheckPlanTransition(models.PlanStatusDraft, models.PlanStatusReady, readyState()); err != nil {
		t.Errorf("ready job should transition: %v", err)
	}

	blocked := Readiness{
		MissingParts: []MissingPart{{ID: 2, Name: "Pads", Status: models.StatusWishlist}},
		MissingTools: []MissingTool{{ID: 9, Name: "Spring compressor"}},
	}
	err := CheckPlanTransition(models.PlanStatusDraft, models.PlanStatusReady, blocked)
	if err == nil {
		t.Fatal("unready job must not transition")
	}

	var gv *GuardViolation
	if !errors.As(err, &gv) {
		t.Fatalf("expected GuardViolation, got %T", err)
	}
	if len(gv.Conditions) != 2 {
		t.Errorf("violation should list each unmet condition, got %v", gv.Conditions)
	}
	if !strings.Contains(gv.Error(), "Pads") {
		t.Errorf("violation should name the missing part: %s", gv.Error())
	}
}

func TestPlanTransitionDowngradeAlwaysAllowed(t *testing.T) {
	blocked := Readiness{MissingParts: []MissingPart{{ID: 1, Name: "X", Status: models.StatusWishlist}}}
	if err := CheckPlanTransition(models.PlanStatusReady, models.PlanStatusDraft, blocked); err != nil {
		t.Errorf("ready -> draft is unconditional: %v", err)
	}
}

func TestPlanTransitionRejectsSkips(t *testing.T) {
	if err := CheckPlanTransition(models.PlanStatusDraft, models.PlanStatusActive, readyState()); err == nil {
		t.Error("draft -> active only happens through starting the job")
	}
}

func TestAllocationGate(t *testing.T) {
	wishlistPart := &models.InventoryItem{Name: "Turbo", Status: models.StatusWishlist}
	stockPart := &models.InventoryItem{Name: "Gasket", Status: models.StatusInStock}

	// Draft phase is exploratory: anything links
	if err := CheckAllocationGate(models.PlanStatusDraft, wishlistPart); err != nil {
		t.Errorf("draft job should accept wishlist part: %v", err)
	}

	for _, ps := range []models.PlanStatus{models.PlanStatusReady, models.PlanStatusActive} {
		if err := CheckAllocationGate(ps, stockPart); err != nil {
			t.Errorf("%s + in_stock should pass: %v", ps, err)
		}

		err := CheckAllocationGate(ps, wishlistPart)
		if err == nil {
			t.Fatalf("%s + wishlist must be rejected", ps)
		}
		var gv *GuardViolation
		if !errors.As(err, &gv) {
			t.Fatalf("expected GuardViolation, got %T", err)
		}
		if !strings.Contains(gv.Error(), "wishlist") {
			t.Errorf("violation should name the item's status: %s", gv.Error())
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to models.JobStatus
		ok       bool
	}{
		{models.JobStatusPlanned, models.JobStatusInProgress, true},
		{models.JobStatusInProgress, models.JobStatusCompleted, true},
		{models.JobStatusInProgress, models.JobStatusPaused, true},
		{models.JobStatusInProgress, models.JobStatusPlanned, true}, // escape hatch
		{models.JobStatusPaused, models.JobStatusInProgress, true},
		{models.JobStatusPlanned, models.JobStatusCompleted, false},
		{models.JobStatusCompleted, models.JobStatusInProgress, false},
		{models.JobStatusPlanned, models.JobStatusPlanned, true},
	}

	for _, tt := range tests {
		err := CheckStatusTransition(tt.from, tt.to)
		if (err == nil) != tt.ok {
			t.Errorf("%s -> %s: got %v, want ok=%v", tt.from, tt.to, err, tt.ok)
		}
	}
}
