package workshop

import (
	"testing"

	"github.com/motorhaus/garagego/internal/models"
)

func kitSource() *models.InventoryItem {
	return &models.InventoryItem{
		ID:        42,
		UserID:    "u-1",
		VehicleID: 5,
		Name:      "Coilover Kit",
		Category:  "suspension",
		Status:    models.StatusInStock,
		Quantity:  1,
	}
}

func TestPlanDecompositionLineage(t *testing.T) {
	children := []DecomposeChild{
		{Name: "Front Coilover Pair", Quantity: 2, Visibility: models.VisibilityPublic},
		{Name: "Rear Coilover Pair", Quantity: 2, Visibility: models.VisibilityPublic},
		{Name: "Top Hat Bolts", Quantity: 8, Visibility: models.VisibilityHardware, ParentIndex: intp(0), IsReusable: true},
	}

	plan, err := PlanDecomposition(kitSource(), children)
	if err != nil {
		t.Fatal(err)
	}

	if len(plan.Public) != 2 || len(plan.Hardware) != 1 {
		t.Fatalf("got %d public, %d hardware", len(plan.Public), len(plan.Hardware))
	}

	for _, item := range append(append([]*models.InventoryItem{}, plan.Public...), plan.Hardware...) {
		if item.InventorySourceID == nil || *item.InventorySourceID != 42 {
			t.Errorf("%s: missing source lineage", item.Name)
		}
		if item.InstallGroupID == nil || *item.InstallGroupID != plan.InstallGroupID {
			t.Errorf("%s: missing install group", item.Name)
		}
	}

	for _, pub := range plan.Public {
		if pub.Status != models.StatusInStock {
			t.Errorf("%s: public child status = %s, want in_stock", pub.Name, pub.Status)
		}
		if pub.ParentID != nil {
			t.Errorf("%s: public child must not have a parent", pub.Name)
		}
	}

	if !plan.Hardware[0].IsReusable {
		t.Error("is_reusable must be stored verbatim")
	}
}

func TestPlanDecompositionResolvesParentAfterInsert(t *testing.T) {
	children := []DecomposeChild{
		{Name: "Strut", Quantity: 2, Visibility: models.VisibilityPublic},
		{Name: "Strut Nuts", Quantity: 6, Visibility: models.VisibilityHardware, ParentIndex: intp(0)},
	}

	plan, err := PlanDecomposition(kitSource(), children)
	if err != nil {
		t.Fatal(err)
	}

	// Before ids exist the hardware has no parent yet
	if plan.Hardware[0].ParentID != nil {
		t.Fatal("parent must resolve only after public inserts")
	}

	plan.Public[0].ID = 101 // simulate the insert assigning an id
	plan.ResolveHardwareParents()

	if plan.Hardware[0].ParentID == nil || *plan.Hardware[0].ParentID != 101 {
		t.Errorf("hardware parent = %v, want 101", plan.Hardware[0].ParentID)
	}
}

func TestPlanDecompositionOrphanedHardware(t *testing.T) {
	tests := []struct {
		name        string
		parentIndex *int
	}{
		{"nil parent", nil},
		{"out of bounds", intp(9)},
		{"negative", intp(-2)},
		{"points at hardware sibling", intp(2)},
		{"points at itself", intp(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			children := []DecomposeChild{
				{Name: "Bracket", Quantity: 1, Visibility: models.VisibilityPublic},
				{Name: "Clips", Quantity: 4, Visibility: models.VisibilityHardware, ParentIndex: tt.parentIndex},
				{Name: "Washers", Quantity: 4, Visibility: models.VisibilityHardware},
			}

			plan, err := PlanDecomposition(kitSource(), children)
			if err != nil {
				t.Fatalf("partial success preferred, got error: %v", err)
			}

			plan.Public[0].ID = 55
			plan.ResolveHardwareParents()

			if plan.Hardware[0].ParentID != nil {
				t.Errorf("unresolvable parentIndex should leave hardware orphaned, got %d", *plan.Hardware[0].ParentID)
			}
		})
	}
}

func TestPlanDecompositionValidation(t *testing.T) {
	src := kitSource()

	if _, err := PlanDecomposition(src, nil); err == nil {
		t.Error("empty children should be rejected")
	}

	bad := []DecomposeChild{{Name: "", Visibility: models.VisibilityPublic}}
	if _, err := PlanDecomposition(src, bad); err == nil {
		t.Error("nameless child should be rejected")
	}

	bad = []DecomposeChild{{Name: "X", Visibility: models.VisibilityHistoryOnly}}
	if _, err := PlanDecomposition(src, bad); err == nil {
		t.Error("history_only is not a valid child visibility")
	}
}

func intp(n int) *int { return &n }
