package workshop

import (
	"testing"

	"github.com/motorhaus/garagego/internal/models"
)

func TestPlanSplitRejectsNonPositiveQty(t *testing.T) {
	item := &models.InventoryItem{Quantity: 4}

	for _, qty := range []int{0, -1, -100} {
		if _, err := PlanSplit(item, qty); err == nil {
			t.Errorf("qty %d: expected validation error", qty)
		}
	}
}

func TestPlanSplitWholeRecord(t *testing.T) {
	item := &models.InventoryItem{ID: 7, Quantity: 4}

	for _, qty := range []int{4, 5, 100} {
		plan, err := PlanSplit(item, qty)
		if err != nil {
			t.Fatalf("qty %d: %v", qty, err)
		}
		if !plan.LinkWhole {
			t.Errorf("qty %d >= quantity should link whole record", qty)
		}
		if plan.Clone != nil {
			t.Errorf("qty %d: no clone expected", qty)
		}
	}
}

func TestPlanSplitConservesQuantity(t *testing.T) {
	item := &models.InventoryItem{
		ID:       3,
		Name:     "Brake Pad Set",
		Status:   models.StatusInStock,
		Quantity: 4,
	}

	for qty := 1; qty < item.Quantity; qty++ {
		plan, err := PlanSplit(item, qty)
		if err != nil {
			t.Fatalf("qty %d: %v", qty, err)
		}
		if plan.LinkWhole {
			t.Fatalf("qty %d < quantity should split", qty)
		}
		if plan.RemainderQty+plan.Clone.Quantity != item.Quantity {
			t.Errorf("qty %d: %d + %d != %d", qty, plan.RemainderQty, plan.Clone.Quantity, item.Quantity)
		}
	}
}

func TestPlanSplitCloneKeepsIdentityNotLinkage(t *testing.T) {
	price := 120.0
	lifespan := 30000
	orderID := uint(9)

	item := &models.InventoryItem{
		ID:            3,
		Name:          "Coilover",
		Category:      "suspension",
		PartNumber:    "KW-352",
		Status:        models.StatusInStock,
		PurchasePrice: &price,
		LifespanMiles: &lifespan,
		OrderID:       &orderID,
		Quantity:      4,
	}

	plan, err := PlanSplit(item, 1)
	if err != nil {
		t.Fatal(err)
	}

	c := plan.Clone
	if c.Name != item.Name || c.Category != item.Category || c.PartNumber != item.PartNumber {
		t.Error("clone should carry identity fields")
	}
	if c.Status != item.Status {
		t.Errorf("clone status = %s, want %s", c.Status, item.Status)
	}
	if c.LifespanMiles != item.LifespanMiles {
		t.Error("clone should carry lifespan override")
	}
	if c.OrderID != nil {
		t.Error("clone must not inherit the order linkage")
	}
	if c.ID != 0 {
		t.Error("clone must be a fresh record")
	}
}
