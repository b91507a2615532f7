package workshop

import (
	"github.com/motorhaus/garagego/internal/models"
)

// SplitPlan describes how a requested allocation maps onto an inventory
// record: either the whole record is linked, or the original is decremented
// and a clone with the allocated quantity is created and linked instead.
type SplitPlan struct {
	// LinkWhole is true when the full record is allocated and no new row is needed
	LinkWhole bool
	// RemainderQty is the original record's quantity after the split
	RemainderQty int
	// Clone is the new record to insert when LinkWhole is false
	Clone *models.InventoryItem
	// QtyUsed is recorded on the job link
	QtyUsed int
}

// PlanSplit decides how to allocate qty units out of item. It does not touch
// the database; the caller applies the plan inside a transaction.
func PlanSplit(item *models.InventoryItem, qty int) (*SplitPlan, error) {
	if qty <= 0 {
		return nil, validationf("allocation quantity must be positive, got %d", qty)
	}

	if qty >= item.Quantity {
		// Allocating all of it: link the record as-is
		return &SplitPlan{LinkWhole: true, QtyUsed: qty}, nil
	}

	// A split copies identity fields but never status, order linkage or
	// lifespan data changes; quantity is conserved across the pair.
	clone := &models.InventoryItem{
		UserID:         item.UserID,
		VehicleID:      item.VehicleID,
		Name:           item.Name,
		Category:       item.Category,
		PartNumber:     item.PartNumber,
		Variant:        item.Variant,
		MasterPartID:   item.MasterPartID,
		PurchasePrice:  item.PurchasePrice,
		PurchaseURL:    item.PurchaseURL,
		PurchasedAt:    item.PurchasedAt,
		Status:         item.Status,
		LifespanMiles:  item.LifespanMiles,
		LifespanMonths: item.LifespanMonths,
		Visibility:     item.Visibility,
		Quantity:       qty,
	}

	return &SplitPlan{
		LinkWhole:    false,
		RemainderQty: item.Quantity - qty,
		Clone:        clone,
		QtyUsed:      qty,
	}, nil
}
