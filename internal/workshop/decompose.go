package workshop

import (
	"github.com/google/uuid"

	"github.com/motorhaus/garagego/internal/models"
)

// DecomposeChild is one entry in a decomposition request: a discrete part or
// a piece of attached hardware carved out of a delivered order line.
type DecomposeChild struct {
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	PartNumber  string            `json:"part_number"`
	Quantity    int               `json:"quantity"`
	Visibility  models.Visibility `json:"visibility"`             // public | hardware
	ParentIndex *int              `json:"parent_index,omitempty"` // index of a public sibling in this list
	IsReusable  bool              `json:"is_reusable"`
}

// DecomposeLine pairs a source inventory item with its breakdown
type DecomposeLine struct {
	SourceInventoryID uint             `json:"source_inventory_id"`
	Children          []DecomposeChild `json:"children"`
}

// DecompositionPlan is the pure output of planning one line's breakdown.
// Public children are created first (they receive ids), hardware after,
// in source-list order, so positional parent references can resolve.
type DecompositionPlan struct {
	InstallGroupID string
	// Public items, in children-list order. ChildIndex[i] is the position
	// in the original children slice of Public[i].
	Public     []*models.InventoryItem
	ChildIndex []int
	// Hardware items, in children-list order, with the children-list index
	// of their parent (or -1 for none / unresolvable).
	Hardware       []*models.InventoryItem
	HardwareParent []int
}

// PlanDecomposition validates and arranges one line's children for creation.
// A parentIndex outside the sibling list, or pointing at a non-public child,
// degrades to "no parent" rather than failing the breakdown.
func PlanDecomposition(source *models.InventoryItem, children []DecomposeChild) (*DecompositionPlan, error) {
	if len(children) == 0 {
		return nil, validationf("decomposition of item %d has no children", source.ID)
	}

	plan := &DecompositionPlan{InstallGroupID: uuid.New().String()}
	groupID := plan.InstallGroupID
	sourceID := source.ID

	isPublic := make([]bool, len(children))
	for i, c := range children {
		if c.Name == "" {
			return nil, validationf("decomposition child %d has no name", i)
		}
		if c.Visibility != models.VisibilityPublic && c.Visibility != models.VisibilityHardware {
			return nil, validationf("decomposition child %q has invalid visibility %q", c.Name, c.Visibility)
		}
		isPublic[i] = c.Visibility == models.VisibilityPublic
	}

	for i, c := range children {
		qty := c.Quantity
		if qty < 1 {
			qty = 1
		}

		item := &models.InventoryItem{
			UserID:            source.UserID,
			VehicleID:         source.VehicleID,
			Name:              c.Name,
			Category:          c.Category,
			PartNumber:        c.PartNumber,
			Quantity:          qty,
			InventorySourceID: &sourceID,
			InstallGroupID:    &groupID,
			IsReusable:        c.IsReusable,
		}

		if isPublic[i] {
			// Public children inherit the category fallback and become stock
			if item.Category == "" {
				item.Category = source.Category
			}
			item.Status = models.StatusInStock
			item.Visibility = models.VisibilityPublic
			plan.Public = append(plan.Public, item)
			plan.ChildIndex = append(plan.ChildIndex, i)
			continue
		}

		item.Status = source.Status
		item.Visibility = models.VisibilityHardware
		if item.Category == "" {
			item.Category = "hardware"
		}

		parent := -1
		if c.ParentIndex != nil {
			pi := *c.ParentIndex
			if pi >= 0 && pi < len(children) && pi != i && isPublic[pi] {
				parent = pi
			}
			// Out-of-bounds or non-public: orphaned hardware is listed
			// standalone, the rest of the breakdown proceeds.
		}
		plan.Hardware = append(plan.Hardware, item)
		plan.HardwareParent = append(plan.HardwareParent, parent)
	}

	return plan, nil
}

// ResolveHardwareParents stamps ParentID on hardware rows once public rows
// have their database ids assigned. Must run after the public inserts.
func (p *DecompositionPlan) ResolveHardwareParents() {
	idByChildIndex := make(map[int]uint, len(p.Public))
	for i, pub := range p.Public {
		idByChildIndex[p.ChildIndex[i]] = pub.ID
	}

	for i, hw := range p.Hardware {
		parentIdx := p.HardwareParent[i]
		if parentIdx < 0 {
			continue
		}
		if id, ok := idByChildIndex[parentIdx]; ok && id != 0 {
			pid := id
			hw.ParentID = &pid
		}
	}
}
