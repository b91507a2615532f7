package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InventoryStatus defines the lifecycle stage of an inventory item
type InventoryStatus string

const (
	StatusWishlist  InventoryStatus = "wishlist"  // Want it, don't own it
	StatusOrdered   InventoryStatus = "ordered"   // Purchased, in transit
	StatusInStock   InventoryStatus = "in_stock"  // On the shelf
	StatusInstalled InventoryStatus = "installed" // On the vehicle
	StatusPlanned   InventoryStatus = "planned"   // Reserved conceptually, not acquired
	StatusReplaced  InventoryStatus = "replaced"  // Superseded by a newer part
)

// Visibility controls which read-model an inventory row belongs to.
// It is deliberately separate from status: hardware and history rows keep
// their own lifecycle but must never surface in active-inventory totals.
type Visibility string

const (
	VisibilityPublic      Visibility = "public"       // Normal installable part
	VisibilityHardware    Visibility = "hardware"     // Bolts/clips attached to a parent part
	VisibilityHistoryOnly Visibility = "history_only" // Lineage record (e.g. a decomposed kit)
)

// ReplacementReason defines why a part was swapped out
type ReplacementReason string

const (
	ReplacementWear      ReplacementReason = "wear"
	ReplacementUpgrade   ReplacementReason = "upgrade"
	ReplacementFailure   ReplacementReason = "failure"
	ReplacementScheduled ReplacementReason = "scheduled"
)

// InventoryItem represents one part, physical or planned, in any lifecycle
// stage from wishlist to installed.
type InventoryItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"type:uuid;index;not null" json:"user_id"`
	VehicleID uint   `gorm:"index;not null" json:"vehicle_id"`

	// Classification
	Name         string  `gorm:"not null" json:"name"`
	Category     string  `gorm:"index" json:"category,omitempty"`
	PartNumber   string  `gorm:"index" json:"part_number,omitempty"`
	Variant      string  `json:"variant,omitempty"`
	MasterPartID *uint   `gorm:"index" json:"master_part_id,omitempty"`

	// Commercial
	PurchasePrice  *float64   `json:"purchase_price,omitempty"`
	PurchaseURL    string     `json:"purchase_url,omitempty"`
	Quantity       int        `gorm:"default:1;check:quantity >= 1" json:"quantity"`
	OrderID        *uint      `gorm:"index" json:"order_id,omitempty"`
	PurchasedAt    *time.Time `json:"purchased_at,omitempty"`
	Priority       int        `gorm:"default:3" json:"priority"` // 1-5, wishlist ordering
	TrackingNumber string     `json:"tracking_number,omitempty"`
	Carrier        string     `json:"carrier,omitempty"`

	// Lifecycle
	Status         InventoryStatus `gorm:"type:varchar(20);default:'wishlist';index" json:"status"`
	InstalledAt    *time.Time      `json:"installed_at,omitempty"`
	InstallMiles   *int            `json:"install_miles,omitempty"`
	LifespanMiles  *int            `json:"lifespan_miles,omitempty"`  // Override of category default
	LifespanMonths *int            `json:"lifespan_months,omitempty"` // Override of category default

	// Composition
	ParentID          *uint      `gorm:"index" json:"parent_id,omitempty"`           // Hardware-of-a-part
	InventorySourceID *uint      `gorm:"index" json:"inventory_source_id,omitempty"` // Order line this was decomposed from
	InstallGroupID    *string    `gorm:"type:uuid" json:"install_group_id,omitempty"`
	Visibility        Visibility `gorm:"type:varchar(20);default:'public';index" json:"visibility"`
	IsReusable        bool       `gorm:"default:false" json:"is_reusable"`

	// Replacement tracking
	ReplacedPartID    *uint              `gorm:"index" json:"replaced_part_id,omitempty"`
	ReplacementReason *ReplacementReason `gorm:"type:varchar(20)" json:"replacement_reason,omitempty"`

	Specs datatypes.JSON `json:"specs,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	MasterPart   *MasterPart    `gorm:"foreignKey:MasterPartID" json:"master_part,omitempty"`
	Order        *Order         `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Parent       *InventoryItem `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Hardware     []InventoryItem `gorm:"foreignKey:ParentID" json:"hardware,omitempty"`
	ReplacedPart *InventoryItem  `gorm:"foreignKey:ReplacedPartID" json:"replaced_part,omitempty"`
}

// TableName specifies the table name for InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory"
}

// IsActive reports whether the row counts toward active inventory.
// History and hardware rows are bookkeeping, not standalone stock.
func (i *InventoryItem) IsActive() bool {
	switch i.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityHardware, VisibilityHistoryOnly:
		return false
	}
	return false
}

// MasterPart is a shared catalog entry that inventory items can link to
// for enrichment (canonical name, part number, purchase link)
type MasterPart struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	PartNumber   string         `gorm:"uniqueIndex;not null" json:"part_number"`
	Category     string         `json:"category,omitempty"`
	AffiliateURL string         `json:"affiliate_url,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for MasterPart model
func (MasterPart) TableName() string {
	return "master_parts"
}

// ComponentType is a part category definition carrying default lifespans
// used by the health calculator when the item has no override
type ComponentType struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	Name                  string         `gorm:"uniqueIndex;not null" json:"name"`
	Category              string         `json:"category,omitempty"`
	DefaultLifespanMiles  *int           `json:"default_lifespan_miles,omitempty"`
	DefaultLifespanMonths *int           `json:"default_lifespan_months,omitempty"`
	SpecSchema            datatypes.JSON `json:"spec_schema,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// TableName specifies the table name for ComponentType model
func (ComponentType) TableName() string {
	return "component_types"
}
