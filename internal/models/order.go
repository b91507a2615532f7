package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus defines possible order statuses
type OrderStatus string

const (
	OrderStatusOrdered   OrderStatus = "ordered"   // Placed with vendor
	OrderStatusShipped   OrderStatus = "shipped"   // In transit
	OrderStatusDelivered OrderStatus = "delivered" // All items arrived
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled
)

// Order represents a purchase transaction with a vendor. Inventory items
// attach to it via their OrderID reference.
type Order struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;index;not null" json:"user_id"`
	VehicleID   *uint      `gorm:"index" json:"vehicle_id,omitempty"`
	Vendor      string     `gorm:"not null" json:"vendor"`
	OrderNumber string     `gorm:"index" json:"order_number,omitempty"`
	OrderDate   *time.Time `json:"order_date,omitempty"`

	Status OrderStatus `gorm:"type:varchar(20);default:'ordered';index" json:"status"`

	Subtotal     float64 `json:"subtotal"`
	Tax          float64 `json:"tax"`
	ShippingCost float64 `json:"shipping_cost"`
	Total        float64 `json:"total"`

	TrackingNumber string `json:"tracking_number,omitempty"`
	Carrier        string `json:"carrier,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Items []InventoryItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// IsOpen returns true while the order still expects deliveries
func (o *Order) IsOpen() bool {
	return o.Status == OrderStatusOrdered || o.Status == OrderStatusShipped
}
