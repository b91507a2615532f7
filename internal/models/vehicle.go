package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Vehicle represents one car in a user's garage
type Vehicle struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   string `gorm:"type:uuid;index;not null" json:"user_id"`
	Year     int    `json:"year"`
	Make     string `gorm:"not null" json:"make"`
	Model    string `gorm:"not null" json:"model"`
	Trim     string `json:"trim,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	VIN      string `gorm:"column:vin" json:"vin,omitempty"`
	Odometer int    `gorm:"default:0" json:"odometer"`

	EngineDescription       string `json:"engine_description,omitempty"`
	TransmissionDescription string `json:"transmission_description,omitempty"`
	DriveType               string `json:"drive_type,omitempty"` // FWD, RWD, AWD, 4WD

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Inventory []InventoryItem `gorm:"foreignKey:VehicleID" json:"inventory,omitempty"`
	Jobs      []Job           `gorm:"foreignKey:VehicleID" json:"jobs,omitempty"`
}

// TableName specifies the table name for Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}

// Description renders a human-readable vehicle string for AI prompts and labels
func (v *Vehicle) Description() string {
	return strings.TrimSpace(fmt.Sprintf("%d %s %s %s", v.Year, v.Make, v.Model, v.Trim))
}
