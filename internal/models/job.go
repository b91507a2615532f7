package models

import (
	"time"

	"gorm.io/gorm"
)

// JobStatus defines the execution state of a job
type JobStatus string

const (
	JobStatusPlanned    JobStatus = "planned"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusPaused     JobStatus = "paused"
)

// PlanStatus is a job's planning maturity, independent of execution status
type PlanStatus string

const (
	PlanStatusDraft  PlanStatus = "draft"  // Exploratory; any part may be linked
	PlanStatusReady  PlanStatus = "ready"  // All parts in stock, all tools acquired
	PlanStatusActive PlanStatus = "active" // Job has been started against this plan
)

// TaskPhase distinguishes the two passes over a job's step list
type TaskPhase string

const (
	PhaseTeardown TaskPhase = "teardown"
	PhaseAssembly TaskPhase = "assembly"
)

// Job is a unit of repair/mod work on a vehicle
type Job struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"type:uuid;index;not null" json:"user_id"`
	VehicleID uint   `gorm:"index;not null" json:"vehicle_id"`

	Title      string     `gorm:"not null" json:"title"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	Status     JobStatus  `gorm:"type:varchar(20);default:'planned';index" json:"status"`
	PlanStatus PlanStatus `gorm:"type:varchar(20);default:'draft'" json:"plan_status"`
	OrderIndex int        `gorm:"default:0" json:"order_index"`

	// Completion record
	Odometer      *int       `json:"odometer,omitempty"`
	TotalCost     *float64   `json:"total_cost,omitempty"`
	DateCompleted *time.Time `json:"date_completed,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations (tasks/tools/specs/links cascade with the job)
	Tasks []JobTask `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Tools []JobTool `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"tools,omitempty"`
	Specs []JobSpec `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"specs,omitempty"`
	Parts []JobPart `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"parts,omitempty"`
}

// TableName specifies the table name for Job model
func (Job) TableName() string {
	return "jobs"
}

// JobPart links an inventory item to a job with the quantity consumed
type JobPart struct {
	JobID       uint `gorm:"primaryKey;autoIncrement:false" json:"job_id"`
	InventoryID uint `gorm:"primaryKey;autoIncrement:false" json:"inventory_id"`
	QtyUsed     int  `gorm:"default:1" json:"qty_used"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Inventory *InventoryItem `gorm:"foreignKey:InventoryID" json:"inventory,omitempty"`
}

// TableName specifies the table name for JobPart model
func (JobPart) TableName() string {
	return "job_parts"
}

// JobTask is one checklist step. The same list is walked twice (teardown,
// then assembly), so each task carries two independent completion flags.
type JobTask struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	JobID       uint      `gorm:"index;not null" json:"job_id"`
	Instruction string    `gorm:"type:text;not null" json:"instruction"`
	Phase       TaskPhase `gorm:"type:varchar(10);default:'teardown'" json:"phase"`
	OrderIndex  int       `gorm:"default:0" json:"order_index"`
	IsDoneTear  bool      `gorm:"default:false" json:"is_done_tear"`
	IsDoneBuild bool      `gorm:"default:false" json:"is_done_build"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for JobTask model
func (JobTask) TableName() string {
	return "job_tasks"
}

// JobTool is a tool required by a job
type JobTool struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	JobID      uint   `gorm:"index;not null" json:"job_id"`
	Name       string `gorm:"not null" json:"name"`
	IsAcquired bool   `gorm:"default:false" json:"is_acquired"`
	Required   bool   `gorm:"default:true" json:"required"`
	Note       string `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for JobTool model
func (JobTool) TableName() string {
	return "job_tools"
}

// JobSpec is an item/value pair (torque values, fluid capacities, gaps)
type JobSpec struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	JobID uint   `gorm:"index;not null" json:"job_id"`
	Item  string `gorm:"not null" json:"item"`
	Value string `gorm:"not null" json:"value"`
	Note  string `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for JobSpec model
func (JobSpec) TableName() string {
	return "job_specs"
}
