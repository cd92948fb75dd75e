package models

import "time"

// InventoryItem represents stocked equipment (hoses, breathing apparatus, ...).
type InventoryItem struct {
	ItemID    int        `gorm:"primaryKey;column:item_id" json:"item_id"`
	ItemName  string     `gorm:"column:item_name" json:"item_name"`
	Category  string     `gorm:"column:category" json:"category"`
	Quantity  int        `gorm:"column:quantity" json:"quantity"`
	Condition string     `gorm:"column:item_condition" json:"condition"` // serviceable|needs_repair|retired
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Vehicle represents an appliance in the fleet.
type Vehicle struct {
	VehicleID int        `gorm:"primaryKey;column:vehicle_id" json:"vehicle_id"`
	CallSign  string     `gorm:"column:call_sign;unique" json:"call_sign"`
	Model     string     `gorm:"column:model" json:"model"`
	Status    string     `gorm:"column:status" json:"status"` // in_service|maintenance|decommissioned
	StationID *int       `gorm:"column:station_id" json:"station_id,omitempty"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// VehicleItemAssignment records stock moved onto a vehicle. ReturnedAt is
// set when the stock comes back to the store.
type VehicleItemAssignment struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	VehicleID    int        `gorm:"column:vehicle_id" json:"vehicle_id"`
	ItemID       int        `gorm:"column:item_id" json:"item_id"`
	Quantity     int        `gorm:"column:quantity" json:"quantity"`
	AssignedBy   int        `gorm:"column:assigned_by" json:"assigned_by"`
	AssignedAt   time.Time  `gorm:"column:assigned_at" json:"assigned_at"`
	ReturnedAt   *time.Time `gorm:"column:returned_at" json:"returned_at,omitempty"`

	// Relations
	Vehicle Vehicle       `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Item    InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName overrides
func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (VehicleItemAssignment) TableName() string {
	return "vehicle_item_assignments"
}
