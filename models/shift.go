package models

import "time"

// Shift represents a scheduled duty window at a station.
type Shift struct {
	ShiftID   int        `gorm:"primaryKey;column:shift_id" json:"shift_id"`
	ShiftName string     `gorm:"column:shift_name" json:"shift_name"`
	ShiftDate time.Time  `gorm:"column:shift_date" json:"shift_date"`
	StartTime string     `gorm:"column:start_time" json:"start_time"` // HH:MM
	EndTime   string     `gorm:"column:end_time" json:"end_time"`     // HH:MM
	StationID *int       `gorm:"column:station_id" json:"station_id,omitempty"`
	CreatedBy int        `gorm:"column:created_by" json:"created_by"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Assignments []ShiftAssignment `gorm:"foreignKey:ShiftID" json:"assignments,omitempty"`
}

// ShiftAssignment places one staff member on a shift.
type ShiftAssignment struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	ShiftID      int        `gorm:"column:shift_id" json:"shift_id"`
	UserID       int        `gorm:"column:user_id" json:"user_id"`
	DutyRole     string     `gorm:"column:duty_role" json:"duty_role"` // driver|crew|officer_in_charge
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides
func (Shift) TableName() string {
	return "shifts"
}

func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}
