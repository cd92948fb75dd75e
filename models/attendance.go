package models

import "time"

// AttendanceToken is a short-lived QR token issued by an officer for a shift.
// Staff scan the token to check in; each token can be used by many staff
// until it expires or is revoked.
type AttendanceToken struct {
	TokenID   int        `gorm:"primaryKey;column:token_id" json:"token_id"`
	Token     string     `gorm:"column:token;unique" json:"token"`
	ShiftID   int        `gorm:"column:shift_id" json:"shift_id"`
	IssuedBy  int        `gorm:"column:issued_by" json:"issued_by"`
	ExpiresAt time.Time  `gorm:"column:expires_at" json:"expires_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
}

// AttendanceRecord marks one staff member present on a shift.
type AttendanceRecord struct {
	AttendanceID int       `gorm:"primaryKey;column:attendance_id" json:"attendance_id"`
	UserID       int       `gorm:"column:user_id" json:"user_id"`
	ShiftID      int       `gorm:"column:shift_id" json:"shift_id"`
	TokenID      int       `gorm:"column:token_id" json:"token_id"`
	CheckedInAt  time.Time `gorm:"column:checked_in_at" json:"checked_in_at"`

	// Relations
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Shift Shift `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
}

// TableName overrides
func (AttendanceToken) TableName() string {
	return "attendance_tokens"
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
