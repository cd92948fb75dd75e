package models

import (
	"time"
)

type User struct {
	UserID           int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserFname        string     `gorm:"column:user_fname" json:"user_fname"`
	UserLname        string     `gorm:"column:user_lname" json:"user_lname"`
	Email            string     `gorm:"column:email;unique" json:"email"`
	Password         string     `gorm:"column:password" json:"-"`
	RoleID           int        `gorm:"column:role_id" json:"role_id"`
	RankID           int        `gorm:"column:rank_id" json:"rank_id"`
	StationID        *int       `gorm:"column:station_id" json:"station_id,omitempty"`
	Tel              *string    `gorm:"column:tel" json:"tel,omitempty"`
	DateOfEmployment *time.Time `gorm:"column:date_of_employment" json:"date_of_employment,omitempty"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Rank Rank `gorm:"foreignKey:RankID" json:"rank,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type Rank struct {
	RankID   int        `gorm:"primaryKey;column:rank_id" json:"rank_id"`
	RankName string     `gorm:"column:rank_name" json:"rank_name"`
	IsActive string     `gorm:"column:is_active" json:"is_active"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Role IDs as seeded in the roles table.
const (
	RoleFirefighter = 1
	RoleOfficer     = 2
	RoleAdmin       = 3
)

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (Rank) TableName() string {
	return "ranks"
}
