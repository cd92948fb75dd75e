package models

import "time"

// CertificateApplication represents one citizen's request for a
// fire-prevention certificate. Status moves only through the
// transitions defined in the workflow package.
type CertificateApplication struct {
	ApplicationID     int      `gorm:"primaryKey;column:application_id" json:"application_id"`
	ApplicationNumber string   `gorm:"column:application_number;unique" json:"application_number"`
	UserID            int      `gorm:"column:user_id" json:"user_id"`
	FullName          string   `gorm:"column:full_name" json:"full_name"`
	NIC               string   `gorm:"column:nic" json:"nic"`
	ContactNumber     string   `gorm:"column:contact_number" json:"contact_number"`
	Email             string   `gorm:"column:email" json:"email"`
	Address           string   `gorm:"column:address" json:"address"`
	ServiceType       string   `gorm:"column:service_type" json:"service_type"`
	ConstructionType  string   `gorm:"column:construction_type" json:"construction_type"`
	UrgencyLevel      string   `gorm:"column:urgency_level" json:"urgency_level"`
	Status            string   `gorm:"column:status" json:"status"`
	Payment           *float64 `gorm:"column:payment" json:"payment,omitempty"`
	RejectionReason   *string  `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	InspectionNotes   *string  `gorm:"column:inspection_notes" json:"inspection_notes,omitempty"`

	AppliedDate    *time.Time `gorm:"column:applied_date" json:"applied_date,omitempty"`
	ApprovedAt     *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedAt     *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	InspectionDate *time.Time `gorm:"column:inspection_date" json:"inspection_date,omitempty"`

	// Version guards concurrent transitions; see services.ApplicationStore.
	Version  int        `gorm:"column:version" json:"version"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides
func (CertificateApplication) TableName() string {
	return "certificate_applications"
}
