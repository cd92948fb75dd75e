package services

import (
	"errors"
	"fmt"
	"time"

	"fire-department-api/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the application does not exist (or was deleted).
	ErrNotFound = errors.New("application not found")
	// ErrVersionConflict means a concurrent transition won the write race;
	// the caller must re-fetch and re-evaluate.
	ErrVersionConflict = errors.New("application was modified concurrently")
)

// ApplicationStore persists certificate applications with an optimistic
// version check so two concurrent transitions on the same application
// can never both succeed.
type ApplicationStore struct {
	db *gorm.DB
}

func NewApplicationStore(db *gorm.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// Load fetches the current record by id.
func (s *ApplicationStore) Load(id int) (*models.CertificateApplication, error) {
	var app models.CertificateApplication
	err := s.db.Where("application_id = ? AND delete_at IS NULL", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load application %d: %w", id, err)
	}
	return &app, nil
}

// Save writes the workflow-owned fields of app, guarded by
// expectedVersion. The row's version is bumped on success and mirrored
// into app. Zero rows updated means either the record vanished or the
// version moved; the two are told apart with a follow-up lookup.
func (s *ApplicationStore) Save(app *models.CertificateApplication, expectedVersion int) error {
	return s.casUpdate(app, expectedVersion, map[string]interface{}{
		"status":           app.Status,
		"payment":          app.Payment,
		"rejection_reason": app.RejectionReason,
		"inspection_notes": app.InspectionNotes,
		"approved_at":      app.ApprovedAt,
		"rejected_at":      app.RejectedAt,
		"inspection_date":  app.InspectionDate,
		"urgency_level":    app.UrgencyLevel,
	})
}

// UpdateContact writes the applicant-editable columns under the same
// version guard as Save. Touching only these columns, and only when the
// version still matches, means a contact edit can never overwrite a
// transition that landed after the record was loaded.
func (s *ApplicationStore) UpdateContact(app *models.CertificateApplication, expectedVersion int) error {
	return s.casUpdate(app, expectedVersion, map[string]interface{}{
		"contact_number": app.ContactNumber,
		"email":          app.Email,
		"address":        app.Address,
		"urgency_level":  app.UrgencyLevel,
	})
}

func (s *ApplicationStore) casUpdate(app *models.CertificateApplication, expectedVersion int, updates map[string]interface{}) error {
	now := time.Now()
	updates["version"] = expectedVersion + 1
	updates["update_at"] = now

	result := s.db.Model(&models.CertificateApplication{}).
		Where("application_id = ? AND version = ? AND delete_at IS NULL", app.ApplicationID, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to save application %d: %w", app.ApplicationID, result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.Model(&models.CertificateApplication{}).
			Where("application_id = ? AND delete_at IS NULL", app.ApplicationID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to verify application %d: %w", app.ApplicationID, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}

	app.Version = expectedVersion + 1
	app.UpdateAt = &now
	return nil
}

// Delete soft-deletes the record. This is the administrative terminal
// delete; it is not part of the workflow state machine.
func (s *ApplicationStore) Delete(id int) error {
	now := time.Now()
	result := s.db.Model(&models.CertificateApplication{}).
		Where("application_id = ? AND delete_at IS NULL", id).
		Update("delete_at", now)
	if result.Error != nil {
		return fmt.Errorf("failed to delete application %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
