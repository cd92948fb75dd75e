package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fire-department-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTokenNotFound    = errors.New("attendance token not found")
	ErrTokenExpired     = errors.New("attendance token expired")
	ErrTokenRevoked     = errors.New("attendance token revoked")
	ErrAlreadyCheckedIn = errors.New("already checked in for this shift")
)

// DefaultTokenTTL bounds how long a posted QR code stays valid.
const DefaultTokenTTL = 15 * time.Minute

// IssueAttendanceToken creates a fresh QR token for a shift. Any earlier
// unexpired tokens for the shift are revoked so only one code is live.
func IssueAttendanceToken(db *gorm.DB, shiftID, issuedBy int, ttl time.Duration) (*models.AttendanceToken, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	var shift models.Shift
	if err := db.Where("shift_id = ? AND delete_at IS NULL", shiftID).First(&shift).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shift %d not found", shiftID)
		}
		return nil, fmt.Errorf("failed to load shift %d: %w", shiftID, err)
	}

	now := time.Now()
	if err := db.Model(&models.AttendanceToken{}).
		Where("shift_id = ? AND revoked_at IS NULL AND expires_at > ?", shiftID, now).
		Update("revoked_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to revoke previous tokens: %w", err)
	}

	token := models.AttendanceToken{
		Token:     uuid.NewString(),
		ShiftID:   shiftID,
		IssuedBy:  issuedBy,
		ExpiresAt: now.Add(ttl),
		CreateAt:  &now,
	}
	if err := db.Create(&token).Error; err != nil {
		return nil, fmt.Errorf("failed to create attendance token: %w", err)
	}
	return &token, nil
}

// ValidateToken checks a scanned token value without touching the database
// beyond the token row the caller already loaded.
func ValidateToken(token *models.AttendanceToken, now time.Time) error {
	if token == nil {
		return ErrTokenNotFound
	}
	if token.RevokedAt != nil {
		return ErrTokenRevoked
	}
	if !now.Before(token.ExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}

// CheckIn records attendance for the user holding a scanned token value.
func CheckIn(db *gorm.DB, tokenValue string, userID int, now time.Time) (*models.AttendanceRecord, error) {
	tokenValue = strings.TrimSpace(tokenValue)
	if tokenValue == "" {
		return nil, ErrTokenNotFound
	}

	var token models.AttendanceToken
	if err := db.Where("token = ?", tokenValue).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to load attendance token: %w", err)
	}

	if err := ValidateToken(&token, now); err != nil {
		return nil, err
	}

	var existing int64
	if err := db.Model(&models.AttendanceRecord{}).
		Where("user_id = ? AND shift_id = ?", userID, token.ShiftID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyCheckedIn
	}

	record := models.AttendanceRecord{
		UserID:      userID,
		ShiftID:     token.ShiftID,
		TokenID:     token.TokenID,
		CheckedInAt: now,
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}
	return &record, nil
}
