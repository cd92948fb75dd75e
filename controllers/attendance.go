package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fire-department-api/config"
	"fire-department-api/models"
	"fire-department-api/services"
)

// IssueAttendanceToken posts a new QR code for a shift. Earlier live
// codes for the same shift stop working.
func IssueAttendanceToken(c *gin.Context) {
	type IssueTokenRequest struct {
		ShiftID    int `json:"shift_id" binding:"required"`
		TTLMinutes int `json:"ttl_minutes"`
	}

	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ttl := services.DefaultTokenTTL
	if req.TTLMinutes > 0 {
		if req.TTLMinutes > 120 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ttl_minutes must be at most 120"})
			return
		}
		ttl = time.Duration(req.TTLMinutes) * time.Minute
	}

	userID, _ := c.Get("userID")

	token, err := services.IssueAttendanceToken(config.DB, req.ShiftID, userID.(int), ttl)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Attendance token issued",
		"token":   token,
	})
}

// RevokeAttendanceToken invalidates a live QR code before it expires.
func RevokeAttendanceToken(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.AttendanceToken{}).
		Where("token_id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found or already revoked"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token revoked"})
}

// CheckIn records the caller as present using a scanned token value.
func CheckIn(c *gin.Context) {
	type CheckInRequest struct {
		Token string `json:"token" binding:"required"`
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	record, err := services.CheckIn(config.DB, req.Token, userID.(int), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
		case errors.Is(err, services.ErrTokenExpired):
			c.JSON(http.StatusGone, gin.H{"error": "Token expired"})
		case errors.Is(err, services.ErrTokenRevoked):
			c.JSON(http.StatusGone, gin.H{"error": "Token revoked"})
		case errors.Is(err, services.ErrAlreadyCheckedIn):
			c.JSON(http.StatusConflict, gin.H{"error": "Already checked in for this shift"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Checked in",
		"attendance": record,
	})
}

// GetShiftAttendance lists who checked in for one shift.
func GetShiftAttendance(c *gin.Context) {
	shiftID := c.Param("id")

	var records []models.AttendanceRecord
	if err := config.DB.Preload("User").
		Where("shift_id = ?", shiftID).
		Order("checked_in_at ASC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": records,
		"total":      len(records),
	})
}

// GetMyAttendance lists the caller's own attendance history.
func GetMyAttendance(c *gin.Context) {
	userID, _ := c.Get("userID")

	var records []models.AttendanceRecord
	if err := config.DB.Preload("Shift").
		Where("user_id = ?", userID).
		Order("checked_in_at DESC").
		Limit(100).
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": records,
		"total":      len(records),
	})
}
