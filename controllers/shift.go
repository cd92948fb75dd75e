package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fire-department-api/config"
	"fire-department-api/models"
)

func validDutyRole(role string) bool {
	switch role {
	case "driver", "crew", "officer_in_charge":
		return true
	}
	return false
}

func validClockTime(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}

// GetShifts lists shifts. Supports ?date=YYYY-MM-DD and ?station_id=.
func GetShifts(c *gin.Context) {
	var shifts []models.Shift
	query := config.DB.Preload("Assignments", "delete_at IS NULL").
		Preload("Assignments.User").
		Where("shifts.delete_at IS NULL")

	if date := strings.TrimSpace(c.Query("date")); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("DATE(shift_date) = ?", date)
	}
	if stationID := strings.TrimSpace(c.Query("station_id")); stationID != "" {
		query = query.Where("station_id = ?", stationID)
	}

	if err := query.Order("shift_date ASC, start_time ASC").Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shifts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shifts": shifts,
		"total":  len(shifts),
	})
}

// GetShift returns one shift with its crew assignments.
func GetShift(c *gin.Context) {
	id := c.Param("id")

	var shift models.Shift
	if err := config.DB.Preload("Assignments", "delete_at IS NULL").
		Preload("Assignments.User").
		Where("shift_id = ? AND shifts.delete_at IS NULL", id).
		First(&shift).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

// CreateShift schedules a new duty window.
func CreateShift(c *gin.Context) {
	type CreateShiftRequest struct {
		ShiftName string `json:"shift_name" binding:"required"`
		ShiftDate string `json:"shift_date" binding:"required"` // YYYY-MM-DD
		StartTime string `json:"start_time" binding:"required"` // HH:MM
		EndTime   string `json:"end_time" binding:"required"`   // HH:MM
		StationID *int   `json:"station_id"`
	}

	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shiftDate, err := time.Parse("2006-01-02", req.ShiftDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift_date, expected YYYY-MM-DD"})
		return
	}
	if !validClockTime(req.StartTime) || !validClockTime(req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time, expected HH:MM"})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()
	shift := models.Shift{
		ShiftName: strings.TrimSpace(req.ShiftName),
		ShiftDate: shiftDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		StationID: req.StationID,
		CreatedBy: userID.(int),
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shift"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Shift created successfully",
		"shift":   shift,
	})
}

// UpdateShift edits a scheduled shift.
func UpdateShift(c *gin.Context) {
	id := c.Param("id")

	type UpdateShiftRequest struct {
		ShiftName *string `json:"shift_name"`
		ShiftDate *string `json:"shift_date"`
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
		StationID *int    `json:"station_id"`
	}

	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var shift models.Shift
	if err := config.DB.Where("shift_id = ? AND delete_at IS NULL", id).
		First(&shift).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	if req.ShiftName != nil {
		shift.ShiftName = strings.TrimSpace(*req.ShiftName)
	}
	if req.ShiftDate != nil {
		d, err := time.Parse("2006-01-02", *req.ShiftDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift_date, expected YYYY-MM-DD"})
			return
		}
		shift.ShiftDate = d
	}
	if req.StartTime != nil {
		if !validClockTime(*req.StartTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_time, expected HH:MM"})
			return
		}
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if !validClockTime(*req.EndTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_time, expected HH:MM"})
			return
		}
		shift.EndTime = *req.EndTime
	}
	if req.StationID != nil {
		shift.StationID = req.StationID
	}

	now := time.Now()
	shift.UpdateAt = &now

	if err := config.DB.Save(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shift"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shift updated successfully",
		"shift":   shift,
	})
}

// DeleteShift soft-deletes a shift and its assignments.
func DeleteShift(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Shift{}).
		Where("shift_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{"delete_at": &now, "update_at": &now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shift"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	config.DB.Model(&models.ShiftAssignment{}).
		Where("shift_id = ? AND delete_at IS NULL", id).
		Update("delete_at", &now)

	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted successfully"})
}

// AssignToShift places a staff member on a shift with a duty role.
func AssignToShift(c *gin.Context) {
	idParam := c.Param("id")
	shiftID, err := strconv.Atoi(idParam)
	if err != nil || shiftID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID"})
		return
	}

	type AssignRequest struct {
		UserID   int    `json:"user_id" binding:"required"`
		DutyRole string `json:"duty_role" binding:"required"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validDutyRole(req.DutyRole) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duty role"})
		return
	}

	var shift models.Shift
	if err := config.DB.Where("shift_id = ? AND delete_at IS NULL", shiftID).
		First(&shift).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	var existing int64
	config.DB.Model(&models.ShiftAssignment{}).
		Where("shift_id = ? AND user_id = ? AND delete_at IS NULL", shiftID, req.UserID).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Staff member already assigned to this shift"})
		return
	}

	now := time.Now()
	assignment := models.ShiftAssignment{
		ShiftID:  shiftID,
		UserID:   req.UserID,
		DutyRole: req.DutyRole,
		CreateAt: &now,
	}

	if err := config.DB.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign staff member"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Staff member assigned to shift",
		"assignment": assignment,
	})
}

// RemoveFromShift takes a staff member off a shift.
func RemoveFromShift(c *gin.Context) {
	shiftID := c.Param("id")
	userIDParam := c.Param("userId")

	now := time.Now()
	result := config.DB.Model(&models.ShiftAssignment{}).
		Where("shift_id = ? AND user_id = ? AND delete_at IS NULL", shiftID, userIDParam).
		Update("delete_at", &now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove assignment"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff member removed from shift"})
}

// GetMyShifts lists upcoming shifts the caller is assigned to.
func GetMyShifts(c *gin.Context) {
	userID, _ := c.Get("userID")

	var shiftIDs []int
	if err := config.DB.Model(&models.ShiftAssignment{}).
		Where("user_id = ? AND delete_at IS NULL", userID).
		Pluck("shift_id", &shiftIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	var shifts []models.Shift
	if len(shiftIDs) > 0 {
		if err := config.DB.Where("shift_id IN ? AND delete_at IS NULL", shiftIDs).
			Order("shift_date ASC, start_time ASC").
			Find(&shifts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shifts"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"shifts": shifts,
		"total":  len(shifts),
	})
}
