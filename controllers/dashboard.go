package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fire-department-api/config"
	"fire-department-api/models"
	"fire-department-api/workflow"
)

// GetDashboardStats returns summary counters for the admin dashboard.
func GetDashboardStats(c *gin.Context) {
	statuses := []workflow.Status{
		workflow.StatusPending,
		workflow.StatusApproved,
		workflow.StatusRejected,
		workflow.StatusPaymentAssigned,
		workflow.StatusInspected,
	}

	byStatus := make(map[string]int64, len(statuses))
	for _, status := range statuses {
		var n int64
		if err := config.DB.Model(&models.CertificateApplication{}).
			Where("status = ? AND delete_at IS NULL", string(status)).
			Count(&n).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
			return
		}
		byStatus[string(status)] = n
	}

	var total int64
	config.DB.Model(&models.CertificateApplication{}).
		Where("delete_at IS NULL").Count(&total)

	var appliedThisMonth int64
	monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day())
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), monthStart.Day(), 0, 0, 0, 0, monthStart.Location())
	config.DB.Model(&models.CertificateApplication{}).
		Where("applied_date >= ? AND delete_at IS NULL", monthStart).
		Count(&appliedThisMonth)

	var staffCount int64
	config.DB.Model(&models.User{}).Where("delete_at IS NULL").Count(&staffCount)

	var vehiclesInService int64
	config.DB.Model(&models.Vehicle{}).
		Where("status = ? AND delete_at IS NULL", "in_service").
		Count(&vehiclesInService)

	var shiftsToday int64
	config.DB.Model(&models.Shift{}).
		Where("DATE(shift_date) = DATE(NOW()) AND delete_at IS NULL").
		Count(&shiftsToday)

	c.JSON(http.StatusOK, gin.H{
		"applications": gin.H{
			"total":              total,
			"by_status":          byStatus,
			"applied_this_month": appliedThisMonth,
			"inspection_queue":   byStatus[string(workflow.StatusPaymentAssigned)],
		},
		"staff_count":         staffCount,
		"vehicles_in_service": vehiclesInService,
		"shifts_today":        shiftsToday,
	})
}

// GetMyDashboard returns counters scoped to the calling user.
func GetMyDashboard(c *gin.Context) {
	userID, _ := c.Get("userID")

	var myApplications int64
	config.DB.Model(&models.CertificateApplication{}).
		Where("user_id = ? AND delete_at IS NULL", userID).
		Count(&myApplications)

	var unread int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = 0", userID).
		Count(&unread)

	var upcomingShifts int64
	config.DB.Model(&models.ShiftAssignment{}).
		Joins("JOIN shifts ON shifts.shift_id = shift_assignments.shift_id").
		Where("shift_assignments.user_id = ? AND shift_assignments.delete_at IS NULL", userID).
		Where("shifts.shift_date >= CURDATE() AND shifts.delete_at IS NULL").
		Count(&upcomingShifts)

	c.JSON(http.StatusOK, gin.H{
		"my_applications":      myApplications,
		"unread_notifications": unread,
		"upcoming_shifts":      upcomingShifts,
	})
}
