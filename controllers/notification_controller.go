package controllers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fire-department-api/config"
	"fire-department-api/models"
	"fire-department-api/services"
	"fire-department-api/workflow"
)

/* ==========================
   Helpers
   ========================== */

func buildStatusEmailHTML(subject, recipientName, message string) string {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = "Applicant"
	}

	escapedSubject := template.HTMLEscapeString(subject)
	escapedGreeting := template.HTMLEscapeString(fmt.Sprintf("Dear %s,", name))
	escapedMessage := template.HTMLEscapeString(strings.TrimSpace(message))
	escapedMessage = strings.ReplaceAll(strings.ReplaceAll(escapedMessage, "\r\n", "\n"), "\r", "\n")
	escapedMessage = strings.ReplaceAll(escapedMessage, "\n", "<br />")

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px 24px 28px 24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">%s</p>
    <p style="margin:0 0 0 0;font-size:16px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>
    <p style="margin:16px 0 0 0;font-size:14px;line-height:1.6;color:#6b7280;">Fire Department Certificate Services</p>
  </div>
</div>
</body>
</html>`, escapedSubject, escapedGreeting, escapedMessage)
}

func sendMailSafe(to []string, subject, html string) {
	if err := config.SendMail(to, subject, html); err != nil {
		log.Printf("notification email send failed (subject=%q to=%v): %v", subject, to, err)
	}
}

// notifyTransition records an in-app notification for the submitting user,
// publishes the event on the live feed, and emails the applicant contact
// address. Email delivery runs off the request path.
func notifyTransition(app *models.CertificateApplication, action workflow.Action) {
	title := transitionMessages[action]
	eventType := transitionEventTypes[action]

	message := fmt.Sprintf("Application %s is now %s.", app.ApplicationNumber, strings.ReplaceAll(app.Status, "_", " "))
	switch action {
	case workflow.ActionReject:
		if app.RejectionReason != nil {
			message = fmt.Sprintf("Application %s was rejected: %s", app.ApplicationNumber, *app.RejectionReason)
		}
	case workflow.ActionAssignPayment:
		if app.Payment != nil {
			message = fmt.Sprintf("Application %s has a fee of %.2f assigned. Please arrange payment.", app.ApplicationNumber, *app.Payment)
		}
	case workflow.ActionMarkInspected:
		message = fmt.Sprintf("Application %s passed inspection and the certificate process is complete.", app.ApplicationNumber)
	case workflow.ActionReactivate:
		message = fmt.Sprintf("Application %s was returned to review.", app.ApplicationNumber)
	}

	appID := uint(app.ApplicationID)
	notification := models.Notification{
		UserID:               uint(app.UserID),
		Title:                title,
		Message:              message,
		Type:                 eventType,
		RelatedApplicationID: &appID,
		IsRead:               false,
		CreateAt:             time.Now(),
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to store notification for application %d: %v", app.ApplicationID, err)
	}

	services.Feed.Emit(eventType, message, app.ApplicationID)

	if email := strings.TrimSpace(app.Email); email != "" {
		body := buildStatusEmailHTML(title, app.FullName, message)
		go sendMailSafe([]string{email}, title, body)
	}
}

/* ==========================
   CRUD
   ========================== */

// CreateNotification lets admins push a manual notification to a user.
func CreateNotification(c *gin.Context) {
	type createNotifReq struct {
		UserID               uint   `json:"user_id" binding:"required"`
		Title                string `json:"title" binding:"required"`
		Message              string `json:"message" binding:"required"`
		Type                 string `json:"type" binding:"required"` // info|success|warning|error
		RelatedApplicationID *uint  `json:"related_application_id"`
	}

	var req createNotifReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	switch req.Type {
	case "info", "success", "warning", "error":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification type"})
		return
	}

	n := models.Notification{
		UserID:               req.UserID,
		Title:                req.Title,
		Message:              req.Message,
		Type:                 req.Type,
		RelatedApplicationID: req.RelatedApplicationID,
		IsRead:               false,
		CreateAt:             time.Now(),
	}
	if err := config.DB.Create(&n).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "notification_id": n.NotificationID})
}

// GetNotifications returns the caller's notifications, newest first.
func GetNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")

	unreadOnly := strings.TrimSpace(c.Query("unreadOnly"))
	limitStr := strings.TrimSpace(c.Query("limit"))
	offsetStr := strings.TrimSpace(c.Query("offset"))

	limit := 20
	offset := 0
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(offsetStr); err == nil && v >= 0 {
		offset = v
	}

	q := config.DB.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly == "1" || strings.EqualFold(unreadOnly, "true") {
		q = q.Where("is_read = 0")
	}

	var items []models.Notification
	if err := q.Order("create_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetNotificationCounter returns the caller's unread count.
func GetNotificationCounter(c *gin.Context) {
	userID, _ := c.Get("userID")

	var n int64
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = 0", userID).
		Count(&n).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkAllNotificationsRead marks every unread notification as read.
func MarkAllNotificationsRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = 0", userID).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

/* ==========================
   Live feed
   ========================== */

// GetNotificationFeed returns the most recent workflow events from the
// in-memory feed. The feed is bounded; older events fall off the window.
func GetNotificationFeed(c *gin.Context) {
	limit := 20
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	events := services.Feed.Recent(limit)
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}
