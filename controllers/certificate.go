package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fire-department-api/config"
	"fire-department-api/models"
	"fire-department-api/services"
	"fire-department-api/utils"
	"fire-department-api/workflow"

	"github.com/gin-gonic/gin"
)

// GetCertificates returns certificate applications visible to the caller.
// Firefighters see only their own submissions; officers and admins see all.
// When the database read fails and a cached snapshot exists, the snapshot
// is served with a stale indicator instead of an error.
func GetCertificates(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var applications []models.CertificateApplication
	query := config.DB.Preload("User").
		Where("certificate_applications.delete_at IS NULL")

	cacheKey := "all"
	if roleID.(int) == models.RoleFirefighter {
		query = query.Where("user_id = ?", userID)
		cacheKey = fmt.Sprintf("user:%v", userID)
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		parsed, err := workflow.ParseStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", string(parsed))
		cacheKey = cacheKey + ":" + string(parsed)
	}

	if serviceType := strings.TrimSpace(c.Query("service_type")); serviceType != "" {
		query = query.Where("service_type = ?", serviceType)
		cacheKey = cacheKey + ":" + serviceType
	}

	if err := query.Order("applied_date DESC").Find(&applications).Error; err != nil {
		serveFromDisplayCache(c, cacheKey, err)
		return
	}

	cache := services.NewDisplayCache(config.Redis)
	if cache.Enabled() {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := cache.Store(ctx, cacheKey, applications); err != nil {
			log.Printf("display cache store failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
		"stale":        false,
	})
}

func serveFromDisplayCache(c *gin.Context, cacheKey string, dbErr error) {
	log.Printf("certificate list read failed, trying display cache: %v", dbErr)

	cache := services.NewDisplayCache(config.Redis)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	snapshot, err := cache.Fetch(ctx, cacheKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": snapshot.Applications,
		"total":        len(snapshot.Applications),
		"stale":        true,
		"fetched_at":   snapshot.FetchedAt,
	})
}

// GetCertificate returns a single application by ID.
func GetCertificate(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var application models.CertificateApplication
	query := config.DB.Preload("User").
		Where("application_id = ? AND certificate_applications.delete_at IS NULL", id)

	if roleID.(int) == models.RoleFirefighter {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
	})
}

// CreateCertificate registers a new application in pending state.
func CreateCertificate(c *gin.Context) {
	type CreateCertificateRequest struct {
		FullName         string `json:"full_name" binding:"required"`
		NIC              string `json:"nic" binding:"required"`
		ContactNumber    string `json:"contact_number" binding:"required"`
		Email            string `json:"email" binding:"required,email"`
		Address          string `json:"address" binding:"required"`
		ServiceType      string `json:"service_type"`
		ConstructionType string `json:"construction_type" binding:"required"`
		UrgencyLevel     string `json:"urgency_level"`
	}

	var req CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateNIC(req.NIC) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid NIC number"})
		return
	}
	if !utils.ValidatePhone(req.ContactNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact number"})
		return
	}

	serviceType := strings.ToLower(strings.TrimSpace(req.ServiceType))
	if serviceType == "" {
		serviceType = workflow.ServiceFirePrevention
	}
	urgency := strings.ToLower(strings.TrimSpace(req.UrgencyLevel))
	if urgency == "" {
		urgency = workflow.UrgencyNormal
	}
	constructionType := strings.ToLower(strings.TrimSpace(req.ConstructionType))

	// Reject unknown enum values up front via the advisory fee tables.
	if _, err := workflow.SuggestedPayment(serviceType, constructionType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	now := time.Now()
	application := models.CertificateApplication{
		UserID:           userID.(int),
		FullName:         utils.SanitizeInput(req.FullName),
		NIC:              strings.TrimSpace(req.NIC),
		ContactNumber:    strings.TrimSpace(req.ContactNumber),
		Email:            strings.TrimSpace(req.Email),
		Address:          utils.SanitizeInput(req.Address),
		ServiceType:      serviceType,
		ConstructionType: constructionType,
		UrgencyLevel:     urgency,
		Status:           string(workflow.StatusPending),
		AppliedDate:      &now,
		Version:          1,
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	// application_number has a unique index; a concurrent create can take
	// the counted slot, so retry with the next sequence on collision.
	created := false
	for attempt := int64(0); attempt < 3; attempt++ {
		application.ApplicationNumber = generateCertificateNumber(attempt)
		err := config.DB.Create(&application).Error
		if err == nil {
			created = true
			break
		}
		if !isDuplicateKeyError(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
			return
		}
	}
	if !created {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application created successfully",
		"application": application,
	})
}

// UpdateCertificate edits applicant contact details while still pending.
func UpdateCertificate(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	type UpdateCertificateRequest struct {
		ContactNumber string `json:"contact_number"`
		Email         string `json:"email"`
		Address       string `json:"address"`
		UrgencyLevel  string `json:"urgency_level"`
	}

	var req UpdateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var application models.CertificateApplication
	if err := config.DB.Where("application_id = ? AND user_id = ? AND delete_at IS NULL", id, userID).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if application.Status != string(workflow.StatusPending) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending applications can be edited"})
		return
	}

	if req.ContactNumber != "" {
		if !utils.ValidatePhone(req.ContactNumber) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact number"})
			return
		}
		application.ContactNumber = strings.TrimSpace(req.ContactNumber)
	}
	if req.Email != "" {
		if !utils.ValidateEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
			return
		}
		application.Email = strings.TrimSpace(req.Email)
	}
	if req.Address != "" {
		application.Address = utils.SanitizeInput(req.Address)
	}
	if req.UrgencyLevel != "" {
		urgency := strings.ToLower(strings.TrimSpace(req.UrgencyLevel))
		switch urgency {
		case workflow.UrgencyNormal, workflow.UrgencyHigh, workflow.UrgencyCritical:
			application.UrgencyLevel = urgency
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid urgency level"})
			return
		}
	}

	// Version-guarded write of the contact columns only: a transition
	// landing after the load above wins the race and surfaces as 409.
	store := services.NewApplicationStore(config.DB)
	if err := store.UpdateContact(&application, application.Version); err != nil {
		switch {
		case errors.Is(err, services.ErrVersionConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Application was changed by someone else, please refresh"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application updated successfully",
		"application": application,
	})
}

// DeleteCertificate removes an application. Admins may delete any record;
// owners only while it is still pending.
func DeleteCertificate(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	store := services.NewApplicationStore(config.DB)
	application, err := store.Load(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	if roleID.(int) != models.RoleAdmin {
		if application.UserID != userID.(int) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		if application.Status != string(workflow.StatusPending) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending applications can be deleted"})
			return
		}
	}

	if err := store.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

/* ==========================
   Workflow transitions
   ========================== */

var transitionMessages = map[workflow.Action]string{
	workflow.ActionApprove:       "Application approved",
	workflow.ActionReject:        "Application rejected",
	workflow.ActionAssignPayment: "Payment assigned to application",
	workflow.ActionMarkInspected: "Application marked as inspected",
	workflow.ActionReactivate:    "Application reactivated for review",
}

var transitionEventTypes = map[workflow.Action]string{
	workflow.ActionApprove:       "success",
	workflow.ActionReject:        "error",
	workflow.ActionAssignPayment: "info",
	workflow.ActionMarkInspected: "success",
	workflow.ActionReactivate:    "info",
}

// runTransition loads the record, applies one workflow action, and saves
// the result under the loaded version. History and notification rows are
// written after a successful save; the version check is the authority.
func runTransition(changedBy, id int, action workflow.Action, in workflow.Input) (*models.CertificateApplication, error) {
	store := services.NewApplicationStore(config.DB)

	application, err := store.Load(id)
	if err != nil {
		return nil, err
	}

	oldStatus := application.Status
	updated, err := workflow.Apply(*application, action, in, time.Now())
	if err != nil {
		return nil, err
	}

	if err := store.Save(&updated, application.Version); err != nil {
		return nil, err
	}

	recordTransitionHistory(changedBy, oldStatus, &updated, action, in)
	notifyTransition(&updated, action)

	return &updated, nil
}

func recordTransitionHistory(changedBy int, oldStatus string, app *models.CertificateApplication, action workflow.Action, in workflow.Input) {
	history := models.ApplicationStatusHistory{
		ApplicationID: app.ApplicationID,
		OldStatus:     &oldStatus,
		NewStatus:     app.Status,
		ChangedBy:     changedBy,
		CreatedAt:     time.Now(),
	}
	if reason := strings.TrimSpace(in.Reason); reason != "" {
		history.Reason = &reason
	}
	note := fmt.Sprintf("action=%s", action)
	history.Notes = &note

	if err := config.DB.Create(&history).Error; err != nil {
		log.Printf("failed to log status history for application %d: %v", app.ApplicationID, err)
	}
}

func transitionErrorStatus(err error) int {
	switch {
	case errors.Is(err, workflow.ErrMissingRequiredField),
		errors.Is(err, workflow.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func transitionErrorMessage(err error) string {
	if errors.Is(err, services.ErrVersionConflict) {
		return "Application was changed by someone else, please refresh"
	}
	return err.Error()
}

func handleTransition(c *gin.Context, action workflow.Action, in workflow.Input) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	userID, _ := c.Get("userID")

	application, err := runTransition(userID.(int), id, action, in)
	if err != nil {
		c.JSON(transitionErrorStatus(err), gin.H{"error": transitionErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     transitionMessages[action],
		"application": application,
	})
}

// ApproveCertificate moves a pending application to approved.
func ApproveCertificate(c *gin.Context) {
	handleTransition(c, workflow.ActionApprove, workflow.Input{})
}

// RejectCertificate moves a pending application to rejected.
func RejectCertificate(c *gin.Context) {
	type RejectRequest struct {
		Reason string `json:"reason"`
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	handleTransition(c, workflow.ActionReject, workflow.Input{Reason: req.Reason})
}

// AssignCertificatePayment records the fee for an approved application.
func AssignCertificatePayment(c *gin.Context) {
	type AssignPaymentRequest struct {
		Amount float64 `json:"amount"`
	}

	var req AssignPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	handleTransition(c, workflow.ActionAssignPayment, workflow.Input{Amount: req.Amount})
}

// MarkCertificateInspected completes the workflow after site inspection.
func MarkCertificateInspected(c *gin.Context) {
	type InspectRequest struct {
		Notes string `json:"notes"`
	}

	var req InspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	handleTransition(c, workflow.ActionMarkInspected, workflow.Input{Notes: req.Notes})
}

// ReactivateCertificate returns a rejected application to pending.
func ReactivateCertificate(c *gin.Context) {
	handleTransition(c, workflow.ActionReactivate, workflow.Input{})
}

/* ==========================
   Batch operations
   ========================== */

// BatchCertificateAction applies one action to many applications. Each
// record is an independent transition; there is no cross-record
// atomicity and every outcome is reported individually.
func BatchCertificateAction(c *gin.Context) {
	type BatchRequest struct {
		IDs    []int   `json:"ids" binding:"required,min=1"`
		Action string  `json:"action" binding:"required"`
		Reason string  `json:"reason"`
		Amount float64 `json:"amount"`
		Notes  string  `json:"notes"`
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := workflow.ParseAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")
	in := workflow.Input{Reason: req.Reason, Amount: req.Amount, Notes: req.Notes}

	type batchResult struct {
		ApplicationID int    `json:"application_id"`
		OK            bool   `json:"ok"`
		Status        string `json:"status,omitempty"`
		Error         string `json:"error,omitempty"`
	}

	results := make([]batchResult, 0, len(req.IDs))
	succeeded := 0
	for _, id := range req.IDs {
		application, err := runTransition(userID.(int), id, action, in)
		if err != nil {
			results = append(results, batchResult{
				ApplicationID: id,
				OK:            false,
				Error:         transitionErrorMessage(err),
			})
			continue
		}
		succeeded++
		results = append(results, batchResult{
			ApplicationID: id,
			OK:            true,
			Status:        application.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(req.IDs) - succeeded,
	})
}

/* ==========================
   Read-side helpers
   ========================== */

// GetInspectionQueue lists payment-assigned applications ordered by
// urgency, then by how long they have waited since approval.
func GetInspectionQueue(c *gin.Context) {
	var applications []models.CertificateApplication
	if err := config.DB.Preload("User").
		Where("status = ? AND delete_at IS NULL", string(workflow.StatusPaymentAssigned)).
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inspection queue"})
		return
	}

	now := time.Now()
	workflow.SortForInspection(applications, now)

	type queueEntry struct {
		models.CertificateApplication
		DaysWaiting int `json:"days_waiting"`
	}
	entries := make([]queueEntry, 0, len(applications))
	for _, app := range applications {
		entries = append(entries, queueEntry{
			CertificateApplication: app,
			DaysWaiting:            workflow.DaysSinceApproval(app, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"queue": entries,
		"total": len(entries),
	})
}

// GetSuggestedPayment exposes the advisory fee helper. The figure is
// never applied automatically; officers pass it to assign-payment.
func GetSuggestedPayment(c *gin.Context) {
	serviceType := c.Query("service_type")
	constructionType := c.Query("construction_type")

	amount, err := workflow.SuggestedPayment(serviceType, constructionType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service_type":      strings.ToLower(strings.TrimSpace(serviceType)),
		"construction_type": strings.ToLower(strings.TrimSpace(constructionType)),
		"suggested_payment": amount,
	})
}

// GetCertificateHistory returns the status change trail for one application.
func GetCertificateHistory(c *gin.Context) {
	id := c.Param("id")

	var history []models.ApplicationStatusHistory
	if err := config.DB.Where("application_id = ?", id).
		Order("created_at ASC").Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"total":   len(history),
	})
}

// Helper function to generate certificate application number
func generateCertificateNumber(offset int64) string {
	var count int64
	config.DB.Model(&models.CertificateApplication{}).
		Where("DATE(create_at) = DATE(NOW())").
		Count(&count)

	return formatCertificateNumber(time.Now(), count+1+offset)
}

// formatCertificateNumber renders FPC-YYYYMMDD-XXXX.
func formatCertificateNumber(now time.Time, seq int64) string {
	return fmt.Sprintf("FPC-%s-%04d", now.Format("20060102"), seq)
}

// isDuplicateKeyError matches the MySQL unique-index violation (1062).
func isDuplicateKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
