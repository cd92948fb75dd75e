package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fire-department-api/config"
	"fire-department-api/models"
	"fire-department-api/utils"
)

var (
	errItemNotFound       = errors.New("inventory item not found")
	errInsufficientStock  = errors.New("insufficient stock")
	errAssignmentNotFound = errors.New("assignment not found")
)

func validItemCondition(condition string) bool {
	switch condition {
	case "serviceable", "needs_repair", "retired":
		return true
	}
	return false
}

func validVehicleStatus(status string) bool {
	switch status {
	case "in_service", "maintenance", "decommissioned":
		return true
	}
	return false
}

/* ==========================
   Inventory items
   ========================== */

// GetInventoryItems lists stock. Supports ?category= and ?condition=.
func GetInventoryItems(c *gin.Context) {
	var items []models.InventoryItem
	query := config.DB.Where("delete_at IS NULL")

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if condition := strings.TrimSpace(c.Query("condition")); condition != "" {
		query = query.Where("item_condition = ?", condition)
	}

	if err := query.Order("item_name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// CreateInventoryItem adds stock to the store.
func CreateInventoryItem(c *gin.Context) {
	type CreateItemRequest struct {
		ItemName  string `json:"item_name" binding:"required"`
		Category  string `json:"category" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
		Condition string `json:"condition"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	condition := strings.TrimSpace(req.Condition)
	if condition == "" {
		condition = "serviceable"
	}
	if !validItemCondition(condition) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item condition"})
		return
	}

	now := time.Now()
	item := models.InventoryItem{
		ItemName:  utils.SanitizeInput(req.ItemName),
		Category:  utils.SanitizeInput(req.Category),
		Quantity:  req.Quantity,
		Condition: condition,
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created successfully",
		"item":    item,
	})
}

// UpdateInventoryItem edits stock details.
func UpdateInventoryItem(c *gin.Context) {
	id := c.Param("id")

	type UpdateItemRequest struct {
		ItemName  *string `json:"item_name"`
		Category  *string `json:"category"`
		Quantity  *int    `json:"quantity"`
		Condition *string `json:"condition"`
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("item_id = ? AND delete_at IS NULL", id).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if req.ItemName != nil {
		item.ItemName = utils.SanitizeInput(*req.ItemName)
	}
	if req.Category != nil {
		item.Category = utils.SanitizeInput(*req.Category)
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity cannot be negative"})
			return
		}
		item.Quantity = *req.Quantity
	}
	if req.Condition != nil {
		if !validItemCondition(*req.Condition) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item condition"})
			return
		}
		item.Condition = *req.Condition
	}

	now := time.Now()
	item.UpdateAt = &now

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated successfully",
		"item":    item,
	})
}

// DeleteInventoryItem soft-deletes stock that is not out on a vehicle.
func DeleteInventoryItem(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var outstanding int64
	config.DB.Model(&models.VehicleItemAssignment{}).
		Where("item_id = ? AND returned_at IS NULL", id).
		Count(&outstanding)
	if outstanding > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Item is assigned to a vehicle"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.InventoryItem{}).
		Where("item_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{"delete_at": &now, "update_at": &now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

/* ==========================
   Vehicles
   ========================== */

// GetVehicles lists the fleet. Supports ?status= and ?station_id=.
func GetVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	query := config.DB.Where("delete_at IS NULL")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if stationID := strings.TrimSpace(c.Query("station_id")); stationID != "" {
		query = query.Where("station_id = ?", stationID)
	}

	if err := query.Order("call_sign ASC").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"total":    len(vehicles),
	})
}

// CreateVehicle registers an appliance.
func CreateVehicle(c *gin.Context) {
	type CreateVehicleRequest struct {
		CallSign  string `json:"call_sign" binding:"required"`
		Model     string `json:"model" binding:"required"`
		Status    string `json:"status"`
		StationID *int   `json:"station_id"`
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "in_service"
	}
	if !validVehicleStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle status"})
		return
	}

	var existing models.Vehicle
	if err := config.DB.Where("call_sign = ? AND delete_at IS NULL", req.CallSign).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Call sign already in use"})
		return
	}

	now := time.Now()
	vehicle := models.Vehicle{
		CallSign:  strings.TrimSpace(req.CallSign),
		Model:     utils.SanitizeInput(req.Model),
		Status:    status,
		StationID: req.StationID,
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vehicle created successfully",
		"vehicle": vehicle,
	})
}

// UpdateVehicle edits an appliance record.
func UpdateVehicle(c *gin.Context) {
	id := c.Param("id")

	type UpdateVehicleRequest struct {
		Model     *string `json:"model"`
		Status    *string `json:"status"`
		StationID *int    `json:"station_id"`
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.Where("vehicle_id = ? AND delete_at IS NULL", id).
		First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	if req.Model != nil {
		vehicle.Model = utils.SanitizeInput(*req.Model)
	}
	if req.Status != nil {
		if !validVehicleStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle status"})
			return
		}
		vehicle.Status = *req.Status
	}
	if req.StationID != nil {
		vehicle.StationID = req.StationID
	}

	now := time.Now()
	vehicle.UpdateAt = &now

	if err := config.DB.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle updated successfully",
		"vehicle": vehicle,
	})
}

/* ==========================
   Vehicle equipment assignment
   ========================== */

// AssignItemToVehicle moves stock from the store onto a vehicle.
func AssignItemToVehicle(c *gin.Context) {
	idParam := c.Param("id")
	vehicleID, err := strconv.Atoi(idParam)
	if err != nil || vehicleID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	type AssignItemRequest struct {
		ItemID   int `json:"item_id" binding:"required"`
		Quantity int `json:"quantity" binding:"required,min=1"`
	}

	var req AssignItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.Where("vehicle_id = ? AND delete_at IS NULL", vehicleID).
		First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	userID, _ := c.Get("userID")
	now := time.Now()

	// Stock decrement and assignment row move together.
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.Where("item_id = ? AND delete_at IS NULL", req.ItemID).
			First(&item).Error; err != nil {
			return errItemNotFound
		}
		if item.Quantity < req.Quantity {
			return errInsufficientStock
		}

		if err := tx.Model(&models.InventoryItem{}).
			Where("item_id = ?", req.ItemID).
			Updates(map[string]interface{}{
				"quantity":  item.Quantity - req.Quantity,
				"update_at": &now,
			}).Error; err != nil {
			return err
		}

		assignment := models.VehicleItemAssignment{
			VehicleID:  vehicleID,
			ItemID:     req.ItemID,
			Quantity:   req.Quantity,
			AssignedBy: userID.(int),
			AssignedAt: now,
		}
		return tx.Create(&assignment).Error
	})

	switch err {
	case nil:
		c.JSON(http.StatusCreated, gin.H{"message": "Item assigned to vehicle"})
	case errItemNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errInsufficientStock:
		c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign item"})
	}
}

// ReturnItemFromVehicle moves assigned stock back to the store.
func ReturnItemFromVehicle(c *gin.Context) {
	assignmentParam := c.Param("assignmentId")
	assignmentID, err := strconv.Atoi(assignmentParam)
	if err != nil || assignmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	now := time.Now()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var assignment models.VehicleItemAssignment
		if err := tx.Where("assignment_id = ? AND returned_at IS NULL", assignmentID).
			First(&assignment).Error; err != nil {
			return errAssignmentNotFound
		}

		if err := tx.Model(&models.VehicleItemAssignment{}).
			Where("assignment_id = ?", assignmentID).
			Update("returned_at", &now).Error; err != nil {
			return err
		}

		return tx.Model(&models.InventoryItem{}).
			Where("item_id = ?", assignment.ItemID).
			Updates(map[string]interface{}{
				"quantity":  gorm.Expr("quantity + ?", assignment.Quantity),
				"update_at": &now,
			}).Error
	})

	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Item returned to store"})
	case errAssignmentNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found or already returned"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to return item"})
	}
}

// GetVehicleEquipment lists what is currently loaded on a vehicle.
func GetVehicleEquipment(c *gin.Context) {
	vehicleID := c.Param("id")

	var assignments []models.VehicleItemAssignment
	if err := config.DB.Preload("Item").
		Where("vehicle_id = ? AND returned_at IS NULL", vehicleID).
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch equipment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"equipment": assignments,
		"total":     len(assignments),
	})
}
