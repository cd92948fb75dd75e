package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fire-department-api/config"
	"fire-department-api/models"
	"fire-department-api/utils"
)

// GetStaff lists personnel. Supports ?role_id= and ?station_id= filters.
func GetStaff(c *gin.Context) {
	var users []models.User
	query := config.DB.Preload("Role").Preload("Rank").
		Where("delete_at IS NULL")

	if roleID := strings.TrimSpace(c.Query("role_id")); roleID != "" {
		query = query.Where("role_id = ?", roleID)
	}
	if stationID := strings.TrimSpace(c.Query("station_id")); stationID != "" {
		query = query.Where("station_id = ?", stationID)
	}

	if err := query.Order("user_lname ASC, user_fname ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staff": users,
		"total": len(users),
	})
}

// GetStaffMember returns one staff record.
func GetStaffMember(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.Preload("Role").Preload("Rank").
		Where("user_id = ? AND delete_at IS NULL", id).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"staff": user})
}

// CreateStaffMember registers a new staff account.
func CreateStaffMember(c *gin.Context) {
	type CreateStaffRequest struct {
		UserFname        string  `json:"user_fname" binding:"required"`
		UserLname        string  `json:"user_lname" binding:"required"`
		Email            string  `json:"email" binding:"required,email"`
		Password         string  `json:"password" binding:"required,min=8"`
		RoleID           int     `json:"role_id" binding:"required"`
		RankID           int     `json:"rank_id" binding:"required"`
		StationID        *int    `json:"station_id"`
		Tel              *string `json:"tel"`
		DateOfEmployment *string `json:"date_of_employment"` // YYYY-MM-DD
	}

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ok, reason := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
		return
	}
	if req.Tel != nil && !utils.ValidatePhone(*req.Tel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid telephone number"})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		UserFname: utils.SanitizeInput(req.UserFname),
		UserLname: utils.SanitizeInput(req.UserLname),
		Email:     strings.TrimSpace(req.Email),
		Password:  hashed,
		RoleID:    req.RoleID,
		RankID:    req.RankID,
		StationID: req.StationID,
		Tel:       req.Tel,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if req.DateOfEmployment != nil {
		if d, err := time.Parse("2006-01-02", *req.DateOfEmployment); err == nil {
			user.DateOfEmployment = &d
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_of_employment, expected YYYY-MM-DD"})
			return
		}
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff member"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Staff member created successfully",
		"staff":   user,
	})
}

// UpdateStaffMember edits a staff account.
func UpdateStaffMember(c *gin.Context) {
	id := c.Param("id")

	type UpdateStaffRequest struct {
		UserFname *string `json:"user_fname"`
		UserLname *string `json:"user_lname"`
		RoleID    *int    `json:"role_id"`
		RankID    *int    `json:"rank_id"`
		StationID *int    `json:"station_id"`
		Tel       *string `json:"tel"`
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	if req.UserFname != nil {
		user.UserFname = utils.SanitizeInput(*req.UserFname)
	}
	if req.UserLname != nil {
		user.UserLname = utils.SanitizeInput(*req.UserLname)
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.RankID != nil {
		user.RankID = *req.RankID
	}
	if req.StationID != nil {
		user.StationID = req.StationID
	}
	if req.Tel != nil {
		if !utils.ValidatePhone(*req.Tel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid telephone number"})
			return
		}
		user.Tel = req.Tel
	}

	now := time.Now()
	user.UpdateAt = &now

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Staff member updated successfully",
		"staff":   user,
	})
}

// DeleteStaffMember soft-deletes a staff account. Admins cannot delete
// themselves.
func DeleteStaffMember(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	userID, _ := c.Get("userID")
	if userID.(int) == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.User{}).
		Where("user_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{"delete_at": &now, "update_at": &now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staff member"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}

// GetRoles lists the seeded roles.
func GetRoles(c *gin.Context) {
	var roles []models.Role
	if err := config.DB.Where("delete_at IS NULL").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch roles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// GetRanks lists active ranks.
func GetRanks(c *gin.Context) {
	var ranks []models.Rank
	if err := config.DB.Where("delete_at IS NULL AND is_active = ?", "1").
		Find(&ranks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ranks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ranks": ranks})
}
