package routes

import (
	"fire-department-api/controllers"
	"fire-department-api/middleware"
	"fire-department-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Fire Department API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Common lookups
			protected.GET("/roles", controllers.GetRoles)
			protected.GET("/ranks", controllers.GetRanks)

			// Certificate applications
			certificates := protected.Group("/certificates")
			{
				certificates.GET("", controllers.GetCertificates)
				certificates.GET("/suggested-payment", controllers.GetSuggestedPayment)
				certificates.GET("/inspection-queue",
					middleware.RequireRole(models.RoleOfficer, models.RoleAdmin),
					controllers.GetInspectionQueue)
				certificates.GET("/:id", controllers.GetCertificate)
				certificates.GET("/:id/history",
					middleware.RequireRole(models.RoleOfficer, models.RoleAdmin),
					controllers.GetCertificateHistory)

				certificates.POST("", controllers.CreateCertificate)
				certificates.PUT("/:id", controllers.UpdateCertificate)
				certificates.DELETE("/:id", controllers.DeleteCertificate)

				// Workflow actions: officers and admins only
				review := certificates.Group("")
				review.Use(middleware.RequireRole(models.RoleOfficer, models.RoleAdmin))
				{
					review.POST("/:id/approve", controllers.ApproveCertificate)
					review.POST("/:id/reject", controllers.RejectCertificate)
					review.POST("/:id/assign-payment", controllers.AssignCertificatePayment)
					review.POST("/:id/mark-inspected", controllers.MarkCertificateInspected)
					review.POST("/:id/reactivate", controllers.ReactivateCertificate)
					review.POST("/batch", controllers.BatchCertificateAction)
				}
			}

			// Staff management
			staff := protected.Group("/staff")
			{
				staff.GET("", middleware.RequireRole(models.RoleOfficer, models.RoleAdmin), controllers.GetStaff)
				staff.GET("/:id", middleware.RequireRole(models.RoleOfficer, models.RoleAdmin), controllers.GetStaffMember)
				staff.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateStaffMember)
				staff.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateStaffMember)
				staff.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteStaffMember)
			}

			// Shift scheduling
			shifts := protected.Group("/shifts")
			{
				shifts.GET("", controllers.GetShifts)
				shifts.GET("/mine", controllers.GetMyShifts)
				shifts.GET("/:id", controllers.GetShift)
				shifts.GET("/:id/attendance",
					middleware.RequireRole(models.RoleOfficer, models.RoleAdmin),
					controllers.GetShiftAttendance)

				manage := shifts.Group("")
				manage.Use(middleware.RequireRole(models.RoleOfficer, models.RoleAdmin))
				{
					manage.POST("", controllers.CreateShift)
					manage.PUT("/:id", controllers.UpdateShift)
					manage.DELETE("/:id", controllers.DeleteShift)
					manage.POST("/:id/assignments", controllers.AssignToShift)
					manage.DELETE("/:id/assignments/:userId", controllers.RemoveFromShift)
				}
			}

			// QR attendance
			attendance := protected.Group("/attendance")
			{
				attendance.POST("/tokens",
					middleware.RequireRole(models.RoleOfficer, models.RoleAdmin),
					controllers.IssueAttendanceToken)
				attendance.DELETE("/tokens/:id",
					middleware.RequireRole(models.RoleOfficer, models.RoleAdmin),
					controllers.RevokeAttendanceToken)
				attendance.POST("/check-in", controllers.CheckIn)
				attendance.GET("/mine", controllers.GetMyAttendance)
			}

			// Inventory and fleet
			inventory := protected.Group("/inventory")
			{
				inventory.GET("/items", controllers.GetInventoryItems)

				manage := inventory.Group("/items")
				manage.Use(middleware.RequireRole(models.RoleOfficer, models.RoleAdmin))
				{
					manage.POST("", controllers.CreateInventoryItem)
					manage.PUT("/:id", controllers.UpdateInventoryItem)
					manage.DELETE("/:id", controllers.DeleteInventoryItem)
				}
			}

			vehicles := protected.Group("/vehicles")
			{
				vehicles.GET("", controllers.GetVehicles)
				vehicles.GET("/:id/equipment", controllers.GetVehicleEquipment)

				manage := vehicles.Group("")
				manage.Use(middleware.RequireRole(models.RoleOfficer, models.RoleAdmin))
				{
					manage.POST("", controllers.CreateVehicle)
					manage.PUT("/:id", controllers.UpdateVehicle)
					manage.POST("/:id/equipment", controllers.AssignItemToVehicle)
					manage.POST("/equipment/:assignmentId/return", controllers.ReturnItemFromVehicle)
				}
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.GET("/feed", controllers.GetNotificationFeed)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
				notifications.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateNotification)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats",
					middleware.RequireRole(models.RoleOfficer, models.RoleAdmin),
					controllers.GetDashboardStats)
				dashboard.GET("/mine", controllers.GetMyDashboard)
			}
		}
	}
}
