package controllers

import (
	"net/http"

	"learnsphere/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAllUsers - Admin fetch all users, with optional name/email search.
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		search := c.Query("search")

		query := db.Model(&models.User{}).Preload("Bookings")

		if search != "" {
			query = query.Where("LOWER(full_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", "%"+search+"%", "%"+search+"%")
		}

		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users"})
			return
		}

		for i := range users {
			users[i].BookingsCount = int64(len(users[i].Bookings))
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
	}
}

// BlockUser - toggle a user's blocked status.
func BlockUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		user.Blocked = !user.Blocked
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
			return
		}

		status := "unblocked"
		if user.Blocked {
			status = "blocked"
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User " + status + " successfully"})
	}
}
