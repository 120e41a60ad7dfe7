package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetrental/database"
)

// GetMyNotifications lists the authenticated user's notifications, newest
// first
func GetMyNotifications(c *gin.Context) {
	query := database.DB.Where("user_id = ?", currentUserID(c))
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []database.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead marks one of the user's notifications as read
func MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var notification database.Notification
	err := database.DB.Where("user_id = ?", currentUserID(c)).First(&notification, id).Error
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := database.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
