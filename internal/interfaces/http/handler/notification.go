package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sis/backend/internal/application/notification"
)

// NotificationHandler exposes the console's single-slot message channel
type NotificationHandler struct {
	BaseHandler
	channel *notification.Channel
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(channel *notification.Channel) *NotificationHandler {
	return &NotificationHandler{channel: channel}
}

// GetCurrent returns the displayed message, or a null body once it expired
// or was dismissed
func (h *NotificationHandler) GetCurrent(c *gin.Context) {
	h.Success(c, h.channel.Current())
}

// Dismiss clears the slot. The optional reason query parameter records
// whether the operator dismissed explicitly or clicked elsewhere; both only
// clear the slot.
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	reason := notification.DismissReason(c.DefaultQuery("reason", string(notification.DismissExplicit)))
	h.channel.Dismiss(reason)
	h.Success(c, gin.H{"dismissed": true})
}

// RegisterRoutes registers all notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("/current", h.GetCurrent)
		notifications.DELETE("/current", h.Dismiss)
	}
}
