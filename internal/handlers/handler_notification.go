package handlers

import (
	"net/http"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/dto"
	"github.com/gin-gonic/gin"
)

type notificationHandler struct {
	notifications portssvc.NotificationSvcFacade
}

func registerNotificationRoutes(rg *gin.RouterGroup, notifications portssvc.NotificationSvcFacade) {
	h := &notificationHandler{notifications: notifications}

	group := rg.Group("/notifications")
	{
		group.GET("", h.listNotifications)
		group.POST("/:notificationID/read", h.markRead)
	}
}

// listNotifications godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce  json
// @Param   unreadOnly query bool false "Only unread notifications"
// @Success 200 {object} dto.ListNotificationsResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	ns, err := h.notifications.ListNotifications(c.Request.Context(), userID, params.UnreadOnly)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(ns))
}

// markRead godoc
// @Summary Mark a notification read
// @Description Idempotent: marking an already read notification succeeds.
// @Tags notifications
// @Produce  json
// @Param   notificationID path string true "Notification ID"
// @Success 200 {object} dto.MarkReadResponse
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Security BearerAuth
// @Router /notifications/{notificationID}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	notificationID := c.Param("notificationID")
	result, err := h.notifications.MarkRead(c.Request.Context(), userID, notificationID)
	if err != nil {
		respondError(c, err, "Failed to mark notification read")
		return
	}
	if result == domain.MarkReadNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, dto.MarkReadResponse{NotificationID: notificationID, Result: result})
}
