package handlers

import (
	"net/http"

	portssvc "github.com/corebank/ledgerd/internal/core/ports/services"
	"github.com/corebank/ledgerd/internal/dto"
	"github.com/gin-gonic/gin"
)

// notificationHandler handles the notification endpoints.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

// registerNotificationRoutes registers notification routes.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("", h.createNotification)
		notifications.PUT("/:notificationID/read", h.markRead)
	}
}

// listNotifications godoc
// @Summary List notifications
// @Description Retrieves the caller's notifications, newest first.
// @Tags notifications
// @Produce  json
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListNotificationResponse(notifications))
}

// createNotification godoc
// @Summary Send a notification
// @Description Sends a notification to a user. Admin only.
// @Tags notifications
// @Accept  json
// @Produce  json
// @Param   notification body dto.CreateNotificationRequest true "Notification details"
// @Success 201 {object} dto.NotificationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Target user not found"
// @Security BearerAuth
// @Router /notifications [post]
func (h *notificationHandler) createNotification(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	notification, err := h.notificationService.CreateNotification(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNotificationResponse(*notification))
}

// markRead godoc
// @Summary Mark a notification read
// @Description Flags one of the caller's notifications as read.
// @Tags notifications
// @Produce  json
// @Param   notificationID path string true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Notification not found"
// @Security BearerAuth
// @Router /notifications/{notificationID}/read [put]
func (h *notificationHandler) markRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), userID, c.Param("notificationID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
