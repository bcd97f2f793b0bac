package notification

import (
	"net/http"

	"gym24/internal/api"
	"gym24/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary      My notifications
// @Description  Latest notifications inside the retention window
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   notification.Notification
// @Failure      401  {object}  api.ErrorResponse
// @Router       /notifications [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	notifications, err := h.service.ListForRecipient(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead godoc
// @Summary      Mark one notification read
// @Tags         notifications
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  api.OKResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /notifications/{id}/read [post]
func (h *Handler) MarkRead(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Unauthorized(c)
		return
	}
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), userID, id); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OKResponse{OK: true})
}

// MarkAllRead godoc
// @Summary      Mark all notifications read
// @Tags         notifications
// @Security     BearerAuth
// @Success      200  {object}  notification.MarkAllReadResponse
// @Router       /notifications/read-all [post]
func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Unauthorized(c)
		return
	}

	updated, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MarkAllReadResponse{Updated: updated})
}

// Cleanup godoc
// @Summary      Delete expired notifications
// @Description  Internal endpoint for cron; deletes notifications past the retention window
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notification.CleanupResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /notifications/cleanup [post]
func (h *Handler) Cleanup(c *gin.Context) {
	deleted, err := h.service.Cleanup(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CleanupResponse{
		Deleted: deleted,
		Message: "Notifications cleaned up successfully",
	})
}
