package contact

import (
	"context"
	"net/http"

	"gym24/internal/adminsession"
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

func memberSender(c *gin.Context) (Sender, bool) {
	userID, exists := auth.GetUserID(c)
	if !exists || userID == "" {
		api.Unauthorized(c)
		return Sender{}, false
	}
	return Member(userID), true
}

func adminSender(c *gin.Context) (Sender, bool) {
	adminID, err := adminsession.AdminID(c)
	if err != nil {
		api.RespondError(c, err)
		return Sender{}, false
	}
	return Admin(adminID), true
}

// CreateRequest godoc
// @Summary      Open a contact request
// @Tags         contact
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      contact.CreateRequestRequest  true  "Subject and message"
// @Success      201      {object}  contact.Request
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /contact/requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	sender, ok := memberSender(c)
	if !ok {
		return
	}
	var req CreateRequestRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	created, err := h.service.CreateRequest(c.Request.Context(), sender.ID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMine godoc
// @Summary      My contact requests
// @Tags         contact
// @Security     BearerAuth
// @Success      200  {array}  contact.Request
// @Router       /contact/requests [get]
func (h *Handler) ListMine(c *gin.Context) {
	sender, ok := memberSender(c)
	if !ok {
		return
	}
	requests, err := h.service.ListMine(c.Request.Context(), sender.ID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// AdminList godoc
// @Summary      List contact requests
// @Tags         admin,contact
// @Param        status  query     string  false  "pending or accepted"
// @Success      200     {array}   contact.Request
// @Failure      400     {object}  api.ErrorResponse
// @Router       /admin/contact/requests [get]
func (h *Handler) AdminList(c *gin.Context) {
	requests, err := h.service.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// Accept godoc
// @Summary      Accept a pending request
// @Description  Only one concurrent accept wins; the loser gets 409
// @Tags         admin,contact
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  api.OKResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /admin/contact/requests/{id}/accept [post]
func (h *Handler) Accept(c *gin.Context) {
	h.transition(c, h.service.Accept)
}

// Decline godoc
// @Summary      Decline a request
// @Description  Deletes the request and its messages. Declining a missing request succeeds.
// @Tags         admin,contact
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  api.OKResponse
// @Router       /admin/contact/requests/{id}/decline [post]
func (h *Handler) Decline(c *gin.Context) {
	h.transition(c, h.service.Decline)
}

// DeleteChat godoc
// @Summary      Delete an accepted chat
// @Tags         admin,contact
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  api.OKResponse
// @Router       /admin/contact/requests/{id} [delete]
func (h *Handler) DeleteChat(c *gin.Context) {
	h.transition(c, h.service.DeleteChat)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, adminID string, id int64) error) {
	sender, ok := adminSender(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), sender.ID, id); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OKResponse{OK: true})
}

// MemberMessages godoc
// @Summary      Chat messages
// @Tags         contact
// @Security     BearerAuth
// @Param        id   path      int  true  "Request ID"
// @Success      200  {array}   contact.ChatMessage
// @Failure      404  {object}  api.ErrorResponse
// @Router       /contact/requests/{id}/messages [get]
func (h *Handler) MemberMessages(c *gin.Context) { h.messages(c, memberSender) }

// AdminMessages godoc
// @Summary      Chat messages
// @Tags         admin,contact
// @Param        id   path      int  true  "Request ID"
// @Success      200  {array}   contact.ChatMessage
// @Router       /admin/contact/requests/{id}/messages [get]
func (h *Handler) AdminMessages(c *gin.Context) { h.messages(c, adminSender) }

func (h *Handler) messages(c *gin.Context, who func(*gin.Context) (Sender, bool)) {
	sender, ok := who(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}
	messages, err := h.service.ListMessages(c.Request.Context(), sender, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MemberPostMessage godoc
// @Summary      Send a chat message
// @Tags         contact
// @Security     BearerAuth
// @Param        id       path      int                          true  "Request ID"
// @Param        request  body      contact.PostMessageRequest  true  "Message"
// @Success      201      {object}  contact.ChatMessage
// @Failure      409      {object}  api.ErrorResponse
// @Router       /contact/requests/{id}/messages [post]
func (h *Handler) MemberPostMessage(c *gin.Context) { h.post(c, memberSender) }

// AdminPostMessage godoc
// @Summary      Send a chat message
// @Tags         admin,contact
// @Param        id       path      int                          true  "Request ID"
// @Param        request  body      contact.PostMessageRequest  true  "Message"
// @Success      201      {object}  contact.ChatMessage
// @Router       /admin/contact/requests/{id}/messages [post]
func (h *Handler) AdminPostMessage(c *gin.Context) { h.post(c, adminSender) }

func (h *Handler) post(c *gin.Context, who func(*gin.Context) (Sender, bool)) {
	sender, ok := who(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}
	var req PostMessageRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	msg, err := h.service.PostMessage(c.Request.Context(), sender, id, req.Content)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// MemberTyping godoc
// @Summary      Typing indicator
// @Tags         contact
// @Param        id       path  int                     true  "Request ID"
// @Param        request  body  contact.TypingRequest  true  "Typing state"
// @Success      200  {object}  api.OKResponse
// @Router       /contact/requests/{id}/typing [post]
func (h *Handler) MemberTyping(c *gin.Context) { h.typing(c, memberSender) }

// AdminTyping godoc
// @Summary      Typing indicator
// @Tags         admin,contact
// @Param        id       path  int                     true  "Request ID"
// @Param        request  body  contact.TypingRequest  true  "Typing state"
// @Success      200  {object}  api.OKResponse
// @Router       /admin/contact/requests/{id}/typing [post]
func (h *Handler) AdminTyping(c *gin.Context) { h.typing(c, adminSender) }

func (h *Handler) typing(c *gin.Context, who func(*gin.Context) (Sender, bool)) {
	sender, ok := who(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}
	var req TypingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.Typing(c.Request.Context(), sender, id, req.IsTyping); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.OKResponse{OK: true})
}
