package stream

import (
	"net/http"
	"time"

	"gym24/internal/adminsession"
	"gym24/internal/api"
	"gym24/internal/auth"
	"gym24/internal/contact"
	"gym24/internal/logger"
	"gym24/internal/realtime"

	"github.com/gin-gonic/gin"
)

type Config struct {
	PollInterval time.Duration
	Heartbeat    time.Duration
}

type Handler struct {
	hub         *realtime.Hub
	broadcaster realtime.Broadcaster
	fetcher     realtime.Fetcher
	contacts    contact.Service
	cfg         Config
}

func NewHandler(hub *realtime.Hub, broadcaster realtime.Broadcaster, fetcher realtime.Fetcher, contacts contact.Service, cfg Config) *Handler {
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = 30 * time.Second
	}
	return &Handler{
		hub:         hub,
		broadcaster: broadcaster,
		fetcher:     fetcher,
		contacts:    contacts,
		cfg:         cfg,
	}
}

// Classes streams the class list; a signed-in member also gets their bookings.
// GET /realtime/classes
func (h *Handler) Classes(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	h.serve(c, realtime.Scope{View: realtime.ViewClasses, UserID: userID}, 0)
}

// GET /realtime/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Unauthorized(c)
		return
	}
	h.serve(c, realtime.Scope{View: realtime.ViewDashboard, UserID: userID}, 0)
}

// Notifications also polls, in case a change event is missed.
// GET /realtime/notifications
func (h *Handler) Notifications(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Unauthorized(c)
		return
	}
	h.serve(c, realtime.Scope{View: realtime.ViewNotifications, UserID: userID}, h.cfg.PollInterval)
}

// GET /realtime/contact/:id
func (h *Handler) MemberChat(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Unauthorized(c)
		return
	}
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}
	if _, err := h.contacts.GetForViewer(c.Request.Context(), contact.Member(userID), id); err != nil {
		api.RespondError(c, err)
		return
	}
	h.serve(c, realtime.Scope{View: realtime.ViewChat, UserID: userID, RequestID: id}, 0)
}

// GET /admin/realtime/requests
func (h *Handler) AdminRequests(c *gin.Context) {
	adminID, err := adminsession.AdminID(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	h.serve(c, realtime.Scope{View: realtime.ViewAdminRequests, UserID: adminID}, 0)
}

// GET /admin/realtime/contact/:id
func (h *Handler) AdminChat(c *gin.Context) {
	adminID, err := adminsession.AdminID(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}
	h.serve(c, realtime.Scope{View: realtime.ViewAdminChat, UserID: adminID, RequestID: id}, 0)
}

func (h *Handler) serve(c *gin.Context, scope realtime.Scope, poll time.Duration) {
	ctx := c.Request.Context()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	viewer := realtime.NewViewer(realtime.ViewerConfig{
		Scope:        scope,
		Hub:          h.hub,
		Broadcaster:  h.broadcaster,
		Fetcher:      h.fetcher,
		PollInterval: poll,
	})
	go viewer.Run(ctx)

	c.SSEvent("connected", gin.H{
		"view":      scope.View,
		"timestamp": time.Now(),
	})
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.cfg.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("stream closed", "view", scope.View)
			return
		case <-heartbeat.C:
			c.SSEvent("heartbeat", gin.H{"timestamp": time.Now()})
			c.Writer.Flush()
		case u, ok := <-viewer.Updates():
			if !ok {
				return
			}
			name, data := frame(u)
			c.SSEvent(name, data)
			c.Writer.Flush()
		}
	}
}

// frame maps a viewer update to its SSE event name and body.
func frame(u realtime.Update) (string, interface{}) {
	switch u.Kind {
	case realtime.UpdateData:
		return string(u.Collection), u.Data
	case realtime.UpdateError:
		return "error", gin.H{"collection": u.Collection, "error": u.Data}
	default:
		return u.Kind, u.Data
	}
}
