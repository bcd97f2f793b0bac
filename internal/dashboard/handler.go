package dashboard

import (
	"net/http"

	"gym24/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Stats godoc
// @Summary      Admin dashboard counters
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dashboard.Response
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/dashboard [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Stats: *stats})
}
