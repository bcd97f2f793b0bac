package adminsession

import (
	"net/http"

	"gym24/internal/api"
	"gym24/internal/apperrors"
	"gym24/internal/logger"

	"github.com/gin-gonic/gin"
)

const contextAdmin = "admin"

type Handler struct {
	authority    *Authority
	secureCookie bool
}

func NewHandler(authority *Authority, secureCookie bool) *Handler {
	return &Handler{
		authority:    authority,
		secureCookie: secureCookie,
	}
}

// Login godoc
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body adminsession.LoginRequest true "Credentials"
// @Success      200 {object} adminsession.AdminResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	admin, token, err := h.authority.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	h.setCookie(c, token, int(h.authority.TTL().Seconds()))
	logger.Info("admin logged in", "admin_id", admin.ID)

	c.JSON(http.StatusOK, AdminResponse{Admin: admin})
}

// Validate godoc
// @Summary      Validate admin session
// @Tags         admin
// @Produce      json
// @Success      200 {object} adminsession.AdminResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /admin/validate [get]
func (h *Handler) Validate(c *gin.Context) {
	admin, ok := CurrentAdmin(c)
	if !ok {
		api.Unauthorized(c)
		return
	}
	c.JSON(http.StatusOK, AdminResponse{Admin: admin})
}

// Logout godoc
// @Summary      Admin logout
// @Tags         admin
// @Produce      json
// @Success      200 {object} api.SuccessResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		api.Unauthorized(c)
		return
	}

	if err := h.authority.DeleteSession(c.Request.Context(), token); err != nil {
		api.RespondError(c, err)
		return
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", h.secureCookie, true)
}

// RequireAdmin aborts with 401 unless the request carries a valid admin
// cookie. A store failure during validation also counts as no session.
func RequireAdmin(authority *Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			api.Unauthorized(c)
			return
		}

		admin, err := authority.ValidateSession(c.Request.Context(), token)
		if err != nil {
			logger.WithError(err).Warn("admin session validation failed")
		}
		if admin == nil {
			api.Unauthorized(c)
			return
		}

		SetAdmin(c, admin)
		c.Next()
	}
}

func SetAdmin(c *gin.Context, admin *Admin) {
	c.Set(contextAdmin, admin)
}

func CurrentAdmin(c *gin.Context) (*Admin, bool) {
	v, exists := c.Get(contextAdmin)
	if !exists {
		return nil, false
	}
	admin, ok := v.(*Admin)
	return admin, ok && admin != nil
}

// AdminID returns the acting admin's id, or an authentication error.
func AdminID(c *gin.Context) (string, error) {
	admin, ok := CurrentAdmin(c)
	if !ok {
		return "", apperrors.NewAuthenticationError("admin session required")
	}
	return admin.ID, nil
}
