package user

import (
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

// Register godoc
// @Summary      Register new member
// @Description  Creates a member profile and returns access & refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      user.RegisterRequest  true  "Registration data"
// @Success      201      {object}  user.LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	user, accessToken, refreshToken, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	})
}

// Login godoc
// @Summary      Member login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      user.LoginRequest  true  "Credentials"
// @Success      200      {object}  user.LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	user, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	})
}

// GetMe godoc
// @Summary      Current member
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  user.User
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Unauthorized(c)
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary      Update current member profile
// @Description  Replaces the editable profile fields. An empty date_of_birth clears it.
// @Tags         user
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      user.UpdateProfileRequest  true  "Profile"
// @Success      200      {object}  user.User
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /me [put]
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Unauthorized(c)
		return
	}

	var req UpdateProfileRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SetAvatar godoc
// @Summary      Set avatar
// @Tags         user
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      user.AvatarRequest  true  "Avatar URL"
// @Success      200      {object}  user.User
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /me/avatar [put]
func (h *Handler) SetAvatar(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Unauthorized(c)
		return
	}

	var req AvatarRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	user, err := h.service.SetAvatar(c.Request.Context(), userID, req.AvatarURL)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteAvatar godoc
// @Summary      Remove avatar
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  user.User
// @Failure      401  {object}  api.ErrorResponse
// @Router       /me/avatar [delete]
func (h *Handler) DeleteAvatar(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Unauthorized(c)
		return
	}

	user, err := h.service.ClearAvatar(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      user.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  user.RefreshResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	accessToken, user, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{AccessToken: accessToken, User: *user})
}

// AdminList godoc
// @Summary      List members
// @Tags         admin,users
// @Produce      json
// @Success      200  {array}   user.User
// @Failure      401  {object}  api.ErrorResponse
// @Router       /admin/users [get]
func (h *Handler) AdminList(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// AdminDelete godoc
// @Summary      Delete member
// @Description  Deletes the member's bookings and reviews, then the profile
// @Tags         admin,users
// @Accept       json
// @Produce      json
// @Param        request  body      user.DeleteUserRequest  true  "User id"
// @Success      200      {object}  api.SuccessResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/users [delete]
func (h *Handler) AdminDelete(c *gin.Context) {
	adminID, err := adminsession.AdminID(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), adminID, req.ID); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}
