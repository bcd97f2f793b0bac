package review

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

// Submit godoc
// @Summary      Review a class
// @Description  Creates the member's review, or updates the existing one
// @Tags         reviews
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                         true  "Class ID"
// @Param        request  body  review.SubmitReviewRequest  true  "Rating and comment"
// @Success      200  {object}  review.SubmitReviewResponse
// @Success      201  {object}  review.SubmitReviewResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /classes/{id}/reviews [post]
func (h *Handler) Submit(c *gin.Context) {
	classID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	userID, _ := auth.GetUserID(c)
	r, created, err := h.service.Submit(c.Request.Context(), userID, classID, req.Rating, req.Comment)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, SubmitReviewResponse{Review: r, Created: created})
}

// @Summary      My reviews
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   review.Review
// @Failure      401  {object}  api.ErrorResponse
// @Router       /reviews [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	reviews, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// @Summary      Delete my review
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Review ID"
// @Success      200  {object}  api.SuccessResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /reviews/{id} [delete]
func (h *Handler) DeleteMine(c *gin.Context) {
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	userID, _ := auth.GetUserID(c)
	if err := h.service.DeleteMine(c.Request.Context(), userID, id); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

// @Summary      All reviews
// @Tags         admin,reviews
// @Produce      json
// @Success      200  {array}   review.AdminReview
// @Failure      401  {object}  api.ErrorResponse
// @Router       /admin/reviews [get]
func (h *Handler) AdminList(c *gin.Context) {
	reviews, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// @Summary      Delete review
// @Tags         admin,reviews
// @Accept       json
// @Produce      json
// @Param        request  body  review.DeleteReviewRequest  true  "Review id"
// @Success      200  {object}  api.SuccessResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/reviews [delete]
func (h *Handler) AdminDelete(c *gin.Context) {
	adminID, err := adminsession.AdminID(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	var req DeleteReviewRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), adminID, req.ID); err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}
