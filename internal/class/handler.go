package class

import (
	"net/http"

	"gym24/internal/adminsession"
	"gym24/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      List classes
// @Description  Every class with current bookings, remaining seats and rating
// @Tags         classes
// @Produce      json
// @Success      200 {array} class.ClassView
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes [get]
// @Router       /admin/classes [get]
func (h *Handler) List(c *gin.Context) {
	views, err := h.service.ListWithOccupancy(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary      Get class
// @Tags         classes
// @Produce      json
// @Param        id path int true "Class ID"
// @Success      200 {object} class.ClassDetail
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// @Summary      Create class
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Param        request body class.CreateClassRequest true "Class fields"
// @Success      201 {object} class.Class
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/classes [post]
func (h *Handler) Create(c *gin.Context) {
	adminID, err := adminsession.AdminID(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), adminID, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary      Update class
// @Description  Body carries the id plus any of the editable fields
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Success      200 {object} class.Class
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/classes [put]
func (h *Handler) Update(c *gin.Context) {
	adminID, err := adminsession.AdminID(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	id, ok := api.BodyID(body)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing class id", Field: "id"})
		return
	}
	delete(body, "id")

	updated, err := h.service.Update(c.Request.Context(), adminID, id, body)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete class
// @Description  Deletes the class's bookings and reviews first
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Param        request body class.DeleteClassRequest true "Class id"
// @Success      200 {object} api.SuccessResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/classes [delete]
func (h *Handler) Delete(c *gin.Context) {
	adminID, err := adminsession.AdminID(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	var req DeleteClassRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), adminID, req.ID); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}
