package booking

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
	return &Handler{
		service: service,
	}
}

// BookClass godoc
// @Summary      Book a class
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Class ID"
// @Success      201  {object}  booking.BookResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes/{id}/book [post]
func (h *Handler) BookClass(c *gin.Context) {
	classID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	userID, _ := auth.GetUserID(c)
	b, err := h.service.BookClass(c.Request.Context(), userID, classID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, BookResponse{Booking: b})
}

// CancelByClass godoc
// @Summary      Cancel my booking for a class
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Class ID"
// @Success      200  {object}  booking.CancelBookingResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /classes/{id}/book [delete]
func (h *Handler) CancelByClass(c *gin.Context) {
	classID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	userID, _ := auth.GetUserID(c)
	if err := h.service.CancelByClass(c.Request.Context(), userID, classID); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelBookingResponse{Message: "Booking cancelled successfully"})
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  booking.CancelBookingResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /bookings/{id} [delete]
func (h *Handler) CancelBooking(c *gin.Context) {
	bookingID, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	userID, _ := auth.GetUserID(c)
	if err := h.service.CancelBooking(c.Request.Context(), userID, bookingID); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelBookingResponse{Message: "Booking cancelled successfully"})
}

// ListMine godoc
// @Summary      My bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   booking.UserBooking
// @Failure      401  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// AdminList godoc
// @Summary      All bookings
// @Tags         admin,bookings
// @Produce      json
// @Success      200  {object}  booking.AdminBookingsResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/bookings/list [get]
func (h *Handler) AdminList(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AdminBookingsResponse{Bookings: bookings})
}

// AdminDelete godoc
// @Summary      Delete bookings
// @Tags         admin,bookings
// @Accept       json
// @Produce      json
// @Param        request body booking.DeleteBookingsRequest true "Booking id or ids"
// @Success      200  {object}  booking.DeleteBookingsResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/bookings [delete]
func (h *Handler) AdminDelete(c *gin.Context) {
	adminID, err := adminsession.AdminID(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	var req DeleteBookingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	removed, err := h.service.Delete(c.Request.Context(), adminID, req.all())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteBookingsResponse{Success: true, Deleted: removed})
}
