package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/application"
	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	"github.com/shareit-platform/service-booking/internal/middleware"
	"github.com/shareit-platform/service-booking/internal/response"
)

var (
	errInvalidFrom = errors.New("from must be a non-negative integer")
	errInvalidSize = errors.New("size must be a positive integer")
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
// Every route requires the caller identity header.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.Identity())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListForBooker)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/items/:itemId/overview", h.ItemOverview)
		bookings.GET("/items/:itemId/completed", h.HasCompleted)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.PATCH("/:bookingId", h.DecideBooking)
		bookings.DELETE("/:bookingId", h.DeleteBooking)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing caller identity")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), callerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBooking handles GET /bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing caller identity")
		return
	}
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), callerID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DecideBooking handles PATCH /bookings/:bookingId?approved=true|false.
func (h *BookingHandler) DecideBooking(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing caller identity")
		return
	}
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.Decide(c.Request.Context(), callerID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBooking handles DELETE /bookings/:bookingId.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing caller identity")
		return
	}
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), callerID, bookingID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListForBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	h.list(c, h.service.ListForBooker)
}

// ListForOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	h.list(c, h.service.ListForOwner)
}

func (h *BookingHandler) list(
	c *gin.Context,
	query func(ctx context.Context, callerID uuid.UUID, filter bookingDomain.StateFilter, page bookingDomain.Page) ([]application.BookingDTO, error),
) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing caller identity")
		return
	}
	filter, err := bookingDomain.ParseStateFilter(c.DefaultQuery("state", string(bookingDomain.FilterAll)))
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := parsePagination(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := query(c.Request.Context(), callerID, filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ItemOverview handles GET /bookings/items/:itemId/overview.
func (h *BookingHandler) ItemOverview(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing caller identity")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	result, err := h.service.ItemOverview(c.Request.Context(), callerID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// HasCompleted handles GET /bookings/items/:itemId/completed. The caller is
// the booker being checked.
func (h *BookingHandler) HasCompleted(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing caller identity")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	result, err := h.service.HasCompleted(c.Request.Context(), callerID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// parsePagination extracts from/size query parameters. From is an exact row
// offset, not a page index; offsets not aligned to size boundaries are
// legal.
func parsePagination(c *gin.Context) (bookingDomain.Page, error) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil || from < 0 {
		return bookingDomain.Page{}, errInvalidFrom
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		return bookingDomain.Page{}, errInvalidSize
	}
	if size > 100 {
		size = 100
	}
	return bookingDomain.Page{Offset: from, Limit: size}, nil
}
