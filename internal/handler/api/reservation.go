package api

import (
	"errors"
	"net/http"
	"strconv"

	"parking-gateway/internal/handler/dto/request"
	"parking-gateway/internal/handler/dto/response"
	"parking-gateway/internal/handler/middleware"
	"parking-gateway/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	bookingUseCase   usecase.BookingUseCase
	occupancyUseCase usecase.OccupancyUseCase
}

func NewReservationHandler(bookingUseCase usecase.BookingUseCase, occupancyUseCase usecase.OccupancyUseCase) *ReservationHandler {
	return &ReservationHandler{
		bookingUseCase:   bookingUseCase,
		occupancyUseCase: occupancyUseCase,
	}
}

func (h *ReservationHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req request.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.bookingUseCase.CreateBooking(c.Request.Context(), usecase.CreateBookingParams{
		UserID:    userID,
		SlotID:    req.SlotID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Amount:    req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Parking slot is not available"})
		case errors.Is(err, usecase.ErrReservationInsert),
			errors.Is(err, usecase.ErrPaymentInsert),
			errors.Is(err, usecase.ErrOccupancyInsert),
			errors.Is(err, usecase.ErrSlotUpdate),
			errors.Is(err, usecase.ErrCommitFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking could not be completed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, response.BookingResponse{
		ReservationID: result.ReservationID,
		PaymentID:     result.PaymentID,
	})
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	userID, id, ok := authedPathID(c, "id")
	if !ok {
		return
	}

	rm, err := h.bookingUseCase.GetReservation(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, response.FromReservationRM(rm))
}

func (h *ReservationHandler) GetUserReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	rms, err := h.bookingUseCase.GetUserReservations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, response.FromReservationRMs(rms))
}

func (h *ReservationHandler) GetReservationPayments(c *gin.Context) {
	userID, id, ok := authedPathID(c, "id")
	if !ok {
		return
	}

	rms, err := h.bookingUseCase.GetReservationPayments(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentRMs(rms))
}

func (h *ReservationHandler) CheckIn(c *gin.Context) {
	userID, id, ok := authedPathID(c, "id")
	if !ok {
		return
	}

	record, err := h.occupancyUseCase.CheckIn(c.Request.Context(), userID, id)
	if err != nil {
		h.occupancyError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromOccupancyRM(record))
}

func (h *ReservationHandler) CheckOut(c *gin.Context) {
	userID, id, ok := authedPathID(c, "id")
	if !ok {
		return
	}

	record, err := h.occupancyUseCase.CheckOut(c.Request.Context(), userID, id)
	if err != nil {
		h.occupancyError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromOccupancyRM(record))
}

func (h *ReservationHandler) occupancyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, usecase.ErrOccupancyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Occupancy record not found"})
	case errors.Is(err, usecase.ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"error": "Already checked in"})
	case errors.Is(err, usecase.ErrNotCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"error": "Not checked in yet"})
	case errors.Is(err, usecase.ErrAlreadyCheckedOut):
		c.JSON(http.StatusConflict, gin.H{"error": "Already checked out"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id format"})
		return 0, false
	}
	return id, true
}

// authedPathID resolves the authenticated user and the id path parameter for
// handlers that act on a single reservation.
func authedPathID(c *gin.Context, name string) (userID, id int64, ok bool) {
	userID, ok = middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return 0, 0, false
	}
	id, ok = pathID(c, name)
	if !ok {
		return 0, 0, false
	}
	return userID, id, true
}
