package api

import (
	"errors"
	"net/http"

	"parking-gateway/internal/handler/dto/response"
	"parking-gateway/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	slotUseCase usecase.SlotUseCase
}

func NewSlotHandler(slotUseCase usecase.SlotUseCase) *SlotHandler {
	return &SlotHandler{slotUseCase: slotUseCase}
}

func (h *SlotHandler) ListSlots(c *gin.Context) {
	slots, err := h.slotUseCase.ListSlots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, response.FromSlotRMs(slots))
}

func (h *SlotHandler) GetSlot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	slot, err := h.slotUseCase.GetSlot(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrSlotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parking slot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, response.FromSlotRM(slot))
}
