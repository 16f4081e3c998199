package api

import (
	"errors"
	"net/http"

	"parking-gateway/internal/handler/dto/request"
	"parking-gateway/internal/handler/middleware"
	"parking-gateway/internal/usecase"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackUseCase usecase.FeedbackUseCase
}

func NewFeedbackHandler(feedbackUseCase usecase.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{feedbackUseCase: feedbackUseCase}
}

func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req request.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.feedbackUseCase.SubmitFeedback(c.Request.Context(), userID, req.Message, req.Rating)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"feedback_id": id})
}
