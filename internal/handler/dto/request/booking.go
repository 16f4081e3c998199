package request

import "time"

type CreateBookingRequest struct {
	SlotID    int64     `json:"slot_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	// Amount is optional; a missing amount books at zero.
	Amount float64 `json:"amount" binding:"gte=0"`
}

type SubmitFeedbackRequest struct {
	Message string `json:"message" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}
