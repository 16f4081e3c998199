package response

import (
	"time"

	"parking-gateway/internal/usecase/readmodel"
)

type BookingResponse struct {
	ReservationID int64 `json:"reservation_id"`
	PaymentID     int64 `json:"payment_id"`
}

type ReservationResponse struct {
	ID        int64     `json:"reservation_id"`
	UserID    int64     `json:"user_id"`
	SlotID    int64     `json:"slot_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

type PaymentResponse struct {
	ID            int64     `json:"payment_id"`
	ReservationID int64     `json:"reservation_id"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"payment_status"`
	PaymentTime   time.Time `json:"payment_time"`
}

type OccupancyResponse struct {
	ID            int64      `json:"check_in_id"`
	ReservationID int64      `json:"reservation_id"`
	CheckInTime   *time.Time `json:"check_in_time"`
	CheckOutTime  *time.Time `json:"check_out_time"`
}

type SlotResponse struct {
	ID          int64  `json:"slot_id"`
	SlotNumber  string `json:"slot_number"`
	IsAvailable bool   `json:"is_available"`
}

func FromReservationRM(rm *readmodel.ReservationRM) ReservationResponse {
	return ReservationResponse{
		ID:        rm.ID,
		UserID:    rm.UserID,
		SlotID:    rm.SlotID,
		StartTime: rm.StartTime,
		EndTime:   rm.EndTime,
		CreatedAt: rm.CreatedAt,
	}
}

func FromReservationRMs(rms []readmodel.ReservationRM) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rms))
	for i := range rms {
		out = append(out, FromReservationRM(&rms[i]))
	}
	return out
}

func FromPaymentRMs(rms []readmodel.PaymentRM) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rms))
	for _, rm := range rms {
		out = append(out, PaymentResponse{
			ID:            rm.ID,
			ReservationID: rm.ReservationID,
			Amount:        rm.Amount,
			Status:        rm.Status,
			PaymentTime:   rm.PaymentTime,
		})
	}
	return out
}

func FromOccupancyRM(rm *readmodel.OccupancyRM) OccupancyResponse {
	return OccupancyResponse{
		ID:            rm.ID,
		ReservationID: rm.ReservationID,
		CheckInTime:   rm.CheckInTime,
		CheckOutTime:  rm.CheckOutTime,
	}
}

func FromSlotRMs(rms []readmodel.SlotRM) []SlotResponse {
	out := make([]SlotResponse, 0, len(rms))
	for _, rm := range rms {
		out = append(out, SlotResponse{ID: rm.ID, SlotNumber: rm.SlotNumber, IsAvailable: rm.IsAvailable})
	}
	return out
}

func FromSlotRM(rm *readmodel.SlotRM) SlotResponse {
	return SlotResponse{ID: rm.ID, SlotNumber: rm.SlotNumber, IsAvailable: rm.IsAvailable}
}
