package response

import (
	"time"

	"parking-gateway/internal/usecase/readmodel"
)

type UserResponse struct {
	ID            int64     `json:"user_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	VehicleNumber *string   `json:"vehicle_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

func FromUserRM(rm *readmodel.UserRM) UserResponse {
	return UserResponse{
		ID:            rm.ID,
		Username:      rm.Username,
		Email:         rm.Email,
		VehicleNumber: rm.VehicleNumber,
		CreatedAt:     rm.CreatedAt,
	}
}
