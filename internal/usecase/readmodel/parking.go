// Package readmodel holds the flat row views returned by repositories to
// the usecase and handler layers.
package readmodel

import "time"

type SlotRM struct {
	ID          int64
	SlotNumber  string
	IsAvailable bool
}

type ReservationRM struct {
	ID        int64
	UserID    int64
	SlotID    int64
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

type PaymentRM struct {
	ID            int64
	ReservationID int64
	Amount        float64
	Status        string
	PaymentTime   time.Time
}

type OccupancyRM struct {
	ID            int64
	ReservationID int64
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
}

type UserRM struct {
	ID            int64
	Username      string
	Email         string
	VehicleNumber *string
	CreatedAt     time.Time
}
