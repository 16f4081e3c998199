package repository

import (
	"context"
	"time"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/usecase/readmodel"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, ex db.Executor, userID, slotID int64, start, end time.Time) (int64, error) {
	const q = `
		INSERT INTO reservations (user_id, slot_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING reservation_id`

	var id int64
	if err := ex.QueryRow(ctx, q, userID, slotID, start, end).Scan(&id); err != nil {
		return 0, infra.ClassifyErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, ex db.Executor, id int64) (*readmodel.ReservationRM, error) {
	const q = `
		SELECT reservation_id, user_id, slot_id, start_time, end_time, created_at
		FROM reservations
		WHERE reservation_id = $1`

	var rm readmodel.ReservationRM
	err := ex.QueryRow(ctx, q, id).Scan(&rm.ID, &rm.UserID, &rm.SlotID, &rm.StartTime, &rm.EndTime, &rm.CreatedAt)
	if err != nil {
		return nil, infra.ClassifyErr("failed to find reservation", err)
	}
	return &rm, nil
}

func (r *ReservationRepository) FindByUserID(ctx context.Context, ex db.Executor, userID int64) ([]readmodel.ReservationRM, error) {
	const q = `
		SELECT reservation_id, user_id, slot_id, start_time, end_time, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := ex.Query(ctx, q, userID)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list reservations", err)
	}
	defer rows.Close()

	var reservations []readmodel.ReservationRM
	for rows.Next() {
		var rm readmodel.ReservationRM
		if err := rows.Scan(&rm.ID, &rm.UserID, &rm.SlotID, &rm.StartTime, &rm.EndTime, &rm.CreatedAt); err != nil {
			return nil, infra.ClassifyErr("failed to scan reservation", err)
		}
		reservations = append(reservations, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyErr("failed to read reservations", err)
	}
	return reservations, nil
}
