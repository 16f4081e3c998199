package repository

import (
	"context"
	"time"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/usecase/readmodel"
)

type OccupancyRepository struct{}

func NewOccupancyRepository() *OccupancyRepository {
	return &OccupancyRepository{}
}

// Create inserts the occupancy record for a fresh reservation with both
// timestamps null.
func (r *OccupancyRepository) Create(ctx context.Context, ex db.Executor, reservationID int64) (int64, error) {
	const q = `
		INSERT INTO check_ins (reservation_id, check_in_time, check_out_time)
		VALUES ($1, NULL, NULL)
		RETURNING check_in_id`

	var id int64
	if err := ex.QueryRow(ctx, q, reservationID).Scan(&id); err != nil {
		return 0, infra.ClassifyErr("failed to create occupancy record", err)
	}
	return id, nil
}

func (r *OccupancyRepository) FindByReservationID(ctx context.Context, ex db.Executor, reservationID int64) (*readmodel.OccupancyRM, error) {
	const q = `
		SELECT check_in_id, reservation_id, check_in_time, check_out_time
		FROM check_ins
		WHERE reservation_id = $1`

	var rm readmodel.OccupancyRM
	err := ex.QueryRow(ctx, q, reservationID).Scan(&rm.ID, &rm.ReservationID, &rm.CheckInTime, &rm.CheckOutTime)
	if err != nil {
		return nil, infra.ClassifyErr("failed to find occupancy record", err)
	}
	return &rm, nil
}

// SetCheckIn stamps the check-in time only when it is still null. A false
// return means the guard rejected the update.
func (r *OccupancyRepository) SetCheckIn(ctx context.Context, ex db.Executor, reservationID int64, at time.Time) (bool, error) {
	const q = `
		UPDATE check_ins
		SET check_in_time = $2
		WHERE reservation_id = $1 AND check_in_time IS NULL`

	tag, err := ex.Exec(ctx, q, reservationID, at)
	if err != nil {
		return false, infra.ClassifyErr("failed to set check-in time", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetCheckOut stamps the check-out time only when check-in has happened and
// check-out has not.
func (r *OccupancyRepository) SetCheckOut(ctx context.Context, ex db.Executor, reservationID int64, at time.Time) (bool, error) {
	const q = `
		UPDATE check_ins
		SET check_out_time = $2
		WHERE reservation_id = $1 AND check_in_time IS NOT NULL AND check_out_time IS NULL`

	tag, err := ex.Exec(ctx, q, reservationID, at)
	if err != nil {
		return false, infra.ClassifyErr("failed to set check-out time", err)
	}
	return tag.RowsAffected() == 1, nil
}
