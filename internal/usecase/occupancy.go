package usecase

import (
	"context"
	"errors"
	"time"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/pkg/clock"
	"parking-gateway/internal/usecase/readmodel"
)

var (
	ErrOccupancyNotFound = errors.New("occupancy record not found")
	ErrAlreadyCheckedIn  = errors.New("reservation is already checked in")
	ErrNotCheckedIn      = errors.New("reservation has not checked in")
	ErrAlreadyCheckedOut = errors.New("reservation is already checked out")
)

type OccupancyRepository interface {
	OccupancyWriter
	FindByReservationID(ctx context.Context, ex db.Executor, reservationID int64) (*readmodel.OccupancyRM, error)
	SetCheckIn(ctx context.Context, ex db.Executor, reservationID int64, at time.Time) (bool, error)
	SetCheckOut(ctx context.Context, ex db.Executor, reservationID int64, at time.Time) (bool, error)
}

type OccupancyUseCase interface {
	CheckIn(ctx context.Context, userID, reservationID int64) (*readmodel.OccupancyRM, error)
	CheckOut(ctx context.Context, userID, reservationID int64) (*readmodel.OccupancyRM, error)
}

type occupancyUseCaseImpl struct {
	ex              db.Executor
	occupancyRepo   OccupancyRepository
	reservationRepo ReservationRepository
	clock           clock.Clock
}

func NewOccupancyUseCase(ex db.Executor, occupancyRepo OccupancyRepository, reservationRepo ReservationRepository, clk clock.Clock) OccupancyUseCase {
	return &occupancyUseCaseImpl{
		ex:              ex,
		occupancyRepo:   occupancyRepo,
		reservationRepo: reservationRepo,
		clock:           clk,
	}
}

// CheckIn stamps the check-in time once. The caller must own the
// reservation. The guard lives in the conditional update itself, so
// concurrent check-ins cannot both pass; when the update matches no row, the
// record is re-read to report the precise conflict.
func (o *occupancyUseCaseImpl) CheckIn(ctx context.Context, userID, reservationID int64) (*readmodel.OccupancyRM, error) {
	if _, err := ownedReservation(ctx, o.reservationRepo, o.ex, userID, reservationID); err != nil {
		return nil, err
	}

	updated, err := o.occupancyRepo.SetCheckIn(ctx, o.ex, reservationID, o.clock.Now())
	if err != nil {
		return nil, err
	}
	if !updated {
		if _, err := o.find(ctx, reservationID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyCheckedIn
	}
	return o.find(ctx, reservationID)
}

func (o *occupancyUseCaseImpl) CheckOut(ctx context.Context, userID, reservationID int64) (*readmodel.OccupancyRM, error) {
	if _, err := ownedReservation(ctx, o.reservationRepo, o.ex, userID, reservationID); err != nil {
		return nil, err
	}

	updated, err := o.occupancyRepo.SetCheckOut(ctx, o.ex, reservationID, o.clock.Now())
	if err != nil {
		return nil, err
	}
	if !updated {
		record, err := o.find(ctx, reservationID)
		if err != nil {
			return nil, err
		}
		if record.CheckInTime == nil {
			return nil, ErrNotCheckedIn
		}
		return nil, ErrAlreadyCheckedOut
	}
	return o.find(ctx, reservationID)
}

func (o *occupancyUseCaseImpl) find(ctx context.Context, reservationID int64) (*readmodel.OccupancyRM, error) {
	record, err := o.occupancyRepo.FindByReservationID(ctx, o.ex, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOccupancyNotFound
		}
		return nil, err
	}
	return record, nil
}
