package usecase

import (
	"context"
	"errors"
	"time"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/pkg/clock"
	"parking-gateway/internal/pkg/errs"
	"parking-gateway/internal/usecase/readmodel"
)

// Step failures of the booking workflow. Every one of them means the whole
// transaction was rolled back and no partial rows remain.
var (
	ErrReservationInsert = errors.New("reservation insert failed")
	ErrPaymentInsert     = errors.New("payment insert failed")
	ErrOccupancyInsert   = errors.New("occupancy insert failed")
	ErrSlotUpdate        = errors.New("slot update failed")
	ErrSlotUnavailable   = errors.New("slot is not available")
	ErrCommitFailed      = errors.New("booking commit failed")

	ErrReservationNotFound = errors.New("reservation not found")
)

// TxBeginner is the slice of the pool manager the workflow needs.
type TxBeginner interface {
	Begin(ctx context.Context) (db.Tx, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, ex db.Executor, userID, slotID int64, start, end time.Time) (int64, error)
	FindByID(ctx context.Context, ex db.Executor, id int64) (*readmodel.ReservationRM, error)
	FindByUserID(ctx context.Context, ex db.Executor, userID int64) ([]readmodel.ReservationRM, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, ex db.Executor, reservationID int64, amount float64, paidAt time.Time) (int64, error)
	FindByReservationID(ctx context.Context, ex db.Executor, reservationID int64) ([]readmodel.PaymentRM, error)
}

type OccupancyWriter interface {
	Create(ctx context.Context, ex db.Executor, reservationID int64) (int64, error)
}

type SlotClaimer interface {
	MarkUnavailable(ctx context.Context, ex db.Executor, id int64) (bool, error)
}

type CreateBookingParams struct {
	UserID    int64
	SlotID    int64
	StartTime time.Time
	EndTime   time.Time
	Amount    float64
}

type BookingResult struct {
	ReservationID int64
	PaymentID     int64
}

type BookingUseCase interface {
	CreateBooking(ctx context.Context, p CreateBookingParams) (*BookingResult, error)
	GetReservation(ctx context.Context, userID, id int64) (*readmodel.ReservationRM, error)
	GetUserReservations(ctx context.Context, userID int64) ([]readmodel.ReservationRM, error)
	GetReservationPayments(ctx context.Context, userID, reservationID int64) ([]readmodel.PaymentRM, error)
}

type bookingUseCaseImpl struct {
	db              TxBeginner
	ex              db.Executor
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	occupancyRepo   OccupancyWriter
	slotRepo        SlotClaimer
	clock           clock.Clock
}

func NewBookingUseCase(
	txDB TxBeginner,
	ex db.Executor,
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	occupancyRepo OccupancyWriter,
	slotRepo SlotClaimer,
	clk clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		db:              txDB,
		ex:              ex,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		occupancyRepo:   occupancyRepo,
		slotRepo:        slotRepo,
		clock:           clk,
	}
}

// CreateBooking applies the reservation, its payment, its occupancy record,
// and the slot-availability flip as one atomic unit on a single
// exclusively-held connection. Any step failure rolls the whole unit back;
// the deferred Rollback is a no-op after a successful commit, so the
// connection is released exactly once on every path.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, p CreateBookingParams) (*BookingResult, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to begin booking transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	reservationID, err := u.reservationRepo.Create(ctx, tx, p.UserID, p.SlotID, p.StartTime, p.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrReservationInsert)
	}

	paymentID, err := u.paymentRepo.Create(ctx, tx, reservationID, p.Amount, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentInsert)
	}

	if _, err := u.occupancyRepo.Create(ctx, tx, reservationID); err != nil {
		return nil, errs.Mark(err, ErrOccupancyInsert)
	}

	claimed, err := u.slotRepo.MarkUnavailable(ctx, tx, p.SlotID)
	if err != nil {
		return nil, errs.Mark(err, ErrSlotUpdate)
	}
	if !claimed {
		return nil, ErrSlotUnavailable
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, ErrCommitFailed)
	}

	return &BookingResult{ReservationID: reservationID, PaymentID: paymentID}, nil
}

func (u *bookingUseCaseImpl) GetReservation(ctx context.Context, userID, id int64) (*readmodel.ReservationRM, error) {
	return ownedReservation(ctx, u.reservationRepo, u.ex, userID, id)
}

func (u *bookingUseCaseImpl) GetUserReservations(ctx context.Context, userID int64) ([]readmodel.ReservationRM, error) {
	return u.reservationRepo.FindByUserID(ctx, u.ex, userID)
}

func (u *bookingUseCaseImpl) GetReservationPayments(ctx context.Context, userID, reservationID int64) ([]readmodel.PaymentRM, error) {
	if _, err := ownedReservation(ctx, u.reservationRepo, u.ex, userID, reservationID); err != nil {
		return nil, err
	}
	return u.paymentRepo.FindByReservationID(ctx, u.ex, reservationID)
}

// ownedReservation loads a reservation on behalf of userID. Reservations
// belonging to other users are reported as absent, so the response does not
// leak which ids exist.
func ownedReservation(ctx context.Context, repo ReservationRepository, ex db.Executor, userID, id int64) (*readmodel.ReservationRM, error) {
	rm, err := repo.FindByID(ctx, ex, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if rm.UserID != userID {
		return nil, ErrReservationNotFound
	}
	return rm, nil
}
