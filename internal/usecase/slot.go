package usecase

import (
	"context"
	"errors"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/usecase/readmodel"
)

var ErrSlotNotFound = errors.New("parking slot not found")

type SlotRepository interface {
	SlotClaimer
	List(ctx context.Context, ex db.Executor) ([]readmodel.SlotRM, error)
	FindByID(ctx context.Context, ex db.Executor, id int64) (*readmodel.SlotRM, error)
}

type SlotUseCase interface {
	ListSlots(ctx context.Context) ([]readmodel.SlotRM, error)
	GetSlot(ctx context.Context, id int64) (*readmodel.SlotRM, error)
}

type slotUseCaseImpl struct {
	ex       db.Executor
	slotRepo SlotRepository
}

func NewSlotUseCase(ex db.Executor, slotRepo SlotRepository) SlotUseCase {
	return &slotUseCaseImpl{ex: ex, slotRepo: slotRepo}
}

func (s *slotUseCaseImpl) ListSlots(ctx context.Context) ([]readmodel.SlotRM, error) {
	return s.slotRepo.List(ctx, s.ex)
}

func (s *slotUseCaseImpl) GetSlot(ctx context.Context, id int64) (*readmodel.SlotRM, error) {
	slot, err := s.slotRepo.FindByID(ctx, s.ex, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}
