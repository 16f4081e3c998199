package usecase

import (
	"context"
	"testing"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/usecase/readmodel"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSlotRepo struct {
	stubSlotClaimer

	slots   []readmodel.SlotRM
	slot    *readmodel.SlotRM
	findErr error
}

func (r *stubSlotRepo) List(context.Context, db.Executor) ([]readmodel.SlotRM, error) {
	return r.slots, nil
}

func (r *stubSlotRepo) FindByID(context.Context, db.Executor, int64) (*readmodel.SlotRM, error) {
	return r.slot, r.findErr
}

func TestListSlots(t *testing.T) {
	repo := &stubSlotRepo{
		slots: []readmodel.SlotRM{
			{ID: 1, SlotNumber: "A-1", IsAvailable: true},
			{ID: 2, SlotNumber: "A-2", IsAvailable: false},
		},
	}
	uc := NewSlotUseCase(nil, repo)

	slots, err := uc.ListSlots(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(repo.slots, slots); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSlotNotFound(t *testing.T) {
	repo := &stubSlotRepo{
		findErr: infra.WrapRepoErr(infra.KindNotFound, "slot not found", nil),
	}
	uc := NewSlotUseCase(nil, repo)

	_, err := uc.GetSlot(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

type stubFeedbackRepo struct {
	lastRating int
}

func (r *stubFeedbackRepo) Create(_ context.Context, _ db.Executor, _ int64, _ string, rating int) (int64, error) {
	r.lastRating = rating
	return 55, nil
}

func TestSubmitFeedbackValidatesRating(t *testing.T) {
	repo := &stubFeedbackRepo{}
	uc := NewFeedbackUseCase(nil, repo)

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.SubmitFeedback(context.Background(), 7, "nice lot", rating)
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
	assert.Zero(t, repo.lastRating, "invalid ratings must not reach the store")

	id, err := uc.SubmitFeedback(context.Background(), 7, "nice lot", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(55), id)
	assert.Equal(t, 5, repo.lastRating)
}
