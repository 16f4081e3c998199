package usecase

import (
	"context"
	"errors"

	"parking-gateway/internal/infra/db"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type FeedbackRepository interface {
	Create(ctx context.Context, ex db.Executor, userID int64, message string, rating int) (int64, error)
}

type FeedbackUseCase interface {
	SubmitFeedback(ctx context.Context, userID int64, message string, rating int) (int64, error)
}

type feedbackUseCaseImpl struct {
	ex           db.Executor
	feedbackRepo FeedbackRepository
}

func NewFeedbackUseCase(ex db.Executor, feedbackRepo FeedbackRepository) FeedbackUseCase {
	return &feedbackUseCaseImpl{ex: ex, feedbackRepo: feedbackRepo}
}

func (f *feedbackUseCaseImpl) SubmitFeedback(ctx context.Context, userID int64, message string, rating int) (int64, error) {
	if rating < 1 || rating > 5 {
		return 0, ErrInvalidRating
	}
	return f.feedbackRepo.Create(ctx, f.ex, userID, message, rating)
}
