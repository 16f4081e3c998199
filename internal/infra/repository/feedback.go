package repository

import (
	"context"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
)

type FeedbackRepository struct{}

func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

func (r *FeedbackRepository) Create(ctx context.Context, ex db.Executor, userID int64, message string, rating int) (int64, error) {
	const q = `
		INSERT INTO feedback (user_id, message, rating)
		VALUES ($1, $2, $3)
		RETURNING feedback_id`

	var id int64
	if err := ex.QueryRow(ctx, q, userID, message, rating).Scan(&id); err != nil {
		return 0, infra.ClassifyErr("failed to create feedback", err)
	}
	return id, nil
}
