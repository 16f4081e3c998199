package repository

import (
	"context"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/usecase/readmodel"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, ex db.Executor, username, email, passwordHash string, vehicleNumber *string) (int64, error) {
	const q = `
		INSERT INTO users (username, email, password_hash, vehicle_number)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id`

	var id int64
	if err := ex.QueryRow(ctx, q, username, email, passwordHash, vehicleNumber).Scan(&id); err != nil {
		return 0, infra.ClassifyErr("failed to create user", err)
	}
	return id, nil
}

// FindByEmail returns the profile view plus the stored password hash, which
// never leaves the auth usecase.
func (r *UserRepository) FindByEmail(ctx context.Context, ex db.Executor, email string) (*readmodel.UserRM, string, error) {
	const q = `
		SELECT user_id, username, email, vehicle_number, created_at, password_hash
		FROM users
		WHERE email = $1`

	var (
		rm   readmodel.UserRM
		hash string
	)
	err := ex.QueryRow(ctx, q, email).Scan(&rm.ID, &rm.Username, &rm.Email, &rm.VehicleNumber, &rm.CreatedAt, &hash)
	if err != nil {
		return nil, "", infra.ClassifyErr("failed to find user by email", err)
	}
	return &rm, hash, nil
}

func (r *UserRepository) FindByID(ctx context.Context, ex db.Executor, id int64) (*readmodel.UserRM, error) {
	const q = `
		SELECT user_id, username, email, vehicle_number, created_at
		FROM users
		WHERE user_id = $1`

	var rm readmodel.UserRM
	err := ex.QueryRow(ctx, q, id).Scan(&rm.ID, &rm.Username, &rm.Email, &rm.VehicleNumber, &rm.CreatedAt)
	if err != nil {
		return nil, infra.ClassifyErr("failed to find user", err)
	}
	return &rm, nil
}
