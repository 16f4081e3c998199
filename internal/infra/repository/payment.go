package repository

import (
	"context"
	"time"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/usecase/readmodel"
)

// Payments settle immediately at booking time; there is no gateway
// integration, so every payment row is created as completed.
const paymentStatusCompleted = "completed"

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) Create(ctx context.Context, ex db.Executor, reservationID int64, amount float64, paidAt time.Time) (int64, error) {
	const q = `
		INSERT INTO payments (reservation_id, amount, payment_status, payment_time)
		VALUES ($1, $2, $3, $4)
		RETURNING payment_id`

	var id int64
	if err := ex.QueryRow(ctx, q, reservationID, amount, paymentStatusCompleted, paidAt).Scan(&id); err != nil {
		return 0, infra.ClassifyErr("failed to create payment", err)
	}
	return id, nil
}

func (r *PaymentRepository) FindByReservationID(ctx context.Context, ex db.Executor, reservationID int64) ([]readmodel.PaymentRM, error) {
	const q = `
		SELECT payment_id, reservation_id, amount, payment_status, payment_time
		FROM payments
		WHERE reservation_id = $1
		ORDER BY payment_id`

	rows, err := ex.Query(ctx, q, reservationID)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list payments", err)
	}
	defer rows.Close()

	var payments []readmodel.PaymentRM
	for rows.Next() {
		var p readmodel.PaymentRM
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Status, &p.PaymentTime); err != nil {
			return nil, infra.ClassifyErr("failed to scan payment", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyErr("failed to read payments", err)
	}
	return payments, nil
}
