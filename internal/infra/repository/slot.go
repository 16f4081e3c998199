package repository

import (
	"context"

	"parking-gateway/internal/infra"
	"parking-gateway/internal/infra/db"
	"parking-gateway/internal/usecase/readmodel"
)

type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

func (r *SlotRepository) List(ctx context.Context, ex db.Executor) ([]readmodel.SlotRM, error) {
	const q = `
		SELECT slot_id, slot_number, is_available
		FROM parking_slots
		ORDER BY slot_id`

	rows, err := ex.Query(ctx, q)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list parking slots", err)
	}
	defer rows.Close()

	var slots []readmodel.SlotRM
	for rows.Next() {
		var s readmodel.SlotRM
		if err := rows.Scan(&s.ID, &s.SlotNumber, &s.IsAvailable); err != nil {
			return nil, infra.ClassifyErr("failed to scan parking slot", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyErr("failed to read parking slots", err)
	}
	return slots, nil
}

func (r *SlotRepository) FindByID(ctx context.Context, ex db.Executor, id int64) (*readmodel.SlotRM, error) {
	const q = `
		SELECT slot_id, slot_number, is_available
		FROM parking_slots
		WHERE slot_id = $1`

	var s readmodel.SlotRM
	if err := ex.QueryRow(ctx, q, id).Scan(&s.ID, &s.SlotNumber, &s.IsAvailable); err != nil {
		return nil, infra.ClassifyErr("failed to find parking slot", err)
	}
	return &s, nil
}

// MarkUnavailable flips the availability flag only when the slot is still
// available. A false return with nil error means another booking already
// claimed the slot (or it does not exist).
func (r *SlotRepository) MarkUnavailable(ctx context.Context, ex db.Executor, id int64) (bool, error) {
	const q = `
		UPDATE parking_slots
		SET is_available = FALSE
		WHERE slot_id = $1 AND is_available`

	tag, err := ex.Exec(ctx, q, id)
	if err != nil {
		return false, infra.ClassifyErr("failed to update parking slot availability", err)
	}
	return tag.RowsAffected() == 1, nil
}
