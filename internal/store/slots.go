package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is one bookable interval in the internal slot store. The
// internal store is the fallback when the external scheduling provider is
// unreachable, and the only calendar for agents without one configured.
type AvailabilitySlot struct {
	ID        uuid.UUID `db:"id"`
	AgentID   uuid.UUID `db:"agent_id"`
	StartsAt  time.Time `db:"starts_at"`
	EndsAt    time.Time `db:"ends_at"`
	Booked    bool      `db:"booked"`
	CreatedAt string    `db:"created_at"`
}

type Booking struct {
	ID            uuid.UUID      `db:"id"`
	SlotID        uuid.UUID      `db:"slot_id"`
	AgentID       uuid.UUID      `db:"agent_id"`
	CustomerName  sql.NullString `db:"customer_name"`
	CustomerPhone sql.NullString `db:"customer_phone"`
	CreatedAt     string         `db:"created_at"`
}

const sqlGetOpenSlots = `
SELECT * FROM availability_slots
WHERE agent_id = $1
  AND booked = false
  AND starts_at >= $2
  AND starts_at < $3
ORDER BY starts_at ASC`

func (s Store) GetOpenSlots(ctx context.Context, agentID uuid.UUID, from, to time.Time) ([]AvailabilitySlot, error) {
	var slots []AvailabilitySlot
	err := s.db.SelectContext(ctx, &slots, sqlGetOpenSlots, agentID, from, to)
	if err != nil {
		s.logger.Error(ctx, "failed to get open slots", err)
		return nil, fmt.Errorf("failed to get open slots: %w", err)
	}
	return slots, nil
}

const sqlCreateSlot = `
INSERT INTO availability_slots (agent_id, starts_at, ends_at)
VALUES ($1, $2, $3)
RETURNING *`

func (s Store) CreateSlot(ctx context.Context, agentID uuid.UUID, startsAt, endsAt time.Time) (*AvailabilitySlot, error) {
	var slot AvailabilitySlot
	err := s.db.GetContext(ctx, &slot, sqlCreateSlot, agentID, startsAt, endsAt)
	if err != nil {
		s.logger.Error(ctx, "failed to create slot", err)
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}
	return &slot, nil
}

// Booking claims the slot and records the booking in one transaction. The
// conditional UPDATE is the concurrency guard: two callers racing for the
// same slot see exactly one success.
const sqlClaimSlot = `
UPDATE availability_slots
SET booked = true
WHERE agent_id = $1 AND starts_at = $2 AND booked = false
RETURNING id`

const sqlInsertBooking = `
INSERT INTO bookings (slot_id, agent_id, customer_name, customer_phone)
VALUES ($1, $2, $3, $4)
RETURNING *`

var ErrSlotTaken = errors.New("slot already booked")

func (s Store) BookSlot(ctx context.Context, agentID uuid.UUID, startsAt time.Time, customerName, customerPhone string) (*Booking, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback()

	var slotID uuid.UUID
	err = tx.GetContext(ctx, &slotID, sqlClaimSlot, agentID, startsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotTaken
		}
		s.logger.Error(ctx, "failed to claim slot", err)
		return nil, fmt.Errorf("failed to claim slot: %w", err)
	}

	var booking Booking
	err = tx.GetContext(ctx, &booking, sqlInsertBooking, slotID, agentID, nullIfEmpty(customerName), nullIfEmpty(customerPhone))
	if err != nil {
		s.logger.Error(ctx, "failed to insert booking", err)
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}
	return &booking, nil
}
