package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voice-server/internal/observability"
	"voice-server/internal/store"

	"github.com/google/uuid"
)

// SlotStore is the subset of the database store the internal provider needs.
type SlotStore interface {
	GetOpenSlots(ctx context.Context, agentID uuid.UUID, from, to time.Time) ([]store.AvailabilitySlot, error)
	BookSlot(ctx context.Context, agentID uuid.UUID, startsAt time.Time, customerName, customerPhone string) (*store.Booking, error)
}

// InternalProvider serves availability from the database slot store. Always
// configured; it is the terminal fallback of the chain.
type InternalProvider struct {
	store  SlotStore
	logger *observability.Logger
}

func NewInternalProvider(store SlotStore, logger *observability.Logger) *InternalProvider {
	return &InternalProvider{store: store, logger: logger}
}

func (p *InternalProvider) Source() Source {
	return SourceInternal
}

func (p *InternalProvider) Configured() bool {
	return true
}

func (p *InternalProvider) CheckAvailability(ctx context.Context, query AvailabilityQuery) ([]Slot, error) {
	from := query.Date
	to := from.Add(24 * time.Hour)

	open, err := p.store.GetOpenSlots(ctx, query.AgentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("internal availability check: %w", err)
	}

	slots := make([]Slot, 0, len(open))
	for _, s := range open {
		slots = append(slots, Slot{Start: s.StartsAt, End: s.EndsAt, Source: SourceInternal})
	}
	return slots, nil
}

func (p *InternalProvider) BookAppointment(ctx context.Context, query AvailabilityQuery, slot Slot, customer Customer) (*BookingResult, error) {
	booking, err := p.store.BookSlot(ctx, query.AgentID, slot.Start, customer.Name, customer.Phone)
	if err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			return &BookingResult{
				Success: false,
				Source:  SourceInternal,
				Reason:  "that time was just booked by someone else",
			}, nil
		}
		return nil, fmt.Errorf("internal booking: %w", err)
	}

	return &BookingResult{
		Success:   true,
		BookingID: booking.ID.String(),
		Source:    SourceInternal,
	}, nil
}
