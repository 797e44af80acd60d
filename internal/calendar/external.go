package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voice-server/internal/clients/calcom"
	"voice-server/internal/observability"
)

// ExternalProvider adapts the Cal.com client to the Provider contract. It is
// the preferred backend when an API key is configured.
type ExternalProvider struct {
	client *calcom.Client
	logger *observability.Logger
}

func NewExternalProvider(client *calcom.Client, logger *observability.Logger) *ExternalProvider {
	return &ExternalProvider{client: client, logger: logger}
}

func (p *ExternalProvider) Source() Source {
	return SourceExternal
}

func (p *ExternalProvider) Configured() bool {
	return p.client.Configured()
}

func (p *ExternalProvider) CheckAvailability(ctx context.Context, query AvailabilityQuery) ([]Slot, error) {
	from := query.Date
	to := from.Add(24 * time.Hour)

	starts, err := p.client.GetAvailableSlots(ctx, query.EventTypeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("external availability check: %w", err)
	}

	duration := time.Duration(query.DurationMinutes) * time.Minute
	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		slot := Slot{Start: start, Source: SourceExternal}
		if duration > 0 {
			slot.End = start.Add(duration)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (p *ExternalProvider) BookAppointment(ctx context.Context, query AvailabilityQuery, slot Slot, customer Customer) (*BookingResult, error) {
	bookingID, err := p.client.CreateBooking(ctx, query.EventTypeID, slot.Start, slot.End, customer.Name, customer.Phone, customer.Email)
	if err != nil {
		// The provider saying "no" is a business negative; everything else is
		// a transport failure the caller may treat as transient.
		if errors.Is(err, calcom.ErrSlotRejected) {
			p.logger.Info(observability.WithFields(ctx,
				observability.Field{Key: "slot_start", Value: slot.Start},
			), "external provider rejected booking slot")
			return &BookingResult{
				Success: false,
				Source:  SourceExternal,
				Reason:  "that time is no longer available",
			}, nil
		}
		return nil, fmt.Errorf("external booking: %w", err)
	}

	return &BookingResult{
		Success:   true,
		BookingID: bookingID,
		Source:    SourceExternal,
	}, nil
}
