package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Source tags where a slot or booking came from.
type Source string

const (
	SourceExternal Source = "external"
	SourceInternal Source = "internal"
)

// Slot is a bookable time interval returned by a provider.
type Slot struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end,omitempty"`
	Source Source    `json:"source"`
}

// Customer identifies who an appointment is for.
type Customer struct {
	Name  string
	Phone string
	Email string
}

// BookingResult reports the outcome of a booking attempt. Success=false with
// a Reason is a business negative, not an error; callers must not retry it.
type BookingResult struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id,omitempty"`
	Source    Source `json:"source"`
	Reason    string `json:"reason,omitempty"`
}

// AvailabilityQuery asks for open slots for one agent on one day.
type AvailabilityQuery struct {
	AgentID         uuid.UUID
	EventTypeID     string
	Date            time.Time // midnight of the requested day
	DurationMinutes int
	ProviderHint    Source // optional: force a specific provider
}

// Provider is one interchangeable calendar backend.
type Provider interface {
	Source() Source
	Configured() bool
	CheckAvailability(ctx context.Context, query AvailabilityQuery) ([]Slot, error)
	BookAppointment(ctx context.Context, query AvailabilityQuery, slot Slot, customer Customer) (*BookingResult, error)
}
