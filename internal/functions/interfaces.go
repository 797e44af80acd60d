package functions

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=functions

import (
	"context"
	"time"

	"voice-server/internal/calendar"
)

// CalendarChain is the provider-fallback chain built-in calendar functions
// delegate to.
type CalendarChain interface {
	CheckAvailability(ctx context.Context, query calendar.AvailabilityQuery) ([]calendar.Slot, error)
	BookAppointment(ctx context.Context, query calendar.AvailabilityQuery, slot calendar.Slot, customer calendar.Customer) (*calendar.BookingResult, error)
}

// SMSSender delivers text messages for the send_sms built-in.
type SMSSender interface {
	SendSMS(ctx context.Context, toNumber, body string) (string, error)
}

// BookingNotifier sends booking confirmations out of band. Best effort; a
// failure never reaches the caller.
type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, to, customerName, agentName string, startsAt time.Time, bookingID string) (string, error)
}
