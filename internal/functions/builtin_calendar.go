package functions

import (
	"context"
	"fmt"
	"time"

	"voice-server/internal/calendar"
	"voice-server/internal/observability"
)

const (
	CheckAvailabilityName = "check_availability"
	BookAppointmentName   = "book_appointment"

	defaultDurationMinutes = 30
	maxSlotsReturned       = 5
)

// CheckAvailabilityData is the structured payload of a successful
// check_availability call.
type CheckAvailabilityData struct {
	Slots                  []calendar.Slot `json:"slots"`
	RequestedTime          string          `json:"requested_time,omitempty"`
	RequestedTimeAvailable bool            `json:"requested_time_available"`
	Source                 calendar.Source `json:"source,omitempty"`
}

// BookAppointmentData is the structured payload of a successful
// book_appointment call.
type BookAppointmentData struct {
	BookingID string          `json:"booking_id"`
	StartsAt  time.Time       `json:"starts_at"`
	Source    calendar.Source `json:"source"`
}

type checkAvailabilityFunction struct {
	chain   CalendarChain
	timeout time.Duration
	retries int
}

// NewCheckAvailability builds the check_availability built-in.
func NewCheckAvailability(chain CalendarChain, timeout time.Duration, retries int) Function {
	return &checkAvailabilityFunction{chain: chain, timeout: timeout, retries: retries}
}

func (f *checkAvailabilityFunction) Name() string { return CheckAvailabilityName }

func (f *checkAvailabilityFunction) Description() string {
	return "Check which appointment times are open on a given date. Use before booking."
}

func (f *checkAvailabilityFunction) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "Requested date in YYYY-MM-DD format",
			},
			"time": map[string]interface{}{
				"type":        "string",
				"description": "Optional requested time in 24h HH:MM format",
			},
			"duration_minutes": map[string]interface{}{
				"type":        "integer",
				"description": "Appointment length in minutes, default 30",
			},
		},
		"required": []interface{}{"date"},
	}
}

func (f *checkAvailabilityFunction) Timeout() time.Duration { return f.timeout }
func (f *checkAvailabilityFunction) Retries() int           { return f.retries }

func (f *checkAvailabilityFunction) Invoke(ctx context.Context, args map[string]interface{}, call CallContext) (Result, error) {
	query, requested, err := buildAvailabilityQuery(args, call)
	if err != nil {
		return Fail(err.Error()), nil
	}

	slots, err := f.chain.CheckAvailability(ctx, query)
	if err != nil {
		return Result{}, err
	}

	data := CheckAvailabilityData{Slots: slots}
	if len(slots) > maxSlotsReturned {
		data.Slots = slots[:maxSlotsReturned]
	}
	if len(slots) > 0 {
		data.Source = slots[0].Source
	}
	if !requested.IsZero() {
		data.RequestedTime = requested.Format("15:04")
		for _, slot := range slots {
			if slot.Start.Equal(requested) {
				data.RequestedTimeAvailable = true
				break
			}
		}
	}
	return OK(data), nil
}

type bookAppointmentFunction struct {
	chain    CalendarChain
	notifier BookingNotifier
	timeout  time.Duration
	logger   *observability.Logger
}

// NewBookAppointment builds the book_appointment built-in. Booking is a
// side effect, so the declared retry count is zero: a transient failure is
// reported to the caller instead of risking a double booking.
func NewBookAppointment(chain CalendarChain, notifier BookingNotifier, timeout time.Duration, logger *observability.Logger) Function {
	return &bookAppointmentFunction{chain: chain, notifier: notifier, timeout: timeout, logger: logger}
}

func (f *bookAppointmentFunction) Name() string { return BookAppointmentName }

func (f *bookAppointmentFunction) Description() string {
	return "Book an appointment at a specific date and time once the caller has confirmed it."
}

func (f *bookAppointmentFunction) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "Appointment date in YYYY-MM-DD format",
			},
			"time": map[string]interface{}{
				"type":        "string",
				"description": "Appointment time in 24h HH:MM format",
			},
			"duration_minutes": map[string]interface{}{
				"type":        "integer",
				"description": "Appointment length in minutes, default 30",
			},
		},
		"required": []interface{}{"date", "time"},
	}
}

func (f *bookAppointmentFunction) Timeout() time.Duration { return f.timeout }
func (f *bookAppointmentFunction) Retries() int           { return 0 }

func (f *bookAppointmentFunction) Invoke(ctx context.Context, args map[string]interface{}, call CallContext) (Result, error) {
	query, requested, err := buildAvailabilityQuery(args, call)
	if err != nil {
		return Fail(err.Error()), nil
	}
	if requested.IsZero() {
		return Fail("a time is required to book an appointment"), nil
	}

	slots, err := f.chain.CheckAvailability(ctx, query)
	if err != nil {
		return Result{}, err
	}

	var slot *calendar.Slot
	for i := range slots {
		if slots[i].Start.Equal(requested) {
			slot = &slots[i]
			break
		}
	}
	if slot == nil {
		return Fail("that time is not available"), nil
	}

	customer := calendar.Customer{
		Name:  call.CustomerName,
		Phone: call.CustomerPhone,
		Email: call.CustomerEmail,
	}
	result, err := f.chain.BookAppointment(ctx, query, *slot, customer)
	if err != nil {
		// One attempt only; report instead of retrying a side effect.
		f.logger.Error(ctx, "booking attempt failed", err)
		return Fail("the booking could not be completed"), nil
	}
	if !result.Success {
		return Fail(result.Reason), nil
	}

	if f.notifier != nil && call.CustomerEmail != "" {
		if _, err := f.notifier.SendBookingConfirmation(ctx, call.CustomerEmail, call.CustomerName, call.AgentName, slot.Start, result.BookingID); err != nil {
			f.logger.Error(ctx, "failed to send booking confirmation", err)
		}
	}

	return OK(BookAppointmentData{
		BookingID: result.BookingID,
		StartsAt:  slot.Start,
		Source:    result.Source,
	}), nil
}

// buildAvailabilityQuery parses the shared date/time/duration arguments.
// The returned time is zero when no specific time was requested.
func buildAvailabilityQuery(args map[string]interface{}, call CallContext) (calendar.AvailabilityQuery, time.Time, error) {
	dateArg, _ := args["date"].(string)
	if dateArg == "" {
		return calendar.AvailabilityQuery{}, time.Time{}, fmt.Errorf("a date is required")
	}
	date, err := time.ParseInLocation("2006-01-02", dateArg, time.UTC)
	if err != nil {
		return calendar.AvailabilityQuery{}, time.Time{}, fmt.Errorf("could not understand the date %q", dateArg)
	}

	duration := defaultDurationMinutes
	switch v := args["duration_minutes"].(type) {
	case float64:
		duration = int(v)
	case int:
		duration = v
	}

	query := calendar.AvailabilityQuery{
		AgentID:         call.AgentID,
		EventTypeID:     call.EventTypeID,
		Date:            date,
		DurationMinutes: duration,
		ProviderHint:    call.ProviderHint,
	}

	var requested time.Time
	if timeArg, _ := args["time"].(string); timeArg != "" {
		parsed, err := time.Parse("15:04", timeArg)
		if err != nil {
			return calendar.AvailabilityQuery{}, time.Time{}, fmt.Errorf("could not understand the time %q", timeArg)
		}
		requested = time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	}

	return query, requested, nil
}
