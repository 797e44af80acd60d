package mail

import (
	"context"
	"fmt"
	"time"

	"voice-server/internal/observability"

	"github.com/resendlabs/resend-go"
)

type ResendClient struct {
	client *resend.Client
	from   string
	logger *observability.Logger
}

func NewResendClient(apiKey, from string, logger *observability.Logger) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if client == nil {
		return nil, fmt.Errorf("failed to create Resend client")
	}

	return &ResendClient{
		client: client,
		from:   from,
		logger: logger,
	}, nil
}

// SendBookingConfirmation emails the customer after a successful booking.
// Failures are the caller's to log; the phone call never waits on email.
func (c *ResendClient) SendBookingConfirmation(ctx context.Context, to, customerName, agentName string, startsAt time.Time, bookingID string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: to},
		observability.Field{Key: "booking_id", Value: bookingID},
	)

	name := customerName
	if name == "" {
		name = "there"
	}

	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your appointment with %s is confirmed for <strong>%s</strong>.</p>
<p>Booking reference: %s</p>`,
		name, agentName, startsAt.Format("Monday, January 2 at 3:04 PM MST"), bookingID,
	)

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: fmt.Sprintf("Appointment confirmed with %s", agentName),
		Html:    html,
	}

	res, err := c.client.Emails.Send(params)
	if err != nil {
		c.logger.Error(ctx, "failed to send booking confirmation email", err)
		return "", fmt.Errorf("failed to send booking confirmation email: %w", err)
	}

	c.logger.Info(ctx, "booking confirmation email sent")
	return res.Id, nil
}
