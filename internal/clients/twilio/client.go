package twilio

import (
	"context"
	"fmt"

	"voice-server/internal/observability"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Client sends SMS messages through the Twilio REST API.
type Client struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *observability.Logger
}

func NewClient(accountSID, authToken, fromNumber string, logger *observability.Logger) *Client {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Client{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// SendSMS sends a text message and returns the carrier message id.
func (c *Client) SendSMS(ctx context.Context, toNumber, body string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "sms_to", Value: toNumber},
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(c.fromNumber)
	params.SetBody(body)

	resp, err := c.client.Api.CreateMessage(params)
	if err != nil {
		c.logger.Error(ctx, "failed to send SMS", err)
		return "", fmt.Errorf("failed to send SMS: %w", err)
	}

	messageID := ""
	if resp.Sid != nil {
		messageID = *resp.Sid
	}
	c.logger.Info(ctx, "SMS sent successfully")
	return messageID, nil
}
