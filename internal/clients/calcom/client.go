package calcom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voice-server/internal/observability"
)

var (
	ErrNotConfigured = errors.New("cal.com client not configured")
	ErrSlotRejected  = errors.New("cal.com rejected the booking slot")
)

// Client talks to the Cal.com scheduling API. A zero api key means the
// external calendar is not configured; callers fall back to the internal
// slot store.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
}

func NewClient(apiKey, baseURL string, logger *observability.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

type slotsResponse struct {
	Slots map[string][]struct {
		Time string `json:"time"`
	} `json:"slots"`
}

// GetAvailableSlots returns the open start times for the event type within
// [from, to).
func (c *Client) GetAvailableSlots(ctx context.Context, eventTypeID string, from, to time.Time) ([]time.Time, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	query.Set("eventTypeId", eventTypeID)
	query.Set("startTime", from.UTC().Format(time.RFC3339))
	query.Set("endTime", to.UTC().Format(time.RFC3339))

	endpoint := fmt.Sprintf("%s/slots?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build slots request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "cal.com slots request failed", err)
		return nil, fmt.Errorf("cal.com slots request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("cal.com slots returned status %d", resp.StatusCode)
		c.logger.Error(ctx, "cal.com slots request rejected", err)
		return nil, err
	}

	var parsed slotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode slots response: %w", err)
	}

	var slots []time.Time
	for _, daySlots := range parsed.Slots {
		for _, s := range daySlots {
			t, err := time.Parse(time.RFC3339, s.Time)
			if err != nil {
				continue
			}
			slots = append(slots, t)
		}
	}
	return slots, nil
}

type bookingRequest struct {
	EventTypeID string            `json:"eventTypeId"`
	Start       string            `json:"start"`
	End         string            `json:"end,omitempty"`
	Responses   map[string]string `json:"responses"`
	TimeZone    string            `json:"timeZone"`
	Language    string            `json:"language"`
}

type bookingResponse struct {
	UID     string `json:"uid"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// CreateBooking books the slot and returns the provider booking id. A 4xx
// from the provider means the slot is gone (a business negative, returned
// as ErrSlotRejected); 5xx and transport errors are transient.
func (c *Client) CreateBooking(ctx context.Context, eventTypeID string, start, end time.Time, name, phone, email string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload := bookingRequest{
		EventTypeID: eventTypeID,
		Start:       start.UTC().Format(time.RFC3339),
		Responses: map[string]string{
			"name":  name,
			"phone": phone,
			"email": email,
		},
		TimeZone: "UTC",
		Language: "en",
	}
	if !end.IsZero() {
		payload.End = end.UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal booking request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bookings?apiKey=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("failed to build booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "cal.com booking request failed", err)
		return "", fmt.Errorf("cal.com booking request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return "", fmt.Errorf("%w: status %d", ErrSlotRejected, resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		err := fmt.Errorf("cal.com booking returned status %d", resp.StatusCode)
		c.logger.Error(ctx, "cal.com booking request rejected", err)
		return "", err
	}

	var parsed bookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode booking response: %w", err)
	}
	if parsed.UID != "" {
		return parsed.UID, nil
	}
	return fmt.Sprintf("%d", parsed.ID), nil
}
