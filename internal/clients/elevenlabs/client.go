package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voice-server/internal/observability"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	defaultModelID = "eleven_turbo_v2_5"
)

// Client synthesizes speech through the ElevenLabs text-to-speech API.
type Client struct {
	apiKey     string
	baseURL    string
	modelID    string
	httpClient *http.Client
	logger     *observability.Logger
}

func NewClient(apiKey string, logger *observability.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		modelID: defaultModelID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to MP3 audio bytes for the given voice.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	body, err := c.request(ctx, text, voiceID, false)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	audio, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized audio: %w", err)
	}
	return audio, nil
}

// SynthesizeStream returns the audio as a stream for low-latency playback.
// The caller owns the returned reader.
func (c *Client) SynthesizeStream(ctx context.Context, text, voiceID string) (io.ReadCloser, error) {
	return c.request(ctx, text, voiceID, true)
}

func (c *Client) request(ctx context.Context, text, voiceID string, stream bool) (io.ReadCloser, error) {
	if strings.TrimSpace(voiceID) == "" {
		return nil, fmt.Errorf("voice_id is required")
	}

	payload := synthesisRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesis request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s", strings.TrimRight(c.baseURL, "/"), voiceID)
	if stream {
		endpoint += "/stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build synthesis request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "elevenlabs synthesis request failed", err)
		return nil, fmt.Errorf("elevenlabs synthesis request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		err := fmt.Errorf("elevenlabs synthesis returned status %d", resp.StatusCode)
		c.logger.Error(ctx, "elevenlabs synthesis rejected", err)
		return nil, err
	}

	return resp.Body, nil
}
