package handler

import (
	"encoding/json"
	"fmt"

	"voice-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// mediaEvent is the provider's media stream frame. Only the envelope
// fields the server acts on are decoded.
type mediaEvent struct {
	Event string `json:"event"`
	Start struct {
		StreamSid string `json:"streamSid"`
		CallSid   string `json:"callSid"`
	} `json:"start,omitempty"`
	Media struct {
		Payload string `json:"payload"`
	} `json:"media,omitempty"`
	Stop struct {
		StreamSid string `json:"streamSid"`
	} `json:"stop,omitempty"`
}

// HandleMediaStream accepts the provider's live audio socket. Inbound
// frames keep the session's activity clock fresh so a long monologue is
// not reaped mid-call; transcription itself arrives over the speech
// webhooks.
func (h *Handler) HandleMediaStream(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(ctx, "websocket upgrade failed", err)
		return
	}
	defer conn.Close()

	var callSid string
	framesSinceTouch := 0

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Info(ctx, "media stream closed")
			} else {
				h.logger.Error(ctx, "media stream read error", err)
			}
			return
		}

		var event mediaEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			h.logger.Error(ctx, "failed to decode media event", err)
			continue
		}

		switch event.Event {
		case "start":
			callSid = event.Start.CallSid
			h.logger.Info(observability.WithFields(ctx,
				observability.Field{Key: "stream_sid", Value: event.Start.StreamSid},
				observability.Field{Key: "call_sid", Value: callSid}),
				"media stream started")
		case "media":
			// Audio frames arrive every 20ms; touching the session once
			// per ~10s of audio is plenty.
			framesSinceTouch++
			if callSid != "" && framesSinceTouch >= 500 {
				h.conversation.NotePartialTranscript(callSid)
				framesSinceTouch = 0
			}
		case "stop":
			h.logger.Info(observability.WithFields(ctx,
				observability.Field{Key: "stream_sid", Value: event.Stop.StreamSid}),
				"media stream stopped")
			return
		default:
			h.logger.Debug(ctx, fmt.Sprintf("unhandled media event %q", event.Event))
		}
	}
}
