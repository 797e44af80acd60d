package handler

import (
	"context"
	"net/http"

	"voice-server/internal/conversation/processor"
	"voice-server/internal/observability"
	"voice-server/internal/speech"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conversation is the orchestrator the webhook surface drives.
type Conversation interface {
	InitializeConversation(ctx context.Context, callID string, agentID uuid.UUID, callerPhone string) (*processor.Reply, error)
	ProcessUserInput(ctx context.Context, callID, transcript string, confidence float64) (*processor.Reply, error)
	CleanupConversation(ctx context.Context, callID, status string) error
	NotePartialTranscript(callID string)
}

// SpeechPreparer synthesizes a reply and returns its signed pull URL.
type SpeechPreparer interface {
	Prepare(ctx context.Context, text, voiceID string) (speech.PreparedAudio, error)
}

// Handler is the telephony webhook surface: call lifecycle, speech
// results, and the media stream socket.
type Handler struct {
	conversation Conversation
	speech       SpeechPreparer
	logger       *observability.Logger
}

func New(conversation Conversation, speech SpeechPreparer, logger *observability.Logger) Handler {
	return Handler{
		conversation: conversation,
		speech:       speech,
		logger:       logger,
	}
}

// upgrader is a shared WebSocket upgrader. The telephony provider does
// not send an Origin header, so all origins are accepted.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
