package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"voice-server/internal/conversation/processor"
	"voice-server/internal/conversation/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/twilio/twilio-go/twiml"
)

// terminalCallStatuses are the provider statuses that end a call.
var terminalCallStatuses = map[string]bool{
	"completed": true,
	"failed":    true,
	"busy":      true,
	"no-answer": true,
	"canceled":  true,
}

// HandleCallStart answers a newly connected call: it establishes the
// session, speaks the greeting, and opens the first speech gather.
func (h *Handler) HandleCallStart(c *gin.Context) {
	ctx := c.Request.Context()

	agentID, err := uuid.Parse(c.Param("agent_id"))
	if err != nil {
		h.logger.Error(ctx, "call start with malformed agent id", err)
		h.respondHangup(c, "I'm sorry, this number is not configured correctly. Goodbye.")
		return
	}
	callSid := c.PostForm("CallSid")
	if callSid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CallSid is required"})
		return
	}
	callerPhone := c.PostForm("From")

	reply, err := h.conversation.InitializeConversation(ctx, callSid, agentID, callerPhone)
	if err != nil {
		h.logger.Error(ctx, "failed to initialize conversation", err)
		h.respondHangup(c, "I'm sorry, we can't take your call right now. Please try again later.")
		return
	}

	h.respondGather(c, agentID, reply)
}

// HandleSpeech processes one transcribed utterance and speaks the reply.
func (h *Handler) HandleSpeech(c *gin.Context) {
	ctx := c.Request.Context()

	agentID, err := uuid.Parse(c.Param("agent_id"))
	if err != nil {
		h.respondHangup(c, "I'm sorry, something went wrong. Goodbye.")
		return
	}
	callSid := c.PostForm("CallSid")
	transcript := c.PostForm("SpeechResult")
	confidence := parseConfidence(c.PostForm("Confidence"))

	reply, err := h.conversation.ProcessUserInput(ctx, callSid, transcript, confidence)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			h.respondHangup(c, "I'm sorry, I lost track of this call. Please call back.")
			return
		}
		h.logger.Error(ctx, "failed to process user input", err)
		h.respondHangup(c, "I'm sorry, something went wrong. Please call back.")
		return
	}

	if reply.Complete {
		h.respondFarewell(c, reply)
		if err := h.conversation.CleanupConversation(ctx, callSid, ""); err != nil {
			h.logger.Error(ctx, "failed to clean up conversation", err)
		}
		return
	}

	h.respondGather(c, agentID, reply)
}

// HandlePartialSpeech receives interim transcription results. They only
// refresh session activity; nothing is spoken back.
func (h *Handler) HandlePartialSpeech(c *gin.Context) {
	callSid := c.PostForm("CallSid")
	if callSid != "" {
		h.conversation.NotePartialTranscript(callSid)
	}
	c.Status(http.StatusNoContent)
}

// HandleCallStatus consumes lifecycle callbacks and tears the session
// down once the call reaches a terminal status.
func (h *Handler) HandleCallStatus(c *gin.Context) {
	ctx := c.Request.Context()

	callSid := c.PostForm("CallSid")
	status := c.PostForm("CallStatus")
	if callSid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CallSid is required"})
		return
	}

	if terminalCallStatuses[status] {
		if err := h.conversation.CleanupConversation(ctx, callSid, status); err != nil {
			h.logger.Error(ctx, "failed to clean up conversation", err)
		}
	}
	c.Status(http.StatusNoContent)
}

// respondGather speaks the reply and listens for the caller's next
// utterance.
func (h *Handler) respondGather(c *gin.Context, agentID uuid.UUID, reply *processor.Reply) {
	action := fmt.Sprintf("/api/telephony/%s/speech", agentID)
	gather := &twiml.VoiceGather{
		Input:                 "speech",
		Action:                action,
		Method:                "POST",
		SpeechTimeout:         "auto",
		PartialResultCallback: fmt.Sprintf("/api/telephony/%s/speech-partial", agentID),
		ActionOnEmptyResult:   "true",
		InnerElements:         []twiml.Element{h.speakElement(c, reply)},
	}
	h.respondTwiML(c, []twiml.Element{gather})
}

// respondFarewell speaks the final line and hangs up.
func (h *Handler) respondFarewell(c *gin.Context, reply *processor.Reply) {
	h.respondTwiML(c, []twiml.Element{h.speakElement(c, reply), &twiml.VoiceHangup{}})
}

func (h *Handler) respondHangup(c *gin.Context, message string) {
	h.respondTwiML(c, []twiml.Element{&twiml.VoiceSay{Message: message}, &twiml.VoiceHangup{}})
}

// speakElement prefers synthesized audio behind a signed pull URL and
// falls back to provider text-to-speech when synthesis is unavailable.
func (h *Handler) speakElement(c *gin.Context, reply *processor.Reply) twiml.Element {
	ctx := c.Request.Context()
	if reply.VoiceID != "" {
		prepared, err := h.speech.Prepare(ctx, reply.Text, reply.VoiceID)
		if err == nil {
			return &twiml.VoicePlay{Url: prepared.URL}
		}
		h.logger.Error(ctx, "speech synthesis unavailable, falling back to provider voice", err)
	}
	return &twiml.VoiceSay{Message: reply.Text}
}

func (h *Handler) respondTwiML(c *gin.Context, elements []twiml.Element) {
	result, err := twiml.Voice(elements)
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to render twiml", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, result)
}

func parseConfidence(raw string) float64 {
	if raw == "" {
		// Absent on some callbacks; treat as confident rather than
		// reprompting a caller we heard fine.
		return 1.0
	}
	confidence, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1.0
	}
	return confidence
}
