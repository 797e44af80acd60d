package handler

import (
	"io"
	"net/http"

	"voice-server/internal/apierrors"
	"voice-server/internal/observability"
	"voice-server/internal/speech"

	"github.com/gin-gonic/gin"
)

// Handler serves synthesized audio to the telephony provider. Every
// request carries a signed token minted alongside the pull URL.
type Handler struct {
	processor *speech.Processor
	logger    *observability.Logger
}

func NewHandler(processor *speech.Processor, logger *observability.Logger) *Handler {
	return &Handler{processor: processor, logger: logger}
}

// GetAudio returns cached audio for a pull URL.
func (h *Handler) GetAudio(c *gin.Context) {
	ctx := c.Request.Context()
	audioID := c.Param("audio_id")
	token := c.Query("token")

	if err := h.processor.VerifyToken(audioID, token); err != nil {
		h.logger.Warn(observability.WithFields(ctx,
			observability.Field{Key: "audio_id", Value: audioID}),
			"rejected audio request with bad token")
		apierrors.RespondWithError(c, err)
		return
	}

	audio, ok := h.processor.Audio(audioID)
	if !ok {
		// Entry aged out of the cache; the caller falls back to plain
		// text-to-speech on its side.
		apierrors.RespondWithError(c, apierrors.NotFoundError(apierrors.CodeAudioNotFound, "Audio not found"))
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// StreamAudio serves audio as a chunked stream. Cache hits are written
// directly; on a miss the utterance is re-synthesized through the
// streaming synthesis API and piped out as it arrives. The text and
// voice must hash to the signed audio id, so only URLs this server
// minted can drive synthesis.
func (h *Handler) StreamAudio(c *gin.Context) {
	ctx := c.Request.Context()
	audioID := c.Param("audio_id")
	token := c.Query("token")

	if err := h.processor.VerifyToken(audioID, token); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	if audio, ok := h.processor.Audio(audioID); ok {
		c.Data(http.StatusOK, "audio/mpeg", audio)
		return
	}

	text := c.Query("text")
	voiceID := c.Query("voice_id")
	if text == "" || voiceID == "" || speech.CacheKey(text, voiceID) != audioID {
		apierrors.RespondWithError(c, apierrors.NotFoundError(apierrors.CodeAudioNotFound, "Audio not found"))
		return
	}

	stream, err := h.processor.Stream(ctx, text, voiceID)
	if err != nil {
		h.logger.Error(ctx, "streaming synthesis failed", err)
		apierrors.RespondWithError(c, apierrors.ServiceUnavailableError(apierrors.CodeInternal, "Speech synthesis is unavailable", err))
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "audio/mpeg")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		h.logger.Error(ctx, "audio stream interrupted", err)
	}
}
