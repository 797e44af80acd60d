package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"voice-server/internal/conversation/processor"
	"voice-server/internal/conversation/session"
	"voice-server/internal/observability"
	"voice-server/internal/speech"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConversation struct {
	initReply    *processor.Reply
	initErr      error
	inputReply   *processor.Reply
	inputErr     error
	inputs       []string
	confidences  []float64
	cleanups     []string
	partialCalls int
}

func (s *stubConversation) InitializeConversation(_ context.Context, _ string, _ uuid.UUID, _ string) (*processor.Reply, error) {
	return s.initReply, s.initErr
}

func (s *stubConversation) ProcessUserInput(_ context.Context, _ string, transcript string, confidence float64) (*processor.Reply, error) {
	s.inputs = append(s.inputs, transcript)
	s.confidences = append(s.confidences, confidence)
	return s.inputReply, s.inputErr
}

func (s *stubConversation) CleanupConversation(_ context.Context, callID, _ string) error {
	s.cleanups = append(s.cleanups, callID)
	return nil
}

func (s *stubConversation) NotePartialTranscript(string) {
	s.partialCalls++
}

type stubSpeech struct {
	url string
	err error
}

func (s *stubSpeech) Prepare(_ context.Context, _, _ string) (speech.PreparedAudio, error) {
	if s.err != nil {
		return speech.PreparedAudio{}, s.err
	}
	return speech.PreparedAudio{AudioID: "abc", URL: s.url}, nil
}

func newTestRouter(conv Conversation, sp SpeechPreparer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(conv, sp, observability.NewLogger())
	router := gin.New()
	router.POST("/api/telephony/:agent_id/call-start", h.HandleCallStart)
	router.POST("/api/telephony/:agent_id/speech", h.HandleSpeech)
	router.POST("/api/telephony/:agent_id/speech-partial", h.HandlePartialSpeech)
	router.POST("/api/telephony/call-status", h.HandleCallStatus)
	return router
}

func postForm(t *testing.T, router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleCallStartPlaysGreetingAndGathers(t *testing.T) {
	agentID := uuid.New()
	conv := &stubConversation{initReply: &processor.Reply{Text: "Hello!", VoiceID: "voice-a"}}
	router := newTestRouter(conv, &stubSpeech{url: "https://voice.example.com/api/audio/abc?token=tok"})

	w := postForm(t, router, "/api/telephony/"+agentID.String()+"/call-start", url.Values{
		"CallSid": {"CA1"},
		"From":    {"+15550001111"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xml", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<Play>https://voice.example.com/api/audio/abc?token=tok</Play>")
	assert.Contains(t, body, `input="speech"`)
	assert.Contains(t, body, "/api/telephony/"+agentID.String()+"/speech")
	assert.NotContains(t, body, "<Hangup")
}

func TestHandleCallStartFallsBackToSayWhenSynthesisFails(t *testing.T) {
	agentID := uuid.New()
	conv := &stubConversation{initReply: &processor.Reply{Text: "Hello!", VoiceID: "voice-a"}}
	router := newTestRouter(conv, &stubSpeech{err: assert.AnError})

	w := postForm(t, router, "/api/telephony/"+agentID.String()+"/call-start", url.Values{
		"CallSid": {"CA1"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Say>Hello!</Say>")
}

func TestHandleCallStartRejectsMissingCallSid(t *testing.T) {
	router := newTestRouter(&stubConversation{}, &stubSpeech{})

	w := postForm(t, router, "/api/telephony/"+uuid.NewString()+"/call-start", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCallStartHangsUpWhenInitializationFails(t *testing.T) {
	conv := &stubConversation{initErr: assert.AnError}
	router := newTestRouter(conv, &stubSpeech{})

	w := postForm(t, router, "/api/telephony/"+uuid.NewString()+"/call-start", url.Values{
		"CallSid": {"CA1"},
	})

	require.Equal(t, http.StatusOK, w.Code, "the provider still needs valid instructions")
	body := w.Body.String()
	assert.Contains(t, body, "<Say>")
	assert.Contains(t, body, "<Hangup")
}

func TestHandleSpeechForwardsTranscriptAndConfidence(t *testing.T) {
	agentID := uuid.New()
	conv := &stubConversation{inputReply: &processor.Reply{Text: "Sure thing.", VoiceID: "voice-a"}}
	router := newTestRouter(conv, &stubSpeech{url: "https://voice.example.com/api/audio/abc?token=tok"})

	w := postForm(t, router, "/api/telephony/"+agentID.String()+"/speech", url.Values{
		"CallSid":      {"CA1"},
		"SpeechResult": {"book me for tuesday"},
		"Confidence":   {"0.87"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, conv.inputs, 1)
	assert.Equal(t, "book me for tuesday", conv.inputs[0])
	assert.InDelta(t, 0.87, conv.confidences[0], 0.001)
	assert.Contains(t, w.Body.String(), "<Gather")
}

func TestHandleSpeechMissingConfidenceDefaultsHigh(t *testing.T) {
	conv := &stubConversation{inputReply: &processor.Reply{Text: "Okay."}}
	router := newTestRouter(conv, &stubSpeech{})

	postForm(t, router, "/api/telephony/"+uuid.NewString()+"/speech", url.Values{
		"CallSid":      {"CA1"},
		"SpeechResult": {"hello"},
	})

	require.Len(t, conv.confidences, 1)
	assert.Equal(t, 1.0, conv.confidences[0])
}

func TestHandleSpeechCompletionHangsUpAndCleansUp(t *testing.T) {
	conv := &stubConversation{inputReply: &processor.Reply{Text: "Goodbye!", VoiceID: "voice-a", Complete: true}}
	router := newTestRouter(conv, &stubSpeech{url: "https://voice.example.com/api/audio/abc?token=tok"})

	w := postForm(t, router, "/api/telephony/"+uuid.NewString()+"/speech", url.Values{
		"CallSid":      {"CA1"},
		"SpeechResult": {"no that's all"},
	})

	body := w.Body.String()
	assert.Contains(t, body, "<Hangup")
	assert.NotContains(t, body, "<Gather")
	assert.Equal(t, []string{"CA1"}, conv.cleanups)
}

func TestHandleSpeechUnknownSessionHangsUpGracefully(t *testing.T) {
	conv := &stubConversation{inputErr: session.ErrSessionNotFound}
	router := newTestRouter(conv, &stubSpeech{})

	w := postForm(t, router, "/api/telephony/"+uuid.NewString()+"/speech", url.Values{
		"CallSid":      {"CA404"},
		"SpeechResult": {"hello"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<Say>")
	assert.Contains(t, body, "<Hangup")
	assert.Empty(t, conv.cleanups)
}

func TestHandlePartialSpeechTouchesSession(t *testing.T) {
	conv := &stubConversation{}
	router := newTestRouter(conv, &stubSpeech{})

	w := postForm(t, router, "/api/telephony/"+uuid.NewString()+"/speech-partial", url.Values{
		"CallSid":              {"CA1"},
		"UnstableSpeechResult": {"book me for"},
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, conv.partialCalls)
}

func TestHandleCallStatusCleansUpTerminalStatusesOnly(t *testing.T) {
	conv := &stubConversation{}
	router := newTestRouter(conv, &stubSpeech{})

	w := postForm(t, router, "/api/telephony/call-status", url.Values{
		"CallSid":    {"CA1"},
		"CallStatus": {"ringing"},
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, conv.cleanups)

	w = postForm(t, router, "/api/telephony/call-status", url.Values{
		"CallSid":    {"CA1"},
		"CallStatus": {"completed"},
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"CA1"}, conv.cleanups)
}
