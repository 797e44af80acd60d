package session

import (
	"sync"
	"time"

	"voice-server/internal/calendar"
	"voice-server/internal/llm"

	"github.com/google/uuid"
)

// AgentConfig is the snapshot of agent settings a session conversates
// under. Copied in at session creation so an agent edit mid-call cannot
// change a live conversation.
type AgentConfig struct {
	ID                uuid.UUID
	Name              string
	Description       string
	PromptTemplate    string
	Provider          string
	Model             string
	Temperature       float64
	VoiceID           string
	CalendarEventType string
}

// Message is one transcript entry.
type Message struct {
	Role         llm.Role
	Content      string
	FunctionName string
	At           time.Time
}

// Session is the in-memory record of one in-progress phone conversation.
//
// Two locks with distinct jobs: turnMu makes one webhook turn the exclusive
// owner of the session for its whole duration, external calls included.
// mu guards the fields themselves so the reaper and concurrent readers can
// peek at timestamps without waiting out a slow upstream call.
type Session struct {
	CallID string
	Agent  AgentConfig

	turnMu sync.Mutex

	mu                       sync.Mutex
	customerName             string
	customerPhone            string
	customerEmail            string
	messages                 []Message
	startTime                time.Time
	lastActivity             time.Time
	calendarProviderOverride calendar.Source
	pendingSlots             []calendar.Slot
}

func newSession(callID string, agent AgentConfig, customerPhone, customerName string) *Session {
	now := time.Now()
	return &Session{
		CallID:        callID,
		Agent:         agent,
		customerName:  customerName,
		customerPhone: customerPhone,
		startTime:     now,
		lastActivity:  now,
	}
}

// LockTurn makes the caller the exclusive owner of the session until
// UnlockTurn. Turns for the same call serialize here, in arrival order.
func (s *Session) LockTurn() {
	s.turnMu.Lock()
}

func (s *Session) UnlockTurn() {
	s.turnMu.Unlock()
}

// AppendMessage adds a transcript entry and bumps the activity clock.
func (s *Session) AppendMessage(role llm.Role, content, functionName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{
		Role:         role,
		Content:      content,
		FunctionName: functionName,
		At:           time.Now(),
	})
	s.lastActivity = time.Now()
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Touch bumps the activity clock without appending a message, used for
// informational events like partial speech.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
}

// LastActivity reports when the session last saw traffic.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// StartTime reports when the session was created.
func (s *Session) StartTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

// Customer returns the known caller identity.
func (s *Session) Customer() (name, phone, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerName, s.customerPhone, s.customerEmail
}

// SetCustomer fills in caller identity fields as they become known.
// Empty arguments leave existing values untouched.
func (s *Session) SetCustomer(name, phone, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.customerName = name
	}
	if phone != "" {
		s.customerPhone = phone
	}
	if email != "" {
		s.customerEmail = email
	}
}

// CalendarProviderOverride returns the per-call provider pin, if any.
func (s *Session) CalendarProviderOverride() calendar.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calendarProviderOverride
}

// SetCalendarProviderOverride pins this call to one calendar provider.
func (s *Session) SetCalendarProviderOverride(source calendar.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendarProviderOverride = source
}

// PendingSlots returns the slots offered to the caller in the current
// booking flow.
func (s *Session) PendingSlots() []calendar.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]calendar.Slot, len(s.pendingSlots))
	copy(out, s.pendingSlots)
	return out
}

// SetPendingSlots records the slots just offered to the caller.
func (s *Session) SetPendingSlots(slots []calendar.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingSlots = slots
}
