package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"voice-server/internal/observability"
)

// ErrSessionNotFound is returned when no live session exists for a call.
var ErrSessionNotFound = errors.New("session not found")

// Store holds all live sessions keyed by call id. A background reaper
// drops sessions that have gone idle past the TTL; it never touches a
// session whose turn lock is held mid-flight, it only looks at activity
// timestamps.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl    time.Duration
	logger *observability.Logger

	reaperOnce sync.Once
	stopOnce   sync.Once
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration, logger *observability.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// GetOrCreate returns the session for callID, creating it if absent.
// Duplicate call-start deliveries land on the same session. The second
// return value reports whether the session was newly created.
func (st *Store) GetOrCreate(callID string, agent AgentConfig, customerPhone, customerName string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if existing, ok := st.sessions[callID]; ok {
		return existing, false
	}
	sess := newSession(callID, agent, customerPhone, customerName)
	st.sessions[callID] = sess
	return sess, true
}

// Get returns the live session for callID.
func (st *Store) Get(callID string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[callID]
	if !ok {
		return nil, fmt.Errorf("call %s: %w", callID, ErrSessionNotFound)
	}
	return sess, nil
}

// Delete removes the session for callID. Deleting a missing session is
// a no-op, so cleanup can run for calls that were never established or
// were already reaped.
func (st *Store) Delete(callID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, callID)
}

// DeleteAfter removes the session once the grace period elapses. The
// delay lets a final webhook that raced the hangup still find its
// session.
func (st *Store) DeleteAfter(callID string, grace time.Duration) {
	if grace <= 0 {
		st.Delete(callID)
		return
	}
	st.wg.Add(1)
	go func() {
		defer st.wg.Done()
		timer := time.NewTimer(grace)
		defer timer.Stop()
		select {
		case <-timer.C:
			st.Delete(callID)
		case <-st.done:
		}
	}()
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// StartReaper launches the background sweep that evicts sessions idle
// past the TTL. Safe to call once; Stop shuts it down.
func (st *Store) StartReaper(interval time.Duration) {
	st.reaperOnce.Do(func() {
		st.wg.Add(1)
		go func() {
			defer st.wg.Done()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					st.reap(time.Now())
				case <-st.done:
					return
				}
			}
		}()
	})
}

// Stop halts the reaper and any pending grace-period deletions.
func (st *Store) Stop() {
	st.stopOnce.Do(func() {
		close(st.done)
	})
	st.wg.Wait()
}

func (st *Store) reap(now time.Time) int {
	cutoff := now.Add(-st.ttl)

	st.mu.Lock()
	var expired []string
	for callID, sess := range st.sessions {
		if sess.LastActivity().Before(cutoff) {
			expired = append(expired, callID)
		}
	}
	for _, callID := range expired {
		delete(st.sessions, callID)
	}
	st.mu.Unlock()

	if len(expired) > 0 && st.logger != nil {
		ctx := observability.WithFields(context.Background(),
			observability.Field{Key: "reaped", Value: len(expired)})
		st.logger.Info(ctx, "evicted idle sessions")
	}
	return len(expired)
}
