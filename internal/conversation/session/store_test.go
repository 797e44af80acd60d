package session

import (
	"sync"
	"testing"
	"time"

	"voice-server/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	st := NewStore(ttl, nil)
	t.Cleanup(st.Stop)
	return st
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	st := newTestStore(t, time.Hour)

	first, created := st.GetOrCreate("CA123", AgentConfig{Name: "Riley"}, "+15550001111", "")
	require.True(t, created)

	second, created := st.GetOrCreate("CA123", AgentConfig{Name: "Other"}, "+15559999999", "")
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, "Riley", second.Agent.Name)
	assert.Equal(t, 1, st.Len())
}

func TestGetReturnsNotFound(t *testing.T) {
	st := newTestStore(t, time.Hour)

	_, err := st.Get("CA404")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	st := newTestStore(t, time.Hour)
	st.GetOrCreate("CA123", AgentConfig{}, "", "")

	st.Delete("CA123")
	st.Delete("CA123")

	assert.Equal(t, 0, st.Len())
}

func TestDeleteAfterWaitsOutGracePeriod(t *testing.T) {
	st := newTestStore(t, time.Hour)
	st.GetOrCreate("CA123", AgentConfig{}, "", "")

	st.DeleteAfter("CA123", 30*time.Millisecond)

	_, err := st.Get("CA123")
	require.NoError(t, err, "session should survive until the grace period elapses")

	assert.Eventually(t, func() bool {
		_, err := st.Get("CA123")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestReapEvictsOnlyIdleSessions(t *testing.T) {
	st := newTestStore(t, 50*time.Millisecond)
	idle, _ := st.GetOrCreate("CAidle", AgentConfig{}, "", "")
	busy, _ := st.GetOrCreate("CAbusy", AgentConfig{}, "", "")
	_ = idle

	time.Sleep(80 * time.Millisecond)
	busy.Touch()

	reaped := st.reap(time.Now())
	assert.Equal(t, 1, reaped)

	_, err := st.Get("CAidle")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.Get("CAbusy")
	assert.NoError(t, err)
}

func TestReaperDoesNotEvictSessionMidTurn(t *testing.T) {
	st := newTestStore(t, 50*time.Millisecond)
	sess, _ := st.GetOrCreate("CA123", AgentConfig{}, "", "")

	sess.LockTurn()
	done := make(chan struct{})
	go func() {
		defer close(done)
		// Reap runs while the turn lock is held; it must not block on it.
		st.reap(time.Now())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reap blocked on a held turn lock")
	}
	sess.UnlockTurn()
}

func TestTurnLockSerializesConcurrentTurns(t *testing.T) {
	st := newTestStore(t, time.Hour)
	sess, _ := st.GetOrCreate("CA123", AgentConfig{}, "", "")

	var (
		mu      sync.Mutex
		inTurn  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.LockTurn()
			defer sess.UnlockTurn()
			mu.Lock()
			inTurn++
			if inTurn > maxSeen {
				maxSeen = inTurn
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inTurn--
			mu.Unlock()
			sess.AppendMessage(llm.RoleUser, "hello", "")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen, "turns must not overlap")
	assert.Len(t, sess.Messages(), 8)
}

func TestMessagesReturnsACopy(t *testing.T) {
	st := newTestStore(t, time.Hour)
	sess, _ := st.GetOrCreate("CA123", AgentConfig{}, "+15550001111", "Ana")

	sess.AppendMessage(llm.RoleSystem, "prompt", "")
	sess.AppendMessage(llm.RoleUser, "hi", "")

	snapshot := sess.Messages()
	snapshot[0].Content = "mutated"

	assert.Equal(t, "prompt", sess.Messages()[0].Content)
}

func TestSetCustomerKeepsExistingOnEmpty(t *testing.T) {
	st := newTestStore(t, time.Hour)
	sess, _ := st.GetOrCreate("CA123", AgentConfig{}, "+15550001111", "")

	sess.SetCustomer("Ana", "", "ana@example.com")
	name, phone, email := sess.Customer()
	assert.Equal(t, "Ana", name)
	assert.Equal(t, "+15550001111", phone)
	assert.Equal(t, "ana@example.com", email)

	sess.SetCustomer("", "", "")
	name, _, _ = sess.Customer()
	assert.Equal(t, "Ana", name)
}
