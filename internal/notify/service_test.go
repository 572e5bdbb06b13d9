package notify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSurfacesNotification(t *testing.T) {
	s := NewService(time.Minute)
	defer s.Close()

	n := s.Post("saved", SeveritySuccess)

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, "saved", got.Text)
	assert.Equal(t, SeveritySuccess, got.Severity)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestNotificationExpiresAfterTTL(t *testing.T) {
	s := NewService(20 * time.Millisecond)
	defer s.Close()

	s.Post("gone soon", SeverityInfo)

	require.Eventually(t, func() bool {
		_, ok := s.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNewestReplacesOldest(t *testing.T) {
	s := NewService(time.Minute)
	defer s.Close()

	s.Post("first", SeverityInfo)
	second := s.Post("second", SeverityError)

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "second", got.Text)
}

func TestReplacedTimerDoesNotClearNewerNotification(t *testing.T) {
	s := NewService(200 * time.Millisecond)
	defer s.Close()

	s.Post("first", SeverityInfo)
	time.Sleep(120 * time.Millisecond)
	second := s.Post("second", SeverityInfo)

	// The first post's deadline passes here; the second must survive it.
	time.Sleep(120 * time.Millisecond)
	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)

	require.Eventually(t, func() bool {
		_, ok := s.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestRapidPostsLeaveSingleTimer(t *testing.T) {
	s := NewService(time.Minute)
	defer s.Close()

	for i := 0; i < 50; i++ {
		s.Post("spam", SeverityInfo)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotNil(t, s.timer)
	assert.Equal(t, uint64(50), s.current.ID)
}

func TestDismissAndListener(t *testing.T) {
	s := NewService(time.Minute)
	defer s.Close()

	var calls atomic.Int32
	s.OnChange(func() { calls.Add(1) })

	s.Post("hello", SeverityInfo)
	s.Dismiss()
	s.Dismiss() // nothing surfaced, no callback

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCloseStopsFurtherPosts(t *testing.T) {
	s := NewService(time.Minute)
	s.Post("before", SeverityInfo)
	s.Close()
	s.Post("after", SeverityInfo)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestNonPositiveTTLUsesDefault(t *testing.T) {
	s := NewService(0)
	assert.Equal(t, DefaultTTL, s.ttl)
}
