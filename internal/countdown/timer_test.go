package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiresOnceAfterFiveTicks(t *testing.T) {
	tm := New(time.Millisecond)
	cmd := tm.Start(5)
	require.NotNil(t, cmd)

	fired := 0
	for i := 0; i < 5; i++ {
		msg, ok := cmd().(TickMsg)
		require.True(t, ok)

		var expired bool
		expired, cmd = tm.Tick(msg)
		if expired {
			fired++
		}
		assert.GreaterOrEqual(t, tm.Remaining(), 0)
	}

	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, tm.Remaining())
	assert.True(t, tm.Expired())
	assert.False(t, tm.Running())
	assert.Nil(t, cmd)
}

func TestRepeatedTicksAfterExpiryAreIgnored(t *testing.T) {
	tm := New(time.Millisecond)
	tm.Start(1)
	gen := tm.gen

	expired, _ := tm.Tick(TickMsg{Gen: gen})
	require.True(t, expired)

	for i := 0; i < 3; i++ {
		expired, next := tm.Tick(TickMsg{Gen: gen})
		assert.False(t, expired)
		assert.Nil(t, next)
	}
	assert.Equal(t, 0, tm.Remaining())
}

func TestRemainingDecreasesMonotonically(t *testing.T) {
	tm := New(time.Millisecond)
	tm.Start(3)
	gen := tm.gen

	prev := tm.Remaining()
	for i := 0; i < 3; i++ {
		tm.Tick(TickMsg{Gen: gen})
		assert.LessOrEqual(t, tm.Remaining(), prev)
		prev = tm.Remaining()
	}
}

func TestStaleGenerationIgnored(t *testing.T) {
	tm := New(time.Millisecond)
	tm.Start(10)
	stale := tm.gen
	tm.Start(10)

	expired, next := tm.Tick(TickMsg{Gen: stale})
	assert.False(t, expired)
	assert.Nil(t, next)
	assert.Equal(t, 10, tm.Remaining())
}

func TestStopCancelsInFlightTicks(t *testing.T) {
	tm := New(time.Millisecond)
	cmd := tm.Start(2)
	msg := cmd().(TickMsg)

	tm.Stop()

	expired, next := tm.Tick(msg)
	assert.False(t, expired)
	assert.Nil(t, next)
	assert.Equal(t, 2, tm.Remaining())
	assert.False(t, tm.Running())
}

func TestTickFromDiscardedTimerIgnoredByNewTimer(t *testing.T) {
	old := New(time.Millisecond)
	msg := old.Start(30)().(TickMsg)
	old.Stop()

	tm := New(time.Millisecond)
	tm.Start(30)
	require.NotEqual(t, msg.Gen, tm.gen)

	expired, next := tm.Tick(msg)
	assert.False(t, expired)
	assert.Nil(t, next)
	assert.Equal(t, 30, tm.Remaining())
	assert.True(t, tm.Running())
}

func TestStartWithZeroExpiresOnFirstTick(t *testing.T) {
	tm := New(time.Millisecond)
	tm.Start(0)

	expired, _ := tm.Tick(TickMsg{Gen: tm.gen})
	assert.True(t, expired)
	assert.Equal(t, 0, tm.Remaining())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00", Format(0))
	assert.Equal(t, "00:30", Format(30))
	assert.Equal(t, "30:00", Format(1800))
	assert.Equal(t, "00:00", Format(-4))
}
