// Package countdown implements the per-session wall-clock countdown.
package countdown

import (
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the tick period.
const DefaultInterval = time.Second

// generations issues tick tokens that are unique across every Timer in the
// process, so a tick from a discarded timer never matches a new one.
var generations atomic.Uint64

func nextGen() uint64 { return generations.Add(1) }

// TickMsg is delivered once per interval while the timer runs.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// Timer counts down whole seconds. It is driven entirely by TickMsg values
// fed back through Tick, so it must only be touched from the Update loop.
type Timer struct {
	interval  time.Duration
	remaining int
	gen       uint64
	running   bool
	expired   bool
}

// New returns a stopped timer. A non-positive interval uses DefaultInterval.
func New(interval time.Duration) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Timer{interval: interval}
}

// Start arms the timer with the given number of seconds and returns the
// first tick. Ticks from any earlier Start are invalidated.
func (t *Timer) Start(seconds int) tea.Cmd {
	if seconds < 0 {
		seconds = 0
	}
	t.gen = nextGen()
	t.remaining = seconds
	t.running = true
	t.expired = false
	return t.next()
}

// Tick applies one tick. It reports expired exactly once per Start; stale,
// stopped or post-expiry ticks are ignored and return no follow-up command.
func (t *Timer) Tick(msg TickMsg) (expired bool, next tea.Cmd) {
	if !t.running || msg.Gen != t.gen {
		return false, nil
	}

	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.running = false
		t.expired = true
		return true, nil
	}
	return false, t.next()
}

// Stop cancels the timer. Ticks already in flight are dropped on arrival.
func (t *Timer) Stop() {
	t.running = false
	t.gen = nextGen()
}

// Remaining returns the seconds left, never negative.
func (t *Timer) Remaining() int {
	return t.remaining
}

// Running reports whether ticks are being applied.
func (t *Timer) Running() bool {
	return t.running
}

// Expired reports whether the timer has reached zero since the last Start.
func (t *Timer) Expired() bool {
	return t.expired
}

func (t *Timer) next() tea.Cmd {
	gen := t.gen
	return tea.Tick(t.interval, func(at time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: at}
	})
}

// Format renders seconds as MM:SS.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
