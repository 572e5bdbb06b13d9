// Package notify provides the process-wide transient notification slot.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

// Severity tags a notification for rendering.
type Severity string

// Severity values.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a single transient message.
type Notification struct {
	ID        uint64
	Text      string
	Severity  Severity
	CreatedAt time.Time
}

// Poster is the narrow interface consumers depend on.
type Poster interface {
	Post(text string, severity Severity) Notification
}

// Service holds at most one surfaced notification. A new post replaces the
// current one and cancels its pending removal timer before arming its own.
type Service struct {
	mu       sync.Mutex
	ttl      time.Duration
	seq      uint64
	current  *Notification
	timer    *time.Timer
	listener func()
	closed   bool
}

// NewService creates a Service whose notifications expire after ttl.
// A non-positive ttl falls back to DefaultTTL.
func NewService(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{ttl: ttl}
}

// OnChange registers fn to be called after every post, expiry and dismissal.
// fn runs outside the service lock and may be invoked from a timer goroutine.
func (s *Service) OnChange(fn func()) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// Post surfaces a notification and schedules its removal.
func (s *Service) Post(text string, severity Severity) Notification {
	s.mu.Lock()
	s.seq++
	n := Notification{
		ID:        s.seq,
		Text:      text,
		Severity:  severity,
		CreatedAt: time.Now(),
	}
	if s.closed {
		s.mu.Unlock()
		return n
	}

	s.stopTimerLocked()
	s.current = &n
	id := n.ID
	s.timer = time.AfterFunc(s.ttl, func() { s.expire(id) })
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener()
	}
	return n
}

// Current returns the surfaced notification, if any.
func (s *Service) Current() (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Notification{}, false
	}
	return *s.current, true
}

// Dismiss removes the surfaced notification immediately.
func (s *Service) Dismiss() {
	s.mu.Lock()
	had := s.current != nil
	s.stopTimerLocked()
	s.current = nil
	listener := s.listener
	s.mu.Unlock()

	if had && listener != nil {
		listener()
	}
}

// Close stops any pending timer. Posts after Close are not surfaced.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.current = nil
	s.closed = true
}

func (s *Service) expire(id uint64) {
	s.mu.Lock()
	if s.current == nil || s.current.ID != id {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.timer = nil
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener()
	}
}

func (s *Service) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
