package notify

import (
	"sync"
	"time"

	"espejo-admin/internal/metrics"
)

const (
	DefaultDuration = 3 * time.Second
	// Gap between one message clearing and the next one appearing, so
	// back-to-back messages do not blur into each other.
	idleGap = 100 * time.Millisecond
)

const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

type Message struct {
	Text     string        `json:"text"`
	Level    string        `json:"level"`
	Duration time.Duration `json:"-"`
}

// Queue shows at most one transient message at a time. A message arriving
// while another is showing joins a FIFO backlog; nothing is ever dropped and
// no two messages overlap.
type Queue struct {
	mu        sync.Mutex
	current   *Message
	backlog   []Message
	timer     *time.Timer
	advancing bool
	closed    bool
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue shows msg immediately when the queue is idle, otherwise appends it
// to the backlog.
func (q *Queue) Enqueue(msg Message) {
	if msg.Duration <= 0 {
		msg.Duration = DefaultDuration
	}
	if msg.Level == "" {
		msg.Level = LevelInfo
	}
	metrics.NotificationsTotal.WithLabelValues(msg.Level).Inc()

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	if q.current != nil || q.advancing {
		q.backlog = append(q.backlog, msg)
		return
	}
	q.show(msg)
}

// Success and Errorf-style helpers keep call sites terse.
func (q *Queue) Success(text string) { q.Enqueue(Message{Text: text, Level: LevelSuccess}) }
func (q *Queue) Error(text string)   { q.Enqueue(Message{Text: text, Level: LevelError}) }

// Dismiss clears the visible message right away and advances the backlog,
// same as the auto-dismiss timer firing.
func (q *Queue) Dismiss() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return
	}
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.clearAndAdvance()
}

// Current returns the visible message, if any, and the backlog depth.
func (q *Queue) Current() (*Message, int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return nil, len(q.backlog)
	}
	msg := *q.current
	return &msg, len(q.backlog)
}

// Close stops all timers and drops pending messages. The queue accepts no
// further messages afterwards.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.current = nil
	q.backlog = nil
}

// show makes msg the visible message and arms its dismiss timer.
// Caller holds q.mu.
func (q *Queue) show(msg Message) {
	q.current = &msg
	q.timer = time.AfterFunc(msg.Duration, func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.closed || q.current == nil {
			return
		}
		q.timer = nil
		q.clearAndAdvance()
	})
}

// clearAndAdvance clears the visible slot and, after a short idle gap,
// promotes the oldest backlog entry. Messages arriving during the gap join
// the backlog behind it. Caller holds q.mu.
func (q *Queue) clearAndAdvance() {
	q.current = nil
	if len(q.backlog) == 0 {
		return
	}
	q.advancing = true
	q.timer = time.AfterFunc(idleGap, func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		q.advancing = false
		if q.closed || len(q.backlog) == 0 {
			return
		}
		next := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.show(next)
	})
}
