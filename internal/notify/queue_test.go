package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForCurrent polls until the visible message changes to want or the
// deadline passes.
func waitForCurrent(t *testing.T, q *Queue, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msg, _ := q.Current(); msg != nil && msg.Text == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	msg, backlog := q.Current()
	t.Fatalf("timed out waiting for %q; current=%v backlog=%d", want, msg, backlog)
}

func waitForIdle(t *testing.T, q *Queue) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msg, backlog := q.Current(); msg == nil && backlog == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("queue never went idle")
}

func TestQueue_ShowsImmediatelyWhenIdle(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	q.Enqueue(Message{Text: "saved", Level: LevelSuccess, Duration: time.Minute})

	msg, backlog := q.Current()
	require.NotNil(t, msg)
	assert.Equal(t, "saved", msg.Text)
	assert.Equal(t, LevelSuccess, msg.Level)
	assert.Zero(t, backlog)
}

func TestQueue_FIFOOrder(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	q.Enqueue(Message{Text: "A", Duration: 30 * time.Millisecond})
	q.Enqueue(Message{Text: "B", Duration: 30 * time.Millisecond})
	q.Enqueue(Message{Text: "C", Duration: 30 * time.Millisecond})

	msg, backlog := q.Current()
	require.NotNil(t, msg)
	assert.Equal(t, "A", msg.Text)
	assert.Equal(t, 2, backlog)

	waitForCurrent(t, q, "B")
	waitForCurrent(t, q, "C")
	waitForIdle(t, q)
}

func TestQueue_AutoDismiss(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	q.Enqueue(Message{Text: "fleeting", Duration: 20 * time.Millisecond})
	waitForIdle(t, q)
}

func TestQueue_ManualDismissAdvancesBacklog(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	q.Enqueue(Message{Text: "first", Duration: time.Minute})
	q.Enqueue(Message{Text: "second", Duration: time.Minute})

	q.Dismiss()
	// The idle gap keeps the slot empty briefly before the backlog advances.
	msg, _ := q.Current()
	assert.Nil(t, msg)

	waitForCurrent(t, q, "second")
}

func TestQueue_DismissWhenIdleIsNoop(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	q.Dismiss()
	msg, backlog := q.Current()
	assert.Nil(t, msg)
	assert.Zero(t, backlog)
}

func TestQueue_EnqueueDuringGapKeepsFIFO(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	q.Enqueue(Message{Text: "A", Duration: time.Minute})
	q.Enqueue(Message{Text: "B", Duration: time.Minute})
	q.Dismiss()

	// Arrives inside the idle gap; it must not jump ahead of B.
	q.Enqueue(Message{Text: "C", Duration: time.Minute})

	waitForCurrent(t, q, "B")
	q.Dismiss()
	waitForCurrent(t, q, "C")
}

func TestQueue_DefaultsApplied(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	q.Enqueue(Message{Text: "plain"})
	msg, _ := q.Current()
	require.NotNil(t, msg)
	assert.Equal(t, LevelInfo, msg.Level)
}

func TestQueue_CloseStopsEverything(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Message{Text: "A", Duration: 10 * time.Millisecond})
	q.Enqueue(Message{Text: "B", Duration: 10 * time.Millisecond})
	q.Close()

	msg, backlog := q.Current()
	assert.Nil(t, msg)
	assert.Zero(t, backlog)

	// Late enqueues after Close are dropped.
	q.Enqueue(Message{Text: "C"})
	msg, _ = q.Current()
	assert.Nil(t, msg)
}
