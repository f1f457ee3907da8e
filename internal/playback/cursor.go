// Package playback moves a cursor through a generated trace and owns the
// single timer that advances it.
package playback

import (
	"time"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

const (
	MinDelay     = 100 * time.Millisecond
	MaxDelay     = 4000 * time.Millisecond
	DelayStep    = 100 * time.Millisecond
	DefaultDelay = 1500 * time.Millisecond
)

// Event reports what a cursor move did.
type Event int

const (
	EventNone Event = iota
	EventAdvanced
	// EventFinished is reported once when the cursor lands on the final step.
	EventFinished
	// EventCelebrate replaces EventFinished when the trace succeeded.
	EventCelebrate
)

func (e Event) String() string {
	switch e {
	case EventAdvanced:
		return "advanced"
	case EventFinished:
		return "finished"
	case EventCelebrate:
		return "celebrate"
	default:
		return "none"
	}
}

// Terminal reports whether e marks arrival on the final step.
func (e Event) Terminal() bool {
	return e == EventFinished || e == EventCelebrate
}

// ClampDelay snaps d into [MinDelay, MaxDelay] on the DelayStep grid.
func ClampDelay(d time.Duration) time.Duration {
	if d < MinDelay {
		return MinDelay
	}
	if d > MaxDelay {
		return MaxDelay
	}
	return (d + DelayStep/2) / DelayStep * DelayStep
}

// Cursor is the playback position over one trace. It is not safe for
// concurrent use.
type Cursor struct {
	tr      trace.Trace
	index   int
	playing bool
	delay   time.Duration
}

func NewCursor() *Cursor {
	return &Cursor{delay: DefaultDelay}
}

// Load replaces the trace, rewinds to the first step and pauses.
func (c *Cursor) Load(tr trace.Trace) {
	c.tr = tr
	c.index = 0
	c.playing = false
}

func (c *Cursor) Trace() trace.Trace { return c.tr }
func (c *Cursor) Len() int           { return len(c.tr) }
func (c *Cursor) Index() int         { return c.index }
func (c *Cursor) Playing() bool      { return c.playing }
func (c *Cursor) Delay() time.Duration {
	return c.delay
}

func (c *Cursor) SetDelay(d time.Duration) {
	c.delay = ClampDelay(d)
}

// AtEnd reports whether the cursor sits on the final step. An empty trace is
// always at its end.
func (c *Cursor) AtEnd() bool {
	return c.index >= c.tr.LastIndex()
}

// Current returns the step under the cursor; an empty trace yields an empty
// step.
func (c *Cursor) Current() trace.Step {
	return c.tr.At(c.index)
}

// Previous returns the step before the cursor, or nil on the first step.
func (c *Cursor) Previous() *trace.Step {
	if c.index == 0 || c.index > len(c.tr) {
		return nil
	}
	s := c.tr[c.index-1]
	return &s
}

// Progress returns the 1-based position and the trace length.
func (c *Cursor) Progress() (int, int) {
	if len(c.tr) == 0 {
		return 0, 0
	}
	return c.index + 1, len(c.tr)
}

func (c *Cursor) Play() bool {
	if len(c.tr) == 0 || c.AtEnd() {
		c.playing = false
		return false
	}
	c.playing = true
	return true
}

func (c *Cursor) Pause() { c.playing = false }

// Toggle flips play/pause and returns the new playing state. Playing from the
// final step is refused.
func (c *Cursor) Toggle() bool {
	if c.playing {
		c.Pause()
		return false
	}
	return c.Play()
}

// Advance is the timer tick: while playing it moves one step forward and
// pauses on arrival at the end.
func (c *Cursor) Advance() Event {
	if !c.playing {
		return EventNone
	}
	if c.AtEnd() {
		c.playing = false
		return EventNone
	}
	return c.moveTo(c.index + 1)
}

func (c *Cursor) Next() Event { return c.moveTo(c.index + 1) }
func (c *Cursor) Prev() Event { return c.moveTo(c.index - 1) }

// Reset rewinds to the first step without changing the play state.
func (c *Cursor) Reset() Event { return c.moveTo(0) }

// Seek moves to i, clamped to the trace bounds.
func (c *Cursor) Seek(i int) Event { return c.moveTo(i) }

func (c *Cursor) moveTo(i int) Event {
	if len(c.tr) == 0 {
		return EventNone
	}
	if i < 0 {
		i = 0
	}
	if last := c.tr.LastIndex(); i > last {
		i = last
	}
	if i == c.index {
		return EventNone
	}
	c.index = i

	if !c.AtEnd() {
		return EventAdvanced
	}
	c.playing = false
	if c.tr.Succeeded() {
		return EventCelebrate
	}
	return EventFinished
}
