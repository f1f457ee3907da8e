package playback

import (
	"context"
	"sync"
	"time"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

// StepFunc receives every step the player lands on while running.
type StepFunc func(index int, step trace.Step, ev Event)

// Player drives a Cursor from a Scheduler without a UI. It is safe for
// concurrent use: Load, SetDelay and Toggle may be called while Run blocks.
type Player struct {
	mu      sync.Mutex
	cursor  *Cursor
	sched   Scheduler
	changed chan struct{}
}

func NewPlayer() *Player {
	return &Player{
		cursor:  NewCursor(),
		changed: make(chan struct{}, 1),
	}
}

// Load replaces the trace and pauses.
func (p *Player) Load(tr trace.Trace) {
	p.sched.Cancel()
	p.mu.Lock()
	p.cursor.Load(tr)
	p.mu.Unlock()
	p.notify()
}

func (p *Player) SetDelay(d time.Duration) {
	p.sched.Cancel()
	p.mu.Lock()
	p.cursor.SetDelay(d)
	p.mu.Unlock()
	p.notify()
}

func (p *Player) Toggle() bool {
	p.sched.Cancel()
	p.mu.Lock()
	playing := p.cursor.Toggle()
	p.mu.Unlock()
	p.notify()
	return playing
}

func (p *Player) Pause() {
	p.sched.Cancel()
	p.mu.Lock()
	p.cursor.Pause()
	p.mu.Unlock()
	p.notify()
}

func (p *Player) Delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor.Delay()
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor.Playing()
}

func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor.Index()
}

// Run starts playback and blocks until the final step is reached, playback is
// paused or ctx is done. onStep is called outside the player lock.
func (p *Player) Run(ctx context.Context, onStep StepFunc) error {
	p.mu.Lock()
	playing := p.cursor.Play()
	p.mu.Unlock()
	if !playing {
		return nil
	}

	for {
		p.mu.Lock()
		if !p.cursor.Playing() {
			p.mu.Unlock()
			return nil
		}
		delay := p.cursor.Delay()
		p.mu.Unlock()

		fired := make(chan struct{})
		p.sched.Arm(delay, func() { close(fired) })

		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-p.changed:
			continue
		case <-fired:
		}

		p.mu.Lock()
		ev := p.cursor.Advance()
		idx, step := p.cursor.Index(), p.cursor.Current()
		p.mu.Unlock()

		if ev == EventNone {
			return nil
		}
		if onStep != nil {
			onStep(idx, step, ev)
		}
		if ev.Terminal() {
			return nil
		}
	}
}

func (p *Player) notify() {
	select {
	case p.changed <- struct{}{}:
	default:
	}
}
