package engine

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// Runner schedules a loop on its own goroutine at a fixed tick rate.
// Snapshots are published on a single-slot channel that always holds the
// latest frame.
type Runner struct {
	loop     *Loop
	interval time.Duration
	frames   chan Snapshot
	cmds     chan func(*Loop)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewRunner creates a runner for loop. A non-positive tick rate uses 60.
func NewRunner(loop *Loop, tickRate int) *Runner {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Runner{
		loop:     loop,
		interval: time.Second / time.Duration(tickRate),
		frames:   make(chan Snapshot, 1),
		cmds:     make(chan func(*Loop), 8),
		done:     make(chan struct{}),
	}
}

// Start launches the tick goroutine. It runs until ctx is cancelled or Stop
// is called. Calling Start twice has no effect.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true
	ctx, r.cancel = context.WithCancel(ctx)
	go r.run(ctx)
}

// Stop cancels the tick goroutine and waits for it to exit. No tick fires
// after Stop returns. Stop on a runner that was never started is a no-op.
func (r *Runner) Stop() {
	r.mu.Lock()
	started, cancel := r.started, r.cancel
	r.mu.Unlock()
	if !started {
		return
	}
	cancel()
	<-r.done
}

// Done is closed once the tick goroutine has exited.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Frames delivers snapshots. It is closed when the runner stops.
func (r *Runner) Frames() <-chan Snapshot {
	return r.frames
}

// Post buffers input events for the next tick.
func (r *Runner) Post(evs ...core.InputEvent) {
	r.loop.Input().Post(evs...)
}

// Reset queues a reset on the loop goroutine, or resets at once before Start.
func (r *Runner) Reset() { r.do(func(l *Loop) { l.Reset() }) }

// Pause pauses the loop at the next tick boundary.
func (r *Runner) Pause() { r.do(func(l *Loop) { l.Pause() }) }

// Resume resumes the loop at the next tick boundary.
func (r *Runner) Resume() { r.do(func(l *Loop) { l.Resume() }) }

// do runs fn on the tick goroutine. Before Start the loop has no owner, so
// fn is applied immediately.
func (r *Runner) do(fn func(*Loop)) {
	r.mu.Lock()
	if !r.started {
		r.loop.guard(func() { fn(r.loop) })
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	select {
	case r.cmds <- fn:
	case <-r.done:
	}
}

func (r *Runner) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer func() {
		ticker.Stop()
		close(r.frames)
		close(r.done)
	}()

	r.publish(r.loop.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-r.cmds:
			r.loop.guard(func() { fn(r.loop) })
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			r.publish(r.loop.Tick())
		}
	}
}

// publish replaces any unread frame with s.
func (r *Runner) publish(s Snapshot) {
	select {
	case r.frames <- s:
		return
	default:
	}
	select {
	case <-r.frames:
	default:
	}
	select {
	case r.frames <- s:
	default:
	}
}
