package storage

import (
	"sync"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

// flushEvery is the buffered entry count that wakes the writer.
const flushEvery = 128

// Recorder journals a running loop into a Store. It implements
// engine.Recorder. Record only buffers; a writer goroutine appends full
// batches, so the tick never waits on the database. Write errors do not stop
// the game; the first one is kept and returned by Flush and Finish.
type Recorder struct {
	store *Store
	run   Run

	mu      sync.Mutex
	pending []engine.JournalEntry
	err     error
	done    bool

	// writeMu orders batches taken by the writer, Flush and Finish
	writeMu sync.Mutex
	wake    chan struct{}
	stopped chan struct{}
}

// NewRecorder begins a run and returns a recorder for it.
func (s *Store) NewRecorder(gameID string, seed int64, tickRate int, difficulty string) (*Recorder, error) {
	run, err := s.BeginRun(gameID, seed, tickRate, difficulty)
	if err != nil {
		return nil, err
	}
	r := &Recorder{
		store:   s,
		run:     run,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go r.writer()
	return r, nil
}

// Run returns the run being recorded.
func (r *Recorder) Run() Run {
	return r.run
}

// Record implements engine.Recorder.
func (r *Recorder) Record(frame int64, events []core.InputEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}
	for _, ev := range events {
		r.pending = append(r.pending, engine.JournalEntry{Frame: frame, Event: ev})
	}
	if len(r.pending) >= flushEvery {
		select {
		case r.wake <- struct{}{}:
		default:
		}
	}
}

// Flush writes buffered entries and waits for the write.
func (r *Recorder) Flush() error {
	r.write()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) writer() {
	defer close(r.stopped)
	for range r.wake {
		r.write()
	}
}

// write appends everything buffered so far as one batch.
func (r *Recorder) write() {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()
	if len(batch) == 0 {
		return
	}

	err := r.store.AppendEvents(r.run.ID, batch)
	r.setErr(err)
}

func (r *Recorder) setErr(err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.mu.Unlock()
}

// Finish stops the writer, writes the remaining entries and the run's
// result. Later Record calls are ignored.
func (r *Recorder) Finish(frames int64, phase engine.Phase, score int) error {
	r.mu.Lock()
	if r.done {
		err := r.err
		r.mu.Unlock()
		return err
	}
	r.done = true
	close(r.wake)
	r.mu.Unlock()

	<-r.stopped
	r.write()
	r.setErr(r.store.FinishRun(r.run.ID, frames, phase, score))

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
