package engine

import (
	"slices"
	"sync"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// JournalEntry is one input event and the frame it was latched at.
type JournalEntry struct {
	Frame int64
	Event core.InputEvent
}

// Journal is an in-memory Recorder.
type Journal struct {
	mu      sync.Mutex
	entries []JournalEntry
}

// Record implements Recorder.
func (j *Journal) Record(frame int64, events []core.InputEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, ev := range events {
		j.entries = append(j.entries, JournalEntry{Frame: frame, Event: ev})
	}
}

// Entries returns a copy of the recorded entries in order.
func (j *Journal) Entries() []JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.entries)
}

// Replay re-simulates a recorded run headless. The rules must be a fresh
// instance and opts must carry the original seed. It returns the snapshot
// after the given number of frames.
func Replay(rules Rules, opts Options, entries []JournalEntry, frames int64) Snapshot {
	opts.Recorder = nil
	l := NewLoop(rules, opts)

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b JournalEntry) int {
		switch {
		case a.Frame < b.Frame:
			return -1
		case a.Frame > b.Frame:
			return 1
		}
		return 0
	})

	snap := l.Snapshot()
	i := 0
	for f := int64(0); f < frames; f++ {
		for i < len(sorted) && sorted[i].Frame <= f {
			l.Input().Post(sorted[i].Event)
			i++
		}
		snap = l.Tick()
	}
	return snap
}
