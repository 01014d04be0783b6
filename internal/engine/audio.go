package engine

import (
	"github.com/charmbracelet/log"
)

// Cue is a sound effect kind. Playing one is fire-and-forget.
type Cue int

const (
	CueNone Cue = iota
	CueMove
	CueJump
	CueCollect
	CueHit
	CueWin
	CueComplete
	CueWind
	CueShell
	CuePlace
	CueStir
	CueScore
)

var cueNames = map[Cue]string{
	CueNone:     "none",
	CueMove:     "move",
	CueJump:     "jump",
	CueCollect:  "collect",
	CueHit:      "hit",
	CueWin:      "win",
	CueComplete: "complete",
	CueWind:     "wind",
	CueShell:    "shell",
	CuePlace:    "place",
	CueStir:     "stir",
	CueScore:    "score",
}

func (c Cue) String() string {
	if n, ok := cueNames[c]; ok {
		return n
	}
	return "unknown"
}

// AudioSink plays cues. Implementations may be slow or fail; the engine never
// waits for them.
type AudioSink interface {
	Play(c Cue)
}

// NopAudio discards every cue.
type NopAudio struct{}

// Play implements AudioSink.
func (NopAudio) Play(Cue) {}

// AudioFunc adapts a function to AudioSink.
type AudioFunc func(Cue)

// Play implements AudioSink.
func (f AudioFunc) Play(c Cue) { f(c) }

// AsyncAudio delivers cues to a sink from its own goroutine.
// Play never blocks: when the queue is full the cue is dropped.
type AsyncAudio struct {
	sink   AudioSink
	queue  chan Cue
	done   chan struct{}
	logger *log.Logger
}

// NewAsyncAudio starts a delivery goroutine for sink. Call Close to stop it.
func NewAsyncAudio(sink AudioSink, buffer int, logger *log.Logger) *AsyncAudio {
	if buffer <= 0 {
		buffer = 16
	}
	a := &AsyncAudio{
		sink:   sink,
		queue:  make(chan Cue, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
	go a.run()
	return a
}

func (a *AsyncAudio) run() {
	defer close(a.done)
	for c := range a.queue {
		a.deliver(c)
	}
}

func (a *AsyncAudio) deliver(c Cue) {
	defer func() {
		if r := recover(); r != nil && a.logger != nil {
			a.logger.Warn("audio sink failed", "cue", c, "panic", r)
		}
	}()
	a.sink.Play(c)
}

// Play queues c without blocking.
func (a *AsyncAudio) Play(c Cue) {
	select {
	case a.queue <- c:
	default:
		if a.logger != nil {
			a.logger.Debug("audio cue dropped", "cue", c)
		}
	}
}

// Close stops delivery after draining queued cues.
func (a *AsyncAudio) Close() {
	close(a.queue)
	<-a.done
}

// safePlay calls sink without letting a panic escape into the tick.
func safePlay(sink AudioSink, c Cue, logger *log.Logger) {
	if sink == nil || c == CueNone {
		return
	}
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Warn("audio sink failed", "cue", c, "panic", r)
		}
	}()
	sink.Play(c)
}
