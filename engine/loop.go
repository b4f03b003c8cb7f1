package engine

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rain/core"
	"github.com/lixenwraith/rain/parameter"
	"github.com/lixenwraith/rain/render"
	"github.com/lixenwraith/rain/terminal"
)

// EventSource is the input side of a terminal
type EventSource interface {
	// PollEvent blocks until the next input event
	PollEvent() terminal.Event
}

// FrameRenderer advances the simulation by one tick per call
type FrameRenderer interface {
	DrawNextFrame() error
	Stats() render.FrameStats
}

// StopReason records why the loop ended
type StopReason uint8

const (
	StopNone StopReason = iota
	StopQuitKey
	StopInputClosed
	StopInputError
	StopContext
	StopRenderError
)

var stopReasonNames = [...]string{"none", "quit key", "input closed", "input error", "context done", "render error"}

func (r StopReason) String() string {
	if int(r) < len(stopReasonNames) {
		return stopReasonNames[r]
	}
	return "unknown"
}

// Loop ticks the renderer on a fixed interval until stopped
type Loop struct {
	events   EventSource
	renderer FrameRenderer
	interval time.Duration
	quitKey  rune

	stop atomic.Bool

	mu       sync.Mutex
	reason   StopReason
	inputErr error
	onFrame  []func(render.FrameStats)
}

// NewLoop creates a loop; interval <= 0 uses the compiled-in frame interval
func NewLoop(events EventSource, renderer FrameRenderer, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = parameter.FrameInterval
	}
	return &Loop{
		events:   events,
		renderer: renderer,
		interval: interval,
		quitKey:  parameter.QuitKey,
	}
}

// OnFrame registers fn to receive the stats of every completed frame, on the loop goroutine
func (l *Loop) OnFrame(fn func(render.FrameStats)) {
	l.mu.Lock()
	l.onFrame = append(l.onFrame, fn)
	l.mu.Unlock()
}

// Stop requests the loop to exit after the current frame
func (l *Loop) Stop() {
	l.requestStop(StopQuitKey, nil)
}

// Stopped reports whether a stop was requested
func (l *Loop) Stopped() bool {
	return l.stop.Load()
}

// Reason returns why the loop stopped, StopNone while running
func (l *Loop) Reason() StopReason {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reason
}

func (l *Loop) requestStop(reason StopReason, err error) {
	l.mu.Lock()
	if l.reason == StopNone {
		l.reason = reason
		l.inputErr = err
	}
	l.mu.Unlock()
	l.stop.Store(true)
}

// Run draws frames until the quit key, closed input, an input error, ctx cancellation or a render error.
// Render and input failures are returned; quitting and cancellation return nil.
func (l *Loop) Run(ctx context.Context) error {
	core.Go(l.watchInput)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.mu.Lock()
	observers := slices.Clone(l.onFrame)
	l.mu.Unlock()

	for !l.stop.Load() {
		if err := l.renderer.DrawNextFrame(); err != nil {
			l.requestStop(StopRenderError, nil)
			return fmt.Errorf("draw frame: %w", err)
		}

		stats := l.renderer.Stats()
		for _, fn := range observers {
			fn(stats)
		}
		if stats.Frame%parameter.StatsLogInterval == 0 {
			log.Printf("rain: %s", stats)
		}

		select {
		case <-ctx.Done():
			l.requestStop(StopContext, nil)
		case <-ticker.C:
		}
	}

	l.mu.Lock()
	reason, err := l.reason, l.inputErr
	l.mu.Unlock()

	log.Printf("rain: loop stopped: %s", reason)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// watchInput blocks on terminal input and raises the stop flag on the quit key.
// Every other key is ignored.
func (l *Loop) watchInput() {
	for !l.stop.Load() {
		ev := l.events.PollEvent()
		switch ev.Type {
		case terminal.EventKey:
			if ev.IsRune(l.quitKey) {
				l.requestStop(StopQuitKey, nil)
				return
			}
		case terminal.EventClosed:
			l.requestStop(StopInputClosed, nil)
			return
		case terminal.EventError:
			l.requestStop(StopInputError, ev.Err)
			return
		}
	}
}
