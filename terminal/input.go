package terminal

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey    EventType = iota
	EventError            // Read error
	EventClosed           // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type EventType
	Key  Key
	Rune rune
	Err  error // For EventError
}

// IsRune reports whether the event is a key press of the printable rune r
func (e Event) IsRune(r rune) bool {
	return e.Type == EventKey && e.Key == KeyRune && e.Rune == r
}

// inputReader handles raw stdin parsing
type inputReader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly so partial UTF-8 and escape sequences survive read boundaries
	buf []byte
}

// escapeTimeout bounds the wait after a lone ESC before it is reported as a key
const escapeTimeout = 50 * time.Millisecond

func newInputReader(backend Backend, bufSize int) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan Event, bufSize),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

// stop signals the reader to stop
func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	// Wait with timeout - don't block forever if read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
	}
}

func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	escSince := time.Time{}

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				r.sendEvent(Event{Type: EventClosed})
			} else {
				r.sendEvent(Event{Type: EventError, Err: err})
			}
			return
		}

		if len(data) == 0 {
			select {
			case <-r.stopCh:
				r.sendEvent(Event{Type: EventClosed})
				return
			default:
			}
			// Poll timeout: a lone ESC that waited long enough is a key press
			if len(r.buf) == 1 && r.buf[0] == 0x1b && !escSince.IsZero() && time.Since(escSince) >= escapeTimeout {
				r.sendEvent(Event{Type: EventKey, Key: KeyEscape})
				r.buf = r.buf[:0]
				escSince = time.Time{}
			}
			continue
		}

		r.buf = append(r.buf, data...)
		consumed := r.parseInput(r.buf)
		if consumed > 0 {
			n := copy(r.buf, r.buf[consumed:])
			r.buf = r.buf[:n]
		}

		if len(r.buf) == 1 && r.buf[0] == 0x1b {
			escSince = time.Now()
		} else {
			escSince = time.Time{}
		}
	}
}

// parseInput parses raw bytes into events and returns bytes consumed (stops on incomplete sequence)
func (r *inputReader) parseInput(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		if b == 0x1b {
			if i+1 >= n {
				return i // Wait for more data
			}
			consumed := escapeLen(data[i:])
			if consumed == 0 {
				return i
			}
			if consumed == 1 {
				r.sendEvent(Event{Type: EventKey, Key: KeyEscape})
			}
			// Longer sequences (arrows, function keys, mouse) carry nothing the rain reacts to
			i += consumed
			continue
		}

		if b < 0x20 {
			r.sendEvent(Event{Type: EventKey, Key: controlKey(b)})
			i++
			continue
		}

		if b == 0x7f {
			r.sendEvent(Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			return i
		}
		rn, size := utf8.DecodeRune(data[i:])
		if rn != utf8.RuneError {
			r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rn})
		}
		i += size
	}
	return i
}

// escapeLen returns the length of the escape sequence at data[0], 0 if incomplete.
// A return of 1 means a standalone ESC followed by an unrelated byte.
func escapeLen(data []byte) int {
	if len(data) < 2 {
		return 0
	}

	switch data[1] {
	case '[':
		// CSI: parameters and intermediates until a final byte in 0x40-0x7e
		for j := 2; j < len(data); j++ {
			if data[j] >= 0x40 && data[j] <= 0x7e {
				return j + 1
			}
			if data[j] < 0x20 {
				return j // Malformed, drop up to the control byte
			}
		}
		return 0
	case 'O':
		// SS3: one final byte
		if len(data) < 3 {
			return 0
		}
		return 3
	case 0x1b:
		return 1
	}

	if data[1] >= 0x20 && data[1] < 0x7f {
		// Alt+printable
		return 2
	}
	return 1
}

func (r *inputReader) sendEvent(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
		// Channel full, drop event
	}
}
