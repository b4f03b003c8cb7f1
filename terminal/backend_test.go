package terminal

import (
	"bytes"
	"errors"
	"sync"
)

// fakeBackend records output and replays scripted input chunks
type fakeBackend struct {
	mu       sync.Mutex
	out      bytes.Buffer
	width    int
	height   int
	sizeErr  error
	writeErr error
	initErr  error

	inited bool
	fini   int
	input  chan []byte
}

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{width: w, height: h, input: make(chan []byte, 16)}
}

func (f *fakeBackend) Init() error {
	if f.initErr != nil {
		return f.initErr
	}
	f.inited = true
	return nil
}

func (f *fakeBackend) Fini() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fini++
	return nil
}

func (f *fakeBackend) Size() (int, int, error) {
	if f.sizeErr != nil {
		return 0, 0, f.sizeErr
	}
	return f.width, f.height, nil
}

func (f *fakeBackend) Write(p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.out.Write(p)
	return nil
}

func (f *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, nil
	case data, ok := <-f.input:
		if !ok {
			return nil, ErrClosed
		}
		return data, nil
	}
}

func (f *fakeBackend) output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

func (f *fakeBackend) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out.Reset()
}

var errBroken = errors.New("broken pipe")
