package terminal

// Backend abstracts platform-specific terminal operations
type Backend interface {
	// Lifecycle
	Init() error
	Fini() error

	// Size returns the current terminal dimensions
	Size() (width, height int, err error)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs.
	// A nil slice with nil error means the stop channel fired or the poll timed out.
	Read(stopCh <-chan struct{}) ([]byte, error)
}

// backendWriter adapts Backend to io.Writer for the buffered output path
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
