//go:build !unix

package terminal

// otherBackend stands in where raw mode is unavailable; use the tcell backend there
type otherBackend struct{}

func newBackend() Backend {
	return otherBackend{}
}

func (otherBackend) Init() error                          { return ErrNotTerminal }
func (otherBackend) Fini() error                          { return nil }
func (otherBackend) Size() (int, int, error)              { return 0, 0, ErrNotTerminal }
func (otherBackend) Write([]byte) error                   { return ErrClosed }
func (otherBackend) Read(<-chan struct{}) ([]byte, error) { return nil, ErrClosed }
