package terminal

import "time"

// Backend abstracts the raw terminal endpoints. The session loop is
// single-threaded, so reads are synchronous with a bounded readiness
// timeout instead of a reader goroutine.
type Backend interface {
	// Lifecycle
	// Init enters raw input mode; Fini restores the previous mode and
	// is safe to call more than once.
	Init() error
	Fini()

	// Size returns terminal dimensions in character cells
	Size() (cols, rows int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// ReadTimeout waits up to d for input and returns whatever bytes are
	// available. A nil slice with nil error means the timeout elapsed;
	// io.EOF means the input stream is closed.
	ReadTimeout(d time.Duration) ([]byte, error)
}
