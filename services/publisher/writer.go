package publisher

import (
	"io"
	"sync"
)

// WriterPublisher writes each message as one line to an io.Writer. It backs
// dry runs, where jobs go to stdout instead of a stream.
type WriterPublisher struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterPublisher creates a publisher writing to w
func NewWriterPublisher(w io.Writer) *WriterPublisher {
	return &WriterPublisher{w: w}
}

// Publish writes message followed by a newline; key is not written
func (p *WriterPublisher) Publish(_ string, message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.w.Write(message); err != nil {
		return err
	}
	_, err := p.w.Write([]byte("\n"))
	return err
}

// TrimStreams is a no-op
func (p *WriterPublisher) TrimStreams() error {
	return nil
}

// Close is a no-op
func (p *WriterPublisher) Close() error {
	return nil
}
