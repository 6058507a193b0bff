package terminal

import (
	"errors"
	"io"
	"sync"

	"github.com/muesli/cancelreader"
)

const chunkSize = 256

// Pump reads raw input chunks in the background. Stop interrupts a blocked
// read, which lets a foreground child process take over stdin.
type Pump struct {
	cr     cancelreader.CancelReader
	chunks chan []byte
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
	err    error
	// carry is delivered before anything read from cr.
	carry []byte
	// left holds a chunk read but not delivered when the pump stopped.
	left []byte
}

// StartPump starts reading r.
func StartPump(r io.Reader) (*Pump, error) {
	return ResumePump(r, nil)
}

// ResumePump starts reading r after first delivering carry, the bytes a
// previous pump returned from Stop.
func ResumePump(r io.Reader, carry []byte) (*Pump, error) {
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, err
	}
	p := &Pump{
		cr:     cr,
		chunks: make(chan []byte),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		carry:  append([]byte(nil), carry...),
	}
	go p.run()
	return p, nil
}

// Chunks delivers each read as its own slice. It is closed when the input
// ends, fails or the pump is stopped.
func (p *Pump) Chunks() <-chan []byte { return p.chunks }

// Err returns the read error that ended the pump, nil for a clean end of
// input or a stop. Valid once Chunks is closed.
func (p *Pump) Err() error { return p.err }

func (p *Pump) run() {
	defer close(p.done)
	defer close(p.chunks)
	if len(p.carry) > 0 && !p.deliver(p.carry) {
		return
	}
	p.carry = nil
	buf := make([]byte, chunkSize)
	for {
		n, err := p.cr.Read(buf)
		if n > 0 && !p.deliver(append([]byte(nil), buf[:n]...)) {
			return
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) && !errors.Is(err, io.EOF) {
				p.err = err
			}
			return
		}
	}
}

// deliver hands chunk to the consumer. On stop the chunk is kept for Stop
// to return.
func (p *Pump) deliver(chunk []byte) bool {
	select {
	case p.chunks <- chunk:
		return true
	case <-p.stop:
		p.left = chunk
		return false
	}
}

// Stop cancels the pending read and waits for the reader to exit. It
// returns the bytes that were read but not delivered, which belong at the
// front of the next pump's input.
func (p *Pump) Stop() []byte {
	var left []byte
	p.once.Do(func() {
		close(p.stop)
		p.cr.Cancel()
		<-p.done
		_ = p.cr.Close()
		left = p.left
	})
	return left
}
