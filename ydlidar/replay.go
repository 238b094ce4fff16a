package ydlidar

import (
	"bytes"
	"io"
	"sync"
)

// ReplayTransport is a Transport that plays back a recorded byte stream,
// such as a capture of the serial line. Bytes become available in chunks on
// each BytesAvailable poll. Everything written is recorded.
type ReplayTransport struct {
	mu       sync.Mutex
	data     []byte
	pos      int // next byte to read
	released int // bytes up to here are available
	chunk    int
	loop     bool
	closed   bool
	written  bytes.Buffer
}

// NewReplayTransport returns a transport replaying data. By default all data
// is available on the first poll.
func NewReplayTransport(data []byte) *ReplayTransport {
	return &ReplayTransport{data: append([]byte(nil), data...)}
}

// SetChunkSize limits how many bytes arrive per poll. Zero releases all.
func (r *ReplayTransport) SetChunkSize(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunk = n
}

// SetLoop restarts the stream from the beginning once it is exhausted.
func (r *ReplayTransport) SetLoop(loop bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loop = loop
}

// Feed appends bytes to the stream.
func (r *ReplayTransport) Feed(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, p...)
}

// Written returns a copy of everything written to the transport.
func (r *ReplayTransport) Written() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.written.Bytes()...)
}

// Closed reports whether Close was called.
func (r *ReplayTransport) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *ReplayTransport) BytesAvailable() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, io.ErrClosedPipe
	}
	if r.loop && r.pos == len(r.data) && len(r.data) > 0 {
		r.pos, r.released = 0, 0
	}
	if r.chunk <= 0 || r.released+r.chunk > len(r.data) {
		r.released = len(r.data)
	} else {
		r.released += r.chunk
	}
	return r.released - r.pos, nil
}

func (r *ReplayTransport) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, io.ErrClosedPipe
	}
	n := copy(p, r.data[r.pos:r.released])
	r.pos += n
	return n, nil
}

func (r *ReplayTransport) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, io.ErrClosedPipe
	}
	return r.written.Write(p)
}

func (r *ReplayTransport) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
