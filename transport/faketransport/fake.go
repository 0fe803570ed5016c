// Package faketransport provides an in-memory session.Driver for tests:
// it records every packet written to it and serves back a scripted
// sequence of byte slices on Read, the way the pack's own table-driven
// tests phrase fixtures as literal byte vectors rather than live
// hardware.
package faketransport

import (
	"context"
	"sync"
)

// FakeTransport is a session.Driver that never touches real hardware.
// Queue the Controller's expected replies with QueueResponse before
// exercising a Session against it, then inspect Written() for what the
// Session actually sent.
type FakeTransport struct {
	mu        sync.Mutex
	written   [][]byte
	responses [][]byte
	readBuf   []byte
}

// New returns an empty FakeTransport.
func New() *FakeTransport {
	return &FakeTransport{}
}

// QueueResponse appends a full framed HCI packet (or part of one) to the
// sequence Read will serve back.
func (f *FakeTransport) QueueResponse(b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]byte, len(b))
	copy(cp, b)
	f.responses = append(f.responses, cp)
}

// Written returns every byte slice passed to Write, in call order.
func (f *FakeTransport) Written() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.written))
	copy(out, f.written)
	return out
}

func (f *FakeTransport) Write(ctx context.Context, buf []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]byte, len(buf))
	copy(cp, buf)
	f.written = append(f.written, cp)
	return len(buf), nil
}

func (f *FakeTransport) Read(ctx context.Context, buf []byte) (int, error) {
	f.mu.Lock()
	if len(f.readBuf) == 0 {
		if len(f.responses) == 0 {
			f.mu.Unlock()
			<-ctx.Done()
			return 0, ctx.Err()
		}
		f.readBuf = f.responses[0]
		f.responses = f.responses[1:]
	}
	n := copy(buf, f.readBuf)
	f.readBuf = f.readBuf[n:]
	f.mu.Unlock()
	return n, nil
}
