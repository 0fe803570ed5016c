// Package hci implements the typed packet codec and domain types of the
// Bluetooth Low Energy Host Controller Interface, per Core Specification
// 6.0, Vol. 4, Part E.
package hci

import "encoding/binary"

// Buffer is a fixed-capacity, append-only write cursor. It never grows and
// never silently truncates: every write either fits or returns
// ErrBufferTooSmall, mirroring the teacher's pattern of preallocating a
// single byte slice (hci.buf / hci.writebuf) and bounds-checking every
// write against it.
type Buffer struct {
	data   []byte
	offset int
}

// NewBuffer allocates a Buffer with the given fixed capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, capacity)}
}

// Clear resets the write cursor to the start of the buffer without
// reallocating.
func (b *Buffer) Clear() {
	b.offset = 0
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return b.offset
}

// Cap returns the buffer's fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Remaining returns the number of bytes that can still be written.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.offset
}

// Bytes returns the bytes written so far. The returned slice aliases the
// buffer's backing array and is invalidated by the next write or Clear.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.offset]
}

// TryPushUint8 appends a single byte.
func (b *Buffer) TryPushUint8(v uint8) error {
	if b.Remaining() < 1 {
		return ErrBufferTooSmall
	}
	b.data[b.offset] = v
	b.offset++
	return nil
}

// CopyFromSlice appends src verbatim.
func (b *Buffer) CopyFromSlice(src []byte) error {
	if b.Remaining() < len(src) {
		return ErrBufferTooSmall
	}
	copy(b.data[b.offset:], src)
	b.offset += len(src)
	return nil
}

// EncodeLEUint16 appends v little-endian.
func (b *Buffer) EncodeLEUint16(v uint16) error {
	if b.Remaining() < 2 {
		return ErrBufferTooSmall
	}
	binary.LittleEndian.PutUint16(b.data[b.offset:], v)
	b.offset += 2
	return nil
}

// EncodeLEUint32 appends v little-endian.
func (b *Buffer) EncodeLEUint32(v uint32) error {
	if b.Remaining() < 4 {
		return ErrBufferTooSmall
	}
	binary.LittleEndian.PutUint32(b.data[b.offset:], v)
	b.offset += 4
	return nil
}

// EncodeLEUint64 appends v little-endian.
func (b *Buffer) EncodeLEUint64(v uint64) error {
	if b.Remaining() < 8 {
		return ErrBufferTooSmall
	}
	binary.LittleEndian.PutUint64(b.data[b.offset:], v)
	b.offset += 8
	return nil
}

// EncodeLEUint128 appends a 128-bit little-endian value given as two
// 64-bit halves (lo first on the wire).
func (b *Buffer) EncodeLEUint128(lo, hi uint64) error {
	if b.Remaining() < 16 {
		return ErrBufferTooSmall
	}
	binary.LittleEndian.PutUint64(b.data[b.offset:], lo)
	binary.LittleEndian.PutUint64(b.data[b.offset+8:], hi)
	b.offset += 16
	return nil
}

// Encodable is implemented by every value type that serializes to HCI
// wire bytes. EncodedSize must equal the number of bytes a successful
// Encode call would write.
type Encodable interface {
	Encode(buf *Buffer) (int, error)
	EncodedSize() int
}
