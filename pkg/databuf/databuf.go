package databuf

import (
	"errors"
	"fmt"
	"io"
)

// ErrOutOfRange is returned when a cursor or index argument falls outside its
// permitted bounds.
var ErrOutOfRange = errors.New("out of range")

// ErrCapacity is returned when a growth request cannot be satisfied within the
// factory's capacity limit.
var ErrCapacity = errors.New("capacity limit exceeded")

// ErrReleased is returned when a buffer is used after Release.
var ErrReleased = errors.New("buffer released")

// ErrClosedView is returned when a view (reader, writer, or byte-view
// iterator) is used after it has been closed.
var ErrClosedView = errors.New("view closed")

// ErrIteratorDone is returned by ByteViews.Next when iteration is complete.
var ErrIteratorDone = errors.New("iterator done")

// Buffer is a growable byte buffer with independent read and write cursors.
//
// The zero value is not usable; buffers are created through a Factory (or the
// package-level New and Wrap helpers). All methods must be called from a
// single goroutine at a time.
type Buffer struct {
	fac      Factory
	storage  []byte // len(storage) == capacity
	readPos  int
	writePos int

	chunk    int  // view chunk size, from the factory
	maxCap   int  // growth ceiling, from the factory
	poolable bool // storage may be returned to the factory pool
	released bool
}

// Factory returns the Factory that created this buffer. Callers that need
// more buffers of the matching kind can allocate them through it.
func (b *Buffer) Factory() Factory {
	return b.fac
}

// Capacity returns the number of bytes this buffer can currently contain.
func (b *Buffer) Capacity() int {
	return len(b.storage)
}

// ReadableByteCount returns the number of bytes available for reading,
// i.e. WritePosition() - ReadPosition().
func (b *Buffer) ReadableByteCount() int {
	return b.writePos - b.readPos
}

// WritableByteCount returns the number of bytes that can be written before
// the buffer has to grow, i.e. Capacity() - WritePosition().
func (b *Buffer) WritableByteCount() int {
	return len(b.storage) - b.writePos
}

// ReadPosition returns the position from which this buffer reads.
func (b *Buffer) ReadPosition() int {
	return b.readPos
}

// SetReadPosition sets the read position. The position must lie in
// [0, WritePosition()]; anything else is rejected with ErrOutOfRange.
func (b *Buffer) SetReadPosition(p int) error {
	if err := b.active(); err != nil {
		return err
	}
	if p < 0 || p > b.writePos {
		return fmt.Errorf("databuf: read position %d outside [0, %d]: %w", p, b.writePos, ErrOutOfRange)
	}
	b.readPos = p
	return nil
}

// WritePosition returns the position at which this buffer writes.
func (b *Buffer) WritePosition() int {
	return b.writePos
}

// SetWritePosition sets the write position. The position must lie in
// [ReadPosition(), Capacity()]; anything else is rejected with ErrOutOfRange.
func (b *Buffer) SetWritePosition(p int) error {
	if err := b.active(); err != nil {
		return err
	}
	if p < b.readPos || p > len(b.storage) {
		return fmt.Errorf("databuf: write position %d outside [%d, %d]: %w", p, b.readPos, len(b.storage), ErrOutOfRange)
	}
	b.writePos = p
	return nil
}

// EnsureWritable grows the buffer, if necessary, so that at least n more
// bytes can be written without another allocation. Growth is geometric, so
// the amortized copy cost over repeated small writes is constant per byte.
// Capacity never shrinks.
func (b *Buffer) EnsureWritable(n int) error {
	if err := b.active(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("databuf: ensure writable %d: %w", n, ErrOutOfRange)
	}
	if b.WritableByteCount() >= n {
		return nil
	}
	needed := b.writePos + n
	if needed > b.maxCap || needed < 0 { // < 0: int overflow
		return fmt.Errorf("databuf: cannot grow to %d bytes (limit %d): %w", needed, b.maxCap, ErrCapacity)
	}
	grown := max(len(b.storage), minCapacity)
	for grown < needed {
		if grown > b.maxCap/2 {
			break
		}
		grown *= 2
	}
	grown = min(max(grown, needed), b.maxCap)
	next := b.fac.obtain(grown)
	copy(next, b.storage)
	if b.poolable {
		b.fac.reclaim(b.storage)
	}
	b.storage = next
	b.poolable = true
	return nil
}

// ByteAt returns the byte at the given absolute index without moving any
// cursor. Indexes at or beyond the write position read bytes that were never
// written and are rejected with ErrOutOfRange.
func (b *Buffer) ByteAt(i int) (byte, error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	if i < 0 || i >= b.writePos {
		return 0, fmt.Errorf("databuf: index %d outside written range [0, %d): %w", i, b.writePos, ErrOutOfRange)
	}
	return b.storage[i], nil
}

// ReadByte consumes and returns the byte at the read position. It implements
// io.ByteReader and returns io.EOF when no bytes are readable.
func (b *Buffer) ReadByte() (byte, error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	if b.readPos == b.writePos {
		return 0, io.EOF
	}
	c := b.storage[b.readPos]
	b.readPos++
	return c, nil
}

// Read copies readable bytes into p, advancing the read position by the
// number of bytes copied. It implements io.Reader: it returns the short
// count min(len(p), ReadableByteCount()) and io.EOF when nothing is
// readable.
func (b *Buffer) Read(p []byte) (int, error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	if b.readPos == b.writePos {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.storage[b.readPos:b.writePos])
	b.readPos += n
	return n, nil
}

// Discard drops up to n readable bytes without copying them. If fewer than n
// bytes are readable, all readable bytes are dropped.
func (b *Buffer) Discard(n int) error {
	if err := b.active(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("databuf: discard %d: %w", n, ErrOutOfRange)
	}
	b.readPos += min(n, b.ReadableByteCount())
	return nil
}

// WriteByte appends a single byte at the write position, growing the buffer
// if needed. It implements io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	if err := b.EnsureWritable(1); err != nil {
		return err
	}
	b.storage[b.writePos] = c
	b.writePos++
	return nil
}

// Write appends p at the write position, growing the buffer if needed, and
// advances the write position by len(p). It implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.EnsureWritable(len(p)); err != nil {
		return 0, err
	}
	n := copy(b.storage[b.writePos:], p)
	b.writePos += n
	return n, nil
}

// WriteBuffers appends the readable bytes of each given buffer at the write
// position. The source buffers' cursors are not moved; releasing them
// remains the caller's responsibility.
func (b *Buffer) WriteBuffers(bufs ...*Buffer) error {
	total := 0
	for _, src := range bufs {
		if err := src.active(); err != nil {
			return err
		}
		total += src.ReadableByteCount()
	}
	if err := b.EnsureWritable(total); err != nil {
		return err
	}
	for _, src := range bufs {
		n := copy(b.storage[b.writePos:], src.storage[src.readPos:src.writePos])
		b.writePos += n
	}
	return nil
}

// Split divides this buffer in two at the given index. Bytes before index
// are returned in a new buffer; this buffer keeps the bytes at and after
// index. Storage is shared between the two halves, so no copy takes place;
// while both halves are alive, at most one of them may be mutated.
//
// The returned buffer's cursors are clamped to its capacity (index). This
// buffer's cursors are rebased: positions below index reset to 0, others
// shift down by index. The index must lie in [0, Capacity()].
func (b *Buffer) Split(index int) (*Buffer, error) {
	if err := b.active(); err != nil {
		return nil, err
	}
	if index < 0 || index > len(b.storage) {
		return nil, fmt.Errorf("databuf: split index %d outside [0, %d]: %w", index, len(b.storage), ErrOutOfRange)
	}
	front := &Buffer{
		fac: b.fac,
		// Full slice expression: growing either half later reallocates
		// instead of writing past the split boundary.
		storage:  b.storage[0:index:index],
		readPos:  min(b.readPos, index),
		writePos: min(b.writePos, index),
		chunk:    b.chunk,
		maxCap:   b.maxCap,
	}
	b.storage = b.storage[index:]
	b.readPos = max(b.readPos-index, 0)
	b.writePos = max(b.writePos-index, 0)
	// Both halves alias one allocation; neither may go back to a pool.
	b.poolable = false
	return front, nil
}

// IndexOf returns the absolute index of the first written byte at or after
// from that satisfies pred, or -1 if none does. A from outside the written
// range yields -1, not an error; negative from is treated as 0.
func (b *Buffer) IndexOf(pred func(byte) bool, from int) int {
	if b.released {
		return -1
	}
	from = max(from, 0)
	for i := from; i < b.writePos; i++ {
		if pred(b.storage[i]) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the absolute index of the last written byte at or
// before from that satisfies pred, or -1 if none does. A from beyond the
// written range is clamped to the last written byte.
func (b *Buffer) LastIndexOf(pred func(byte) bool, from int) int {
	if b.released {
		return -1
	}
	for i := min(from, b.writePos-1); i >= 0; i-- {
		if pred(b.storage[i]) {
			return i
		}
	}
	return -1
}

// CopyTo copies readable bytes into dst without moving any cursor. It
// returns the number of bytes copied, min(len(dst), ReadableByteCount()).
func (b *Buffer) CopyTo(dst []byte) (int, error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	return copy(dst, b.storage[b.readPos:b.writePos]), nil
}

// CopyRange copies length written bytes starting at the absolute index
// srcPos into dst without moving any cursor. The range must lie entirely
// within the written region and within dst.
func (b *Buffer) CopyRange(srcPos int, dst []byte, length int) error {
	if err := b.active(); err != nil {
		return err
	}
	if srcPos < 0 || length < 0 || srcPos+length > b.writePos {
		return fmt.Errorf("databuf: copy range [%d, %d+%d) outside written range [0, %d): %w",
			srcPos, srcPos, length, b.writePos, ErrOutOfRange)
	}
	if length > len(dst) {
		return fmt.Errorf("databuf: copy range %d bytes into %d-byte destination: %w", length, len(dst), ErrOutOfRange)
	}
	copy(dst, b.storage[srcPos:srcPos+length])
	return nil
}

// Bytes returns the readable bytes as a view into the buffer's storage. The
// slice is valid only until the next mutating operation; callers must not
// modify it.
func (b *Buffer) Bytes() []byte {
	if b.released {
		return nil
	}
	return b.storage[b.readPos:b.writePos]
}

// Clear resets both cursors to zero. Stored bytes are not erased and
// capacity is retained for reuse. Clear is idempotent.
func (b *Buffer) Clear() {
	b.readPos = 0
	b.writePos = 0
}

// Release returns the buffer's storage to its factory and poisons the
// buffer: every subsequent fallible operation reports ErrReleased. Releasing
// twice is an error.
func (b *Buffer) Release() error {
	if err := b.active(); err != nil {
		return err
	}
	b.released = true
	if b.poolable {
		b.fac.reclaim(b.storage)
	}
	b.storage = nil
	b.readPos = 0
	b.writePos = 0
	return nil
}

func (b *Buffer) active() error {
	if b.released {
		return fmt.Errorf("databuf: use of released buffer: %w", ErrReleased)
	}
	return nil
}
