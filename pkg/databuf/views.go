package databuf

import "fmt"

// ByteViews iterates over a range of the buffer's storage as fixed-size
// subslice views. It is returned by ReadableByteViews and WritableByteViews.
//
// Each view yielded by Next is valid only until the next call to Next or
// Close; callers must not retain it. The iterator must be closed on every
// exit path, including early returns; Close is idempotent and releases the
// iterator's hold on the buffer's storage. A ByteViews is confined to the
// goroutine that opened it.
type ByteViews struct {
	buf      *Buffer
	pos, end int
	closed   bool
}

// ReadableByteViews returns an iterator over the readable range
// [ReadPosition(), WritePosition()) in chunks of the factory's view size.
// Reading through the views does not move the read cursor.
func (b *Buffer) ReadableByteViews() *ByteViews {
	return &ByteViews{buf: b, pos: b.readPos, end: b.writePos}
}

// WritableByteViews returns an iterator over the writable range
// [WritePosition(), Capacity()) in chunks of the factory's view size. After
// filling a view the caller advances the cursor with SetWritePosition.
func (b *Buffer) WritableByteViews() *ByteViews {
	return &ByteViews{buf: b, pos: b.writePos, end: len(b.storage)}
}

// Next returns the next view. It returns ErrIteratorDone when the range is
// exhausted and ErrClosedView if the iterator has been closed.
func (it *ByteViews) Next() ([]byte, error) {
	if it.closed {
		return nil, fmt.Errorf("databuf: byte views: %w", ErrClosedView)
	}
	if err := it.buf.active(); err != nil {
		return nil, err
	}
	if it.pos >= it.end {
		return nil, ErrIteratorDone
	}
	n := min(it.buf.chunk, it.end-it.pos)
	view := it.buf.storage[it.pos : it.pos+n : it.pos+n]
	it.pos += n
	return view, nil
}

// Close ends the iteration and drops the iterator's reference to the
// buffer's storage. It is safe to call multiple times.
func (it *ByteViews) Close() {
	it.closed = true
	it.buf = nil
}
