package databuf

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
)

// Reader exposes the buffer's readable bytes as an io.ReadCloser. The read
// cursor is shared: reading through the returned view advances the buffer's
// read position. If releaseOnClose is true, closing the view releases the
// buffer. Reading after Close reports ErrClosedView.
func (b *Buffer) Reader(releaseOnClose bool) io.ReadCloser {
	return &bufferReader{buf: b, releaseOnClose: releaseOnClose}
}

type bufferReader struct {
	buf            *Buffer
	releaseOnClose bool
	closed         bool
}

func (r *bufferReader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, fmt.Errorf("databuf: read from closed reader: %w", ErrClosedView)
	}
	return r.buf.Read(p)
}

func (r *bufferReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.releaseOnClose {
		return r.buf.Release()
	}
	return nil
}

// Writer exposes the buffer as an io.WriteCloser. The write cursor is
// shared: writing through the returned view appends to the buffer and
// advances its write position. Writing after Close reports ErrClosedView.
func (b *Buffer) Writer() io.WriteCloser {
	return &bufferWriter{buf: b}
}

type bufferWriter struct {
	buf    *Buffer
	closed bool
}

func (w *bufferWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("databuf: write to closed writer: %w", ErrClosedView)
	}
	return w.buf.Write(p)
}

func (w *bufferWriter) WriteByte(c byte) error {
	if w.closed {
		return fmt.Errorf("databuf: write to closed writer: %w", ErrClosedView)
	}
	return w.buf.WriteByte(c)
}

func (w *bufferWriter) Close() error {
	w.closed = true
	return nil
}

// TextWriter is an io.WriteCloser that encodes UTF-8 text into the buffer
// with a charset. Encoder state is kept between calls, so a multi-byte
// character split across Write calls is encoded correctly. Close flushes any
// pending partial input (substituting an incomplete trailing character) and
// must be called to complete the stream.
type TextWriter struct {
	buf     *Buffer
	enc     *encoding.Encoder
	pending []byte
	closed  bool
}

// TextWriter returns a charset-encoding writer view over the buffer's write
// cursor.
func (b *Buffer) TextWriter(cs Charset) *TextWriter {
	return &TextWriter{buf: b, enc: cs.newEncoder()}
}

// Write encodes p, which may end mid-character; the remainder is held until
// the next Write or Close. It reports len(p) consumed on success.
func (w *TextWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("databuf: write to closed text writer: %w", ErrClosedView)
	}
	src := p
	if len(w.pending) > 0 {
		src = append(w.pending, p...)
	}
	_, consumed, err := w.buf.encode(w.enc, src, false)
	if err != nil {
		return 0, err
	}
	// Copy the leftover: p belongs to the caller after Write returns.
	w.pending = append(w.pending[:0], src[consumed:]...)
	return len(p), nil
}

// WriteString encodes s. It implements io.StringWriter.
func (w *TextWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Close flushes pending input through the encoder. It is idempotent.
func (w *TextWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, _, err := w.buf.encode(w.enc, w.pending, true)
	w.pending = nil
	return err
}
