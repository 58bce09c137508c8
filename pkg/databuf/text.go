package databuf

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// WriteString encodes s with the given charset directly into the buffer's
// writable region, growing the buffer as needed, and advances the write
// position by the number of bytes produced. Encoding state is carried across
// growth steps, so multi-byte characters are never lost or duplicated when
// the buffer grows mid-encode. Returns the number of bytes written.
func (b *Buffer) WriteString(s string, cs Charset) (int, error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	// Most charsets encode close to 1 byte per input byte; start there and
	// let the grow-resume loop handle the rest.
	if err := b.EnsureWritable(len(s)); err != nil {
		return 0, err
	}
	written, _, err := b.encode(cs.newEncoder(), []byte(s), true)
	return written, err
}

// encode runs enc over src, writing into the buffer at the write position
// and growing on encoder overflow. It returns the bytes written and the
// source bytes consumed. With atEOF false, a trailing partial character is
// left unconsumed for the caller to retry with more input.
func (b *Buffer) encode(enc *encoding.Encoder, src []byte, atEOF bool) (written, consumed int, err error) {
	for {
		nDst, nSrc, terr := enc.Transform(b.storage[b.writePos:len(b.storage)], src[consumed:], atEOF)
		b.writePos += nDst
		written += nDst
		consumed += nSrc
		switch {
		case terr == nil:
			return written, consumed, nil
		case errors.Is(terr, transform.ErrShortDst):
			grow := max(len(src)-consumed, 4)
			if gerr := b.EnsureWritable(grow); gerr != nil {
				return written, consumed, gerr
			}
		case errors.Is(terr, transform.ErrShortSrc) && !atEOF:
			return written, consumed, nil
		default:
			return written, consumed, fmt.Errorf("databuf: encode %w", terr)
		}
	}
}

// String decodes the readable bytes with the given charset. It is a pure
// read: no cursor moves. Malformed bytes are substituted with U+FFFD.
func (b *Buffer) String(cs Charset) (string, error) {
	return b.StringAt(b.readPos, b.ReadableByteCount(), cs)
}

// StringAt decodes length written bytes starting at the absolute index with
// the given charset, without moving any cursor. The range must lie within
// the written region.
func (b *Buffer) StringAt(index, length int, cs Charset) (string, error) {
	if err := b.active(); err != nil {
		return "", err
	}
	if index < 0 || length < 0 || index+length > b.writePos {
		return "", fmt.Errorf("databuf: decode range [%d, %d+%d) outside written range [0, %d): %w",
			index, index, length, b.writePos, ErrOutOfRange)
	}
	out, err := cs.newDecoder().Bytes(b.storage[index : index+length])
	if err != nil {
		return "", fmt.Errorf("databuf: decode %s: %w", cs.Name(), err)
	}
	return string(out), nil
}
