package databuf

import (
	"errors"
	"strings"
	"testing"
)

func TestBuffer_WriteStringUTF8(t *testing.T) {
	buf := New(16)
	n, err := buf.WriteString("café", UTF8)
	if err != nil {
		t.Fatalf("WriteString error: %v", err)
	}
	if n != 5 { // 'é' is two bytes in UTF-8
		t.Fatalf("WriteString wrote %d bytes, want 5", n)
	}

	got, err := buf.String(UTF8)
	if err != nil {
		t.Fatalf("String error: %v", err)
	}
	if got != "café" {
		t.Fatalf("String = %q, want %q", got, "café")
	}
}

func TestBuffer_WriteStringGrowsAcrossEncoding(t *testing.T) {
	// Encoding 10k two-byte characters into a 1-byte buffer forces repeated
	// growth mid-encode; no character may be lost or duplicated.
	want := strings.Repeat("é", 10000)

	buf := New(1)
	n, err := buf.WriteString(want, UTF8)
	if err != nil {
		t.Fatalf("WriteString error: %v", err)
	}
	if n != 20000 {
		t.Fatalf("WriteString wrote %d bytes, want 20000", n)
	}

	got, err := buf.String(UTF8)
	if err != nil {
		t.Fatalf("String error: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %d chars, want %d", len(got), len(want))
	}
}

func TestBuffer_WriteStringUTF16(t *testing.T) {
	buf := New(4)
	n, err := buf.WriteString("héllo", UTF16LE)
	if err != nil {
		t.Fatalf("WriteString error: %v", err)
	}
	if n != 10 {
		t.Fatalf("WriteString wrote %d bytes, want 10", n)
	}
	got, err := buf.String(UTF16LE)
	if err != nil {
		t.Fatalf("String error: %v", err)
	}
	if got != "héllo" {
		t.Fatalf("String = %q, want %q", got, "héllo")
	}
}

func TestBuffer_WriteStringLatin1(t *testing.T) {
	buf := New(8)
	n, err := buf.WriteString("café", Latin1)
	if err != nil {
		t.Fatalf("WriteString error: %v", err)
	}
	if n != 4 { // single byte per character in ISO-8859-1
		t.Fatalf("WriteString wrote %d bytes, want 4", n)
	}
	c, err := buf.ByteAt(3)
	if err != nil || c != 0xE9 {
		t.Fatalf("ByteAt(3) = (%#x, %v), want (0xe9, nil)", c, err)
	}
	got, err := buf.String(Latin1)
	if err != nil || got != "café" {
		t.Fatalf("String = (%q, %v), want (café, nil)", got, err)
	}
}

func TestBuffer_WriteStringUnmappable(t *testing.T) {
	// '€' has no ISO-8859-1 mapping; it must be substituted, not fatal.
	buf := New(8)
	n, err := buf.WriteString("a€b", Latin1)
	if err != nil {
		t.Fatalf("WriteString error: %v", err)
	}
	if n != 3 {
		t.Fatalf("WriteString wrote %d bytes, want 3", n)
	}
	a, _ := buf.ByteAt(0)
	b, _ := buf.ByteAt(2)
	if a != 'a' || b != 'b' {
		t.Fatalf("mapped characters corrupted: % x", buf.Bytes())
	}
}

func TestBuffer_WriteStringEmpty(t *testing.T) {
	buf := New(0)
	n, err := buf.WriteString("", UTF8)
	if err != nil || n != 0 {
		t.Fatalf("WriteString empty = (%d, %v), want (0, nil)", n, err)
	}
	if buf.Capacity() != 0 {
		t.Fatalf("empty write grew the buffer to %d", buf.Capacity())
	}
}

func TestBuffer_StringAt(t *testing.T) {
	buf := Wrap([]byte("HELLO WORLD"))
	buf.SetReadPosition(3)

	got, err := buf.StringAt(6, 5, UTF8)
	if err != nil {
		t.Fatalf("StringAt error: %v", err)
	}
	if got != "WORLD" {
		t.Fatalf("StringAt = %q, want %q", got, "WORLD")
	}
	// Pure read: no cursor movement.
	if buf.ReadPosition() != 3 || buf.WritePosition() != 11 {
		t.Fatalf("StringAt moved cursors to (%d, %d)", buf.ReadPosition(), buf.WritePosition())
	}

	if _, err := buf.StringAt(8, 10, UTF8); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("StringAt past written range = %v, want ErrOutOfRange", err)
	}
	if _, err := buf.StringAt(-1, 2, UTF8); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("StringAt(-1) = %v, want ErrOutOfRange", err)
	}
}

func TestBuffer_StringMalformed(t *testing.T) {
	buf := Wrap([]byte{'a', 0xFF, 'b'}) // 0xFF is not valid UTF-8
	got, err := buf.String(UTF8)
	if err != nil {
		t.Fatalf("String error: %v", err)
	}
	if got != "a�b" {
		t.Fatalf("String = %q, want %q", got, "a�b")
	}
}

func TestLookupCharset(t *testing.T) {
	cs, err := LookupCharset("iso-8859-1")
	if err != nil {
		t.Fatalf("LookupCharset error: %v", err)
	}
	buf := New(4)
	if _, err := buf.WriteString("café", cs); err != nil {
		t.Fatalf("WriteString error: %v", err)
	}
	if buf.ReadableByteCount() != 4 {
		t.Fatalf("ReadableByteCount() = %d, want 4", buf.ReadableByteCount())
	}

	if _, err := LookupCharset("no-such-charset"); !errors.Is(err, ErrUnknownCharset) {
		t.Fatalf("LookupCharset(bogus) = %v, want ErrUnknownCharset", err)
	}
}

func TestCharset_ZeroValueIsUTF8(t *testing.T) {
	var cs Charset
	if cs.Name() != "UTF-8" {
		t.Fatalf("zero Charset name = %q, want UTF-8", cs.Name())
	}
	buf := New(8)
	if _, err := buf.WriteString("héllo", cs); err != nil {
		t.Fatalf("WriteString error: %v", err)
	}
	got, err := buf.String(cs)
	if err != nil || got != "héllo" {
		t.Fatalf("String = (%q, %v), want (héllo, nil)", got, err)
	}
}
