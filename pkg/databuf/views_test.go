package databuf

import (
	"bytes"
	"errors"
	"testing"
)

func TestByteViews_CoverReadableRange(t *testing.T) {
	fac := &Alloc{ChunkSize: 4096}
	buf := fac.Allocate(0)

	want := bytes.Repeat([]byte("abcdefghij"), 1000) // 10000 bytes
	buf.Write(want)

	it := buf.ReadableByteViews()
	defer it.Close()

	var got []byte
	sizes := []int{}
	for {
		view, err := it.Next()
		if err == ErrIteratorDone {
			break
		}
		if err != nil {
			t.Fatalf("Next error: %v", err)
		}
		if len(view) > 4096 {
			t.Fatalf("view size %d exceeds chunk size", len(view))
		}
		sizes = append(sizes, len(view))
		got = append(got, view...)
	}

	if !bytes.Equal(got, want) {
		t.Fatalf("views do not reproduce readable range: %d vs %d bytes", len(got), len(want))
	}
	if len(sizes) != 3 || sizes[0] != 4096 || sizes[1] != 4096 || sizes[2] != 1808 {
		t.Fatalf("view sizes = %v, want [4096 4096 1808]", sizes)
	}
}

func TestByteViews_RespectsReadPosition(t *testing.T) {
	buf := Wrap([]byte("HELLO WORLD"))
	buf.SetReadPosition(6)

	it := buf.ReadableByteViews()
	defer it.Close()

	view, err := it.Next()
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if string(view) != "WORLD" {
		t.Fatalf("view = %q, want %q", view, "WORLD")
	}
	if _, err := it.Next(); err != ErrIteratorDone {
		t.Fatalf("Next past end = %v, want ErrIteratorDone", err)
	}
}

func TestByteViews_NextAfterClose(t *testing.T) {
	buf := Wrap([]byte("abc"))

	it := buf.ReadableByteViews()
	it.Close()
	if _, err := it.Next(); !errors.Is(err, ErrClosedView) {
		t.Fatalf("Next after Close = %v, want ErrClosedView", err)
	}
	// Close is idempotent.
	it.Close()
}

func TestByteViews_Writable(t *testing.T) {
	fac := &Alloc{ChunkSize: 4}
	buf := fac.Allocate(10)
	buf.Write([]byte("ab"))

	it := buf.WritableByteViews()
	view, err := it.Next()
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if len(view) != 4 {
		t.Fatalf("first writable view length = %d, want 4", len(view))
	}
	copy(view, "cdef")
	it.Close()

	// The caller advances the cursor after filling a view.
	if err := buf.SetWritePosition(buf.WritePosition() + 4); err != nil {
		t.Fatalf("SetWritePosition error: %v", err)
	}
	if got := string(buf.Bytes()); got != "abcdef" {
		t.Fatalf("readable = %q, want %q", got, "abcdef")
	}
}

func TestByteViews_ReleasedBuffer(t *testing.T) {
	buf := Wrap([]byte("abc"))
	it := buf.ReadableByteViews()
	defer it.Close()

	buf.Release()
	if _, err := it.Next(); !errors.Is(err, ErrReleased) {
		t.Fatalf("Next on released buffer = %v, want ErrReleased", err)
	}
}
