// Package databuf provides a growable byte buffer with independent read and
// write cursors, in the style of netty's ByteBuf.
//
// A Buffer keeps a separate read position and write position over a single
// contiguous storage region, so no flip step is needed between writing and
// reading. The following invariant holds after every operation:
//
//	0 <= ReadPosition() <= WritePosition() <= Capacity()
//
// Capacity is expanded on demand with amortized geometric growth, similar to
// strings.Builder. Buffers are created by a Factory, which also decides the
// pooling policy for their storage:
//
//	buf := databuf.New(256)
//	buf.Write([]byte("hello"))
//	s, _ := buf.String(databuf.UTF8)
//
// The package also provides charset-aware text encoding backed by
// golang.org/x/text (WriteString, String, TextWriter), zero-copy buffer
// splitting (Split), scoped iteration over fixed-size storage views
// (ReadableByteViews, WritableByteViews), and io.Reader / io.Writer adapter
// views that share the buffer's live cursors.
//
// A Buffer is a single-owner structure: it performs no internal locking, and
// concurrent mutation without external synchronization is undefined. Buffers
// produced by Split share storage with the original; while both halves are
// alive, at most one goroutine may mutate the shared region.
package databuf
