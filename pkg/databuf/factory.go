package databuf

import (
	"fmt"
	"math"
	"math/bits"
	"sync"
)

const (
	// minCapacity is the smallest storage size a growth step allocates.
	minCapacity = 64

	// DefaultChunkSize is the view size yielded by ReadableByteViews and
	// WritableByteViews unless the factory is configured otherwise.
	DefaultChunkSize = 1 << 12

	// DefaultMaxCapacity is the default growth ceiling for a buffer.
	DefaultMaxCapacity = math.MaxInt32
)

// Factory creates buffers and owns the pooling policy for their storage.
// Implementations are safe for concurrent use; the buffers they produce are
// not.
type Factory interface {
	// Allocate creates an empty buffer with at least the given initial
	// capacity.
	Allocate(capacity int) *Buffer

	// Wrap adopts p as a buffer's storage without copying. The buffer's
	// write position is len(p), its capacity len(p). The caller must not
	// use p afterwards.
	Wrap(p []byte) *Buffer

	// Join concatenates the readable bytes of the given buffers into a new
	// buffer and releases the inputs.
	Join(bufs ...*Buffer) (*Buffer, error)

	// obtain returns a storage slice of exactly n bytes, possibly reused.
	obtain(n int) []byte

	// reclaim takes back a storage slice previously handed out by obtain.
	reclaim(p []byte)
}

// Default is the factory used by the package-level New and Wrap helpers.
var Default Factory = &Alloc{}

// New creates an empty buffer with the given initial capacity using the
// Default factory.
func New(capacity int) *Buffer {
	return Default.Allocate(capacity)
}

// Wrap adopts p as a buffer using the Default factory.
func Wrap(p []byte) *Buffer {
	return Default.Wrap(p)
}

// Alloc is a plain make-based Factory with no storage reuse. The zero value
// is ready to use.
type Alloc struct {
	// ChunkSize is the view size for byte-view iteration.
	// Zero means DefaultChunkSize.
	ChunkSize int

	// MaxCapacity caps buffer growth. Zero means DefaultMaxCapacity.
	MaxCapacity int
}

// Allocate implements Factory.
func (f *Alloc) Allocate(capacity int) *Buffer {
	capacity = max(capacity, 0)
	return f.adopt(make([]byte, capacity), 0)
}

// Wrap implements Factory.
func (f *Alloc) Wrap(p []byte) *Buffer {
	b := f.adopt(p[0:len(p):len(p)], len(p))
	b.poolable = false // not ours to reuse
	return b
}

// Join implements Factory.
func (f *Alloc) Join(bufs ...*Buffer) (*Buffer, error) {
	return join(f, bufs)
}

func (f *Alloc) adopt(storage []byte, writePos int) *Buffer {
	return &Buffer{
		fac:      f,
		storage:  storage,
		writePos: writePos,
		chunk:    orDefault(f.ChunkSize, DefaultChunkSize),
		maxCap:   orDefault(f.MaxCapacity, DefaultMaxCapacity),
		poolable: true,
	}
}

func (f *Alloc) obtain(n int) []byte { return make([]byte, n) }

func (f *Alloc) reclaim([]byte) {}

// Pool size classes cover 64B (1<<6) through 4MB (1<<22); requests outside
// that range fall through to plain allocation.
const (
	poolMinShift = 6
	poolMaxShift = 22
)

// Pool is a Factory that recycles storage through per-size-class sync.Pools.
// Requested capacities are rounded up to the next power of two, so a pooled
// buffer's capacity may exceed the capacity asked for. The zero value is
// ready to use.
type Pool struct {
	// ChunkSize is the view size for byte-view iteration.
	// Zero means DefaultChunkSize.
	ChunkSize int

	// MaxCapacity caps buffer growth. Zero means DefaultMaxCapacity.
	MaxCapacity int

	// Pools hold *[]byte to avoid interface boxing on Put.
	classes [poolMaxShift - poolMinShift + 1]sync.Pool
}

// Allocate implements Factory.
func (f *Pool) Allocate(capacity int) *Buffer {
	return f.adopt(f.obtain(max(capacity, 0)), 0)
}

// Wrap implements Factory.
func (f *Pool) Wrap(p []byte) *Buffer {
	b := f.adopt(p[0:len(p):len(p)], len(p))
	b.poolable = false // arbitrary size, not pool-owned
	return b
}

// Join implements Factory.
func (f *Pool) Join(bufs ...*Buffer) (*Buffer, error) {
	return join(f, bufs)
}

func (f *Pool) adopt(storage []byte, writePos int) *Buffer {
	return &Buffer{
		fac:      f,
		storage:  storage,
		writePos: writePos,
		chunk:    orDefault(f.ChunkSize, DefaultChunkSize),
		maxCap:   orDefault(f.MaxCapacity, DefaultMaxCapacity),
		poolable: true,
	}
}

func (f *Pool) obtain(n int) []byte {
	class, ok := sizeClass(n)
	if !ok {
		return make([]byte, n)
	}
	if p, _ := f.classes[class].Get().(*[]byte); p != nil {
		return (*p)[:1<<(class+poolMinShift)]
	}
	return make([]byte, 1<<(class+poolMinShift))
}

func (f *Pool) reclaim(p []byte) {
	n := cap(p)
	if n == 0 || n&(n-1) != 0 { // only exact size classes go back
		return
	}
	class, ok := sizeClass(n)
	if !ok || 1<<(class+poolMinShift) != n {
		return
	}
	p = p[:cap(p)]
	f.classes[class].Put(&p)
}

// sizeClass returns the pool class whose slices hold at least n bytes.
func sizeClass(n int) (int, bool) {
	if n > 1<<poolMaxShift {
		return 0, false
	}
	shift := poolMinShift
	if n > 1<<poolMinShift {
		shift = bits.Len(uint(n - 1))
	}
	return shift - poolMinShift, true
}

func join(f Factory, bufs []*Buffer) (*Buffer, error) {
	total := 0
	for _, src := range bufs {
		if err := src.active(); err != nil {
			return nil, err
		}
		total += src.ReadableByteCount()
	}
	out := f.Allocate(total)
	if err := out.WriteBuffers(bufs...); err != nil {
		return nil, err
	}
	for _, src := range bufs {
		if err := src.Release(); err != nil {
			return nil, fmt.Errorf("databuf: join: release input: %w", err)
		}
	}
	return out, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
