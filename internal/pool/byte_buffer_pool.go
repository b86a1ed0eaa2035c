// Package pool provides pooled byte buffers for the hot allocation paths of
// the sexp codec: the parser's string-literal scratch buffer, the printer's
// text buffer, and the scratch buffer car/cdr/nth use when building an
// extracted child value. Adapted from arloliu/mebo's internal/pool, whose
// amortized-growth ByteBuffer is reused verbatim; only the pool sizing
// constants change, since sexp values are typically small (symbol tables
// plus a handful of atoms/lists) rather than mebo's multi-KB metric
// payloads.
package pool

import (
	"io"
	"sync"
)

// Default and maximum sizes for the two buffer pools this package exposes.
// Value buffers back a single encoded sexp value (header + symbol table +
// root element); text buffers back one Print call's output.
const (
	ValueBufferDefaultSize  = 256       // typical small encoded value
	ValueBufferMaxThreshold = 1024 * 64 // 64KiB: discard larger buffers rather than retain them
	TextBufferDefaultSize   = 256
	TextBufferMaxThreshold  = 1024 * 64
)

// ByteBuffer is a growable byte slice wrapper sized for amortized growth
// rather than doubling, which keeps worst-case waste bounded for the
// small-to-medium buffers this codec works with.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow grows the buffer so it can hold requiredBytes more bytes without
// reallocating.
//
// Growth strategy:
// - small buffers grow by ValueBufferDefaultSize to minimize reallocations
// - buffers over 4x that size grow by 25% of current capacity
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ValueBufferDefaultSize
	if cap(bb.B) > 4*ValueBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Append appends data to the buffer, growing it as needed.
func (bb *ByteBuffer) Append(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.Append(data)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers that discards buffers grown
// past maxThreshold instead of retaining them, to avoid memory bloat from a
// single outsized value pinning a large buffer in the pool forever.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default size.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	valueDefaultPool = NewByteBufferPool(ValueBufferDefaultSize, ValueBufferMaxThreshold)
	textDefaultPool  = NewByteBufferPool(TextBufferDefaultSize, TextBufferMaxThreshold)
)

// GetValueBuffer retrieves a ByteBuffer from the default value-encoding pool.
func GetValueBuffer() *ByteBuffer {
	return valueDefaultPool.Get()
}

// PutValueBuffer returns a ByteBuffer to the default value-encoding pool.
func PutValueBuffer(bb *ByteBuffer) {
	valueDefaultPool.Put(bb)
}

// GetTextBuffer retrieves a ByteBuffer from the default text-printing pool.
func GetTextBuffer() *ByteBuffer {
	return textDefaultPool.Get()
}

// PutTextBuffer returns a ByteBuffer to the default text-printing pool.
func PutTextBuffer(bb *ByteBuffer) {
	textDefaultPool.Put(bb)
}
