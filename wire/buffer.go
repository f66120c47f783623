package wire

// Buffer is a bounded byte buffer over caller-supplied storage. It never
// grows: once the backing slice is full, Push reports failure and the caller
// decides what to do. Reads consume bytes in FIFO order through Pop.
//
// A Buffer is not safe for concurrent use; the owning driver must serialize
// access (one buffer per in-flight message).
type Buffer struct {
	buf []byte
	w   int // write cursor, bytes stored so far
	r   int // read cursor, bytes consumed so far
}

// NewBuffer wraps the given storage in a bounded buffer. The buffer takes
// ownership of storage for its lifetime and performs no allocation of its own.
func NewBuffer(storage []byte) *Buffer {
	return &Buffer{buf: storage}
}

// NewReadBuffer wraps already-encoded bytes so they can be consumed through
// Pop: the write cursor starts at the end of data, the read cursor at zero.
func NewReadBuffer(data []byte) *Buffer {
	return &Buffer{buf: data, w: len(data)}
}

// Push appends a single byte. It returns false when the buffer is at
// capacity, leaving the buffer unchanged.
func (b *Buffer) Push(v byte) bool {
	if b.w >= len(b.buf) {
		return false
	}
	b.buf[b.w] = v
	b.w++
	return true
}

// Pop consumes and returns the oldest unread byte. It returns false when no
// unread bytes remain.
func (b *Buffer) Pop() (byte, bool) {
	if b.r >= b.w {
		return 0, false
	}
	v := b.buf[b.r]
	b.r++
	return v, true
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return b.w - b.r
}

// Free returns the remaining write capacity in bytes.
func (b *Buffer) Free() int {
	return len(b.buf) - b.w
}

// Cap returns the total capacity of the backing storage.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Bytes returns a view of all bytes written so far, including any already
// consumed by Pop. The view aliases the backing storage.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.w]
}

// Reset rewinds both cursors, discarding all content. The backing storage is
// retained.
func (b *Buffer) Reset() {
	b.w = 0
	b.r = 0
}
