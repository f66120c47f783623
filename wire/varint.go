package wire

// Varint (base-128) encoding against the bounded buffer. Tags and varint
// field payloads share these routines.

// EncodeVarint encodes v as a varint into the buffer. When the buffer runs
// out of capacity mid-value it returns ErrBufferFull; callers that must not
// leave partial bytes behind pre-check VarintSize against Free.
func EncodeVarint(b *Buffer, v uint64) error {
	for v >= 0x80 {
		if !b.Push(byte(v) | 0x80) {
			return ErrBufferFull
		}
		v >>= 7
	}
	if !b.Push(byte(v)) {
		return ErrBufferFull
	}
	return nil
}

// DecodeVarint decodes a varint from the buffer's read position.
func DecodeVarint(b *Buffer) (uint64, error) {
	var result uint64
	var shift uint

	for i := 0; i < 10; i++ { // Max 10 bytes for 64-bit varint
		c, ok := b.Pop()
		if !ok {
			return 0, ErrBufferUnderrun
		}

		// Check for overflow before shifting
		if shift >= 64 {
			return 0, ErrVarintOverflow
		}

		// Add the lower 7 bits to result
		result |= uint64(c&0x7F) << shift

		// If MSB is not set, we're done
		if (c & 0x80) == 0 {
			return result, nil
		}

		shift += 7
	}

	return 0, ErrVarintTooLong
}

// SkipVarint consumes a varint without decoding it.
func SkipVarint(b *Buffer) error {
	for {
		c, ok := b.Pop()
		if !ok {
			return ErrBufferUnderrun
		}

		if (c & 0x80) == 0 {
			return nil
		}
	}
}

// ===== ZIGZAG AND SIZE HELPERS =====

// DecodeZigZag32 decodes a zigzag-encoded 32-bit integer
func DecodeZigZag32(encoded uint64) int32 {
	return int32((uint32(encoded) >> 1) ^ uint32(-int32(encoded&1)))
}

// DecodeZigZag64 decodes a zigzag-encoded 64-bit integer
func DecodeZigZag64(encoded uint64) int64 {
	return int64((encoded >> 1) ^ uint64(-int64(encoded&1)))
}

// EncodeZigZag32 encodes a signed 32-bit integer using zigzag encoding
func EncodeZigZag32(v int32) uint64 {
	return uint64((uint32(v) << 1) ^ uint32(v>>31))
}

// EncodeZigZag64 encodes a signed 64-bit integer using zigzag encoding
func EncodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// VarintSize returns the number of bytes needed to encode the given varint
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}
