package wire

import (
	"bytes"
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestFixedField_RoundTrip(t *testing.T) {
	t.Run("fixed32", func(t *testing.T) {
		values := []uint32{1, 42, 0x01020304, math.MaxUint32}
		for _, v := range values {
			src := NewFixed32(1)
			src.Set(v)

			buf := NewBuffer(make([]byte, 16))
			if err := src.Serialize(buf); err != nil {
				t.Fatalf("Failed to serialize %#x: %v", v, err)
			}

			tag, err := DecodeVarint(buf)
			if err != nil {
				t.Fatalf("Failed to decode tag: %v", err)
			}
			number, wireType := ParseTag(Tag(tag))
			if number != 1 || wireType != WireFixed32 {
				t.Fatalf("Expected tag (1, fixed32), got (%d, %d)", number, wireType)
			}

			dst := NewFixed32(1)
			if err := dst.Deserialize(buf); err != nil {
				t.Fatalf("Failed to deserialize %#x: %v", v, err)
			}
			if dst.Get() != v {
				t.Errorf("Expected %#x, got %#x", v, dst.Get())
			}
		}
	})

	t.Run("sfixed32", func(t *testing.T) {
		values := []int32{1, -1, math.MinInt32, math.MaxInt32}
		for _, v := range values {
			src := NewSfixed32(2)
			src.Set(v)

			buf := NewBuffer(make([]byte, 16))
			if err := src.Serialize(buf); err != nil {
				t.Fatalf("Failed to serialize %d: %v", v, err)
			}

			if _, err := DecodeVarint(buf); err != nil {
				t.Fatalf("Failed to decode tag: %v", err)
			}
			dst := NewSfixed32(2)
			if err := dst.Deserialize(buf); err != nil {
				t.Fatalf("Failed to deserialize %d: %v", v, err)
			}
			if dst.Get() != v {
				t.Errorf("Expected %d, got %d", v, dst.Get())
			}
		}
	})

	t.Run("float_bit_patterns", func(t *testing.T) {
		// NaN payloads and extremes must survive bit-for-bit, not merely
		// compare numerically equal.
		patterns := []uint32{
			math.Float32bits(1.5),
			math.Float32bits(float32(math.Inf(1))),
			math.Float32bits(float32(math.Inf(-1))),
			math.Float32bits(math.MaxFloat32),
			0x7FC00001, // NaN with payload
			0xFFC00123, // negative NaN with payload
		}
		for _, bits := range patterns {
			src := NewFloat(3)
			src.Set(math.Float32frombits(bits))

			buf := NewBuffer(make([]byte, 16))
			if err := src.Serialize(buf); err != nil {
				t.Fatalf("Failed to serialize bits %#x: %v", bits, err)
			}

			if _, err := DecodeVarint(buf); err != nil {
				t.Fatalf("Failed to decode tag: %v", err)
			}
			dst := NewFloat(3)
			if err := dst.Deserialize(buf); err != nil {
				t.Fatalf("Failed to deserialize bits %#x: %v", bits, err)
			}
			if got := math.Float32bits(dst.Get()); got != bits {
				t.Errorf("Expected bit pattern %#x, got %#x", bits, got)
			}
		}
	})

	t.Run("fixed64", func(t *testing.T) {
		values := []uint64{1, 0x0102030405060708, math.MaxUint64}
		for _, v := range values {
			src := NewFixed64(4)
			src.Set(v)

			buf := NewBuffer(make([]byte, 16))
			if err := src.Serialize(buf); err != nil {
				t.Fatalf("Failed to serialize %#x: %v", v, err)
			}

			tag, err := DecodeVarint(buf)
			if err != nil {
				t.Fatalf("Failed to decode tag: %v", err)
			}
			if _, wireType := ParseTag(Tag(tag)); wireType != WireFixed64 {
				t.Fatalf("Expected wire type fixed64, got %d", wireType)
			}

			dst := NewFixed64(4)
			if err := dst.Deserialize(buf); err != nil {
				t.Fatalf("Failed to deserialize %#x: %v", v, err)
			}
			if dst.Get() != v {
				t.Errorf("Expected %#x, got %#x", v, dst.Get())
			}
		}
	})

	t.Run("sfixed64", func(t *testing.T) {
		values := []int64{1, -456789, math.MinInt64, math.MaxInt64}
		for _, v := range values {
			src := NewSfixed64(5)
			src.Set(v)

			buf := NewBuffer(make([]byte, 16))
			if err := src.Serialize(buf); err != nil {
				t.Fatalf("Failed to serialize %d: %v", v, err)
			}

			if _, err := DecodeVarint(buf); err != nil {
				t.Fatalf("Failed to decode tag: %v", err)
			}
			dst := NewSfixed64(5)
			if err := dst.Deserialize(buf); err != nil {
				t.Fatalf("Failed to deserialize %d: %v", v, err)
			}
			if dst.Get() != v {
				t.Errorf("Expected %d, got %d", v, dst.Get())
			}
		}
	})

	t.Run("double_bit_patterns", func(t *testing.T) {
		patterns := []uint64{
			math.Float64bits(2.718281828),
			math.Float64bits(math.Inf(1)),
			math.Float64bits(math.MaxFloat64),
			0x7FF8000000000001, // NaN with payload
		}
		for _, bits := range patterns {
			src := NewDouble(6)
			src.Set(math.Float64frombits(bits))

			buf := NewBuffer(make([]byte, 16))
			if err := src.Serialize(buf); err != nil {
				t.Fatalf("Failed to serialize bits %#x: %v", bits, err)
			}

			if _, err := DecodeVarint(buf); err != nil {
				t.Fatalf("Failed to decode tag: %v", err)
			}
			dst := NewDouble(6)
			if err := dst.Deserialize(buf); err != nil {
				t.Fatalf("Failed to deserialize bits %#x: %v", bits, err)
			}
			if got := math.Float64bits(dst.Get()); got != bits {
				t.Errorf("Expected bit pattern %#x, got %#x", bits, got)
			}
		}
	})
}

func TestFixedField_WireCompat(t *testing.T) {
	// The on-wire bytes must match the reference protobuf implementation.
	t.Run("fixed32", func(t *testing.T) {
		f := NewFixed32(7)
		f.Set(0xDEADBEEF)

		buf := NewBuffer(make([]byte, 16))
		if err := f.Serialize(buf); err != nil {
			t.Fatalf("Failed to serialize: %v", err)
		}

		want := protowire.AppendTag(nil, protowire.Number(7), protowire.Fixed32Type)
		want = protowire.AppendFixed32(want, 0xDEADBEEF)
		if !bytes.Equal(buf.Bytes(), want) {
			t.Errorf("Expected wire bytes %x, got %x", want, buf.Bytes())
		}
	})

	t.Run("double", func(t *testing.T) {
		f := NewDouble(8)
		f.Set(3.14159)

		buf := NewBuffer(make([]byte, 16))
		if err := f.Serialize(buf); err != nil {
			t.Fatalf("Failed to serialize: %v", err)
		}

		want := protowire.AppendTag(nil, protowire.Number(8), protowire.Fixed64Type)
		want = protowire.AppendFixed64(want, math.Float64bits(3.14159))
		if !bytes.Equal(buf.Bytes(), want) {
			t.Errorf("Expected wire bytes %x, got %x", want, buf.Bytes())
		}
	})
}

func TestFixedField_DefaultElision(t *testing.T) {
	buf := NewBuffer(make([]byte, 16))

	fields := []Field{
		NewFixed32(1), NewSfixed32(2), NewFloat(3),
		NewFixed64(4), NewSfixed64(5), NewDouble(6),
	}
	for _, f := range fields {
		if err := f.Serialize(buf); err != nil {
			t.Fatalf("Failed to serialize default field %d: %v", f.Number(), err)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("Expected zero bytes for default values, got %d", buf.Len())
	}

	// The size query reports the fixed width regardless of the value.
	if got := NewFloat(3).SerializedDataSize(); got != 4 {
		t.Errorf("Expected serialized data size 4, got %d", got)
	}
	if got := NewDouble(6).SerializedDataSize(); got != 8 {
		t.Errorf("Expected serialized data size 8, got %d", got)
	}
}

func TestFixedField_EpsilonWindow(t *testing.T) {
	// The default window is an absolute tolerance [0-eps, 0+eps], inclusive,
	// inherited from the wire format this package interoperates with. These
	// cases document the boundary rather than a relative-tolerance intent.
	const eps32 = float32(0x1p-23)

	tests := []struct {
		name   string
		value  float32
		elided bool
	}{
		{"positive_zero", 0.0, true},
		{"negative_zero", float32(math.Copysign(0, -1)), true},
		{"smallest_subnormal", math.SmallestNonzeroFloat32, true},
		{"exactly_epsilon", eps32, true},
		{"negative_epsilon", -eps32, true},
		{"just_above_epsilon", math.Nextafter32(eps32, 1), false},
		{"just_below_negative_epsilon", math.Nextafter32(-eps32, -1), false},
		{"one_point_five", 1.5, false},
		{"nan", float32(math.NaN()), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := NewFloat(1)
			f.Set(test.value)

			buf := NewBuffer(make([]byte, 16))
			if err := f.Serialize(buf); err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			elided := buf.Len() == 0
			if elided != test.elided {
				t.Errorf("Value %g (bits %#x): expected elided=%v, got %v",
					test.value, math.Float32bits(test.value), test.elided, elided)
			}
		})
	}

	t.Run("double_exactly_epsilon", func(t *testing.T) {
		f := NewDouble(1)
		f.Set(0x1p-52)

		buf := NewBuffer(make([]byte, 16))
		if err := f.Serialize(buf); err != nil {
			t.Fatalf("Failed to serialize: %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("Expected 0x1p-52 to be elided, wrote %d bytes", buf.Len())
		}
	})
}

func TestFixedField_CapacityBoundary(t *testing.T) {
	// Field number 1 needs a 1-byte tag, so a non-default fixed32 needs
	// exactly 5 bytes.
	t.Run("exact_fit", func(t *testing.T) {
		f := NewFixed32(1)
		f.Set(42)

		buf := NewBuffer(make([]byte, 5))
		if err := f.Serialize(buf); err != nil {
			t.Fatalf("Expected exact-fit serialize to succeed, got %v", err)
		}
		if buf.Len() != 5 {
			t.Errorf("Expected 5 bytes written, got %d", buf.Len())
		}
	})

	t.Run("one_byte_short", func(t *testing.T) {
		f := NewFixed32(1)
		f.Set(42)

		buf := NewBuffer(make([]byte, 4))
		err := f.Serialize(buf)
		if err != ErrBufferFull {
			t.Fatalf("Expected ErrBufferFull, got %v", err)
		}
		// No partial tag or payload bytes.
		if buf.Len() != 0 {
			t.Errorf("Expected buffer unchanged after failed serialize, got %d bytes", buf.Len())
		}
	})

	t.Run("tag_fits_payload_does_not", func(t *testing.T) {
		f := NewFixed64(1)
		f.Set(42)

		buf := NewBuffer(make([]byte, 3))
		if err := f.Serialize(buf); err != ErrBufferFull {
			t.Fatalf("Expected ErrBufferFull, got %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("Expected buffer unchanged after failed serialize, got %d bytes", buf.Len())
		}
	})
}

func TestFixedField_UnderrunBoundary(t *testing.T) {
	t.Run("fixed32_three_bytes", func(t *testing.T) {
		f := NewFixed32(1)
		f.Set(0xCAFEBABE) // sentinel that must survive the failed read

		buf := NewReadBuffer([]byte{0x01, 0x02, 0x03})
		if err := f.Deserialize(buf); err != ErrBufferUnderrun {
			t.Fatalf("Expected ErrBufferUnderrun, got %v", err)
		}
		if f.Get() != 0xCAFEBABE {
			t.Errorf("Expected stored value unchanged, got %#x", f.Get())
		}
	})

	t.Run("double_seven_bytes", func(t *testing.T) {
		f := NewDouble(1)
		f.Set(6.25)

		buf := NewReadBuffer(make([]byte, 7))
		if err := f.Deserialize(buf); err != ErrBufferUnderrun {
			t.Fatalf("Expected ErrBufferUnderrun, got %v", err)
		}
		if f.Get() != 6.25 {
			t.Errorf("Expected stored value unchanged, got %v", f.Get())
		}
	})
}

func TestPackFixed_Endianness(t *testing.T) {
	// The wire order is little-endian by shift and mask, independent of host
	// byte order.
	f := NewFixed32(1)
	f.Set(0x01020304)

	buf := NewBuffer(make([]byte, 8))
	if err := f.Serialize(buf); err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}

	want := []byte{0x0D, 0x04, 0x03, 0x02, 0x01} // tag (1<<3|5) then payload
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("Expected bytes %x, got %x", want, buf.Bytes())
	}

	dst := NewFixed32(1)
	if err := dst.Deserialize(NewReadBuffer([]byte{0x04, 0x03, 0x02, 0x01})); err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}
	if dst.Get() != 0x01020304 {
		t.Errorf("Expected 0x01020304, got %#x", dst.Get())
	}
}

func TestFixedField_FloatBitFidelity(t *testing.T) {
	src := NewFloat(1)
	src.Set(1.5)

	buf := NewBuffer(make([]byte, 8))
	if err := src.Serialize(buf); err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}

	if _, err := DecodeVarint(buf); err != nil {
		t.Fatalf("Failed to decode tag: %v", err)
	}
	dst := NewFloat(1)
	if err := dst.Deserialize(buf); err != nil {
		t.Fatalf("Failed to deserialize: %v", err)
	}

	if math.Float32bits(dst.Get()) != math.Float32bits(1.5) {
		t.Errorf("Expected bit pattern %#x, got %#x",
			math.Float32bits(1.5), math.Float32bits(dst.Get()))
	}
}

func TestFixedField_SetGetClear(t *testing.T) {
	f := NewSfixed64(9)
	if f.Get() != 0 {
		t.Errorf("Expected default 0, got %d", f.Get())
	}

	f.Set(-77)
	if f.Get() != -77 {
		t.Errorf("Expected -77, got %d", f.Get())
	}

	f.Clear()
	if f.Get() != 0 {
		t.Errorf("Expected 0 after Clear, got %d", f.Get())
	}
}
