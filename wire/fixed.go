package wire

import "math"

// Fixed-width (fixed32/fixed64 wire type) field codec. One generic
// implementation instantiated over exactly six width/kind combinations; the
// kind is a compile-time type parameter, so an invalid combination does not
// compile and no runtime type switching happens on the codec path.

// fixedValue constrains the scalars a fixed-width field can hold.
type fixedValue interface {
	~uint32 | ~int32 | ~float32 | ~uint64 | ~int64 | ~float64
}

// fixedKind supplies the per-combination personality: wire type, payload
// width, default-comparison epsilon, and the bit-pattern views used at the
// pack/unpack boundary. The bit-pattern views carry bits through unchanged;
// they are the only sanctioned reinterpretation in the package.
type fixedKind[T fixedValue] interface {
	wireType() WireType
	width() int
	epsilon() T
	bits(T) uint64
	fromBits(uint64) T
}

type fixed32Kind struct{}

func (fixed32Kind) wireType() WireType       { return WireFixed32 }
func (fixed32Kind) width() int               { return 4 }
func (fixed32Kind) epsilon() uint32          { return 0 }
func (fixed32Kind) bits(v uint32) uint64     { return uint64(v) }
func (fixed32Kind) fromBits(u uint64) uint32 { return uint32(u) }

type sfixed32Kind struct{}

func (sfixed32Kind) wireType() WireType      { return WireFixed32 }
func (sfixed32Kind) width() int              { return 4 }
func (sfixed32Kind) epsilon() int32          { return 0 }
func (sfixed32Kind) bits(v int32) uint64     { return uint64(uint32(v)) }
func (sfixed32Kind) fromBits(u uint64) int32 { return int32(uint32(u)) }

type floatKind struct{}

func (floatKind) wireType() WireType        { return WireFixed32 }
func (floatKind) width() int                { return 4 }
func (floatKind) epsilon() float32          { return 0x1p-23 } // machine epsilon at 1.0
func (floatKind) bits(v float32) uint64     { return uint64(math.Float32bits(v)) }
func (floatKind) fromBits(u uint64) float32 { return math.Float32frombits(uint32(u)) }

type fixed64Kind struct{}

func (fixed64Kind) wireType() WireType       { return WireFixed64 }
func (fixed64Kind) width() int               { return 8 }
func (fixed64Kind) epsilon() uint64          { return 0 }
func (fixed64Kind) bits(v uint64) uint64     { return v }
func (fixed64Kind) fromBits(u uint64) uint64 { return u }

type sfixed64Kind struct{}

func (sfixed64Kind) wireType() WireType      { return WireFixed64 }
func (sfixed64Kind) width() int              { return 8 }
func (sfixed64Kind) epsilon() int64          { return 0 }
func (sfixed64Kind) bits(v int64) uint64     { return uint64(v) }
func (sfixed64Kind) fromBits(u uint64) int64 { return int64(u) }

type doubleKind struct{}

func (doubleKind) wireType() WireType        { return WireFixed64 }
func (doubleKind) width() int                { return 8 }
func (doubleKind) epsilon() float64          { return 0x1p-52 } // machine epsilon at 1.0
func (doubleKind) bits(v float64) uint64     { return math.Float64bits(v) }
func (doubleKind) fromBits(u uint64) float64 { return math.Float64frombits(u) }

// FixedField is a fixed-width field: one scalar value plus its field number.
// A freshly constructed field holds the type's zero default. Use the six
// concrete aliases (Fixed32, Sfixed32, Float, Fixed64, Sfixed64, Double)
// rather than instantiating FixedField directly.
type FixedField[T fixedValue, K fixedKind[T]] struct {
	number FieldNumber
	value  T
	kind   K
}

// The six combinations with a meaningful protobuf interpretation.
type (
	Fixed32  = FixedField[uint32, fixed32Kind]
	Sfixed32 = FixedField[int32, sfixed32Kind]
	Float    = FixedField[float32, floatKind]
	Fixed64  = FixedField[uint64, fixed64Kind]
	Sfixed64 = FixedField[int64, sfixed64Kind]
	Double   = FixedField[float64, doubleKind]
)

// NewFixed32 creates a fixed32 (uint32) field with the given field number.
func NewFixed32(number FieldNumber) *Fixed32 { return &Fixed32{number: number} }

// NewSfixed32 creates an sfixed32 (int32) field with the given field number.
func NewSfixed32(number FieldNumber) *Sfixed32 { return &Sfixed32{number: number} }

// NewFloat creates a float (float32) field with the given field number.
func NewFloat(number FieldNumber) *Float { return &Float{number: number} }

// NewFixed64 creates a fixed64 (uint64) field with the given field number.
func NewFixed64(number FieldNumber) *Fixed64 { return &Fixed64{number: number} }

// NewSfixed64 creates an sfixed64 (int64) field with the given field number.
func NewSfixed64(number FieldNumber) *Sfixed64 { return &Sfixed64{number: number} }

// NewDouble creates a double (float64) field with the given field number.
func NewDouble(number FieldNumber) *Double { return &Double{number: number} }

// Set overwrites the stored scalar. It always succeeds.
func (f *FixedField[T, K]) Set(v T) {
	f.value = v
}

// Get returns the stored scalar.
func (f *FixedField[T, K]) Get() T {
	return f.value
}

// Clear resets the stored scalar to the type's zero default.
func (f *FixedField[T, K]) Clear() {
	var zero T
	f.value = zero
}

// Number returns the field number.
func (f *FixedField[T, K]) Number() FieldNumber {
	return f.number
}

// WireType returns WireFixed32 or WireFixed64 depending on the width.
func (f *FixedField[T, K]) WireType() WireType {
	return f.kind.wireType()
}

// SerializedDataSize returns the constant payload width on the wire: 4 bytes
// for the 32-bit kinds, 8 for the 64-bit kinds. The tag is not included, and
// the result does not depend on whether the current value is default.
func (f *FixedField[T, K]) SerializedDataSize() int {
	return f.kind.width()
}

// Serialize appends the tag and little-endian payload to the buffer. A value
// inside the default window is omitted entirely (proto3 default elision) and
// reported as success. Capacity is checked for the whole tag+payload before
// the first byte is written, so a failed Serialize leaves the buffer
// untouched.
func (f *FixedField[T, K]) Serialize(b *Buffer) error {
	if isDefault(f.value, f.kind.epsilon()) {
		return nil
	}

	tag := MakeTag(f.number, f.kind.wireType())
	if TagSize(tag)+f.kind.width() > b.Free() {
		return ErrBufferFull
	}

	if err := EncodeVarint(b, uint64(tag)); err != nil {
		return err
	}
	return packFixed(b, f.kind.bits(f.value), f.kind.width())
}

// Deserialize consumes the fixed-width payload from the buffer and commits
// the decoded bit pattern to the stored value. On underrun the stored value
// is left unchanged.
func (f *FixedField[T, K]) Deserialize(b *Buffer) error {
	if b.Len() < f.kind.width() {
		return ErrBufferUnderrun
	}

	u, err := unpackFixed(b, f.kind.width())
	if err != nil {
		return err
	}

	f.value = f.kind.fromBits(u)
	return nil
}

// SetValue assigns from an untyped value, coercing compatible numeric
// representations.
func (f *FixedField[T, K]) SetValue(v interface{}) error {
	c, err := coerceScalar[T](v)
	if err != nil {
		return err
	}
	f.value = c
	return nil
}

// Value returns the current scalar boxed as interface{}.
func (f *FixedField[T, K]) Value() interface{} {
	return f.value
}

// isDefault reports whether v falls inside the inclusive window
// [default-eps, default+eps]. Integer kinds pass eps zero, collapsing the
// window to exact equality; float kinds pass their machine epsilon. The
// window is an absolute tolerance around zero, matching the wire format this
// package interoperates with. NaN compares false on both sides and is never
// elided.
func isDefault[T fixedValue](v, eps T) bool {
	var def T
	return v <= def+eps && v >= def-eps
}

// packFixed emits the low width bytes of bits in little-endian order using
// shift and mask, independent of host byte order. The capacity pre-check in
// Serialize means the mid-sequence failure path is not reachable from there.
func packFixed(b *Buffer, bits uint64, width int) error {
	for i := 0; i < width*8; i += 8 {
		if !b.Push(byte(bits >> i)) {
			return ErrBufferFull
		}
	}
	return nil
}

// unpackFixed pops width bytes and reassembles the little-endian bit pattern
// into an unsigned accumulator.
func unpackFixed(b *Buffer, width int) (uint64, error) {
	var acc uint64
	for i := 0; i < width*8; i += 8 {
		c, ok := b.Pop()
		if !ok {
			return 0, ErrBufferUnderrun
		}
		acc |= uint64(c) << i
	}
	return acc, nil
}
