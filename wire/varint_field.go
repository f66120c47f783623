package wire

// Varint-encoded field codecs: the same lifecycle and elision contract as the
// fixed-width fields, with a variable-length payload. Signed kinds exist in
// two flavors matching protobuf: plain (sign-extended to 64 bits) and zigzag.

// varintValue constrains the integer scalars a varint field can hold.
type varintValue interface {
	~uint32 | ~int32 | ~uint64 | ~int64
}

// varintKind maps between the semantic value and its unsigned wire
// representation.
type varintKind[T varintValue] interface {
	encode(T) uint64
	decode(uint64) T
}

type uint32VarintKind struct{}

func (uint32VarintKind) encode(v uint32) uint64 { return uint64(v) }
func (uint32VarintKind) decode(u uint64) uint32 { return uint32(u) }

type uint64VarintKind struct{}

func (uint64VarintKind) encode(v uint64) uint64 { return v }
func (uint64VarintKind) decode(u uint64) uint64 { return u }

type int32VarintKind struct{}

// Negative int32 values are sign-extended to 64 bits on the wire.
func (int32VarintKind) encode(v int32) uint64 { return uint64(int64(v)) }
func (int32VarintKind) decode(u uint64) int32 { return int32(u) }

type int64VarintKind struct{}

func (int64VarintKind) encode(v int64) uint64 { return uint64(v) }
func (int64VarintKind) decode(u uint64) int64 { return int64(u) }

type sint32VarintKind struct{}

func (sint32VarintKind) encode(v int32) uint64 { return EncodeZigZag32(v) }
func (sint32VarintKind) decode(u uint64) int32 { return DecodeZigZag32(u) }

type sint64VarintKind struct{}

func (sint64VarintKind) encode(v int64) uint64 { return EncodeZigZag64(v) }
func (sint64VarintKind) decode(u uint64) int64 { return DecodeZigZag64(u) }

// VarintField is a varint-encoded integer field. Use the concrete aliases
// below rather than instantiating it directly.
type VarintField[T varintValue, K varintKind[T]] struct {
	number FieldNumber
	value  T
	kind   K
}

type (
	Uint32 = VarintField[uint32, uint32VarintKind]
	Uint64 = VarintField[uint64, uint64VarintKind]
	Int32  = VarintField[int32, int32VarintKind]
	Int64  = VarintField[int64, int64VarintKind]
	Sint32 = VarintField[int32, sint32VarintKind]
	Sint64 = VarintField[int64, sint64VarintKind]
)

// NewUint32 creates a uint32 varint field with the given field number.
func NewUint32(number FieldNumber) *Uint32 { return &Uint32{number: number} }

// NewUint64 creates a uint64 varint field with the given field number.
func NewUint64(number FieldNumber) *Uint64 { return &Uint64{number: number} }

// NewInt32 creates an int32 varint field with the given field number.
func NewInt32(number FieldNumber) *Int32 { return &Int32{number: number} }

// NewInt64 creates an int64 varint field with the given field number.
func NewInt64(number FieldNumber) *Int64 { return &Int64{number: number} }

// NewSint32 creates a zigzag-encoded int32 field with the given field number.
func NewSint32(number FieldNumber) *Sint32 { return &Sint32{number: number} }

// NewSint64 creates a zigzag-encoded int64 field with the given field number.
func NewSint64(number FieldNumber) *Sint64 { return &Sint64{number: number} }

// Set overwrites the stored scalar.
func (f *VarintField[T, K]) Set(v T) { f.value = v }

// Get returns the stored scalar.
func (f *VarintField[T, K]) Get() T { return f.value }

// Clear resets the stored scalar to zero.
func (f *VarintField[T, K]) Clear() {
	var zero T
	f.value = zero
}

// Number returns the field number.
func (f *VarintField[T, K]) Number() FieldNumber { return f.number }

// WireType returns WireVarint.
func (f *VarintField[T, K]) WireType() WireType { return WireVarint }

// SerializedDataSize returns the varint size of the current value's wire
// representation, excluding the tag.
func (f *VarintField[T, K]) SerializedDataSize() int {
	return VarintSize(f.kind.encode(f.value))
}

// Serialize appends the tag and varint payload, or nothing when the value is
// zero. Capacity is checked for the whole tag+payload up front.
func (f *VarintField[T, K]) Serialize(b *Buffer) error {
	var eps T
	if isDefault(f.value, eps) {
		return nil
	}

	tag := MakeTag(f.number, WireVarint)
	payload := f.kind.encode(f.value)
	if TagSize(tag)+VarintSize(payload) > b.Free() {
		return ErrBufferFull
	}

	if err := EncodeVarint(b, uint64(tag)); err != nil {
		return err
	}
	return EncodeVarint(b, payload)
}

// Deserialize consumes one varint payload and commits the decoded value.
func (f *VarintField[T, K]) Deserialize(b *Buffer) error {
	u, err := DecodeVarint(b)
	if err != nil {
		return err
	}
	f.value = f.kind.decode(u)
	return nil
}

// SetValue assigns from an untyped value, coercing compatible numeric
// representations.
func (f *VarintField[T, K]) SetValue(v interface{}) error {
	c, err := coerceScalar[T](v)
	if err != nil {
		return err
	}
	f.value = c
	return nil
}

// Value returns the current scalar boxed as interface{}.
func (f *VarintField[T, K]) Value() interface{} { return f.value }

// Bool is a varint-encoded boolean field.
type Bool struct {
	number FieldNumber
	value  bool
}

// NewBool creates a bool field with the given field number.
func NewBool(number FieldNumber) *Bool { return &Bool{number: number} }

// Set overwrites the stored value.
func (f *Bool) Set(v bool) { f.value = v }

// Get returns the stored value.
func (f *Bool) Get() bool { return f.value }

// Clear resets the stored value to false.
func (f *Bool) Clear() { f.value = false }

// Number returns the field number.
func (f *Bool) Number() FieldNumber { return f.number }

// WireType returns WireVarint.
func (f *Bool) WireType() WireType { return WireVarint }

// SerializedDataSize returns 1: a bool payload is a single varint byte.
func (f *Bool) SerializedDataSize() int { return 1 }

// Serialize appends the tag and a single payload byte, or nothing when the
// value is false.
func (f *Bool) Serialize(b *Buffer) error {
	if !f.value {
		return nil
	}

	tag := MakeTag(f.number, WireVarint)
	if TagSize(tag)+1 > b.Free() {
		return ErrBufferFull
	}

	if err := EncodeVarint(b, uint64(tag)); err != nil {
		return err
	}
	return EncodeVarint(b, 1)
}

// Deserialize consumes one varint payload; any non-zero value decodes true.
func (f *Bool) Deserialize(b *Buffer) error {
	u, err := DecodeVarint(b)
	if err != nil {
		return err
	}
	f.value = u != 0
	return nil
}

// SetValue assigns from an untyped value.
func (f *Bool) SetValue(v interface{}) error {
	x, ok := v.(bool)
	if !ok {
		return errNotBool(v)
	}
	f.value = x
	return nil
}

// Value returns the current value boxed as interface{}.
func (f *Bool) Value() interface{} { return f.value }
