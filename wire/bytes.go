package wire

// Length-delimited field codecs with a construction-time length bound. The
// backing storage is allocated exactly once, when the field is constructed;
// Set and Deserialize copy into it and never grow it.

// BytesField is a bounded bytes field.
type BytesField struct {
	number FieldNumber
	buf    []byte // backing storage, capacity fixed at construction
	n      int    // current length
}

// NewBytesField creates a bytes field with the given field number and maximum
// payload length.
func NewBytesField(number FieldNumber, maxLength int) *BytesField {
	return &BytesField{
		number: number,
		buf:    make([]byte, maxLength),
	}
}

// Set copies v into the backing storage. Values longer than the bound are
// rejected with ErrLengthExceedsMax, leaving the stored value unchanged.
func (f *BytesField) Set(v []byte) error {
	if len(v) > len(f.buf) {
		return ErrLengthExceedsMax
	}
	f.n = copy(f.buf, v)
	return nil
}

// Get returns a view of the stored bytes. The view aliases the backing
// storage and is invalidated by the next Set or Deserialize.
func (f *BytesField) Get() []byte { return f.buf[:f.n] }

// Clear resets the stored value to empty.
func (f *BytesField) Clear() { f.n = 0 }

// Number returns the field number.
func (f *BytesField) Number() FieldNumber { return f.number }

// WireType returns WireBytes.
func (f *BytesField) WireType() WireType { return WireBytes }

// MaxLength returns the construction-time payload bound.
func (f *BytesField) MaxLength() int { return len(f.buf) }

// SerializedDataSize returns the payload size on the wire: the length prefix
// plus the current bytes.
func (f *BytesField) SerializedDataSize() int {
	return VarintSize(uint64(f.n)) + f.n
}

// Serialize appends the tag, length prefix, and bytes, or nothing when the
// value is empty. Capacity is checked for the whole field up front.
func (f *BytesField) Serialize(b *Buffer) error {
	if f.n == 0 {
		return nil
	}

	tag := MakeTag(f.number, WireBytes)
	if TagSize(tag)+f.SerializedDataSize() > b.Free() {
		return ErrBufferFull
	}

	if err := EncodeVarint(b, uint64(tag)); err != nil {
		return err
	}
	if err := EncodeVarint(b, uint64(f.n)); err != nil {
		return err
	}
	for _, c := range f.buf[:f.n] {
		if !b.Push(c) {
			return ErrBufferFull
		}
	}
	return nil
}

// Deserialize consumes the length prefix and payload. Payloads longer than
// the bound fail with ErrLengthExceedsMax and payloads longer than the
// remaining buffer fail with ErrBufferUnderrun; in both cases the stored
// value is unchanged and the length prefix has been consumed.
func (f *BytesField) Deserialize(b *Buffer) error {
	length, err := DecodeVarint(b)
	if err != nil {
		return err
	}
	if length > uint64(len(f.buf)) {
		return ErrLengthExceedsMax
	}
	if int(length) > b.Len() {
		return ErrBufferUnderrun
	}

	for i := 0; i < int(length); i++ {
		c, _ := b.Pop()
		f.buf[i] = c
	}
	f.n = int(length)
	return nil
}

// SetValue assigns from an untyped value ([]byte or string).
func (f *BytesField) SetValue(v interface{}) error {
	switch x := v.(type) {
	case []byte:
		return f.Set(x)
	case string:
		return f.Set([]byte(x))
	default:
		return errNotBytes(v)
	}
}

// Value returns a copy-free view of the stored bytes boxed as interface{}.
func (f *BytesField) Value() interface{} { return f.Get() }

// StringField is a bounded string field. It shares the bytes codec and only
// changes the accessor types.
type StringField struct {
	inner BytesField
}

// NewStringField creates a string field with the given field number and
// maximum payload length.
func NewStringField(number FieldNumber, maxLength int) *StringField {
	return &StringField{inner: BytesField{
		number: number,
		buf:    make([]byte, maxLength),
	}}
}

// Set copies v into the backing storage, rejecting values longer than the
// bound with ErrLengthExceedsMax.
func (f *StringField) Set(v string) error {
	if len(v) > len(f.inner.buf) {
		return ErrLengthExceedsMax
	}
	f.inner.n = copy(f.inner.buf, v)
	return nil
}

// Get returns the stored string.
func (f *StringField) Get() string { return string(f.inner.buf[:f.inner.n]) }

// Clear resets the stored value to empty.
func (f *StringField) Clear() { f.inner.Clear() }

// Number returns the field number.
func (f *StringField) Number() FieldNumber { return f.inner.Number() }

// WireType returns WireBytes.
func (f *StringField) WireType() WireType { return WireBytes }

// MaxLength returns the construction-time payload bound.
func (f *StringField) MaxLength() int { return f.inner.MaxLength() }

// SerializedDataSize returns the payload size on the wire.
func (f *StringField) SerializedDataSize() int { return f.inner.SerializedDataSize() }

// Serialize appends the tag, length prefix, and bytes, or nothing when empty.
func (f *StringField) Serialize(b *Buffer) error { return f.inner.Serialize(b) }

// Deserialize consumes the length prefix and payload.
func (f *StringField) Deserialize(b *Buffer) error { return f.inner.Deserialize(b) }

// SetValue assigns from an untyped value (string or []byte).
func (f *StringField) SetValue(v interface{}) error { return f.inner.SetValue(v) }

// Value returns the stored string boxed as interface{}.
func (f *StringField) Value() interface{} { return f.Get() }
