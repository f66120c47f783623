package wire

// Field is the contract every concrete field codec satisfies. A message-level
// driver walks its fields in declaration order calling Serialize, or
// dispatches decoded tags to Deserialize by field number.
//
// Serialize and Deserialize report ErrBufferFull / ErrBufferUnderrun as
// ordinary return values; neither ever leaves a field half-written.
type Field interface {
	// Number returns the field number assigned at construction.
	Number() FieldNumber

	// WireType returns the on-wire discriminant for this field's payload.
	WireType() WireType

	// SerializedDataSize returns the payload size in bytes, excluding the
	// tag. For fixed-width fields this is a constant; for varint and
	// length-delimited fields it depends on the current value.
	SerializedDataSize() int

	// Serialize appends the tag and payload to the buffer, or nothing at all
	// when the value equals the type's default.
	Serialize(b *Buffer) error

	// Deserialize consumes this field's payload from the buffer. The tag has
	// already been consumed by the driver.
	Deserialize(b *Buffer) error

	// Clear resets the value to the type's default.
	Clear()

	// SetValue assigns from an untyped value, coercing compatible numeric
	// representations (used by the dynamic schema driver).
	SetValue(v interface{}) error

	// Value returns the current value boxed as interface{}.
	Value() interface{}
}
