package wire

import "fmt"

// Message is the field-level driver: it owns an ordered set of fields and
// moves them through one shared bounded buffer. Serialization walks fields in
// declaration order; deserialization reads tag-by-tag and dispatches on field
// number, skipping unknown fields the way protobuf requires.
//
// A Message and its buffer are exclusively owned by one caller per operation;
// there is no internal synchronization.
type Message struct {
	fields   []Field
	byNumber map[FieldNumber]Field
}

// NewMessage builds a driver over the given fields in declaration order.
// Duplicate field numbers are rejected.
func NewMessage(fields ...Field) (*Message, error) {
	byNumber := make(map[FieldNumber]Field, len(fields))
	for _, f := range fields {
		if _, dup := byNumber[f.Number()]; dup {
			return nil, fmt.Errorf("duplicate field number %d", f.Number())
		}
		byNumber[f.Number()] = f
	}
	return &Message{fields: fields, byNumber: byNumber}, nil
}

// Fields returns the fields in declaration order.
func (m *Message) Fields() []Field { return m.fields }

// FieldByNumber returns the field registered under the given number.
func (m *Message) FieldByNumber(n FieldNumber) (Field, bool) {
	f, ok := m.byNumber[n]
	return f, ok
}

// Clear resets every field to its default.
func (m *Message) Clear() {
	for _, f := range m.fields {
		f.Clear()
	}
}

// Serialize writes every non-default field to the buffer in declaration
// order. The first buffer-capacity failure aborts the walk; fields already
// written stay in the buffer.
func (m *Message) Serialize(b *Buffer) error {
	for _, f := range m.fields {
		if err := f.Serialize(b); err != nil {
			return fmt.Errorf("failed to serialize field %d: %w", f.Number(), err)
		}
	}
	return nil
}

// Deserialize consumes the buffer's unread bytes, dispatching each decoded
// tag to the matching field. Unknown field numbers are skipped per their wire
// type; a known field number carrying the wrong wire type is an error.
func (m *Message) Deserialize(b *Buffer) error {
	for b.Len() > 0 {
		tag, err := DecodeVarint(b)
		if err != nil {
			return fmt.Errorf("failed to decode tag: %w", err)
		}

		number, wireType := ParseTag(Tag(tag))

		f, ok := m.byNumber[number]
		if !ok {
			if err := skipField(b, wireType); err != nil {
				return fmt.Errorf("failed to skip field %d: %w", number, err)
			}
			continue
		}

		if f.WireType() != wireType {
			return fmt.Errorf("field %d: got wire type %d, want %d: %w",
				number, wireType, f.WireType(), ErrWireTypeMismatch)
		}

		if err := f.Deserialize(b); err != nil {
			return fmt.Errorf("failed to deserialize field %d: %w", number, err)
		}
	}
	return nil
}

// skipField consumes a field's payload based on wire type.
func skipField(b *Buffer, wireType WireType) error {
	switch wireType {
	case WireVarint:
		return SkipVarint(b)
	case WireFixed64:
		return skipBytes(b, 8)
	case WireBytes:
		length, err := DecodeVarint(b)
		if err != nil {
			return err
		}
		return skipBytes(b, int(length))
	case WireFixed32:
		return skipBytes(b, 4)
	default:
		return fmt.Errorf("unknown wire type: %d", wireType)
	}
}

func skipBytes(b *Buffer, n int) error {
	if b.Len() < n {
		return ErrBufferUnderrun
	}
	for i := 0; i < n; i++ {
		b.Pop()
	}
	return nil
}
