package wire

import (
	"fmt"

	"github.com/picowire/picowire/schema"
)

// DefaultMaxLength is the payload bound for string/bytes fields whose schema
// carries no explicit max_length option.
const DefaultMaxLength = 256

// DynamicMessage binds a schema message to a set of concrete field codecs so
// callers can encode/decode map data without generated code. All storage is
// allocated once, at construction; Encode and Decode reuse it.
type DynamicMessage struct {
	schema *schema.Message
	msg    *Message
	byName map[string]Field
}

// NewDynamicMessage builds the field codecs declared by the schema message.
func NewDynamicMessage(sm *schema.Message) (*DynamicMessage, error) {
	fields := make([]Field, 0, len(sm.Fields))
	byName := make(map[string]Field, len(sm.Fields))

	for _, sf := range sm.Fields {
		f, err := newFieldFromSchema(sf)
		if err != nil {
			return nil, wrapWithField(err, sf.Name)
		}
		fields = append(fields, f)
		byName[sf.Name] = f
	}

	msg, err := NewMessage(fields...)
	if err != nil {
		return nil, fmt.Errorf("invalid message %s: %w", sm.Name, err)
	}

	return &DynamicMessage{schema: sm, msg: msg, byName: byName}, nil
}

// newFieldFromSchema maps one schema field to its concrete codec.
func newFieldFromSchema(sf *schema.Field) (Field, error) {
	if sf.Type.Kind != schema.KindPrimitive {
		return nil, fmt.Errorf("unsupported field kind: %s", sf.Type.Kind)
	}

	number := FieldNumber(sf.Number)
	maxLength := sf.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	switch sf.Type.PrimitiveType {
	case schema.TypeFixed32:
		return NewFixed32(number), nil
	case schema.TypeSfixed32:
		return NewSfixed32(number), nil
	case schema.TypeFloat:
		return NewFloat(number), nil
	case schema.TypeFixed64:
		return NewFixed64(number), nil
	case schema.TypeSfixed64:
		return NewSfixed64(number), nil
	case schema.TypeDouble:
		return NewDouble(number), nil
	case schema.TypeUint32:
		return NewUint32(number), nil
	case schema.TypeUint64:
		return NewUint64(number), nil
	case schema.TypeInt32:
		return NewInt32(number), nil
	case schema.TypeInt64:
		return NewInt64(number), nil
	case schema.TypeSint32:
		return NewSint32(number), nil
	case schema.TypeSint64:
		return NewSint64(number), nil
	case schema.TypeBool:
		return NewBool(number), nil
	case schema.TypeString:
		return NewStringField(number, maxLength), nil
	case schema.TypeBytes:
		return NewBytesField(number, maxLength), nil
	default:
		return nil, fmt.Errorf("unsupported primitive type: %s", sf.Type.PrimitiveType)
	}
}

// Schema returns the schema message this codec was built from.
func (d *DynamicMessage) Schema() *schema.Message { return d.schema }

// FieldByName returns the codec for the named schema field.
func (d *DynamicMessage) FieldByName(name string) (Field, bool) {
	f, ok := d.byName[name]
	return f, ok
}

// Encode assigns the map values to their fields by schema field name and
// serializes the message into the buffer. Keys not declared by the schema are
// an error.
func (d *DynamicMessage) Encode(data map[string]interface{}, b *Buffer) error {
	d.msg.Clear()

	for name, value := range data {
		f, ok := d.byName[name]
		if !ok {
			return fmt.Errorf("unknown field %s in message %s", name, d.schema.Name)
		}
		if err := f.SetValue(value); err != nil {
			return wrapWithField(err, name)
		}
	}

	return d.msg.Serialize(b)
}

// Decode deserializes the buffer's unread bytes and returns every declared
// field's value by name. Fields absent on the wire surface their type's
// default, matching proto3 semantics.
func (d *DynamicMessage) Decode(b *Buffer) (map[string]interface{}, error) {
	d.msg.Clear()

	if err := d.msg.Deserialize(b); err != nil {
		return nil, fmt.Errorf("failed to decode message %s: %w", d.schema.Name, err)
	}

	result := make(map[string]interface{}, len(d.byName))
	for _, sf := range d.schema.Fields {
		result[sf.Name] = d.byName[sf.Name].Value()
	}
	return result, nil
}
