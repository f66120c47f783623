package schema

// Message represents a protobuf message definition
type Message struct {
	Name   string   `json:"name"`   // "Telemetry"
	Fields []*Field `json:"fields"` // message fields
}

// Field represents a message field
type Field struct {
	Name      string    `json:"name"`       // "battery_voltage"
	Number    int32     `json:"number"`     // 1
	Type      FieldType `json:"type"`       // field type information
	MaxLength int       `json:"max_length"` // payload bound for string/bytes fields (0 = package default)
}

// FieldType represents field type information
type FieldType struct {
	Kind          TypeKind      `json:"kind"`                     // primitive (others reserved)
	PrimitiveType PrimitiveType `json:"primitive_type,omitempty"` // for primitive types
}

// TypeKind represents the kind of field type
type TypeKind string

const (
	KindPrimitive TypeKind = "primitive"
)

// PrimitiveType represents protobuf primitive types
type PrimitiveType string

const (
	TypeDouble   PrimitiveType = "double"
	TypeFloat    PrimitiveType = "float"
	TypeInt64    PrimitiveType = "int64"
	TypeUint64   PrimitiveType = "uint64"
	TypeInt32    PrimitiveType = "int32"
	TypeFixed64  PrimitiveType = "fixed64"
	TypeFixed32  PrimitiveType = "fixed32"
	TypeBool     PrimitiveType = "bool"
	TypeString   PrimitiveType = "string"
	TypeBytes    PrimitiveType = "bytes"
	TypeUint32   PrimitiveType = "uint32"
	TypeSfixed32 PrimitiveType = "sfixed32"
	TypeSfixed64 PrimitiveType = "sfixed64"
	TypeSint32   PrimitiveType = "sint32"
	TypeSint64   PrimitiveType = "sint64"
)

var validPrimitives = map[PrimitiveType]struct{}{
	TypeDouble:   {},
	TypeFloat:    {},
	TypeInt64:    {},
	TypeUint64:   {},
	TypeInt32:    {},
	TypeFixed64:  {},
	TypeFixed32:  {},
	TypeBool:     {},
	TypeString:   {},
	TypeBytes:    {},
	TypeUint32:   {},
	TypeSfixed32: {},
	TypeSfixed64: {},
	TypeSint32:   {},
	TypeSint64:   {},
}

// IsPrimitiveType checks and returns whether name is a known primitive type
func IsPrimitiveType(name string) bool {
	_, ok := validPrimitives[PrimitiveType(name)]
	return ok
}
