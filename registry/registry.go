package registry

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	protoparser "github.com/yoheimuta/go-protoparser/v4"
	"github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/picowire/picowire/schema"
)

// Registry stores the schema of the protobuf messages. We look this up when
// we need to build a codec for a message type.
type Registry struct {
	messages map[string]*schema.Message // fully qualified name -> message
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		messages: make(map[string]*schema.Message),
	}
}

// LoadSchema loads the given .proto file, or recursively scans all .proto
// files when the path is a directory, and registers every message definition.
func (r *Registry) LoadSchema(protoPath string) error {
	info, err := os.Stat(protoPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	// If it's a single file, process it directly
	if !info.IsDir() {
		if !strings.HasSuffix(protoPath, ".proto") {
			return fmt.Errorf("file %s is not a .proto file", protoPath)
		}
		if err := r.loadSingleProtoFile(protoPath); err != nil {
			return fmt.Errorf("failed to load proto file: %w", err)
		}
		return nil
	}

	// If it's a directory, walk through it recursively
	err = filepath.WalkDir(protoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip directories and non-proto files
		if d.IsDir() || !strings.HasSuffix(path, ".proto") {
			return nil
		}

		if err := r.loadSingleProtoFile(path); err != nil {
			return fmt.Errorf("failed to load proto file %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	return nil
}

// loadSingleProtoFile parses one .proto file with go-protoparser and
// registers its top-level messages.
func (r *Registry) loadSingleProtoFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	parsed, err := protoparser.Parse(bytes.NewBuffer(content))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	// First pass: package name
	pkg := ""
	for _, body := range parsed.ProtoBody {
		if p, ok := body.(*parser.Package); ok {
			pkg = p.Name
		}
	}

	// Second pass: message definitions
	for _, body := range parsed.ProtoBody {
		pm, ok := body.(*parser.Message)
		if !ok {
			continue
		}

		msg, err := convertMessage(pm)
		if err != nil {
			return fmt.Errorf("failed to convert message %s: %w", pm.MessageName, err)
		}
		r.messages[fullName(pkg, msg.Name)] = msg
	}

	return nil
}

// convertMessage maps a parsed message body to the schema model. Only flat
// messages of primitive fields are representable; anything else is rejected
// so the caller learns about it at load time, not at encode time.
func convertMessage(pm *parser.Message) (*schema.Message, error) {
	msg := &schema.Message{
		Name:   pm.MessageName,
		Fields: make([]*schema.Field, 0, len(pm.MessageBody)),
	}

	for _, body := range pm.MessageBody {
		switch f := body.(type) {
		case *parser.Field:
			sf, err := convertField(f)
			if err != nil {
				return nil, err
			}
			msg.Fields = append(msg.Fields, sf)
		case *parser.Option, *parser.Comment, *parser.EmptyStatement:
			// no codec impact
		default:
			return nil, fmt.Errorf("unsupported element %T in message %s", body, pm.MessageName)
		}
	}

	return msg, nil
}

// convertField maps a parsed field, including the bounded-size options
// (picowire.max_length) used by the string/bytes codecs.
func convertField(f *parser.Field) (*schema.Field, error) {
	if f.IsRepeated {
		return nil, fmt.Errorf("repeated field %s is not supported", f.FieldName)
	}
	if !schema.IsPrimitiveType(f.Type) {
		return nil, fmt.Errorf("field %s has non-primitive type %s", f.FieldName, f.Type)
	}

	number, err := strconv.ParseInt(f.FieldNumber, 10, 32)
	if err != nil || number <= 0 {
		return nil, fmt.Errorf("field %s has invalid field number %q", f.FieldName, f.FieldNumber)
	}

	sf := &schema.Field{
		Name:   f.FieldName,
		Number: int32(number),
		Type: schema.FieldType{
			Kind:          schema.KindPrimitive,
			PrimitiveType: schema.PrimitiveType(f.Type),
		},
	}

	for _, opt := range f.FieldOptions {
		name := strings.Trim(opt.OptionName, "()")
		if name != "picowire.max_length" && name != "max_length" {
			continue
		}
		maxLength, err := strconv.Atoi(opt.Constant)
		if err != nil || maxLength <= 0 {
			return nil, fmt.Errorf("field %s has invalid max_length %q", f.FieldName, opt.Constant)
		}
		sf.MaxLength = maxLength
	}

	return sf, nil
}

func fullName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// GetMessage retrieves a message definition by name
func (r *Registry) GetMessage(name string) (*schema.Message, error) {
	if msg, exists := r.messages[name]; exists {
		return msg, nil
	}

	// Try without package prefix
	for fn, msg := range r.messages {
		if strings.HasSuffix(fn, "."+name) || fn == name {
			return msg, nil
		}
	}

	return nil, fmt.Errorf("message not found: %s", name)
}

// ListMessages returns all registered message names
func (r *Registry) ListMessages() []string {
	var names []string
	for name := range r.messages {
		names = append(names, name)
	}
	return names
}
