// Package picowire is a bounded protobuf wire codec: fixed-capacity buffers,
// fixed upper bounds on every container, and explicit capacity accounting on
// every write. Schemas are loaded from .proto files at runtime; no code
// generation step is involved.
package picowire

import (
	"fmt"

	"github.com/picowire/picowire/registry"
	"github.com/picowire/picowire/wire"
)

// Picowire provides schema-aware bounded protobuf operations without
// generated code.
type Picowire struct {
	registry *registry.Registry
	codecs   map[string]*wire.DynamicMessage
}

// New creates a new Picowire instance.
func New() *Picowire {
	return &Picowire{
		registry: registry.NewRegistry(),
		codecs:   make(map[string]*wire.DynamicMessage),
	}
}

// LoadSchema loads a .proto file, or every .proto file under a directory.
func (p *Picowire) LoadSchema(path string) error {
	return p.registry.LoadSchema(path)
}

// Marshal encodes a map into protobuf bytes inside the caller-supplied
// storage. The returned slice is a view of storage holding the encoded
// message; encoding never allocates past the storage's capacity.
func (p *Picowire) Marshal(data map[string]interface{}, messageType string, storage []byte) ([]byte, error) {
	codec, err := p.codec(messageType)
	if err != nil {
		return nil, err
	}

	buf := wire.NewBuffer(storage)
	if err := codec.Encode(data, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse decodes protobuf bytes into a map of field name to value. Every field
// declared by the schema appears in the result; fields absent on the wire
// carry their type's default.
func (p *Picowire) Parse(data []byte, messageType string) (map[string]interface{}, error) {
	codec, err := p.codec(messageType)
	if err != nil {
		return nil, err
	}

	return codec.Decode(wire.NewReadBuffer(data))
}

// ListMessages returns all registered message names.
func (p *Picowire) ListMessages() []string {
	return p.registry.ListMessages()
}

// GetRegistry exposes the underlying schema registry.
func (p *Picowire) GetRegistry() *registry.Registry { return p.registry }

// codec returns the cached field codecs for a message type, building them on
// first use. Building is the only place the codec path allocates.
func (p *Picowire) codec(messageType string) (*wire.DynamicMessage, error) {
	if c, ok := p.codecs[messageType]; ok {
		return c, nil
	}

	msg, err := p.registry.GetMessage(messageType)
	if err != nil {
		return nil, fmt.Errorf("message type not found: %s", messageType)
	}

	c, err := wire.NewDynamicMessage(msg)
	if err != nil {
		return nil, err
	}
	p.codecs[messageType] = c
	return c, nil
}
