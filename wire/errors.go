package wire

import (
	"errors"
	"fmt"
	"strings"
)

// Codec outcome errors. Both buffer conditions are ordinary recoverable
// results: the message-level driver decides whether to abort or continue.
var (
	// ErrBufferFull reports that a write would exceed the buffer's remaining
	// capacity. It is detected before any byte is written.
	ErrBufferFull = errors.New("buffer full: write exceeds remaining capacity")

	// ErrBufferUnderrun reports that fewer bytes remain in the buffer than a
	// read requires. The destination field is left unchanged.
	ErrBufferUnderrun = errors.New("buffer underrun: not enough bytes to read")

	// ErrLengthExceedsMax reports a length-delimited payload larger than the
	// field's construction-time bound.
	ErrLengthExceedsMax = errors.New("length-delimited payload exceeds field bound")

	// ErrWireTypeMismatch reports a decoded tag whose wire type does not match
	// the field registered under that number.
	ErrWireTypeMismatch = errors.New("wire type does not match field declaration")
)

// Varint decoding errors
var (
	ErrVarintOverflow = errors.New("varint overflow")
	ErrVarintTooLong  = errors.New("varint too long")
)

// FieldError represents an encoding/decoding error with a field path.
type FieldError struct {
	FieldPath []string // e.g., ["position", "latitude"]
	Err       error    // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}

	return fmt.Sprintf("error at proto path %s: %v", strings.Join(e.FieldPath, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *FieldError) Is(target error) bool {
	_, ok := target.(*FieldError)
	return ok
}

// wrapWithField wraps an error with a field name
func wrapWithField(err error, fieldName string) error {
	if err == nil {
		return nil
	}

	if fe, ok := err.(*FieldError); ok {
		return &FieldError{
			FieldPath: append([]string{fieldName}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: []string{fieldName},
		Err:       err,
	}
}
