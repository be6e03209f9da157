package slp

import (
	"errors"
	"fmt"
)

// Decode failure causes, wrapped inside *ParseError.
var (
	// ErrBadHeader means the container preamble or a section marker did not
	// match the expected bytes.
	ErrBadHeader = errors.New("bad container header")

	// ErrUnknownEvent means an event code appeared in the stream without an
	// entry in the payload-size table, so its length is unknowable.
	ErrUnknownEvent = errors.New("event code missing from payload-size table")

	// ErrTruncated means the stream ended inside a record.
	ErrTruncated = errors.New("unexpected end of stream")

	// ErrBadMetadata means the trailing metadata document failed to decode.
	ErrBadMetadata = errors.New("malformed metadata document")
)

// ParseError is the one error type every decode failure surfaces as. Offset
// is the byte position in the source where decoding stopped.
type ParseError struct {
	Source string
	Offset int64
	Err    error
}

// Error formats the failure with its source and byte offset.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: offset 0x%x: %v", e.Source, e.Offset, e.Err)
}

// Unwrap exposes the cause for errors.Is checks.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErr(source string, offset int64, err error) *ParseError {
	return &ParseError{Source: source, Offset: offset, Err: err}
}

func parseErrf(source string, offset int64, format string, args ...interface{}) *ParseError {
	return &ParseError{Source: source, Offset: offset, Err: fmt.Errorf(format, args...)}
}
