package docconv

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the library.
var (
	// ErrUnsupportedSource matches any [UnsupportedSourceError].
	ErrUnsupportedSource = errors.New("docconv: unsupported source")

	// ErrNotAnImage matches any [NotAnImageError].
	ErrNotAnImage = errors.New("docconv: source must be an image")

	// ErrDecode matches any [DecodeError].
	ErrDecode = errors.New("docconv: decode failed")

	// ErrEncode matches any [EncodeError].
	ErrEncode = errors.New("docconv: encode failed")

	// ErrUnknownFormat is returned by [ParseFormat] for names outside the catalog.
	ErrUnknownFormat = errors.New("docconv: unknown format")

	// ErrNoInput is returned by [MergePDFs] when called without documents.
	ErrNoInput = errors.New("docconv: no input documents")

	// ErrClosed is returned when attempting to use a closed [ChromeRenderer].
	ErrClosed = errors.New("docconv: renderer is closed")
)

// UnsupportedSourceError reports a (source, target) pair with no defined transform.
type UnsupportedSourceError struct {
	Target     Format
	SourceType string
}

func (e *UnsupportedSourceError) Error() string {
	src := e.SourceType
	if src == "" {
		src = "(none)"
	}
	return fmt.Sprintf("docconv: unsupported source %s for %s", src, e.Target)
}

func (e *UnsupportedSourceError) Is(target error) bool { return target == ErrUnsupportedSource }

// NotAnImageError reports an image-only target requested for non-image input.
type NotAnImageError struct {
	Target     Format
	SourceType string
}

func (e *NotAnImageError) Error() string {
	return fmt.Sprintf("docconv: source must be an image for %s, got %q", e.Target, e.SourceType)
}

func (e *NotAnImageError) Is(target error) bool { return target == ErrNotAnImage }

// DecodeError wraps a failure to decode the input bytes.
type DecodeError struct {
	SourceType string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("docconv: decoding %s: %v", e.SourceType, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// EncodeError wraps a failure to produce output bytes.
type EncodeError struct {
	Target Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("docconv: encoding %s: %v", e.Target, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

func (e *EncodeError) Is(target error) bool { return target == ErrEncode }

// errEmptyOutput is wrapped by EncodeError when an encoder produced nothing.
var errEmptyOutput = errors.New("encoder produced no output")
