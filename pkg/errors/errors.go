package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory classifies the failures a compression or decompression
// operation can surface. The category decides how callers should react:
// I/O failures may be retried with the same payload, codec failures are
// terminal for that frame.
type ErrorCategory int

const (
	// CategoryCodec indicates an algorithm-level failure: an invalid
	// compression level, a corrupt or truncated frame, or an internal
	// compressor/decompressor fault.
	CategoryCodec ErrorCategory = iota + 1

	// CategoryIO indicates a read failure on the source or a write
	// failure on the sink of a streaming operation.
	CategoryIO

	// CategorySizing indicates that one-shot decompression was requested
	// for a frame without a usable content-size hint, or with a declared
	// size exceeding the configured allocation cap.
	CategorySizing
)

// String returns the string representation of the error category.
// This is useful for logging, metrics, and error reporting.
func (c ErrorCategory) String() string {
	switch c {
	case CategoryCodec:
		return "codec"
	case CategoryIO:
		return "io"
	case CategorySizing:
		return "sizing"
	default:
		return "unknown"
	}
}

// Sentinel errors for the well-known frame-level failure modes. They are
// always wrapped inside a CodecError and can be matched with errors.Is.
var (
	ErrUnknownSize    = errors.New("unknown content size")
	ErrInvalidFrame   = errors.New("invalid frame")
	ErrTruncatedFrame = errors.New("truncated frame")
)

// CodecError is the error type returned by every codec operation.
// It carries the failing operation, the underlying diagnostic and a
// category distinguishing terminal codec faults from retryable I/O.
type CodecError struct {
	Err       error
	Operation string
	Timestamp time.Time
	Category  ErrorCategory
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("[%v] %s: %v : %s", e.Category, e.Operation, e.Err, e.Timestamp.String())
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// IsRetryAble returns whether errors of this category can be retried.
// This helps callers decide whether to retry failed operations.
func (e *CodecError) IsRetryAble() bool {
	switch e.Category {
	case CategoryIO:
		// I/O errors might be temporary (e.g., network hiccup, disk pressure).
		return true
	case CategoryCodec:
		// Codec errors are not retry able (corrupted or invalid frames).
		return false
	case CategorySizing:
		// Sizing errors require a different codec path, not a retry.
		return false
	default:
		return false
	}
}

// NewCodecError wraps an algorithm-level failure. The underlying error
// keeps the codec's own diagnostic string.
func NewCodecError(operation string, err error) *CodecError {
	return &CodecError{
		Err:       err,
		Operation: operation,
		Timestamp: time.Now(),
		Category:  CategoryCodec,
	}
}

// NewIOError wraps a source read or sink write failure.
func NewIOError(operation string, err error) *CodecError {
	return &CodecError{
		Err:       err,
		Operation: operation,
		Timestamp: time.Now(),
		Category:  CategoryIO,
	}
}

// NewSizingError wraps a missing or unusable content-size hint.
func NewSizingError(operation string, err error) *CodecError {
	return &CodecError{
		Err:       err,
		Operation: operation,
		Timestamp: time.Now(),
		Category:  CategorySizing,
	}
}

// IsCodecError reports whether err is a CodecError with an
// algorithm-level category.
func IsCodecError(err error) bool {
	return hasCategory(err, CategoryCodec)
}

// IsIOError reports whether err is a CodecError caused by source or
// sink I/O.
func IsIOError(err error) bool {
	return hasCategory(err, CategoryIO)
}

// IsSizingError reports whether err is a CodecError caused by a missing
// or oversized content-size hint.
func IsSizingError(err error) bool {
	return hasCategory(err, CategorySizing)
}

// IsRetryable reports whether the whole operation may be retried from
// scratch. Streaming state cannot be resumed after a failure.
func IsRetryable(err error) bool {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.IsRetryAble()
	}
	return false
}

func hasCategory(err error, category ErrorCategory) bool {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.Category == category
	}
	return false
}
