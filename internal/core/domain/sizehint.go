package domain

import "fmt"

// SizeHintKind classifies what a frame header reveals about the original
// uncompressed size.
type SizeHintKind int

const (
	// SizeKnown means the header declares the exact uncompressed size.
	SizeKnown SizeHintKind = iota + 1

	// SizeUnknown means the frame is well formed but its header does not
	// carry a content size. Such frames require chunked decompression.
	SizeUnknown

	// SizeInvalid means the bytes do not begin with a valid frame header.
	SizeInvalid
)

func (k SizeHintKind) String() string {
	switch k {
	case SizeKnown:
		return "known"
	case SizeUnknown:
		return "unknown"
	case SizeInvalid:
		return "invalid"
	default:
		return "unspecified"
	}
}

// SizeHint is the result of inspecting a frame's leading metadata.
// Size is meaningful only when Kind is SizeKnown.
type SizeHint struct {
	Kind SizeHintKind
	Size uint64
}

// KnownSize reports a frame whose header declares n uncompressed bytes.
func KnownSize(n uint64) SizeHint {
	return SizeHint{Kind: SizeKnown, Size: n}
}

// UnknownSize reports a well-formed frame without a declared content size.
func UnknownSize() SizeHint {
	return SizeHint{Kind: SizeUnknown}
}

// InvalidFrame reports bytes that are not a valid frame header.
func InvalidFrame() SizeHint {
	return SizeHint{Kind: SizeInvalid}
}

// Known reports whether the hint carries a usable size.
func (h SizeHint) Known() bool {
	return h.Kind == SizeKnown
}

func (h SizeHint) String() string {
	if h.Kind == SizeKnown {
		return fmt.Sprintf("known(%d)", h.Size)
	}
	return h.Kind.String()
}
