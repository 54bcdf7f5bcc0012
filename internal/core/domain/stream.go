package domain

// StreamState tracks the lifecycle of one streaming operation.
// Valid transitions:
//
//	Created → Running → Finalizing → Done
//
// StreamFailed is terminal and reachable from any non-terminal state.
// A failed stream cannot be resumed; callers must restart the whole
// operation from a fresh stream.
type StreamState int

const (
	// StreamCreated means the codec context and working buffers have been
	// acquired but no data has been processed yet.
	StreamCreated StreamState = iota + 1

	// StreamRunning means chunks are being consumed from the source and
	// produced output is being flushed to the sink.
	StreamRunning

	// StreamFinalizing means the source is exhausted and the remaining
	// internal state is being drained to the sink.
	StreamFinalizing

	// StreamDone means the sink has received the complete output and the
	// codec context has been released.
	StreamDone

	// StreamFailed means the operation was aborted by an error or by the
	// caller; the codec context has been released.
	StreamFailed
)

func (s StreamState) String() string {
	switch s {
	case StreamCreated:
		return "created"
	case StreamRunning:
		return "running"
	case StreamFinalizing:
		return "finalizing"
	case StreamDone:
		return "done"
	case StreamFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state permits no further transitions.
func (s StreamState) Terminal() bool {
	return s == StreamDone || s == StreamFailed
}
