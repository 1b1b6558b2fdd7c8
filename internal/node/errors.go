package node

import "errors"

// Error taxonomy surfaced by the client. Callers classify with errors.Is;
// retry policy lives in the resolver, not here.
var (
	// ErrUnavailable marks transient transport failures: connection
	// refused, timeouts, or the node answering 503 during warmup.
	ErrUnavailable = errors.New("node unavailable")

	// ErrNotFound marks identifiers the node does not know about. The
	// entity may be unmined, pruned, or reorged away.
	ErrNotFound = errors.New("not found")

	// ErrProtocol marks responses of an unexpected shape.
	ErrProtocol = errors.New("node protocol error")
)
