/*
PURPOSE:
  Error taxonomy for the wire client. Callers branch on error type,
  not on string prefixes.

REQUIREMENTS:
  User-specified:
  - Distinguish connection failures, bad HTTP statuses, and mid-stream
    read failures.

  Implementation-discovered:
  - Unwrap support so callers can reach the underlying net error.

ARCHITECTURE INTEGRATION:
  - Produced by: internal/engine/client.go
  - Matched by: internal/engine/{bench,interactive}.go via errors.As

ERROR HANDLING:
  - No retries here or anywhere in this package; retry policy belongs
    to callers.

IMPLEMENTATION RULES:
  - Pointer receivers; errors.As targets are **TransportError etc.

USAGE:
  var pe *engine.ProtocolError
  if errors.As(err, &pe) { ... }

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - None.
*/

package engine

import "fmt"

// TransportError reports a failure to reach the server: connection
// refused, DNS failure, or a timeout before any response bytes.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a non-2xx HTTP status from the endpoint.
type ProtocolError struct {
	StatusCode int
	Status     string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: server returned %s", e.Status)
}

// StreamError reports an I/O failure while reading the response
// stream, after a successful status was already received.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream read error: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
