package api

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a transport failure. Timeouts and unreachable hosts both
// surface without an HTTP status, so the kind is what tells them apart.
type Kind string

const (
	KindHTTP    Kind = "http"
	KindTimeout Kind = "timeout"
	KindNetwork Kind = "network"
)

// Error is the transport-level failure returned by the client. Business
// failures never take this path; they come back in-band in the envelope.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Data    json.RawMessage
}

func (e *Error) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: %s (%s)", e.Message, e.Kind)
}

// Retriable reports whether a request that failed this way is worth
// repeating. Client errors are the caller's fault and never retried.
func (e *Error) Retriable() bool {
	switch e.Kind {
	case KindTimeout, KindNetwork:
		return true
	case KindHTTP:
		return e.Status >= 500
	}
	return false
}
