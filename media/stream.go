// Package media defines the domain models and collaborator interfaces for stream discovery and retrieval.
package media

// Stream is a capability to materialize one flavor through one specific
// transfer backend. It is constructed by the extraction collaborator, consumed
// at most once per attempt by the retry loop, and never mutated.
type Stream struct {
	// Backend identifier (e.g. "ffmpeg", "wget").
	Backend string
	// Opaque reference used to construct the transfer operation.
	URL string
	// ErrorMessage is non-empty iff the handle is invalid.
	ErrorMessage string
	// HTTP headers required by the stream host, if any.
	Headers map[string]string
}

// Valid reports whether the handle can be used for a transfer attempt.
func (s *Stream) Valid() bool {
	return s.ErrorMessage == ""
}

// NewFailedStream constructs an invalid handle carrying a diagnostic message.
func NewFailedStream(message string) *Stream {
	return &Stream{ErrorMessage: message}
}

func (s *Stream) String() string {
	if !s.Valid() {
		return "invalid stream: " + s.ErrorMessage
	}
	return s.Backend + " " + s.URL
}
