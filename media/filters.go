// Package media defines the domain models and collaborator interfaces for stream discovery and retrieval.
package media

import "github.com/samber/mo"

// Filters is the immutable constraint set applied when ranking flavors.
// It is supplied once per invocation and never mutated during processing.
type Filters struct {
	// MaxHeight is the video height ceiling in pixels.
	MaxHeight mo.Option[int]
	// MaxBitrate is the bitrate ceiling in kbps.
	MaxBitrate mo.Option[int]
	// EnabledBackends lists transfer backends in order of preference.
	// Streams served by backends not listed here are excluded.
	EnabledBackends []string
	// LatestOnly restricts playlist resolution to the most recent clip.
	LatestOnly bool
}

// NewFilters returns a constraint set with the given backend preference and no
// quality ceilings.
func NewFilters(backends ...string) Filters {
	return Filters{EnabledBackends: backends}
}
