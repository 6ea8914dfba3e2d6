// Package media defines the domain models and collaborator interfaces for stream discovery and retrieval.
package media

import (
	"fmt"

	"github.com/samber/mo"
	"github.com/virta-dl/virta/util"
)

// Type categorizes the media content of a flavor.
type Type string

const (
	Video Type = "video"
	Audio Type = "audio"
)

// Flavor represents one encoding variant of a clip, reachable through one or more transfer backends.
// Height, width and bitrate are optional: a flavor may omit any of them when the
// platform does not advertise the value.
type Flavor struct {
	MediaType Type
	Height    mo.Option[int]
	Width     mo.Option[int]
	Bitrate   mo.Option[int]

	// Streams holds the backend-specific handles capable of serving this
	// flavor. A flavor with no streams is meaningless and is dropped before
	// ranking.
	Streams []*Stream
}

// NewFailedFlavor constructs a placeholder flavor carrying a single invalid
// stream with the given diagnostic. It stands in for a flavor list that could
// not be resolved at all.
func NewFailedFlavor(message string) *Flavor {
	return &Flavor{
		Streams: []*Stream{NewFailedStream(message)},
	}
}

func (f *Flavor) String() string {
	return fmt.Sprintf(
		"%s %dx%d @ %d kbps (%s)",
		f.MediaType,
		f.Width.OrElse(0),
		f.Height.OrElse(0),
		f.Bitrate.OrElse(0),
		util.Quantify(len(f.Streams), "stream", "streams"),
	)
}
