// Package media defines the domain models and collaborator interfaces for stream discovery and retrieval.
package media

// DefaultRegion is assumed for clips that do not declare an availability region.
const DefaultRegion = "FI"

// Subtitle references an external subtitle track.
type Subtitle struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

// Clip represents a single piece of content resolved from the platform,
// together with all of its encoding flavors.
type Clip struct {
	// URL of the page the clip was resolved from.
	Webpage string
	Title   string
	// Total duration in seconds, 0 when unknown.
	DurationSeconds int
	// Availability region code declared by the platform ("" means DefaultRegion).
	Region string
	// Publish and expiration timestamps in RFC 3339, empty when unknown.
	PublishTimestamp    string
	ExpirationTimestamp string

	Flavors   []*Flavor
	Subtitles []Subtitle
}

// NewFailedClip constructs a clip whose extraction failed, carrying the
// diagnostic as its only (invalid) flavor so that downstream selection
// surfaces it uniformly.
func NewFailedClip(webpage, message string) *Clip {
	return &Clip{
		Webpage: webpage,
		Flavors: []*Flavor{NewFailedFlavor(message)},
	}
}

func (c *Clip) String() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Webpage
}
