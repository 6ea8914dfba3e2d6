// Package media defines the domain models and collaborator interfaces for stream discovery and retrieval.
package media

// Extractor resolves platform references into playlists and clips.
// Implementations parse site- or manifest-specific data; the download engine
// only consumes the resulting domain models.
type Extractor interface {
	// Playlist resolves a content reference into the ordered list of clip
	// references it contains. With latestOnly set, only the most recent clip
	// is returned.
	Playlist(ref string, latestOnly bool) ([]string, error)

	// Clip resolves a single clip reference into its full description.
	// Extraction failures may be reported either through the error or as a
	// failed clip carrying the diagnostic in its flavors.
	Clip(ref string) (*Clip, error)
}

// Geolocator answers whether the caller appears to be located in a region.
// Used only to print a hint when a region-locked clip yields no usable stream.
type Geolocator interface {
	LocatedIn(region string) bool
}
