// Package media defines the domain models and collaborator interfaces for stream discovery and retrieval.
package media

import (
	"sort"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// FlavorMetadata is the external JSON representation of one flavor.
type FlavorMetadata struct {
	MediaType Type           `json:"media_type"`
	Height    mo.Option[int] `json:"height"`
	Width     mo.Option[int] `json:"width"`
	Bitrate   mo.Option[int] `json:"bitrate"`
}

// Metadata is the external JSON representation of a clip, printed by the
// show-metadata mode. Stream handles are deliberately omitted: they are an
// internal transfer concern.
type Metadata struct {
	Webpage             string           `json:"webpage"`
	Title               string           `json:"title"`
	Flavors             []FlavorMetadata `json:"flavors"`
	DurationSeconds     int              `json:"duration_seconds"`
	Subtitles           []Subtitle       `json:"subtitles"`
	Region              string           `json:"region"`
	PublishTimestamp    string           `json:"publish_timestamp"`
	ExpirationTimestamp string           `json:"expiration_timestamp"`
}

// Metadata renders the clip for external consumption, with flavors sorted by
// ascending bitrate for stable output.
func (c *Clip) Metadata() Metadata {
	flavors := lo.Map(c.Flavors, func(f *Flavor, _ int) FlavorMetadata {
		return FlavorMetadata{
			MediaType: f.MediaType,
			Height:    f.Height,
			Width:     f.Width,
			Bitrate:   f.Bitrate,
		}
	})

	sort.SliceStable(flavors, func(i, j int) bool {
		return flavors[i].Bitrate.OrElse(0) < flavors[j].Bitrate.OrElse(0)
	})

	return Metadata{
		Webpage:             c.Webpage,
		Title:               c.Title,
		Flavors:             flavors,
		DurationSeconds:     c.DurationSeconds,
		Subtitles:           c.Subtitles,
		Region:              c.Region,
		PublishTimestamp:    c.PublishTimestamp,
		ExpirationTimestamp: c.ExpirationTimestamp,
	}
}
