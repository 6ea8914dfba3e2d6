// Package extractor resolves content references into clips by reading stream
// manifests, either from the local filesystem or from a remote host.
//
// A manifest is a JSON document: either a playlist ({"clips": [ref, ...]})
// whose entries are themselves manifest references, or a single clip object
// describing flavors and their stream handles.
package extractor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/internal/cache"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/network"
	"github.com/virta-dl/virta/util"
)

type manifest struct {
	// Clips is set on playlist manifests. Entries are manifest references,
	// ordered oldest first.
	Clips []string `json:"clips,omitempty"`

	// The remaining fields describe a single clip.
	Webpage             string        `json:"webpage,omitempty"`
	Title               string        `json:"title,omitempty"`
	DurationSeconds     int           `json:"duration_seconds,omitempty"`
	Region              string        `json:"region,omitempty"`
	PublishTimestamp    string        `json:"publish_timestamp,omitempty"`
	ExpirationTimestamp string        `json:"expiration_timestamp,omitempty"`
	Flavors             []flavorDoc   `json:"flavors,omitempty"`
	Subtitles           []subtitleDoc `json:"subtitles,omitempty"`
}

type flavorDoc struct {
	MediaType string      `json:"media_type,omitempty"`
	Height    *int        `json:"height,omitempty"`
	Width     *int        `json:"width,omitempty"`
	Bitrate   *int        `json:"bitrate,omitempty"`
	Streams   []streamDoc `json:"streams"`
}

type streamDoc struct {
	Backend string            `json:"backend"`
	URL     string            `json:"url,omitempty"`
	Error   string            `json:"error,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

type subtitleDoc struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

// Manifest implements media.Extractor over manifest documents.
type Manifest struct{}

// NewManifest returns the manifest-backed extractor.
func NewManifest() *Manifest {
	return &Manifest{}
}

// Playlist resolves ref into the ordered list of clip references. A single
// clip manifest yields a playlist of itself. With latestOnly set, only the
// newest entry of a playlist is kept.
func (m *Manifest) Playlist(ref string, latestOnly bool) ([]string, error) {
	doc, err := m.fetch(ref)
	if err != nil {
		return nil, err
	}

	if len(doc.Clips) == 0 {
		return []string{ref}, nil
	}

	clips := doc.Clips
	if latestOnly {
		clips = clips[len(clips)-1:]
	}

	return clips, nil
}

// Clip resolves a single clip reference into its domain model. A manifest
// that cannot be parsed surfaces as a failed clip rather than an error, so
// that one broken playlist entry does not hide its diagnostic.
func (m *Manifest) Clip(ref string) (*media.Clip, error) {
	doc, err := m.fetch(ref)
	if err != nil {
		return media.NewFailedClip(ref, err.Error()), nil
	}

	if len(doc.Clips) > 0 {
		return nil, fmt.Errorf("%s is a playlist, not a clip", ref)
	}

	clip := &media.Clip{
		Webpage:             lo.Ternary(doc.Webpage != "", doc.Webpage, ref),
		Title:               doc.Title,
		DurationSeconds:     doc.DurationSeconds,
		Region:              doc.Region,
		PublishTimestamp:    doc.PublishTimestamp,
		ExpirationTimestamp: doc.ExpirationTimestamp,
	}

	for _, fd := range doc.Flavors {
		clip.Flavors = append(clip.Flavors, toFlavor(fd))
	}

	for _, sd := range doc.Subtitles {
		clip.Subtitles = append(clip.Subtitles, media.Subtitle{URL: sd.URL, Lang: sd.Lang})
	}

	return clip, nil
}

func toFlavor(fd flavorDoc) *media.Flavor {
	fl := &media.Flavor{
		MediaType: media.Video,
		Height:    optional(fd.Height),
		Width:     optional(fd.Width),
		Bitrate:   optional(fd.Bitrate),
	}

	if strings.EqualFold(fd.MediaType, "audio") {
		fl.MediaType = media.Audio
	}

	for _, sd := range fd.Streams {
		fl.Streams = append(fl.Streams, &media.Stream{
			Backend:      sd.Backend,
			URL:          sd.URL,
			ErrorMessage: sd.Error,
			Headers:      sd.Headers,
		})
	}

	return fl
}

func optional(v *int) mo.Option[int] {
	if v == nil {
		return mo.None[int]()
	}
	return mo.Some(*v)
}

// fetch loads and parses a manifest from a URL or a local path. Remote
// documents are cached for a short period to keep playlist processing from
// refetching the same manifest per clip.
func (m *Manifest) fetch(ref string) (*manifest, error) {
	if isRemote(ref) {
		return m.fetchRemote(ref)
	}

	raw, err := filesystem.API().ReadFile(ref)
	if err != nil {
		return nil, err
	}

	return parse(raw)
}

func (m *Manifest) fetchRemote(ref string) (*manifest, error) {
	key := cache.GenerateKey(ref)

	var cached manifest
	if cache.Read(key, &cached) {
		return &cached, nil
	}

	resp, err := network.Client.Get(ref)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", ref, resp.Status)
	}

	var doc manifest
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ref, err)
	}

	_ = cache.Write(key, &doc)
	return &doc, nil
}

func parse(raw []byte) (*manifest, error) {
	var doc manifest
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
