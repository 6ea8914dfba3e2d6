package dl

import (
	"encoding/json"

	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/outcome"
	"github.com/virta-dl/virta/output"
	"github.com/virta-dl/virta/util"
)

// URLs prints the selected stream URL of every clip instead of downloading.
// The selection honors the same constraints as a download, so the printed URL
// is exactly what a transfer would use. Clips without a usable stream are
// skipped without failing the run.
func (d *Downloader) URLs(ref string, print func(string), filters media.Filters) outcome.Code {
	return d.each(ref, filters, func(clip *media.Clip) {
		selection := Select(clip.Flavors, filters, d.report)
		if selection.Empty() || selection.Failed() {
			return
		}

		for _, s := range selection.Streams() {
			if s.Valid() {
				print(s.URL)
				return
			}
		}
	})
}

// Titles prints the sanitized output base name of every clip, exactly the
// name a download of that clip would be saved under.
func (d *Downloader) Titles(ref string, print func(string), ctx *output.Context, filters media.Filters) outcome.Code {
	return d.each(ref, filters, func(clip *media.Clip) {
		if name := util.SanitizeFilename(ctx.Template.Render(clip)); name != "" {
			print(name)
		}
	})
}

// Metadata prints the metadata of every clip of the playlist as one JSON array.
func (d *Downloader) Metadata(ref string, print func(string), filters media.Filters) outcome.Code {
	overall := outcome.Success
	var metadata []media.Metadata

	code := d.each(ref, filters, func(clip *media.Clip) {
		metadata = append(metadata, clip.Metadata())
	})
	if code != outcome.Success {
		overall = code
	}

	if metadata == nil {
		metadata = []media.Metadata{}
	}

	encoded, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		d.report.Errorf("Failed to encode metadata: %v", err)
		return outcome.Failed
	}

	print(string(encoded))
	return overall
}

// each resolves the playlist and visits every extractable clip. Extraction
// failures mark the run failed but never abort the iteration.
func (d *Downloader) each(ref string, filters media.Filters, visit func(clip *media.Clip)) outcome.Code {
	playlist, err := d.extractor.Playlist(ref, filters.LatestOnly)
	if err != nil {
		d.report.Errorf("Failed to resolve %s: %v", ref, err)
		return outcome.Failed
	}

	overall := outcome.Success

	for _, clipRef := range playlist {
		clip, err := d.extractor.Clip(clipRef)
		if err != nil {
			d.report.Errorf("Failed to extract %s: %v", clipRef, err)
			overall = outcome.Failed
			continue
		}

		visit(clip)
	}

	return overall
}
