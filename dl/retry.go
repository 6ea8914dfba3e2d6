package dl

import (
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/outcome"
)

// AttemptFunc performs one transfer attempt for a clip through a specific
// stream handle, returning the result and the path of the output artifact
// ("" when the attempt produced none).
type AttemptFunc func(clip *media.Clip, stream *media.Stream) (outcome.Code, string)

// tryStreams attempts candidates in order until one of them reaches a
// terminal outcome. Invalid handles contribute no attempt. Before every new
// attempt the partial artifact of the previous failed one is deleted, so the
// cleanup of attempt N always happens before attempt N+1 starts.
//
// When the candidate list is exhausted the last recorded outcome is returned,
// defaulting to failed when no valid candidate existed at all.
func (d *Downloader) tryStreams(
	clip *media.Clip,
	streams []*media.Stream,
	attempt AttemptFunc,
	needsRetry func(outcome.Code) bool,
) (outcome.Code, string) {
	latest := outcome.Failed
	outputFile := ""

	for _, stream := range streams {
		if !stream.Valid() {
			continue
		}

		if outputFile != "" {
			d.removePartialFile(outputFile)
		}

		d.report.Debugf("Now trying backend %s", stream.Backend)

		latest, outputFile = attempt(clip, stream)
		if needsRetry(latest) {
			continue
		}

		return latest, outputFile
	}

	return latest, outputFile
}

// removePartialFile deletes the leftover of a failed attempt. Best-effort:
// a deletion failure is reported but never aborts the retry loop.
func (d *Downloader) removePartialFile(path string) {
	fs := filesystem.API()

	exists, err := fs.Exists(path)
	if err != nil || !exists {
		return
	}

	d.report.Debugf("Removing the partially downloaded file %s", path)
	if err := fs.Remove(path); err != nil {
		d.report.Warnf("Failed to remove a partial output file: %v", err)
	}
}
