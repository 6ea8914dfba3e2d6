package dl

import (
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/virta-dl/virta/backend"
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/key"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/outcome"
	"github.com/virta-dl/virta/output"
	"github.com/virta-dl/virta/registry"
	"github.com/virta-dl/virta/util"
)

// Downloader orchestrates playlist processing: it resolves clips through the
// extractor, selects a flavor per clip, attempts its streams backend by
// backend, and folds per-clip outcomes into a single playlist result.
//
// Processing is strictly sequential. There is at most one active transfer at
// any time, which keeps partial-file cleanup ordering deterministic.
type Downloader struct {
	extractor media.Extractor
	geo       media.Geolocator
	report    Reporter

	// resolve maps a stream handle onto its transfer backend. Replaceable so
	// that tests can substitute recording fakes.
	resolve func(stream *media.Stream) (backend.Backend, error)
}

// New constructs a Downloader. The geolocator may be nil, in which case no
// region hints are printed. A nil reporter discards diagnostics.
func New(extractor media.Extractor, geo media.Geolocator, report Reporter) *Downloader {
	if report == nil {
		report = NewNopReporter()
	}

	d := &Downloader{
		extractor: extractor,
		geo:       geo,
		report:    report,
	}
	d.resolve = func(stream *media.Stream) (backend.Backend, error) {
		return backend.ForStream(stream, report)
	}

	return d
}

// DownloadClips resolves ref into a playlist and saves every clip to disk.
// Any outcome other than success or incomplete makes the engine fall back to
// the next backend capable of serving the chosen flavor.
func (d *Downloader) DownloadClips(ref string, ctx *output.Context, filters media.Filters) outcome.Code {
	playlist, err := d.extractor.Playlist(ref, filters.LatestOnly)
	if err != nil {
		d.report.Errorf("Failed to resolve %s: %v", ref, err)
		return outcome.Failed
	}

	if !d.checkOutputConfig(playlist, ctx) {
		return outcome.Failed
	}

	attempt := func(clip *media.Clip, stream *media.Stream) (outcome.Code, string) {
		be, err := d.resolve(stream)
		if err != nil {
			d.report.Errorf("Downloading the stream at %s is not supported: %v", clip.Webpage, err)
			d.report.Errorf("Try --show-url")
			return outcome.Failed, ""
		}

		be.WarnOnUnsupportedFeature(ctx)

		outputFile, err := output.Filename(clip, be.FileExtension(ctx.PreferredFormat), ctx)
		if err != nil {
			d.report.Errorf("%v", err)
			return outcome.Failed, ""
		}

		if d.shouldSkip(outputFile, be, clip, ctx) {
			d.report.Infof("%s has already been downloaded.", outputFile)
			return outcome.Success, outputFile
		}

		d.report.Infof("Output file: %s", outputFile)
		code := be.Save(outputFile, clip, ctx)

		if code == outcome.Success {
			d.report.Infof("Stream saved to %s", outputFile)
			d.postprocess(ctx.PostprocessCommand, outputFile)
			d.record(clip, outputFile)
		}

		return code, outputFile
	}

	needsRetry := func(code outcome.Code) bool {
		return code != outcome.Success && code != outcome.Incomplete
	}

	return d.process(playlist, attempt, needsRetry, filters)
}

// Pipe streams the first clip of the playlist to standard output. Only a
// subprocess launch failure is retryable: once bytes may have reached the
// destination pipe, switching backends cannot recover the stream.
func (d *Downloader) Pipe(ref string, ctx *output.Context, filters media.Filters) outcome.Code {
	playlist, err := d.extractor.Playlist(ref, filters.LatestOnly)
	if err != nil {
		d.report.Errorf("Failed to resolve %s: %v", ref, err)
		return outcome.Failed
	}

	// Only one stream can be piped. Drop the rest.
	if len(playlist) > 1 {
		playlist = playlist[:1]
	}

	attempt := func(clip *media.Clip, stream *media.Stream) (outcome.Code, string) {
		be, err := d.resolve(stream)
		if err != nil {
			d.report.Errorf("Piping the stream at %s is not supported: %v", clip.Webpage, err)
			return outcome.Failed, ""
		}

		be.WarnOnUnsupportedFeature(ctx)
		return be.Pipe(ctx), ""
	}

	needsRetry := func(code outcome.Code) bool {
		return code == outcome.SubprocessExecuteFailed
	}

	return d.process(playlist, attempt, needsRetry, filters)
}

// process iterates the playlist sequentially, folding per-clip outcomes into
// one aggregated code. A failed clip never aborts the loop; configuration
// errors are rejected before the loop starts. The returned code is internal:
// callers map it through outcome.Code.External for the process exit status.
func (d *Downloader) process(
	playlist []string,
	attempt AttemptFunc,
	needsRetry func(outcome.Code) bool,
	filters media.Filters,
) outcome.Code {
	if len(playlist) == 0 {
		d.report.Errorf("No streams found")
		return outcome.Success
	}

	overall := outcome.Success

	for _, ref := range playlist {
		clip, err := d.extractor.Clip(ref)
		if err != nil {
			d.report.Errorf("Failed to extract %s: %v", ref, err)
			overall = outcome.Failed
			continue
		}

		selection := Select(clip.Flavors, filters, d.report)

		switch {
		case selection.Empty():
			d.report.Errorf("No stream found")
			overall = outcome.Failed

		case selection.Failed():
			d.report.Errorf("Unsupported stream: %s", selection.Reason())
			d.printGeoWarning(clip)
			overall = outcome.Failed

		case allInvalid(selection.Streams()):
			d.report.Errorf("Unsupported stream: %s", selection.Streams()[0].ErrorMessage)
			d.printGeoWarning(clip)
			overall = outcome.Failed

		default:
			code, _ := d.tryStreams(clip, selection.Streams(), attempt, needsRetry)
			// Failed is sticky; otherwise the latest non-success outcome wins.
			if code != outcome.Success && overall != outcome.Failed {
				overall = code
			}
		}
	}

	return overall
}

// checkOutputConfig rejects ambiguous output naming before any transfer
// starts: several clips cannot share one fixed filename, nor be named by a
// template that renders the same literal for every clip.
func (d *Downloader) checkOutputConfig(playlist []string, ctx *output.Context) bool {
	if len(playlist) <= 1 {
		return true
	}

	if ctx.Filename.IsPresent() {
		d.report.Errorf(
			"The source is a playlist with %s, but only one output file specified",
			util.Quantify(len(playlist), "clip", "clips"),
		)
		return false
	}

	if ctx.Template.IsConstant() {
		d.report.Errorf(
			"The source is a playlist with multiple clips, but the output template is a literal: %s",
			ctx.Template.Pattern(),
		)
		return false
	}

	return true
}

// shouldSkip reports whether the output already holds the full stream: the
// file exists and overwriting is off, or the backend recognizes a complete
// earlier download (only meaningful when no slicing is active).
func (d *Downloader) shouldSkip(outputFile string, be backend.Backend, clip *media.Clip, ctx *output.Context) bool {
	if !ctx.Overwrite {
		if exists, err := filesystem.API().Exists(outputFile); err == nil && exists {
			return true
		}
	}

	return !ctx.Limits.SlicingActive() && be.FullyDownloaded(outputFile, clip, ctx)
}

// printGeoWarning explains a region-locked clip when the caller appears to be
// located outside its availability region.
func (d *Downloader) printGeoWarning(clip *media.Clip) {
	if d.geo == nil {
		return
	}

	region := clip.Region
	if region == "" {
		region = media.DefaultRegion
	}

	if !d.geo.LocatedIn(region) {
		d.report.Errorf(
			"This clip is only available in %s and according to the service you are located elsewhere",
			region,
		)
	}
}

// postprocess runs the configured command with the saved file. Best-effort.
func (d *Downloader) postprocess(command, outputFile string) {
	if command == "" {
		return
	}

	if code := backend.ExecuteCommand([]string{command, outputFile}, d.report); code != outcome.Success {
		d.report.Warnf("Postprocessing command %s failed", command)
	}
}

// record registers a completed download in the local registry.
func (d *Downloader) record(clip *media.Clip, outputFile string) {
	if !viper.GetBool(key.DownloadRecord) {
		return
	}

	if err := registry.Add(clip, outputFile); err != nil {
		d.report.Warnf("Failed to record the download: %v", err)
	}
}

func allInvalid(streams []*media.Stream) bool {
	return lo.EveryBy(streams, func(s *media.Stream) bool {
		return !s.Valid()
	})
}
