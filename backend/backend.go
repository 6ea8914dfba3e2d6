// Package backend implements the transfer backends that materialize a stream
// into an output file or a pipe.
package backend

import (
	"fmt"

	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/outcome"
	"github.com/virta-dl/virta/output"
)

// Backend names as they appear in stream handles and on the command line.
const (
	FFmpeg = "ffmpeg"
	Wget   = "wget"
)

// Reporter is the diagnostics sink a backend writes its messages to.
type Reporter interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// Backend performs the actual byte transfer for one stream handle.
type Backend interface {
	Name() string

	// Save transfers the stream into outputFile.
	Save(outputFile string, clip *media.Clip, ctx *output.Context) outcome.Code

	// Pipe transfers the stream to standard output.
	Pipe(ctx *output.Context) outcome.Code

	// FileExtension picks the output extension for the preferred container
	// format, without a leading dot.
	FileExtension(preferredFormat string) string

	// FullyDownloaded reports whether outputFile already holds the complete
	// stream from an earlier run.
	FullyDownloaded(outputFile string, clip *media.Clip, ctx *output.Context) bool

	// WarnOnUnsupportedFeature reports context features this backend ignores.
	WarnOnUnsupportedFeature(ctx *output.Context)
}

// Names lists every known backend in default preference order.
func Names() []string {
	return []string{FFmpeg, Wget}
}

// ForStream resolves the backend named by a stream handle.
func ForStream(stream *media.Stream, report Reporter) (Backend, error) {
	switch stream.Backend {
	case FFmpeg:
		return newFFmpegBackend(stream, report), nil
	case Wget:
		return newWgetBackend(stream, report), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", stream.Backend)
	}
}
