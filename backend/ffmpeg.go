package backend

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/outcome"
	"github.com/virta-dl/virta/output"
)

// ffmpegBackend remuxes HLS/DASH manifests with an external ffmpeg process.
// It supports stream slicing and container selection, so it is the preferred
// backend for manifest streams.
type ffmpegBackend struct {
	stream *media.Stream
	report Reporter
}

func newFFmpegBackend(stream *media.Stream, report Reporter) Backend {
	return &ffmpegBackend{stream: stream, report: report}
}

func (b *ffmpegBackend) Name() string {
	return FFmpeg
}

func (b *ffmpegBackend) Save(outputFile string, clip *media.Clip, ctx *output.Context) outcome.Code {
	args := b.args(ctx, outputFile)
	return Execute(args, os.Stdout, b.report)
}

func (b *ffmpegBackend) Pipe(ctx *output.Context) outcome.Code {
	args := b.args(ctx, "pipe:1")
	return Execute(args, os.Stdout, b.report)
}

// args builds the ffmpeg command line. Streams are copied without
// re-encoding; slicing limits map onto the -ss and -t input options.
func (b *ffmpegBackend) args(ctx *output.Context, dest string) []string {
	args := []string{"ffmpeg", "-loglevel", "warning", "-thread_queue_size", "2048"}

	if ctx.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}

	if header := b.headerArg(); header != "" {
		args = append(args, "-headers", header)
	}

	if ctx.Limits.StartPosition > 0 {
		args = append(args, "-ss", strconv.Itoa(ctx.Limits.StartPosition))
	}

	args = append(args, "-i", b.stream.URL)

	if ctx.Limits.Duration > 0 {
		args = append(args, "-t", strconv.Itoa(ctx.Limits.Duration))
	}

	args = append(args, "-c", "copy")

	if dest == "pipe:1" {
		args = append(args, "-f", containerFormat(ctx.PreferredFormat))
	}

	return append(args, "-dn", dest)
}

// headerArg renders stream headers into ffmpeg's single -headers value.
// Keys are sorted so that the command line is stable across runs.
func (b *ffmpegBackend) headerArg() string {
	if len(b.stream.Headers) == 0 {
		return ""
	}

	keys := lo.Keys(b.stream.Headers)
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s: %s\r\n", k, b.stream.Headers[k])
	}
	return sb.String()
}

func (b *ffmpegBackend) FileExtension(preferredFormat string) string {
	switch strings.TrimPrefix(preferredFormat, ".") {
	case "mp4":
		return "mp4"
	default:
		return "mkv"
	}
}

// FullyDownloaded probes the duration of an existing output file and compares
// it against the clip metadata. A second of tolerance absorbs container
// rounding.
func (b *ffmpegBackend) FullyDownloaded(outputFile string, clip *media.Clip, ctx *output.Context) bool {
	if clip.DurationSeconds <= 0 {
		return false
	}

	probed, err := probeDuration(outputFile)
	if err != nil {
		return false
	}

	return probed >= float64(clip.DurationSeconds)-1
}

func (b *ffmpegBackend) WarnOnUnsupportedFeature(ctx *output.Context) {}

func containerFormat(preferredFormat string) string {
	if strings.TrimPrefix(preferredFormat, ".") == "mp4" {
		return "mp4"
	}
	return "matroska"
}

func probeDuration(path string) (float64, error) {
	out, err := exec.Command(
		"ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	).Output()
	if err != nil {
		return 0, err
	}

	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}
