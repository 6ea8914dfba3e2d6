package backend

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/output"
)

type silentReporter struct{}

func (silentReporter) Errorf(string, ...any) {}
func (silentReporter) Warnf(string, ...any)  {}
func (silentReporter) Infof(string, ...any)  {}
func (silentReporter) Debugf(string, ...any) {}

func TestForStream(t *testing.T) {
	Convey("Stream handles resolve to their named backend", t, func() {
		report := silentReporter{}

		be, err := ForStream(&media.Stream{Backend: FFmpeg}, report)
		So(err, ShouldBeNil)
		So(be.Name(), ShouldEqual, FFmpeg)

		be, err = ForStream(&media.Stream{Backend: Wget}, report)
		So(err, ShouldBeNil)
		So(be.Name(), ShouldEqual, Wget)

		_, err = ForStream(&media.Stream{Backend: "rtmpdump"}, report)
		So(err, ShouldNotBeNil)
	})
}

func TestFFmpegArgs(t *testing.T) {
	Convey("Given an ffmpeg backend", t, func() {
		stream := &media.Stream{
			Backend: FFmpeg,
			URL:     "https://host/master.m3u8",
			Headers: map[string]string{"X-Forwarded-For": "10.0.0.1", "Referer": "https://example.fi"},
		}
		b := &ffmpegBackend{stream: stream, report: silentReporter{}}

		Convey("The command copies streams into the output file", func() {
			args := b.args(output.NewContext("/videos"), "/videos/out.mkv")
			joined := strings.Join(args, " ")

			So(args[0], ShouldEqual, "ffmpeg")
			So(joined, ShouldContainSubstring, "-i https://host/master.m3u8")
			So(joined, ShouldContainSubstring, "-c copy")
			So(joined, ShouldContainSubstring, "-n")
			So(args[len(args)-1], ShouldEqual, "/videos/out.mkv")
		})

		Convey("Headers are rendered sorted by key", func() {
			args := b.args(output.NewContext("/videos"), "out.mkv")
			joined := strings.Join(args, "\x00")

			So(joined, ShouldContainSubstring, "Referer: https://example.fi\r\nX-Forwarded-For: 10.0.0.1\r\n")
		})

		Convey("Slicing limits map onto -ss and -t", func() {
			ctx := output.NewContext("/videos")
			ctx.Limits = output.Limits{StartPosition: 30, Duration: 120}
			joined := strings.Join(b.args(ctx, "out.mkv"), " ")

			So(joined, ShouldContainSubstring, "-ss 30")
			So(joined, ShouldContainSubstring, "-t 120")
		})

		Convey("Overwrite switches -n to -y", func() {
			ctx := output.NewContext("/videos")
			ctx.Overwrite = true
			joined := strings.Join(b.args(ctx, "out.mkv"), " ")

			So(joined, ShouldContainSubstring, "-y")
			So(joined, ShouldNotContainSubstring, " -n ")
		})

		Convey("Piping adds an explicit container format", func() {
			joined := strings.Join(b.args(output.NewContext("/videos"), "pipe:1"), " ")
			So(joined, ShouldContainSubstring, "-f matroska")

			ctx := output.NewContext("/videos")
			ctx.PreferredFormat = "mp4"
			joined = strings.Join(b.args(ctx, "pipe:1"), " ")
			So(joined, ShouldContainSubstring, "-f mp4")
		})

		Convey("The extension honors the preferred format", func() {
			So(b.FileExtension("mkv"), ShouldEqual, "mkv")
			So(b.FileExtension("mp4"), ShouldEqual, "mp4")
			So(b.FileExtension("webm"), ShouldEqual, "mkv")
		})
	})
}

func TestWgetExtension(t *testing.T) {
	Convey("The wget backend keeps the container the host serves", t, func() {
		b := &wgetBackend{
			stream: &media.Stream{Backend: Wget, URL: "https://host/clip.mp4?token=abc"},
			report: silentReporter{},
		}

		So(b.FileExtension("mkv"), ShouldEqual, "mp4")
	})

	Convey("A bare URL falls back to mp4", t, func() {
		b := &wgetBackend{
			stream: &media.Stream{Backend: Wget, URL: "https://host/stream"},
			report: silentReporter{},
		}

		So(b.FileExtension("mkv"), ShouldEqual, "mp4")
	})
}
