package dl

import (
	"fmt"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/virta-dl/virta/backend"
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/outcome"
	"github.com/virta-dl/virta/output"
)

// fakeExtractor serves a canned playlist of clips keyed by reference.
type fakeExtractor struct {
	playlist []string
	clips    map[string]*media.Clip
}

func (e *fakeExtractor) Playlist(_ string, latestOnly bool) ([]string, error) {
	if latestOnly && len(e.playlist) > 1 {
		return e.playlist[len(e.playlist)-1:], nil
	}
	return e.playlist, nil
}

func (e *fakeExtractor) Clip(ref string) (*media.Clip, error) {
	clip, ok := e.clips[ref]
	if !ok {
		return nil, fmt.Errorf("unknown clip %s", ref)
	}
	return clip, nil
}

// fakeBackend records transfer attempts and plays back a scripted outcome per
// stream URL.
type fakeBackend struct {
	stream   *media.Stream
	outcomes map[string]outcome.Code
	saves    *[]string
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Save(outputFile string, _ *media.Clip, _ *output.Context) outcome.Code {
	*b.saves = append(*b.saves, b.stream.URL)
	code, ok := b.outcomes[b.stream.URL]
	if !ok {
		return outcome.Success
	}
	return code
}

func (b *fakeBackend) Pipe(_ *output.Context) outcome.Code {
	*b.saves = append(*b.saves, b.stream.URL)
	code, ok := b.outcomes[b.stream.URL]
	if !ok {
		return outcome.Success
	}
	return code
}

func (b *fakeBackend) FileExtension(string) string { return "mkv" }

func (b *fakeBackend) FullyDownloaded(string, *media.Clip, *output.Context) bool { return false }

func (b *fakeBackend) WarnOnUnsupportedFeature(*output.Context) {}

func simpleClip(ref, title string) *media.Clip {
	return &media.Clip{
		Webpage: ref,
		Title:   title,
		Flavors: []*media.Flavor{
			videoFlavor(720, 1412, &media.Stream{Backend: "ffmpeg", URL: ref + "/stream"}),
		},
	}
}

// testDownloader wires a Downloader with the fake collaborators, returning
// the slice that records every transfer attempt.
func testDownloader(e *fakeExtractor, outcomes map[string]outcome.Code) (*Downloader, *[]string) {
	saves := &[]string{}

	d := New(e, nil, nil)
	d.resolve = func(stream *media.Stream) (backend.Backend, error) {
		return &fakeBackend{stream: stream, outcomes: outcomes, saves: saves}, nil
	}

	return d, saves
}

func TestDownloadClips(t *testing.T) {
	Convey("Given a downloader", t, func() {
		filesystem.SetMemMapFs()
		filters := media.NewFilters("ffmpeg", "wget")

		Convey("An empty playlist succeeds without transfers", func() {
			d, saves := testDownloader(&fakeExtractor{}, nil)

			code := d.DownloadClips("ref", output.NewContext("/videos"), filters)

			So(code, ShouldEqual, outcome.Success)
			So(*saves, ShouldBeEmpty)
		})

		Convey("A failed clip does not abort the playlist and failure is sticky", func() {
			e := &fakeExtractor{
				playlist: []string{"a", "b", "c"},
				clips: map[string]*media.Clip{
					"a": simpleClip("a", "First"),
					"b": simpleClip("b", "Second"),
					"c": simpleClip("c", "Third"),
				},
			}
			d, saves := testDownloader(e, map[string]outcome.Code{"b/stream": outcome.Failed})

			code := d.DownloadClips("ref", output.NewContext("/videos"), filters)

			So(code, ShouldEqual, outcome.Failed)
			So(*saves, ShouldResemble, []string{"a/stream", "b/stream", "c/stream"})
		})

		Convey("An incomplete clip degrades the aggregate without marking it failed", func() {
			e := &fakeExtractor{
				playlist: []string{"a", "b"},
				clips: map[string]*media.Clip{
					"a": simpleClip("a", "First"),
					"b": simpleClip("b", "Second"),
				},
			}
			d, _ := testDownloader(e, map[string]outcome.Code{"a/stream": outcome.Incomplete})

			code := d.DownloadClips("ref", output.NewContext("/videos"), filters)

			So(code, ShouldEqual, outcome.Incomplete)
		})

		Convey("A fixed filename with multiple clips is a configuration error", func() {
			e := &fakeExtractor{
				playlist: []string{"a", "b"},
				clips: map[string]*media.Clip{
					"a": simpleClip("a", "First"),
					"b": simpleClip("b", "Second"),
				},
			}
			d, saves := testDownloader(e, nil)

			ctx := output.NewContext("/videos")
			ctx.Filename = mo.Some("/videos/out.mkv")
			code := d.DownloadClips("ref", ctx, filters)

			So(code, ShouldEqual, outcome.Failed)
			So(*saves, ShouldBeEmpty)
		})

		Convey("A constant template with multiple clips is a configuration error", func() {
			e := &fakeExtractor{
				playlist: []string{"a", "b"},
				clips: map[string]*media.Clip{
					"a": simpleClip("a", "First"),
					"b": simpleClip("b", "Second"),
				},
			}
			d, saves := testDownloader(e, nil)

			ctx := output.NewContext("/videos")
			ctx.Template = output.NewTemplate("news")
			code := d.DownloadClips("ref", ctx, filters)

			So(code, ShouldEqual, outcome.Failed)
			So(*saves, ShouldBeEmpty)
		})

		Convey("An existing output file is skipped without a transfer", func() {
			e := &fakeExtractor{
				playlist: []string{"a"},
				clips:    map[string]*media.Clip{"a": simpleClip("a", "First")},
			}
			d, saves := testDownloader(e, nil)

			So(filesystem.API().WriteFile("/videos/First.mkv", []byte("done"), 0644), ShouldBeNil)
			code := d.DownloadClips("ref", output.NewContext("/videos"), filters)

			So(code, ShouldEqual, outcome.Success)
			So(*saves, ShouldBeEmpty)
		})

		Convey("A clip with only invalid streams fails with its diagnostic", func() {
			e := &fakeExtractor{
				playlist: []string{"a"},
				clips:    map[string]*media.Clip{"a": media.NewFailedClip("a", "DRM protected")},
			}
			d, saves := testDownloader(e, nil)

			code := d.DownloadClips("ref", output.NewContext("/videos"), filters)

			So(code, ShouldEqual, outcome.Failed)
			So(*saves, ShouldBeEmpty)
		})
	})
}

func TestPipe(t *testing.T) {
	Convey("Given a downloader in pipe mode", t, func() {
		filesystem.SetMemMapFs()
		filters := media.NewFilters("ffmpeg", "wget")

		Convey("Only the first clip of a playlist is piped", func() {
			e := &fakeExtractor{
				playlist: []string{"a", "b"},
				clips: map[string]*media.Clip{
					"a": simpleClip("a", "First"),
					"b": simpleClip("b", "Second"),
				},
			}
			d, saves := testDownloader(e, nil)

			code := d.Pipe("ref", output.NewContext("/videos"), filters)

			So(code, ShouldEqual, outcome.Success)
			So(*saves, ShouldResemble, []string{"a/stream"})
		})

		Convey("Only a launch failure falls through to the next stream", func() {
			clip := &media.Clip{
				Webpage: "a",
				Title:   "First",
				Flavors: []*media.Flavor{
					videoFlavor(720, 1412,
						&media.Stream{Backend: "ffmpeg", URL: "primary"},
						&media.Stream{Backend: "wget", URL: "secondary"},
					),
				},
			}
			e := &fakeExtractor{playlist: []string{"a"}, clips: map[string]*media.Clip{"a": clip}}
			d, saves := testDownloader(e, map[string]outcome.Code{"primary": outcome.SubprocessExecuteFailed})

			code := d.Pipe("ref", output.NewContext("/videos"), filters)

			So(code, ShouldEqual, outcome.Success)
			So(*saves, ShouldResemble, []string{"primary", "secondary"})
		})
	})
}

func TestShowModes(t *testing.T) {
	Convey("Given a downloader with show modes", t, func() {
		filesystem.SetMemMapFs()
		filters := media.NewFilters("ffmpeg", "wget")
		e := &fakeExtractor{
			playlist: []string{"a", "b"},
			clips: map[string]*media.Clip{
				"a": simpleClip("a", "First"),
				"b": simpleClip("b", "Second: 1/2?"),
			},
		}
		d, saves := testDownloader(e, nil)

		var lines []string
		print := func(line string) { lines = append(lines, line) }

		Convey("URLs prints the selected stream of every clip", func() {
			code := d.URLs("ref", print, filters)

			So(code, ShouldEqual, outcome.Success)
			So(lines, ShouldResemble, []string{"a/stream", "b/stream"})
			So(*saves, ShouldBeEmpty)
		})

		Convey("URLs skips clips without a usable stream", func() {
			e.clips["b"] = media.NewFailedClip("b", "DRM protected")
			code := d.URLs("ref", print, filters)

			So(code, ShouldEqual, outcome.Success)
			So(lines, ShouldResemble, []string{"a/stream"})
		})

		Convey("Titles prints the sanitized output name of every clip", func() {
			code := d.Titles("ref", print, output.NewContext("/videos"), filters)

			So(code, ShouldEqual, outcome.Success)
			So(lines, ShouldResemble, []string{"First", "Second_1_2"})
		})

		Convey("Metadata prints one JSON array for the playlist", func() {
			code := d.Metadata("ref", print, filters)

			So(code, ShouldEqual, outcome.Success)
			So(len(lines), ShouldEqual, 1)
			So(lines[0], ShouldContainSubstring, `"title": "First"`)
			So(lines[0], ShouldContainSubstring, `"title": "Second: 1/2?"`)
		})
	})
}
