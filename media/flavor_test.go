package media

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStream(t *testing.T) {
	Convey("Stream", t, func() {
		Convey("Valid stream", func() {
			s := &Stream{Backend: "wget", URL: "https://example.com/a.mp4"}
			So(s.Valid(), ShouldBeTrue)
			So(s.String(), ShouldEqual, "wget https://example.com/a.mp4")
		})

		Convey("Failed stream", func() {
			s := NewFailedStream("stream is DRM protected")
			So(s.Valid(), ShouldBeFalse)
			So(s.String(), ShouldContainSubstring, "DRM protected")
		})
	})
}

func TestFailedFlavor(t *testing.T) {
	Convey("NewFailedFlavor", t, func() {
		f := NewFailedFlavor("boom")
		So(f.Streams, ShouldHaveLength, 1)
		So(f.Streams[0].Valid(), ShouldBeFalse)
		So(f.Streams[0].ErrorMessage, ShouldEqual, "boom")
	})
}

func TestClipMetadata(t *testing.T) {
	Convey("Clip metadata", t, func() {
		clip := &Clip{
			Webpage:         "https://example.fi/1-123",
			Title:           "Evening News",
			DurationSeconds: 950,
			Region:          "FI",
			Flavors: []*Flavor{
				{MediaType: Video, Height: mo.Some(1080), Bitrate: mo.Some(2808)},
				{MediaType: Video, Height: mo.Some(360), Bitrate: mo.Some(880)},
				{MediaType: Video, Height: mo.Some(720), Bitrate: mo.Some(1412)},
			},
		}

		meta := clip.Metadata()

		Convey("Flavors are sorted by ascending bitrate", func() {
			So(meta.Flavors, ShouldHaveLength, 3)
			So(meta.Flavors[0].Bitrate.OrElse(0), ShouldEqual, 880)
			So(meta.Flavors[1].Bitrate.OrElse(0), ShouldEqual, 1412)
			So(meta.Flavors[2].Bitrate.OrElse(0), ShouldEqual, 2808)
		})

		Convey("Clip fields are carried over", func() {
			So(meta.Webpage, ShouldEqual, clip.Webpage)
			So(meta.Title, ShouldEqual, clip.Title)
			So(meta.DurationSeconds, ShouldEqual, 950)
		})
	})
}

func TestFailedClip(t *testing.T) {
	Convey("NewFailedClip", t, func() {
		clip := NewFailedClip("https://example.fi/1-404", "clip not found")
		So(clip.Flavors, ShouldHaveLength, 1)
		So(clip.Flavors[0].Streams[0].ErrorMessage, ShouldEqual, "clip not found")
		So(clip.String(), ShouldEqual, "https://example.fi/1-404")
	})
}
