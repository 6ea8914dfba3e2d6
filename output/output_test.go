package output

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/virta-dl/virta/media"
)

func TestTemplate(t *testing.T) {
	Convey("Template", t, func() {
		clip := &media.Clip{
			Webpage:          "https://example.fi/1-1234567",
			Title:            "Pasila: S01E01",
			PublishTimestamp: "2018-07-01T00:00:00+03:00",
		}

		Convey("Renders clip tokens", func() {
			So(NewTemplate("${title}").Render(clip), ShouldEqual, "Pasila: S01E01")
			So(NewTemplate("${publish_date} ${title}").Render(clip), ShouldEqual, "2018-07-01 Pasila: S01E01")
			So(NewTemplate("${webpage}").Render(clip), ShouldEqual, "1-1234567")
		})

		Convey("Constant pattern detection", func() {
			So(NewTemplate("news").IsConstant(), ShouldBeTrue)
			So(NewTemplate("${title}").IsConstant(), ShouldBeFalse)
			So(NewTemplate("prefix-${publish_date}").IsConstant(), ShouldBeFalse)
		})
	})
}

func TestFilename(t *testing.T) {
	Convey("Filename", t, func() {
		clip := &media.Clip{
			Webpage: "https://example.fi/1-1234567",
			Title:   "Evening News: 7/1",
		}

		Convey("Explicit filename wins", func() {
			ctx := NewContext("/videos")
			ctx.Filename = mo.Some("/tmp/out.mkv")
			name, err := Filename(clip, ".mkv", ctx)
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "/tmp/out.mkv")
		})

		Convey("Template name is sanitized and joined with destination", func() {
			ctx := NewContext("/videos")
			name, err := Filename(clip, "mkv", ctx)
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "/videos/Evening_News_7_1.mkv")
		})

		Convey("Empty title is an error", func() {
			ctx := NewContext("/videos")
			_, err := Filename(&media.Clip{}, "mkv", ctx)
			So(err, ShouldNotBeNil)
		})
	})
}
