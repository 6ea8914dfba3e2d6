package registry

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/media"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestRegistry(t *testing.T) {
	Convey("Given a downloaded clip", t, func() {
		clip := &media.Clip{
			Webpage: "https://example.fi/1-1234567",
			Title:   "Pasila: S01E01",
		}

		Convey("When adding a record", func() {
			err := Add(clip, "/videos/Pasila_S01E01.mkv")

			Convey("Then it is stored and listed", func() {
				So(err, ShouldBeNil)

				ok, err := Contains(clip.Webpage)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)

				records, err := List()
				So(err, ShouldBeNil)
				So(len(records), ShouldBeGreaterThan, 0)
				So(records[0].OutputFile, ShouldEqual, "/videos/Pasila_S01E01.mkv")
			})

			Convey("And an unknown webpage has no record", func() {
				ok, err := Contains("https://example.fi/1-0000000")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})
	})
}
