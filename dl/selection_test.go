package dl

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/virta-dl/virta/media"
)

func videoFlavor(height, bitrate int, streams ...*media.Stream) *media.Flavor {
	if len(streams) == 0 {
		streams = []*media.Stream{{Backend: "ffmpeg", URL: "https://host/stream"}}
	}
	return &media.Flavor{
		MediaType: media.Video,
		Height:    mo.Some(height),
		Bitrate:   mo.Some(bitrate),
		Streams:   streams,
	}
}

// qualityLadder is a typical four-step encoding ladder with two 720p variants.
func qualityLadder() []*media.Flavor {
	return []*media.Flavor{
		videoFlavor(360, 880, &media.Stream{Backend: "ffmpeg", URL: "u360"}),
		videoFlavor(720, 1412, &media.Stream{Backend: "ffmpeg", URL: "u720lo"}),
		videoFlavor(720, 1872, &media.Stream{Backend: "ffmpeg", URL: "u720hi"}),
		videoFlavor(1080, 2808, &media.Stream{Backend: "ffmpeg", URL: "u1080"}),
	}
}

func selectedURL(flavors []*media.Flavor, filters media.Filters) string {
	selection := Select(flavors, filters, NewNopReporter())
	So(selection.Failed(), ShouldBeFalse)
	So(selection.Empty(), ShouldBeFalse)
	So(selection.Streams(), ShouldNotBeEmpty)
	return selection.Streams()[0].URL
}

func TestSelectQuality(t *testing.T) {
	Convey("Given a four-step quality ladder", t, func() {
		flavors := qualityLadder()
		filters := media.NewFilters("ffmpeg", "wget")

		Convey("Without ceilings the best flavor wins", func() {
			So(selectedURL(flavors, filters), ShouldEqual, "u1080")
		})

		Convey("A height ceiling picks the best flavor under it", func() {
			filters.MaxHeight = mo.Some(700)
			So(selectedURL(flavors, filters), ShouldEqual, "u360")
		})

		Convey("At equal heights the lower bitrate is preferred", func() {
			filters.MaxHeight = mo.Some(720)
			So(selectedURL(flavors, filters), ShouldEqual, "u720lo")
		})

		Convey("A bitrate ceiling picks the best flavor under it", func() {
			filters.MaxBitrate = mo.Some(1500)
			So(selectedURL(flavors, filters), ShouldEqual, "u720lo")

			filters.MaxBitrate = mo.Some(2000)
			So(selectedURL(flavors, filters), ShouldEqual, "u720hi")
		})

		Convey("Combined ceilings must both hold", func() {
			filters.MaxHeight = mo.Some(720)
			filters.MaxBitrate = mo.Some(1000)
			So(selectedURL(flavors, filters), ShouldEqual, "u360")
		})

		Convey("When nothing fits, the closest flavor from above is picked", func() {
			filters.MaxHeight = mo.Some(200)
			So(selectedURL(flavors, filters), ShouldEqual, "u360")

			filters = media.NewFilters("ffmpeg", "wget")
			filters.MaxBitrate = mo.Some(500)
			So(selectedURL(flavors, filters), ShouldEqual, "u360")
		})
	})
}

func TestSelectBackends(t *testing.T) {
	Convey("Given flavors served by different backends", t, func() {
		flavors := []*media.Flavor{
			videoFlavor(720, 1412,
				&media.Stream{Backend: "wget", URL: "wget-url"},
				&media.Stream{Backend: "ffmpeg", URL: "ffmpeg-url"},
			),
		}

		Convey("Streams are ordered by backend preference", func() {
			selection := Select(flavors, media.NewFilters("ffmpeg", "wget"), NewNopReporter())
			urls := []string{selection.Streams()[0].URL, selection.Streams()[1].URL}
			So(urls, ShouldResemble, []string{"ffmpeg-url", "wget-url"})
		})

		Convey("A disabled backend drops its streams", func() {
			selection := Select(flavors, media.NewFilters("wget"), NewNopReporter())
			So(len(selection.Streams()), ShouldEqual, 1)
			So(selection.Streams()[0].URL, ShouldEqual, "wget-url")
		})

		Convey("No enabled backend fails with a suggestion", func() {
			selection := Select(flavors, media.NewFilters(), NewNopReporter())
			So(selection.Failed(), ShouldBeTrue)
			So(selection.Reason(), ShouldContainSubstring, "--backend ffmpeg,wget")
		})
	})

	Convey("Given only invalid streams", t, func() {
		flavors := []*media.Flavor{media.NewFailedFlavor("DRM protected")}

		Convey("The diagnostic of the first invalid stream surfaces", func() {
			selection := Select(flavors, media.NewFilters("ffmpeg"), NewNopReporter())
			So(selection.Failed(), ShouldBeTrue)
			So(selection.Reason(), ShouldEqual, "DRM protected")
		})
	})

	Convey("Given no flavors at all", t, func() {
		selection := Select(nil, media.NewFilters("ffmpeg"), NewNopReporter())
		So(selection.Empty(), ShouldBeTrue)
	})
}
