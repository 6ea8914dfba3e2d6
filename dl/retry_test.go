package dl

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/outcome"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestTryStreams(t *testing.T) {
	Convey("Given a clip with three stream candidates", t, func() {
		filesystem.SetMemMapFs()

		clip := &media.Clip{Webpage: "https://example.fi/1-1", Title: "Clip"}
		streams := []*media.Stream{
			{Backend: "ffmpeg", URL: "u1"},
			{Backend: "ffmpeg", URL: "u2"},
			{Backend: "wget", URL: "u3"},
		}

		d := New(nil, nil, nil)
		needsRetry := func(code outcome.Code) bool {
			return code != outcome.Success && code != outcome.Incomplete
		}

		Convey("Failures fall through until one attempt succeeds", func() {
			codes := []outcome.Code{outcome.Failed, outcome.Failed, outcome.Success}
			var attempted []string
			var partialSeen []bool

			attempt := func(_ *media.Clip, stream *media.Stream) (outcome.Code, string) {
				// Leftovers of the previous attempt must be gone by now.
				exists, _ := filesystem.API().Exists("/out/partial.mkv")
				partialSeen = append(partialSeen, exists)

				attempted = append(attempted, stream.URL)
				code := codes[len(attempted)-1]
				if code != outcome.Success {
					So(filesystem.API().WriteFile("/out/partial.mkv", []byte("partial"), 0644), ShouldBeNil)
				}
				return code, "/out/partial.mkv"
			}

			code, outputFile := d.tryStreams(clip, streams, attempt, needsRetry)

			So(code, ShouldEqual, outcome.Success)
			So(outputFile, ShouldEqual, "/out/partial.mkv")
			So(attempted, ShouldResemble, []string{"u1", "u2", "u3"})
			So(partialSeen, ShouldResemble, []bool{false, false, false})
		})

		Convey("A non-retryable outcome stops the loop", func() {
			var attempted int
			attempt := func(_ *media.Clip, _ *media.Stream) (outcome.Code, string) {
				attempted++
				return outcome.Incomplete, ""
			}

			code, _ := d.tryStreams(clip, streams, attempt, needsRetry)

			So(code, ShouldEqual, outcome.Incomplete)
			So(attempted, ShouldEqual, 1)
		})

		Convey("Exhausting every candidate returns the last outcome", func() {
			var attempted int
			attempt := func(_ *media.Clip, _ *media.Stream) (outcome.Code, string) {
				attempted++
				return outcome.Failed, ""
			}

			code, _ := d.tryStreams(clip, streams, attempt, needsRetry)

			So(code, ShouldEqual, outcome.Failed)
			So(attempted, ShouldEqual, 3)
		})
	})

	Convey("Given only invalid candidates", t, func() {
		d := New(nil, nil, nil)
		streams := []*media.Stream{
			media.NewFailedStream("geo blocked"),
			media.NewFailedStream("DRM protected"),
		}

		attempt := func(_ *media.Clip, _ *media.Stream) (outcome.Code, string) {
			t.Fatal("attempt must not run for invalid streams")
			return outcome.Failed, ""
		}

		code, _ := d.tryStreams(&media.Clip{}, streams, attempt, func(outcome.Code) bool { return true })

		So(code, ShouldEqual, outcome.Failed)
	})
}
