package outcome

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExternal(t *testing.T) {
	Convey("External mapping", t, func() {
		So(Success.External(), ShouldEqual, Success)
		So(Incomplete.External(), ShouldEqual, Incomplete)
		So(Failed.External(), ShouldEqual, Failed)

		Convey("Subprocess launch failures are reported as plain failures", func() {
			So(SubprocessExecuteFailed.External(), ShouldEqual, Failed)
		})
	})
}

func TestExitStatus(t *testing.T) {
	Convey("Exit status mapping", t, func() {
		So(Success.ExitStatus(), ShouldEqual, 0)
		So(Incomplete.ExitStatus(), ShouldEqual, 1)
		So(Failed.ExitStatus(), ShouldEqual, 2)
		So(SubprocessExecuteFailed.ExitStatus(), ShouldEqual, 2)
	})
}
