package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/virta-dl/virta/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "clip", "clips"), ShouldEqual, "1 clip")
		So(Quantify(2, "clip", "clips"), ShouldEqual, "2 clips")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/file.txt"), ShouldEqual, "file")
		So(FileStem("file"), ShouldEqual, "file")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		fs := filesystem.API()

		Convey("Should remove a file", func() {
			So(fs.WriteFile("/tmp/partial.mkv", []byte("x"), 0644), ShouldBeNil)
			So(Delete("/tmp/partial.mkv"), ShouldBeNil)
			exists, _ := fs.Exists("/tmp/partial.mkv")
			So(exists, ShouldBeFalse)
		})

		Convey("Should remove a directory recursively", func() {
			So(fs.MkdirAll("/tmp/dir/sub", 0755), ShouldBeNil)
			So(Delete("/tmp/dir"), ShouldBeNil)
			exists, _ := fs.Exists("/tmp/dir")
			So(exists, ShouldBeFalse)
		})
	})
}
