package output

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/util"
)

// Filename computes the output path for a clip.
//
// An explicit filename from the context always wins. Otherwise the template is
// rendered from the clip, sanitized for the filesystem and joined with the
// destination directory and the backend-chosen extension.
func Filename(clip *media.Clip, extension string, ctx *Context) (string, error) {
	if name, ok := ctx.Filename.Get(); ok {
		return name, nil
	}

	base := util.SanitizeFilename(ctx.Template.Render(clip))
	if base == "" {
		return "", errors.New("cannot generate an output filename: clip has no usable title")
	}

	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	return filepath.Join(ctx.Destination, base+extension), nil
}
