// Package output manages transfer destinations: the io preferences passed to
// backends and the generation of output filenames from clip titles.
package output

import "github.com/samber/mo"

// Limits restricts a transfer to a slice of the stream.
type Limits struct {
	// StartPosition is the offset in seconds to begin the transfer at.
	StartPosition int
	// Duration is the maximum number of seconds to transfer, 0 for unlimited.
	Duration int
}

// SlicingActive reports whether the limits select less than the full stream.
func (l Limits) SlicingActive() bool {
	return l.StartPosition > 0 || l.Duration > 0
}

// Context carries the caller's io preferences through one download or pipe
// invocation. It is read-only from the engine's point of view.
type Context struct {
	// Destination directory for generated filenames.
	Destination string
	// Filename is an explicit output path. When set it bypasses the template;
	// it is a configuration error to combine it with a multi-clip playlist.
	Filename mo.Option[string]
	// Template renders output base names from clip attributes.
	Template *Template
	// Overwrite allows replacing an existing output file.
	Overwrite bool
	// PreferredFormat is the container format hint passed to backends (no dot).
	PreferredFormat string
	// PostprocessCommand is executed with the output file after a successful save.
	PostprocessCommand string

	Limits Limits
}

// NewContext returns a Context writing into dir with the default title template.
func NewContext(dir string) *Context {
	return &Context{
		Destination:     dir,
		Template:        NewTemplate("${title}"),
		PreferredFormat: "mkv",
	}
}
