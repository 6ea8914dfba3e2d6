// Package outcome defines the result codes produced by transfer attempts and
// their mapping onto the externally visible exit-status domain.
package outcome

// Code is the result of a single transfer attempt or of an aggregated
// playlist run.
type Code int

const (
	// Success: the stream was transferred completely (or was already present).
	Success Code = iota
	// Incomplete: the transfer ended before the full stream was written.
	Incomplete
	// Failed: the transfer failed and produced no usable output.
	Failed
	// SubprocessExecuteFailed: an external downloader process could not be
	// started at all. Internal only; External collapses it into Failed.
	SubprocessExecuteFailed
)

func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case Incomplete:
		return "incomplete"
	case Failed:
		return "failed"
	case SubprocessExecuteFailed:
		return "subprocess execute failed"
	default:
		return "unknown"
	}
}

// External maps an internal code onto the stable external contract.
// Subprocess launch failures are an implementation detail of the process
// backends and are reported simply as failures.
func (c Code) External() Code {
	if c == SubprocessExecuteFailed {
		return Failed
	}
	return c
}

// ExitStatus maps an external code onto the process exit-status domain.
func (c Code) ExitStatus() int {
	switch c.External() {
	case Success:
		return 0
	case Incomplete:
		return 1
	default:
		return 2
	}
}
