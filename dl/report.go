// Package dl implements the stream selection and retry-orchestration engine:
// ranking a clip's flavors under user constraints, attempting the chosen
// streams backend by backend, and folding per-clip outcomes into a single
// playlist result.
package dl

import (
	"fmt"
	"io"
	"os"

	"github.com/virta-dl/virta/color"
	"github.com/virta-dl/virta/log"
	"github.com/virta-dl/virta/style"
)

// Reporter is the diagnostics sink threaded through the engine. Components
// never log through process-wide state; every message flows through the
// reporter supplied by the caller.
type Reporter interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// consoleReporter writes user-facing diagnostics to a terminal stream and
// mirrors them into the persistent log.
type consoleReporter struct {
	out io.Writer
}

// NewConsoleReporter returns a Reporter writing styled diagnostics to stderr.
func NewConsoleReporter() Reporter {
	return &consoleReporter{out: os.Stderr}
}

func (r *consoleReporter) Errorf(format string, args ...any) {
	log.Errorf(format, args...)
	fmt.Fprintf(r.out, "%s %s\n", style.Fg(color.Red)("error:"), fmt.Sprintf(format, args...))
}

func (r *consoleReporter) Warnf(format string, args ...any) {
	log.Warnf(format, args...)
	fmt.Fprintf(r.out, "%s %s\n", style.Fg(color.Yellow)("warning:"), fmt.Sprintf(format, args...))
}

func (r *consoleReporter) Infof(format string, args ...any) {
	log.Infof(format, args...)
	fmt.Fprintf(r.out, "%s\n", fmt.Sprintf(format, args...))
}

func (r *consoleReporter) Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// nopReporter discards every message. Used as the default sink when the
// caller does not care about diagnostics.
type nopReporter struct{}

// NewNopReporter returns a Reporter that discards all diagnostics.
func NewNopReporter() Reporter {
	return nopReporter{}
}

func (nopReporter) Errorf(string, ...any) {}
func (nopReporter) Warnf(string, ...any)  {}
func (nopReporter) Infof(string, ...any)  {}
func (nopReporter) Debugf(string, ...any) {}
