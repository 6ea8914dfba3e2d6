package backend

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/virta-dl/virta/outcome"
)

// Execute runs an external command, distinguishing between failure to launch
// (the binary is missing or not executable, a retryable condition for the
// engine), an interrupted transfer, and an error reported by the tool itself.
func Execute(args []string, stdout io.Writer, report Reporter) outcome.Code {
	report.Debugf("Executing %s", strings.Join(args, " "))

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		report.Warnf("Failed to execute %s: %v", args[0], err)
		report.Warnf("Check that %s is installed and on PATH", args[0])
		return outcome.SubprocessExecuteFailed
	}

	err := cmd.Wait()
	if err == nil {
		return outcome.Success
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		// -1 means the process was terminated by a signal, typically the
		// user interrupting a transfer that was otherwise progressing.
		if exitErr.ExitCode() == -1 {
			return outcome.Incomplete
		}
		report.Warnf("%s exited with status %d", args[0], exitErr.ExitCode())
		return outcome.Failed
	}

	report.Warnf("Waiting for %s failed: %v", args[0], err)
	return outcome.Failed
}

// ExecuteCommand runs a command without redirecting its standard output.
func ExecuteCommand(args []string, report Reporter) outcome.Code {
	return Execute(args, os.Stdout, report)
}
