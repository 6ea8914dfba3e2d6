// Package cmd implements the command-line interface for virta.
package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/virta-dl/virta/backend"
	"github.com/virta-dl/virta/color"
	"github.com/virta-dl/virta/constant"
	"github.com/virta-dl/virta/style"
)

// CheckDependencies verifies the availability of the external tools required
// by the enabled transfer backends. Only the ffmpeg backend shells out; the
// wget backend is implemented natively and needs nothing.
func CheckDependencies(enabledBackends []string) {
	if !lo.Contains(enabledBackends, backend.FFmpeg) {
		return
	}

	if _, err := exec.LookPath("ffmpeg"); err != nil {
		printMissingDependencyWarning("ffmpeg")
	}
}

func printMissingDependencyWarning(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install ffmpeg"
	case constant.Linux:
		installCmd = "sudo apt install ffmpeg"
	case constant.Windows:
		installCmd = "scoop install ffmpeg"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render("Missing Dependency")
	body := fmt.Sprintf("'%s' was not found in your PATH. Manifest streams will fall back to other backends.", dep)

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(color.Green).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
