// Package cmd implements the command-line interface for virta.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/virta-dl/virta/color"
	"github.com/virta-dl/virta/registry"
	"github.com/virta-dl/virta/style"
)

func init() {
	rootCmd.AddCommand(downloadsCmd)
	downloadsCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	downloadsCmd.SetOut(os.Stdout)
}

// downloadsCmd lists the clips recorded in the local download registry.
var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "List the completed downloads recorded in the local registry",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := registry.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("No downloads recorded yet"))
			return
		}

		for _, record := range records {
			title := record.Title
			if title == "" {
				title = record.Webpage
			}

			cmd.Printf(
				"%s %s\n  %s\n",
				style.Fg(color.Green)(record.SavedAt[:lo.Min([]int{10, len(record.SavedAt)})]),
				style.Bold(title),
				style.Faint(record.OutputFile),
			)
		}
	},
}
