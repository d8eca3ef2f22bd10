package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/orchestrator"
)

var formatsCmd = &cobra.Command{
	Use:   "formats [url]",
	Short: "formats lists the selectable formats for a video",
	Long: `formats probes a video URL and prints the selection menu, best first.
Pass a selector to 'ytgrab get -f' to pick one.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		orch, _, err := newOrchestrator(cmd, orchestrator.Callbacks{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		menu, err := orch.FetchFormats(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%-40s %-12s %s\n", "LABEL", "SIZE", "SELECTOR")
		for _, entry := range menu {
			fmt.Printf("%-40s %-12s %s\n", entry.Label, sizeString(entry.Filesize), entry.Selector)
		}
	},
}

func sizeString(bytes int64) string {
	if bytes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/model.BytesPerMegabyte)
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
