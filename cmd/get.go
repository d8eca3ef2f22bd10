package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ytgrab/ytgrab/internal/format"
	"github.com/ytgrab/ytgrab/internal/model"
)

var getCmd = &cobra.Command{
	Use:   "get [url]",
	Short: "get downloads a single video",
	Long:  `get downloads one video from a URL into the output directory, retrying transient failures.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		selector, _ := cmd.Flags().GetString("format")
		if audio, _ := cmd.Flags().GetBool("audio"); audio {
			selector = format.SelectorAudioOnly
		}
		runDownload(cmd, model.KindSingle, args[0], selector)
	},
}

func init() {
	getCmd.Flags().StringP("format", "f", "", "format selector (see 'ytgrab formats')")
	getCmd.Flags().BoolP("audio", "a", false, "extract audio only (mp3)")
	rootCmd.AddCommand(getCmd)
}
