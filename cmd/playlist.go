package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ytgrab/ytgrab/internal/model"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist [url]",
	Short: "playlist downloads a whole playlist",
	Long: `playlist downloads every item of a playlist URL into a subdirectory
named after the playlist.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		selector, _ := cmd.Flags().GetString("format")
		runDownload(cmd, model.KindCollection, args[0], selector)
	},
}

func init() {
	playlistCmd.Flags().StringP("format", "f", "", "format selector applied to every item")
	rootCmd.AddCommand(playlistCmd)
}
