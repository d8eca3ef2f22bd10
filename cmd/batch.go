package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ytgrab/ytgrab/internal/model"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "batch downloads every URL listed in a file",
	Long: `batch reads a text file with one video URL per line and downloads each
in order. Invalid lines are skipped and a failed URL does not stop the rest.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		selector, _ := cmd.Flags().GetString("format")
		runDownload(cmd, model.KindList, args[0], selector)
	},
}

func init() {
	batchCmd.Flags().StringP("format", "f", "", "format selector applied to every URL")
	rootCmd.AddCommand(batchCmd)
}
