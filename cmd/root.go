package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ytgrab/ytgrab/internal/config"
	"github.com/ytgrab/ytgrab/internal/engine"
	"github.com/ytgrab/ytgrab/internal/model"
	"github.com/ytgrab/ytgrab/internal/orchestrator"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "ytgrab",
	Short:   "A video downloader for the command line",
	Long:    `ytgrab downloads videos, URL batches and playlists through yt-dlp, with retries, progress reporting and format selection.`,
	Version: Version,
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "", "output directory (default: settings or ~/Downloads)")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "overwrite existing files without asking")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	rootCmd.SetVersionTemplate("ytgrab version {{.Version}}\n")
}

// newLogger builds the shared logger; progress rendering owns stdout, so
// log output goes to stderr and stays quiet unless --verbose is set.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		settings.DownloadDir = out
	}
	return settings, nil
}

func newOrchestrator(cmd *cobra.Command, cb orchestrator.Callbacks) (*orchestrator.Orchestrator, *config.Settings, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(cmd)
	eng := engine.NewYTDLP(engine.Config{
		ProbeTimeout: settings.ProbeTimeout,
		Logger:       log,
	})
	return orchestrator.New(eng, settings, cb, log), settings, nil
}

// runDownload drives one workflow to its terminal state, rendering
// progress to stdout and translating Ctrl+C into a cooperative cancel.
func runDownload(cmd *cobra.Command, kind model.ReferenceKind, ref, selector string) {
	terminal := make(chan bool, 1)
	assumeYes, _ := cmd.Flags().GetBool("yes")

	cb := orchestrator.Callbacks{
		OnProgress:       renderProgress,
		OnTerminal:       func(ok bool) { terminal <- ok },
		ConfirmOverwrite: confirmOverwrite(assumeYes),
	}

	orch, settings, err := newOrchestrator(cmd, cb)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := orch.Start(kind, ref, settings.DownloadDir, selector); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		fmt.Fprintln(os.Stderr, "\nStopping after the current transfer...")
		orch.Cancel()
	}()

	if ok := <-terminal; !ok {
		os.Exit(1)
	}
}

// renderProgress prints one line per event, overdrawing transfer samples
// in place.
func renderProgress(ev model.ProgressEvent) {
	switch ev.Kind {
	case model.EventItemStarted:
		if ev.Total > 1 {
			fmt.Printf("[%d/%d] %s\n", ev.Index, ev.Total, ev.Label)
		} else {
			fmt.Printf("%s\n", ev.Label)
		}
	case model.EventDownloading:
		fmt.Printf("\r  %5.1f%%  %s  ETA %s    ", ev.Percent, ev.Rate, ev.ETA)
	case model.EventItemFinished:
		fmt.Print("\r  done                              \n")
	case model.EventFailed:
		fmt.Fprintf(os.Stderr, "\nError: %s\n", ev.Message)
	case model.EventAllFinished:
		if ev.Success {
			fmt.Println("All downloads finished")
		}
	}
}

// confirmOverwrite asks on the terminal unless --yes was given
func confirmOverwrite(assumeYes bool) func(label string) bool {
	if assumeYes {
		return func(string) bool { return true }
	}
	return func(label string) bool {
		fmt.Printf("File %q already exists. Overwrite? [y/N]: ", label)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}
