package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	// Global flags
	archPath    string
	recordsPath string
	outPath     string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "rostrace",
	Short: "RosTrace CLI - render timing charts from trace dumps",
	Long: `RosTrace CLI renders callback scheduling and time-series charts
from an architecture description and an offline trace dump, without a
running RosTrace server.

Commands:
  scheduling - Render a callback scheduling chart
  timeseries - Render a metric time-series chart

Example:
  rostrace scheduling --arch architecture.yaml --records dump.json --out chart.html
  rostrace timeseries --metric latency --callback /talker/timer_callback_0`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&archPath, "arch", "architecture.yaml", "Architecture description file")
	rootCmd.PersistentFlags().StringVar(&recordsPath, "records", "dump.json", "Trace dump file")
	rootCmd.PersistentFlags().StringVar(&outPath, "out", "chart.html", "Output HTML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(schedulingCmd)
	rootCmd.AddCommand(timeseriesCmd)
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// logVerbose logs a message if verbose mode is enabled
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[rostrace] "+format+"\n", args...)
	}
}
