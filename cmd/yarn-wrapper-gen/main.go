package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var version = "0.1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose int
	var logFile string

	rootCmd := newGenerateCmd("yarn-wrapper-gen")
	rootCmd.Short = "Generate Java wrapper classes from yarn mappings"
	rootCmd.Version = version
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		var path *string
		if logFile != "" {
			path = &logFile
		}
		commonlog.Configure(logVerbosity(verbose), path)
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more (-v progress, -vv every member)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newGenerateCmd("generate"))
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

// logVerbosity maps the -v count onto commonlog levels: errors only by
// default, then info, then debug.
func logVerbosity(count int) int {
	switch {
	case count <= 0:
		return -2
	case count == 1:
		return 1
	default:
		return 2
	}
}
