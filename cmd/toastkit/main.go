// Command toastkit exercises the toast scheduler from a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toastkit",
		Short: "Toast notifications with a visible cap and a queue",
		Long: `toastkit schedules transient notifications ("toasts").

At most a fixed number of toasts are visible at once. Further requests
wait in a queue; in cancel-timeout mode the oldest toast with a timeout
is closed early to make room.

Configuration is read from toastkit.yaml or toastkit.toml in the
working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		demoCmd(),
		simulateCmd(),
		configCmd(),
		versionCmd(),
	)
	return rootCmd
}
