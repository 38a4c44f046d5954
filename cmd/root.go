package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCmdRoot creates a new root command
func NewCmdRoot(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "barry-smoke",
		Short: "barry-smoke, a signed smoke-test prober for trading executors",
		Long: "barry-smoke probes a trading-executor API with a fixed, ordered sequence of\n" +
			"requests, signing order intents with a shared HMAC secret, and reports a\n" +
			"PASS, FAIL or SKIP verdict per probe.",
		Version: version,
	}
	return rootCmd
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdRun())
	cmd.AddCommand(NewCmdServe())

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
