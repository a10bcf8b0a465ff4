package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workingjubilee/kani/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the kani build fingerprint",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
