package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/workingjubilee/kani/internal/driver"
	"github.com/workingjubilee/kani/internal/metadata"
)

var metadataOut string

func init() {
	addRunFlags(metadataCmd)
	metadataCmd.Flags().StringVarP(&metadataOut, "out", "o", ".", "directory receiving <crate>.metadata artifacts")
}

var metadataCmd = &cobra.Command{
	Use:   "metadata <snapshot>...",
	Short: "Check snapshots and export harness metadata",
	Long: `metadata runs the full readiness checks and, for every crate that
passes, writes a msgpack artifact describing its harnesses: entry point,
contract target, solver, unwind bound, stubs and source location.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := gatherOptions(cmd, args)
		if err != nil {
			return err
		}
		opts.MetadataDir = metadataOut
		// The cache replays verdicts without a session, so it cannot
		// rebuild artifacts; force a full run.
		opts.Args.NoCache = true
		results, err := runChecks(cmd, opts)
		if err != nil {
			return err
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		if quiet {
			return nil
		}
		return listHarnesses(cmd, results)
	},
}

// listHarnesses prints a human summary of the artifacts just written.
func listHarnesses(cmd *cobra.Command, results []driver.CrateResult) error {
	out := cmd.OutOrStdout()
	for _, res := range results {
		c, err := metadata.Load(filepath.Join(metadataOut, res.CrateName+".metadata"))
		if err != nil {
			return fmt.Errorf("reading back %s metadata: %w", res.CrateName, err)
		}
		fmt.Fprintf(out, "%s: %d harnesses\n", c.CrateName, len(c.Harnesses))
		for _, h := range c.Harnesses {
			fmt.Fprintf(out, "  %s (%s)", h.Name, h.Location)
			if h.ContractTarget != "" {
				fmt.Fprintf(out, " contract=%s", h.ContractTarget)
			}
			if h.Solver != "" {
				fmt.Fprintf(out, " solver=%s", h.Solver)
			}
			if h.Unwind > 0 {
				fmt.Fprintf(out, " unwind=%d", h.Unwind)
			}
			if h.ShouldPanic {
				fmt.Fprint(out, " should_panic")
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}
