package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workingjubilee/kani/internal/diag"
	"github.com/workingjubilee/kani/internal/driver"
	"github.com/workingjubilee/kani/internal/queries"
)

var (
	checkUnstable    []string
	checkIgnoreAsm   bool
	checkNoCache     bool
	checkJobs        int
	checkMetadataDir string
)

// addRunFlags registers the flags shared by every command that executes
// readiness checks.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&checkUnstable, "unstable", "Z", nil, "enable an unstable feature (repeatable)")
	cmd.Flags().BoolVar(&checkIgnoreAsm, "ignore-global-asm", false, "downgrade the global assembly error to a warning")
	cmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "do not read or write the result cache")
	cmd.Flags().IntVarP(&checkJobs, "jobs", "j", 0, "number of snapshots to check in parallel (0 = all CPUs)")
}

func init() {
	addRunFlags(checkCmd)
	checkCmd.Flags().StringVar(&checkMetadataDir, "metadata-dir", "", "write harness metadata artifacts into this directory")
}

var checkCmd = &cobra.Command{
	Use:   "check <snapshot>...",
	Short: "Run every readiness check over crate snapshots",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := gatherOptions(cmd, args)
		if err != nil {
			return err
		}
		opts.MetadataDir = checkMetadataDir
		_, err = runChecks(cmd, opts)
		return err
	},
}

// gatherOptions merges manifest settings with command-line flags. Flags win
// where both are set; unstable features accumulate.
func gatherOptions(cmd *cobra.Command, snapshots []string) (driver.Options, error) {
	args := queries.Args{
		UnstableFeatures: checkUnstable,
		IgnoreGlobalAsm:  checkIgnoreAsm,
		NoCache:          checkNoCache,
	}
	args.MaxDiagnostics, _ = cmd.Flags().GetInt("max-diagnostics")

	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return driver.Options{}, err
	}
	if found {
		args.UnstableFeatures = append(args.UnstableFeatures, manifest.Config.Verify.Unstable...)
		if !cmd.Flags().Changed("ignore-global-asm") {
			args.IgnoreGlobalAsm = manifest.Config.Verify.IgnoreGlobalAsm
		}
		if args.MaxDiagnostics == 0 {
			args.MaxDiagnostics = manifest.Config.Verify.MaxDiagnostics
		}
	}

	return driver.Options{
		Snapshots: snapshots,
		Args:      args,
		Jobs:      checkJobs,
		Out:       cmd.OutOrStdout(),
		Color:     useColor(cmd),
	}, nil
}

// runChecks executes the run and reports a summary respecting --quiet.
func runChecks(cmd *cobra.Command, opts driver.Options) ([]driver.CrateResult, error) {
	results, err := driver.Run(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, diag.ErrAborted) {
			// Diagnostics already rendered; keep the exit message short.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
		}
		return results, err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		cached := 0
		for _, r := range results {
			if r.FromCache {
				cached++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d crates (%d cached), all ready\n", len(results), cached)
	}
	return results, nil
}
