package main

import (
	"github.com/spf13/cobra"
)

func init() {
	addRunFlags(auditCmd)
}

var auditCmd = &cobra.Command{
	Use:   "audit <snapshot>...",
	Short: "Run only the crate-level audit, skipping reachability checks",
	Long: `audit inspects every top-level item of the crate without computing a
reachable set: attribute well-formedness and global assembly are checked,
contract targets and unstable feature gates are not.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := gatherOptions(cmd, args)
		if err != nil {
			return err
		}
		opts.AuditOnly = true
		_, err = runChecks(cmd, opts)
		return err
	},
}
