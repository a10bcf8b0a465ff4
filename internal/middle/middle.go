// Package middle implements the verification readiness checks that run
// between the host compiler and the verification backend: the crate-level
// item audit, the reachability validator over monomorphized items, the
// structural interior-mutability scanner, and the ABI lookup glue.
//
// Every check routes user-facing findings through the shared diagnostic
// sink and finishes with the sink's abort checkpoint, so one run reports
// every violation before the pipeline halts.
package middle
