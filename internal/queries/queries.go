// Package queries holds the configuration of one readiness run, assembled
// by the CLI from the manifest and command-line flags.
package queries

// Args are the user-controlled knobs of a run.
type Args struct {
	// UnstableFeatures lists the unstable capabilities the user opted into.
	UnstableFeatures []string
	// IgnoreGlobalAsm downgrades the global-assembly error to a warning.
	IgnoreGlobalAsm bool
	// MaxDiagnostics bounds the diagnostic accumulator.
	MaxDiagnostics int
	// NoCache disables the result disk cache.
	NoCache bool
}

// QueryDb is the read-only run configuration shared by the checks.
type QueryDb struct {
	args    Args
	allowed map[string]struct{}
}

// New builds a QueryDb, normalizing defaults.
func New(args Args) *QueryDb {
	if args.MaxDiagnostics <= 0 {
		args.MaxDiagnostics = 100
	}
	allowed := make(map[string]struct{}, len(args.UnstableFeatures))
	for _, f := range args.UnstableFeatures {
		allowed[f] = struct{}{}
	}
	return &QueryDb{args: args, allowed: allowed}
}

// Args returns the run arguments.
func (q *QueryDb) Args() Args {
	return q.args
}

// AllowedUnstable returns the opted-in unstable feature set.
func (q *QueryDb) AllowedUnstable() map[string]struct{} {
	return q.allowed
}
