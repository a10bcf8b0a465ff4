// Package driver orchestrates a readiness run: it loads crate snapshots,
// rebuilds the program context for each, executes the crate audit and the
// reachability checks, and renders the accumulated diagnostics.
package driver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/workingjubilee/kani/internal/diag"
	"github.com/workingjubilee/kani/internal/metadata"
	"github.com/workingjubilee/kani/internal/middle"
	"github.com/workingjubilee/kani/internal/queries"
	"github.com/workingjubilee/kani/internal/snapshot"
)

// Options configures a readiness run.
type Options struct {
	// Snapshots are the crate snapshot files to check.
	Snapshots []string
	// Args are the user-controlled knobs, shared by every crate.
	Args queries.Args
	// Jobs bounds snapshot-level parallelism; <=0 means GOMAXPROCS.
	Jobs int
	// MetadataDir, when set, receives a <crate>.metadata artifact per
	// passing crate.
	MetadataDir string
	// Out receives rendered diagnostics and summaries.
	Out io.Writer
	// Color enables ANSI styling in rendered diagnostics.
	Color bool
	// AuditOnly stops after the crate audit, skipping reachability checks.
	AuditOnly bool
}

// CrateResult is the outcome for one snapshot.
type CrateResult struct {
	Path      string
	CrateName string
	Digest    snapshot.Digest
	// Lines are the rendered diagnostics, one per entry.
	Lines     []string
	Passed    bool
	FromCache bool
}

// Run checks every snapshot and writes diagnostics to opts.Out in input
// order. It returns the per-crate results and diag.ErrAborted if any crate
// failed.
func Run(ctx context.Context, opts Options) ([]CrateResult, error) {
	if len(opts.Snapshots) == 0 {
		return nil, fmt.Errorf("no snapshots to check")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	var cache *DiskCache
	if !opts.Args.NoCache {
		// A broken cache never fails the run, it only disables reuse.
		cache, _ = OpenDiskCache("kani")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]CrateResult, len(opts.Snapshots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(opts.Snapshots)))

	for i, path := range opts.Snapshots {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := checkSnapshot(path, opts, cache)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := 0
	for _, res := range results {
		for _, line := range res.Lines {
			fmt.Fprintln(opts.Out, line)
		}
		if !res.Passed {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(opts.Out, "error: %d of %d crates failed readiness checks\n", failed, len(results))
		return results, diag.ErrAborted
	}
	return results, nil
}

// checkSnapshot runs every check for a single crate. Infrastructure faults
// (unreadable or corrupt snapshots) surface as errors; policy violations
// become diagnostics in the result.
func checkSnapshot(path string, opts Options, cache *DiskCache) (CrateResult, error) {
	p, digest, err := snapshot.Load(path)
	if err != nil {
		return CrateResult{}, err
	}
	res := CrateResult{Path: path, CrateName: p.CrateName, Digest: digest}

	key := ResultKey(digest, opts.Args)
	if cache != nil && !opts.AuditOnly {
		var cached ResultPayload
		if ok, err := cache.Get(key, &cached); err == nil && ok {
			res.CrateName = cached.CrateName
			res.Lines = cached.Lines
			res.Passed = cached.Passed
			res.FromCache = true
			return res, nil
		}
	}

	sess, items, err := snapshot.BuildSession(p)
	if err != nil {
		return CrateResult{}, fmt.Errorf("snapshot %q: %w", path, err)
	}

	q := queries.New(opts.Args)
	sink := diag.NewSink(q.Args().MaxDiagnostics)

	checkErr := middle.CheckCrateItems(sess, sink, q.Args().IgnoreGlobalAsm)
	if checkErr == nil && !opts.AuditOnly {
		checkErr = middle.CheckReachableItems(sess, sink, q, items)
	}

	sink.Bag().Dedup()
	sink.Bag().Sort()
	var buf bytes.Buffer
	diag.Render(&buf, sink.Bag(), sess.Files, diag.RenderOpts{Color: opts.Color, ShowNotes: true})
	if out := strings.TrimRight(buf.String(), "\n"); out != "" {
		res.Lines = strings.Split(out, "\n")
	}
	res.Passed = checkErr == nil

	if res.Passed && opts.MetadataDir != "" {
		dest := filepath.Join(opts.MetadataDir, p.CrateName+".metadata")
		if err := metadata.Save(dest, metadata.Collect(sess)); err != nil {
			return CrateResult{}, err
		}
	}

	if cache != nil && !opts.AuditOnly {
		// Cache misses to disk for the next run; failures are non-fatal.
		_ = cache.Put(key, &ResultPayload{
			CrateName: res.CrateName,
			Passed:    res.Passed,
			Lines:     res.Lines,
		})
	}
	return res, nil
}
