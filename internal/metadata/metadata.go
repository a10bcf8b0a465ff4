// Package metadata collects the per-harness facts the verification backend
// consumes: entry point, contract target, solver choice, unwind bound and
// stub requests, each tied to a resolved source location.
package metadata

import (
	"os"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/workingjubilee/kani/internal/attrs"
	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/session"
	"github.com/workingjubilee/kani/internal/source"
)

// Harness describes one verification entry point.
type Harness struct {
	Name           string
	ContractTarget string // empty for plain proof harnesses
	Solver         string // empty means the default solver
	Unwind         uint32 // zero means unbounded
	ShouldPanic    bool
	Stubs          []attrs.StubPair
	Location       source.SourceLocation
}

// Crate is the artifact written next to the verification inputs.
type Crate struct {
	CrateName string
	Harnesses []Harness
}

// Collect walks the definition table and gathers every harness. The result
// is sorted by name so the artifact is deterministic.
func Collect(sess *session.Session) *Crate {
	out := &Crate{CrateName: sess.CrateName}
	for _, d := range sess.Defs.All() {
		if d.Kind != defs.DefFn {
			continue
		}
		a := attrs.ForDef(sess.Defs, d.ID)
		if !a.IsHarness() {
			continue
		}
		h := Harness{
			Name:        d.Name,
			ShouldPanic: a.ShouldPanic(),
			Stubs:       a.Stubs(),
			Location:    source.LocationOf(sess.Files, d.Span),
		}
		if target, ok := a.ProofForContractTarget(); ok {
			h.ContractTarget = target
		}
		if solver, ok := a.Solver(); ok {
			h.Solver = solver
		}
		if n, ok := a.UnwindValue(); ok {
			h.Unwind = n
		}
		out.Harnesses = append(out.Harnesses, h)
	}
	sort.Slice(out.Harnesses, func(i, j int) bool {
		return out.Harnesses[i].Name < out.Harnesses[j].Name
	})
	return out
}

// Save writes the artifact as msgpack.
func Save(path string, c *Crate) error {
	raw, err := msgpack.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Load reads an artifact back, mostly for tooling and tests.
func Load(path string) (*Crate, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Crate
	if err := msgpack.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
