package attrs

import (
	"testing"

	"github.com/workingjubilee/kani/internal/defs"
)

func newDef(t *testing.T, tbl *defs.Table, name string, kind defs.DefKind, attrs ...string) defs.DefID {
	t.Helper()
	return tbl.New(defs.Def{Name: name, Kind: kind, Attrs: attrs})
}

func TestParseBareAttribute(t *testing.T) {
	tbl := defs.NewTable(0)
	id := newDef(t, tbl, "check", defs.DefFn, "proof")
	a := ForDef(tbl, id)
	if !a.IsHarness() {
		t.Fatalf("proof must mark a harness")
	}
	if len(a.malformed) != 0 {
		t.Fatalf("unexpected malformed entries %v", a.malformed)
	}
}

func TestParseArguments(t *testing.T) {
	tbl := defs.NewTable(0)
	id := newDef(t, tbl, "check", defs.DefFn,
		"proof_for_contract(checked_add)", "unwind(3)", "solver(cadical)", "stub(a, b)")
	a := ForDef(tbl, id)
	target, ok := a.ProofForContractTarget()
	if !ok || target != "checked_add" {
		t.Fatalf("unexpected target %q (ok=%v)", target, ok)
	}
	if n, ok := a.UnwindValue(); !ok || n != 3 {
		t.Fatalf("unexpected unwind %d (ok=%v)", n, ok)
	}
	if s, ok := a.Solver(); !ok || s != "cadical" {
		t.Fatalf("unexpected solver %q", s)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tbl := defs.NewTable(0)
	id := newDef(t, tbl, "check", defs.DefFn, "proof(", "frobnicate", "unwind()")
	a := ForDef(tbl, id)
	if len(a.malformed) != 3 {
		t.Fatalf("expected 3 malformed entries, got %v", a.malformed)
	}
}

func TestUnstableFeatures(t *testing.T) {
	tbl := defs.NewTable(0)
	id := newDef(t, tbl, "ghost", defs.DefFn, "unstable(ghost-state)", "unstable(float-lib)")
	a := ForDef(tbl, id)
	feats := a.UnstableFeatures()
	if len(feats) != 2 || feats[0] != "ghost-state" || feats[1] != "float-lib" {
		t.Fatalf("unexpected features %v", feats)
	}
}

func TestMarker(t *testing.T) {
	tbl := defs.NewTable(0)
	id := newDef(t, tbl, "kani_assert", defs.DefFn, "fn_marker(KaniAssert)")
	a := ForDef(tbl, id)
	if m, ok := a.Marker(); !ok || m != "KaniAssert" {
		t.Fatalf("unexpected marker %q (ok=%v)", m, ok)
	}
}
