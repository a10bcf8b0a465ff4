package metadata

import (
	"path/filepath"
	"testing"

	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/session"
	"github.com/workingjubilee/kani/internal/source"
)

func demoSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New("demo")
	file := sess.Files.AddVirtual("src/lib.rs", []byte("fn a() {}\nfn b() {}\nfn helper() {}\n"))

	sess.Defs.New(defs.Def{Name: "helper", Kind: defs.DefFn,
		Span: source.Span{File: file, Start: 20, End: 34}})
	sess.Defs.New(defs.Def{Name: "check_b", Kind: defs.DefFn,
		Attrs: []string{"proof_for_contract(helper)", "solver(kissat)", "stub(rand, fake_rand)"},
		Span:  source.Span{File: file, Start: 10, End: 19}})
	sess.Defs.New(defs.Def{Name: "check_a", Kind: defs.DefFn,
		Attrs: []string{"proof", "unwind(4)", "should_panic"},
		Span:  source.Span{File: file, Start: 0, End: 9}})
	sess.Defs.New(defs.Def{Name: "COUNTER", Kind: defs.DefStatic,
		Attrs: []string{"proof"}}) // non-fn, never a harness
	return sess
}

func TestCollect(t *testing.T) {
	c := Collect(demoSession(t))
	if c.CrateName != "demo" {
		t.Fatalf("crate name lost")
	}
	if len(c.Harnesses) != 2 {
		t.Fatalf("expected 2 harnesses, got %+v", c.Harnesses)
	}

	// Sorted by name.
	a, b := c.Harnesses[0], c.Harnesses[1]
	if a.Name != "check_a" || b.Name != "check_b" {
		t.Fatalf("not sorted: %q, %q", a.Name, b.Name)
	}

	if a.Unwind != 4 || !a.ShouldPanic || a.ContractTarget != "" {
		t.Fatalf("unexpected plain harness %+v", a)
	}
	if a.Location.Filename != "src/lib.rs" || a.Location.StartLine != 1 {
		t.Fatalf("unexpected location %+v", a.Location)
	}

	if b.ContractTarget != "helper" || b.Solver != "kissat" {
		t.Fatalf("unexpected contract harness %+v", b)
	}
	if len(b.Stubs) != 1 || b.Stubs[0].Original != "rand" || b.Stubs[0].Replacement != "fake_rand" {
		t.Fatalf("unexpected stubs %+v", b.Stubs)
	}
	if b.Location.StartLine != 2 {
		t.Fatalf("span on line 2, got %+v", b.Location)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := Collect(demoSession(t))
	path := filepath.Join(t.TempDir(), "demo.metadata")
	if err := Save(path, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Harnesses) != 2 || got.Harnesses[1].ContractTarget != "helper" {
		t.Fatalf("round trip lost content: %+v", got)
	}
}
