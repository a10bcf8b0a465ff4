package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/middle"
	"github.com/workingjubilee/kani/internal/mono"
	"github.com/workingjubilee/kani/internal/types"
)

// demoProgram builds a snapshot with one cell-bearing struct, one harness
// and one reachable function instance.
func demoProgram() *Program {
	return &Program{
		CrateName: "demo",
		Files: []FileRec{
			{Path: "src/lib.rs", Content: []byte("fn check() {}\nfn checked_add() {}\n")},
		},
		Types: []TypeRec{
			{Kind: uint8(types.KindUnit)},                                 // 0
			{Kind: uint8(types.KindInt), Width: 32},                       // 1
			{Kind: uint8(types.KindAdt), Adt: 0},                          // 2: UnsafeCell
			{Kind: uint8(types.KindAdt), Adt: 1},                          // 3: Counter
			{Kind: uint8(types.KindFnDef), Fn: 0},                         // 4: check
			{Kind: uint8(types.KindFnDef), Fn: 1},                         // 5: checked_add
			{Kind: uint8(types.KindRef), Elem: 3},                         // 6: &Counter
		},
		Adts: []AdtRec{
			{Name: "UnsafeCell", InteriorMut: true,
				Variants: []VariantRec{{Fields: []FieldRec{{Name: "value", Type: 1}}}}},
			{Name: "Counter",
				Variants: []VariantRec{{Fields: []FieldRec{{Name: "hits", Type: 2}}}}},
		},
		Fns: []FnRec{
			{Def: 1, Result: 0},
			{Def: 2, Result: 0},
		},
		Defs: []DefRec{
			{Name: "check", Kind: uint8(defs.DefFn), Type: 5,
				Attrs: []string{"proof_for_contract(checked_add)"},
				Span:  SpanRec{File: 0, Start: 0, End: 13}},
			{Name: "checked_add", Kind: uint8(defs.DefFn), Type: 6,
				Span: SpanRec{File: 0, Start: 14, End: 33}},
		},
		Items: []ItemRec{
			{Kind: uint8(mono.ItemFn), Def: 0},
			{Kind: uint8(mono.ItemFn), Def: 1},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	raw, err := Encode(demoProgram())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	p, digest, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.CrateName != "demo" || len(p.Defs) != 2 {
		t.Fatalf("payload lost content: %+v", p)
	}
	_, digest2, err := Decode(raw)
	if err != nil || digest != digest2 {
		t.Fatalf("digest must be stable")
	}
}

func TestSchemaMismatchRejected(t *testing.T) {
	// Encode always stamps the current schema, so marshal by hand.
	p := demoProgram()
	p.Schema = SchemaVersion + 1
	raw, err := msgpack.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, _, err := Decode(raw); err == nil {
		t.Fatalf("future schema must be rejected")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, _, err := Decode([]byte("not a snapshot")); err == nil {
		t.Fatalf("garbage must be rejected")
	}
}

func TestBuildSession(t *testing.T) {
	sess, items, err := BuildSession(demoProgram())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sess.CrateName != "demo" {
		t.Fatalf("crate name lost")
	}
	if sess.Defs.Len() != 2 {
		t.Fatalf("expected 2 defs, got %d", sess.Defs.Len())
	}
	if len(items) != 2 || items[0].Kind != mono.ItemFn {
		t.Fatalf("unexpected items %+v", items)
	}

	if _, ok := sess.Defs.LookupName("checked_add"); !ok {
		t.Fatalf("def names lost")
	}

	// The cell-bearing struct must scan as interior mutable, the
	// reference to it must not.
	cellStruct := types.NoTypeID
	for id := types.TypeID(1); int(id) < sess.Types.Len(); id++ {
		if info, ok := sess.Types.AdtInfo(id); ok && info.Name == "Counter" {
			cellStruct = id
		}
	}
	if cellStruct == types.NoTypeID {
		t.Fatalf("Counter type not reconstructed")
	}
	if !middle.IsInteriorMut(sess.Types, cellStruct) {
		t.Fatalf("Counter embeds UnsafeCell by value")
	}

	ref := sess.Types.Intern(types.MakeRef(cellStruct, false))
	if middle.IsInteriorMut(sess.Types, ref) {
		t.Fatalf("&Counter must not scan as interior mutable")
	}
}

func TestBuildSessionRejectsCorruptIndices(t *testing.T) {
	p := demoProgram()
	p.Items[0].Def = 99
	if _, _, err := BuildSession(p); err == nil {
		t.Fatalf("out-of-range def index must be rejected")
	}

	p = demoProgram()
	p.Types[6].Elem = 42
	if _, _, err := BuildSession(p); err == nil {
		t.Fatalf("out-of-range type index must be rejected")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crate.kani")
	if err := Save(path, demoProgram()); err != nil {
		t.Fatalf("save: %v", err)
	}
	p, _, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.CrateName != "demo" {
		t.Fatalf("payload lost content")
	}
}
