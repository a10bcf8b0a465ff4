package layout

import (
	"testing"

	"github.com/workingjubilee/kani/internal/types"
)

func newEngine() (*Engine, *types.Interner) {
	in := types.NewInterner()
	return New(X8664LinuxGNU(), in), in
}

func TestScalarLayouts(t *testing.T) {
	e, in := newEngine()
	b := in.Builtins()
	cases := []struct {
		name  string
		id    types.TypeID
		size  int64
		align int64
	}{
		{"bool", b.Bool, 1, 1},
		{"i32", b.I32, 4, 4},
		{"u8", b.U8, 1, 1},
		{"f64", b.F64, 8, 8},
		{"usize", b.Usize, 8, 8},
		{"unit", b.Unit, 0, 1},
	}
	for _, tc := range cases {
		l, err := e.LayoutOf(tc.id)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if l.Size != tc.size || l.Align != tc.align {
			t.Fatalf("%s: got size=%d align=%d", tc.name, l.Size, l.Align)
		}
	}
}

func TestSizeOfAlignOf(t *testing.T) {
	e, in := newEngine()
	b := in.Builtins()
	arr := in.Intern(types.MakeArray(b.I32, 3))
	size, err := e.SizeOf(arr)
	if err != nil || size != 12 {
		t.Fatalf("got size=%d err=%v", size, err)
	}
	align, err := e.AlignOf(arr)
	if err != nil || align != 4 {
		t.Fatalf("got align=%d err=%v", align, err)
	}
}

func TestStructLayoutWithPadding(t *testing.T) {
	e, in := newEngine()
	b := in.Builtins()
	s := in.RegisterAdt("Mixed", types.AdtStruct, false)
	in.SetAdtVariants(s, []types.Variant{{Fields: []types.Field{
		{Name: "a", Type: b.U8},
		{Name: "b", Type: b.I32},
	}}})
	l, err := e.LayoutOf(s)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if l.Size != 8 || l.Align != 4 {
		t.Fatalf("got size=%d align=%d", l.Size, l.Align)
	}
	if len(l.FieldOffsets) != 2 || l.FieldOffsets[0] != 0 || l.FieldOffsets[1] != 4 {
		t.Fatalf("unexpected offsets %v", l.FieldOffsets)
	}
}

func TestEnumLayoutUsesLargestVariant(t *testing.T) {
	e, in := newEngine()
	b := in.Builtins()
	en := in.RegisterAdt("Either", types.AdtEnum, false)
	in.SetAdtVariants(en, []types.Variant{
		{Name: "Small", Fields: []types.Field{{Type: b.U8}}},
		{Name: "Big", Fields: []types.Field{{Type: b.F64}}},
	})
	l, err := e.LayoutOf(en)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	// 4-byte tag, padded to the f64 variant.
	if l.Size != 16 || l.Align != 8 {
		t.Fatalf("got size=%d align=%d", l.Size, l.Align)
	}
}

func TestReferencesArePointerSized(t *testing.T) {
	e, in := newEngine()
	b := in.Builtins()
	ref := in.Intern(types.MakeRef(b.I32, false))
	l, err := e.LayoutOf(ref)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if l.Size != 8 {
		t.Fatalf("got size=%d", l.Size)
	}
}

func TestArraySizeOverflow(t *testing.T) {
	e, in := newEngine()
	b := in.Builtins()
	big := in.Intern(types.MakeArray(b.F64, 1<<31))
	huge := in.Intern(types.MakeArray(big, 1<<31))
	_, err := e.LayoutOf(huge)
	if err == nil {
		t.Fatalf("expected size overflow")
	}
	if !IsSizeOverflow(err) {
		t.Fatalf("expected size-overflow kind, got %v", err)
	}
}

func TestValueCycleReportsUnsized(t *testing.T) {
	e, in := newEngine()
	s := in.RegisterAdt("Loop", types.AdtStruct, false)
	in.SetAdtVariants(s, []types.Variant{{Fields: []types.Field{{Name: "next", Type: s}}}})
	_, err := e.LayoutOf(s)
	if err == nil || IsSizeOverflow(err) {
		t.Fatalf("expected unsized error, got %v", err)
	}
}

func TestRefCycleHasFiniteLayout(t *testing.T) {
	e, in := newEngine()
	node := in.RegisterAdt("Node", types.AdtStruct, false)
	next := in.Intern(types.MakeRef(node, false))
	in.SetAdtVariants(node, []types.Variant{{Fields: []types.Field{{Name: "next", Type: next}}}})
	l, err := e.LayoutOf(node)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if l.Size != 8 {
		t.Fatalf("got size=%d", l.Size)
	}
}

func TestFnAbiPassModes(t *testing.T) {
	e, in := newEngine()
	b := in.Builtins()
	big := in.RegisterAdt("Big", types.AdtStruct, false)
	in.SetAdtVariants(big, []types.Variant{{Fields: []types.Field{
		{Type: b.F64}, {Type: b.F64}, {Type: b.F64},
	}}})
	abi, err := e.FnAbiOf([]types.TypeID{b.I32, big, b.Unit}, b.Bool)
	if err != nil {
		t.Fatalf("fn abi: %v", err)
	}
	if abi.Args[0].Mode != PassDirect {
		t.Fatalf("i32 should pass direct, got %v", abi.Args[0].Mode)
	}
	if abi.Args[1].Mode != PassIndirect {
		t.Fatalf("24-byte struct should pass indirect, got %v", abi.Args[1].Mode)
	}
	if abi.Args[2].Mode != PassIgnore {
		t.Fatalf("unit should be ignored, got %v", abi.Args[2].Mode)
	}
	if abi.Ret.Mode != PassDirect {
		t.Fatalf("bool return should pass direct, got %v", abi.Ret.Mode)
	}
}
