package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadNormalizesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFfn a() {}\r\nfn b() {}\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if f == nil {
		t.Fatalf("loaded file not retrievable")
	}
	for _, b := range f.Content {
		if b == '\r' {
			t.Fatalf("CRLF must be normalized")
		}
	}
	if f.Content[0] != 'f' {
		t.Fatalf("BOM must be stripped, got %q", f.Content[0])
	}
	start, _ := fs.Resolve(Span{File: id, Start: 10, End: 11})
	if start.Line != 2 {
		t.Fatalf("expected line 2, got %d", start.Line)
	}
}

func TestAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lib.rs", []byte("fn main() {\n    let x = 1;\n}\n"))
	start, _ := fs.Resolve(Span{File: id, Start: 16, End: 26})
	if start.Line != 2 {
		t.Fatalf("expected line 2, got %d", start.Line)
	}
	if start.Col != 5 {
		t.Fatalf("expected col 5, got %d", start.Col)
	}
}

func TestResolveSingleLineFile(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("one", []byte("static X: u8 = 0;"))
	start, end := fs.Resolve(Span{File: id, Start: 7, End: 8})
	if start.Line != 1 || start.Col != 8 {
		t.Fatalf("unexpected start %v", start)
	}
	if end.Line != 1 || end.Col != 9 {
		t.Fatalf("unexpected end %v", end)
	}
}

func TestResolveLineBoundaries(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("b", []byte("a\nbb\nccc\n"))
	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1}, // first byte
		{1, 1, 2}, // the newline belongs to the line it terminates
		{2, 2, 1}, // first byte after a newline
		{5, 3, 1}, // start of the third line
		{7, 3, 3}, // mid third line
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start.Line != tc.line || start.Col != tc.col {
			t.Fatalf("offset %d: got %d:%d, want %d:%d", tc.off, start.Line, start.Col, tc.line, tc.col)
		}
	}
}

func TestGetByPathNormalizes(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("src/./main.rs", []byte("x"))
	if _, ok := fs.GetByPath("src/main.rs"); !ok {
		t.Fatalf("normalized path lookup failed")
	}
}

func TestLocationOf(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("harness.rs", []byte("a\nbb\nccc\n"))
	loc := LocationOf(fs, Span{File: id, Start: 5, End: 8})
	if loc.Filename != "harness.rs" {
		t.Fatalf("unexpected filename %q", loc.Filename)
	}
	if loc.StartLine != 3 || loc.StartCol != 1 {
		t.Fatalf("unexpected start %d:%d", loc.StartLine, loc.StartCol)
	}
	if loc.EndLine != 3 || loc.EndCol != 4 {
		t.Fatalf("unexpected end %d:%d", loc.EndLine, loc.EndCol)
	}
	if got := loc.String(); got != "harness.rs:3:1" {
		t.Fatalf("unexpected String %q", got)
	}
}
