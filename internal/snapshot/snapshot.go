// Package snapshot reads and writes the program snapshot the host compiler
// exports for the readiness pass: source files, the type graph, the
// definition table, and the reachable mono items, in one msgpack artifact.
package snapshot

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version. Increment when the payload format changes.
const SchemaVersion uint16 = 1

// Digest identifies snapshot content.
type Digest [32]byte

// FileRec is one source file carried for diagnostics rendering.
type FileRec struct {
	Path    string
	Content []byte
}

// TypeRec is a flattened type descriptor. Elem and the Adt/Fn slots are
// indices into the sibling tables of the Program, not interner IDs.
type TypeRec struct {
	Kind    uint8
	Elem    uint32 // index into Types, for ref/rawptr/array
	Count   uint32 // for arrays
	Width   uint8
	Mutable bool
	Adt     uint32 // index into Adts, for aggregates
	Fn      uint32 // index into Fns, for fn types
}

// FieldRec is one field of a variant.
type FieldRec struct {
	Name string
	Type uint32 // index into Types
}

// VariantRec is one aggregate alternative.
type VariantRec struct {
	Name   string
	Fields []FieldRec
}

// AdtRec is the metadata of one aggregate.
type AdtRec struct {
	Name        string
	Enum        bool
	InteriorMut bool
	Variants    []VariantRec
}

// FnRec is one function signature.
type FnRec struct {
	Def    uint32 // 1-based def handle (Defs index + 1), zero for fn pointers
	Params []uint32
	Result uint32
}

// SpanRec is a byte range in one of the Files.
type SpanRec struct {
	File  uint32
	Start uint32
	End   uint32
}

// DefRec is one top-level item.
type DefRec struct {
	Name       string
	Kind       uint8  // defs.DefKind
	Type       uint32 // 1-based type handle (Types index + 1), zero for none
	TypeParams uint8
	Attrs      []string
	Span       SpanRec
}

// ItemRec is one reachable mono item.
type ItemRec struct {
	Kind uint8  // mono.ItemKind
	Def  uint32 // index into Defs, unused for global asm
	Args []uint32
}

// Program is the full snapshot payload.
type Program struct {
	Schema    uint16
	CrateName string
	Files     []FileRec
	Types     []TypeRec
	Adts      []AdtRec
	Fns       []FnRec
	Defs      []DefRec
	Items     []ItemRec
}

// Load reads and decodes a snapshot file, returning the payload and the
// digest of its raw bytes.
func Load(path string) (*Program, Digest, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Digest{}, err
	}
	digest := Digest(sha256.Sum256(raw))
	var p Program
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		return nil, digest, fmt.Errorf("corrupt snapshot %q: %w", path, err)
	}
	if p.Schema != SchemaVersion {
		return nil, digest, fmt.Errorf("snapshot %q has schema %d, expected %d", path, p.Schema, SchemaVersion)
	}
	return &p, digest, nil
}

// Save encodes the payload to the given path.
func Save(path string, p *Program) error {
	p.Schema = SchemaVersion
	raw, err := msgpack.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Encode serializes the payload without touching the filesystem.
func Encode(p *Program) ([]byte, error) {
	p.Schema = SchemaVersion
	return msgpack.Marshal(p)
}

// Decode parses raw snapshot bytes.
func Decode(raw []byte) (*Program, Digest, error) {
	digest := Digest(sha256.Sum256(raw))
	var p Program
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		return nil, digest, err
	}
	if p.Schema != SchemaVersion {
		return nil, digest, fmt.Errorf("snapshot schema %d, expected %d", p.Schema, SchemaVersion)
	}
	return &p, digest, nil
}
