package defs

import (
	"github.com/workingjubilee/kani/internal/source"
	"github.com/workingjubilee/kani/internal/types"
)

// DefID identifies one top-level definition. Identity comparison is the
// only valid dedup key: two syntactically different definitions never share
// an ID.
type DefID uint32

// NoDefID marks the absence of a definition.
const NoDefID DefID = 0

// IsValid reports whether the ID refers to a real definition.
func (id DefID) IsValid() bool { return id != NoDefID }

// DefKind classifies top-level items.
type DefKind uint8

const (
	DefOther DefKind = iota
	DefFn
	DefStatic
	DefGlobalAsm
)

func (k DefKind) String() string {
	switch k {
	case DefFn:
		return "fn"
	case DefStatic:
		return "static"
	case DefGlobalAsm:
		return "global asm"
	default:
		return "item"
	}
}

// Def is one top-level item of the program under validation. The host
// compiler owns this data; the readiness pass only reads it.
type Def struct {
	ID         DefID
	Name       string
	Kind       DefKind
	Type       types.TypeID
	TypeParams uint8    // number of generic parameters left abstract in the declaration
	Attrs      []string // raw attribute strings, parsed by internal/attrs
	Span       source.Span
}
