// Package mono models the reachable program units produced by the host's
// monomorphization phase. One validation run receives a finite ordered
// sequence of items; the same definition may appear many times under
// different type instantiations.
package mono

import (
	"strconv"
	"strings"

	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/types"
)

// ItemKind discriminates the MonoItem variants.
type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStatic
	ItemGlobalAsm
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "fn"
	case ItemStatic:
		return "static"
	case ItemGlobalAsm:
		return "global asm"
	default:
		return "item"
	}
}

// Instance is one monomorphized copy of a generic function: the definition
// plus the concrete type arguments. Instance identity is finer than
// definition identity, which is exactly why per-definition checks must
// dedup by DefID.
type Instance struct {
	Def  defs.DefID
	Args []types.TypeID
}

// ArgsKey is a stable string key over the type arguments.
type ArgsKey string

// Key builds the instance key used to distinguish instantiations.
func (i Instance) Key() ArgsKey {
	if len(i.Args) == 0 {
		return ""
	}
	var sb strings.Builder
	for n, a := range i.Args {
		if n > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(a), 10))
	}
	return ArgsKey(sb.String())
}

// Item is one reachable program unit.
// Fn items carry an Instance; Static items carry a Def; GlobalAsm items
// carry neither.
type Item struct {
	Kind     ItemKind
	Instance Instance   // ItemFn only
	Def      defs.DefID // ItemStatic only
}

// FnItem builds a reachable function instance.
func FnItem(def defs.DefID, args ...types.TypeID) Item {
	return Item{Kind: ItemFn, Instance: Instance{Def: def, Args: args}}
}

// StaticItem builds a reachable static.
func StaticItem(def defs.DefID) Item {
	return Item{Kind: ItemStatic, Def: def}
}

// AsmItem builds a global assembly unit.
func AsmItem() Item {
	return Item{Kind: ItemGlobalAsm}
}

// DefID returns the definition behind a Fn or Static item.
// The boolean is false for GlobalAsm, which carries no definition.
func (it Item) DefID() (defs.DefID, bool) {
	switch it.Kind {
	case ItemFn:
		return it.Instance.Def, true
	case ItemStatic:
		return it.Def, true
	default:
		return defs.NoDefID, false
	}
}
