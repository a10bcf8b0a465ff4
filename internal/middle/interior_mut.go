package middle

import (
	"github.com/workingjubilee/kani/internal/types"
)

// IsInteriorMut traverses the type definition to see if the type contains
// interior mutability in the memory region of the value itself.
//
// The traversal follows value-containment edges only: references and raw
// pointers are not descended into, because the pointee lives in a different
// memory region that is analyzed by its own call. Termination follows from
// the type invariant that value-containment edges are acyclic.
func IsInteriorMut(in *types.Interner, id types.TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case types.KindAdt:
		info, ok := in.AdtInfo(id)
		if !ok {
			return false
		}
		if info.InteriorMut {
			// The marker wrapper itself, regardless of its contents.
			return true
		}
		for _, variant := range info.Variants {
			for _, field := range variant.Fields {
				if IsInteriorMut(in, field.Type) {
					return true
				}
			}
		}
		return false
	case types.KindArray:
		return IsInteriorMut(in, tt.Elem)
	case types.KindRef, types.KindRawPtr:
		// We only care about the current memory space.
		return false
	default:
		return false
	}
}
