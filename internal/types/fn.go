package types

import (
	"fmt"

	"fortio.org/safecast"
)

// FnInfo stores signature metadata for function types.
// Def is the raw definition handle for KindFnDef types; zero for fn pointers.
type FnInfo struct {
	Def    uint32
	Params []TypeID
	Result TypeID
}

// RegisterFnDef creates the unique function type of a definition.
func (in *Interner) RegisterFnDef(def uint32, params []TypeID, result TypeID) TypeID {
	slot := in.appendFnInfo(FnInfo{Def: def, Params: cloneTypeIDs(params), Result: result})
	return in.internRaw(Type{Kind: KindFnDef, Payload: slot})
}

// InternFnPtr creates or finds a structural function pointer type.
func (in *Interner) InternFnPtr(params []TypeID, result TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFnPtr {
			continue
		}
		info := in.fns[tt.Payload]
		if info.Result == result && equalTypeIDs(info.Params, params) {
			return id
		}
	}
	slot := in.appendFnInfo(FnInfo{Params: cloneTypeIDs(params), Result: result})
	return in.internRaw(Type{Kind: KindFnPtr, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindFnDef && tt.Kind != KindFnPtr) {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

func (in *Interner) appendFnInfo(info FnInfo) uint32 {
	in.fns = append(in.fns, info)
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return slot
}

func cloneTypeIDs(ids []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	copy(out, ids)
	return out
}

func equalTypeIDs(a, b []TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
