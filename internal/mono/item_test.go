package mono

import (
	"testing"

	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/types"
)

func TestInstanceKeyDistinguishesInstantiations(t *testing.T) {
	a := Instance{Def: 1, Args: []types.TypeID{2, 3}}
	b := Instance{Def: 1, Args: []types.TypeID{3, 2}}
	if a.Key() == b.Key() {
		t.Fatalf("argument order must affect the key")
	}
	c := Instance{Def: 1, Args: []types.TypeID{2, 3}}
	if a.Key() != c.Key() {
		t.Fatalf("equal instantiations must share the key")
	}
}

func TestItemDefID(t *testing.T) {
	fn := FnItem(7, 2)
	if id, ok := fn.DefID(); !ok || id != 7 {
		t.Fatalf("unexpected fn def %v (ok=%v)", id, ok)
	}
	st := StaticItem(8)
	if id, ok := st.DefID(); !ok || id != 8 {
		t.Fatalf("unexpected static def %v (ok=%v)", id, ok)
	}
	if id, ok := AsmItem().DefID(); ok || id != defs.NoDefID {
		t.Fatalf("global asm must carry no definition")
	}
}
