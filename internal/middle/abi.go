package middle

import (
	"fmt"

	"github.com/workingjubilee/kani/internal/attrs"
	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/diag"
	"github.com/workingjubilee/kani/internal/layout"
	"github.com/workingjubilee/kani/internal/mono"
	"github.com/workingjubilee/kani/internal/session"
	"github.com/workingjubilee/kani/internal/types"
)

// FnAbiOf computes the calling-convention description of a monomorphized
// instance. Every type is fully concrete at this point.
//
// A size-overflow layout failure is recorded as a fatal diagnostic and
// returned, terminating the run; any other layout failure indicates a
// defect in the pass and panics with the offending signature.
func FnAbiOf(sess *session.Session, sink *diag.Sink, inst mono.Instance) (*layout.FnAbi, error) {
	d := sess.Defs.Get(inst.Def)
	if d == nil {
		panic(fmt.Sprintf("internal error: fn abi requested for unknown definition %d", inst.Def))
	}
	info, ok := sess.Types.FnInfo(d.Type)
	if !ok {
		panic(fmt.Sprintf("internal error: fn abi requested for non-function `%s`", d.Name))
	}
	abi, err := sess.Layout.FnAbiOf(info.Params, info.Result)
	if err != nil {
		if layout.IsSizeOverflow(err) {
			sink.Error(diag.AbiSizeOverflow, d.Span,
				fmt.Sprintf("cannot compute the ABI of `%s`: %v", d.Name, err))
			return nil, fmt.Errorf("fn abi of instance `%s`: %w", d.Name, err)
		}
		panic(fmt.Sprintf(
			"internal error: %v while computing fn abi of instance `%s` (type args %v)",
			err, d.Name, inst.Args))
	}
	return abi, nil
}

// FnAbiOfFnPtr computes the ABI for a function pointer signature. The
// error split matches FnAbiOf.
func FnAbiOfFnPtr(sess *session.Session, sink *diag.Sink, fnPtr types.TypeID) (*layout.FnAbi, error) {
	info, ok := sess.Types.FnInfo(fnPtr)
	if !ok {
		panic(fmt.Sprintf("internal error: fn abi requested for non-function type#%d", fnPtr))
	}
	abi, err := sess.Layout.FnAbiOf(info.Params, info.Result)
	if err != nil {
		if layout.IsSizeOverflow(err) {
			sink.Error(diag.AbiSizeOverflow, sess.SpanOf(defs.DefID(info.Def)),
				fmt.Sprintf("cannot compute the ABI of the function pointer type#%d: %v", fnPtr, err))
			return nil, fmt.Errorf("fn abi of fn pointer type#%d: %w", fnPtr, err)
		}
		panic(fmt.Sprintf(
			"internal error: %v while computing fn abi of fn pointer (params %v, result %v)",
			err, info.Params, info.Result))
	}
	return abi, nil
}

// FnDesc is the resolved function-typed view of a definition.
type FnDesc struct {
	Def    defs.DefID
	Type   types.TypeID
	Params []types.TypeID
	Result types.TypeID
}

// StableFnDef resolves a definition to a function descriptor if and only if
// its type is a concrete function type. Callers use this for best-effort
// lookup, so a non-function definition is not an error.
func StableFnDef(sess *session.Session, id defs.DefID) (FnDesc, bool) {
	d := sess.Defs.Get(id)
	if d == nil {
		return FnDesc{}, false
	}
	tt, ok := sess.Types.Lookup(d.Type)
	if !ok || tt.Kind != types.KindFnDef {
		return FnDesc{}, false
	}
	info, ok := sess.Types.FnInfo(d.Type)
	if !ok {
		return FnDesc{}, false
	}
	return FnDesc{Def: id, Type: d.Type, Params: info.Params, Result: info.Result}, true
}

// FindFnDef locates the library helper tagged with the given marker, e.g.
// the assertion hook the backend instruments.
func FindFnDef(sess *session.Session, marker string) (FnDesc, bool) {
	for _, d := range sess.Defs.All() {
		a := attrs.ForDef(sess.Defs, d.ID)
		if m, ok := a.Marker(); ok && m == marker {
			return StableFnDef(sess, d.ID)
		}
	}
	return FnDesc{}, false
}
