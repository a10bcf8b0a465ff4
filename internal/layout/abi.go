package layout

import (
	"fmt"

	"github.com/workingjubilee/kani/internal/types"
)

// PassMode describes how one argument travels through a call.
type PassMode uint8

const (
	// PassDirect passes the value in registers.
	PassDirect PassMode = iota
	// PassIndirect passes a pointer to a caller-owned copy.
	PassIndirect
	// PassIgnore is used for zero-sized values.
	PassIgnore
)

func (m PassMode) String() string {
	switch m {
	case PassDirect:
		return "direct"
	case PassIndirect:
		return "indirect"
	case PassIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("PassMode(%d)", m)
	}
}

// ArgAbi is the calling-convention treatment of one argument or the return
// slot.
type ArgAbi struct {
	Type   types.TypeID
	Layout TypeLayout
	Mode   PassMode
}

// FnAbi is the full calling-convention description of a concrete function
// signature. All types are fully monomorphic by the time an FnAbi is
// requested.
type FnAbi struct {
	Args []ArgAbi
	Ret  ArgAbi
}

// FnAbiOf computes the ABI for a concrete signature. The returned error is
// a *Error; the caller decides which error kinds are fatal.
func (e *Engine) FnAbiOf(params []types.TypeID, result types.TypeID) (*FnAbi, error) {
	abi := &FnAbi{Args: make([]ArgAbi, 0, len(params))}
	for _, p := range params {
		arg, err := e.argAbi(p)
		if err != nil {
			return nil, err
		}
		abi.Args = append(abi.Args, arg)
	}
	ret, err := e.argAbi(result)
	if err != nil {
		return nil, err
	}
	abi.Ret = ret
	return abi, nil
}

func (e *Engine) argAbi(id types.TypeID) (ArgAbi, error) {
	l, lerr := e.layoutOf(id)
	if lerr != nil {
		return ArgAbi{}, lerr
	}
	mode := PassDirect
	switch {
	case l.Size == 0:
		mode = PassIgnore
	case l.Size > 2*int64(e.Target.PtrSize):
		mode = PassIndirect
	}
	return ArgAbi{Type: id, Layout: l, Mode: mode}, nil
}
