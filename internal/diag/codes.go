package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Attribute policy (per-definition checks)
	AttrInfo          Code = 1000
	AttrMalformed     Code = 1001
	AttrDuplicate     Code = 1002
	AttrHarnessOnly   Code = 1003
	AttrProofConflict Code = 1004
	AttrProofNonFn    Code = 1005
	AttrProofGeneric  Code = 1006
	AttrZeroUnwind    Code = 1007
	AttrBadStub       Code = 1008

	// Reachability validation (post-monomorphization)
	ReachInfo              Code = 2000
	ReachUnstableFeature   Code = 2001
	ReachContractNoTarget  Code = 2002
	ReachContractUnreached Code = 2003

	// Crate-level audit (post-parse)
	CrateInfo      Code = 3000
	CrateGlobalAsm Code = 3001

	// ABI / layout
	AbiInfo         Code = 4000
	AbiSizeOverflow Code = 4001
)

func (c Code) String() string {
	return fmt.Sprintf("K%04d", uint16(c))
}
