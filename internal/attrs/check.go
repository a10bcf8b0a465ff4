package attrs

import (
	"fmt"

	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/diag"
)

// harnessOnly lists attributes that only make sense on a harness.
var harnessOnly = []Kind{KindUnwind, KindSolver, KindStub, KindShouldPanic}

// CheckAttributes validates that the attribute set of the definition is
// self-consistent. Violations are recorded on the sink; traversal of the
// remaining attributes continues so a single run reports everything.
func (a *Attributes) CheckAttributes(sink *diag.Sink) {
	if a.def == nil {
		return
	}
	span := a.def.Span

	for _, raw := range a.malformed {
		sink.Error(diag.AttrMalformed, span,
			fmt.Sprintf("`%s` is not a valid verification attribute for `%s`", raw, a.def.Name))
	}

	for _, kind := range []Kind{KindProof, KindProofForContract, KindUnwind, KindSolver} {
		if len(a.find(kind)) > 1 {
			sink.Error(diag.AttrDuplicate, span,
				fmt.Sprintf("only one `%s` attribute is allowed per definition", kind))
		}
	}

	isProof := a.has(KindProof)
	isContract := a.has(KindProofForContract)
	if isProof && isContract {
		sink.Error(diag.AttrProofConflict, span,
			fmt.Sprintf("`%s` cannot have both `proof` and `proof_for_contract` attributes", a.def.Name))
	}

	if isProof || isContract {
		if a.def.Kind != defs.DefFn {
			sink.Error(diag.AttrProofNonFn, span,
				fmt.Sprintf("the `proof` attribute can only be applied to functions, but `%s` is a %s", a.def.Name, a.def.Kind))
		} else if a.def.TypeParams > 0 {
			sink.Error(diag.AttrProofGeneric, span,
				fmt.Sprintf("the proof harness `%s` cannot have generic parameters", a.def.Name))
		}
	} else {
		for _, kind := range harnessOnly {
			if a.has(kind) {
				sink.Error(diag.AttrHarnessOnly, span,
					fmt.Sprintf("the `%s` attribute requires `%s` to also be marked as a proof harness", kind, a.def.Name))
			}
		}
	}

	for _, attr := range a.find(KindProofForContract) {
		if len(attr.Args) != 1 {
			sink.Error(diag.AttrMalformed, span,
				fmt.Sprintf("`proof_for_contract` on `%s` expects exactly one argument: the target function", a.def.Name))
		}
	}

	for _, attr := range a.find(KindUnstable) {
		if len(attr.Args) == 0 {
			sink.Error(diag.AttrMalformed, span,
				fmt.Sprintf("`unstable` on `%s` expects at least one feature name", a.def.Name))
		}
	}

	for _, attr := range a.find(KindUnwind) {
		if len(attr.Args) != 1 {
			sink.Error(diag.AttrMalformed, span,
				fmt.Sprintf("`unwind` expects a single integer bound on `%s`", a.def.Name))
			continue
		}
		if n, ok := a.UnwindValue(); ok && n == 0 {
			sink.Error(diag.AttrZeroUnwind, span,
				fmt.Sprintf("invalid `unwind` bound on `%s`: the bound must be at least 1", a.def.Name))
		} else if !ok {
			sink.Error(diag.AttrMalformed, span,
				fmt.Sprintf("invalid `unwind` bound `%s` on `%s`", attr.Args[0], a.def.Name))
		}
	}

	for _, attr := range a.find(KindStub) {
		if len(attr.Args) != 2 {
			sink.Error(diag.AttrBadStub, span,
				fmt.Sprintf("`stub` on `%s` expects exactly two arguments: the original and the replacement", a.def.Name))
		}
	}
}

// CheckUnstableFeatures records an error for every unstable capability the
// definition depends on that was not enabled for this run.
func (a *Attributes) CheckUnstableFeatures(sink *diag.Sink, allowed map[string]struct{}) {
	if a.def == nil {
		return
	}
	for _, feature := range a.UnstableFeatures() {
		if _, ok := allowed[feature]; !ok {
			sink.Error(diag.ReachUnstableFeature, a.def.Span,
				fmt.Sprintf("`%s` uses the unstable feature `%s`, which was not enabled; rerun with `-Z %s` to opt in",
					a.def.Name, feature, feature))
		}
	}
}

// CheckProofForContract verifies the global reachability obligation of a
// contract harness: the function whose contract is being proven must be
// part of the reachable function set of this run.
func (a *Attributes) CheckProofForContract(sink *diag.Sink, tbl *defs.Table, reachable map[defs.DefID]struct{}) {
	if a.def == nil {
		return
	}
	target, ok := a.ProofForContractTarget()
	if !ok {
		return
	}
	id, found := tbl.LookupName(target)
	if !found {
		sink.Error(diag.ReachContractNoTarget, a.def.Span,
			fmt.Sprintf("the function `%s` specified by the `proof_for_contract` attribute of `%s` was not found",
				target, a.def.Name))
		return
	}
	if _, live := reachable[id]; live {
		return
	}
	sink.Error(diag.ReachContractUnreached, a.def.Span,
		fmt.Sprintf("the function `%s`, for which the harness `%s` proves the contract, is not reachable; make sure the harness actually calls it",
			target, a.def.Name))
}
