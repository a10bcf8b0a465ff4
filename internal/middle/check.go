package middle

import (
	"fmt"

	"github.com/workingjubilee/kani/internal/attrs"
	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/diag"
	"github.com/workingjubilee/kani/internal/mono"
	"github.com/workingjubilee/kani/internal/queries"
	"github.com/workingjubilee/kani/internal/session"
)

// CheckCrateItems checks that all crate items are supported and there is no
// misconfiguration. It exhaustively records every error and warning, then
// aborts at the end if any error was found.
func CheckCrateItems(sess *session.Session, sink *diag.Sink, ignoreASM bool) error {
	krate := sess.CrateName
	for _, item := range sess.Defs.All() {
		attrs.ForDef(sess.Defs, item.ID).CheckAttributes(sink)
		if item.Kind == defs.DefGlobalAsm {
			if !ignoreASM {
				sink.Error(diag.CrateGlobalAsm, item.Span, fmt.Sprintf(
					"crate `%s` contains global ASM, which is not supported by the verifier; "+
						"rerun with `--ignore-global-asm` to suppress this error "+
						"(verification results may be impacted)", krate))
			} else {
				sink.Warning(diag.CrateGlobalAsm, item.Span, fmt.Sprintf(
					"ignoring global ASM in crate `%s`; verification results may be impacted", krate))
			}
		}
	}
	return sink.AbortIfErrors()
}

// CheckReachableItems checks that all reachable items are supported and
// satisfy the attribute policy. Checks run once per definition no matter
// how many instantiations reference it, so diagnostics are
// duplication-invariant.
func CheckReachableItems(sess *session.Session, sink *diag.Sink, q *queries.QueryDb, items []mono.Item) error {
	reachable := make(map[defs.DefID]struct{}, len(items))
	for _, it := range items {
		if it.Kind == mono.ItemFn {
			reachable[it.Instance.Def] = struct{}{}
		}
	}

	seen := make(map[defs.DefID]struct{}, len(items))
	for _, it := range items {
		if it.Kind != mono.ItemFn && it.Kind != mono.ItemStatic {
			// Global assembly is audited at crate level.
			continue
		}
		id := defIDOf(it)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		a := attrs.ForDef(sess.Defs, id)
		a.CheckUnstableFeatures(sink, q.AllowedUnstable())
		a.CheckProofForContract(sink, sess.Defs, reachable)
	}
	return sink.AbortIfErrors()
}

// defIDOf extracts the definition behind a Fn or Static item. Reaching a
// GlobalAsm item here is an inconsistency between phases, not a user error.
func defIDOf(it mono.Item) defs.DefID {
	id, ok := it.DefID()
	if !ok {
		panic(fmt.Sprintf("internal error: unexpected %s item in the reachable definition stream", it.Kind))
	}
	return id
}
