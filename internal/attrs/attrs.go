// Package attrs parses and validates the verification attributes attached
// to definitions. The host compiler stores attributes as raw strings; this
// package owns their grammar and the per-definition policy checks.
package attrs

import (
	"strconv"
	"strings"

	"github.com/workingjubilee/kani/internal/defs"
)

// Kind enumerates the recognized verification attributes.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindProof
	KindProofForContract
	KindUnstable
	KindUnwind
	KindSolver
	KindStub
	KindShouldPanic
	KindFnMarker
)

var kindNames = map[string]Kind{
	"proof":              KindProof,
	"proof_for_contract": KindProofForContract,
	"unstable":           KindUnstable,
	"unwind":             KindUnwind,
	"solver":             KindSolver,
	"stub":               KindStub,
	"should_panic":       KindShouldPanic,
	"fn_marker":          KindFnMarker,
}

func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// Attr is one parsed attribute.
type Attr struct {
	Kind Kind
	Args []string
	Raw  string
}

// Attributes is the parsed attribute set of a single definition.
type Attributes struct {
	def       *defs.Def
	parsed    []Attr
	malformed []string
}

// ForDef parses the raw attribute list of a definition. Parsing never
// fails: malformed entries are kept aside and reported by CheckAttributes.
func ForDef(tbl *defs.Table, id defs.DefID) *Attributes {
	d := tbl.Get(id)
	a := &Attributes{def: d}
	if d == nil {
		return a
	}
	for _, raw := range d.Attrs {
		attr, ok := parse(raw)
		if !ok {
			a.malformed = append(a.malformed, raw)
			continue
		}
		a.parsed = append(a.parsed, attr)
	}
	return a
}

// parse splits "name" or "name(arg, arg)" into a typed attribute.
func parse(raw string) (Attr, bool) {
	s := strings.TrimSpace(raw)
	name := s
	var args []string
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return Attr{}, false
		}
		name = strings.TrimSpace(s[:open])
		inner := s[open+1 : len(s)-1]
		if strings.TrimSpace(inner) == "" {
			return Attr{}, false
		}
		for _, part := range strings.Split(inner, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				return Attr{}, false
			}
			args = append(args, part)
		}
	}
	kind, ok := kindNames[name]
	if !ok {
		return Attr{}, false
	}
	return Attr{Kind: kind, Args: args, Raw: raw}, true
}

func (a *Attributes) find(kind Kind) []Attr {
	var out []Attr
	for _, attr := range a.parsed {
		if attr.Kind == kind {
			out = append(out, attr)
		}
	}
	return out
}

func (a *Attributes) has(kind Kind) bool {
	return len(a.find(kind)) > 0
}

// IsHarness reports whether the definition is a verification entry point.
func (a *Attributes) IsHarness() bool {
	return a.has(KindProof) || a.has(KindProofForContract)
}

// ProofForContractTarget returns the contract target named by a
// proof_for_contract attribute.
func (a *Attributes) ProofForContractTarget() (string, bool) {
	for _, attr := range a.find(KindProofForContract) {
		if len(attr.Args) == 1 {
			return attr.Args[0], true
		}
	}
	return "", false
}

// UnwindValue returns the unwind bound, if one parses.
func (a *Attributes) UnwindValue() (uint32, bool) {
	for _, attr := range a.find(KindUnwind) {
		if len(attr.Args) != 1 {
			continue
		}
		n, err := strconv.ParseUint(attr.Args[0], 10, 32)
		if err != nil {
			continue
		}
		return uint32(n), true
	}
	return 0, false
}

// Solver returns the solver override, if any.
func (a *Attributes) Solver() (string, bool) {
	for _, attr := range a.find(KindSolver) {
		if len(attr.Args) == 1 {
			return attr.Args[0], true
		}
	}
	return "", false
}

// ShouldPanic reports whether the harness expects a panic.
func (a *Attributes) ShouldPanic() bool {
	return a.has(KindShouldPanic)
}

// Marker returns the diagnostic marker name used for best-effort lookup of
// library helper functions.
func (a *Attributes) Marker() (string, bool) {
	for _, attr := range a.find(KindFnMarker) {
		if len(attr.Args) == 1 {
			return attr.Args[0], true
		}
	}
	return "", false
}

// StubPair is one requested replacement: calls to Original are redirected
// to Replacement inside the harness.
type StubPair struct {
	Original    string
	Replacement string
}

// Stubs lists the well-formed stub requests.
func (a *Attributes) Stubs() []StubPair {
	var out []StubPair
	for _, attr := range a.find(KindStub) {
		if len(attr.Args) == 2 {
			out = append(out, StubPair{Original: attr.Args[0], Replacement: attr.Args[1]})
		}
	}
	return out
}

// UnstableFeatures lists every feature named by unstable attributes.
func (a *Attributes) UnstableFeatures() []string {
	var out []string
	for _, attr := range a.find(KindUnstable) {
		out = append(out, attr.Args...)
	}
	return out
}
