package diag

import (
	"testing"

	"github.com/workingjubilee/kani/internal/source"
)

func TestBagRespectsLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(NewError(AttrMalformed, source.Span{}, "x"))
	}
	if b.Len() != 2 {
		t.Fatalf("expected limit 2, got %d", b.Len())
	}
}

func TestBagLimitAbove16Bits(t *testing.T) {
	limit := 1 << 17
	b := NewBag(limit)
	if b.Cap() != limit {
		t.Fatalf("limit truncated: %d", b.Cap())
	}
	for i := 0; i < limit; i++ {
		if !b.Add(NewWarning(CrateGlobalAsm, source.Span{}, "w")) {
			t.Fatalf("add %d rejected below the limit", i)
		}
	}
	if b.Add(NewWarning(CrateGlobalAsm, source.Span{}, "w")) {
		t.Fatalf("limit not enforced")
	}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	b := NewBag(8)
	b.Add(NewWarning(CrateGlobalAsm, source.Span{}, "asm"))
	if b.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	if !b.HasWarnings() {
		t.Fatalf("expected warnings")
	}
	b.Add(NewError(CrateGlobalAsm, source.Span{}, "asm"))
	if !b.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestSortIsDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(NewWarning(ReachInfo, source.Span{File: 1, Start: 5}, "later"))
	b.Add(NewError(AttrMalformed, source.Span{File: 0, Start: 9}, "earlier file"))
	b.Add(NewError(ReachUnstableFeature, source.Span{File: 1, Start: 5}, "same span"))
	b.Sort()
	items := b.Items()
	if items[0].Code != AttrMalformed {
		t.Fatalf("expected file order first, got %v", items[0].Code)
	}
	// Same span: error sorts before warning.
	if items[1].Code != ReachUnstableFeature {
		t.Fatalf("expected severity order, got %v", items[1].Code)
	}
}

func TestDedupDropsRepeatedDiagnostics(t *testing.T) {
	b := NewBag(8)
	sp := source.Span{File: 1, Start: 2, End: 3}
	b.Add(NewError(AttrMalformed, sp, "same"))
	b.Add(NewError(AttrMalformed, sp, "same"))
	b.Add(NewError(AttrMalformed, sp, "different"))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", b.Len())
	}
}

func TestMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(AttrMalformed, source.Span{}, "a"))
	other := NewBag(2)
	other.Add(NewError(CrateGlobalAsm, source.Span{}, "b"))
	other.Add(NewWarning(CrateGlobalAsm, source.Span{}, "c"))
	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("expected 3 diagnostics after merge, got %d", a.Len())
	}
}

func TestDedupReporterSuppressesDuplicates(t *testing.T) {
	b := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{File: 2, Start: 1, End: 4}
	for i := 0; i < 3; i++ {
		r.Report(ReachUnstableFeature, SevError, sp, "feature `ghost-state`", nil)
	}
	if b.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", b.Len())
	}
}
