package layout

import (
	"github.com/workingjubilee/kani/internal/types"
)

// TypeLayout is the computed layout of a type for a specific Target.
type TypeLayout struct {
	Size  int64
	Align int64

	// Aggregate-only: byte offsets of the fields of the sole (or largest)
	// variant, in declaration order.
	FieldOffsets []int64
}

// Engine computes memory layout for types. Results are memoized per TypeID;
// the engine is not safe for concurrent use, matching the single-threaded
// execution model of the pass.
type Engine struct {
	Target Target
	Types  *types.Interner

	cache      map[types.TypeID]cacheEntry
	inProgress map[types.TypeID]struct{}
}

type cacheEntry struct {
	layout TypeLayout
	err    *Error
}

// New creates an Engine for the specified target.
func New(target Target, in *types.Interner) *Engine {
	return &Engine{
		Target:     target,
		Types:      in,
		cache:      make(map[types.TypeID]cacheEntry, 64),
		inProgress: make(map[types.TypeID]struct{}, 8),
	}
}

// LayoutOf computes and caches the layout of a type.
func (e *Engine) LayoutOf(id types.TypeID) (TypeLayout, error) {
	layout, lerr := e.layoutOf(id)
	if lerr != nil {
		return layout, lerr
	}
	return layout, nil
}

func (e *Engine) layoutOf(id types.TypeID) (TypeLayout, *Error) {
	if cached, ok := e.cache[id]; ok {
		return cached.layout, cached.err
	}
	// A value-containment cycle violates the type invariant; surface it as
	// an unsized type instead of recursing forever.
	if _, ok := e.inProgress[id]; ok {
		return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrUnsized, Type: id}
	}
	e.inProgress[id] = struct{}{}
	layout, err := e.computeLayout(id)
	delete(e.inProgress, id)
	e.cache[id] = cacheEntry{layout: layout, err: err}
	return layout, err
}

// SizeOf returns the size of a type in bytes.
func (e *Engine) SizeOf(id types.TypeID) (int64, error) {
	l, err := e.LayoutOf(id)
	return l.Size, err
}

// AlignOf returns the alignment requirement of a type in bytes.
func (e *Engine) AlignOf(id types.TypeID) (int64, error) {
	l, err := e.LayoutOf(id)
	return l.Align, err
}
