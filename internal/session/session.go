// Package session carries the read-only program context the readiness
// checks operate on: source files, the type interner, and the definition
// table exported by the host compiler. The pass never mutates any of it;
// its only mutation target is the diagnostic sink.
package session

import (
	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/layout"
	"github.com/workingjubilee/kani/internal/source"
	"github.com/workingjubilee/kani/internal/types"
)

// Session is the per-run view of one compilation unit.
type Session struct {
	CrateName string
	Files     *source.FileSet
	Types     *types.Interner
	Defs      *defs.Table
	Layout    *layout.Engine
}

// New assembles a session around fresh stores for the default target.
func New(crateName string) *Session {
	in := types.NewInterner()
	return &Session{
		CrateName: crateName,
		Files:     source.NewFileSet(),
		Types:     in,
		Defs:      defs.NewTable(0),
		Layout:    layout.New(layout.X8664LinuxGNU(), in),
	}
}

// TypeOf returns the type of a definition, NoTypeID if the def is invalid.
func (s *Session) TypeOf(id defs.DefID) types.TypeID {
	d := s.Defs.Get(id)
	if d == nil {
		return types.NoTypeID
	}
	return d.Type
}

// SpanOf returns the declaration span of a definition.
func (s *Session) SpanOf(id defs.DefID) source.Span {
	d := s.Defs.Get(id)
	if d == nil {
		return source.Span{}
	}
	return d.Span
}
