package source

import "fmt"

// SourceLocation is the resolved position of a definition, carried through
// to the verification backend for its output. Columns are stored but not
// every output format prints them.
type SourceLocation struct {
	Filename  string
	StartLine uint32
	StartCol  uint32
	EndLine   uint32
	EndCol    uint32
}

// LocationOf resolves a span against the file set.
func LocationOf(fs *FileSet, sp Span) SourceLocation {
	if fs == nil {
		return SourceLocation{}
	}
	f := fs.Get(sp.File)
	if f == nil {
		return SourceLocation{}
	}
	start, end := fs.Resolve(sp)
	return SourceLocation{
		Filename:  f.Path,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}

func (l SourceLocation) String() string {
	if l.Filename == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.StartLine, l.StartCol)
}
