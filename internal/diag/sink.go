package diag

import (
	"errors"

	"github.com/workingjubilee/kani/internal/source"
)

// ErrAborted is returned by AbortIfErrors when at least one error was
// recorded. The driver translates it into a non-zero exit after rendering
// every accumulated diagnostic.
var ErrAborted = errors.New("aborting due to previous errors")

// Sink is the run-wide diagnostic accumulator shared by every readiness
// check. It is initialized empty at run start, only ever appended to, and
// drained at the designated abort checkpoints. Policy violations never stop
// a traversal: each phase records everything it finds and the checkpoint
// decides once at phase end.
//
// Errors are counted separately from the bag: the bag's limit bounds the
// rendered output, never the accept/reject verdict. An error recorded after
// the bag filled up still fails the run.
type Sink struct {
	bag    *Bag
	errors int
}

// NewSink creates a sink rendering at most max diagnostics.
func NewSink(max int) *Sink {
	return &Sink{bag: NewBag(max)}
}

// Error records a user-facing policy violation.
func (s *Sink) Error(code Code, primary source.Span, msg string) {
	s.errors++
	s.bag.Add(NewError(code, primary, msg))
}

// Warning records a user-facing advisory. Warnings never block the run.
func (s *Sink) Warning(code Code, primary source.Span, msg string) {
	s.bag.Add(NewWarning(code, primary, msg))
}

// Report lets the sink double as a Reporter for shared emission helpers.
func (s *Sink) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if sev >= SevError {
		s.errors++
	}
	s.bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
}

// AbortIfErrors is the checkpoint: it returns ErrAborted when any error was
// recorded since the sink was created, nil otherwise. A run with only
// warnings completes normally.
func (s *Sink) AbortIfErrors() error {
	if s.errors > 0 {
		return ErrAborted
	}
	return nil
}

// Bag exposes the accumulated diagnostics for rendering and assertions.
func (s *Sink) Bag() *Bag {
	return s.bag
}

// ErrorCount counts every recorded error, including any the bag dropped.
func (s *Sink) ErrorCount() int {
	return s.errors
}
