package layout

import (
	"errors"
	"fmt"

	"github.com/workingjubilee/kani/internal/types"
)

// ErrorKind enumerates layout calculation failures.
type ErrorKind uint8

const (
	// ErrSizeOverflow indicates the computed size exceeds the target's
	// maximum object size. This is a legitimate consequence of user code,
	// not a defect, and is reported through the fatal-diagnostic path.
	ErrSizeOverflow ErrorKind = iota + 1
	// ErrUnsized indicates a type with no computable size (foreign or
	// invalid descriptors reaching the engine).
	ErrUnsized
)

// Error represents a failure during memory layout calculation.
type Error struct {
	Kind ErrorKind
	Type types.TypeID
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ErrSizeOverflow:
		return fmt.Sprintf("values of type#%d are too big for the target architecture", e.Type)
	case ErrUnsized:
		return fmt.Sprintf("type#%d does not have a computable layout", e.Type)
	default:
		return fmt.Sprintf("layout error kind=%d type#%d", e.Kind, e.Type)
	}
}

// IsSizeOverflow reports whether err is a size-overflow layout failure.
func IsSizeOverflow(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Kind == ErrSizeOverflow
}
