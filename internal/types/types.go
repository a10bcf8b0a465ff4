package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindNever
	KindBool
	KindChar
	KindInt
	KindUint
	KindFloat
	KindStr
	KindArray
	KindAdt
	KindRef
	KindRawPtr
	KindFnDef
	KindFnPtr
	KindForeign
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindNever:
		return "never"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindArray:
		return "array"
	case KindAdt:
		return "adt"
	case KindRef:
		return "ref"
	case KindRawPtr:
		return "rawptr"
	case KindFnDef:
		return "fndef"
	case KindFnPtr:
		return "fnptr"
	case KindForeign:
		return "foreign"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0 // pointer-sized (isize/usize)
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Type is a compact descriptor for any supported type.
//
// Value containment runs through Adt field lists only; Ref and RawPtr are
// indirection edges. A type graph can be cyclic only through those
// indirection edges: field lists refer to TypeIDs interned before the Adt's
// fields are sealed, so pure value-containment cycles cannot be expressed.
type Type struct {
	Kind    Kind
	Elem    TypeID // for Ref/RawPtr/Array
	Count   uint32 // for arrays
	Width   Width  // for numeric primitives
	Mutable bool   // for Ref/RawPtr
	Payload uint32 // side-table slot for Adt/FnDef/FnPtr
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a signed integer of the given width (WidthAny for isize).
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeArray describes [T; count].
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakeRef describes &T or &mut T depending on the mutable flag.
func MakeRef(elem TypeID, mutable bool) Type {
	return Type{Kind: KindRef, Elem: elem, Mutable: mutable}
}

// MakeRawPtr describes *const T or *mut T.
func MakeRawPtr(elem TypeID, mutable bool) Type {
	return Type{Kind: KindRawPtr, Elem: elem, Mutable: mutable}
}
