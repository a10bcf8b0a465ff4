package layout

import (
	"github.com/workingjubilee/kani/internal/types"
)

func (e *Engine) computeLayout(id types.TypeID) (TypeLayout, *Error) {
	tt, ok := e.Types.Lookup(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrUnsized, Type: id}
	}

	switch tt.Kind {
	case types.KindUnit, types.KindNever:
		return TypeLayout{Size: 0, Align: 1}, nil

	case types.KindBool:
		return scalarLayout(1), nil

	case types.KindChar:
		return scalarLayout(4), nil

	case types.KindInt, types.KindUint, types.KindFloat:
		if tt.Width == types.WidthAny {
			return e.ptrLayout(), nil
		}
		return scalarLayout(int64(tt.Width) / 8), nil

	case types.KindStr:
		// Unsized in Rust terms; behind indirection it contributes a wide
		// pointer, by value it has no layout of its own.
		return e.ptrLayout(), nil

	case types.KindRef, types.KindRawPtr, types.KindFnDef, types.KindFnPtr:
		return e.ptrLayout(), nil

	case types.KindArray:
		return e.arrayLayout(id, tt)

	case types.KindAdt:
		return e.adtLayout(id)

	case types.KindForeign:
		return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrUnsized, Type: id}

	default:
		return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrUnsized, Type: id}
	}
}

func (e *Engine) arrayLayout(id types.TypeID, tt types.Type) (TypeLayout, *Error) {
	elem, err := e.layoutOf(tt.Elem)
	if err != nil {
		return TypeLayout{Size: 0, Align: 1}, err
	}
	stride := roundUp(elem.Size, elem.Align)
	total := stride * int64(tt.Count)
	if stride != 0 && (total/stride != int64(tt.Count) || total > e.maxObjectSize()) {
		return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrSizeOverflow, Type: id}
	}
	return TypeLayout{Size: total, Align: elem.Align}, nil
}

// adtLayout lays out the single variant of a struct, or sizes an enum as
// tag plus its largest variant.
func (e *Engine) adtLayout(id types.TypeID) (TypeLayout, *Error) {
	info, ok := e.Types.AdtInfo(id)
	if !ok {
		return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrUnsized, Type: id}
	}

	var (
		maxSize  int64
		align    int64 = 1
		offsets  []int64
		tagExtra int64
	)
	if info.Kind == types.AdtEnum && len(info.Variants) > 1 {
		tagExtra = 4 // uint32 discriminant
		align = 4
	}
	for vi, variant := range info.Variants {
		var size = tagExtra
		var variantOffsets []int64
		for _, f := range variant.Fields {
			fl, err := e.layoutOf(f.Type)
			if err != nil {
				return TypeLayout{Size: 0, Align: 1}, err
			}
			size = roundUp(size, fl.Align)
			variantOffsets = append(variantOffsets, size)
			size += fl.Size
			if fl.Align > align {
				align = fl.Align
			}
			if size > e.maxObjectSize() || size < 0 {
				return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrSizeOverflow, Type: id}
			}
		}
		if size > maxSize {
			maxSize = size
		}
		if vi == 0 {
			offsets = variantOffsets
		}
	}
	total := roundUp(maxSize, align)
	if total > e.maxObjectSize() {
		return TypeLayout{Size: 0, Align: 1}, &Error{Kind: ErrSizeOverflow, Type: id}
	}
	return TypeLayout{Size: total, Align: align, FieldOffsets: offsets}, nil
}

func (e *Engine) ptrLayout() TypeLayout {
	ptrSize := int64(e.Target.PtrSize)
	ptrAlign := int64(e.Target.PtrAlign)
	if ptrSize <= 0 {
		ptrSize = 8
	}
	if ptrAlign <= 0 {
		ptrAlign = ptrSize
	}
	return TypeLayout{Size: ptrSize, Align: ptrAlign}
}

func (e *Engine) maxObjectSize() int64 {
	if e.Target.MaxObjectSize > 0 {
		return e.Target.MaxObjectSize
	}
	return int64(1) << 47
}

func scalarLayout(size int64) TypeLayout {
	if size <= 0 {
		return TypeLayout{Size: 0, Align: 1}
	}
	return TypeLayout{Size: size, Align: size}
}

func roundUp(n, align int64) int64 {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}
