package snapshot

import (
	"fmt"

	"github.com/workingjubilee/kani/internal/defs"
	"github.com/workingjubilee/kani/internal/mono"
	"github.com/workingjubilee/kani/internal/session"
	"github.com/workingjubilee/kani/internal/source"
	"github.com/workingjubilee/kani/internal/types"
)

// BuildSession reconstructs the program context from a decoded snapshot.
// TypeRec.Kind uses the types.Kind encoding; table indices are validated so
// a corrupt snapshot surfaces as an error instead of a panic.
func BuildSession(p *Program) (*session.Session, []mono.Item, error) {
	sess := session.New(p.CrateName)

	for _, f := range p.Files {
		sess.Files.AddVirtual(f.Path, f.Content)
	}

	b := &builder{p: p, sess: sess,
		typeIDs:  make([]types.TypeID, len(p.Types)),
		visiting: make(map[uint32]struct{}),
	}

	// Aggregates first: their identity must exist before any field or
	// indirection edge can refer to them.
	for i, rec := range p.Types {
		if types.Kind(rec.Kind) != types.KindAdt {
			continue
		}
		if int(rec.Adt) >= len(p.Adts) {
			return nil, nil, fmt.Errorf("type %d references missing adt %d", i, rec.Adt)
		}
		adt := p.Adts[rec.Adt]
		kind := types.AdtStruct
		if adt.Enum {
			kind = types.AdtEnum
		}
		b.typeIDs[i] = sess.Types.RegisterAdt(adt.Name, kind, adt.InteriorMut)
	}

	for i := range p.Types {
		if _, err := b.resolve(uint32(i)); err != nil {
			return nil, nil, err
		}
	}

	// Seal aggregate fields now that every referenced type has an ID.
	for i, rec := range p.Types {
		if types.Kind(rec.Kind) != types.KindAdt {
			continue
		}
		adt := p.Adts[rec.Adt]
		variants := make([]types.Variant, 0, len(adt.Variants))
		for _, v := range adt.Variants {
			fields := make([]types.Field, 0, len(v.Fields))
			for _, f := range v.Fields {
				id, err := b.typeAt(f.Type)
				if err != nil {
					return nil, nil, fmt.Errorf("adt %q: %w", adt.Name, err)
				}
				fields = append(fields, types.Field{Name: f.Name, Type: id})
			}
			variants = append(variants, types.Variant{Name: v.Name, Fields: fields})
		}
		sess.Types.SetAdtVariants(b.typeIDs[i], variants)
	}

	for i, rec := range p.Defs {
		ty := types.NoTypeID
		if rec.Type != 0 {
			id, err := b.typeAt(rec.Type - 1)
			if err != nil {
				return nil, nil, fmt.Errorf("def %q: %w", rec.Name, err)
			}
			ty = id
		}
		span, err := b.span(rec.Span)
		if err != nil {
			return nil, nil, fmt.Errorf("def %q: %w", rec.Name, err)
		}
		id := sess.Defs.New(defs.Def{
			Name:       rec.Name,
			Kind:       defs.DefKind(rec.Kind),
			Type:       ty,
			TypeParams: rec.TypeParams,
			Attrs:      rec.Attrs,
			Span:       span,
		})
		// Arena IDs are sequential, so snapshot index i maps to ID i+1.
		if id != defs.DefID(i+1) {
			panic("internal error: defs arena out of sync with snapshot")
		}
	}

	items := make([]mono.Item, 0, len(p.Items))
	for i, rec := range p.Items {
		switch mono.ItemKind(rec.Kind) {
		case mono.ItemFn:
			def, err := b.defAt(rec.Def)
			if err != nil {
				return nil, nil, fmt.Errorf("item %d: %w", i, err)
			}
			args := make([]types.TypeID, 0, len(rec.Args))
			for _, a := range rec.Args {
				id, err := b.typeAt(a)
				if err != nil {
					return nil, nil, fmt.Errorf("item %d: %w", i, err)
				}
				args = append(args, id)
			}
			items = append(items, mono.FnItem(def, args...))
		case mono.ItemStatic:
			def, err := b.defAt(rec.Def)
			if err != nil {
				return nil, nil, fmt.Errorf("item %d: %w", i, err)
			}
			items = append(items, mono.StaticItem(def))
		case mono.ItemGlobalAsm:
			items = append(items, mono.AsmItem())
		default:
			return nil, nil, fmt.Errorf("item %d has unknown kind %d", i, rec.Kind)
		}
	}

	return sess, items, nil
}

type builder struct {
	p        *Program
	sess     *session.Session
	typeIDs  []types.TypeID
	visiting map[uint32]struct{}
}

func (b *builder) typeAt(idx uint32) (types.TypeID, error) {
	if int(idx) >= len(b.typeIDs) {
		return types.NoTypeID, fmt.Errorf("type index %d out of range", idx)
	}
	if b.typeIDs[idx] == types.NoTypeID {
		return types.NoTypeID, fmt.Errorf("type index %d was never resolved", idx)
	}
	return b.typeIDs[idx], nil
}

func (b *builder) defAt(idx uint32) (defs.DefID, error) {
	if int(idx) >= len(b.p.Defs) {
		return defs.NoDefID, fmt.Errorf("def index %d out of range", idx)
	}
	return defs.DefID(idx + 1), nil
}

func (b *builder) span(rec SpanRec) (source.Span, error) {
	if rec.Start == 0 && rec.End == 0 && rec.File == 0 {
		return source.Span{}, nil
	}
	if int(rec.File) >= b.sess.Files.Len() {
		return source.Span{}, fmt.Errorf("span references missing file %d", rec.File)
	}
	return source.Span{File: source.FileID(rec.File), Start: rec.Start, End: rec.End}, nil
}

// resolve interns the type at the given index, memoizing the result. Only
// structural kinds recurse; aggregates were pre-registered, which is what
// lets indirection edges close cycles.
func (b *builder) resolve(idx uint32) (types.TypeID, error) {
	if int(idx) >= len(b.typeIDs) {
		return types.NoTypeID, fmt.Errorf("type index %d out of range", idx)
	}
	if id := b.typeIDs[idx]; id != types.NoTypeID {
		return id, nil
	}
	if _, ok := b.visiting[idx]; ok {
		return types.NoTypeID, fmt.Errorf("type index %d is part of a structural cycle", idx)
	}
	b.visiting[idx] = struct{}{}
	defer delete(b.visiting, idx)

	rec := b.p.Types[idx]
	in := b.sess.Types
	var id types.TypeID
	switch types.Kind(rec.Kind) {
	case types.KindUnit, types.KindNever, types.KindBool, types.KindChar, types.KindStr, types.KindForeign:
		id = in.Intern(types.Type{Kind: types.Kind(rec.Kind)})
	case types.KindInt, types.KindUint, types.KindFloat:
		id = in.Intern(types.Type{Kind: types.Kind(rec.Kind), Width: types.Width(rec.Width)})
	case types.KindArray:
		elem, err := b.resolve(rec.Elem)
		if err != nil {
			return types.NoTypeID, err
		}
		id = in.Intern(types.MakeArray(elem, rec.Count))
	case types.KindRef:
		elem, err := b.resolve(rec.Elem)
		if err != nil {
			return types.NoTypeID, err
		}
		id = in.Intern(types.MakeRef(elem, rec.Mutable))
	case types.KindRawPtr:
		elem, err := b.resolve(rec.Elem)
		if err != nil {
			return types.NoTypeID, err
		}
		id = in.Intern(types.MakeRawPtr(elem, rec.Mutable))
	case types.KindFnDef, types.KindFnPtr:
		if int(rec.Fn) >= len(b.p.Fns) {
			return types.NoTypeID, fmt.Errorf("type %d references missing fn %d", idx, rec.Fn)
		}
		fn := b.p.Fns[rec.Fn]
		params := make([]types.TypeID, 0, len(fn.Params))
		for _, pIdx := range fn.Params {
			p, err := b.resolve(pIdx)
			if err != nil {
				return types.NoTypeID, err
			}
			params = append(params, p)
		}
		result, err := b.resolve(fn.Result)
		if err != nil {
			return types.NoTypeID, err
		}
		if types.Kind(rec.Kind) == types.KindFnDef {
			id = in.RegisterFnDef(fn.Def, params, result)
		} else {
			id = in.InternFnPtr(params, result)
		}
	case types.KindAdt:
		// Pre-registered; missing here means the first pass rejected it.
		return types.NoTypeID, fmt.Errorf("type %d: aggregate was not registered", idx)
	default:
		return types.NoTypeID, fmt.Errorf("type %d has unknown kind %d", idx, rec.Kind)
	}
	b.typeIDs[idx] = id
	return id, nil
}
