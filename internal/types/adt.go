package types

import (
	"fmt"

	"fortio.org/safecast"
)

// AdtKind distinguishes struct-like and enum-like aggregates.
type AdtKind uint8

const (
	AdtStruct AdtKind = iota
	AdtEnum
)

// Field is a single typed slot inside a variant.
type Field struct {
	Name string
	Type TypeID
}

// Variant groups the fields of one aggregate alternative. Structs have
// exactly one variant.
type Variant struct {
	Name   string
	Fields []Field
}

// AdtInfo stores metadata for a nominal aggregate type.
//
// InteriorMut marks the designated interior-mutability wrapper (the
// UnsafeCell analog): a value of this type may be mutated through a shared
// reference. The structural scanner treats such a type as a hit without
// looking inside it.
type AdtInfo struct {
	Name        string
	Kind        AdtKind
	InteriorMut bool
	Variants    []Variant
}

// RegisterAdt allocates a nominal aggregate type slot and returns its
// TypeID. Fields are sealed separately so that forward references through
// indirection edges can be built up.
func (in *Interner) RegisterAdt(name string, kind AdtKind, interiorMut bool) TypeID {
	slot := in.appendAdtInfo(AdtInfo{Name: name, Kind: kind, InteriorMut: interiorMut})
	return in.internRaw(Type{Kind: KindAdt, Payload: slot})
}

// SetAdtVariants stores the resolved variant descriptors for the aggregate.
func (in *Interner) SetAdtVariants(id TypeID, variants []Variant) {
	info := in.adtInfo(id)
	if info == nil {
		return
	}
	info.Variants = cloneVariants(variants)
}

// AdtInfo returns metadata for the provided aggregate TypeID.
func (in *Interner) AdtInfo(id TypeID) (*AdtInfo, bool) {
	info := in.adtInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) adtInfo(id TypeID) *AdtInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindAdt {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.adts) {
		return nil
	}
	return &in.adts[tt.Payload]
}

func (in *Interner) appendAdtInfo(info AdtInfo) uint32 {
	in.adts = append(in.adts, info)
	slot, err := safecast.Conv[uint32](len(in.adts) - 1)
	if err != nil {
		panic(fmt.Errorf("adt info overflow: %w", err))
	}
	return slot
}

func cloneVariants(variants []Variant) []Variant {
	if len(variants) == 0 {
		return nil
	}
	out := make([]Variant, len(variants))
	for i, v := range variants {
		fields := make([]Field, len(v.Fields))
		copy(fields, v.Fields)
		out[i] = Variant{Name: v.Name, Fields: fields}
	}
	return out
}
