package defs

import (
	"fmt"

	"fortio.org/safecast"
)

// Table stores definitions in a compact slice-based arena.
// Index 0 is reserved for NoDefID.
type Table struct {
	data   []Def
	byName map[string]DefID
}

// NewTable creates an arena with optional capacity hint.
func NewTable(capacity uint32) *Table {
	if capacity == 0 {
		capacity = 32
	}
	return &Table{
		data:   make([]Def, 1, capacity+1),
		byName: make(map[string]DefID, capacity),
	}
}

// New allocates a definition and returns its ID. The ID field of the
// argument is ignored and assigned by the arena.
func (t *Table) New(d Def) DefID {
	value, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("defs arena overflow: %w", err))
	}
	id := DefID(value)
	d.ID = id
	t.data = append(t.data, d)
	if _, exists := t.byName[d.Name]; !exists {
		t.byName[d.Name] = id
	}
	return id
}

// Get returns the definition pointer or nil if the ID is invalid.
func (t *Table) Get(id DefID) *Def {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}

// LookupName returns the first definition declared under the given name.
func (t *Table) LookupName(name string) (DefID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Len reports the number of definitions excluding the sentinel.
func (t *Table) Len() int { return len(t.data) - 1 }

// All returns the definitions in declaration order, excluding the sentinel.
func (t *Table) All() []Def {
	if len(t.data) <= 1 {
		return nil
	}
	return t.data[1:]
}
