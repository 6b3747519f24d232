// env.go
package nikl

import "fmt"

type entry struct {
	val     Value
	mutable bool
}

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward. Only function calls and module loads push frames; block
// statements share their enclosing frame.
type Env struct {
	parent *Env
	table  map[string]*entry
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]*entry)}
}

// Define binds name in the current frame. Redeclaring a name that already
// exists in this frame is an error; shadowing an outer binding is fine.
func (e *Env) Define(name string, v Value, mutable bool) error {
	if _, ok := e.table[name]; ok {
		return fmt.Errorf("Variable '%s' is already declared in this scope", name)
	}
	e.table[name] = &entry{val: v, mutable: mutable}
	return nil
}

// Assign updates the nearest existing binding of name. Constants reject the
// write; an unknown name is an error (Assign never implicitly defines).
func (e *Env) Assign(name string, v Value) error {
	if ent, ok := e.table[name]; ok {
		if !ent.mutable {
			return fmt.Errorf("Cannot assign to constant '%s'", name)
		}
		ent.val = v
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, v)
	}
	return fmt.Errorf("Variable '%s' is not defined", name)
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, error) {
	if ent, ok := e.table[name]; ok {
		return ent.val, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, fmt.Errorf("Undefined variable '%s'", name)
}

// Delete removes the nearest visible binding for name.
func (e *Env) Delete(name string) error {
	if _, ok := e.table[name]; ok {
		delete(e.table, name)
		return nil
	}
	if e.parent != nil {
		return e.parent.Delete(name)
	}
	return fmt.Errorf("Undefined variable '%s'", name)
}

// Has reports whether name is bound in this frame or any ancestor.
func (e *Env) Has(name string) bool {
	if _, ok := e.table[name]; ok {
		return true
	}
	if e.parent != nil {
		return e.parent.Has(name)
	}
	return false
}

// Clone deep-copies the whole chain: each frame's table is copied with
// cloneValue so the snapshot is isolated from later writes. Mutability is
// preserved. This is the closure-capture operation.
func (e *Env) Clone() *Env {
	if e == nil {
		return nil
	}
	out := &Env{
		parent: e.parent.Clone(),
		table:  make(map[string]*entry, len(e.table)),
	}
	for k, ent := range e.table {
		out.table[k] = &entry{val: cloneValue(ent.val), mutable: ent.mutable}
	}
	return out
}
