/*****************************************************************************************************************/

//	@package	vobscore
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

// Package registry implements the process-wide PropertyMeta table (C1):
// a fixed, append-only table of typed property definitions, each indexed
// by a small integer meta_id. The registry is populated once at process
// start (via Register/MustRegister) and is read-only thereafter; lookups
// by integer index (By) and by string id (ByName) both take a read lock.
// The per-star hot path does not consult the registry: a Star indexes its
// property slots by ID directly.
package registry

/*****************************************************************************************************************/

import (
	"fmt"
	"sync"
)

/*****************************************************************************************************************/

// Type enumerates the scalar kinds a Property's value may hold.
type Type int

/*****************************************************************************************************************/

const (
	TypeString Type = iota
	TypeInt
	TypeLong
	TypeDouble
	TypeBool
)

/*****************************************************************************************************************/

func (t Type) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeInt:
		return "INT"
	case TypeLong:
		return "LONG"
	case TypeDouble:
		return "DOUBLE"
	case TypeBool:
		return "BOOL"
	default:
		return "UNKNOWN"
	}
}

/*****************************************************************************************************************/

// ID is the integer index of a property within the registry, used on the
// hot path (Star.Get/Set). It is stable for the lifetime of the process
// once assigned.
type ID int

/*****************************************************************************************************************/

// Meta is an immutable property definition.
type Meta struct {
	ID          ID
	Name        string // unique string identifier, e.g. "ra", "mag_v"
	Unit        string
	Type        Type
	Description string

	// ErrorID optionally links this property to its paired measurement-error
	// property (e.g. the "mag_v" property may link to "mag_v_err").
	ErrorID ID

	// HasErrorID reports whether ErrorID is meaningful; ID 0 is a valid
	// index, so a bool flag (not a sentinel value) disambiguates "no error
	// property" from "error property is meta_id 0".
	HasErrorID bool
}

/*****************************************************************************************************************/

// Registry is a process-wide, append-only table of Meta definitions.
type Registry struct {
	mu     sync.RWMutex
	byID   []Meta
	byName map[string]ID
	sealed bool
}

/*****************************************************************************************************************/

// New returns an empty Registry ready for Register calls.
func New() *Registry {
	return &Registry{
		byName: make(map[string]ID),
	}
}

/*****************************************************************************************************************/

// Register adds a new property definition and returns its assigned ID.
// Register must not be called after Seal; doing so returns an error rather
// than silently mutating a registry other goroutines may already be reading
// lock-free.
func (r *Registry) Register(name, unit string, typ Type, description string) (ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return 0, fmt.Errorf("registry: cannot register %q after Seal", name)
	}

	if _, exists := r.byName[name]; exists {
		return 0, fmt.Errorf("registry: property %q already registered", name)
	}

	id := ID(len(r.byID))

	r.byID = append(r.byID, Meta{
		ID:          id,
		Name:        name,
		Unit:        unit,
		Type:        typ,
		Description: description,
	})

	r.byName[name] = id

	return id, nil
}

/*****************************************************************************************************************/

// MustRegister is Register, panicking on error. Intended for package-level
// init() blocks building the well-known property table, where a duplicate
// or post-seal registration is a programmer error, not a runtime condition.
func (r *Registry) MustRegister(name, unit string, typ Type, description string) ID {
	id, err := r.Register(name, unit, typ, description)
	if err != nil {
		panic(err)
	}

	return id
}

/*****************************************************************************************************************/

// LinkError associates id's paired error property with errID.
func (r *Registry) LinkError(id, errID ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if int(id) < 0 || int(id) >= len(r.byID) {
		return fmt.Errorf("registry: no such meta_id %d", id)
	}

	m := r.byID[id]
	m.ErrorID = errID
	m.HasErrorID = true
	r.byID[id] = m

	return nil
}

/*****************************************************************************************************************/

// Seal marks the registry read-only: every later Register call fails.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sealed = true
}

/*****************************************************************************************************************/

// Len returns the number of registered properties; Star uses this to size
// its fixed-length property array.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

/*****************************************************************************************************************/

// By returns the Meta registered at id, and false if id is out of range.
// It takes a read lock, so it may run concurrently with Register.
func (r *Registry) By(id ID) (Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(id) < 0 || int(id) >= len(r.byID) {
		return Meta{}, false
	}

	return r.byID[id], true
}

/*****************************************************************************************************************/

// ByName resolves a property by its string id; used on the config-loading
// path (e.g. mapping a local-catalog file header's column names to meta_ids),
// never on the per-star hot path.
func (r *Registry) ByName(name string) (Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return Meta{}, false
	}

	return r.byID[id], true
}

/*****************************************************************************************************************/

// All returns a copy of every registered Meta, ordered by ID.
func (r *Registry) All() []Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Meta, len(r.byID))
	copy(out, r.byID)

	return out
}
