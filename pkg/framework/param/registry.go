package param

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateKey means two parameters in one tree share a key
	ErrDuplicateKey = errors.New("duplicate parameter key")
	// ErrNotFound means no parameter carries the requested key
	ErrNotFound = errors.New("parameter not found")
	// ErrInvalidParameter means a descriptor or tree is malformed
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Entry is a flattened parameter annotated with its position and the names
// of the groups enclosing it.
type Entry struct {
	Index int
	Param *Parameter
	Path  []string
}

// Module returns the slash-joined group path, empty at top level
func (e Entry) Module() string {
	return strings.Join(e.Path, "/")
}

// Registry owns a plugin's parameter tree. Its structure is fixed at
// construction, so every read method is safe from any goroutine without
// locking; only parameter values change afterwards.
type Registry struct {
	entries []Entry
	params  []*Parameter
	byKey   map[string]int
}

// NewRegistry validates the tree under root and fixes its flattened order
func NewRegistry(root *Group) (*Registry, error) {
	if root == nil {
		root = NewGroup("")
	}
	if err := checkTree(root, map[*Group]bool{}); err != nil {
		return nil, err
	}

	r := &Registry{byKey: make(map[string]int)}

	var err error
	root.Walk(func(path []string, p *Parameter) {
		if err != nil {
			return
		}
		if verr := p.Validate(); verr != nil {
			err = verr
			return
		}
		if prev, exists := r.byKey[p.Key]; exists {
			err = fmt.Errorf("%w: %q (%q and %q)", ErrDuplicateKey, p.Key, r.params[prev].Name, p.Name)
			return
		}

		r.byKey[p.Key] = len(r.params)
		r.entries = append(r.entries, Entry{
			Index: len(r.params),
			Param: p,
			Path:  append([]string(nil), path...),
		})
		r.params = append(r.params, p)
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// MustRegistry is NewRegistry for plugin constructors, where a malformed
// tree is a programming error
func MustRegistry(root *Group) *Registry {
	r, err := NewRegistry(root)
	if err != nil {
		panic(err)
	}
	return r
}

// checkTree rejects cycles and groups that appear more than once
func checkTree(g *Group, seen map[*Group]bool) error {
	if seen[g] {
		return fmt.Errorf("%w: group %q appears more than once", ErrInvalidParameter, g.Name)
	}
	seen[g] = true
	for _, c := range g.children {
		if sub, ok := c.(*Group); ok {
			if err := checkTree(sub, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flattened returns the parameters in canonical automation order
func (r *Registry) Flattened() []*Parameter {
	out := make([]*Parameter, len(r.params))
	copy(out, r.params)
	return out
}

// Entries returns the flattened parameters with their group paths
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup resolves a stable key to its live parameter
func (r *Registry) Lookup(key string) (*Parameter, error) {
	if p := r.Get(key); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Get returns the parameter for key or nil. It does not allocate.
func (r *Registry) Get(key string) *Parameter {
	i, ok := r.byKey[key]
	if !ok {
		return nil
	}
	return r.params[i]
}

// Index returns the automation index of key
func (r *Registry) Index(key string) (int, bool) {
	i, ok := r.byKey[key]
	return i, ok
}

// At returns the parameter at automation index i or nil
func (r *Registry) At(i int) *Parameter {
	if i < 0 || i >= len(r.params) {
		return nil
	}
	return r.params[i]
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	return len(r.params)
}

// Keys returns every key in canonical order
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.params))
	for i, p := range r.params {
		keys[i] = p.Key
	}
	return keys
}

// Reset restores every parameter to its default
func (r *Registry) Reset() {
	for _, p := range r.params {
		p.Reset()
	}
}
