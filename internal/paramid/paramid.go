// Package paramid derives the numeric parameter IDs host ABIs use from
// stable string keys.
package paramid

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/justyntemme/paramorder/pkg/framework/param"
)

// ErrIDCollision means two keys hash to the same numeric ID
var ErrIDCollision = errors.New("parameter ID collision")

// Hash returns the FNV-1a hash of key with the bits outside mask cleared
func Hash(key string, mask uint32) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32() & mask
}

// Table maps numeric IDs back to registry indices
type Table struct {
	ids   []uint32
	index map[uint32]int
}

// NewTable hashes every key in reg. Keys are stable, so the IDs are too.
func NewTable(reg *param.Registry, mask uint32) (*Table, error) {
	t := &Table{
		ids:   make([]uint32, reg.Count()),
		index: make(map[uint32]int, reg.Count()),
	}
	for i, p := range reg.Flattened() {
		id := Hash(p.Key, mask)
		if prev, exists := t.index[id]; exists {
			return nil, fmt.Errorf("%w: %q and %q both map to %d",
				ErrIDCollision, reg.At(prev).Key, p.Key, id)
		}
		t.ids[i] = id
		t.index[id] = i
	}
	return t, nil
}

// ID returns the numeric ID of the parameter at index i
func (t *Table) ID(i int) uint32 {
	return t.ids[i]
}

// Index resolves a numeric ID to a registry index
func (t *Table) Index(id uint32) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}
