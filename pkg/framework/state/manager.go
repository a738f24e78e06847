// Package state saves and restores parameter values keyed by their stable
// keys, so saved state survives reordering and regrouping of the tree.
package state

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/justyntemme/paramorder/pkg/framework/debug"
	"github.com/justyntemme/paramorder/pkg/framework/param"
)

// Version is the envelope version written by Save
const Version = 1

// ErrUnsupportedVersion means the state was written by a newer plugin
var ErrUnsupportedVersion = errors.New("unsupported state version")

// Document is the persisted form of a plugin's parameter state
type Document struct {
	Version int                `cbor:"1,keyasint" yaml:"version"`
	Plugin  string             `cbor:"2,keyasint" yaml:"plugin"`
	Params  map[string]float64 `cbor:"3,keyasint" yaml:"params"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Manager handles plugin state saving and loading
type Manager struct {
	pluginID string
	registry *param.Registry
	log      *zap.Logger
}

// NewManager creates a state manager for one plugin's registry
func NewManager(pluginID string, registry *param.Registry) *Manager {
	return &Manager{
		pluginID: pluginID,
		registry: registry,
		log:      debug.Named("state").With(zap.String("plugin", pluginID)),
	}
}

// Snapshot returns every parameter's plain value by key
func (m *Manager) Snapshot() Document {
	doc := Document{
		Version: Version,
		Plugin:  m.pluginID,
		Params:  make(map[string]float64, m.registry.Count()),
	}
	for _, p := range m.registry.Flattened() {
		doc.Params[p.Key] = p.Value()
	}
	return doc
}

// Apply restores values from doc. Unknown keys are skipped and parameters
// missing from doc keep their current value. It returns the skipped keys in
// sorted order.
func (m *Manager) Apply(doc Document) ([]string, error) {
	if doc.Version > Version {
		return nil, fmt.Errorf("%w: %d is newer than %d", ErrUnsupportedVersion, doc.Version, Version)
	}
	if doc.Plugin != "" && doc.Plugin != m.pluginID {
		m.log.Warn("state was saved by a different plugin", zap.String("saved_by", doc.Plugin))
	}

	var skipped []string
	for key, value := range doc.Params {
		p := m.registry.Get(key)
		if p == nil {
			skipped = append(skipped, key)
			continue
		}
		p.SetValue(value)
	}
	sort.Strings(skipped)

	if len(skipped) > 0 {
		m.log.Info("skipped unknown parameters", zap.Strings("keys", skipped))
	}
	return skipped, nil
}

// Save writes the state as CBOR
func (m *Manager) Save(w io.Writer) error {
	if err := encMode.NewEncoder(w).Encode(m.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return nil
}

// Load reads CBOR state written by Save
func (m *Manager) Load(r io.Reader) error {
	var doc Document
	if err := decMode.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode state: %w", err)
	}
	_, err := m.Apply(doc)
	return err
}

// SaveYAML writes the state as a human-readable preset
func (m *Manager) SaveYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	return enc.Close()
}

// LoadYAML reads a preset written by SaveYAML
func (m *Manager) LoadYAML(r io.Reader) error {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode preset: %w", err)
	}
	_, err := m.Apply(doc)
	return err
}
