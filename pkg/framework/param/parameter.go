// Package param provides the parameter tree, its canonical flattened order
// and lookup by stable key.
package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Kind tags the value domain of a parameter
type Kind int

const (
	// KindFloat is a continuous parameter
	KindFloat Kind = iota
	// KindInt is a stepped integer parameter
	KindInt
	// KindBool is a two-state toggle
	KindBool
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsHidden    uint32 = 1 << 4
	IsBypass    uint32 = 1 << 16
)

// Range is a linear mapping between a plain value range and 0..1.
// Steps > 0 makes the range discrete with Steps+1 positions.
type Range struct {
	Min   float64
	Max   float64
	Steps int32
}

// Linear returns a continuous linear range
func Linear(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// Stepped returns a discrete linear range covering every integer in [min, max]
func Stepped(min, max int) Range {
	return Range{Min: float64(min), Max: float64(max), Steps: int32(max - min)}
}

// Validate checks that the range is usable
func (r Range) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Max <= r.Min {
		return fmt.Errorf("%w: range [%g, %g] is empty", ErrInvalidParameter, r.Min, r.Max)
	}
	if math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%w: range [%g, %g] is unbounded", ErrInvalidParameter, r.Min, r.Max)
	}
	if r.Steps < 0 {
		return fmt.Errorf("%w: negative step count %d", ErrInvalidParameter, r.Steps)
	}
	return nil
}

// Contains reports whether v lies inside the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to the range and snaps it to the nearest step
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		v = r.Min
	} else if v > r.Max {
		v = r.Max
	}
	if r.Steps > 0 {
		step := (r.Max - r.Min) / float64(r.Steps)
		v = r.Min + math.Round((v-r.Min)/step)*step
	}
	return v
}

// Normalize converts a plain value to 0..1
func (r Range) Normalize(plain float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	return (r.Clamp(plain) - r.Min) / (r.Max - r.Min)
}

// Denormalize converts a 0..1 value to the plain range
func (r Range) Denormalize(normalized float64) float64 {
	if normalized < 0 {
		normalized = 0
	} else if normalized > 1 {
		normalized = 1
	}
	return r.Clamp(r.Min + normalized*(r.Max-r.Min))
}

// Parameter represents one automatable plugin value. Key identifies it for
// automation and persistence; Name is only for display. Descriptive fields
// must not change once the parameter is part of a Registry.
type Parameter struct {
	Key       string
	Name      string
	ShortName string
	Unit      string
	Kind      Kind
	Range     Range
	Default   float64
	Flags     uint32

	// plain value as float64 bits, lock-free for the audio thread
	value atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// NewParameter creates a continuous parameter set to its default
func NewParameter(key, name string, def float64, r Range) (*Parameter, error) {
	p := &Parameter{
		Key:       key,
		Name:      name,
		ShortName: name,
		Kind:      KindFloat,
		Range:     r,
		Default:   def,
		Flags:     CanAutomate,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.value.Store(math.Float64bits(def))
	return p, nil
}

// Validate checks the descriptor fields
func (p *Parameter) Validate() error {
	if p.Key == "" {
		return fmt.Errorf("%w: empty key (name %q)", ErrInvalidParameter, p.Name)
	}
	if err := p.Range.Validate(); err != nil {
		return fmt.Errorf("parameter %q: %w", p.Key, err)
	}
	if !p.Range.Contains(p.Default) {
		return fmt.Errorf("%w: parameter %q default %g outside [%g, %g]",
			ErrInvalidParameter, p.Key, p.Default, p.Range.Min, p.Range.Max)
	}
	return nil
}

// Value returns the current plain value
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue stores a plain value, clamped to the range. NaN resets to the
// default.
func (p *Parameter) SetValue(v float64) {
	if math.IsNaN(v) {
		v = p.Default
	}
	p.value.Store(math.Float64bits(p.Range.Clamp(v)))
}

// Normalized returns the current value mapped to 0..1
func (p *Parameter) Normalized() float64 {
	return p.Range.Normalize(p.Value())
}

// SetNormalized sets the value from a 0..1 host value
func (p *Parameter) SetNormalized(n float64) {
	if math.IsNaN(n) {
		p.SetValue(p.Default)
		return
	}
	p.SetValue(p.Range.Denormalize(n))
}

// DefaultNormalized returns the default mapped to 0..1
func (p *Parameter) DefaultNormalized() float64 {
	return p.Range.Normalize(p.Default)
}

// Reset restores the default value
func (p *Parameter) Reset() {
	p.value.Store(math.Float64bits(p.Default))
}

// Bool returns the value of a toggle parameter
func (p *Parameter) Bool() bool {
	return p.Value() >= p.Range.Min+(p.Range.Max-p.Range.Min)/2
}

// Int returns the value rounded to the nearest integer
func (p *Parameter) Int() int {
	return int(math.Round(p.Value()))
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// FormatValue returns the display string for a plain value
func (p *Parameter) FormatValue(plain float64) string {
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}

	switch {
	case p.Kind == KindBool:
		return formatBool(plain)
	case p.Range.Steps > 0:
		return strconv.FormatFloat(plain, 'f', 0, 64)
	default:
		return strconv.FormatFloat(plain, 'f', 2, 64)
	}
}

// ParseValue parses a display string into a clamped plain value
func (p *Parameter) ParseValue(str string) (float64, error) {
	parse := p.parseFunc
	if parse == nil {
		parse = func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
		if p.Kind == KindBool {
			parse = parseBool
		}
	}

	plain, err := parse(str)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", p.Key, err)
	}
	return p.Range.Clamp(plain), nil
}

// String implements fmt.Stringer
func (p *Parameter) String() string {
	return fmt.Sprintf("%s(%s=%s)", p.Key, p.Name, p.FormatValue(p.Value()))
}

func (*Parameter) node() {}
