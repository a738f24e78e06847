// Package bus provides audio bus configuration and negotiation.
package bus

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrBusConfigRejected means the plugin does not accept a proposed layout
var ErrBusConfigRejected = errors.New("bus configuration rejected")

// Config is a proposed or negotiated channel layout. AuxInputs and AuxOutputs
// hold one channel count per auxiliary bus.
type Config struct {
	Inputs     int32
	Outputs    int32
	AuxInputs  []int32
	AuxOutputs []int32
}

// String renders the layout, e.g. "2in/2out" or "2in/2out+aux[2]/[]"
func (c Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%din/%dout", c.Inputs, c.Outputs)
	if len(c.AuxInputs) > 0 || len(c.AuxOutputs) > 0 {
		fmt.Fprintf(&sb, "+aux%v/%v", c.AuxInputs, c.AuxOutputs)
	}
	return sb.String()
}

// Clone returns a layout that shares no slices with c
func (c Config) Clone() Config {
	c.AuxInputs = slices.Clone(c.AuxInputs)
	c.AuxOutputs = slices.Clone(c.AuxOutputs)
	return c
}

// Equal compares two layouts including auxiliary buses
func (c Config) Equal(o Config) bool {
	if c.Inputs != o.Inputs || c.Outputs != o.Outputs {
		return false
	}
	return equalCounts(c.AuxInputs, o.AuxInputs) && equalCounts(c.AuxOutputs, o.AuxOutputs)
}

func equalCounts(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Negotiator decides which layouts a plugin can run with. Accepts must be
// pure: it is called before any processing state exists.
type Negotiator interface {
	Accepts(cfg Config) bool
}

// NegotiatorFunc adapts a predicate to Negotiator
type NegotiatorFunc func(cfg Config) bool

// Accepts implements Negotiator
func (f NegotiatorFunc) Accepts(cfg Config) bool {
	return f(cfg)
}

// Symmetric accepts any layout with as many outputs as inputs and at least
// one channel. Auxiliary buses are not considered.
type Symmetric struct{}

// Accepts implements Negotiator
func (Symmetric) Accepts(cfg Config) bool {
	return cfg.Inputs == cfg.Outputs && cfg.Inputs > 0
}

// Negotiate returns the first proposal n accepts
func Negotiate(n Negotiator, proposals ...Config) (Config, error) {
	for _, cfg := range proposals {
		if n.Accepts(cfg) {
			return cfg, nil
		}
	}
	return Config{}, fmt.Errorf("%w: none of %d proposals accepted", ErrBusConfigRejected, len(proposals))
}

// Common symmetric layouts, in the order hosts usually try them
var (
	Mono       = Config{Inputs: 1, Outputs: 1}
	Stereo     = Config{Inputs: 2, Outputs: 2}
	Quad       = Config{Inputs: 4, Outputs: 4}
	Surround51 = Config{Inputs: 6, Outputs: 6}
	Surround71 = Config{Inputs: 8, Outputs: 8}
)

// Layouts maps layout names to their configurations
var Layouts = map[string]Config{
	"mono":   Mono,
	"stereo": Stereo,
	"quad":   Quad,
	"5.1":    Surround51,
	"7.1":    Surround71,
}
