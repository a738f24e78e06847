// Package plugin defines the plugin contract and the lifecycle a host drives
// it through.
package plugin

import (
	"github.com/justyntemme/paramorder/pkg/framework/bus"
	"github.com/justyntemme/paramorder/pkg/framework/param"
	"github.com/justyntemme/paramorder/pkg/framework/process"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() Info

	// CreateProcessor creates a new processor with a fresh parameter registry
	CreateProcessor() (Processor, error)
}

// Processor handles the actual audio processing
type Processor interface {
	// Params returns the registry owning every parameter of this instance
	Params() *param.Registry

	// AcceptsBusConfig must be pure; it runs before any processing state exists
	AcceptsBusConfig(cfg bus.Config) bool

	// Process handles one block in place. It must not block, allocate or
	// panic; failures are reported as process.StatusError.
	Process(buffer *process.Buffer, aux *process.AuxBuffers, ctx *process.Context) process.Status

	// TailSamples returns how long output continues after silent input
	TailSamples() int32
}

// Initializer is implemented by processors that prepare state on activation
type Initializer interface {
	Initialize(cfg bus.Config, sampleRate float64, maxBlockSize int32) error
}

// Resetter is implemented by processors that clear state on deactivation
type Resetter interface {
	Reset()
}

// BaseProcessor provides common functionality for processors: it owns the
// registry and accepts any symmetric layout.
type BaseProcessor struct {
	params     *param.Registry
	negotiator bus.Negotiator
}

// NewBaseProcessor creates a processor base around params. A nil negotiator
// accepts any symmetric layout.
func NewBaseProcessor(params *param.Registry, negotiator bus.Negotiator) *BaseProcessor {
	if negotiator == nil {
		negotiator = bus.Symmetric{}
	}
	return &BaseProcessor{
		params:     params,
		negotiator: negotiator,
	}
}

// Params implements Processor
func (b *BaseProcessor) Params() *param.Registry {
	return b.params
}

// AcceptsBusConfig implements Processor
func (b *BaseProcessor) AcceptsBusConfig(cfg bus.Config) bool {
	return b.negotiator.Accepts(cfg)
}

// Process implements Processor and leaves the buffer untouched
func (b *BaseProcessor) Process(*process.Buffer, *process.AuxBuffers, *process.Context) process.Status {
	return process.StatusNormal
}

// TailSamples implements Processor - default no tail
func (b *BaseProcessor) TailSamples() int32 {
	return 0
}
