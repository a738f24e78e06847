// Package process provides the per-cycle processing contract: audio buffers,
// the host context and the cycle status.
package process

import (
	"github.com/justyntemme/paramorder/pkg/framework/param"
)

// Transport is the host's playback state for the current block
type Transport struct {
	Playing         bool
	Recording       bool
	Tempo           float64
	TimeSigNum      int32
	TimeSigDenom    int32
	PositionSamples int64
}

// Context is handed to the processor every cycle. It is reused between
// cycles and every accessor is allocation free.
type Context struct {
	Transport  Transport
	SampleRate float64
	BlockSize  int32

	params *param.Registry
}

// NewContext creates a context reading parameters from params
func NewContext(sampleRate float64, blockSize int32, params *param.Registry) *Context {
	return &Context{
		SampleRate: sampleRate,
		BlockSize:  blockSize,
		params:     params,
	}
}

// Param returns the current plain value of a parameter, 0 if the key is
// unknown
func (c *Context) Param(key string) float64 {
	if p := c.Parameter(key); p != nil {
		return p.Value()
	}
	return 0
}

// Normalized returns the current 0..1 value of a parameter
func (c *Context) Normalized(key string) float64 {
	if p := c.Parameter(key); p != nil {
		return p.Normalized()
	}
	return 0
}

// Parameter returns the live parameter for key or nil
func (c *Context) Parameter(key string) *param.Parameter {
	if c.params == nil {
		return nil
	}
	return c.params.Get(key)
}

// Params returns the registry backing the context
func (c *Context) Params() *param.Registry {
	return c.params
}

// Advance moves the transport forward by n samples when playing
func (c *Context) Advance(n int) {
	if c.Transport.Playing {
		c.Transport.PositionSamples += int64(n)
	}
}
