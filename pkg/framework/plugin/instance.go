package plugin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/justyntemme/paramorder/pkg/framework/bus"
	"github.com/justyntemme/paramorder/pkg/framework/debug"
	"github.com/justyntemme/paramorder/pkg/framework/param"
	"github.com/justyntemme/paramorder/pkg/framework/process"
)

var (
	// ErrIllegalTransition means the host called a lifecycle method in the
	// wrong state
	ErrIllegalTransition = errors.New("illegal lifecycle transition")
	// ErrInvalidSetup means activation was requested with unusable
	// processing parameters
	ErrInvalidSetup = errors.New("invalid processing setup")
)

// State is the lifecycle position of an Instance
type State int32

const (
	// StateUninitialized is the state after construction
	StateUninitialized State = iota
	// StateConfigured means a bus layout was accepted
	StateConfigured
	// StateProcessing means the host may call Process
	StateProcessing
	// StateDeactivated is terminal; the parameter state is gone
	StateDeactivated
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConfigured:
		return "configured"
	case StateProcessing:
		return "processing"
	case StateDeactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}

// session is what the audio thread needs while processing
type session struct {
	processor Processor
	config    bus.Config
	ctx       *process.Context
}

// Instance drives one plugin through Uninitialized → Configured →
// Processing → Deactivated. Lifecycle methods are for the host thread and
// are serialized; Process is for the audio thread and never locks.
type Instance struct {
	info Info
	log  *zap.Logger

	mu        sync.Mutex
	processor Processor
	params    *param.Registry
	config    bus.Config

	state   atomic.Int32
	active  atomic.Pointer[session]
	metrics *debug.Metrics
}

// Option configures an Instance
type Option func(*Instance)

// WithMetrics records cycle statuses and lifecycle state in m
func WithMetrics(m *debug.Metrics) Option {
	return func(i *Instance) {
		i.metrics = m
	}
}

// WithLogger overrides the framework logger for this instance
func WithLogger(l *zap.Logger) Option {
	return func(i *Instance) {
		if l != nil {
			i.log = l
		}
	}
}

// NewInstance constructs the plugin's processor and parameter registry.
// Invalid metadata or a malformed parameter tree aborts construction.
func NewInstance(p Plugin, opts ...Option) (*Instance, error) {
	info := p.GetInfo()
	if err := info.Validate(); err != nil {
		return nil, err
	}

	processor, err := p.CreateProcessor()
	if err != nil {
		return nil, fmt.Errorf("failed to create processor for %s: %w", info.ID, err)
	}
	if processor == nil || processor.Params() == nil {
		return nil, fmt.Errorf("%w: %s has no parameter registry", ErrInvalidInfo, info.ID)
	}

	i := &Instance{
		info:      info,
		processor: processor,
		params:    processor.Params(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.log == nil {
		i.log = debug.Named("plugin")
	}
	i.log = i.log.With(zap.String("plugin", info.ID))

	i.setState(StateUninitialized)
	i.log.Debug("instance created", zap.Int("params", i.params.Count()))
	return i, nil
}

// Info returns the plugin metadata
func (i *Instance) Info() Info {
	return i.info
}

// State returns the current lifecycle state
func (i *Instance) State() State {
	return State(i.state.Load())
}

// Params returns the parameter registry, nil once deactivated
func (i *Instance) Params() *param.Registry {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.params
}

// BusConfig returns the accepted layout and whether one was accepted
func (i *Instance) BusConfig() (bus.Config, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	s := i.State()
	return i.config.Clone(), s == StateConfigured || s == StateProcessing
}

// Buses describes the buses of the accepted layout, or of the default
// layout before negotiation. Plugins that take or emit MIDI also get an
// event bus per direction.
func (i *Instance) Buses() *bus.Configuration {
	cfg, ok := i.BusConfig()
	if !ok {
		cfg = i.info.DefaultBusConfig()
	}
	c := bus.FromConfig(cfg, i.info.AuxNames()...)
	if i.info.MIDIInput != MidiNone {
		c.AddEventBus(bus.DirectionInput, "Event In")
	}
	if i.info.MIDIOutput != MidiNone {
		c.AddEventBus(bus.DirectionOutput, "Event Out")
	}
	return c
}

// AcceptsBusConfig asks the processor without changing state
func (i *Instance) AcceptsBusConfig(cfg bus.Config) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.processor == nil {
		return false
	}
	return i.processor.AcceptsBusConfig(cfg)
}

// Configure proposes a layout. A rejected layout leaves the state
// unchanged; the host may try another one. Renegotiation is allowed until
// the instance is activated.
func (i *Instance) Configure(cfg bus.Config) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	switch s := i.State(); s {
	case StateUninitialized, StateConfigured:
	default:
		return fmt.Errorf("%w: configure while %s", ErrIllegalTransition, s)
	}

	if !i.processor.AcceptsBusConfig(cfg) {
		i.metrics.ObserveRejected()
		i.log.Debug("bus configuration rejected", zap.Stringer("layout", cfg))
		return fmt.Errorf("%w: %s", bus.ErrBusConfigRejected, cfg)
	}

	i.config = cfg.Clone()
	i.setState(StateConfigured)
	i.log.Info("bus configuration accepted", zap.Stringer("layout", cfg))
	return nil
}

// Activate moves a configured instance into processing
func (i *Instance) Activate(sampleRate float64, maxBlockSize int32) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if s := i.State(); s != StateConfigured {
		return fmt.Errorf("%w: activate while %s", ErrIllegalTransition, s)
	}
	if sampleRate <= 0 || maxBlockSize <= 0 {
		return fmt.Errorf("%w: sample rate %g, max block size %d", ErrInvalidSetup, sampleRate, maxBlockSize)
	}

	if init, ok := i.processor.(Initializer); ok {
		if err := init.Initialize(i.config, sampleRate, maxBlockSize); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", i.info.ID, err)
		}
	}

	i.active.Store(&session{
		processor: i.processor,
		config:    i.config,
		ctx:       process.NewContext(sampleRate, maxBlockSize, i.params),
	})
	i.setState(StateProcessing)
	i.log.Info("activated",
		zap.Stringer("layout", i.config),
		zap.Float64("sample_rate", sampleRate),
		zap.Int32("max_block_size", maxBlockSize))
	return nil
}

// Process runs one cycle. A nil ctx uses the instance's own context, whose
// transport advances by the block length. Calling it outside the processing
// state, with a buffer that does not match the layout, or with a processor
// that panics yields process.StatusError.
func (i *Instance) Process(buf *process.Buffer, aux *process.AuxBuffers, ctx *process.Context) (status process.Status) {
	s := i.active.Load()
	if s == nil || i.State() != StateProcessing {
		i.metrics.ObserveCycle(process.StatusError)
		return process.StatusError
	}
	if buf.NumChannels() != int(s.config.Outputs) || buf.NumSamples() > int(s.ctx.BlockSize) {
		i.metrics.ObserveCycle(process.StatusError)
		return process.StatusError
	}

	own := ctx == nil
	if own {
		ctx = s.ctx
	}

	defer func() {
		if recover() != nil {
			status = process.StatusError
		}
		i.metrics.ObserveCycle(status)
	}()

	status = s.processor.Process(buf, aux, ctx)
	if own {
		ctx.Advance(buf.NumSamples())
	}
	return status
}

// Context returns the instance's own per-cycle context, nil unless
// processing. Hosts update its Transport before each cycle.
func (i *Instance) Context() *process.Context {
	if s := i.active.Load(); s != nil {
		return s.ctx
	}
	return nil
}

// Deactivate tears the instance down. Parameter state is discarded and the
// instance cannot be used again.
func (i *Instance) Deactivate() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	prev := i.State()
	if prev == StateDeactivated {
		return fmt.Errorf("%w: already deactivated", ErrIllegalTransition)
	}

	i.setState(StateDeactivated)
	i.active.Store(nil)
	if r, ok := i.processor.(Resetter); ok && prev == StateProcessing {
		r.Reset()
	}
	i.processor = nil
	i.params = nil
	i.log.Info("deactivated", zap.Stringer("from", prev))
	return nil
}

// SetParam sets a parameter's plain value by stable key
func (i *Instance) SetParam(key string, value float64) error {
	p, err := i.lookup(key)
	if err != nil {
		return err
	}
	p.SetValue(value)
	return nil
}

// Param reads a parameter's plain value by stable key
func (i *Instance) Param(key string) (float64, error) {
	p, err := i.lookup(key)
	if err != nil {
		return 0, err
	}
	return p.Value(), nil
}

func (i *Instance) lookup(key string) (*param.Parameter, error) {
	params := i.Params()
	if params == nil {
		return nil, fmt.Errorf("%w: parameter access after deactivation", ErrIllegalTransition)
	}
	return params.Lookup(key)
}

func (i *Instance) setState(s State) {
	i.state.Store(int32(s))
	i.metrics.SetState(int(s))
}
