package plugin

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/justyntemme/paramorder/pkg/framework/bus"
)

// ErrInvalidInfo means the plugin metadata is incomplete
var ErrInvalidInfo = errors.New("invalid plugin info")

// MidiConfig is how much MIDI a plugin consumes or produces
type MidiConfig int

const (
	// MidiNone means no MIDI at all
	MidiNone MidiConfig = iota
	// MidiBasic covers note on/off and polyphonic expression
	MidiBasic
	// MidiFull adds CCs, pitch bend and program changes
	MidiFull
)

// String returns the config name
func (m MidiConfig) String() string {
	switch m {
	case MidiNone:
		return "none"
	case MidiBasic:
		return "basic"
	case MidiFull:
		return "full"
	default:
		return "unknown"
	}
}

// AuxIOConfig describes a set of auxiliary buses
type AuxIOConfig struct {
	NumBuses    int32
	NumChannels int32
	Names       []string
}

// Counts returns one channel count per bus
func (a *AuxIOConfig) Counts() []int32 {
	if a == nil || a.NumBuses <= 0 {
		return nil
	}
	counts := make([]int32, a.NumBuses)
	for i := range counts {
		counts[i] = a.NumChannels
	}
	return counts
}

// Info contains plugin metadata. It is fixed for the lifetime of the plugin.
type Info struct {
	ID          string // Unique plugin identifier, also the CLAP ID (e.g., "com.example.myplugin")
	Name        string // Display name
	Version     string // Semantic version (e.g., "1.0.0")
	Vendor      string // Company/developer name
	URL         string
	Email       string
	Description string
	ManualURL   string
	SupportURL  string

	DefaultInputChannels  int32
	DefaultOutputChannels int32
	AuxInputs             *AuxIOConfig
	AuxOutputs            *AuxIOConfig

	MIDIInput  MidiConfig
	MIDIOutput MidiConfig

	// SampleAccurateAutomation is a capability flag for host adapters; the
	// framework itself applies parameter changes at block boundaries.
	SampleAccurateAutomation bool

	ClapFeatures   []string
	VST3ClassID    [16]byte
	VST3Categories string // e.g. "Fx|Tools"
}

// Validate checks that the required metadata is present
func (i Info) Validate() error {
	switch {
	case i.ID == "":
		return fmt.Errorf("%w: empty plugin ID", ErrInvalidInfo)
	case i.Name == "":
		return fmt.Errorf("%w: empty name for %s", ErrInvalidInfo, i.ID)
	case i.Vendor == "":
		return fmt.Errorf("%w: empty vendor for %s", ErrInvalidInfo, i.ID)
	case i.Version == "":
		return fmt.Errorf("%w: empty version for %s", ErrInvalidInfo, i.ID)
	case i.DefaultInputChannels < 0 || i.DefaultOutputChannels <= 0:
		return fmt.Errorf("%w: default layout %din/%dout for %s", ErrInvalidInfo,
			i.DefaultInputChannels, i.DefaultOutputChannels, i.ID)
	}
	return nil
}

// UID returns the 16-byte class ID used by VST3 hosts. An explicit
// VST3ClassID wins; otherwise a name-based UUID is derived from the ID so
// the value never changes between builds.
func (i Info) UID() [16]byte {
	if i.VST3ClassID != ([16]byte{}) {
		return i.VST3ClassID
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("vst3:"+i.ID))
}

// DefaultBusConfig returns the layout the plugin proposes by default
func (i Info) DefaultBusConfig() bus.Config {
	return bus.Config{
		Inputs:     i.DefaultInputChannels,
		Outputs:    i.DefaultOutputChannels,
		AuxInputs:  i.AuxInputs.Counts(),
		AuxOutputs: i.AuxOutputs.Counts(),
	}
}

// AuxNames returns the auxiliary bus names, inputs first
func (i Info) AuxNames() []string {
	var names []string
	if i.AuxInputs != nil {
		names = append(names, padNames(i.AuxInputs)...)
	}
	if i.AuxOutputs != nil {
		names = append(names, padNames(i.AuxOutputs)...)
	}
	return names
}

func padNames(a *AuxIOConfig) []string {
	if a.NumBuses <= 0 {
		return nil
	}
	names := make([]string, a.NumBuses)
	copy(names, a.Names)
	return names
}
