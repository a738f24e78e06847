package bus

import "fmt"

// MediaType represents the type of bus
type MediaType int32

const (
	// MediaTypeAudio represents audio bus type
	MediaTypeAudio MediaType = 0
	// MediaTypeEvent represents event/MIDI bus type
	MediaTypeEvent MediaType = 1
)

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// Info describes one bus as reported to a host
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration is the list of buses a plugin exposes for a layout
type Configuration struct {
	audioBuses []Info
	eventBuses []Info
}

// FromConfig describes the buses of a negotiated layout. auxNames optionally
// names the auxiliary buses, inputs first.
func FromConfig(cfg Config, auxNames ...string) *Configuration {
	c := &Configuration{}
	name := func(i int, fallback string) string {
		if i < len(auxNames) && auxNames[i] != "" {
			return auxNames[i]
		}
		return fallback
	}

	if cfg.Inputs > 0 {
		c.audioBuses = append(c.audioBuses, Info{
			MediaType:    MediaTypeAudio,
			Direction:    DirectionInput,
			ChannelCount: cfg.Inputs,
			Name:         LayoutName(cfg.Inputs) + " In",
			BusType:      TypeMain,
			IsActive:     true,
		})
	}
	if cfg.Outputs > 0 {
		c.audioBuses = append(c.audioBuses, Info{
			MediaType:    MediaTypeAudio,
			Direction:    DirectionOutput,
			ChannelCount: cfg.Outputs,
			Name:         LayoutName(cfg.Outputs) + " Out",
			BusType:      TypeMain,
			IsActive:     true,
		})
	}

	for i, ch := range cfg.AuxInputs {
		c.audioBuses = append(c.audioBuses, Info{
			MediaType:    MediaTypeAudio,
			Direction:    DirectionInput,
			ChannelCount: ch,
			Name:         name(i, fmt.Sprintf("Aux In %d", i+1)),
			BusType:      TypeAux,
			IsActive:     false,
		})
	}
	for i, ch := range cfg.AuxOutputs {
		c.audioBuses = append(c.audioBuses, Info{
			MediaType:    MediaTypeAudio,
			Direction:    DirectionOutput,
			ChannelCount: ch,
			Name:         name(len(cfg.AuxInputs)+i, fmt.Sprintf("Aux Out %d", i+1)),
			BusType:      TypeAux,
			IsActive:     false,
		})
	}

	return c
}

// LayoutName returns the conventional name for a channel count
func LayoutName(channels int32) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	case 4:
		return "Quad"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

// Count returns how many buses of a media type face one direction
func (c *Configuration) Count(mediaType MediaType, direction Direction) int32 {
	var n int32
	for _, b := range c.buses(mediaType) {
		if b.Direction == direction {
			n++
		}
	}
	return n
}

// Bus returns the index-th bus of a media type facing direction. Buses
// are numbered per direction, main bus first.
func (c *Configuration) Bus(mediaType MediaType, direction Direction, index int32) (Info, bool) {
	if index < 0 {
		return Info{}, false
	}
	for _, b := range c.buses(mediaType) {
		if b.Direction != direction {
			continue
		}
		if index == 0 {
			return b, true
		}
		index--
	}
	return Info{}, false
}

// AddEventBus appends an always-active single-port event bus
func (c *Configuration) AddEventBus(direction Direction, name string) *Configuration {
	c.eventBuses = append(c.eventBuses, Info{
		MediaType:    MediaTypeEvent,
		Direction:    direction,
		ChannelCount: 1,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
	return c
}

// Buses returns a copy of every bus of a media type
func (c *Configuration) Buses(mediaType MediaType) []Info {
	buses := c.buses(mediaType)
	out := make([]Info, len(buses))
	copy(out, buses)
	return out
}

func (c *Configuration) buses(mediaType MediaType) []Info {
	if mediaType == MediaTypeEvent {
		return c.eventBuses
	}
	return c.audioBuses
}
