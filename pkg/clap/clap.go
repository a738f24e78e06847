// Package clap exposes a plugin's parameters, descriptor and audio ports in
// the shape of the CLAP ABI. Parameter IDs are the same stable hashes the
// VST3 view uses, so a key keeps one numeric ID across both formats.
package clap

import (
	"github.com/justyntemme/paramorder/internal/paramid"
	"github.com/justyntemme/paramorder/pkg/framework/bus"
	"github.com/justyntemme/paramorder/pkg/framework/param"
	"github.com/justyntemme/paramorder/pkg/framework/plugin"
)

// Version is the CLAP ABI version the descriptor targets
var Version = [3]uint32{1, 2, 2}

// InvalidID is CLAP_INVALID_ID
const InvalidID uint32 = 0xFFFFFFFF

// Parameter info flags
const (
	ParamIsStepped     uint32 = 1 << 0
	ParamIsPeriodic    uint32 = 1 << 1
	ParamIsHidden      uint32 = 1 << 2
	ParamIsReadonly    uint32 = 1 << 3
	ParamIsBypass      uint32 = 1 << 4
	ParamIsAutomatable uint32 = 1 << 5
	ParamIsEnum        uint32 = 1 << 16
)

// Audio port flags and types
const (
	AudioPortIsMain uint32 = 1 << 0

	PortMono   = "mono"
	PortStereo = "stereo"
)

// ErrIDCollision means two parameter keys hash to the same clap_id
var ErrIDCollision = paramid.ErrIDCollision

// ParamID derives the clap_id of a stable key
func ParamID(key string) uint32 {
	return paramid.Hash(key, 0x7FFFFFFF)
}

// ParamInfo mirrors clap_param_info_t. Values are plain, not normalized.
type ParamInfo struct {
	ID           uint32
	Flags        uint32
	Name         string
	Module       string
	MinValue     float64
	MaxValue     float64
	DefaultValue float64
}

// PluginDescriptor mirrors clap_plugin_descriptor_t
type PluginDescriptor struct {
	ClapVersion [3]uint32
	ID          string
	Name        string
	Vendor      string
	URL         string
	ManualURL   string
	SupportURL  string
	Version     string
	Description string
	Features    []string
}

// Descriptor builds the factory descriptor from plugin metadata
func Descriptor(info plugin.Info) PluginDescriptor {
	features := info.ClapFeatures
	if len(features) == 0 {
		features = []string{"audio-effect"}
	}
	return PluginDescriptor{
		ClapVersion: Version,
		ID:          info.ID,
		Name:        info.Name,
		Vendor:      info.Vendor,
		URL:         info.URL,
		ManualURL:   info.ManualURL,
		SupportURL:  info.SupportURL,
		Version:     info.Version,
		Description: info.Description,
		Features:    append([]string(nil), features...),
	}
}

// AudioPortInfo mirrors clap_audio_port_info_t
type AudioPortInfo struct {
	ID           uint32
	Name         string
	Flags        uint32
	ChannelCount uint32
	PortType     string
	InPlacePair  uint32
}

// AudioPorts lists the ports of a layout, main port first. Main ports of
// equal width are paired for in-place processing.
func AudioPorts(cfg bus.Config, isInput bool, auxNames []string) []AudioPortInfo {
	main, aux := cfg.Outputs, cfg.AuxOutputs
	mainName := "Output"
	if isInput {
		main, aux = cfg.Inputs, cfg.AuxInputs
		mainName = "Input"
	}

	var ports []AudioPortInfo
	if main > 0 {
		pair := InvalidID
		if cfg.Inputs > 0 && cfg.Inputs == cfg.Outputs {
			pair = 0
		}
		ports = append(ports, AudioPortInfo{
			ID:           0,
			Name:         mainName,
			Flags:        AudioPortIsMain,
			ChannelCount: uint32(main),
			PortType:     portType(main),
			InPlacePair:  pair,
		})
	}
	for i, ch := range aux {
		name := "Aux"
		if i < len(auxNames) && auxNames[i] != "" {
			name = auxNames[i]
		}
		ports = append(ports, AudioPortInfo{
			ID:           uint32(i + 1),
			Name:         name,
			ChannelCount: uint32(ch),
			PortType:     portType(ch),
			InPlacePair:  InvalidID,
		})
	}
	return ports
}

func portType(channels int32) string {
	switch channels {
	case 1:
		return PortMono
	case 2:
		return PortStereo
	default:
		return ""
	}
}

func flags(p *param.Parameter) uint32 {
	var f uint32
	if p.Range.Steps > 0 {
		f |= ParamIsStepped
	}
	if p.Flags&param.CanAutomate != 0 {
		f |= ParamIsAutomatable
	}
	if p.Flags&param.IsReadOnly != 0 {
		f |= ParamIsReadonly
	}
	if p.Flags&param.IsHidden != 0 {
		f |= ParamIsHidden
	}
	if p.Flags&param.IsBypass != 0 {
		f |= ParamIsBypass
	}
	return f
}
