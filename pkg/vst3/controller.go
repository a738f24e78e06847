package vst3

import (
	"strings"

	"github.com/justyntemme/paramorder/internal/paramid"
	"github.com/justyntemme/paramorder/pkg/framework/param"
	"github.com/justyntemme/paramorder/pkg/framework/plugin"
)

// SDKVersion is reported in class info
const SDKVersion = "VST 3.7.9"

// Controller answers IEditController parameter queries against a registry.
// It is built once; the ID table and unit layout never change afterwards.
type Controller struct {
	reg   *param.Registry
	ids   *paramid.Table
	infos []ParameterInfo
	units []UnitInfo
}

// NewController hashes every key and lays out units from the group tree
func NewController(reg *param.Registry) (*Controller, error) {
	ids, err := paramid.NewTable(reg, idMask)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		reg:   reg,
		ids:   ids,
		units: []UnitInfo{{ID: RootUnitID, ParentID: NoParentUnit, Name: "Root"}},
	}

	unitByPath := map[string]int32{"": RootUnitID}
	for _, e := range reg.Entries() {
		unit := c.unitFor(e.Path, unitByPath)
		p := e.Param
		c.infos = append(c.infos, ParameterInfo{
			ID:           ids.ID(e.Index),
			Title:        p.Name,
			ShortTitle:   p.ShortName,
			Units:        p.Unit,
			StepCount:    p.Range.Steps,
			DefaultValue: p.DefaultNormalized(),
			UnitID:       unit,
			Flags:        flags(p),
		})
	}
	return c, nil
}

// unitFor returns the unit of a group path, creating it and its ancestors
// in order of first appearance
func (c *Controller) unitFor(path []string, known map[string]int32) int32 {
	parent := RootUnitID
	for depth := range path {
		key := strings.Join(path[:depth+1], "/")
		id, ok := known[key]
		if !ok {
			id = int32(len(c.units))
			known[key] = id
			c.units = append(c.units, UnitInfo{ID: id, ParentID: parent, Name: path[depth]})
		}
		parent = id
	}
	return parent
}

// ParameterCount returns the number of exposed parameters
func (c *Controller) ParameterCount() int32 {
	return int32(len(c.infos))
}

// ParameterInfo returns the info at a canonical index
func (c *Controller) ParameterInfo(index int32) (ParameterInfo, error) {
	if index < 0 || int(index) >= len(c.infos) {
		return ParameterInfo{}, ErrInvalidArgument
	}
	return c.infos[index], nil
}

// ParameterInfos returns every parameter info in canonical order
func (c *Controller) ParameterInfos() []ParameterInfo {
	out := make([]ParameterInfo, len(c.infos))
	copy(out, c.infos)
	return out
}

// Units returns the unit tree, root first
func (c *Controller) Units() []UnitInfo {
	out := make([]UnitInfo, len(c.units))
	copy(out, c.units)
	return out
}

// Key resolves a ParamID to its stable key
func (c *Controller) Key(id uint32) (string, bool) {
	p := c.param(id)
	if p == nil {
		return "", false
	}
	return p.Key, true
}

func (c *Controller) param(id uint32) *param.Parameter {
	i, ok := c.ids.Index(id)
	if !ok {
		return nil
	}
	return c.reg.At(i)
}

// GetParamNormalized returns the current normalized value, 0 for unknown IDs
func (c *Controller) GetParamNormalized(id uint32) float64 {
	if p := c.param(id); p != nil {
		return p.Normalized()
	}
	return 0
}

// SetParamNormalized sets a value from the host
func (c *Controller) SetParamNormalized(id uint32, value float64) error {
	p := c.param(id)
	if p == nil {
		return ErrUnknownParam
	}
	p.SetNormalized(value)
	return nil
}

// NormalizedParamToPlain converts without touching the stored value
func (c *Controller) NormalizedParamToPlain(id uint32, normalized float64) float64 {
	if p := c.param(id); p != nil {
		return p.Range.Denormalize(normalized)
	}
	return normalized
}

// PlainParamToNormalized converts without touching the stored value
func (c *Controller) PlainParamToNormalized(id uint32, plain float64) float64 {
	if p := c.param(id); p != nil {
		return p.Range.Normalize(plain)
	}
	return plain
}

// ParamStringByValue formats a normalized value for display
func (c *Controller) ParamStringByValue(id uint32, normalized float64) (string, error) {
	p := c.param(id)
	if p == nil {
		return "", ErrUnknownParam
	}
	return p.FormatValue(p.Range.Denormalize(normalized)), nil
}

// ParamValueByString parses a display string into a normalized value
func (c *Controller) ParamValueByString(id uint32, str string) (float64, error) {
	p := c.param(id)
	if p == nil {
		return 0, ErrUnknownParam
	}
	plain, err := p.ParseValue(str)
	if err != nil {
		return 0, ErrInvalidArgument
	}
	return p.Range.Normalize(plain), nil
}

// ParameterInfos lists the VST3 view of reg in canonical order
func ParameterInfos(reg *param.Registry) ([]ParameterInfo, error) {
	c, err := NewController(reg)
	if err != nil {
		return nil, err
	}
	return c.infos, nil
}

// Units lists the unit tree derived from reg's groups
func Units(reg *param.Registry) ([]UnitInfo, error) {
	c, err := NewController(reg)
	if err != nil {
		return nil, err
	}
	return c.units, nil
}

// Class returns the factory entry for the plugin's audio component
func Class(info plugin.Info) ClassInfo {
	sub := info.VST3Categories
	if sub == "" {
		sub = "Fx"
	}
	return ClassInfo{
		CID:           info.UID(),
		Name:          info.Name,
		Category:      CategoryAudioEffect,
		SubCategories: sub,
		Vendor:        info.Vendor,
		Version:       info.Version,
		SDKVersion:    SDKVersion,
	}
}
