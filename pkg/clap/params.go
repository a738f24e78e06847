package clap

import (
	"github.com/justyntemme/paramorder/internal/paramid"
	"github.com/justyntemme/paramorder/pkg/framework/param"
)

// ParamValueEvent mirrors clap_event_param_value_t. Value is plain.
type ParamValueEvent struct {
	Time    uint32
	ParamID uint32
	Value   float64
}

// ParamsExt implements the clap.params extension over a registry
type ParamsExt struct {
	reg   *param.Registry
	ids   *paramid.Table
	infos []ParamInfo
}

// NewParamsExt builds the clap_id table and the info list
func NewParamsExt(reg *param.Registry) (*ParamsExt, error) {
	ids, err := paramid.NewTable(reg, 0x7FFFFFFF)
	if err != nil {
		return nil, err
	}

	e := &ParamsExt{reg: reg, ids: ids}
	for _, entry := range reg.Entries() {
		p := entry.Param
		e.infos = append(e.infos, ParamInfo{
			ID:           ids.ID(entry.Index),
			Flags:        flags(p),
			Name:         p.Name,
			Module:       entry.Module(),
			MinValue:     p.Range.Min,
			MaxValue:     p.Range.Max,
			DefaultValue: p.Default,
		})
	}
	return e, nil
}

// Count returns the number of parameters
func (e *ParamsExt) Count() uint32 {
	return uint32(len(e.infos))
}

// Info returns the parameter at a canonical index
func (e *ParamsExt) Info(index uint32) (ParamInfo, bool) {
	if int(index) >= len(e.infos) {
		return ParamInfo{}, false
	}
	return e.infos[index], true
}

// Infos returns every parameter in canonical order
func (e *ParamsExt) Infos() []ParamInfo {
	out := make([]ParamInfo, len(e.infos))
	copy(out, e.infos)
	return out
}

// Key resolves a clap_id to its stable parameter key
func (e *ParamsExt) Key(id uint32) (string, bool) {
	i, ok := e.ids.Index(id)
	if !ok {
		return "", false
	}
	return e.reg.At(i).Key, true
}

func (e *ParamsExt) param(id uint32) *param.Parameter {
	i, ok := e.ids.Index(id)
	if !ok {
		return nil
	}
	return e.reg.At(i)
}

// Value returns the current plain value
func (e *ParamsExt) Value(id uint32) (float64, bool) {
	p := e.param(id)
	if p == nil {
		return 0, false
	}
	return p.Value(), true
}

// SetValue stores a plain value, clamped to the range
func (e *ParamsExt) SetValue(id uint32, value float64) bool {
	p := e.param(id)
	if p == nil {
		return false
	}
	p.SetValue(value)
	return true
}

// ValueToText formats a plain value for display
func (e *ParamsExt) ValueToText(id uint32, value float64) (string, bool) {
	p := e.param(id)
	if p == nil {
		return "", false
	}
	return p.FormatValue(value), true
}

// TextToValue parses a display string into a plain value
func (e *ParamsExt) TextToValue(id uint32, text string) (float64, bool) {
	p := e.param(id)
	if p == nil {
		return 0, false
	}
	v, err := p.ParseValue(text)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Flush applies queued value events outside of process. Events for unknown
// IDs are ignored; the number applied is returned.
func (e *ParamsExt) Flush(in []ParamValueEvent) int {
	applied := 0
	for _, ev := range in {
		if e.SetValue(ev.ParamID, ev.Value) {
			applied++
		}
	}
	return applied
}
