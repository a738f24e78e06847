package clap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/paramorder/pkg/framework/bus"
	"github.com/justyntemme/paramorder/pkg/framework/param"
	"github.com/justyntemme/paramorder/pkg/framework/plugin"
	"github.com/justyntemme/paramorder/pkg/vst3"
)

func testRegistry() *param.Registry {
	return param.MustRegistry(param.NewGroup("",
		param.FloatParam("one", "One", 0, param.Linear(0, 1)),
		param.NewGroup("inner",
			param.FloatParam("two", "Two", 0, param.Linear(0, 1)),
			param.NewGroup("deep",
				param.New("gain", "Gain").Range(-24, 24).Unit("dB").Build(),
			),
		),
		param.New("bypass", "Bypass").Bypass().Build(),
	))
}

func TestParamInfos(t *testing.T) {
	ext, err := NewParamsExt(testRegistry())
	require.NoError(t, err)
	require.Equal(t, uint32(4), ext.Count())

	infos := ext.Infos()
	assert.Equal(t, "One", infos[0].Name)
	assert.Equal(t, "", infos[0].Module)
	assert.Equal(t, "inner", infos[1].Module)
	assert.Equal(t, "inner/deep", infos[2].Module)
	assert.Equal(t, -24.0, infos[2].MinValue)
	assert.Equal(t, 24.0, infos[2].MaxValue)
	assert.NotZero(t, infos[3].Flags&ParamIsBypass)
	assert.NotZero(t, infos[3].Flags&ParamIsStepped)
	assert.NotZero(t, infos[0].Flags&ParamIsAutomatable)

	info, ok := ext.Info(1)
	assert.True(t, ok)
	assert.Equal(t, ParamID("two"), info.ID)
	_, ok = ext.Info(4)
	assert.False(t, ok)
}

func TestIDsMatchVST3(t *testing.T) {
	for _, key := range []string{"one", "two", "gain", "bypass"} {
		assert.Equal(t, vst3.ParamID(key), ParamID(key), key)
	}
}

func TestKeyResolvesParamID(t *testing.T) {
	reg := testRegistry()
	ext, err := NewParamsExt(reg)
	require.NoError(t, err)

	for _, info := range ext.Infos() {
		key, ok := ext.Key(info.ID)
		require.True(t, ok)
		assert.Equal(t, info.ID, ParamID(key))
		assert.Equal(t, info.Name, reg.Get(key).Name)
	}

	_, ok := ext.Key(7)
	assert.False(t, ok)
}

func TestValueAndFlush(t *testing.T) {
	reg := testRegistry()
	ext, err := NewParamsExt(reg)
	require.NoError(t, err)

	assert.True(t, ext.SetValue(ParamID("gain"), 30))
	v, ok := ext.Value(ParamID("gain"))
	assert.True(t, ok)
	assert.Equal(t, 24.0, v)

	applied := ext.Flush([]ParamValueEvent{
		{ParamID: ParamID("one"), Value: 0.5},
		{ParamID: 7, Value: 1},
		{ParamID: ParamID("two"), Value: 0.25},
	})
	assert.Equal(t, 2, applied)
	assert.Equal(t, 0.5, reg.Get("one").Value())
	assert.Equal(t, 0.25, reg.Get("two").Value())

	_, ok = ext.Value(7)
	assert.False(t, ok)
}

func TestTextConversion(t *testing.T) {
	ext, err := NewParamsExt(testRegistry())
	require.NoError(t, err)

	text, ok := ext.ValueToText(ParamID("bypass"), 1)
	assert.True(t, ok)
	assert.Equal(t, "On", text)

	v, ok := ext.TextToValue(ParamID("one"), "0.4")
	assert.True(t, ok)
	assert.Equal(t, 0.4, v)

	_, ok = ext.TextToValue(ParamID("one"), "nope")
	assert.False(t, ok)
}

func TestDescriptor(t *testing.T) {
	info := plugin.Info{
		ID:           "com.example.test",
		Name:         "Test",
		Vendor:       "Example",
		Version:      "1.0.0",
		URL:          "https://example.com",
		ClapFeatures: []string{"utility"},
	}

	d := Descriptor(info)
	assert.Equal(t, "com.example.test", d.ID)
	assert.Equal(t, []string{"utility"}, d.Features)
	assert.Equal(t, Version, d.ClapVersion)

	info.ClapFeatures = nil
	assert.Equal(t, []string{"audio-effect"}, Descriptor(info).Features)
}

func TestAudioPorts(t *testing.T) {
	cfg := bus.Config{Inputs: 2, Outputs: 2, AuxInputs: []int32{1}}

	in := AudioPorts(cfg, true, []string{"Sidechain"})
	require.Len(t, in, 2)
	assert.Equal(t, PortStereo, in[0].PortType)
	assert.Equal(t, AudioPortIsMain, in[0].Flags)
	assert.Equal(t, uint32(0), in[0].InPlacePair)
	assert.Equal(t, "Sidechain", in[1].Name)
	assert.Equal(t, PortMono, in[1].PortType)

	out := AudioPorts(bus.Config{Inputs: 0, Outputs: 6}, false, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].PortType)
	assert.Equal(t, InvalidID, out[0].InPlacePair)
}
