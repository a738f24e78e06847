package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymmetricAccepts(t *testing.T) {
	tests := []struct {
		in, out int32
		want    bool
	}{
		{1, 1, true},
		{2, 2, true},
		{6, 6, true},
		{8, 8, true},
		{0, 0, false},
		{1, 2, false},
		{2, 1, false},
		{-1, -1, false},
	}

	for _, tt := range tests {
		cfg := Config{Inputs: tt.in, Outputs: tt.out}
		assert.Equal(t, tt.want, Symmetric{}.Accepts(cfg), cfg.String())
	}
}

func TestSymmetricIgnoresAux(t *testing.T) {
	cfg := Config{Inputs: 2, Outputs: 2, AuxInputs: []int32{2}, AuxOutputs: []int32{1, 1}}
	assert.True(t, Symmetric{}.Accepts(cfg))
}

func TestNegotiate(t *testing.T) {
	cfg, err := Negotiate(Symmetric{}, Config{Inputs: 1, Outputs: 2}, Stereo, Mono)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(Stereo))

	_, err = Negotiate(Symmetric{}, Config{Inputs: 1, Outputs: 2}, Config{})
	assert.ErrorIs(t, err, ErrBusConfigRejected)

	_, err = Negotiate(Symmetric{})
	assert.ErrorIs(t, err, ErrBusConfigRejected)
}

func TestNegotiatorFunc(t *testing.T) {
	stereoOnly := NegotiatorFunc(func(cfg Config) bool { return cfg.Equal(Stereo) })
	assert.True(t, stereoOnly.Accepts(Stereo))
	assert.False(t, stereoOnly.Accepts(Mono))
}

func TestLayouts(t *testing.T) {
	for name, cfg := range Layouts {
		assert.True(t, Symmetric{}.Accepts(cfg), name)
	}
}

func TestConfigString(t *testing.T) {
	assert.Equal(t, "2in/2out", Stereo.String())
	assert.Equal(t, "2in/2out+aux[2]/[]", Config{Inputs: 2, Outputs: 2, AuxInputs: []int32{2}}.String())
}

func TestConfigEqual(t *testing.T) {
	a := Config{Inputs: 2, Outputs: 2, AuxInputs: []int32{2}}
	assert.True(t, a.Equal(Config{Inputs: 2, Outputs: 2, AuxInputs: []int32{2}}))
	assert.False(t, a.Equal(Stereo))
	assert.False(t, a.Equal(Config{Inputs: 2, Outputs: 2, AuxInputs: []int32{1}}))
}

func TestFromConfigStereo(t *testing.T) {
	config := FromConfig(Stereo)

	assert.Equal(t, int32(1), config.Count(MediaTypeAudio, DirectionInput))
	assert.Equal(t, int32(1), config.Count(MediaTypeAudio, DirectionOutput))
	assert.Zero(t, config.Count(MediaTypeEvent, DirectionInput))

	in, ok := config.Bus(MediaTypeAudio, DirectionInput, 0)
	require.True(t, ok)
	assert.Equal(t, int32(2), in.ChannelCount)
	assert.Equal(t, "Stereo In", in.Name)
	assert.True(t, in.IsActive)

	out, ok := config.Bus(MediaTypeAudio, DirectionOutput, 0)
	require.True(t, ok)
	assert.Equal(t, "Stereo Out", out.Name)
}

func TestFromConfigAux(t *testing.T) {
	config := FromConfig(Config{Inputs: 6, Outputs: 6, AuxInputs: []int32{2}, AuxOutputs: []int32{1}}, "Sidechain")

	assert.Equal(t, int32(2), config.Count(MediaTypeAudio, DirectionInput))
	assert.Equal(t, int32(2), config.Count(MediaTypeAudio, DirectionOutput))

	sc, ok := config.Bus(MediaTypeAudio, DirectionInput, 1)
	require.True(t, ok)
	assert.Equal(t, "Sidechain", sc.Name)
	assert.Equal(t, TypeAux, sc.BusType)
	assert.False(t, sc.IsActive)

	auxOut, ok := config.Bus(MediaTypeAudio, DirectionOutput, 1)
	require.True(t, ok)
	assert.Equal(t, "Aux Out 1", auxOut.Name)

	main, _ := config.Bus(MediaTypeAudio, DirectionInput, 0)
	assert.Equal(t, "5.1 In", main.Name)
}

func TestBusOutOfRange(t *testing.T) {
	config := FromConfig(Config{Inputs: 2, Outputs: 2, AuxInputs: []int32{2}})

	for _, idx := range []int32{-1, 2, 99} {
		_, ok := config.Bus(MediaTypeAudio, DirectionInput, idx)
		assert.False(t, ok, idx)
	}
}

func TestBusReturnsCopy(t *testing.T) {
	config := FromConfig(Config{Inputs: 2, Outputs: 2, AuxInputs: []int32{2}})

	sc, _ := config.Bus(MediaTypeAudio, DirectionInput, 1)
	sc.IsActive = true

	again, _ := config.Bus(MediaTypeAudio, DirectionInput, 1)
	assert.False(t, again.IsActive)
}

func TestAddEventBus(t *testing.T) {
	config := FromConfig(Stereo).AddEventBus(DirectionInput, "Event In")

	assert.Equal(t, int32(1), config.Count(MediaTypeEvent, DirectionInput))
	assert.Zero(t, config.Count(MediaTypeEvent, DirectionOutput))
	events := config.Buses(MediaTypeEvent)
	require.Len(t, events, 1)
	assert.Equal(t, "Event In", events[0].Name)
	assert.Equal(t, int32(2), config.Count(MediaTypeAudio, DirectionInput)+config.Count(MediaTypeAudio, DirectionOutput))
}

func TestLayoutName(t *testing.T) {
	assert.Equal(t, "Mono", LayoutName(1))
	assert.Equal(t, "7.1", LayoutName(8))
	assert.Equal(t, "3ch", LayoutName(3))
}
