package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/paramorder/pkg/framework/bus"
)

func validInfo() Info {
	return Info{
		ID:                    "com.example.test",
		Name:                  "Test",
		Version:               "1.0.0",
		Vendor:                "Example",
		DefaultInputChannels:  2,
		DefaultOutputChannels: 2,
	}
}

func TestUIDGeneration(t *testing.T) {
	tests := []struct {
		name     string
		pluginID string
	}{
		{"reverse domain", "com.mycompany.newplugin"},
		{"another plugin", "com.mycompany.anotherplugin"},
		{"short", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info{ID: tt.pluginID}
			assert.Equal(t, info.UID(), info.UID())
			assert.NotEqual(t, [16]byte{}, info.UID())
		})
	}
}

func TestUIDUniqueness(t *testing.T) {
	plugins := []string{
		"com.company1.plugin1",
		"com.company1.plugin2",
		"com.company2.plugin1",
		"com.different.name",
	}

	uids := make(map[[16]byte]string)
	for _, pluginID := range plugins {
		uid := Info{ID: pluginID}.UID()
		existing, exists := uids[uid]
		assert.False(t, exists, "UID collision between %s and %s", pluginID, existing)
		uids[uid] = pluginID
	}
}

func TestExplicitClassID(t *testing.T) {
	info := Info{ID: "com.example.test"}
	copy(info.VST3ClassID[:], "param_order_expl")

	uid := info.UID()
	assert.Equal(t, "param_order_expl", string(uid[:]))
}

func TestInfoValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Info)
		valid  bool
	}{
		{"complete", func(*Info) {}, true},
		{"empty id", func(i *Info) { i.ID = "" }, false},
		{"empty name", func(i *Info) { i.Name = "" }, false},
		{"empty vendor", func(i *Info) { i.Vendor = "" }, false},
		{"empty version", func(i *Info) { i.Version = "" }, false},
		{"no outputs", func(i *Info) { i.DefaultOutputChannels = 0 }, false},
		{"generator without inputs", func(i *Info) { i.DefaultInputChannels = 0 }, true},
		{"negative inputs", func(i *Info) { i.DefaultInputChannels = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.modify(&info)
			err := info.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInfo)
			}
		})
	}
}

func TestDefaultBusConfig(t *testing.T) {
	info := validInfo()
	assert.True(t, info.DefaultBusConfig().Equal(bus.Stereo))

	info.AuxInputs = &AuxIOConfig{NumBuses: 1, NumChannels: 2, Names: []string{"Sidechain"}}
	info.AuxOutputs = &AuxIOConfig{NumBuses: 2, NumChannels: 1}

	cfg := info.DefaultBusConfig()
	assert.Equal(t, []int32{2}, cfg.AuxInputs)
	assert.Equal(t, []int32{1, 1}, cfg.AuxOutputs)
	assert.Equal(t, []string{"Sidechain", "", ""}, info.AuxNames())

	cfg.AuxInputs[0] = 99
	assert.Equal(t, []int32{2}, info.DefaultBusConfig().AuxInputs)
}

func TestAuxIOConfigCounts(t *testing.T) {
	var none *AuxIOConfig
	assert.Nil(t, none.Counts())
	assert.Nil(t, (&AuxIOConfig{NumBuses: 0, NumChannels: 2}).Counts())
	require.Len(t, (&AuxIOConfig{NumBuses: 3, NumChannels: 2}).Counts(), 3)
}

func TestMidiConfigString(t *testing.T) {
	assert.Equal(t, "none", MidiNone.String())
	assert.Equal(t, "basic", MidiBasic.String())
	assert.Equal(t, "full", MidiFull.String())
}
