package param

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParameterStartsAtDefault(t *testing.T) {
	tests := []struct {
		def float64
		r   Range
	}{
		{0, Linear(0, 1)},
		{1, Linear(0, 1)},
		{-12, Linear(-24, 24)},
		{440, Linear(20, 20000)},
		{3, Stepped(0, 8)},
	}

	for _, tt := range tests {
		p, err := NewParameter("k", "K", tt.def, tt.r)
		require.NoError(t, err)
		assert.Equal(t, tt.def, p.Value())
	}
}

func TestNewParameterValidation(t *testing.T) {
	_, err := NewParameter("", "Empty", 0, Linear(0, 1))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewParameter("k", "Backwards", 0, Linear(1, 0))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewParameter("k", "Outside", 5, Linear(0, 1))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewParameter("k", "NaN", 0, Range{Min: math.NaN(), Max: 1})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewParameter("k", "Unbounded", 0, Linear(0, math.Inf(1)))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewParameter("k", "Unbounded", 0, Linear(math.Inf(-1), 1))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSetValueClamps(t *testing.T) {
	p, err := NewParameter("gain", "Gain", 0, Linear(-24, 24))
	require.NoError(t, err)

	p.SetValue(100)
	assert.Equal(t, 24.0, p.Value())

	p.SetValue(-100)
	assert.Equal(t, -24.0, p.Value())

	p.SetValue(math.Inf(1))
	assert.Equal(t, 24.0, p.Value())

	p.SetValue(math.NaN())
	assert.Equal(t, 0.0, p.Value())
}

func TestSetValueRoundTrip(t *testing.T) {
	p, err := NewParameter("x", "X", 0, Linear(0, 1))
	require.NoError(t, err)

	for _, v := range []float64{0, 1, 0.5, 0.1, 0.3333333333333333, math.Nextafter(1, 0), 1e-300} {
		p.SetValue(v)
		assert.Equal(t, v, p.Value())
	}
}

func TestNormalizedConversion(t *testing.T) {
	p, err := NewParameter("freq", "Freq", 20, Linear(20, 220))
	require.NoError(t, err)

	assert.Equal(t, 0.0, p.Normalized())

	p.SetNormalized(0.5)
	assert.InDelta(t, 120.0, p.Value(), 1e-9)
	assert.InDelta(t, 0.5, p.Normalized(), 1e-12)

	p.SetNormalized(1.5)
	assert.Equal(t, 220.0, p.Value())

	p.SetNormalized(math.NaN())
	assert.Equal(t, 20.0, p.Value())
	assert.Equal(t, 0.0, p.DefaultNormalized())
}

func TestSteppedParameterSnaps(t *testing.T) {
	p := New("mode", "Mode").Range(0, 4).Steps(4).Default(2).Build()
	require.NoError(t, p.Validate())
	assert.Equal(t, KindInt, p.Kind)

	p.SetValue(2.4)
	assert.Equal(t, 2, p.Int())

	p.SetNormalized(0.9)
	assert.Equal(t, 4.0, p.Value())
	assert.Equal(t, "4", p.FormatValue(p.Value()))
}

func TestToggleParameter(t *testing.T) {
	p := New("bypass", "Bypass").Bypass().Build()
	require.NoError(t, p.Validate())
	assert.Equal(t, KindBool, p.Kind)
	assert.NotZero(t, p.Flags&IsBypass)
	assert.False(t, p.Bool())

	v, err := p.ParseValue("on")
	require.NoError(t, err)
	p.SetValue(v)
	assert.True(t, p.Bool())
	assert.Equal(t, "On", p.FormatValue(p.Value()))

	_, err = p.ParseValue("maybe")
	assert.Error(t, err)
}

func TestBuilderFlags(t *testing.T) {
	p := New("meter", "Meter").ReadOnly().Hidden().Build()
	assert.Zero(t, p.Flags&CanAutomate)
	assert.NotZero(t, p.Flags&IsReadOnly)
	assert.NotZero(t, p.Flags&IsHidden)
}

func TestFormatAndParse(t *testing.T) {
	percent := func(v float64) string { return strconv.FormatFloat(v*100, 'f', 0, 64) + "%" }
	unpercent := func(s string) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		return v / 100, err
	}

	p := New("mix", "Mix").Formatter(percent, unpercent).Default(0.25).Build()
	assert.Equal(t, "25%", p.FormatValue(p.Value()))

	v, err := p.ParseValue("80 %")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, v, 1e-12)

	v, err = p.ParseValue("250%")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	plain := New("x", "X").Build()
	assert.Equal(t, "0.00", plain.FormatValue(0))
	_, err = plain.ParseValue("abc")
	assert.Error(t, err)
}

func TestToggleTextAliases(t *testing.T) {
	p := New("enabled", "Enabled").Toggle().Build()

	for text, want := range map[string]float64{" YES ": 1, "True": 1, "1": 1, "off": 0, "No": 0} {
		v, err := p.ParseValue(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, v, text)
	}
	assert.Equal(t, "Off", p.FormatValue(0.5))
	assert.Equal(t, "On", p.FormatValue(0.51))
}
