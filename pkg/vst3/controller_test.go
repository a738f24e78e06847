package vst3

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/paramorder/pkg/framework/param"
	"github.com/justyntemme/paramorder/pkg/framework/plugin"
)

func testRegistry() *param.Registry {
	return param.MustRegistry(param.NewGroup("",
		param.FloatParam("one", "One", 0, param.Linear(0, 1)),
		param.NewGroup("inner",
			param.FloatParam("two", "Two", 0, param.Linear(0, 1)),
			param.NewGroup("deep",
				param.New("mode", "Mode").Range(0, 3).Steps(3).Build(),
			),
		),
		param.New("bypass", "Bypass").Bypass().Build(),
		param.FloatParam("four", "Four", 0.5, param.Linear(0, 1)),
	))
}

func TestParameterInfosFollowCanonicalOrder(t *testing.T) {
	infos, err := ParameterInfos(testRegistry())
	require.NoError(t, err)

	var titles []string
	for _, info := range infos {
		titles = append(titles, info.Title)
	}
	assert.Equal(t, []string{"One", "Two", "Mode", "Bypass", "Four"}, titles)

	assert.Equal(t, ParamID("one"), infos[0].ID)
	assert.Equal(t, int32(3), infos[2].StepCount)
	assert.Equal(t, 0.5, infos[4].DefaultValue)
	assert.NotZero(t, infos[3].Flags&ParamIsBypass)
	assert.NotZero(t, infos[0].Flags&ParamCanAutomate)
}

func TestUnitsFromGroups(t *testing.T) {
	c, err := NewController(testRegistry())
	require.NoError(t, err)

	units := c.Units()
	require.Len(t, units, 3)
	assert.Equal(t, UnitInfo{ID: RootUnitID, ParentID: NoParentUnit, Name: "Root"}, units[0])
	assert.Equal(t, UnitInfo{ID: 1, ParentID: RootUnitID, Name: "inner"}, units[1])
	assert.Equal(t, UnitInfo{ID: 2, ParentID: 1, Name: "deep"}, units[2])

	infos := c.ParameterInfos()
	assert.Equal(t, RootUnitID, infos[0].UnitID)
	assert.Equal(t, int32(1), infos[1].UnitID)
	assert.Equal(t, int32(2), infos[2].UnitID)
	assert.Equal(t, RootUnitID, infos[4].UnitID)
}

func TestParamIDIsStableAndPositive(t *testing.T) {
	assert.Equal(t, ParamID("gain"), ParamID("gain"))
	assert.Zero(t, ParamID("gain")&0x80000000)
}

func TestControllerGetSet(t *testing.T) {
	reg := testRegistry()
	c, err := NewController(reg)
	require.NoError(t, err)

	id := ParamID("two")
	require.NoError(t, c.SetParamNormalized(id, 0.25))
	assert.Equal(t, 0.25, reg.Get("two").Value())
	assert.Equal(t, 0.25, c.GetParamNormalized(id))

	key, ok := c.Key(id)
	assert.True(t, ok)
	assert.Equal(t, "two", key)

	err = c.SetParamNormalized(42, 1)
	assert.True(t, errors.Is(err, ErrUnknownParam))
	assert.Equal(t, ResultFalse, Result(err))
	assert.Zero(t, c.GetParamNormalized(42))
}

func TestControllerConversions(t *testing.T) {
	c, err := NewController(testRegistry())
	require.NoError(t, err)

	mode := ParamID("mode")
	assert.Equal(t, 2.0, c.NormalizedParamToPlain(mode, 0.6))
	assert.InDelta(t, 1.0/3, c.PlainParamToNormalized(mode, 1), 1e-9)

	s, err := c.ParamStringByValue(mode, 1)
	require.NoError(t, err)
	assert.Equal(t, "3", s)

	n, err := c.ParamValueByString(ParamID("one"), "0.75")
	require.NoError(t, err)
	assert.Equal(t, 0.75, n)

	_, err = c.ParamValueByString(ParamID("one"), "loud")
	assert.Equal(t, ResultInvalidArg, Result(err))
}

func TestParameterInfoIndexBounds(t *testing.T) {
	c, err := NewController(testRegistry())
	require.NoError(t, err)

	assert.Equal(t, int32(5), c.ParameterCount())
	_, err = c.ParameterInfo(5)
	assert.Equal(t, ErrInvalidArgument, err)
	_, err = c.ParameterInfo(-1)
	assert.Equal(t, ErrInvalidArgument, err)
}

func TestClass(t *testing.T) {
	info := plugin.Info{ID: "com.example.test", Name: "Test", Vendor: "Example", Version: "1.0.0", VST3Categories: "Fx|Tools"}
	copy(info.VST3ClassID[:], "param_order_expl")

	class := Class(info)
	assert.Equal(t, "param_order_expl", string(class.CID[:]))
	assert.Equal(t, CategoryAudioEffect, class.Category)
	assert.Equal(t, "Fx|Tools", class.SubCategories)
	assert.Equal(t, "Example", class.Vendor)

	info.VST3Categories = ""
	assert.Equal(t, "Fx", Class(info).SubCategories)
}

func TestErrorStrings(t *testing.T) {
	assert.Equal(t, "not implemented", ErrNotImplemented.Error())
	assert.Equal(t, ResultOk, Result(nil))
	assert.Equal(t, ResultFalse, Result(errors.New("other")))
}
