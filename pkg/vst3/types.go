// Package vst3 exposes a plugin's parameters and identity in the shape a
// VST3 host expects: 32-bit parameter IDs, normalized values, units and
// class info. It holds no cgo; the C glue only copies these values out.
package vst3

import (
	"github.com/justyntemme/paramorder/internal/paramid"
	"github.com/justyntemme/paramorder/pkg/framework/param"
)

// Result codes
const (
	ResultOk           int32 = 0
	ResultFalse        int32 = 1
	ResultInvalidArg   int32 = 2
	ResultNotImplement int32 = 3
)

// Parameter flags as defined by Vst::ParameterInfo::ParameterFlags
const (
	ParamCanAutomate  int32 = 1 << 0
	ParamIsReadOnly   int32 = 1 << 1
	ParamIsWrapAround int32 = 1 << 2
	ParamIsList       int32 = 1 << 3
	ParamIsHidden     int32 = 1 << 4
	ParamIsBypass     int32 = 1 << 16
)

// Unit IDs
const (
	RootUnitID   int32 = 0
	NoParentUnit int32 = -1
)

// Class categories
const (
	CategoryAudioEffect = "Audio Module Class"
)

// Error is a non-OK result code
type Error int32

// Errors returned by the controller
const (
	ErrUnknownParam    Error = Error(ResultFalse)
	ErrInvalidArgument Error = Error(ResultInvalidArg)
	ErrNotImplemented  Error = Error(ResultNotImplement)
)

func (e Error) Error() string {
	switch e {
	case ErrUnknownParam:
		return "unknown parameter"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrNotImplemented:
		return "not implemented"
	default:
		return "unknown error"
	}
}

// Result returns the tresult value for err
func Result(err error) int32 {
	if err == nil {
		return ResultOk
	}
	if e, ok := err.(Error); ok {
		return int32(e)
	}
	return ResultFalse
}

// ErrIDCollision means two parameter keys hash to the same ParamID
var ErrIDCollision = paramid.ErrIDCollision

// idMask clears the top bit; IDs with it set are reserved for hosts
const idMask = 0x7FFFFFFF

// ParamID derives the VST3 parameter ID from a stable key
func ParamID(key string) uint32 {
	return paramid.Hash(key, idMask)
}

// ParameterInfo mirrors Vst::ParameterInfo
type ParameterInfo struct {
	ID           uint32
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64 // normalized
	UnitID       int32
	Flags        int32
}

// UnitInfo mirrors Vst::UnitInfo
type UnitInfo struct {
	ID       int32
	ParentID int32
	Name     string
}

// ClassInfo mirrors PClassInfo2 for the audio component
type ClassInfo struct {
	CID           [16]byte
	Name          string
	Category      string
	SubCategories string
	Vendor        string
	Version       string
	SDKVersion    string
}

func flags(p *param.Parameter) int32 {
	var f int32
	if p.Flags&param.CanAutomate != 0 {
		f |= ParamCanAutomate
	}
	if p.Flags&param.IsReadOnly != 0 {
		f |= ParamIsReadOnly
	}
	if p.Flags&param.IsHidden != 0 {
		f |= ParamIsHidden
	}
	if p.Flags&param.IsBypass != 0 {
		f |= ParamIsBypass
	}
	if p.Kind != param.KindFloat && p.Range.Steps > 0 {
		f |= ParamIsList
	}
	return f
}
