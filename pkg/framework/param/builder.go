package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder. The parameter defaults to a
// continuous 0..1 range with a default of 0.
func New(key, name string) *Builder {
	return &Builder{
		param: &Parameter{
			Key:       key,
			Name:      name,
			ShortName: name,
			Kind:      KindFloat,
			Range:     Linear(0, 1),
			Flags:     CanAutomate,
		},
	}
}

// ShortName sets the short name
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Range.Min = min
	b.param.Range.Max = max
	return b
}

// Default sets the default value (in plain range, not normalized)
func (b *Builder) Default(value float64) *Builder {
	b.param.Default = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Steps sets the number of discrete steps
func (b *Builder) Steps(count int32) *Builder {
	b.param.Range.Steps = count
	if count > 0 && b.param.Kind == KindFloat {
		b.param.Kind = KindInt
	}
	return b
}

// Flags sets parameter flags
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Toggle turns the parameter into an on/off switch
func (b *Builder) Toggle() *Builder {
	b.param.Kind = KindBool
	b.param.Range = Range{Min: 0, Max: 1, Steps: 1}
	b.param.Default = 0
	return b
}

// ReadOnly marks the parameter as read-only
func (b *Builder) ReadOnly() *Builder {
	b.param.Flags |= IsReadOnly
	b.param.Flags &^= CanAutomate
	return b
}

// Hidden marks the parameter as hidden
func (b *Builder) Hidden() *Builder {
	b.param.Flags |= IsHidden
	return b
}

// Bypass marks this as the bypass parameter
func (b *Builder) Bypass() *Builder {
	b.param.Flags |= IsBypass
	return b.Toggle()
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter set to its default. Invalid
// descriptors are reported when the parameter is registered.
func (b *Builder) Build() *Parameter {
	b.param.Reset()
	return b.param
}

// FloatParam is shorthand for a continuous parameter with the given default
func FloatParam(key, name string, def float64, r Range) *Parameter {
	return New(key, name).Range(r.Min, r.Max).Default(def).Build()
}
