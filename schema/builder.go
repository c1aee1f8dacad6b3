package schema

// Fluent constructors for assembling type definitions by hand. An external
// authoring layer (codegen, SDL loader) is expected to call these; the engine
// itself only consumes the finished graph.

func NewType(name string, kind TypeKind, description string) *Type {
	return &Type{Name: name, Kind: kind, Description: description}
}

func (t *Type) AddField(f *Field) *Type {
	t.Fields = append(t.Fields, f)
	return t
}

func (t *Type) AddInterface(name string) *Type {
	t.Interfaces = append(t.Interfaces, name)
	return t
}

func (t *Type) AddPossibleType(name string) *Type {
	t.PossibleTypes = append(t.PossibleTypes, name)
	return t
}

func (t *Type) AddEnumValue(ev *EnumValue) *Type {
	t.EnumValues = append(t.EnumValues, ev)
	return t
}

func (t *Type) AddInputField(iv *InputValue) *Type {
	t.InputFields = append(t.InputFields, iv)
	return t
}

func (t *Type) SetSerialize(fn SerializeFunc) *Type {
	t.Serialize = fn
	return t
}

func (t *Type) SetParseValue(fn ParseValueFunc) *Type {
	t.ParseValue = fn
	return t
}

func (t *Type) SetResolveType(fn ResolveTypeFunc) *Type {
	t.ResolveType = fn
	return t
}

func (t *Type) SetIsTypeOf(fn IsTypeOfFunc) *Type {
	t.IsTypeOf = fn
	return t
}

func (t *Type) SetOneOf(oneOf bool) *Type {
	t.OneOf = oneOf
	return t
}

func NewField(name, description string, typeRef *TypeRef) *Field {
	return &Field{Name: name, Description: description, Type: typeRef}
}

func (f *Field) AddArgument(iv *InputValue) *Field {
	f.Arguments = append(f.Arguments, iv)
	return f
}

func (f *Field) SetResolve(fn ResolveFunc) *Field {
	f.Resolve = fn
	return f
}

func (f *Field) Deprecate(reason string) *Field {
	f.IsDeprecated = true
	f.DeprecationReason = reason
	return f
}

func NewInputValue(name, description string, typeRef *TypeRef) *InputValue {
	return &InputValue{Name: name, Description: description, Type: typeRef}
}

func (iv *InputValue) SetDefault(v any) *InputValue {
	iv.DefaultValue = v
	iv.HasDefault = true
	return iv
}

func (iv *InputValue) Deprecate(reason string) *InputValue {
	iv.IsDeprecated = true
	iv.DeprecationReason = reason
	return iv
}

func NewEnumValue(name, description string) *EnumValue {
	// The symbol name doubles as the internal value until SetValue overrides it.
	return &EnumValue{Name: name, Description: description, Value: name}
}

func (ev *EnumValue) SetValue(v any) *EnumValue {
	ev.Value = v
	return ev
}

func (ev *EnumValue) Deprecate(reason string) *EnumValue {
	ev.IsDeprecated = true
	ev.DeprecationReason = reason
	return ev
}

func NewDirective(name, description string) *Directive {
	return &Directive{Name: name, Description: description}
}

func (d *Directive) AddArgument(iv *InputValue) *Directive {
	d.Arguments = append(d.Arguments, iv)
	return d
}

func (d *Directive) AddLocations(locations ...string) *Directive {
	d.Locations = append(d.Locations, locations...)
	return d
}

func (d *Directive) SetRepeatable(repeatable bool) *Directive {
	d.IsRepeatable = repeatable
	return d
}
