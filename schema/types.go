package schema

import "context"

// ResolveFunc produces a field's raw value from its parent value and coerced
// arguments. It is attached to the Field that declares it.
type ResolveFunc func(ctx context.Context, source any, args map[string]any) (any, error)

// SerializeFunc converts an internal scalar value into a JSON-safe Go value.
type SerializeFunc func(value any) (any, error)

// ParseValueFunc converts a raw literal or variable value into the scalar's
// internal representation.
type ParseValueFunc func(value any) (any, error)

// ResolveTypeFunc names the concrete object type backing an interface- or
// union-typed value at run time.
type ResolveTypeFunc func(ctx context.Context, value any) (string, error)

// IsTypeOfFunc reports whether a value belongs to the object type it is
// attached to. Used as a fallback when an abstract type has no ResolveTypeFunc.
type IsTypeOfFunc func(ctx context.Context, value any) bool

// Type is a named GraphQL type (object, interface, union, scalar, enum, input).
// Cross-type references are always by name through the Schema, never by
// direct ownership, so self-referential type graphs cannot form ownership
// cycles.
type Type struct {
	Name           string
	Kind           TypeKind
	Description    string
	Fields         []*Field      // For OBJECT and INTERFACE
	Interfaces     []string      // For OBJECT and INTERFACE (implemented/extended)
	PossibleTypes  []string      // For INTERFACE and UNION
	EnumValues     []*EnumValue  // For ENUM
	InputFields    []*InputValue // For INPUT_OBJECT
	Serialize      SerializeFunc   `json:"-"` // For SCALAR
	ParseValue     ParseValueFunc  `json:"-"` // For SCALAR
	ResolveType    ResolveTypeFunc `json:"-"` // For INTERFACE and UNION
	IsTypeOf       IsTypeOfFunc    `json:"-"` // For OBJECT
	SpecifiedByURL *string
	OneOf          bool
}

// Field returns the field declared under name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EnumValue returns the enum value declared under name, or nil.
func (t *Type) EnumValue(name string) *EnumValue {
	for _, ev := range t.EnumValues {
		if ev.Name == name {
			return ev
		}
	}
	return nil
}

// InputField returns the input field declared under name, or nil.
func (t *Type) InputField(name string) *InputValue {
	for _, iv := range t.InputFields {
		if iv.Name == name {
			return iv
		}
	}
	return nil
}

// Field represents a field on an object or interface.
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue
	Resolve           ResolveFunc `json:"-"`
	IsDeprecated      bool
	DeprecationReason string
}

// Argument returns the argument declared under name, or nil.
func (f *Field) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// TypeKind represents the kind of GraphQL type.
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef references a type by name, possibly wrapped by List or Non-Null.
// List and Non-Null are structural, not named, and are never registered.
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For LIST and NON_NULL
	Named  string   // For NAMED
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t == nil {
		return false
	}
	if t.Kind == TypeRefKindList {
		return true
	}
	return t.Kind == TypeRefKindNonNull && t.OfType != nil && t.OfType.Kind == TypeRefKindList
}

// Unwrap removes one layer of Non-Null or List wrapping.
func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// GetNamedType returns the innermost named type of the reference.
func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

// String renders the reference in SDL notation, e.g. "[Episode!]!".
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	default:
		return t.Named
	}
}

type EnumValue struct {
	Name              string
	Description       string
	Value             any // internal value; defaults to the symbol name
	IsDeprecated      bool
	DeprecationReason string
}

type InputValue struct {
	Name              string
	Description       string
	Type              *TypeRef
	DefaultValue      any
	HasDefault        bool
	IsDeprecated      bool
	DeprecationReason string
}

type Directive struct {
	Name         string
	Description  string
	Locations    []string
	Arguments    []*InputValue
	IsRepeatable bool
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.IsNonNull() }

// IsList reports whether the type is (or is wrapped by) a list type.
func IsList(t *TypeRef) bool { return t != nil && t.IsList() }

// Unwrap removes one layer of Non-Null or List wrapping and returns the inner type.
func Unwrap(t *TypeRef) *TypeRef { return t.Unwrap() }

// GetNamedType returns the innermost named type for the given reference.
func GetNamedType(t *TypeRef) string { return t.GetNamedType() }
