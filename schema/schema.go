// Package schema holds the executable type graph: named type definitions with
// their attached resolver, serializer, parse and type-resolution functions,
// registered in a flat name-indexed table. The registry is assembled once,
// finalized with Build, and read-only afterwards.
package schema

// Schema is the type registry plus its root operation type names.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
	Directives       map[string]*Directive
	Description      string

	// assembly-time problems surfaced by Build
	problems []string
	built    bool
}

// New creates an empty schema with the builtin scalars and directives
// pre-registered.
func New(description string) *Schema {
	s := &Schema{
		Types:       make(map[string]*Type),
		Directives:  make(map[string]*Directive),
		Description: description,
	}
	for _, t := range builtinScalars() {
		s.Types[t.Name] = t
	}
	s.AddDirective(includeDirective).AddDirective(skipDirective)
	return s
}

// GetQueryType returns the root query type (may be nil if absent).
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent).
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent).
func (s *Schema) GetSubscriptionType() *Type { return s.Types[s.SubscriptionType] }

// Built reports whether Build has completed successfully.
func (s *Schema) Built() bool { return s.built }

// Lookup returns the definition registered for name.
func (s *Schema) Lookup(name string) (*Type, bool) {
	t, ok := s.Types[name]
	return t, ok
}

func (s *Schema) SetQueryType(name string) *Schema {
	s.QueryType = name
	return s
}

func (s *Schema) SetMutationType(name string) *Schema {
	s.MutationType = name
	return s
}

func (s *Schema) SetSubscriptionType(name string) *Schema {
	s.SubscriptionType = name
	return s
}

// AddType registers t under its name. Rebinding a name to a structurally
// different definition is recorded and reported by Build.
func (s *Schema) AddType(t *Type) *Schema {
	if existing, ok := s.Types[t.Name]; ok && !typesEquivalent(existing, t) {
		s.problems = append(s.problems, "duplicate type name "+t.Name+" bound to structurally different definitions")
		return s
	}
	s.Types[t.Name] = t
	return s
}

func (s *Schema) AddDirective(d *Directive) *Schema {
	s.Directives[d.Name] = d
	return s
}

// typesEquivalent is a shallow structural comparison: kind plus declared
// member names. It decides whether re-registering a name is a redefinition.
func typesEquivalent(a, b *Type) bool {
	if a == b {
		return true
	}
	if a.Name != b.Name || a.Kind != b.Kind {
		return false
	}
	if len(a.Fields) != len(b.Fields) || len(a.EnumValues) != len(b.EnumValues) ||
		len(a.InputFields) != len(b.InputFields) || len(a.PossibleTypes) != len(b.PossibleTypes) {
		return false
	}
	for i, f := range a.Fields {
		if b.Fields[i].Name != f.Name || b.Fields[i].Type.String() != f.Type.String() {
			return false
		}
	}
	for i, ev := range a.EnumValues {
		if b.EnumValues[i].Name != ev.Name {
			return false
		}
	}
	for i, iv := range a.InputFields {
		if b.InputFields[i].Name != iv.Name {
			return false
		}
	}
	for i, pt := range a.PossibleTypes {
		if b.PossibleTypes[i] != pt {
			return false
		}
	}
	return true
}
