package schema

import (
	"fmt"
	"sort"
	"strings"
)

// BuildError reports every schema integrity problem found during Build.
// A schema that failed to build must not execute queries.
type BuildError struct {
	Problems []string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("schema build failed: %s", strings.Join(e.Problems, "; "))
}

// Build finalizes the registry. It walks the type graph depth-first from the
// root operation types, verifying that every referenced name resolves, that
// Non-Null wrappers never nest directly, that enum symbols are unique, and
// that every object provides each field its declared interfaces require with
// a covariant-or-equal type. The walk keeps a visited set keyed by type name,
// so each distinct type is entered exactly once regardless of in-degree and
// self-referential or mutually-recursive graphs terminate.
//
// Build also back-fills interface PossibleTypes from object declarations so
// the abstract-type fallback can iterate implementors in deterministic order.
func (s *Schema) Build() error {
	w := &walker{schema: s, visited: make(map[string]bool)}
	w.problems = append(w.problems, s.problems...)

	if s.QueryType == "" {
		w.problems = append(w.problems, "query root type is not set")
	}
	for _, root := range []struct{ op, name string }{
		{"query", s.QueryType},
		{"mutation", s.MutationType},
		{"subscription", s.SubscriptionType},
	} {
		if root.name == "" {
			continue
		}
		w.visitNamed(root.name, root.op+" root")
		if t, ok := s.Types[root.name]; ok && t.Kind != TypeKindObject {
			w.problems = append(w.problems, fmt.Sprintf("%s root type %s must be an Object type, got %s", root.op, root.name, t.Kind))
		}
	}

	w.checkConformance()
	w.fillPossibleTypes()

	if len(w.problems) > 0 {
		return &BuildError{Problems: w.problems}
	}
	s.built = true
	return nil
}

// ReachableTypes returns the sorted names of all types reachable from the
// root operation types. Each type is visited exactly once by the walk.
func (s *Schema) ReachableTypes() []string {
	w := &walker{schema: s, visited: make(map[string]bool)}
	for _, name := range []string{s.QueryType, s.MutationType, s.SubscriptionType} {
		if name != "" {
			w.visitNamed(name, "root")
		}
	}
	names := make([]string, 0, len(w.visited))
	for name := range w.visited {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type walker struct {
	schema   *Schema
	visited  map[string]bool
	problems []string
}

// visitNamed enters the definition bound to name, expanding its structural
// children. The visited check makes the walk cycle-safe.
func (w *walker) visitNamed(name, referencedBy string) {
	if w.visited[name] {
		return
	}
	t, ok := w.schema.Types[name]
	if !ok {
		w.problems = append(w.problems, fmt.Sprintf("type %s referenced by %s is not defined", name, referencedBy))
		return
	}
	w.visited[name] = true

	switch t.Kind {
	case TypeKindObject, TypeKindInterface:
		for _, f := range t.Fields {
			owner := t.Name + "." + f.Name
			w.visitRef(f.Type, owner)
			for _, arg := range f.Arguments {
				w.visitRef(arg.Type, owner+"("+arg.Name+":)")
			}
		}
		for _, iface := range t.Interfaces {
			w.visitNamed(iface, t.Name)
		}
		for _, possible := range t.PossibleTypes {
			w.visitNamed(possible, t.Name)
		}
	case TypeKindUnion:
		for _, member := range t.PossibleTypes {
			w.visitNamed(member, t.Name)
			if def, ok := w.schema.Types[member]; ok && def.Kind != TypeKindObject {
				w.problems = append(w.problems, fmt.Sprintf("union %s member %s must be an Object type, got %s", t.Name, member, def.Kind))
			}
		}
	case TypeKindInputObject:
		for _, iv := range t.InputFields {
			w.visitRef(iv.Type, t.Name+"."+iv.Name)
		}
	case TypeKindEnum:
		seen := make(map[string]bool, len(t.EnumValues))
		for _, ev := range t.EnumValues {
			if seen[ev.Name] {
				w.problems = append(w.problems, fmt.Sprintf("enum %s declares symbol %s more than once", t.Name, ev.Name))
			}
			seen[ev.Name] = true
		}
	}
}

// visitRef unwraps structural wrappers down to the named type, rejecting a
// Non-Null that directly wraps another Non-Null.
func (w *walker) visitRef(ref *TypeRef, owner string) {
	if ref == nil {
		w.problems = append(w.problems, fmt.Sprintf("%s has no declared type", owner))
		return
	}
	for ref != nil {
		if ref.Kind == TypeRefKindNonNull && ref.OfType != nil && ref.OfType.Kind == TypeRefKindNonNull {
			w.problems = append(w.problems, fmt.Sprintf("%s declares Non-Null directly wrapping Non-Null", owner))
		}
		if ref.Kind == TypeRefKindNamed {
			w.visitNamed(ref.Named, owner)
			return
		}
		ref = ref.OfType
	}
	w.problems = append(w.problems, fmt.Sprintf("%s has a wrapper with no inner type", owner))
}

// checkConformance verifies every visited object against its declared
// interfaces: each interface field must be present with a covariant-or-equal
// type.
func (w *walker) checkConformance() {
	names := make([]string, 0, len(w.visited))
	for name := range w.visited {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := w.schema.Types[name]
		if t == nil || t.Kind != TypeKindObject {
			continue
		}
		for _, ifaceName := range t.Interfaces {
			iface, ok := w.schema.Types[ifaceName]
			if !ok {
				continue // already reported by the walk
			}
			if iface.Kind != TypeKindInterface {
				w.problems = append(w.problems, fmt.Sprintf("%s claims non-interface type %s", t.Name, ifaceName))
				continue
			}
			for _, required := range iface.Fields {
				provided := t.Field(required.Name)
				if provided == nil {
					w.problems = append(w.problems, fmt.Sprintf("%s does not provide field %s required by interface %s", t.Name, required.Name, ifaceName))
					continue
				}
				if !w.schema.isSubtype(provided.Type, required.Type) {
					w.problems = append(w.problems, fmt.Sprintf(
						"%s.%s has type %s, incompatible with %s declared by interface %s",
						t.Name, provided.Name, provided.Type, required.Type, ifaceName))
				}
			}
		}
	}
}

// fillPossibleTypes appends each object implementing an interface to that
// interface's PossibleTypes list, sorted for determinism.
func (w *walker) fillPossibleTypes() {
	for _, t := range w.schema.Types {
		if t.Kind != TypeKindObject {
			continue
		}
		for _, ifaceName := range t.Interfaces {
			iface, ok := w.schema.Types[ifaceName]
			if !ok || iface.Kind != TypeKindInterface {
				continue
			}
			found := false
			for _, pt := range iface.PossibleTypes {
				if pt == t.Name {
					found = true
					break
				}
			}
			if !found {
				iface.PossibleTypes = append(iface.PossibleTypes, t.Name)
			}
		}
	}
	for _, t := range w.schema.Types {
		if t.Kind == TypeKindInterface {
			sort.Strings(t.PossibleTypes)
		}
	}
}

// isSubtype reports whether sub may stand where super is declared: equal
// types, Non-Null narrowing, element-wise list covariance, or an object
// standing in for an abstract type it belongs to.
func (s *Schema) isSubtype(sub, super *TypeRef) bool {
	if sub == nil || super == nil {
		return false
	}
	if super.Kind == TypeRefKindNonNull {
		if sub.Kind == TypeRefKindNonNull {
			return s.isSubtype(sub.OfType, super.OfType)
		}
		return false
	}
	if sub.Kind == TypeRefKindNonNull {
		return s.isSubtype(sub.OfType, super)
	}
	if super.Kind == TypeRefKindList {
		return sub.Kind == TypeRefKindList && s.isSubtype(sub.OfType, super.OfType)
	}
	if sub.Kind == TypeRefKindList {
		return false
	}
	if sub.Named == super.Named {
		return true
	}
	subDef, superDef := s.Types[sub.Named], s.Types[super.Named]
	if subDef == nil || superDef == nil || subDef.Kind != TypeKindObject {
		return false
	}
	if superDef.Kind != TypeKindInterface && superDef.Kind != TypeKindUnion {
		return false
	}
	for _, pt := range superDef.PossibleTypes {
		if pt == subDef.Name {
			return true
		}
	}
	for _, iface := range subDef.Interfaces {
		if iface == superDef.Name {
			return true
		}
	}
	return false
}
